package relay

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/golangdaddy/roadrush/pkg/protocol"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// ErrSlowConsumer is returned by Send when a client's queue is full.
var ErrSlowConsumer = errors.New("relay: send queue full")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsConn struct {
	conn   *websocket.Conn
	send   chan []byte
	closed chan struct{}
	once   sync.Once
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		closed: make(chan struct{}),
	}
}

// Send queues b without blocking the hub.
func (c *wsConn) Send(b []byte) error {
	select {
	case <-c.closed:
		return net.ErrClosed
	default:
	}
	select {
	case c.send <- b:
		return nil
	default:
		return ErrSlowConsumer
	}
}

func (c *wsConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case b := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// ServeHTTP upgrades the request and relays the client's moves until it goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logf("RELAY: upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}

	c := newWSConn(conn)
	go c.writePump()

	id, err := h.Join(c)
	if err != nil {
		_ = c.Close()
		return
	}
	h.readPump(id, c)
}

func (h *Hub) readPump(id string, c *wsConn) {
	defer h.Leave(id)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, b, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logf("RELAY: %s read error: %v", id, err)
			}
			return
		}

		env, err := protocol.DecodeEnvelope(b)
		if err != nil {
			h.logf("RELAY: %s sent a bad frame: %v", id, err)
			continue
		}
		switch env.T {
		case protocol.MsgPlayerMove:
			mv, err := protocol.DecodePayload[protocol.PlayerMove](env)
			if err != nil {
				continue
			}
			h.Move(id, mv.X)
		default:
			h.logf("RELAY: %s sent unknown type %q", id, env.T)
		}
	}
}
