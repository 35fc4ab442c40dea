// Package netclient is the game's side of the position relay.
package netclient

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/golangdaddy/roadrush/pkg/engine"
	"github.com/golangdaddy/roadrush/pkg/protocol"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	queueSize  = 32
)

// Client holds one relay connection and mirrors remote players into an
// engine.Opponents map.
type Client struct {
	conn      *websocket.Conn
	opponents *engine.Opponents
	send      chan []byte

	mu sync.RWMutex
	id string

	done      chan struct{}
	closeOnce sync.Once
	quit      chan struct{}
}

// Dial connects to the relay at url, e.g. ws://localhost:3000/ws.
func Dial(ctx context.Context, url string, opponents *engine.Opponents) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, http.Header{})
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn:      conn,
		opponents: opponents,
		send:      make(chan []byte, queueSize),
		done:      make(chan struct{}),
		quit:      make(chan struct{}),
	}
	go c.readLoop()
	go c.writeLoop()
	return c, nil
}

// SendMove publishes the local car's x. It never blocks; when the outbound
// queue is full the update is dropped.
func (c *Client) SendMove(x float64) {
	b, err := protocol.Encode(protocol.MsgPlayerMove, protocol.PlayerMove{X: x})
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
		log.Printf("relay: dropped move to %.0f, send queue full", x)
	}
}

// ID is the connection id the relay assigned, empty until the welcome arrives.
func (c *Client) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// Done is closed once the connection has gone away.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.quit) })
	<-c.done
	return nil
}

func (c *Client) readLoop() {
	defer close(c.done)
	defer c.closeOnce.Do(func() { close(c.quit) })

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	c.conn.SetPingHandler(func(data string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		err := c.conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
		if err == websocket.ErrCloseSent {
			return nil
		}
		return err
	})

	for {
		_, b, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("relay: read error: %v", err)
			}
			return
		}
		c.handle(b)
	}
}

func (c *Client) handle(b []byte) {
	env, err := protocol.DecodeEnvelope(b)
	if err != nil {
		log.Printf("relay: bad frame: %v", err)
		return
	}

	switch env.T {
	case protocol.MsgOpponentMove:
		mv, err := protocol.DecodePayload[protocol.OpponentMove](env)
		if err != nil || mv.ID == "" {
			return
		}
		c.opponents.Move(mv.ID, mv.X)
	case protocol.MsgOpponentDisconnect:
		d, err := protocol.DecodePayload[protocol.OpponentDisconnect](env)
		if err != nil {
			return
		}
		c.opponents.Remove(d.ID)
	case protocol.MsgWelcome:
		w, err := protocol.DecodePayload[protocol.Welcome](env)
		if err != nil {
			return
		}
		c.mu.Lock()
		c.id = w.ID
		c.mu.Unlock()
	}
}

func (c *Client) writeLoop() {
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
				log.Printf("relay: write error: %v", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.quit:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
