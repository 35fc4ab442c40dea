// Package relay fans player positions out to every other connected client.
// The server keeps no positions of its own, only the set of open connections.
package relay

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/golangdaddy/roadrush/pkg/protocol"
	"github.com/google/uuid"
)

// ErrStopped is returned by Join once the hub has been stopped.
var ErrStopped = errors.New("relay: hub stopped")

// Conn is one client's outbound channel.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Commands accepted on Hub.Inbox.
type (
	Join struct {
		Conn  Conn
		Reply chan string
	}
	Move struct {
		ID string
		X  float64
	}
	Leave struct {
		ID string
	}
)

// Hub owns the connection registry. Only the goroutine running Run touches it.
type Hub struct {
	Inbox chan any

	// Logf receives diagnostic messages. It may be nil.
	Logf func(format string, args ...any)

	clients map[string]Conn
	size    atomic.Int64
	quit    chan struct{}
	stop    sync.Once
}

func NewHub() *Hub {
	return &Hub{
		Inbox:   make(chan any, 256),
		clients: make(map[string]Conn),
		quit:    make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.closeAll()
			return
		case cmd := <-h.Inbox:
			h.handleCommand(cmd)
		}
	}
}

// Stop ends Run and closes every connection. It is safe to call more than once.
func (h *Hub) Stop() {
	h.stop.Do(func() { close(h.quit) })
}

// Len returns the number of registered connections.
func (h *Hub) Len() int {
	return int(h.size.Load())
}

// Join registers c and returns the id it was assigned.
func (h *Hub) Join(c Conn) (string, error) {
	reply := make(chan string, 1)
	select {
	case h.Inbox <- Join{Conn: c, Reply: reply}:
	case <-h.quit:
		return "", ErrStopped
	}
	select {
	case id := <-reply:
		return id, nil
	case <-h.quit:
		return "", ErrStopped
	}
}

// Move relays x from id to everyone else.
func (h *Hub) Move(id string, x float64) {
	h.submit(Move{ID: id, X: x})
}

// Leave unregisters id and tells the remaining clients.
func (h *Hub) Leave(id string) {
	h.submit(Leave{ID: id})
}

func (h *Hub) submit(cmd any) {
	select {
	case h.Inbox <- cmd:
	case <-h.quit:
	}
}

func (h *Hub) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		id := uuid.NewString()
		h.clients[id] = c.Conn
		h.size.Store(int64(len(h.clients)))
		c.Reply <- id
		h.logf("RELAY: %s joined (%d connected)", id, len(h.clients))

		b, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{ID: id})
		if err != nil {
			return
		}
		if err := c.Conn.Send(b); err != nil {
			h.handleLeave(id)
		}
	case Move:
		if _, ok := h.clients[c.ID]; !ok {
			return
		}
		b, err := protocol.Encode(protocol.MsgOpponentMove, protocol.OpponentMove{ID: c.ID, X: c.X})
		if err != nil {
			return
		}
		h.broadcast(b, c.ID)
	case Leave:
		h.handleLeave(c.ID)
	}
}

func (h *Hub) handleLeave(id string) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	h.size.Store(int64(len(h.clients)))
	_ = c.Close()
	h.logf("RELAY: %s left (%d connected)", id, len(h.clients))

	b, err := protocol.Encode(protocol.MsgOpponentDisconnect, protocol.OpponentDisconnect{ID: id})
	if err != nil {
		return
	}
	h.broadcast(b, "")
}

// broadcast sends b to every client except the one with id except.
// Clients whose send fails are dropped.
func (h *Hub) broadcast(b []byte, except string) {
	var failed []string
	for id, c := range h.clients {
		if id == except {
			continue
		}
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		h.handleLeave(id)
	}
}

func (h *Hub) closeAll() {
	for id, c := range h.clients {
		_ = c.Close()
		delete(h.clients, id)
	}
	h.size.Store(0)
}

func (h *Hub) logf(format string, args ...any) {
	if h.Logf != nil {
		h.Logf(format, args...)
	}
}
