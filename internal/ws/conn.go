package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to the peer with this period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from the peer. Drawing payloads can be
	// sizeable, so this is deliberately generous.
	maxMessageSize = 256 * 1024

	// Outbound buffer per connection; a client this far behind starts
	// losing events.
	sendBufferSize = 256
)

// connection wraps a websocket with a buffered outbound queue. All writes go
// through the queue and a single write pump, since gorilla connections allow
// only one concurrent writer.
type connection struct {
	ws     *websocket.Conn
	send   chan []byte
	logger *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func newConnection(ws *websocket.Conn, logger *slog.Logger) *connection {
	return &connection{
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// enqueue queues a payload for delivery, reporting whether it was accepted.
// It never blocks.
func (c *connection) enqueue(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// close shuts the connection down; safe to call more than once
func (c *connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

// writePump drains the send queue to the peer and keeps the connection alive
// with periodic pings. It runs on its own goroutine per connection and exits
// when the connection closes.
func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
