package socket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client is one open websocket; writes are serialized by mu
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}
