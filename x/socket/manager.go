package socket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ceptorclub/ceptor/core"
)

var ctx = context.Background()

type manager struct {
	rdb *redis.Client

	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
}

// NewManager creates a connection manager and starts relaying broadcasts published on redis
func NewManager(rdb *redis.Client) core.SocketManager {
	m := &manager{
		rdb:     rdb,
		clients: make(map[*websocket.Conn]*client),
	}

	pubsub := rdb.Subscribe(ctx, core.BroadcastChannel)
	// wait for the subscription to be confirmed
	if _, err := pubsub.Receive(ctx); err != nil {
		slog.Error("failed to subscribe broadcast channel", slog.String("error", err.Error()), slog.String("module", "socket"))
	}
	go m.broadcastRoutine(pubsub)

	return m
}

// Subscribe registers a connection
func (m *manager) Subscribe(conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.clients[conn] = &client{id: id, conn: conn}
	slog.Info("client connected", slog.String("client", id), slog.Int("connections", len(m.clients)), slog.String("module", "socket"))
}

// Unsubscribe removes a connection and closes it
func (m *manager) Unsubscribe(conn *websocket.Conn) {
	m.mu.Lock()
	c, ok := m.clients[conn]
	delete(m.clients, conn)
	remaining := len(m.clients)
	m.mu.Unlock()

	if ok {
		slog.Info("client disconnected", slog.String("client", c.id), slog.Int("connections", remaining), slog.String("module", "socket"))
	}
	conn.Close()
}

// Send writes an event to one connection
func (m *manager) Send(conn *websocket.Conn, event core.Event) error {
	m.mu.RLock()
	c, ok := m.clients[conn]
	m.mu.RUnlock()
	if !ok {
		return core.NewErrorNotFound()
	}

	if err := c.write(event); err != nil {
		return errors.Wrap(err, "failed to write event")
	}
	return nil
}

// Broadcast publishes an event to every client of every instance
func (m *manager) Broadcast(ctx context.Context, event core.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}
	if err := m.rdb.Publish(ctx, core.BroadcastChannel, payload).Err(); err != nil {
		return errors.Wrap(err, "failed to publish event")
	}
	return nil
}

// CurrentConnectionCount returns the number of open connections
func (m *manager) CurrentConnectionCount() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.clients))
}

func (m *manager) broadcastRoutine(pubsub *redis.PubSub) {
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var event core.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			slog.Error("failed to unmarshal broadcast", slog.String("error", err.Error()), slog.String("module", "socket"))
			continue
		}
		m.deliver(event)
	}
}

func (m *manager) deliver(event core.Event) {
	m.mu.RLock()
	targets := make([]*client, 0, len(m.clients))
	for _, c := range m.clients {
		targets = append(targets, c)
	}
	m.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(event); err != nil {
			slog.Warn("failed to deliver broadcast", slog.String("client", c.id), slog.String("error", err.Error()), slog.String("module", "socket"))
			m.Unsubscribe(c.conn)
		}
	}
}
