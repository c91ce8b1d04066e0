// Package console provides a browser console for driving tracking sessions
// over WebSocket without a Discord connection.
package console

import (
	"context"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// client is one connected console.
type client struct {
	id   string
	conn *websocket.Conn
}

func (c *client) send(ctx context.Context, f Frame) error {
	return wsjson.Write(ctx, c.conn, f)
}

// Hub tracks connected consoles. Every console shares one channel, so session
// displays reach all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// Register adds a connection, closing any previous connection with the same id.
func (h *Hub) Register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.clients[c.id]; ok && existing != c {
		_ = existing.conn.Close(websocket.StatusNormalClosure, "connection replaced")
	}
	h.clients[c.id] = c
	slog.Info("Console connected", "client_id", c.id)
}

// Unregister removes a connection if it is still the registered one.
func (h *Hub) Unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[c.id]; ok && current == c {
		delete(h.clients, c.id)
		slog.Info("Console disconnected", "client_id", c.id)
	}
}

// Len returns the number of connected consoles.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends f to every connected console. Delivery failures are logged
// and skipped; the error is returned only when no console received the frame.
func (h *Hub) Broadcast(ctx context.Context, f Frame) error {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	var firstErr error
	delivered := 0
	for _, c := range targets {
		if err := c.send(ctx, f); err != nil {
			slog.Debug("Console write failed", "client_id", c.id, "type", f.Type, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		delivered++
	}
	if delivered == 0 && firstErr != nil {
		return firstErr
	}
	return nil
}

// CloseAll disconnects every console.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		_ = c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(h.clients, id)
	}
}
