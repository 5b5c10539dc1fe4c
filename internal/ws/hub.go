package ws

import (
	"encoding/json"
	"sync"

	"task_tracker/internal/domain"
	"task_tracker/internal/logger"
)

// Hub fans task events out to every connected client. A client whose send
// buffer is full is dropped instead of blocking the publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	// handshake: events published after this point reach the client.
	// Send is empty here so this never blocks.
	c.Send <- readyMessage
	n := len(h.clients)
	h.mu.Unlock()

	logger.Debug("ws client registered", "client", c.ID, "clients", n)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()
}

// Publish implements service.EventPublisher.
func (h *Hub) Publish(evt domain.TaskEvent) {
	msg, err := json.Marshal(evt)
	if err != nil {
		logger.Error("ws marshal event", "type", evt.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws client too slow, dropping", "client", c.ID)
			delete(h.clients, c)
			close(c.Send)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.Send)
	}
}
