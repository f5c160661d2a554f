package http

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/communiconnect/delivery/internal/domain"
	"github.com/communiconnect/delivery/internal/metrics"
	"github.com/communiconnect/delivery/internal/registry"
)

// Client is one live websocket session. Writes go through the buffered send
// channel; a single writer goroutine in the stream handler drains it.
type Client struct {
	subjectID string
	connID    string
	send      chan []byte
}

// ConnectionID returns the client's connection id in the registry.
func (c *Client) ConnectionID() string { return c.connID }

// Hub owns the websocket clients of this process and implements
// delivery.Emitter. Presence bookkeeping is delegated to the registry so the
// router can check reachability without touching transport state.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // connID -> client
	registry *registry.Registry
}

// NewHub creates a Hub bound to the given registry.
func NewHub(reg *registry.Registry) *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		registry: reg,
	}
}

// Register adds a new websocket client and records its presence.
func (h *Hub) Register(subjectID string, send chan []byte) *Client {
	c := &Client{
		subjectID: subjectID,
		connID:    uuid.NewString(),
		send:      send,
	}

	h.mu.Lock()
	h.clients[c.connID] = c
	h.mu.Unlock()

	h.registry.Register(subjectID, c.connID)
	metrics.ConnectionOpened()

	log.Debug().Str("subject", subjectID).Str("conn", c.connID).Msg("websocket client connected")
	return c
}

// Unregister removes a websocket client. Safe to call more than once per
// client; only the first call has effect.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.connID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.connID)
	h.mu.Unlock()

	h.registry.Unregister(c.connID)
	metrics.ConnectionClosed()

	log.Debug().Str("subject", c.subjectID).Str("conn", c.connID).Msg("websocket client disconnected")
}

// Emit sends a realtime payload to one connection. Fire-and-forget: unknown
// connections are skipped (the client raced a disconnect), and a full send
// buffer drops the frame rather than blocking the dispatcher.
func (h *Hub) Emit(connID string, payload domain.RealtimePayload) {
	h.mu.RLock()
	c := h.clients[connID]
	h.mu.RUnlock()
	if c == nil {
		return
	}

	msg, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("conn", connID).Msg("failed to encode realtime payload")
		return
	}

	select {
	case c.send <- msg:
	default:
		log.Warn().Str("subject", c.subjectID).Str("conn", connID).Msg("websocket send buffer full, dropping frame")
	}
}

// ConnectedCount returns the number of websocket clients on this instance.
func (h *Hub) ConnectedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
