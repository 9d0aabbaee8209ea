package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/catalog_api/internal/metrics"
)

// EventType defines the SSE event name.
type EventType string

const (
	EventProductCreated      EventType = "product.created"
	EventProductUpdated      EventType = "product.updated"
	EventProductDeleted      EventType = "product.deleted"
	EventProductCloned       EventType = "product.cloned"
	EventProductVersionAdded EventType = "product.version_added"
)

// ProductEvent is the payload broadcast to event stream clients after a
// committed product write.
type ProductEvent struct {
	Event      EventType `json:"event"`
	OfferingID string    `json:"offering_id"`
	SKU        string    `json:"sku,omitempty"`
	Name       string    `json:"name,omitempty"`
	SourceID   string    `json:"source_offering_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// clientBuffer is how many product events a stream client may fall behind
// before further events are dropped for it.
const clientBuffer = 64

// Client is one catalog admin session subscribed to product events.
// Events is closed when the session is unregistered.
type Client struct {
	ID     string
	Events chan []byte
}

// Hub fans committed product events out to every subscribed catalog client.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Client
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]*Client)}
}

// Register subscribes a catalog client. Registering an id that is already
// subscribed replaces the old session and closes its channel.
func (h *Hub) Register(clientID string) *Client {
	c := &Client{ID: clientID, Events: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	if old, ok := h.subscribers[clientID]; ok {
		close(old.Events)
	}
	h.subscribers[clientID] = c
	n := len(h.subscribers)
	h.mu.Unlock()

	metrics.SSEClients.Set(float64(n))
	log.Info().Str("client_id", clientID).Int("subscribers", n).Msg("Catalog client subscribed to product events")
	return c
}

// Unregister drops the subscription. Unknown ids are a no-op.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	c, ok := h.subscribers[clientID]
	if ok {
		close(c.Events)
		delete(h.subscribers, clientID)
	}
	n := len(h.subscribers)
	h.mu.Unlock()

	if !ok {
		return
	}
	metrics.SSEClients.Set(float64(n))
	log.Info().Str("client_id", clientID).Int("subscribers", n).Msg("Catalog client unsubscribed")
}

// Broadcast encodes event once and queues it for every subscriber without
// blocking. A client whose buffer is full misses the event.
func (h *Hub) Broadcast(event *ProductEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event", string(event.Event)).Msg("Failed to encode product event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.subscribers {
		select {
		case c.Events <- data:
		default:
			metrics.ProductEventsDropped.Inc()
			log.Warn().
				Str("client_id", c.ID).
				Str("event", string(event.Event)).
				Str("offering_id", event.OfferingID).
				Msg("Catalog client lagging, product event dropped")
		}
	}
}

// ClientCount reports how many catalog clients are subscribed.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
