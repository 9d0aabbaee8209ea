package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/catalog_api/internal/sse"
)

// EventHandler streams product change events over Server-Sent Events.
type EventHandler struct {
	hub       *sse.Hub
	heartbeat time.Duration
}

// NewEventHandler creates a new EventHandler. A non-positive heartbeat
// disables pings.
func NewEventHandler(hub *sse.Hub, heartbeat time.Duration) *EventHandler {
	return &EventHandler{hub: hub, heartbeat: heartbeat}
}

// Stream handles GET /api/events
func (h *EventHandler) Stream(c *gin.Context) {
	clientID := "catalog-" + uuid.New().String()[:8]

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

	client := h.hub.Register(clientID)
	defer h.hub.Unregister(clientID)

	c.SSEvent("connected", gin.H{
		"client_id": clientID,
		"timestamp": time.Now().Format(time.RFC3339),
	})
	c.Writer.Flush()

	log.Info().Str("client_id", clientID).Str("ip", c.ClientIP()).Msg("Product event stream started")

	var ping <-chan time.Time
	if h.heartbeat > 0 {
		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()
		ping = ticker.C
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case data, ok := <-client.Events:
			if !ok {
				return false
			}
			c.SSEvent("product", string(data))
			return true
		case <-ping:
			c.SSEvent("ping", gin.H{"timestamp": time.Now().Format(time.RFC3339)})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
