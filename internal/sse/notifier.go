package sse

import (
	"context"
	"time"

	"github.com/GTDGit/catalog_api/internal/models"
)

// Publisher delivers product events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event *ProductEvent) error
}

// HubPublisher implements Publisher using the in-process Hub.
type HubPublisher struct {
	hub *Hub
}

// NewHubPublisher creates a publisher backed by the given Hub.
func NewHubPublisher(hub *Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(_ context.Context, event *ProductEvent) error {
	if p.hub.ClientCount() == 0 {
		return nil
	}
	p.hub.Broadcast(event)
	return nil
}

// NewProductEvent builds an event for a product aggregate. p may be nil when
// only the id is known.
func NewProductEvent(eventType EventType, id string, p *models.ProductWithRelations) *ProductEvent {
	e := &ProductEvent{
		Event:      eventType,
		OfferingID: id,
		Timestamp:  time.Now().UTC(),
	}
	if p != nil {
		e.SKU = p.SKU
		e.Name = p.Name
	}
	return e
}

// NopPublisher is a no-op implementation for when events are not needed.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *ProductEvent) error { return nil }
