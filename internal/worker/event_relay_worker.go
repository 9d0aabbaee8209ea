package worker

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/catalog_api/internal/pubsub"
	"github.com/GTDGit/catalog_api/internal/sse"
)

// EventRelayWorker forwards product events from the Redis channel into the
// local SSE hub.
type EventRelayWorker struct {
	client  *pubsub.RedisClient
	hub     *sse.Hub
	channel string
}

// NewEventRelayWorker constructs an EventRelayWorker.
func NewEventRelayWorker(client *pubsub.RedisClient, hub *sse.Hub, channel string) *EventRelayWorker {
	return &EventRelayWorker{
		client:  client,
		hub:     hub,
		channel: channel,
	}
}

// Start relays messages until context is canceled.
func (w *EventRelayWorker) Start(ctx context.Context) {
	log.Info().Str("channel", w.channel).Msg("Starting event relay worker")

	sub := w.client.Subscribe(ctx, w.channel)
	defer sub.Close()

	messages := sub.Channel()
	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				log.Warn().Msg("Event relay subscription closed")
				return
			}
			w.relay(msg.Payload)
		case <-ctx.Done():
			log.Info().Msg("Event relay worker stopped")
			return
		}
	}
}

func (w *EventRelayWorker) relay(payload string) {
	event, err := pubsub.DecodeEvent(payload)
	if err != nil {
		log.Warn().Err(err).Msg("Dropping malformed product event")
		return
	}
	w.hub.Broadcast(event)
}
