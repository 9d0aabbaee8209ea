package worker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/catalog_api/internal/sse"
)

func TestEventRelayWorker_Relay(t *testing.T) {
	hub := sse.NewHub()
	c := hub.Register("relay-test")
	w := NewEventRelayWorker(nil, hub, "catalog:product-events")

	w.relay(`not json`)
	w.relay(`{"event":"product.deleted"}`)
	assert.Len(t, c.Events, 0)

	w.relay(`{"event":"product.deleted","offering_id":"7b3e"}`)
	require.Len(t, c.Events, 1)

	var got sse.ProductEvent
	require.NoError(t, json.Unmarshal(<-c.Events, &got))
	assert.Equal(t, sse.EventProductDeleted, got.Event)
	assert.Equal(t, "7b3e", got.OfferingID)
}
