package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchPayload struct {
	Query string `json:"query"`
	Total int    `json:"total_matches"`
}

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("search.performed", "agg-1", "search", "event-search", searchPayload{Query: "blues", Total: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "search.performed", ev.EventType)
	assert.Equal(t, "agg-1", ev.AggregateID)
	assert.Equal(t, "search", ev.AggregateType)
	assert.Equal(t, 1, ev.Version)
	assert.Equal(t, "event-search", ev.Source)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestEventRoundTrip(t *testing.T) {
	ev, err := NewEvent("search.performed", "agg-1", "search", "event-search", searchPayload{Query: "blues", Total: 3})
	require.NoError(t, err)
	ev.WithCorrelationID("corr-42")

	data, err := ev.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, ev.EventID, decoded.EventID)
	assert.Equal(t, "corr-42", decoded.CorrelationID)

	var payload searchPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "blues", payload.Query)
	assert.Equal(t, 3, payload.Total)
}
