// Package event publishes search analytics events to Kafka. Publishing is
// best-effort: analytics must never fail or slow down a search response.
package event

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/genneg/SwingRadar-sub000/pkg/kafka"
	"github.com/genneg/SwingRadar-sub000/pkg/logger"
)

// TopicSearchPerformed carries one event per completed search request.
const TopicSearchPerformed = "search.performed"

const (
	eventTypeSearchPerformed = "search.performed"
	aggregateTypeSearch      = "search"
	sourceName               = "event-search"
)

// SearchPerformed is the analytics payload for a completed search.
type SearchPerformed struct {
	Query        string `json:"query"`
	City         string `json:"city"`
	Country      string `json:"country"`
	SortBy       string `json:"sort_by"`
	SortOrder    string `json:"sort_order"`
	SearchType   string `json:"search_type"`
	TotalMatches int    `json:"total_matches"`
	DurationMs   int64  `json:"duration_ms"`
}

// Publisher emits search analytics through the shared Kafka producer.
type Publisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewPublisher creates an analytics publisher.
func NewPublisher(producer *kafka.Producer, log *slog.Logger) *Publisher {
	return &Publisher{producer: producer, logger: log}
}

// SearchPerformed publishes a search analytics event. Failures are logged
// and swallowed; the search response has already been decided by the time
// this runs.
func (p *Publisher) SearchPerformed(ctx context.Context, payload SearchPerformed) {
	ev, err := kafka.NewEvent(eventTypeSearchPerformed, uuid.New().String(), aggregateTypeSearch, sourceName, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build analytics event", slog.String("error", err.Error()))
		return
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		ev.WithCorrelationID(id)
	}

	if err := p.producer.Publish(ctx, TopicSearchPerformed, ev); err != nil {
		p.logger.WarnContext(ctx, "failed to publish search analytics",
			slog.String("error", err.Error()),
		)
	}
}
