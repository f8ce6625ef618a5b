// Package enrich attaches related venue and price records to ranked events
// and rewrites relative image paths into absolute asset URLs.
package enrich

import (
	"context"
	"log/slog"
	"sync"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/pkg/assets"
)

// RelatedStore loads the first venue and first price per event, keyed by
// event ID. Implemented by the postgres repository; tests use fakes.
type RelatedStore interface {
	VenuesByEventIDs(ctx context.Context, eventIDs []string) (map[string]domain.Venue, error)
	PricesByEventIDs(ctx context.Context, eventIDs []string) (map[string]domain.Price, error)
}

// Enricher turns ranked events into enriched events. The venue and price
// lookups are independent and run concurrently; output order always matches
// the ranked input order regardless of lookup completion order.
type Enricher struct {
	store    RelatedStore
	rewriter *assets.Rewriter
	logger   *slog.Logger
}

// New creates an enricher.
func New(store RelatedStore, rewriter *assets.Rewriter, logger *slog.Logger) *Enricher {
	return &Enricher{store: store, rewriter: rewriter, logger: logger}
}

// Enrich attaches at most one venue and one price to each event (first-only
// truncation lives in the store lookup) and rewrites image URLs. An empty
// input short-circuits without touching the store.
func (e *Enricher) Enrich(ctx context.Context, ranked []domain.RankedEvent) ([]domain.EnrichedEvent, error) {
	if len(ranked) == 0 {
		return []domain.EnrichedEvent{}, nil
	}

	ids := make([]string, len(ranked))
	for i, ev := range ranked {
		ids[i] = ev.ID
	}

	var (
		wg        sync.WaitGroup
		venues    map[string]domain.Venue
		prices    map[string]domain.Price
		venuesErr error
		pricesErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		venues, venuesErr = e.store.VenuesByEventIDs(ctx, ids)
	}()
	go func() {
		defer wg.Done()
		prices, pricesErr = e.store.PricesByEventIDs(ctx, ids)
	}()
	wg.Wait()

	if venuesErr != nil {
		return nil, venuesErr
	}
	if pricesErr != nil {
		return nil, pricesErr
	}

	enriched := make([]domain.EnrichedEvent, len(ranked))
	for i, ev := range ranked {
		out := domain.EnrichedEvent{RankedEvent: ev}
		out.ImageURL = e.rewriter.Rewrite(ev.ImageURL)

		if v, ok := venues[ev.ID]; ok {
			v := v
			out.Venue = &v
		}
		if p, ok := prices[ev.ID]; ok {
			p := p
			out.Pricing = &p
		}
		enriched[i] = out
	}

	e.logger.DebugContext(ctx, "events enriched",
		slog.Int("count", len(enriched)),
		slog.Int("with_venue", len(venues)),
		slog.Int("with_pricing", len(prices)),
	)

	return enriched, nil
}
