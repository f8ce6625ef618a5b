// Package postgres provides read-only access to the records related to an
// event (venues, prices). The search core never writes.
package postgres

import (
	"context"
	"fmt"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/pkg/database"
)

// RelatedRepository loads the venue and price records attached to events.
// Lookups are batched by event-id set rather than issued per event, but the
// first-venue/first-price truncation semantics are preserved exactly:
// DISTINCT ON with an id tie-break keeps the earliest-inserted row per event.
type RelatedRepository struct {
	db database.DBTX
}

// NewRelatedRepository creates a repository on top of a pgx pool (or mock).
func NewRelatedRepository(db database.DBTX) *RelatedRepository {
	return &RelatedRepository{db: db}
}

// VenuesByEventIDs returns the first venue for each of the given events.
// Events without a venue are absent from the map.
func (r *RelatedRepository) VenuesByEventIDs(ctx context.Context, eventIDs []string) (map[string]domain.Venue, error) {
	if len(eventIDs) == 0 {
		return map[string]domain.Venue{}, nil
	}

	query := `
		SELECT DISTINCT ON (v.event_id)
			v.event_id, v.name, coalesce(v.address, ''), coalesce(v.city, ''), coalesce(v.country, '')
		FROM venues v
		WHERE v.event_id = ANY($1)
		ORDER BY v.event_id, v.id`

	rows, err := r.db.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	venues := make(map[string]domain.Venue)
	for rows.Next() {
		var (
			eventID string
			v       domain.Venue
		)
		if err := rows.Scan(&eventID, &v.Name, &v.Address, &v.City, &v.Country); err != nil {
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		venues[eventID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venue rows: %w", err)
	}

	return venues, nil
}

// PricesByEventIDs returns the first price entry for each of the given
// events. Events without pricing are absent from the map.
func (r *RelatedRepository) PricesByEventIDs(ctx context.Context, eventIDs []string) (map[string]domain.Price, error) {
	if len(eventIDs) == 0 {
		return map[string]domain.Price{}, nil
	}

	query := `
		SELECT DISTINCT ON (p.event_id)
			p.event_id, p.amount, p.currency, coalesce(p.category, '')
		FROM prices p
		WHERE p.event_id = ANY($1)
		ORDER BY p.event_id, p.id`

	rows, err := r.db.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	prices := make(map[string]domain.Price)
	for rows.Next() {
		var (
			eventID string
			p       domain.Price
		)
		if err := rows.Scan(&eventID, &p.Amount, &p.Currency, &p.Category); err != nil {
			return nil, fmt.Errorf("scan price row: %w", err)
		}
		prices[eventID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price rows: %w", err)
	}

	return prices, nil
}
