package engine

import (
	"context"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
)

// SearchEngine executes a normalized search and returns one page of ranked
// events plus the total match count. Implementations: the optimized Postgres
// engine with the full scoring ladder, the deliberately simpler Postgres
// fallback engine, and an in-memory engine for development and tests.
type SearchEngine interface {
	// Name identifies the engine in SearchMeta.SearchType and metrics.
	Name() string

	// Search runs the count and page queries for the given filters. A zero
	// total short-circuits the page query; implementations return an empty
	// slice in that case.
	Search(ctx context.Context, filters *domain.SearchFilters) ([]domain.RankedEvent, int, error)
}
