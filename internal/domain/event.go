package domain

import (
	"time"

	"github.com/genneg/SwingRadar-sub000/pkg/pagination"
)

// Event is a festival/event record as returned by the search engines.
// Teacher and musician names are denormalized onto the event so the search
// response is self-contained; the relational detail lives in the store.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Style       string    `json:"style"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Teachers    []string  `json:"teachers"`
	Musicians   []string  `json:"musicians"`
}

// RankedEvent is an event plus its computed relevance score. The score is
// only meaningful when the optimized engine ran with sortBy=relevance; the
// fallback engine always reports zero.
type RankedEvent struct {
	Event
	SearchRank float64 `json:"searchRank"`
}

// Venue is the single venue attached to an enriched event.
type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Price is the single price entry attached to an enriched event.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Category string  `json:"category"`
}

// EnrichedEvent is a ranked event augmented with at most one venue and one
// price record. Events may have several of each in storage; only the first
// is kept. That truncation is deliberate and must be preserved.
type EnrichedEvent struct {
	RankedEvent
	Venue   *Venue `json:"venue,omitempty"`
	Pricing *Price `json:"pricing,omitempty"`
}

// Sorting echoes the sort directives that produced a result set.
type Sorting struct {
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// MetaFilters echoes the location filters that produced a result set.
type MetaFilters struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Engine identifiers recorded in SearchMeta.SearchType.
const (
	SearchTypeOptimized = "optimized"
	SearchTypeFallback  = "fallback"
	SearchTypeMemory    = "memory"
)

// SearchMeta describes how a result set was produced. SearchType is a
// first-class observable field, not debug output.
type SearchMeta struct {
	Query        string      `json:"query"`
	Sorting      Sorting     `json:"sorting"`
	Filters      MetaFilters `json:"filters"`
	TotalMatches int         `json:"totalMatches"`
	SearchType   string      `json:"searchType"`
}

// SearchResult is the paginated payload returned by the search service.
type SearchResult struct {
	Events     []EnrichedEvent `json:"events"`
	Pagination pagination.Meta `json:"pagination"`
	SearchMeta SearchMeta      `json:"searchMeta"`
}
