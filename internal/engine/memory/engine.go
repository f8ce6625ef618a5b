// Package memory provides an in-memory search engine for development and
// tests. It mirrors the optimized engine's semantics (combined predicate,
// scoring ladder, pagination) without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/internal/scoring"
)

// Engine is an in-memory implementation of engine.SearchEngine.
// Thread-safe via sync.RWMutex.
type Engine struct {
	mu     sync.RWMutex
	events map[string]domain.Event
}

// New creates an empty in-memory search engine.
func New() *Engine {
	return &Engine{events: make(map[string]domain.Event)}
}

// Name identifies this engine in search metadata.
func (e *Engine) Name() string { return domain.SearchTypeMemory }

// Add inserts or replaces an event in the index.
func (e *Engine) Add(ev domain.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events[ev.ID] = ev
}

// Remove deletes an event from the index by ID.
func (e *Engine) Remove(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.events, id)
}

// Search evaluates the filters against the in-memory index, applying the
// same scoring ladder and sort semantics as the optimized engine.
func (e *Engine) Search(_ context.Context, f *domain.SearchFilters) ([]domain.RankedEvent, int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var matched []domain.RankedEvent
	for _, ev := range e.events {
		if !matches(&ev, f) {
			continue
		}
		ranked := domain.RankedEvent{Event: ev}
		if f.SortBy == domain.SortRelevance {
			if f.HasNamedFilters() {
				ranked.SearchRank = scoring.NamedFilterScore
			} else {
				ranked.SearchRank = scoring.ScoreEvent(&ev, f.Query)
			}
		}
		matched = append(matched, ranked)
	}

	sortEvents(matched, f)

	total := len(matched)
	offset := f.Offset()
	if offset > total {
		offset = total
	}
	end := offset + f.Limit
	if end > total {
		end = total
	}

	return matched[offset:end], total, nil
}

func matches(ev *domain.Event, f *domain.SearchFilters) bool {
	if f.HasNamedFilters() || f.HasQuery() {
		ok := false
		if f.HasNamedFilters() && scoring.MatchesNamedFilters(ev, f.TeacherNames, f.MusicianNames) {
			ok = true
		}
		if !ok && f.HasQuery() && scoring.ScoreEvent(ev, f.Query) > 0 {
			ok = true
		}
		if !ok {
			return false
		}
	}

	if f.City != "" && !strings.Contains(strings.ToLower(ev.City), strings.ToLower(f.City)) {
		return false
	}
	if f.Country != "" && !strings.Contains(strings.ToLower(ev.Country), strings.ToLower(f.Country)) {
		return false
	}
	return true
}

func sortEvents(events []domain.RankedEvent, f *domain.SearchFilters) {
	desc := f.SortOrder != domain.OrderAsc

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch f.SortBy {
		case domain.SortRelevance:
			if a.SearchRank != b.SearchRank {
				if desc {
					return a.SearchRank > b.SearchRank
				}
				return a.SearchRank < b.SearchRank
			}
			// Tie-break: earliest start date first, regardless of direction.
			return a.StartDate.Before(b.StartDate)
		case domain.SortPopularity:
			if desc {
				return a.Name > b.Name
			}
			return a.Name < b.Name
		default:
			if desc {
				return a.StartDate.After(b.StartDate)
			}
			return a.StartDate.Before(b.StartDate)
		}
	})
}
