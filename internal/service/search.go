// Package service orchestrates the two-tier search strategy: the optimized
// engine runs first, and any failure there is recovered locally by the
// fallback engine. Only a fallback failure is terminal.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/internal/engine"
	"github.com/genneg/SwingRadar-sub000/internal/enrich"
	"github.com/genneg/SwingRadar-sub000/internal/event"
	"github.com/genneg/SwingRadar-sub000/pkg/database"
	apperrors "github.com/genneg/SwingRadar-sub000/pkg/errors"
	"github.com/genneg/SwingRadar-sub000/pkg/pagination"
)

// AnalyticsPublisher receives a fire-and-forget notification for each
// completed search. Nil disables analytics.
type AnalyticsPublisher interface {
	SearchPerformed(ctx context.Context, payload event.SearchPerformed)
}

// SearchService executes searches against the primary engine with automatic
// fallback, then enriches and assembles the paginated result.
type SearchService struct {
	primary   engine.SearchEngine
	fallback  engine.SearchEngine
	enricher  *enrich.Enricher
	analytics AnalyticsPublisher
	logger    *slog.Logger
}

// NewSearchService creates a search service. fallback and analytics may be
// nil (no local recovery / no analytics).
func NewSearchService(
	primary engine.SearchEngine,
	fallback engine.SearchEngine,
	enricher *enrich.Enricher,
	analytics AnalyticsPublisher,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		primary:   primary,
		fallback:  fallback,
		enricher:  enricher,
		analytics: analytics,
		logger:    logger,
	}
}

// Search runs the full pipeline for an already-normalized filter set:
// primary engine, fallback on primary failure, enrichment, assembly.
// Zero-result responses skip enrichment entirely.
func (s *SearchService) Search(ctx context.Context, f *domain.SearchFilters) (*domain.SearchResult, error) {
	start := time.Now()

	searchType := s.primary.Name()
	ranked, total, err := s.primary.Search(ctx, f)
	if err != nil && s.fallback != nil {
		searchFallbacks.Inc()
		s.logger.WarnContext(ctx, "optimized search failed, using fallback engine",
			slog.String("error", err.Error()),
			slog.String("query", f.Query),
		)
		searchType = s.fallback.Name()
		ranked, total, err = s.fallback.Search(ctx, f)
	}
	if err != nil {
		classified := database.ClassifyError(err)
		searchFailures.WithLabelValues(errorCode(classified)).Inc()
		return nil, classified
	}

	result := &domain.SearchResult{
		Events:     []domain.EnrichedEvent{},
		Pagination: pagination.NewMeta(f.Page, f.Limit, total),
		SearchMeta: domain.SearchMeta{
			Query:        f.Query,
			Sorting:      domain.Sorting{SortBy: f.SortBy, SortOrder: f.SortOrder},
			Filters:      domain.MetaFilters{City: f.City, Country: f.Country},
			TotalMatches: total,
			SearchType:   searchType,
		},
	}

	if total > 0 {
		enriched, err := s.enricher.Enrich(ctx, ranked)
		if err != nil {
			classified := database.ClassifyError(err)
			searchFailures.WithLabelValues(errorCode(classified)).Inc()
			return nil, classified
		}
		result.Events = enriched
	}

	elapsed := time.Since(start)
	searchesTotal.WithLabelValues(searchType, f.SortBy).Inc()
	searchDuration.Observe(elapsed.Seconds())

	s.logger.DebugContext(ctx, "search completed",
		slog.String("search_type", searchType),
		slog.Int("total", total),
		slog.Duration("duration", elapsed),
	)

	s.publishAnalytics(ctx, f, total, searchType, elapsed)

	return result, nil
}

// publishAnalytics emits the analytics event in the background so a slow or
// unavailable broker never delays the response.
func (s *SearchService) publishAnalytics(ctx context.Context, f *domain.SearchFilters, total int, searchType string, elapsed time.Duration) {
	if s.analytics == nil {
		return
	}

	payload := event.SearchPerformed{
		Query:        f.Query,
		City:         f.City,
		Country:      f.Country,
		SortBy:       f.SortBy,
		SortOrder:    f.SortOrder,
		SearchType:   searchType,
		TotalMatches: total,
		DurationMs:   elapsed.Milliseconds(),
	}

	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	go func() {
		defer cancel()
		s.analytics.SearchPerformed(bgCtx, payload)
	}()
}

func errorCode(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}
