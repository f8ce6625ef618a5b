// Package postgres implements the optimized search engine: one combined
// predicate over events and their teacher/musician relations, with the
// relevance ladder rendered as a parameterized CASE expression. Failures
// here are recoverable; the caller retries through the fallback engine.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/pkg/database"
)

const (
	teachersAggExpr  = "(SELECT coalesce(array_agg(t.name ORDER BY t.name), '{}') FROM event_teachers et JOIN teachers t ON t.id = et.teacher_id WHERE et.event_id = e.id)"
	musiciansAggExpr = "(SELECT coalesce(array_agg(m.name ORDER BY m.name), '{}') FROM event_musicians em JOIN musicians m ON m.id = em.musician_id WHERE em.event_id = e.id)"

	eventColumns = "e.id, e.name, e.description, e.start_date, e.end_date, e.city, e.country, e.style, coalesce(e.image_url, '')"
)

// Engine is the optimized Postgres-backed search engine.
type Engine struct {
	db     database.DBTX
	logger *slog.Logger
}

// New creates the optimized engine on top of a pgx pool (or mock).
func New(db database.DBTX, logger *slog.Logger) *Engine {
	return &Engine{db: db, logger: logger}
}

// Name identifies this engine in search metadata.
func (e *Engine) Name() string { return domain.SearchTypeOptimized }

// Search executes the count query and, when matches exist, the ranked page
// query. Both queries share one predicate built from the filter set; all
// user text travels as bound parameters.
func (e *Engine) Search(ctx context.Context, f *domain.SearchFilters) ([]domain.RankedEvent, int, error) {
	b := &queryBuilder{}
	buildPredicate(b, f)
	where := b.whereClause()

	countSQL := "SELECT count(*) FROM events e " + where

	var total int
	if err := e.db.QueryRow(ctx, countSQL, b.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	score := scoreExpression(b, f)
	limit := b.arg(f.Limit)
	offset := b.arg(f.Offset())

	pageSQL := fmt.Sprintf(
		"SELECT %s, %s AS teachers, %s AS musicians, %s AS search_rank FROM events e %s ORDER BY %s LIMIT %s OFFSET %s",
		eventColumns, teachersAggExpr, musiciansAggExpr, score, where, orderClause(f), limit, offset,
	)

	rows, err := e.db.Query(ctx, pageSQL, b.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query events page: %w", err)
	}
	defer rows.Close()

	var events []domain.RankedEvent
	for rows.Next() {
		var ev domain.RankedEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.Name,
			&ev.Description,
			&ev.StartDate,
			&ev.EndDate,
			&ev.City,
			&ev.Country,
			&ev.Style,
			&ev.ImageURL,
			&ev.Teachers,
			&ev.Musicians,
			&ev.SearchRank,
		); err != nil {
			return nil, 0, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate event rows: %w", err)
	}

	e.logger.DebugContext(ctx, "optimized search executed",
		slog.Int("total", total),
		slog.Int("page_size", len(events)),
		slog.String("sort_by", f.SortBy),
	)

	return events, total, nil
}
