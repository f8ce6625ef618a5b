// Package fallback implements the degraded-but-always-available search path.
// It is intentionally less expressive than the optimized engine: substring
// matching only, no relevance scoring, date or name ordering. Correctness of
// the system must not depend on the optimized path; this engine is the
// availability floor, and its failure is terminal.
package fallback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/pkg/database"
)

const (
	teachersAggExpr  = "(SELECT coalesce(array_agg(t.name ORDER BY t.name), '{}') FROM event_teachers et JOIN teachers t ON t.id = et.teacher_id WHERE et.event_id = e.id)"
	musiciansAggExpr = "(SELECT coalesce(array_agg(m.name ORDER BY m.name), '{}') FROM event_musicians em JOIN musicians m ON m.id = em.musician_id WHERE em.event_id = e.id)"
)

// Engine is the simplified Postgres search engine.
type Engine struct {
	db     database.DBTX
	logger *slog.Logger
}

// New creates the fallback engine.
func New(db database.DBTX, logger *slog.Logger) *Engine {
	return &Engine{db: db, logger: logger}
}

// Name identifies this engine in search metadata.
func (e *Engine) Name() string { return domain.SearchTypeFallback }

// Search runs the simplified count and page queries. Named-entity filters
// are not supported on this path and are ignored; the relevance score is
// always zero.
func (e *Engine) Search(ctx context.Context, f *domain.SearchFilters) ([]domain.RankedEvent, int, error) {
	var (
		conds []string
		args  []any
	)

	if f.HasQuery() {
		p := fmt.Sprintf("$%d", len(args)+1)
		args = append(args, "%"+f.Query+"%")
		conds = append(conds, fmt.Sprintf(
			"(e.name ILIKE %[1]s OR e.description ILIKE %[1]s OR e.city ILIKE %[1]s OR e.country ILIKE %[1]s OR e.style ILIKE %[1]s)", p,
		))
	}
	if f.City != "" {
		args = append(args, "%"+f.City+"%")
		conds = append(conds, fmt.Sprintf("e.city ILIKE $%d", len(args)))
	}
	if f.Country != "" {
		args = append(args, "%"+f.Country+"%")
		conds = append(conds, fmt.Sprintf("e.country ILIKE $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := e.db.QueryRow(ctx, "SELECT count(*) FROM events e "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("fallback count events: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	args = append(args, f.Limit, f.Offset())
	pageSQL := fmt.Sprintf(
		"SELECT e.id, e.name, e.description, e.start_date, e.end_date, e.city, e.country, e.style, coalesce(e.image_url, ''), %s AS teachers, %s AS musicians FROM events e %s ORDER BY %s LIMIT $%d OFFSET $%d",
		teachersAggExpr, musiciansAggExpr, where, orderClause(f), len(args)-1, len(args),
	)

	rows, err := e.db.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("fallback query events page: %w", err)
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
		); err != nil {
			return nil, 0, fmt.Errorf("fallback scan event row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("fallback iterate event rows: %w", err)
	}

	e.logger.DebugContext(ctx, "fallback search executed",
		slog.Int("total", total),
		slog.Int("page_size", len(events)),
	)

	return events, total, nil
}

// orderClause supports date ordering plus name ordering as the stand-in for
// the popularity sort. Every other sort mode degrades to date.
func orderClause(f *domain.SearchFilters) string {
	dir := "DESC"
	if f.SortOrder == domain.OrderAsc {
		dir = "ASC"
	}
	if f.SortBy == domain.SortPopularity {
		return "e.name " + dir
	}
	return "e.start_date " + dir
}
