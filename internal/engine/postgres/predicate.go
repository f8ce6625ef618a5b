package postgres

import (
	"fmt"
	"strings"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/internal/scoring"
)

// queryBuilder accumulates WHERE conditions and positional arguments. All
// user-supplied text is bound as parameters; the SQL fragments themselves are
// assembled only from fixed strings and generated placeholders.
type queryBuilder struct {
	conds []string
	args  []any
}

// arg registers a query argument and returns its placeholder ($n).
func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(cond string) {
	b.conds = append(b.conds, cond)
}

// whereClause renders the accumulated conditions, AND-combined. Returns an
// empty string when there are no conditions.
func (b *queryBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

func teacherExists(cond string) string {
	return "EXISTS (SELECT 1 FROM event_teachers et JOIN teachers t ON t.id = et.teacher_id WHERE et.event_id = e.id AND " + cond + ")"
}

func musicianExists(cond string) string {
	return "EXISTS (SELECT 1 FROM event_musicians em JOIN musicians m ON m.id = em.musician_id WHERE em.event_id = e.id AND " + cond + ")"
}

// buildPredicate adds the combined search predicate for the given filters:
// (named-entity filters OR free-text fan-out), AND-narrowed by the optional
// city/country substring filters. Every combination of present/absent
// filters yields valid SQL; with no filters at all the WHERE clause is
// simply omitted.
func buildPredicate(b *queryBuilder, f *domain.SearchFilters) {
	var matchParts []string

	if len(f.TeacherNames) > 0 {
		p := b.arg(lowerAll(f.TeacherNames))
		matchParts = append(matchParts, teacherExists("lower(t.name) = ANY("+p+")"))
	}
	if len(f.MusicianNames) > 0 {
		p := b.arg(lowerAll(f.MusicianNames))
		matchParts = append(matchParts, musicianExists("lower(m.name) = ANY("+p+")"))
	}

	if f.HasQuery() {
		sub := b.arg("%" + f.Query + "%")
		matchParts = append(matchParts,
			"e.name ILIKE "+sub,
			"e.description ILIKE "+sub,
			"e.city ILIKE "+sub,
			"e.country ILIKE "+sub,
			"e.style ILIKE "+sub,
			teacherExists("t.name ILIKE "+sub),
			musicianExists("m.name ILIKE "+sub),
		)
	}

	if len(matchParts) > 0 {
		b.where("(" + strings.Join(matchParts, " OR ") + ")")
	}

	if f.City != "" {
		b.where("e.city ILIKE " + b.arg("%"+f.City+"%"))
	}
	if f.Country != "" {
		b.where("e.country ILIKE " + b.arg("%"+f.Country+"%"))
	}
}

// scoreExpression renders the relevance score as a typed SQL expression.
// Named-filter mode produces the flat score; free-text mode renders the
// scoring ladder as a CASE whose branches are evaluated in ladder order.
// Without either, the score is a constant zero.
func scoreExpression(b *queryBuilder, f *domain.SearchFilters) string {
	if f.SortBy != domain.SortRelevance {
		return "0::float8"
	}
	if f.HasNamedFilters() {
		return fmt.Sprintf("%d::float8", scoring.NamedFilterScore)
	}
	if !f.HasQuery() {
		return "0::float8"
	}

	exact := b.arg(strings.ToLower(f.Query))
	prefix := b.arg(f.Query + "%")
	sub := b.arg("%" + f.Query + "%")

	var sb strings.Builder
	sb.WriteString("(CASE")
	for _, tier := range scoring.Ladder() {
		sb.WriteString(" WHEN ")
		sb.WriteString(tierCondition(tier, exact, prefix, sub))
		fmt.Fprintf(&sb, " THEN %d", tier.Score)
	}
	sb.WriteString(" ELSE 0 END)::float8")
	return sb.String()
}

func tierCondition(tier scoring.Tier, exact, prefix, sub string) string {
	switch tier.Field {
	case scoring.FieldTeacher:
		if tier.Match == scoring.MatchExact {
			return teacherExists("lower(t.name) = " + exact)
		}
		return teacherExists("t.name ILIKE " + sub)
	case scoring.FieldMusician:
		if tier.Match == scoring.MatchExact {
			return musicianExists("lower(m.name) = " + exact)
		}
		return musicianExists("m.name ILIKE " + sub)
	}

	col := "e." + string(tier.Field)
	switch tier.Match {
	case scoring.MatchExact:
		return "lower(" + col + ") = " + exact
	case scoring.MatchPrefix:
		return col + " ILIKE " + prefix
	default:
		return col + " ILIKE " + sub
	}
}

// orderClause renders the ORDER BY expression for the validated sort
// directives. Relevance orders by the computed score with an ascending
// start-date tie-break; popularity degrades to name order and the
// distance/price modes degrade to date order (no backing data yet).
func orderClause(f *domain.SearchFilters) string {
	dir := "DESC"
	if f.SortOrder == domain.OrderAsc {
		dir = "ASC"
	}

	switch f.SortBy {
	case domain.SortRelevance:
		return "search_rank " + dir + ", e.start_date ASC"
	case domain.SortPopularity:
		return "e.name " + dir
	default:
		return "e.start_date " + dir
	}
}

func lowerAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
