// Package scoring defines the relevance ladder used to rank events against a
// free-text query. The ladder is plain data so the optimized engine can
// render it into a parameterized SQL CASE expression while the in-memory
// engine and tests evaluate it directly in Go; both paths share the exact
// same tiers and ordering.
package scoring

import (
	"strings"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
)

// Field identifies the event attribute a tier matches against.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldCity        Field = "city"
	FieldCountry     Field = "country"
	FieldStyle       Field = "style"
	FieldTeacher     Field = "teacher"
	FieldMusician    Field = "musician"
)

// MatchKind is how a tier compares the field to the query. All comparisons
// are case-insensitive.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchPrefix    MatchKind = "prefix"
	MatchSubstring MatchKind = "substring"
)

// Tier is one rung of the relevance ladder.
type Tier struct {
	Field Field
	Match MatchKind
	Score int
}

// NamedFilterScore is the flat score assigned to every event matched by
// explicit teacher/musician name filters. Named filtering is a distinct mode
// from free-text ranking, not a blend with the ladder.
const NamedFilterScore = 90

// ladder is evaluated top to bottom; the first matching tier wins. The order
// is intentional and not sorted by score: a name-prefix match (80) outranks
// an exact teacher match (90) because it is tested first. Changing the order
// changes ranking behavior.
var ladder = []Tier{
	{FieldName, MatchExact, 100},
	{FieldName, MatchPrefix, 80},
	{FieldTeacher, MatchExact, 90},
	{FieldTeacher, MatchSubstring, 70},
	{FieldMusician, MatchExact, 85},
	{FieldMusician, MatchSubstring, 65},
	{FieldName, MatchSubstring, 60},
	{FieldDescription, MatchSubstring, 40},
	{FieldCity, MatchSubstring, 30},
	{FieldStyle, MatchSubstring, 25},
	{FieldCountry, MatchSubstring, 20},
}

// Ladder returns the relevance tiers in evaluation order.
func Ladder() []Tier {
	out := make([]Tier, len(ladder))
	copy(out, ladder)
	return out
}

// ScoreEvent evaluates the ladder against an event in Go. Returns 0 when no
// field matches or the query is empty.
func ScoreEvent(e *domain.Event, query string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	for _, tier := range ladder {
		if tierMatches(e, tier, q) {
			return float64(tier.Score)
		}
	}
	return 0
}

func tierMatches(e *domain.Event, tier Tier, q string) bool {
	switch tier.Field {
	case FieldTeacher:
		return anyNameMatches(e.Teachers, tier.Match, q)
	case FieldMusician:
		return anyNameMatches(e.Musicians, tier.Match, q)
	default:
		return valueMatches(fieldValue(e, tier.Field), tier.Match, q)
	}
}

func fieldValue(e *domain.Event, f Field) string {
	switch f {
	case FieldName:
		return e.Name
	case FieldDescription:
		return e.Description
	case FieldCity:
		return e.City
	case FieldCountry:
		return e.Country
	case FieldStyle:
		return e.Style
	}
	return ""
}

func valueMatches(value string, match MatchKind, q string) bool {
	v := strings.ToLower(value)
	switch match {
	case MatchExact:
		return v == q
	case MatchPrefix:
		return strings.HasPrefix(v, q)
	case MatchSubstring:
		return strings.Contains(v, q)
	}
	return false
}

func anyNameMatches(names []string, match MatchKind, q string) bool {
	for _, n := range names {
		if valueMatches(n, match, q) {
			return true
		}
	}
	return false
}

// MatchesNamedFilters reports whether an event carries at least one of the
// given teacher or musician names. Matching is case-insensitive exact
// equality, not substring.
func MatchesNamedFilters(e *domain.Event, teacherNames, musicianNames []string) bool {
	return anyExactName(e.Teachers, teacherNames) || anyExactName(e.Musicians, musicianNames)
}

func anyExactName(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
