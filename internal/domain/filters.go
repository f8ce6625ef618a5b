package domain

import (
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/genneg/SwingRadar-sub000/pkg/errors"
	"github.com/genneg/SwingRadar-sub000/pkg/validator"
)

// Sort modes accepted by the search API. Distance and price are accepted for
// compatibility but have no backing data yet; the engines degrade them to
// date ordering. Popularity currently degrades to name ordering.
const (
	SortRelevance  = "relevance"
	SortDate       = "date"
	SortDistance   = "distance"
	SortPopularity = "popularity"
	SortPrice      = "price"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// SearchFilters is the canonical, bounded form of a raw search request.
// Empty strings mean "not set", never a literal empty-string match.
type SearchFilters struct {
	Page          int      `json:"page" validate:"gte=1"`
	Limit         int      `json:"limit" validate:"gte=1,lte=100"`
	Query         string   `json:"query"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	TeacherNames  []string `json:"teacherNames"`
	MusicianNames []string `json:"musicianNames"`
	SortBy        string   `json:"sortBy" validate:"oneof=relevance date distance popularity price"`
	SortOrder     string   `json:"sortOrder" validate:"oneof=asc desc"`
}

// HasQuery reports whether a free-text query is set.
func (f *SearchFilters) HasQuery() bool { return f.Query != "" }

// HasNamedFilters reports whether explicit teacher/musician name filters are
// set. Named filters select the flat-score matching mode and take precedence
// over free-text ranking.
func (f *SearchFilters) HasNamedFilters() bool {
	return len(f.TeacherNames) > 0 || len(f.MusicianNames) > 0
}

// Offset returns the LIMIT/OFFSET offset for the current page.
func (f *SearchFilters) Offset() int { return (f.Page - 1) * f.Limit }

// ParseSearchFilters normalizes raw query parameters into SearchFilters.
// Page and limit are clamped (page >= 1, limit in [1,100]) with defaults for
// missing or non-numeric values. Unknown sortBy/sortOrder values are rejected
// with an invalid-input error rather than silently coerced. Pure function.
func ParseSearchFilters(values url.Values) (*SearchFilters, error) {
	f := &SearchFilters{
		Page:      1,
		Limit:     DefaultLimit,
		SortBy:    SortRelevance,
		SortOrder: OrderDesc,
	}

	if v := values.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 1 {
			f.Page = page
		}
	}
	if v := values.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			switch {
			case limit > MaxLimit:
				f.Limit = MaxLimit
			case limit >= 1:
				f.Limit = limit
			}
		}
	}

	f.Query = strings.TrimSpace(values.Get("query"))
	f.City = strings.TrimSpace(values.Get("city"))
	f.Country = strings.TrimSpace(values.Get("country"))

	f.TeacherNames = splitNames(values.Get("teachers"))
	f.MusicianNames = splitNames(values.Get("musicians"))

	if v := values.Get("sortBy"); v != "" {
		f.SortBy = v
	}
	if v := values.Get("sortOrder"); v != "" {
		f.SortOrder = v
	}

	if err := validator.Validate(f); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	return f, nil
}

// splitNames parses a comma-separated name list, trimming entries and
// dropping empties.
func splitNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return names
}
