package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seeded() *Engine {
	e := New()
	e.Add(domain.Event{
		ID:        "e1",
		Name:      "Blues Festival Madrid",
		City:      "Madrid",
		Country:   "Spain",
		Style:     "blues",
		StartDate: date("2026-09-10"),
	})
	e.Add(domain.Event{
		ID:        "e2",
		Name:      "Madrid Blues Weekend",
		City:      "Madrid",
		Country:   "Spain",
		Style:     "blues",
		StartDate: date("2026-05-01"),
	})
	e.Add(domain.Event{
		ID:        "e3",
		Name:      "Lindy Exchange Berlin",
		City:      "Berlin",
		Country:   "Germany",
		Style:     "lindy hop",
		StartDate: date("2026-07-20"),
		Teachers:  []string{"Vicci Moore"},
	})
	return e
}

func baseFilters() *domain.SearchFilters {
	return &domain.SearchFilters{
		Page:      1,
		Limit:     20,
		SortBy:    domain.SortRelevance,
		SortOrder: domain.OrderDesc,
	}
}

func TestSearch_ExactNameMatchRanksFirst(t *testing.T) {
	e := seeded()
	f := baseFilters()
	f.Query = "Blues Festival Madrid"

	got, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)

	require.Equal(t, 1, total)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, float64(100), got[0].SearchRank)
}

func TestSearch_PrefixOutranksSubstring(t *testing.T) {
	e := seeded()
	f := baseFilters()
	f.Query = "blues"

	got, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	// e1 scores 80 (name prefix), e2 scores 60 (name substring).
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, float64(80), got[0].SearchRank)
	assert.Equal(t, "e2", got[1].ID)
	assert.Equal(t, float64(60), got[1].SearchRank)
}

func TestSearch_TieBreakByEarliestStartDate(t *testing.T) {
	e := New()
	e.Add(domain.Event{ID: "late", Name: "Midtown Swing Social", StartDate: date("2026-11-01")})
	e.Add(domain.Event{ID: "early", Name: "Uptown Swing Social", StartDate: date("2026-02-01")})

	f := baseFilters()
	f.Query = "swing social"

	got, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	// Both score 60 (name substring); the earlier start date wins regardless
	// of the descending score order.
	assert.Equal(t, got[0].SearchRank, got[1].SearchRank)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
}

func TestSearch_NamedFiltersFlatScore(t *testing.T) {
	e := seeded()
	f := baseFilters()
	f.TeacherNames = []string{"vicci moore"}

	got, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)

	require.Equal(t, 1, total)
	assert.Equal(t, "e3", got[0].ID)
	assert.Equal(t, float64(90), got[0].SearchRank)
}

func TestSearch_CityFilterNarrows(t *testing.T) {
	e := seeded()
	f := baseFilters()
	f.Query = "blues"
	f.City = "berlin"

	_, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSearch_CountryFilterAlone(t *testing.T) {
	e := seeded()
	f := baseFilters()
	f.Country = "spain"
	f.SortBy = domain.SortDate
	f.SortOrder = domain.OrderAsc

	got, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)

	require.Equal(t, 2, total)
	assert.Equal(t, "e2", got[0].ID)
	assert.Equal(t, "e1", got[1].ID)
}

func TestSearch_DateSortDescending(t *testing.T) {
	e := seeded()
	f := baseFilters()
	f.SortBy = domain.SortDate

	got, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)

	require.Equal(t, 3, total)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "e3", got[1].ID)
	assert.Equal(t, "e2", got[2].ID)
}

func TestSearch_Pagination(t *testing.T) {
	e := seeded()
	f := baseFilters()
	f.SortBy = domain.SortDate
	f.SortOrder = domain.OrderAsc
	f.Limit = 2

	first, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, first, 2)

	f.Page = 2
	second, _, err := e.Search(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.NotContains(t, []string{first[0].ID, first[1].ID}, second[0].ID)
}

func TestSearch_PageBeyondResults(t *testing.T) {
	e := seeded()
	f := baseFilters()
	f.Page = 50

	got, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, got)
}

func TestSearch_RemoveDropsEvent(t *testing.T) {
	e := seeded()
	e.Remove("e1")

	f := baseFilters()
	f.Query = "Blues Festival Madrid"

	got, total, err := e.Search(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "e2", got[0].ID)
}

func TestName(t *testing.T) {
	assert.Equal(t, domain.SearchTypeMemory, New().Name())
}
