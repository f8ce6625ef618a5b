package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/pkg/database"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eventRowColumns() []string {
	return []string{
		"id", "name", "description", "start_date", "end_date",
		"city", "country", "style", "image_url",
		"teachers", "musicians", "search_rank",
	}
}

func TestSearch_CountThenRankedPage(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	mock.ExpectQuery(`SELECT count\(\*\) FROM events e WHERE`).
		WithArgs("%blues%").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`AS search_rank FROM events e WHERE .+ ORDER BY search_rank DESC, e\.start_date ASC LIMIT \$5 OFFSET \$6`).
		WithArgs("%blues%", "blues", "blues%", "%blues%", 20, 0).
		WillReturnRows(mock.NewRows(eventRowColumns()).AddRow(
			"e1", "Blues Festival Madrid", "A weekend of blues", start, end,
			"Madrid", "Spain", "blues", "/uploads/e1.jpg",
			[]string{"Vicci Moore"}, []string{}, float64(80),
		))

	eng := New(mock, testLogger())
	f := &domain.SearchFilters{
		Page: 1, Limit: 20, Query: "blues",
		SortBy: domain.SortRelevance, SortOrder: domain.OrderDesc,
	}

	got, total, err := eng.Search(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, float64(80), got[0].SearchRank)
	assert.Equal(t, []string{"Vicci Moore"}, got[0].Teachers)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_ZeroTotalSkipsPageQuery(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM events e`).
		WithArgs("%nothing%").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(0))

	eng := New(mock, testLogger())
	f := &domain.SearchFilters{
		Page: 1, Limit: 20, Query: "nothing",
		SortBy: domain.SortRelevance, SortOrder: domain.OrderDesc,
	}

	got, total, err := eng.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_NoFiltersOmitsWhere(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM events e$`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`ORDER BY e\.start_date DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(mock.NewRows(eventRowColumns()).AddRow(
			"e1", "Herrang Dance Camp", "", start, start.AddDate(0, 0, 7),
			"Herrang", "Sweden", "lindy hop", "",
			[]string{}, []string{}, float64(0),
		))

	eng := New(mock, testLogger())
	f := &domain.SearchFilters{
		Page: 1, Limit: 20,
		SortBy: domain.SortDate, SortOrder: domain.OrderDesc,
	}

	got, total, err := eng.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].SearchRank)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_NamedFiltersUseFlatScore(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM events e WHERE \(EXISTS`).
		WithArgs([]string{"vicci moore"}).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`90::float8 AS search_rank`).
		WithArgs([]string{"vicci moore"}, 20, 0).
		WillReturnRows(mock.NewRows(eventRowColumns()).AddRow(
			"e3", "Lindy Exchange Berlin", "", start, start.AddDate(0, 0, 2),
			"Berlin", "Germany", "lindy hop", "",
			[]string{"Vicci Moore"}, []string{}, float64(90),
		))

	eng := New(mock, testLogger())
	f := &domain.SearchFilters{
		Page: 1, Limit: 20,
		TeacherNames: []string{"Vicci Moore"},
		SortBy:       domain.SortRelevance, SortOrder: domain.OrderDesc,
	}

	got, total, err := eng.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, float64(90), got[0].SearchRank)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_CountErrorPropagates(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM events e`).
		WillReturnError(errors.New("connection refused"))

	eng := New(mock, testLogger())
	f := &domain.SearchFilters{
		Page: 1, Limit: 20,
		SortBy: domain.SortDate, SortOrder: domain.OrderDesc,
	}

	_, _, err = eng.Search(context.Background(), f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count events")
}

func TestName(t *testing.T) {
	assert.Equal(t, domain.SearchTypeOptimized, (&Engine{}).Name())
}
