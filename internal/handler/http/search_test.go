package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/internal/enrich"
	"github.com/genneg/SwingRadar-sub000/internal/service"
	"github.com/genneg/SwingRadar-sub000/pkg/assets"
)

type stubEngine struct {
	name   string
	events []domain.RankedEvent
	total  int
	err    error
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Search(context.Context, *domain.SearchFilters) ([]domain.RankedEvent, int, error) {
	return s.events, s.total, s.err
}

type emptyStore struct{}

func (emptyStore) VenuesByEventIDs(context.Context, []string) (map[string]domain.Venue, error) {
	return map[string]domain.Venue{}, nil
}

func (emptyStore) PricesByEventIDs(context.Context, []string) (map[string]domain.Price, error) {
	return map[string]domain.Price{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(primary *stubEngine) *SearchHandler {
	log := testLogger()
	enricher := enrich.New(emptyStore{}, assets.NewRewriter("", ""), log)
	svc := service.NewSearchService(primary, nil, enricher, nil, log)
	return NewSearchHandler(svc, log)
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Timestamp string          `json:"timestamp"`
}

func doSearch(t *testing.T, h *SearchHandler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestSearch_OK(t *testing.T) {
	primary := &stubEngine{
		name: domain.SearchTypeOptimized,
		events: []domain.RankedEvent{
			{Event: domain.Event{ID: "e1", Name: "Blues Festival Madrid"}, SearchRank: 100},
		},
		total: 1,
	}
	h := newHandler(primary)

	rec, env := doSearch(t, h, "/api/v1/search?query=blues")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.NotEmpty(t, env.Timestamp)

	var result domain.SearchResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Blues Festival Madrid", result.Events[0].Name)
	assert.Equal(t, float64(100), result.Events[0].SearchRank)
	assert.Equal(t, domain.SearchTypeOptimized, result.SearchMeta.SearchType)
	assert.Equal(t, 1, result.Pagination.Total)
}

func TestSearch_InvalidSortByIsRejected(t *testing.T) {
	h := newHandler(&stubEngine{name: domain.SearchTypeOptimized})

	rec, env := doSearch(t, h, "/api/v1/search?sortBy=sideways")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "must be one of")
	assert.Nil(t, env.Data)
}

func TestSearch_StoreUnavailableMapsTo503(t *testing.T) {
	h := newHandler(&stubEngine{
		name: domain.SearchTypeOptimized,
		err:  errors.New("dial tcp 127.0.0.1:5432: connection refused"),
	})

	rec, env := doSearch(t, h, "/api/v1/search?query=blues")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "search is temporarily unavailable, please try again", env.Error)
}

func TestSearch_QueryTimeoutMapsTo408(t *testing.T) {
	h := newHandler(&stubEngine{
		name: domain.SearchTypeOptimized,
		err:  context.DeadlineExceeded,
	})

	rec, env := doSearch(t, h, "/api/v1/search?query=blues")

	assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "search took too long, please narrow your search", env.Error)
}

func TestSearch_ZeroResults(t *testing.T) {
	h := newHandler(&stubEngine{name: domain.SearchTypeOptimized, total: 0})

	rec, env := doSearch(t, h, "/api/v1/search?query=nothinghere&page=5")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var result domain.SearchResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Empty(t, result.Events)
	assert.Zero(t, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)
}
