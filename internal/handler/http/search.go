package http

import (
	"log/slog"
	"net/http"

	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/internal/service"
	"github.com/genneg/SwingRadar-sub000/pkg/httputil"
)

// SearchHandler handles HTTP requests for the event search endpoint.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// Search handles GET /api/v1/search. Query parameters: page, limit, query,
// city, country, sortBy, sortOrder, teachers, musicians.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	filters, err := domain.ParseSearchFilters(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.Search(r.Context(), filters)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, result)
}
