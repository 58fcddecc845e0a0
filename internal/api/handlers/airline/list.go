// Package airline serves the public airline directory.
package airline

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"vahub/internal/api/handlers"
	"vahub/internal/core/airlines"
)

// Handler holds the airline directory endpoints.
type Handler struct {
	airlines airlines.Service
}

// NewHandler creates the airline handler.
func NewHandler(airlineService airlines.Service) *Handler {
	return &Handler{airlines: airlineService}
}

// List returns the airline directory with search, region, size and sort
// parameters.
// GET /api/airlines?search=&region=&size=&sortBy=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := airlines.ListRequest{
		Search: q.Get("search"),
		Region: q.Get("region"),
		Size:   q.Get("size"),
		SortBy: q.Get("sortBy"),
	}

	list, err := h.airlines.List(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("failed to list airlines")
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "Failed to fetch airlines")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    list,
		"count":   len(list),
	})
}
