// Package event serves the community event listing.
package event

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"vahub/internal/api/handlers"
	"vahub/internal/core/events"
)

// Handler holds the event endpoints.
type Handler struct {
	events events.Service
}

// NewHandler creates the event handler.
func NewHandler(eventService events.Service) *Handler {
	return &Handler{events: eventService}
}

// List returns upcoming community events, newest start date first.
// GET /api/events?category=&featured=true
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := events.ListRequest{
		Category: q.Get("category"),
		Featured: q.Get("featured") == "true",
	}

	list, err := h.events.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, events.ErrUnknownCategory) {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Unknown event category")
			return
		}
		log.Error().Err(err).Msg("failed to list events")
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "Failed to fetch events")
		return
	}

	type eventView struct {
		*events.Event
		Organizer string `json:"organizer"`
		Route     string `json:"route"`
	}
	views := make([]eventView, 0, len(list))
	for _, e := range list {
		views = append(views, eventView{Event: e, Organizer: e.Organizer(), Route: e.Route()})
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    views,
		"count":   len(views),
	})
}
