package routes

import (
	"vahub/internal/api/handlers/event"
	"vahub/internal/core/events"

	"github.com/go-chi/chi/v5"
)

// RegisterEventRoutes registers the public event listing
func RegisterEventRoutes(r chi.Router, eventService events.Service) {
	handler := event.NewHandler(eventService)

	// GET /api/events?category=&featured=
	r.Get("/api/events", handler.List)
}
