package routes

import (
	"vahub/internal/api/handlers/airline"
	"vahub/internal/core/airlines"

	"github.com/go-chi/chi/v5"
)

// RegisterAirlineRoutes registers the public airline directory
func RegisterAirlineRoutes(r chi.Router, airlineService airlines.Service) {
	handler := airline.NewHandler(airlineService)

	// GET /api/airlines?search=&region=&size=&sortBy=
	r.Get("/api/airlines", handler.List)
}
