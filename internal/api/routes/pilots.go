package routes

import (
	"vahub/internal/api/handlers/pilot"
	"vahub/internal/api/middleware"
	"vahub/internal/core/airlines"
	"vahub/internal/core/pilots"

	"github.com/go-chi/chi/v5"
)

// RegisterPilotRoutes registers pilot profile, statistics and membership endpoints
func RegisterPilotRoutes(
	r chi.Router,
	pilotService pilots.Service,
	airlineService airlines.Service,
	sessionAuth *middleware.SessionAuth,
) {
	handler := pilot.NewHandler(pilotService, airlineService)

	// Own profile - requires an authenticated session
	r.With(sessionAuth.RequireSession).Get("/api/pilot/profile", handler.GetProfile)
	r.With(sessionAuth.RequireSession).Put("/api/pilot/profile", handler.UpdateProfile)
	r.With(sessionAuth.RequireSession).Get("/api/pilot/statistics", handler.GetStatistics)

	// Memberships and invitations
	r.With(sessionAuth.RequireSession).Get("/api/pilot/airlines", handler.GetAirlines)
	r.With(sessionAuth.RequireSession).Post("/api/pilot/airlines/{id}/leave", handler.LeaveAirline)
	r.With(sessionAuth.RequireSession).Get("/api/pilot/invitations", handler.GetInvitations)
	r.With(sessionAuth.RequireSession).Post("/api/pilot/invitations/{id}", handler.RespondToInvitation)

	// Public profile - optional auth so owners see their own gated fields
	r.With(sessionAuth.WithSession).Get("/api/pilot/{cid}", handler.GetPublicProfile)
	r.Get("/api/pilot/{cid}/statistics", handler.GetPilotStatistics)
}
