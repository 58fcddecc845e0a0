// Package pilot serves pilot profile, statistics, membership and invitation
// endpoints.
package pilot

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"vahub/internal/api/handlers"
	"vahub/internal/core/airlines"
	"vahub/internal/core/pilots"
	"vahub/internal/core/vatsim"
)

// Handler holds the pilot-facing endpoints.
type Handler struct {
	pilots   pilots.Service
	airlines airlines.Service
}

// NewHandler creates the pilot handler.
func NewHandler(pilotService pilots.Service, airlineService airlines.Service) *Handler {
	return &Handler{pilots: pilotService, airlines: airlineService}
}

// handleServiceError maps domain errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pilots.ErrPilotNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Pilot not found")
	case errors.Is(err, vatsim.ErrPilotNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Pilot not found on VATSIM")
	case errors.Is(err, airlines.ErrMembershipNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Membership not found")
	case errors.Is(err, airlines.ErrInvitationNotFound):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Invitation not found")
	case errors.Is(err, airlines.ErrOwnerCannotLeave):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest",
			"Owners cannot leave their airline. Transfer ownership first or delete the airline.")
	case errors.Is(err, airlines.ErrInvalidAction):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	default:
		log.Error().Err(err).Msg("pilot handler error")
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
