package pilot

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vahub/internal/api/handlers"
	"vahub/internal/api/middleware"
)

// GetAirlines lists the authenticated pilot's airline memberships.
// GET /api/pilot/airlines
func (h *Handler) GetAirlines(w http.ResponseWriter, r *http.Request) {
	list, err := h.airlines.ListForPilot(r.Context(), middleware.SessionCID(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"airlines": list})
}

// LeaveAirline removes the pilot's membership. Owners are refused.
// POST /api/pilot/airlines/{id}/leave
func (h *Handler) LeaveAirline(w http.ResponseWriter, r *http.Request) {
	airlineID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid airline ID")
		return
	}

	if err := h.airlines.Leave(r.Context(), middleware.SessionCID(r.Context()), airlineID); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Successfully left the airline",
	})
}

// GetInvitations lists the pilot's pending airline invitations.
// GET /api/pilot/invitations
func (h *Handler) GetInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.airlines.ListInvitations(r.Context(), middleware.SessionCID(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"invitations": invitations})
}

// RespondToInvitation accepts or declines a pending invitation.
// POST /api/pilot/invitations/{id}  body: {"action":"accept"|"decline"}
func (h *Handler) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid invitation ID")
		return
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	cid := middleware.SessionCID(r.Context())
	if err := h.airlines.RespondToInvitation(r.Context(), cid, invitationID, req.Action); err != nil {
		handleServiceError(w, err)
		return
	}

	message := "Invitation accepted"
	if req.Action == "decline" {
		message = "Invitation declined"
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": message})
}
