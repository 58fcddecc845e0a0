package pilot

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vahub/internal/api/handlers"
	"vahub/internal/api/middleware"
	"vahub/internal/core/pilots"
)

// GetProfile returns the authenticated pilot's own full profile.
// GET /api/pilot/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	cid := middleware.SessionCID(r.Context())

	pilot, err := h.pilots.GetByCID(r.Context(), cid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{"pilot": pilot})
}

// UpdateProfile applies a partial update to the pilot's own profile,
// notification and privacy settings.
// PUT /api/pilot/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	cid := middleware.SessionCID(r.Context())

	var req pilots.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := h.pilots.UpdateProfile(r.Context(), cid, req); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetPublicProfile returns another pilot's profile filtered through their
// privacy settings. The viewer may be anonymous; a pilot viewing their own
// CID sees everything.
// GET /api/pilot/{cid}
func (h *Handler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")
	if cid == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "CID is required")
		return
	}

	profile, err := h.pilots.PublicProfile(r.Context(), cid, middleware.SessionCID(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "data": profile})
}
