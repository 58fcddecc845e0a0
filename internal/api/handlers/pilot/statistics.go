package pilot

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vahub/internal/api/handlers"
	"vahub/internal/api/middleware"
	"vahub/internal/core/vatsim"
)

// GetStatistics refreshes and returns the authenticated pilot's VATSIM
// statistics.
// GET /api/pilot/statistics
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	h.refreshStatistics(w, r, middleware.SessionCID(r.Context()))
}

// GetPilotStatistics refreshes and returns statistics for any CID. A CID
// unknown to VATSIM is a 404, distinct from provider outages.
// GET /api/pilot/{cid}/statistics
func (h *Handler) GetPilotStatistics(w http.ResponseWriter, r *http.Request) {
	cid := chi.URLParam(r, "cid")
	if cid == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "CID is required")
		return
	}
	h.refreshStatistics(w, r, cid)
}

func (h *Handler) refreshStatistics(w http.ResponseWriter, r *http.Request, cid string) {
	stats, err := h.pilots.RefreshStatistics(r.Context(), cid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// Zero-valued hour blocks keep the response shape stable for clients.
	atc := stats.ATC
	if atc == nil {
		atc = &vatsim.ATCHours{}
	}
	pilotHours := stats.Pilot
	if pilotHours == nil {
		pilotHours = &vatsim.PilotHours{}
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"cid":              stats.ID,
			"atc":              atc,
			"pilot":            pilotHours,
			"regDate":          stats.RegDate,
			"lastRatingChange": stats.LastRatingChange,
			"rating":           stats.Rating,
			"pilotRating":      stats.PilotRating,
			"region":           stats.Region,
			"division":         stats.Division,
		},
	})
}
