// Package stats serves leaderboards, platform totals and the recent
// activity feed.
package stats

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"vahub/internal/api/handlers"
	"vahub/internal/core/stats"
)

// Handler holds the statistics endpoints.
type Handler struct {
	stats stats.Service
}

// NewHandler creates the statistics handler.
func NewHandler(statsService stats.Service) *Handler {
	return &Handler{stats: statsService}
}

// PilotLeaderboard returns top pilots by combined hours.
// GET /api/statistics/leaderboard/pilots?limit=
func (h *Handler) PilotLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.stats.PilotLeaderboard(r.Context(), limitParam(r))
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch pilot leaderboard")
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "Failed to fetch pilots leaderboard")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "data": entries})
}

// AirlineLeaderboard returns top active airlines by flight count.
// GET /api/statistics/leaderboard/airlines?limit=
func (h *Handler) AirlineLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.stats.AirlineLeaderboard(r.Context(), limitParam(r))
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch airline leaderboard")
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "Failed to fetch airlines leaderboard")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "data": entries})
}

// Platform returns platform-wide totals.
// GET /api/statistics/platform
func (h *Handler) Platform(w http.ResponseWriter, r *http.Request) {
	p, err := h.stats.Platform(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch platform statistics")
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "Failed to fetch platform statistics")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "data": p})
}

// Activity returns the recent departure/arrival feed.
// GET /api/statistics/activity?limit=
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	activities, err := h.stats.RecentActivity(r.Context(), limitParam(r))
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch activity feed")
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "Failed to fetch recent activity")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "data": activities})
}

func limitParam(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}
