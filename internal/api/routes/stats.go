package routes

import (
	statshandler "vahub/internal/api/handlers/stats"
	"vahub/internal/core/stats"

	"github.com/go-chi/chi/v5"
)

// RegisterStatsRoutes registers leaderboard, platform and activity endpoints
func RegisterStatsRoutes(r chi.Router, statsService stats.Service) {
	handler := statshandler.NewHandler(statsService)

	r.Get("/api/statistics/leaderboard/pilots", handler.PilotLeaderboard)
	r.Get("/api/statistics/leaderboard/airlines", handler.AirlineLeaderboard)
	r.Get("/api/statistics/platform", handler.Platform)
	r.Get("/api/statistics/activity", handler.Activity)
}
