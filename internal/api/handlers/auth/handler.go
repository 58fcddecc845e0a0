// Package auth implements the VATSIM Connect login flow: login redirect,
// OAuth callback, session introspection and logout.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"vahub/internal/core/pilots"
	"vahub/internal/core/session"
	"vahub/internal/core/vatsim"
)

// Provider is the slice of the VATSIM client the auth flow needs.
// Satisfied by *vatsim.Client.
type Provider interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*vatsim.TokenResponse, error)
	FetchIdentity(ctx context.Context, accessToken string) (*vatsim.Identity, error)
}

// Handler holds the auth endpoints.
type Handler struct {
	sessions *session.Store
	provider Provider
	pilots   pilots.Service
}

// NewHandler creates the auth handler.
func NewHandler(sessions *session.Store, provider Provider, pilotService pilots.Service) *Handler {
	return &Handler{
		sessions: sessions,
		provider: provider,
		pilots:   pilotService,
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
