package auth

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"vahub/internal/core/session"
)

// HandleLogin initiates the OAuth flow.
// GET /api/auth/login
//
// Mints the one-time CSRF state, stores it in its short-lived cookie and
// redirects the browser to the VATSIM Connect authorization page.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := session.GenerateState()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate oauth state")
		http.Error(w, "Failed to initiate login", http.StatusInternalServerError)
		return
	}

	h.sessions.IssueState(w, state)
	http.Redirect(w, r, h.provider.AuthorizationURL(state), http.StatusFound)
}
