package auth

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"vahub/internal/core/session"
	"vahub/internal/core/vatsim"
)

// Machine-readable error tags carried back to the login origin. The user
// sees only the tag; the underlying cause stays in the server log.
const (
	errOAuth          = "oauth_error"
	errMissingCode    = "missing_code"
	errMissingState   = "missing_state"
	errInvalidState   = "invalid_state"
	errCallbackFailed = "callback_failed"
)

// HandleCallback completes the OAuth flow.
// GET /api/auth/callback?code=...&state=...[&error=...]
//
// Steps run in strict order and each failure short-circuits into a redirect
// carrying its tag. The stored CSRF state is consumed (read and cleared)
// before the comparison, so a state can never be validated twice. No partial
// session is ever issued: the cookie is set only after exchange, identity
// fetch and pilot indexing have all succeeded.
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		log.Warn().
			Str("error", errParam).
			Str("description", q.Get("error_description")).
			Msg("oauth callback returned provider error")
		redirectError(w, r, errOAuth)
		return
	}

	code := q.Get("code")
	if code == "" {
		redirectError(w, r, errMissingCode)
		return
	}

	state := q.Get("state")
	if state == "" {
		redirectError(w, r, errMissingState)
		return
	}

	// Read-then-clear, unconditionally: the state cookie must be gone even
	// when the comparison below fails, or a captured state could be replayed.
	stored := h.sessions.ConsumeState(w, r)
	if stored == "" || state != stored {
		log.Warn().Msg("oauth state mismatch")
		redirectError(w, r, errInvalidState)
		return
	}

	ctx := r.Context()

	tokens, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		logProviderFailure("token exchange", err)
		redirectError(w, r, errCallbackFailed)
		return
	}

	identity, err := h.provider.FetchIdentity(ctx, tokens.AccessToken)
	if err != nil {
		logProviderFailure("identity fetch", err)
		redirectError(w, r, errCallbackFailed)
		return
	}

	user := vatsim.Normalize(identity)

	if err := h.pilots.IndexPilot(ctx, user); err != nil {
		log.Error().Err(err).Str("cid", user.CID).Msg("failed to index pilot after login")
		redirectError(w, r, errCallbackFailed)
		return
	}

	sess := &session.Session{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    time.Now().UnixMilli() + tokens.ExpiresIn*1000,
	}
	if err := h.sessions.Issue(w, sess); err != nil {
		log.Error().Err(err).Msg("failed to issue session")
		redirectError(w, r, errCallbackFailed)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func redirectError(w http.ResponseWriter, r *http.Request, tag string) {
	http.Redirect(w, r, "/?error="+tag, http.StatusFound)
}

// logProviderFailure records what the user never sees: which call failed and,
// when the provider answered at all, the status class (4xx bad/expired code
// vs 5xx provider down).
func logProviderFailure(op string, err error) {
	evt := log.Error().Err(err).Str("op", op)
	if status := vatsim.StatusCode(err); status != 0 {
		evt = evt.Int("providerStatus", status)
	}
	evt.Msg("oauth callback failed")
}
