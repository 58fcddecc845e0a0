package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
)

const (
	// StateCookieName holds the one-time CSRF state during the OAuth round trip.
	StateCookieName = "oauth_state"

	// StateMaxAge bounds how long a login attempt may stay in flight (10 minutes).
	StateMaxAge = 10 * 60

	// stateLength is the number of random bytes behind the state parameter.
	// 32 bytes gives 256 bits of entropy.
	stateLength = 32
)

// GenerateState returns a cryptographically random, URL-safe state token.
func GenerateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// IssueState stores the CSRF state in its short-lived cookie.
func (st *Store) IssueState(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   StateMaxAge,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ConsumeState reads the stored state and clears the cookie in the same
// call. The cookie is deleted regardless of what the caller later decides
// about the value, so a state can never be replayed.
func (st *Store) ConsumeState(w http.ResponseWriter, r *http.Request) string {
	var state string
	if cookie, err := r.Cookie(StateCookieName); err == nil {
		state = cookie.Value
	}
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return state
}
