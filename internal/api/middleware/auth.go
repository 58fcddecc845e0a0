package middleware

import (
	"context"
	"net/http"

	"vahub/internal/core/session"
)

type contextKey string

// sessionKey carries the verified *session.Session through the request
// context.
const sessionKey contextKey = "session"

// SessionAuth injects the verified session into the request context.
type SessionAuth struct {
	sessions *session.Store
}

// NewSessionAuth creates the session middleware around the cookie store.
func NewSessionAuth(sessions *session.Store) *SessionAuth {
	return &SessionAuth{sessions: sessions}
}

// WithSession attaches the session to the context when a valid one is
// present and continues either way. Handlers that serve both anonymous and
// authenticated viewers (public profiles) use this.
func (m *SessionAuth) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := m.sessions.Read(r); sess != nil {
			r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession rejects unauthenticated requests with 401 and otherwise
// attaches the session to the context.
func (m *SessionAuth) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.sessions.Read(r)
		if sess == nil {
			writeAuthError(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

// SessionFromContext returns the verified session, or nil for anonymous
// requests.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

// SessionCID returns the authenticated CID, or "" for anonymous requests.
func SessionCID(ctx context.Context) string {
	if sess := SessionFromContext(ctx); sess != nil {
		return sess.User.CID
	}
	return ""
}

// SetTestSession injects a session into the context. Tests only.
func SetTestSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized","message":"` + message + `"}`))
}
