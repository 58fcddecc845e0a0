package auth

import "net/http"

// HandleMe reports the authenticated user, if any.
// GET /api/auth/me
//
// Always 200: an absent or invalid session is a valid "no user" answer, not
// an auth failure. The response never distinguishes why a session was
// rejected (missing, tampered, expired) to avoid oracle leakage.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Read(r)
	if sess == nil {
		respondJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": sess.User})
}
