package auth

import "net/http"

// HandleLogout ends the session.
// POST /api/auth/logout
//
// Clearing the cookie is the whole logout: sessions are client-held, so
// there is nothing server-side to revoke.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
