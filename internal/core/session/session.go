// Package session implements the stateless cookie session used for VATSIM
// authentication. The session payload lives entirely in a client-held cookie:
// base64url(JSON payload) + "." + base64url(HMAC-SHA256), signed with a
// server-wide secret. There is no server-side session table.
package session

import "time"

// User is the normalized VATSIM identity carried inside a session.
// It is immutable once issued and replaced wholesale on re-login.
type User struct {
	CID         string `json:"cid"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Rating      string `json:"rating"`
	PilotRating string `json:"pilotRating"`
	Division    string `json:"division"`
}

// Session is the payload stored in the signed session cookie.
// ExpiresAt is an absolute epoch-millisecond instant; a zero value means the
// session does not expire on its own (the cookie's Max-Age still applies).
type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt,omitempty"`
}

// Expired reports whether the payload's own expiry has elapsed.
// An absent (zero) ExpiresAt is treated as non-expiring.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return now.UnixMilli() > s.ExpiresAt
}
