package session

import (
	"net/http"
	"time"
)

const (
	// CookieName is the signed session cookie.
	CookieName = "vatsim_session"

	// SessionMaxAge is the transport cookie lifetime in seconds (7 days).
	// The payload carries its own expiresAt, checked independently.
	SessionMaxAge = 7 * 24 * 60 * 60
)

// Store issues, reads and clears the signed session cookie. It composes the
// codec and the signer; it holds no per-request state and is safe for
// concurrent use.
type Store struct {
	signer *Signer
	secure bool
	now    func() time.Time
}

// NewStore creates a session store. secure controls the cookie Secure
// attribute and should be true in production.
func NewStore(secret string, secure bool) (*Store, error) {
	signer, err := NewSigner(secret)
	if err != nil {
		return nil, err
	}
	return &Store{signer: signer, secure: secure, now: time.Now}, nil
}

// Issue writes the signed session cookie. It sets exactly one response
// cookie and mutates nothing else.
func (st *Store) Issue(w http.ResponseWriter, sess *Session) error {
	payload, err := Encode(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    st.signer.Sign(payload),
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the verified, unexpired session from the request, or nil.
// Missing cookie, bad signature, bad encoding and elapsed expiry all yield
// nil; Read never fails and never mutates anything, so it is safe to call
// more than once per request. The expiry check runs only after signature
// verification.
func (st *Store) Read(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	payload, ok := st.signer.Verify(cookie.Value)
	if !ok {
		return nil
	}
	sess, err := Decode(payload)
	if err != nil {
		return nil
	}
	if sess.Expired(st.now()) {
		return nil
	}
	return sess
}

// Clear deletes the session cookie. Attributes must match the ones used at
// issue time, path included, or browsers will keep the cookie.
func (st *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
