package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// MinSecretLength is the minimum session secret size in bytes. A shorter
// secret is a fatal configuration error, never a per-request one.
const MinSecretLength = 32

// Signer produces and verifies HMAC-SHA256 signatures over cookie payloads.
type Signer struct {
	secret []byte
}

// NewSigner creates a signer from the server-wide session secret.
func NewSigner(secret string) (*Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d characters", MinSecretLength)
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign returns data + "." + base64url(HMAC-SHA256(data)), no padding.
func (s *Signer) Sign(data string) string {
	return data + "." + s.mac(data)
}

// Verify splits signed on the last dot, recomputes the MAC over the payload
// and compares in constant time. The payload itself is base64url and can
// never contain a dot, so the split is unambiguous. Returns the payload and
// true only on an exact match.
func (s *Signer) Verify(signed string) (string, bool) {
	i := strings.LastIndexByte(signed, '.')
	if i < 0 {
		return "", false
	}
	data, mac := signed[:i], signed[i+1:]
	if !hmac.Equal([]byte(mac), []byte(s.mac(data))) {
		return "", false
	}
	return data, true
}

func (s *Signer) mac(data string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
