package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Encode serializes the session payload to JSON and base64url-encodes it
// without padding. The result is the (unsigned) cookie payload.
func Encode(sess *Session) (string, error) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode: restore base64 padding, decode, unmarshal.
// Malformed padding, an invalid base64 alphabet or invalid JSON all return an
// error value; decoding never panics.
func Decode(token string) (*Session, error) {
	if rem := len(token) % 4; rem != 0 {
		token += strings.Repeat("=", 4-rem)
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid session encoding: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("invalid session payload: %w", err)
	}
	return &sess, nil
}
