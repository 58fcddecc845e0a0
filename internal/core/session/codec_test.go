package session

import (
	"strings"
	"testing"
	"time"
)

func timeNowFixed() time.Time {
	return time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sess := &Session{
		User: User{
			CID:         "1234567",
			FirstName:   "Alice",
			LastName:    "Smith",
			FullName:    "Alice Smith",
			Email:       "alice@example.com",
			Country:     "GB",
			Rating:      "C1",
			PilotRating: "P2",
			Division:    "GBR",
		},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    1700000000000,
	}

	token, err := Encode(sess)
	if err != nil {
		t.Fatalf("failed to encode session: %v", err)
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("encoded payload should be unpadded base64url, got %q", token)
	}

	decoded, err := Decode(token)
	if err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if *decoded != *sess {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, sess)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, input := range []string{
		"not base64!!!",
		"aGVsbG8", // valid base64 of "hello", not JSON
		"",
	} {
		if _, err := Decode(input); err == nil {
			t.Errorf("expected decode error for %q", input)
		}
	}
}

func TestDecodeAcceptsPaddedInput(t *testing.T) {
	sess := &Session{User: User{CID: "999"}}
	token, err := Encode(sess)
	if err != nil {
		t.Fatalf("failed to encode session: %v", err)
	}

	// Some clients send the cookie back with padding restored.
	padded := token
	if rem := len(padded) % 4; rem != 0 {
		padded += strings.Repeat("=", 4-rem)
	}
	decoded, err := Decode(padded)
	if err != nil {
		t.Fatalf("failed to decode padded payload: %v", err)
	}
	if decoded.User.CID != "999" {
		t.Errorf("got CID %q, want %q", decoded.User.CID, "999")
	}
}

func TestExpired(t *testing.T) {
	sess := &Session{}
	if sess.Expired(timeNowFixed()) {
		t.Error("session without expiresAt should never expire")
	}

	now := timeNowFixed()
	sess.ExpiresAt = now.UnixMilli() - 1
	if !sess.Expired(now) {
		t.Error("session with expiry in the past should be expired")
	}

	sess.ExpiresAt = now.UnixMilli() + 1
	if sess.Expired(now) {
		t.Error("session with expiry in the future should not be expired")
	}

	// The boundary instant itself is still valid.
	sess.ExpiresAt = now.UnixMilli()
	if sess.Expired(now) {
		t.Error("session expiring exactly now should still be valid")
	}
}
