package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("failed to generate state: %v", err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatalf("failed to generate state: %v", err)
	}
	if a == b {
		t.Error("two generated states should never collide")
	}
	// 32 random bytes encode to 43 base64url characters.
	if len(a) != 43 {
		t.Errorf("got state length %d, want 43", len(a))
	}
}

func TestIssueStateSetsCookie(t *testing.T) {
	store := newTestStore(t)
	rec := httptest.NewRecorder()
	store.IssueState(rec, "state-value")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected exactly one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != StateCookieName || c.Value != "state-value" {
		t.Errorf("unexpected state cookie %+v", c)
	}
	if c.MaxAge != StateMaxAge {
		t.Errorf("got MaxAge %d, want %d", c.MaxAge, StateMaxAge)
	}
	if !c.HttpOnly {
		t.Error("state cookie must be HttpOnly")
	}
}

func TestConsumeStateIsSingleUse(t *testing.T) {
	store := newTestStore(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: StateCookieName, Value: "state-value"})

	rec := httptest.NewRecorder()
	if got := store.ConsumeState(rec, req); got != "state-value" {
		t.Errorf("got state %q, want %q", got, "state-value")
	}

	// The deletion cookie is always written, even though the value was read.
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected exactly one cookie, got %d", len(cookies))
	}
	if c := cookies[0]; c.Name != StateCookieName || c.MaxAge != -1 {
		t.Errorf("expected state deletion cookie, got %+v", c)
	}
}

func TestConsumeStateMissingCookie(t *testing.T) {
	store := newTestStore(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if got := store.ConsumeState(rec, req); got != "" {
		t.Errorf("got state %q, want empty", got)
	}
	// A deletion cookie is still written unconditionally.
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("expected unconditional deletion cookie, got %+v", cookies)
	}
}
