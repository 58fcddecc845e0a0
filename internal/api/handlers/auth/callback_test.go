package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vahub/internal/core/pilots"
	"vahub/internal/core/session"
	"vahub/internal/core/vatsim"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// mockProvider implements Provider for handler tests
type mockProvider struct {
	authorizationURL string
	exchangeFunc     func(ctx context.Context, code string) (*vatsim.TokenResponse, error)
	identityFunc     func(ctx context.Context, accessToken string) (*vatsim.Identity, error)
}

func (m *mockProvider) AuthorizationURL(state string) string {
	return m.authorizationURL + "?state=" + state
}

func (m *mockProvider) ExchangeCode(ctx context.Context, code string) (*vatsim.TokenResponse, error) {
	if m.exchangeFunc != nil {
		return m.exchangeFunc(ctx, code)
	}
	return &vatsim.TokenResponse{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		ExpiresIn:    3600,
	}, nil
}

func (m *mockProvider) FetchIdentity(ctx context.Context, accessToken string) (*vatsim.Identity, error) {
	if m.identityFunc != nil {
		return m.identityFunc(ctx, accessToken)
	}
	identity := &vatsim.Identity{CID: "1234567"}
	identity.Personal.NameFirst = "Alice"
	identity.Personal.NameLast = "Smith"
	identity.Personal.NameFull = "Alice Smith"
	identity.Personal.Email = "alice@example.com"
	identity.Vatsim.Rating.Short = "C1"
	return identity, nil
}

// mockPilotService implements pilots.Service for handler tests
type mockPilotService struct {
	indexFunc func(ctx context.Context, user session.User) error
}

func (m *mockPilotService) GetByCID(ctx context.Context, cid string) (*pilots.Pilot, error) {
	return nil, pilots.ErrPilotNotFound
}

func (m *mockPilotService) IndexPilot(ctx context.Context, user session.User) error {
	if m.indexFunc != nil {
		return m.indexFunc(ctx, user)
	}
	return nil
}

func (m *mockPilotService) UpdateProfile(ctx context.Context, cid string, req pilots.UpdateProfileRequest) error {
	return nil
}

func (m *mockPilotService) PublicProfile(ctx context.Context, cid, viewerCID string) (*pilots.PublicProfile, error) {
	return nil, pilots.ErrPilotNotFound
}

func (m *mockPilotService) RefreshStatistics(ctx context.Context, cid string) (*vatsim.PilotStatistics, error) {
	return nil, vatsim.ErrPilotNotFound
}

func newTestHandler(t *testing.T, provider Provider) (*Handler, *session.Store) {
	t.Helper()
	store, err := session.NewStore(testSecret, false)
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	if provider == nil {
		provider = &mockProvider{authorizationURL: "https://auth.vatsim.net/oauth/authorize"}
	}
	return NewHandler(store, provider, &mockPilotService{}), store
}

func callbackRequest(query, stateCookie string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?"+query, nil)
	if stateCookie != "" {
		req.AddCookie(&http.Cookie{Name: session.StateCookieName, Value: stateCookie})
	}
	return req
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("got status %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("got redirect to %q, want %q", got, location)
	}
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestHandleLogin(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("got status %d, want 302", rec.Code)
	}

	var stateCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.StateCookieName {
			stateCookie = c
		}
	}
	if stateCookie == nil {
		t.Fatal("expected a state cookie to be set")
	}
	if stateCookie.Value == "" {
		t.Error("state cookie must carry the generated state")
	}

	// The redirect must carry the same state the cookie stores.
	location := rec.Header().Get("Location")
	if want := "?state=" + stateCookie.Value; !containsSuffix(location, want) {
		t.Errorf("redirect %q does not carry state %q", location, stateCookie.Value)
	}
}

func containsSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func TestHandleCallbackSuccess(t *testing.T) {
	handler, store := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HandleCallback(rec, callbackRequest("code=auth-code&state=the-state", "the-state"))

	assertRedirect(t, rec, "/")

	c := sessionCookie(rec)
	if c == nil {
		t.Fatal("expected a session cookie to be set")
	}

	// The issued cookie must read back as a complete session.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	sess := store.Read(req)
	if sess == nil {
		t.Fatal("expected issued session to verify")
	}
	if sess.User.CID != "1234567" {
		t.Errorf("got CID %q", sess.User.CID)
	}
	if sess.AccessToken != "access-123" || sess.RefreshToken != "refresh-456" {
		t.Errorf("got tokens %+v", sess)
	}
	if sess.ExpiresAt == 0 {
		t.Error("expected an absolute expiry on the session")
	}
}

func TestHandleCallbackProviderError(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HandleCallback(rec, callbackRequest("error=access_denied&error_description=user+cancelled", ""))

	assertRedirect(t, rec, "/?error=oauth_error")
	if sessionCookie(rec) != nil {
		t.Error("no session may be issued on a provider error")
	}
}

func TestHandleCallbackMissingCode(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HandleCallback(rec, callbackRequest("state=the-state", "the-state"))

	assertRedirect(t, rec, "/?error=missing_code")
}

func TestHandleCallbackMissingState(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HandleCallback(rec, callbackRequest("code=auth-code", "the-state"))

	assertRedirect(t, rec, "/?error=missing_state")
}

func TestHandleCallbackStateMismatch(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HandleCallback(rec, callbackRequest("code=auth-code&state=attacker-state", "the-state"))

	assertRedirect(t, rec, "/?error=invalid_state")
	if sessionCookie(rec) != nil {
		t.Error("no session may be issued on a state mismatch")
	}
}

func TestHandleCallbackMissingStateCookie(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HandleCallback(rec, callbackRequest("code=auth-code&state=the-state", ""))

	assertRedirect(t, rec, "/?error=invalid_state")
}

func TestHandleCallbackClearsStateCookie(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	// Even a failing comparison must burn the state cookie.
	rec := httptest.NewRecorder()
	handler.HandleCallback(rec, callbackRequest("code=auth-code&state=wrong", "the-state"))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.StateCookieName && c.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("state cookie must be cleared unconditionally")
	}
}

func TestHandleCallbackExchangeFailure(t *testing.T) {
	provider := &mockProvider{
		exchangeFunc: func(ctx context.Context, code string) (*vatsim.TokenResponse, error) {
			return nil, &vatsim.StatusError{StatusCode: http.StatusBadRequest, Endpoint: "/oauth/token"}
		},
	}
	handler, _ := newTestHandler(t, provider)

	rec := httptest.NewRecorder()
	handler.HandleCallback(rec, callbackRequest("code=bad-code&state=the-state", "the-state"))

	assertRedirect(t, rec, "/?error=callback_failed")
	if sessionCookie(rec) != nil {
		t.Error("no session may be issued when the exchange fails")
	}
}

func TestHandleCallbackIdentityFailure(t *testing.T) {
	provider := &mockProvider{
		identityFunc: func(ctx context.Context, accessToken string) (*vatsim.Identity, error) {
			return nil, errors.New("connection refused")
		},
	}
	handler, _ := newTestHandler(t, provider)

	rec := httptest.NewRecorder()
	handler.HandleCallback(rec, callbackRequest("code=auth-code&state=the-state", "the-state"))

	assertRedirect(t, rec, "/?error=callback_failed")
	if sessionCookie(rec) != nil {
		t.Error("no session may be issued when the identity fetch fails")
	}
}

func TestHandleMe(t *testing.T) {
	handler, store := newTestHandler(t, nil)

	// Anonymous: 200 with a null user, never 401.
	rec := httptest.NewRecorder()
	handler.HandleMe(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if string(body["user"]) != "null" {
		t.Errorf("got user %s, want null", body["user"])
	}

	// Authenticated: the session user comes back.
	issueRec := httptest.NewRecorder()
	if err := store.Issue(issueRec, &session.Session{User: session.User{CID: "1234567"}}); err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c := sessionCookie(issueRec)
	req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})

	rec = httptest.NewRecorder()
	handler.HandleMe(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var authed struct {
		User *session.User `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&authed); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if authed.User == nil || authed.User.CID != "1234567" {
		t.Errorf("got user %+v", authed.User)
	}
}

func TestHandleLogout(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	c := sessionCookie(rec)
	if c == nil || c.MaxAge != -1 {
		t.Errorf("expected session deletion cookie, got %+v", c)
	}
}
