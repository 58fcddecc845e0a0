package vatsim

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:      baseURL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://app.example.com/api/auth/callback",
	})
}

func TestAuthorizationURL(t *testing.T) {
	client := newTestClient("https://auth.vatsim.net")
	raw := client.AuthorizationURL("csrf-state")

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse authorization URL: %v", err)
	}
	if u.Path != "/oauth/authorize" {
		t.Errorf("got path %q, want /oauth/authorize", u.Path)
	}
	q := u.Query()
	if q.Get("client_id") != "client-id" {
		t.Errorf("got client_id %q", q.Get("client_id"))
	}
	if q.Get("state") != "csrf-state" {
		t.Errorf("got state %q", q.Get("state"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("got response_type %q", q.Get("response_type"))
	}
	if q.Get("redirect_uri") != "https://app.example.com/api/auth/callback" {
		t.Errorf("got redirect_uri %q", q.Get("redirect_uri"))
	}
	if scope := q.Get("scope"); !strings.Contains(scope, "vatsim_details") {
		t.Errorf("got scope %q, want it to include vatsim_details", scope)
	}
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		// client_id and client_secret travel in the form body, not basic auth.
		if r.PostForm.Get("client_id") != "client-id" {
			t.Errorf("got form client_id %q", r.PostForm.Get("client_id"))
		}
		if r.PostForm.Get("grant_type") != "authorization_code" {
			t.Errorf("got grant_type %q", r.PostForm.Get("grant_type"))
		}
		if r.PostForm.Get("code") != "auth-code" {
			t.Errorf("got code %q", r.PostForm.Get("code"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "access-123",
			"token_type": "Bearer",
			"expires_in": 3600,
			"refresh_token": "refresh-456",
			"scopes": ["full_name", "email"]
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	tokens, err := client.ExchangeCode(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if tokens.AccessToken != "access-123" {
		t.Errorf("got access token %q", tokens.AccessToken)
	}
	if tokens.RefreshToken != "refresh-456" {
		t.Errorf("got refresh token %q", tokens.RefreshToken)
	}
	if tokens.ExpiresIn != 3600 {
		t.Errorf("got expires_in %d, want 3600", tokens.ExpiresIn)
	}
}

func TestExchangeCodeExpiresInExact(t *testing.T) {
	// The session lifetime is computed from expires_in, so re-deriving it
	// from the token's wall-clock Expiry would shave seconds off. The value
	// must survive the exchange untouched.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "access-123",
			"token_type": "Bearer",
			"expires_in": 7205
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	tokens, err := client.ExchangeCode(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if tokens.ExpiresIn != 7205 {
		t.Errorf("got expires_in %d, want 7205", tokens.ExpiresIn)
	}
}

func TestExchangeCodeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "invalid_grant"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.ExchangeCode(context.Background(), "bad-code")
	if err == nil {
		t.Fatal("expected exchange to fail")
	}
	if got := StatusCode(err); got != http.StatusBadRequest {
		t.Errorf("got status %d from error, want 400", got)
	}
}

func TestFetchIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer access-123" {
			t.Errorf("got Authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {
			"cid": "1234567",
			"personal": {
				"name_first": "Alice",
				"name_last": "Smith",
				"name_full": "Alice Smith",
				"email": "alice@example.com",
				"country": {"id": "GB", "name": "United Kingdom"}
			},
			"vatsim": {
				"rating": {"id": 5, "long": "Enroute Controller", "short": "C1"},
				"pilotrating": {"id": 3, "long": "Instrument Rating", "short": "P2"},
				"division": {"id": "GBR", "name": "United Kingdom"},
				"region": {"id": "EMEA", "name": "Europe"},
				"subdivision": {"id": null, "name": null}
			}
		}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	identity, err := client.FetchIdentity(context.Background(), "access-123")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	user := Normalize(identity)
	if user.CID != "1234567" {
		t.Errorf("got CID %q", user.CID)
	}
	if user.FullName != "Alice Smith" {
		t.Errorf("got full name %q", user.FullName)
	}
	if user.Country != "United Kingdom" {
		t.Errorf("got country %q", user.Country)
	}
	if user.Rating != "C1" || user.PilotRating != "P2" {
		t.Errorf("got ratings %q / %q", user.Rating, user.PilotRating)
	}
}

func TestFetchIdentityProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.FetchIdentity(context.Background(), "expired-token")
	if err == nil {
		t.Fatal("expected fetch to fail")
	}
	if got := StatusCode(err); got != http.StatusUnauthorized {
		t.Errorf("got status %d from error, want 401", got)
	}
}

func TestFetchPilotStatistics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ratings/pilot/1234567" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "1234567",
			"rating": 5,
			"pilotrating": 3,
			"reg_date": "2015-06-01T00:00:00",
			"region": "EMEA",
			"division": "GBR",
			"lastratingchange": "2020-01-15T00:00:00",
			"atc": {"hours": 120.5, "s1": 30, "c1": 90.5},
			"pilot": {"hours": 850.25, "p1": 400, "p2": 450.25}
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	stats, err := client.FetchPilotStatistics(context.Background(), "1234567")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if stats.Pilot == nil || stats.Pilot.Hours != 850.25 {
		t.Errorf("got pilot hours %+v", stats.Pilot)
	}
	if stats.ATC == nil || stats.ATC.Hours != 120.5 {
		t.Errorf("got ATC hours %+v", stats.ATC)
	}
	if stats.RegDate != "2015-06-01T00:00:00" {
		t.Errorf("got reg date %q", stats.RegDate)
	}
}

func TestFetchPilotStatisticsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.FetchPilotStatistics(context.Background(), "9999999")
	if !errors.Is(err, ErrPilotNotFound) {
		t.Errorf("got %v, want ErrPilotNotFound", err)
	}
}

func TestFetchPilotStatisticsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.FetchPilotStatistics(context.Background(), "1234567")
	if err == nil {
		t.Fatal("expected fetch to fail")
	}
	if errors.Is(err, ErrPilotNotFound) {
		t.Error("a 5xx must not map to ErrPilotNotFound")
	}
	if got := StatusCode(err); got != http.StatusInternalServerError {
		t.Errorf("got status %d from error, want 500", got)
	}
}

func TestRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "refresh_token" {
			t.Errorf("got grant_type %q", r.PostForm.Get("grant_type"))
		}
		if r.PostForm.Get("refresh_token") != "refresh-456" {
			t.Errorf("got refresh_token %q", r.PostForm.Get("refresh_token"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "access-new",
			"token_type": "Bearer",
			"expires_in": 3600,
			"refresh_token": "refresh-new"
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	tokens, err := client.RefreshToken(context.Background(), "refresh-456")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if tokens.AccessToken != "access-new" || tokens.RefreshToken != "refresh-new" {
		t.Errorf("got tokens %+v", tokens)
	}
}
