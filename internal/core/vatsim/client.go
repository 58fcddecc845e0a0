// Package vatsim is the client for VATSIM Connect, the third-party identity
// provider: it builds the authorization redirect, exchanges authorization
// codes for tokens, fetches the authenticated identity and pulls pilot
// statistics from the ratings API.
package vatsim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"vahub/internal/core/session"
)

// Scopes requested from VATSIM Connect. Fixed set; there is no incremental
// consent in the provider's flow.
var Scopes = []string{"full_name", "email", "vatsim_details", "country"}

// requestTimeout bounds every outbound provider call. The provider sets no
// contract here, but an unbounded call is a resource-exhaustion risk.
const requestTimeout = 10 * time.Second

// Config holds the OAuth client registration for VATSIM Connect.
type Config struct {
	// BaseURL is the provider root, e.g. https://auth.vatsim.net.
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Client talks to VATSIM Connect. Safe for concurrent use; every call is
// fire-and-forget with no retry.
type Client struct {
	baseURL string
	conf    *oauth2.Config
	http    *http.Client
}

// NewClient creates a provider client from the OAuth registration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.BaseURL + "/oauth/authorize",
				TokenURL: cfg.BaseURL + "/oauth/token",
				// VATSIM wants client_id/client_secret in the form body.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		http: &http.Client{Timeout: requestTimeout},
	}
}

// AuthorizationURL builds the /oauth/authorize redirect carrying the CSRF
// state, the registered redirect URI and the fixed scope set.
func (c *Client) AuthorizationURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

// ExchangeCode swaps an authorization code for tokens via POST /oauth/token
// (authorization_code grant, form-encoded). A non-2xx response or malformed
// body comes back as an error; the caller decides how to surface it.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	tok, err := c.conf.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return tokenResponse(tok), nil
}

// RefreshToken exchanges a refresh token for a fresh grant (refresh_token
// grant, same endpoint). Nothing in the request flow schedules this; it is a
// utility for callers that manage token lifetime themselves.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	src := c.conf.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	return tokenResponse(tok), nil
}

// FetchIdentity retrieves the authenticated identity from /api/user. The
// provider nests the identity under a "data" envelope.
func (c *Client) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Endpoint: "/api/user"}
	}

	var envelope struct {
		Data Identity `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	return &envelope.Data, nil
}

// FetchPilotStatistics retrieves pilot/ATC hour statistics from the ratings
// API. A provider 404 is the distinct ErrPilotNotFound; everything else is a
// generic failure.
func (c *Client) FetchPilotStatistics(ctx context.Context, cid string) (*PilotStatistics, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ratings/pilot/"+cid, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statistics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPilotNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Endpoint: "/api/ratings/pilot"}
	}

	var stats PilotStatistics
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode statistics response: %w", err)
	}
	return &stats, nil
}

// Normalize flattens the nested provider identity into the local user shape.
// Pure; assumes the identity is well-formed once the HTTP call succeeded.
func Normalize(id *Identity) session.User {
	return session.User{
		CID:         id.CID,
		FirstName:   id.Personal.NameFirst,
		LastName:    id.Personal.NameLast,
		FullName:    id.Personal.NameFull,
		Email:       id.Personal.Email,
		Country:     id.Personal.Country.Name,
		Rating:      id.Vatsim.Rating.Short,
		PilotRating: id.Vatsim.PilotRating.Short,
		Division:    id.Vatsim.Division.Name,
	}
}

// oauthContext routes oauth2's internal HTTP through our timeout-bounded
// client.
func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.http)
}

func tokenResponse(tok *oauth2.Token) *TokenResponse {
	tr := &TokenResponse{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    expiresIn(tok),
		RefreshToken: tok.RefreshToken,
	}
	if scopes, ok := tok.Extra("scopes").([]interface{}); ok {
		for _, s := range scopes {
			if str, ok := s.(string); ok {
				tr.Scopes = append(tr.Scopes, str)
			}
		}
	}
	return tr
}

// expiresIn recovers the provider's expires_in. oauth2 only surfaces the raw
// value through the extras map; deriving it back from Expiry with time.Until
// loses up to a second to truncation, so the extras value takes precedence
// and the Expiry-based estimate rounds up.
func expiresIn(tok *oauth2.Token) int64 {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	if tok.Expiry.IsZero() {
		return 0
	}
	remaining := time.Until(tok.Expiry)
	return int64((remaining + time.Second - 1) / time.Second)
}
