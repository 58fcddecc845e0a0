package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vahub/internal/core/events"
)

type mockEventService struct {
	listFunc func(ctx context.Context, req events.ListRequest) ([]*events.Event, error)
}

func (m *mockEventService) List(ctx context.Context, req events.ListRequest) ([]*events.Event, error) {
	return m.listFunc(ctx, req)
}

func TestList(t *testing.T) {
	svc := &mockEventService{
		listFunc: func(ctx context.Context, req events.ListRequest) ([]*events.Event, error) {
			if req.Category != "fly-in" || !req.Featured {
				t.Errorf("got request %+v", req)
			}
			return []*events.Event{{
				ID:            1,
				Title:         "Cross the Pond",
				EventType:     events.TypeFlyIn,
				StartDate:     time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC),
				DepartureICAO: "EGLL",
				ArrivalICAO:   "KJFK",
				AirlineName:   "Atlantic Virtual",
			}}, nil
		},
	}
	handler := NewHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events?category=fly-in&featured=true", nil)
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Data    []struct {
			Title     string `json:"title"`
			Organizer string `json:"organizer"`
			Route     string `json:"route"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success || body.Count != 1 {
		t.Errorf("got success=%v count=%d", body.Success, body.Count)
	}
	if body.Data[0].Organizer != "Atlantic Virtual" {
		t.Errorf("got organizer %q", body.Data[0].Organizer)
	}
	if body.Data[0].Route != "EGLL - KJFK" {
		t.Errorf("got route %q", body.Data[0].Route)
	}
}

func TestListUnknownCategory(t *testing.T) {
	svc := &mockEventService{
		listFunc: func(ctx context.Context, req events.ListRequest) ([]*events.Event, error) {
			return nil, fmt.Errorf("%w %q", events.ErrUnknownCategory, req.Category)
		},
	}
	handler := NewHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events?category=airshow", nil)
	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestListRepositoryFailure(t *testing.T) {
	svc := &mockEventService{
		listFunc: func(ctx context.Context, req events.ListRequest) ([]*events.Event, error) {
			return nil, errors.New("pq: connection refused")
		},
	}
	handler := NewHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	handler.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}
	// The raw repository error must not reach the client.
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("response leaks the internal error: %s", rec.Body.String())
	}
}
