package events

import (
	"context"
	"fmt"
)

// Repository persists events.
type Repository interface {
	// List returns active, non-cancelled events ordered by start date
	// descending, with organizer names resolved.
	List(ctx context.Context, req ListRequest) ([]*Event, error)
}

// Service is the event domain logic.
type Service interface {
	List(ctx context.Context, req ListRequest) ([]*Event, error)
}

type eventService struct {
	repo Repository
}

// NewService creates the event service.
func NewService(repo Repository) Service {
	return &eventService{repo: repo}
}

func (s *eventService) List(ctx context.Context, req ListRequest) ([]*Event, error) {
	switch req.Category {
	case "", "all":
		req.Category = "all"
	case TypeGroupFlight, TypeFlyIn, TypeTour, TypeCompetition:
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCategory, req.Category)
	}
	return s.repo.List(ctx, req)
}
