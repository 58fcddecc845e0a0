package airlines

import (
	"context"
	"fmt"
	"strings"
)

type airlineService struct {
	repo Repository
}

// NewService creates the airline service.
func NewService(repo Repository) Service {
	return &airlineService{repo: repo}
}

func (s *airlineService) List(ctx context.Context, req ListRequest) ([]*Airline, error) {
	req.Search = strings.TrimSpace(req.Search)
	if req.Region == "" {
		req.Region = "all"
	}
	if req.Size == "" {
		req.Size = "all"
	}
	switch req.SortBy {
	case "members", "flights", "rating", "newest":
	default:
		req.SortBy = "members"
	}

	list, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list airlines: %w", err)
	}

	// Size is a derived property of the member count, filtered after the
	// query like any other enrichment-dependent predicate.
	if req.Size != "all" {
		filtered := list[:0]
		for _, a := range list {
			switch req.Size {
			case "large":
				if a.MemberCount >= 500 {
					filtered = append(filtered, a)
				}
			case "medium":
				if a.MemberCount >= 100 && a.MemberCount < 500 {
					filtered = append(filtered, a)
				}
			case "small":
				if a.MemberCount < 100 {
					filtered = append(filtered, a)
				}
			}
		}
		list = filtered
	}

	return list, nil
}

func (s *airlineService) ListForPilot(ctx context.Context, cid string) ([]*PilotAirline, error) {
	if strings.TrimSpace(cid) == "" {
		return nil, fmt.Errorf("cid is required")
	}
	return s.repo.ListForPilot(ctx, cid)
}

func (s *airlineService) Leave(ctx context.Context, cid string, airlineID int64) error {
	membership, err := s.repo.GetMembership(ctx, cid, airlineID)
	if err != nil {
		return err
	}
	if membership.Role == RoleOwner {
		return ErrOwnerCannotLeave
	}
	return s.repo.DeleteMembership(ctx, cid, airlineID)
}

func (s *airlineService) ListInvitations(ctx context.Context, cid string) ([]*Invitation, error) {
	if strings.TrimSpace(cid) == "" {
		return nil, fmt.Errorf("cid is required")
	}
	return s.repo.ListPendingInvitations(ctx, cid)
}

func (s *airlineService) RespondToInvitation(ctx context.Context, cid string, invitationID int64, action string) error {
	if action != "accept" && action != "decline" {
		return ErrInvalidAction
	}

	inv, err := s.repo.GetPendingInvitation(ctx, cid, invitationID)
	if err != nil {
		return err
	}

	if action == "accept" {
		return s.repo.AcceptInvitation(ctx, inv)
	}
	return s.repo.DeclineInvitation(ctx, inv.ID)
}
