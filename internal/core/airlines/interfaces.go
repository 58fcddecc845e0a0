package airlines

import "context"

// Repository persists airlines, memberships and invitations.
type Repository interface {
	List(ctx context.Context, req ListRequest) ([]*Airline, error)

	// GetMembership returns the membership linking a pilot (by CID) to an
	// airline, or ErrMembershipNotFound.
	GetMembership(ctx context.Context, cid string, airlineID int64) (*Membership, error)

	// ListForPilot returns the pilot's memberships joined with airline data.
	ListForPilot(ctx context.Context, cid string) ([]*PilotAirline, error)

	// DeleteMembership removes the pilot's membership in the airline.
	DeleteMembership(ctx context.Context, cid string, airlineID int64) error

	// ListPendingInvitations returns the pilot's open invitations with
	// airline and inviter names resolved.
	ListPendingInvitations(ctx context.Context, cid string) ([]*Invitation, error)

	// GetPendingInvitation returns the invitation only when it belongs to the
	// pilot and is still pending.
	GetPendingInvitation(ctx context.Context, cid string, invitationID int64) (*Invitation, error)

	// AcceptInvitation marks the invitation accepted and creates the active
	// membership at the invited role, atomically.
	AcceptInvitation(ctx context.Context, inv *Invitation) error

	// DeclineInvitation marks the invitation declined.
	DeclineInvitation(ctx context.Context, invitationID int64) error
}

// Service is the airline domain logic.
type Service interface {
	List(ctx context.Context, req ListRequest) ([]*Airline, error)
	ListForPilot(ctx context.Context, cid string) ([]*PilotAirline, error)

	// Leave removes the pilot from the airline. Owners cannot leave.
	Leave(ctx context.Context, cid string, airlineID int64) error

	ListInvitations(ctx context.Context, cid string) ([]*Invitation, error)

	// RespondToInvitation accepts or declines a pending invitation. action is
	// "accept" or "decline".
	RespondToInvitation(ctx context.Context, cid string, invitationID int64, action string) error
}
