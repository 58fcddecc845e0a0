package airlines

import "errors"

var (
	// ErrAirlineNotFound is returned when an airline lookup finds no record.
	ErrAirlineNotFound = errors.New("airline not found")

	// ErrMembershipNotFound is returned when a pilot has no membership in the
	// given airline.
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrInvitationNotFound is returned for an unknown or already-answered
	// invitation.
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrOwnerCannotLeave rejects an owner leaving their own airline.
	// Ownership must be transferred first.
	ErrOwnerCannotLeave = errors.New("owners cannot leave their airline")

	// ErrInvalidAction rejects an invitation response that is neither accept
	// nor decline.
	ErrInvalidAction = errors.New("action must be \"accept\" or \"decline\"")
)
