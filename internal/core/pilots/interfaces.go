package pilots

import (
	"context"

	"vahub/internal/core/session"
	"vahub/internal/core/vatsim"
)

// Repository persists pilot records.
type Repository interface {
	GetByCID(ctx context.Context, cid string) (*Pilot, error)

	// Upsert creates the pilot or refreshes the provider-asserted identity
	// fields on an existing row. Idempotent; keyed by CID.
	Upsert(ctx context.Context, user session.User) (*Pilot, error)

	// UpdateProfile applies a partial profile update. Returns
	// ErrPilotNotFound when the CID has no record.
	UpdateProfile(ctx context.Context, cid string, req UpdateProfileRequest) error

	// UpdateStatistics stores a fresh ratings-API snapshot on the pilot row.
	UpdateStatistics(ctx context.Context, cid string, stats *StoredStats) error
}

// StatisticsFetcher is the slice of the VATSIM client the pilot service
// needs. Satisfied by *vatsim.Client.
type StatisticsFetcher interface {
	FetchPilotStatistics(ctx context.Context, cid string) (*vatsim.PilotStatistics, error)
}

// Service is the pilot domain logic.
type Service interface {
	// GetByCID returns the full pilot record for the profile owner.
	GetByCID(ctx context.Context, cid string) (*Pilot, error)

	// IndexPilot creates or updates the pilot after a successful login.
	IndexPilot(ctx context.Context, user session.User) error

	// UpdateProfile validates and applies a partial profile update.
	UpdateProfile(ctx context.Context, cid string, req UpdateProfileRequest) error

	// PublicProfile returns the privacy-filtered view of a pilot for the
	// given viewer CID (empty for anonymous). A pilot always sees their own
	// full profile.
	PublicProfile(ctx context.Context, cid, viewerCID string) (*PublicProfile, error)

	// RefreshStatistics pulls fresh statistics from the VATSIM ratings API,
	// persists them when the pilot exists locally, and returns them.
	// Propagates vatsim.ErrPilotNotFound for unknown CIDs.
	RefreshStatistics(ctx context.Context, cid string) (*vatsim.PilotStatistics, error)
}
