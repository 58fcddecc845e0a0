package pilots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vahub/internal/core/session"
	"vahub/internal/core/vatsim"
)

type pilotService struct {
	repo  Repository
	stats StatisticsFetcher
}

// NewService creates the pilot service.
func NewService(repo Repository, stats StatisticsFetcher) Service {
	return &pilotService{repo: repo, stats: stats}
}

func (s *pilotService) GetByCID(ctx context.Context, cid string) (*Pilot, error) {
	if strings.TrimSpace(cid) == "" {
		return nil, fmt.Errorf("cid is required")
	}
	return s.repo.GetByCID(ctx, cid)
}

// IndexPilot creates or updates the local pilot record after OAuth login.
// Idempotent so repeated logins are safe.
func (s *pilotService) IndexPilot(ctx context.Context, user session.User) error {
	if user.CID == "" {
		return fmt.Errorf("cid is required")
	}
	if _, err := s.repo.Upsert(ctx, user); err != nil {
		return fmt.Errorf("failed to index pilot %s: %w", user.CID, err)
	}
	return nil
}

func (s *pilotService) UpdateProfile(ctx context.Context, cid string, req UpdateProfileRequest) error {
	if strings.TrimSpace(cid) == "" {
		return fmt.Errorf("cid is required")
	}

	if req.DisplayName != nil {
		*req.DisplayName = strings.TrimSpace(*req.DisplayName)
		if len(*req.DisplayName) > 100 {
			return fmt.Errorf("display name must be at most 100 characters")
		}
	}
	if req.Bio != nil {
		*req.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.HomeAirport != nil {
		icao := strings.ToUpper(strings.TrimSpace(*req.HomeAirport))
		if icao != "" && len(icao) != 4 {
			return fmt.Errorf("home airport must be a 4-letter ICAO code")
		}
		*req.HomeAirport = icao
	}
	if req.Timezone != nil && *req.Timezone == "" {
		*req.Timezone = "UTC"
	}

	return s.repo.UpdateProfile(ctx, cid, req)
}

func (s *pilotService) PublicProfile(ctx context.Context, cid, viewerCID string) (*PublicProfile, error) {
	pilot, err := s.repo.GetByCID(ctx, cid)
	if err != nil {
		return nil, err
	}

	// Ownership is the only authorization rule: the viewer's session CID
	// matching the profile CID unlocks everything.
	isOwner := viewerCID != "" && viewerCID == pilot.CID

	profile := &PublicProfile{
		CID:         pilot.CID,
		FirstName:   pilot.FirstName,
		LastName:    pilot.LastName,
		DisplayName: pilot.DisplayName,
		Country:     pilot.Country,
		Rating:      pilot.Rating,
		PilotRating: pilot.PilotRating,
		Division:    pilot.Division,
		HomeAirport: pilot.HomeAirport,
		Bio:         pilot.Bio,
		CreatedAt:   pilot.CreatedAt,
	}

	if isOwner || pilot.Privacy.ShowEmail {
		profile.Email = &pilot.Email
	}
	if isOwner || pilot.Privacy.ShowStatistics {
		profile.TotalFlights = &pilot.TotalFlights
		profile.TotalHours = &pilot.TotalHours
		profile.TotalDistance = &pilot.TotalDistance
		profile.VatsimStats = pilot.VatsimStats
		profile.VatsimStatsUpdatedAt = pilot.VatsimStatsUpdatedAt
	}

	return profile, nil
}

// RefreshStatistics pulls fresh ratings-API statistics and mirrors them onto
// the pilot row when one exists. A CID unknown to VATSIM propagates as
// vatsim.ErrPilotNotFound; a CID unknown locally is not an error here, the
// fresh statistics are still returned.
func (s *pilotService) RefreshStatistics(ctx context.Context, cid string) (*vatsim.PilotStatistics, error) {
	stats, err := s.stats.FetchPilotStatistics(ctx, cid)
	if err != nil {
		return nil, err
	}

	stored := &StoredStats{
		ATC:              stats.ATC,
		Pilot:            stats.Pilot,
		RegDate:          stats.RegDate,
		LastRatingChange: stats.LastRatingChange,
	}
	if err := s.repo.UpdateStatistics(ctx, cid, stored); err != nil && !errors.Is(err, ErrPilotNotFound) {
		return nil, fmt.Errorf("failed to store statistics for %s: %w", cid, err)
	}

	return stats, nil
}
