package stats

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// FlightRecord is a raw recent-flight row the repository hands the service
// to turn into activity entries.
type FlightRecord struct {
	FlightNumber    string
	Callsign        string
	DepartureICAO   string
	ArrivalICAO     string
	AircraftICAO    string
	Status          string
	ActualDeparture *time.Time
	ActualArrival   *time.Time
	PilotCID        string
	PilotName       string
	AirlineCode     string
}

// Repository reads the aggregate queries behind the statistics endpoints.
type Repository interface {
	// TopPilots returns up to limit pilots ordered by platform hours, with
	// VATSIM network hours pre-joined. Final ranking happens in the service
	// after hours are combined.
	TopPilots(ctx context.Context, limit int) ([]*PilotEntry, error)

	// TopAirlines returns up to limit active airlines by flight count.
	TopAirlines(ctx context.Context, limit int) ([]*AirlineEntry, error)

	// Platform returns platform-wide totals.
	Platform(ctx context.Context) (*Platform, error)

	// RecentFlights returns the latest flights with a departure or arrival
	// recorded, most recently updated first.
	RecentFlights(ctx context.Context, limit int) ([]*FlightRecord, error)
}

// Service is the statistics domain logic.
type Service interface {
	PilotLeaderboard(ctx context.Context, limit int) ([]*PilotEntry, error)
	AirlineLeaderboard(ctx context.Context, limit int) ([]*AirlineEntry, error)
	Platform(ctx context.Context) (*Platform, error)
	RecentActivity(ctx context.Context, limit int) ([]*Activity, error)
}

type statsService struct {
	repo Repository
	now  func() time.Time
}

// NewService creates the statistics service.
func NewService(repo Repository) Service {
	return &statsService{repo: repo, now: time.Now}
}

const (
	defaultLeaderboardLimit = 10
	defaultActivityLimit    = 20
	maxLimit                = 100
)

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// PilotLeaderboard ranks pilots by combined hours: platform flight time plus
// VATSIM network pilot hours. Rows are re-sorted and re-ranked after the
// combination since network hours can reorder the database ordering.
func (s *statsService) PilotLeaderboard(ctx context.Context, limit int) ([]*PilotEntry, error) {
	entries, err := s.repo.TopPilots(ctx, clampLimit(limit, defaultLeaderboardLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pilot leaderboard: %w", err)
	}

	for _, e := range entries {
		e.Hours += e.VatsimHours
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Hours > entries[j].Hours
	})
	for i, e := range entries {
		e.Rank = i + 1
	}
	return entries, nil
}

func (s *statsService) AirlineLeaderboard(ctx context.Context, limit int) ([]*AirlineEntry, error) {
	entries, err := s.repo.TopAirlines(ctx, clampLimit(limit, defaultLeaderboardLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch airline leaderboard: %w", err)
	}
	for i, e := range entries {
		e.Rank = i + 1
	}
	return entries, nil
}

func (s *statsService) Platform(ctx context.Context) (*Platform, error) {
	p, err := s.repo.Platform(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch platform statistics: %w", err)
	}
	if p.TotalFlights > 0 {
		p.AvgFlightsPerDay = p.TotalFlights / 30
	}
	return p, nil
}

// RecentActivity expands recent flights into takeoff/landing feed entries.
func (s *statsService) RecentActivity(ctx context.Context, limit int) ([]*Activity, error) {
	limit = clampLimit(limit, defaultActivityLimit)
	flights, err := s.repo.RecentFlights(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent flights: %w", err)
	}

	now := s.now()
	activities := make([]*Activity, 0, len(flights)*2)
	for _, f := range flights {
		if f.ActualDeparture != nil {
			activities = append(activities, s.activity("takeoff", f, *f.ActualDeparture, now))
		}
		if f.ActualArrival != nil && (f.ActualDeparture == nil || !f.ActualArrival.Equal(*f.ActualDeparture)) {
			activities = append(activities, s.activity("landing", f, *f.ActualArrival, now))
		}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func (s *statsService) activity(kind string, f *FlightRecord, at, now time.Time) *Activity {
	flight := f.FlightNumber
	if flight == "" {
		flight = f.Callsign
	}
	if flight == "" {
		flight = "N/A"
	}
	aircraft := f.AircraftICAO
	if aircraft == "" {
		aircraft = "Unknown"
	}
	pilot := f.PilotName
	if pilot == "" {
		pilot = "Unknown Pilot"
	}
	return &Activity{
		Type:      kind,
		Pilot:     pilot,
		PilotCID:  f.PilotCID,
		Flight:    flight,
		Route:     f.DepartureICAO + " - " + f.ArrivalICAO,
		Time:      timeAgo(at, now),
		Timestamp: at,
		Aircraft:  aircraft,
		Airline:   f.AirlineCode,
		Status:    f.Status,
	}
}

// timeAgo renders a coarse relative time for the activity feed.
func timeAgo(t, now time.Time) string {
	mins := int(now.Sub(t).Minutes())
	switch {
	case mins < 1:
		return "just now"
	case mins == 1:
		return "1 min ago"
	case mins < 60:
		return fmt.Sprintf("%d min ago", mins)
	}
	hours := mins / 60
	switch {
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
