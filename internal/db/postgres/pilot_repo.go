package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"vahub/internal/core/pilots"
	"vahub/internal/core/session"
)

type postgresPilotRepo struct {
	db *sql.DB
}

// NewPilotRepository creates a new PostgreSQL pilot repository
func NewPilotRepository(db *sql.DB) pilots.Repository {
	return &postgresPilotRepo{db: db}
}

const pilotColumns = `id, cid, first_name, last_name, email, country, rating, pilot_rating, division,
	display_name, bio, home_airport, timezone,
	notify_email, notify_browser, notify_flight_reminders, notify_event_updates, notify_weekly_digest,
	show_email, show_flights, show_statistics, show_airlines,
	total_flights, total_hours, total_distance,
	vatsim_stats, vatsim_stats_updated_at, created_at, updated_at`

// GetByCID retrieves a pilot by their VATSIM CID
func (r *postgresPilotRepo) GetByCID(ctx context.Context, cid string) (*pilots.Pilot, error) {
	query := `SELECT ` + pilotColumns + ` FROM pilots WHERE cid = $1`

	pilot, err := scanPilot(r.db.QueryRowContext(ctx, query, cid))
	if err == sql.ErrNoRows {
		return nil, pilots.ErrPilotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pilot by CID: %w", err)
	}
	return pilot, nil
}

// Upsert creates the pilot on first login or refreshes the identity fields
// VATSIM asserted on a returning one
func (r *postgresPilotRepo) Upsert(ctx context.Context, user session.User) (*pilots.Pilot, error) {
	query := `
		INSERT INTO pilots (cid, first_name, last_name, email, country, rating, pilot_rating, division)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (cid) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			country = EXCLUDED.country,
			rating = EXCLUDED.rating,
			pilot_rating = EXCLUDED.pilot_rating,
			division = EXCLUDED.division,
			updated_at = NOW()
		RETURNING ` + pilotColumns

	pilot, err := scanPilot(r.db.QueryRowContext(ctx, query,
		user.CID, user.FirstName, user.LastName, user.Email,
		user.Country, user.Rating, user.PilotRating, user.Division))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pilot: %w", err)
	}
	return pilot, nil
}

// UpdateProfile applies a partial profile update.
// Nil values in the request mean "don't change this field" - only non-nil values are updated.
func (r *postgresPilotRepo) UpdateProfile(ctx context.Context, cid string, req pilots.UpdateProfileRequest) error {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argNum := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}

	if req.DisplayName != nil {
		set("display_name", *req.DisplayName)
	}
	if req.Bio != nil {
		set("bio", *req.Bio)
	}
	if req.HomeAirport != nil {
		set("home_airport", *req.HomeAirport)
	}
	if req.Timezone != nil {
		set("timezone", *req.Timezone)
	}

	if n := req.Notifications; n != nil {
		if n.Email != nil {
			set("notify_email", *n.Email)
		}
		if n.Browser != nil {
			set("notify_browser", *n.Browser)
		}
		if n.FlightReminders != nil {
			set("notify_flight_reminders", *n.FlightReminders)
		}
		if n.EventUpdates != nil {
			set("notify_event_updates", *n.EventUpdates)
		}
		if n.WeeklyDigest != nil {
			set("notify_weekly_digest", *n.WeeklyDigest)
		}
	}
	if p := req.Privacy; p != nil {
		if p.ShowEmail != nil {
			set("show_email", *p.ShowEmail)
		}
		if p.ShowFlights != nil {
			set("show_flights", *p.ShowFlights)
		}
		if p.ShowStatistics != nil {
			set("show_statistics", *p.ShowStatistics)
		}
		if p.ShowAirlines != nil {
			set("show_airlines", *p.ShowAirlines)
		}
	}

	args = append(args, cid)
	query := fmt.Sprintf(`UPDATE pilots SET %s WHERE cid = $%d`,
		strings.Join(setClauses, ", "), argNum)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return pilots.ErrPilotNotFound
	}
	return nil
}

// UpdateStatistics stores a fresh ratings-API snapshot on the pilot row
func (r *postgresPilotRepo) UpdateStatistics(ctx context.Context, cid string, stats *pilots.StoredStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal statistics: %w", err)
	}

	query := `
		UPDATE pilots
		SET vatsim_stats = $2, vatsim_stats_updated_at = NOW(), updated_at = NOW()
		WHERE cid = $1`

	result, err := r.db.ExecContext(ctx, query, cid, payload)
	if err != nil {
		return fmt.Errorf("failed to update statistics: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return pilots.ErrPilotNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPilot(row rowScanner) (*pilots.Pilot, error) {
	pilot := &pilots.Pilot{}
	var displayName, bio, homeAirport, timezone sql.NullString
	var vatsimStats []byte
	var statsUpdatedAt sql.NullTime

	err := row.Scan(
		&pilot.ID, &pilot.CID, &pilot.FirstName, &pilot.LastName, &pilot.Email,
		&pilot.Country, &pilot.Rating, &pilot.PilotRating, &pilot.Division,
		&displayName, &bio, &homeAirport, &timezone,
		&pilot.Notifications.Email, &pilot.Notifications.Browser,
		&pilot.Notifications.FlightReminders, &pilot.Notifications.EventUpdates,
		&pilot.Notifications.WeeklyDigest,
		&pilot.Privacy.ShowEmail, &pilot.Privacy.ShowFlights,
		&pilot.Privacy.ShowStatistics, &pilot.Privacy.ShowAirlines,
		&pilot.TotalFlights, &pilot.TotalHours, &pilot.TotalDistance,
		&vatsimStats, &statsUpdatedAt, &pilot.CreatedAt, &pilot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	pilot.DisplayName = displayName.String
	pilot.Bio = bio.String
	pilot.HomeAirport = homeAirport.String
	pilot.Timezone = timezone.String

	if len(vatsimStats) > 0 {
		stats := &pilots.StoredStats{}
		if err := json.Unmarshal(vatsimStats, stats); err != nil {
			return nil, fmt.Errorf("failed to decode stored statistics: %w", err)
		}
		pilot.VatsimStats = stats
	}
	if statsUpdatedAt.Valid {
		pilot.VatsimStatsUpdatedAt = &statsUpdatedAt.Time
	}
	return pilot, nil
}
