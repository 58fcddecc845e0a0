package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"vahub/internal/core/events"
)

type postgresEventRepo struct {
	db *sql.DB
}

// NewEventRepository creates a new PostgreSQL event repository
func NewEventRepository(db *sql.DB) events.Repository {
	return &postgresEventRepo{db: db}
}

// List returns active, non-cancelled events with organizer names resolved
func (r *postgresEventRepo) List(ctx context.Context, req events.ListRequest) ([]*events.Event, error) {
	query := `
		SELECT e.id, e.airline_id, e.title, e.description, e.short_description, e.event_type,
			e.start_date, e.end_date, e.duration,
			e.departure_icao, e.arrival_icao, e.route_description, e.allowed_aircraft,
			e.max_participants, e.current_participants, e.image_url, e.featured, e.created_at,
			a.name, a.code,
			COALESCE(NULLIF(p.display_name, ''), p.first_name || ' ' || p.last_name, '')
		FROM events e
		LEFT JOIN airlines a ON a.id = e.airline_id
		LEFT JOIN pilots p ON p.id = e.created_by_pilot_id
		WHERE e.status = 'active'`
	args := []interface{}{}
	argNum := 1

	if req.Category != "" && req.Category != "all" {
		query += fmt.Sprintf(` AND e.event_type = $%d`, argNum)
		args = append(args, req.Category)
		argNum++
	}
	if req.Featured {
		query += ` AND e.featured = true`
	}

	query += ` ORDER BY e.start_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer closeRows(rows)

	var result []*events.Event
	for rows.Next() {
		event := &events.Event{}
		var airlineID sql.NullInt64
		var description, shortDescription, departureICAO, arrivalICAO sql.NullString
		var routeDescription, imageURL, airlineName, airlineCode, createdBy sql.NullString
		var endDate sql.NullTime
		var duration, maxParticipants sql.NullInt64
		var allowedAircraft pq.StringArray

		err := rows.Scan(
			&event.ID, &airlineID, &event.Title, &description, &shortDescription, &event.EventType,
			&event.StartDate, &endDate, &duration,
			&departureICAO, &arrivalICAO, &routeDescription, &allowedAircraft,
			&maxParticipants, &event.CurrentParticipants, &imageURL, &event.Featured, &event.CreatedAt,
			&airlineName, &airlineCode, &createdBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		event.AirlineID = airlineID.Int64
		event.Description = description.String
		event.ShortDescription = shortDescription.String
		event.DepartureICAO = departureICAO.String
		event.ArrivalICAO = arrivalICAO.String
		event.RouteDescription = routeDescription.String
		event.ImageURL = imageURL.String
		event.AirlineName = airlineName.String
		event.AirlineCode = airlineCode.String
		event.CreatedBy = createdBy.String
		event.Duration = int(duration.Int64)
		event.MaxParticipants = int(maxParticipants.Int64)
		event.AllowedAircraft = allowedAircraft
		if endDate.Valid {
			event.EndDate = &endDate.Time
		}

		result = append(result, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return result, nil
}
