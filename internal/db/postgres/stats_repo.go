package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"vahub/internal/core/stats"
)

type postgresStatsRepo struct {
	db *sql.DB
}

// NewStatsRepository creates a new PostgreSQL statistics repository
func NewStatsRepository(db *sql.DB) stats.Repository {
	return &postgresStatsRepo{db: db}
}

// TopPilots returns up to limit pilots ordered by platform hours, with
// VATSIM network pilot hours pulled from the stored statistics snapshot
func (r *postgresStatsRepo) TopPilots(ctx context.Context, limit int) ([]*stats.PilotEntry, error) {
	query := `
		SELECT p.cid, p.first_name, p.last_name, p.display_name,
			p.country, p.rating, p.pilot_rating,
			p.total_flights, p.total_hours, p.total_distance,
			COALESCE((p.vatsim_stats -> 'pilot' ->> 'hours')::double precision, 0),
			COALESCE(primary_airline.code, ''), COALESCE(primary_airline.name, '')
		FROM pilots p
		LEFT JOIN LATERAL (
			SELECT a.code, a.name
			FROM airline_memberships m
			JOIN airlines a ON a.id = m.airline_id
			WHERE m.pilot_id = p.id AND m.status = 'active'
			ORDER BY m.hours DESC
			LIMIT 1
		) primary_airline ON true
		ORDER BY p.total_hours DESC, p.total_flights DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top pilots: %w", err)
	}
	defer closeRows(rows)

	var result []*stats.PilotEntry
	for rows.Next() {
		entry := &stats.PilotEntry{}
		var displayName sql.NullString
		err := rows.Scan(
			&entry.CID, &entry.FirstName, &entry.LastName, &displayName,
			&entry.Country, &entry.Rating, &entry.PilotRating,
			&entry.Flights, &entry.Hours, &entry.Distance,
			&entry.VatsimHours,
			&entry.Airline, &entry.AirlineName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pilot entry: %w", err)
		}
		entry.Name = displayName.String
		if entry.Name == "" {
			entry.Name = entry.FirstName + " " + entry.LastName
		}
		result = append(result, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pilot entries: %w", err)
	}
	return result, nil
}

// TopAirlines returns up to limit active airlines by flight count
func (r *postgresStatsRepo) TopAirlines(ctx context.Context, limit int) ([]*stats.AirlineEntry, error) {
	query := `
		SELECT name, code, icao, logo, flight_count, member_count, region, verified
		FROM airlines
		WHERE active = true
		ORDER BY flight_count DESC, member_count DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top airlines: %w", err)
	}
	defer closeRows(rows)

	var result []*stats.AirlineEntry
	for rows.Next() {
		entry := &stats.AirlineEntry{}
		var logo sql.NullString
		err := rows.Scan(&entry.Name, &entry.Code, &entry.ICAO, &logo,
			&entry.Flights, &entry.Pilots, &entry.Region, &entry.Verified)
		if err != nil {
			return nil, fmt.Errorf("failed to scan airline entry: %w", err)
		}
		entry.Logo = logo.String
		result = append(result, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating airline entries: %w", err)
	}
	return result, nil
}

// Platform returns platform-wide totals in a single query with scalar subqueries
func (r *postgresStatsRepo) Platform(ctx context.Context) (*stats.Platform, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM pilots) as total_pilots,
			(SELECT COUNT(*) FROM airlines WHERE active = true) as total_airlines,
			(SELECT COALESCE(SUM(total_flights), 0) FROM pilots) as total_flights,
			(SELECT COALESCE(SUM(total_hours), 0) FROM pilots) as total_hours,
			(SELECT COALESCE(SUM(total_distance), 0) FROM pilots) as total_distance,
			(SELECT COALESCE(SUM((vatsim_stats -> 'pilot' ->> 'hours')::double precision), 0) FROM pilots WHERE vatsim_stats IS NOT NULL) as vatsim_pilot_hours,
			(SELECT COALESCE(SUM((vatsim_stats -> 'atc' ->> 'hours')::double precision), 0) FROM pilots WHERE vatsim_stats IS NOT NULL) as vatsim_atc_hours`

	p := &stats.Platform{}
	var totalHours, vatsimPilotHours, vatsimATCHours float64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&p.TotalPilots, &p.TotalAirlines, &p.TotalFlights,
		&totalHours, &p.TotalDistance,
		&vatsimPilotHours, &vatsimATCHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform statistics: %w", err)
	}
	p.TotalHours = int(totalHours)
	p.VatsimStats.TotalPilotHours = int(vatsimPilotHours)
	p.VatsimStats.TotalATCHours = int(vatsimATCHours)
	return p, nil
}

// RecentFlights returns the latest flights with a departure or arrival
// recorded, most recently updated first
func (r *postgresStatsRepo) RecentFlights(ctx context.Context, limit int) ([]*stats.FlightRecord, error) {
	query := `
		SELECT f.flight_number, f.callsign, f.departure_icao, f.arrival_icao,
			f.aircraft_icao, f.status, f.actual_departure, f.actual_arrival,
			p.cid, COALESCE(NULLIF(p.display_name, ''), p.first_name || ' ' || p.last_name),
			COALESCE(a.code, '')
		FROM flights f
		JOIN pilots p ON p.id = f.pilot_id
		LEFT JOIN airlines a ON a.id = f.airline_id
		WHERE f.actual_departure IS NOT NULL OR f.actual_arrival IS NOT NULL
		ORDER BY GREATEST(COALESCE(f.actual_departure, 'epoch'), COALESCE(f.actual_arrival, 'epoch')) DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent flights: %w", err)
	}
	defer closeRows(rows)

	var result []*stats.FlightRecord
	for rows.Next() {
		f := &stats.FlightRecord{}
		var flightNumber, callsign, aircraft sql.NullString
		var departure, arrival sql.NullTime
		err := rows.Scan(&flightNumber, &callsign, &f.DepartureICAO, &f.ArrivalICAO,
			&aircraft, &f.Status, &departure, &arrival,
			&f.PilotCID, &f.PilotName, &f.AirlineCode)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight row: %w", err)
		}
		f.FlightNumber = flightNumber.String
		f.Callsign = callsign.String
		f.AircraftICAO = aircraft.String
		if departure.Valid {
			f.ActualDeparture = &departure.Time
		}
		if arrival.Valid {
			f.ActualArrival = &arrival.Time
		}
		result = append(result, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flight rows: %w", err)
	}
	return result, nil
}
