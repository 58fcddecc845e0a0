package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"vahub/internal/core/airlines"
)

type postgresAirlineRepo struct {
	db *sql.DB
}

// NewAirlineRepository creates a new PostgreSQL airline repository
func NewAirlineRepository(db *sql.DB) airlines.Repository {
	return &postgresAirlineRepo{db: db}
}

// List returns active airlines filtered and ordered for the directory.
// The size bucket filter is applied by the service after this query.
func (r *postgresAirlineRepo) List(ctx context.Context, req airlines.ListRequest) ([]*airlines.Airline, error) {
	query := `
		SELECT id, name, code, icao, logo, description, tagline, region, founded,
			website, discord, member_count, flight_count, rating, verified, active,
			created_at, updated_at
		FROM airlines
		WHERE active = true`
	args := []interface{}{}
	argNum := 1

	if req.Search != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%d OR code ILIKE $%d OR icao ILIKE $%d OR description ILIKE $%d)`,
			argNum, argNum, argNum, argNum)
		args = append(args, "%"+req.Search+"%")
		argNum++
	}
	if req.Region != "" && req.Region != "all" {
		query += fmt.Sprintf(` AND region = $%d`, argNum)
		args = append(args, req.Region)
		argNum++
	}

	switch req.SortBy {
	case "flights":
		query += ` ORDER BY flight_count DESC, name ASC`
	case "rating":
		query += ` ORDER BY rating DESC, name ASC`
	case "newest":
		query += ` ORDER BY created_at DESC`
	default:
		query += ` ORDER BY member_count DESC, name ASC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list airlines: %w", err)
	}
	defer closeRows(rows)

	var result []*airlines.Airline
	var ids []int64
	byID := map[int64]*airlines.Airline{}
	for rows.Next() {
		airline, err := scanAirline(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan airline row: %w", err)
		}
		result = append(result, airline)
		ids = append(ids, airline.ID)
		byID[airline.ID] = airline
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating airline rows: %w", err)
	}

	if err := r.loadHubsAndFleet(ctx, ids, byID); err != nil {
		return nil, err
	}
	return result, nil
}

// GetMembership returns the active membership linking a pilot to an airline
func (r *postgresAirlineRepo) GetMembership(ctx context.Context, cid string, airlineID int64) (*airlines.Membership, error) {
	query := `
		SELECT m.id, m.airline_id, m.pilot_id, m.role, m.rank, m.status,
			m.flights, m.hours, m.joined_at, m.last_flight_at
		FROM airline_memberships m
		JOIN pilots p ON p.id = m.pilot_id
		WHERE p.cid = $1 AND m.airline_id = $2`

	membership := &airlines.Membership{}
	var lastFlightAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, cid, airlineID).Scan(
		&membership.ID, &membership.AirlineID, &membership.PilotID,
		&membership.Role, &membership.Rank, &membership.Status,
		&membership.Flights, &membership.Hours,
		&membership.JoinedAt, &lastFlightAt,
	)
	if err == sql.ErrNoRows {
		return nil, airlines.ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if lastFlightAt.Valid {
		membership.LastFlightAt = &lastFlightAt.Time
	}
	return membership, nil
}

// ListForPilot returns the pilot's memberships joined with airline data
func (r *postgresAirlineRepo) ListForPilot(ctx context.Context, cid string) ([]*airlines.PilotAirline, error) {
	query := `
		SELECT a.id, a.name, a.code, a.icao, a.logo,
			m.role, m.rank, m.status, m.flights, m.hours, m.joined_at, m.last_flight_at
		FROM airline_memberships m
		JOIN airlines a ON a.id = m.airline_id
		JOIN pilots p ON p.id = m.pilot_id
		WHERE p.cid = $1
		ORDER BY m.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to list pilot airlines: %w", err)
	}
	defer closeRows(rows)

	var result []*airlines.PilotAirline
	var ids []int64
	for rows.Next() {
		pa := &airlines.PilotAirline{}
		var logo sql.NullString
		var lastFlightAt sql.NullTime
		err := rows.Scan(&pa.ID, &pa.Name, &pa.Code, &pa.ICAO, &logo,
			&pa.Role, &pa.Rank, &pa.Status, &pa.Flights, &pa.Hours,
			&pa.JoinedAt, &lastFlightAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pilot airline row: %w", err)
		}
		pa.Logo = logo.String
		pa.IsOwner = pa.Role == airlines.RoleOwner
		if lastFlightAt.Valid {
			pa.LastFlightAt = &lastFlightAt.Time
		}
		pa.Hubs = []string{}
		result = append(result, pa)
		ids = append(ids, pa.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pilot airline rows: %w", err)
	}

	if len(ids) > 0 {
		hubs, err := r.loadHubs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, pa := range result {
			if h, ok := hubs[pa.ID]; ok {
				pa.Hubs = h
			}
		}
	}
	return result, nil
}

// DeleteMembership removes the pilot's membership and decrements the cached
// member count, atomically
func (r *postgresAirlineRepo) DeleteMembership(ctx context.Context, cid string, airlineID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(tx)

	result, err := tx.ExecContext(ctx, `
		DELETE FROM airline_memberships m
		USING pilots p
		WHERE p.id = m.pilot_id AND p.cid = $1 AND m.airline_id = $2`, cid, airlineID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return airlines.ErrMembershipNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE airlines SET member_count = GREATEST(member_count - 1, 0), updated_at = NOW()
		WHERE id = $1`, airlineID); err != nil {
		return fmt.Errorf("failed to update member count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const invitationColumns = `i.id, i.airline_id, i.pilot_id, i.role, i.status, i.created_at, i.responded_at,
	a.name, a.code, COALESCE(NULLIF(ip.display_name, ''), ip.first_name || ' ' || ip.last_name, '')`

// ListPendingInvitations returns the pilot's open invitations with airline
// and inviter names resolved
func (r *postgresAirlineRepo) ListPendingInvitations(ctx context.Context, cid string) ([]*airlines.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM airline_invitations i
		JOIN airlines a ON a.id = i.airline_id
		JOIN pilots p ON p.id = i.pilot_id
		LEFT JOIN pilots ip ON ip.id = i.invited_by_pilot_id
		WHERE p.cid = $1 AND i.status = 'pending'
		ORDER BY i.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer closeRows(rows)

	var result []*airlines.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation row: %w", err)
		}
		result = append(result, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitation rows: %w", err)
	}
	return result, nil
}

// GetPendingInvitation returns the invitation only when it belongs to the
// pilot and is still pending
func (r *postgresAirlineRepo) GetPendingInvitation(ctx context.Context, cid string, invitationID int64) (*airlines.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM airline_invitations i
		JOIN airlines a ON a.id = i.airline_id
		JOIN pilots p ON p.id = i.pilot_id
		LEFT JOIN pilots ip ON ip.id = i.invited_by_pilot_id
		WHERE i.id = $1 AND p.cid = $2 AND i.status = 'pending'`

	inv, err := scanInvitation(r.db.QueryRowContext(ctx, query, invitationID, cid))
	if err == sql.ErrNoRows {
		return nil, airlines.ErrInvitationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

// AcceptInvitation marks the invitation accepted and creates the active
// membership at the invited role, atomically
func (r *postgresAirlineRepo) AcceptInvitation(ctx context.Context, inv *airlines.Invitation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer rollback(tx)

	result, err := tx.ExecContext(ctx, `
		UPDATE airline_invitations SET status = 'accepted', responded_at = NOW()
		WHERE id = $1 AND status = 'pending'`, inv.ID)
	if err != nil {
		return fmt.Errorf("failed to accept invitation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return airlines.ErrInvitationNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO airline_memberships (airline_id, pilot_id, role, rank, status)
		VALUES ($1, $2, $3, 'New Member', 'active')
		ON CONFLICT (airline_id, pilot_id) DO NOTHING`,
		inv.AirlineID, inv.PilotID, inv.Role); err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE airlines SET member_count = member_count + 1, updated_at = NOW()
		WHERE id = $1`, inv.AirlineID); err != nil {
		return fmt.Errorf("failed to update member count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeclineInvitation marks the invitation declined
func (r *postgresAirlineRepo) DeclineInvitation(ctx context.Context, invitationID int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE airline_invitations SET status = 'declined', responded_at = NOW()
		WHERE id = $1 AND status = 'pending'`, invitationID)
	if err != nil {
		return fmt.Errorf("failed to decline invitation: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return airlines.ErrInvitationNotFound
	}
	return nil
}

func (r *postgresAirlineRepo) loadHubsAndFleet(ctx context.Context, ids []int64, byID map[int64]*airlines.Airline) error {
	for _, a := range byID {
		a.Hubs = []string{}
		a.Fleet = []string{}
	}
	if len(ids) == 0 {
		return nil
	}

	hubs, err := r.loadHubs(ctx, ids)
	if err != nil {
		return err
	}
	for id, h := range hubs {
		if a, ok := byID[id]; ok {
			a.Hubs = h
		}
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT airline_id, aircraft_icao FROM airline_fleet WHERE airline_id = ANY($1) ORDER BY aircraft_icao`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load fleets: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var id int64
		var aircraft string
		if err := rows.Scan(&id, &aircraft); err != nil {
			return fmt.Errorf("failed to scan fleet row: %w", err)
		}
		if a, ok := byID[id]; ok {
			a.Fleet = append(a.Fleet, aircraft)
		}
	}
	return rows.Err()
}

func (r *postgresAirlineRepo) loadHubs(ctx context.Context, ids []int64) (map[int64][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT airline_id, icao FROM airline_hubs WHERE airline_id = ANY($1) ORDER BY icao`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load hubs: %w", err)
	}
	defer closeRows(rows)

	hubs := make(map[int64][]string)
	for rows.Next() {
		var id int64
		var icao string
		if err := rows.Scan(&id, &icao); err != nil {
			return nil, fmt.Errorf("failed to scan hub row: %w", err)
		}
		hubs[id] = append(hubs[id], icao)
	}
	return hubs, rows.Err()
}

func scanAirline(row rowScanner) (*airlines.Airline, error) {
	airline := &airlines.Airline{}
	var logo, description, tagline, founded, website, discord sql.NullString
	err := row.Scan(
		&airline.ID, &airline.Name, &airline.Code, &airline.ICAO,
		&logo, &description, &tagline, &airline.Region, &founded,
		&website, &discord, &airline.MemberCount, &airline.FlightCount,
		&airline.Rating, &airline.Verified, &airline.Active,
		&airline.CreatedAt, &airline.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	airline.Logo = logo.String
	airline.Description = description.String
	airline.Tagline = tagline.String
	airline.Founded = founded.String
	airline.Website = website.String
	airline.Discord = discord.String
	return airline, nil
}

func scanInvitation(row rowScanner) (*airlines.Invitation, error) {
	inv := &airlines.Invitation{}
	var respondedAt sql.NullTime
	var invitedBy sql.NullString
	err := row.Scan(
		&inv.ID, &inv.AirlineID, &inv.PilotID, &inv.Role, &inv.Status,
		&inv.CreatedAt, &respondedAt,
		&inv.AirlineName, &inv.AirlineCode, &invitedBy,
	)
	if err != nil {
		return nil, err
	}
	if respondedAt.Valid {
		inv.RespondedAt = &respondedAt.Time
	}
	inv.InvitedBy = invitedBy.String
	return inv, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close rows")
	}
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		log.Error().Err(err).Msg("failed to rollback transaction")
	}
}
