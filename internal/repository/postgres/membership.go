package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/repository"
)

type membershipRepository struct {
	db DBTX
}

func NewMembershipRepository(db DBTX) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetRole(ctx context.Context, eventID, userID int32) (*domain.MembershipRole, error) {
	var role domain.MembershipRole
	query := `SELECT role FROM event_memberships WHERE event_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // visitor
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// UpsertAttendee inserts or promotes a membership to ATTENDEE. The unique
// constraint on (event_id, user_id) turns concurrent duplicate creation into
// a single logical row; an existing HOST row is left untouched.
func (r *membershipRepository) UpsertAttendee(ctx context.Context, eventID, userID int32) error {
	query := `INSERT INTO event_memberships (event_id, user_id, role, joined_at)
	          VALUES ($1, $2, 'ATTENDEE', $3)
	          ON CONFLICT (event_id, user_id)
	          DO UPDATE SET role = 'ATTENDEE' WHERE event_memberships.role = 'INVITED'`
	_, err := r.db.ExecContext(ctx, query, eventID, userID, time.Now())
	return err
}

func (r *membershipRepository) CreateHost(ctx context.Context, eventID, userID int32) error {
	query := `INSERT INTO event_memberships (event_id, user_id, role, joined_at) VALUES ($1, $2, 'HOST', $3)`
	_, err := r.db.ExecContext(ctx, query, eventID, userID, time.Now())
	return err
}

// CreateInvited adds the INVITED visibility stub for a fresh invitee. Any
// existing membership row wins, so re-inviting a member is a no-op.
func (r *membershipRepository) CreateInvited(ctx context.Context, eventID, userID int32) error {
	query := `INSERT INTO event_memberships (event_id, user_id, role, joined_at)
	          VALUES ($1, $2, 'INVITED', $3)
	          ON CONFLICT (event_id, user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, eventID, userID, time.Now())
	return err
}

func (r *membershipRepository) RemoveInvited(ctx context.Context, eventID, userID int32) error {
	query := `DELETE FROM event_memberships WHERE event_id = $1 AND user_id = $2 AND role = 'INVITED'`
	_, err := r.db.ExecContext(ctx, query, eventID, userID)
	return err
}

func (r *membershipRepository) ListAttendees(ctx context.Context, eventID int32) ([]domain.Membership, error) {
	query := `SELECT event_id, user_id, role, joined_at FROM event_memberships
	          WHERE event_id = $1 AND role IN ('HOST', 'ATTENDEE') ORDER BY joined_at`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.EventID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
