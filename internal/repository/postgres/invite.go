package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/repository"
)

type inviteRepository struct {
	db DBTX
}

func NewInviteRepository(db DBTX) repository.InviteRepository {
	return &inviteRepository{db: db}
}

const inviteColumns = `id, event_id, inviter_id, invitee_id, status, created_at, responded_at`

// Create inserts a PENDING invite. The unique constraint on
// (event_id, invitee_id) makes a repeat invite a no-op rather than an error;
// in that case the invite's ID is left at zero.
func (r *inviteRepository) Create(ctx context.Context, inv *domain.Invite) error {
	query := `INSERT INTO event_invites (event_id, inviter_id, invitee_id, status, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (event_id, invitee_id) DO NOTHING
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		inv.EventID, inv.InviterID, inv.InviteeID, domain.InviteStatusPending, time.Now(),
	).Scan(&inv.ID, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // already invited
	}
	return err
}

func (r *inviteRepository) GetByID(ctx context.Context, id int32) (*domain.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM event_invites WHERE id = $1`
	return scanInvite(r.db.QueryRowContext(ctx, query, id))
}

func (r *inviteRepository) GetByEventAndInvitee(ctx context.Context, eventID, inviteeID int32) (*domain.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM event_invites WHERE event_id = $1 AND invitee_id = $2`
	return scanInvite(r.db.QueryRowContext(ctx, query, eventID, inviteeID))
}

func scanInvite(row *sql.Row) (*domain.Invite, error) {
	inv := &domain.Invite{}
	err := row.Scan(&inv.ID, &inv.EventID, &inv.InviterID, &inv.InviteeID, &inv.Status, &inv.CreatedAt, &inv.RespondedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInviteNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *inviteRepository) ListPendingForUser(ctx context.Context, userID int32) ([]domain.Invite, error) {
	query := `SELECT i.id, i.event_id, i.inviter_id, i.invitee_id, i.status, i.created_at, i.responded_at
	          FROM event_invites i
	          JOIN events e ON e.id = i.event_id AND e.is_deleted = FALSE
	          WHERE i.invitee_id = $1 AND i.status = 'PENDING'
	          ORDER BY i.created_at`
	return r.list(ctx, query, userID)
}

func (r *inviteRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM event_invites WHERE status = 'PENDING' AND created_at < $1`
	return r.list(ctx, query, cutoff)
}

func (r *inviteRepository) list(ctx context.Context, query string, args ...any) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		var inv domain.Invite
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.InviterID, &inv.InviteeID, &inv.Status, &inv.CreatedAt, &inv.RespondedAt); err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

// UpdateStatus resolves a PENDING invite. The status guard in the WHERE
// clause makes terminal states immutable even under concurrent responders.
func (r *inviteRepository) UpdateStatus(ctx context.Context, id int32, status domain.InviteStatus) error {
	query := `UPDATE event_invites SET status = $1, responded_at = $2 WHERE id = $3 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrInviteNotPending)
}
