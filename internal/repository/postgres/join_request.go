package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/repository"
)

type joinRequestRepository struct {
	db DBTX
}

func NewJoinRequestRepository(db DBTX) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

const joinRequestColumns = `id, event_id, requester_id, status, created_at, decided_at`

// Create inserts a PENDING request, or re-opens a previously DECLINED one
// for the same (event, requester). Against an existing PENDING or APPROVED
// row it is a no-op, not a duplicate, and the request's ID is left at zero.
func (r *joinRequestRepository) Create(ctx context.Context, req *domain.JoinRequest) error {
	query := `INSERT INTO event_join_requests (event_id, requester_id, status, created_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (event_id, requester_id) DO UPDATE
	          SET status = 'PENDING', created_at = EXCLUDED.created_at, decided_at = NULL
	          WHERE event_join_requests.status = 'DECLINED'
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		req.EventID, req.RequesterID, domain.JoinRequestStatusPending, time.Now(),
	).Scan(&req.ID, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // request already exists
	}
	return err
}

func (r *joinRequestRepository) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM event_join_requests WHERE id = $1`
	return scanJoinRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *joinRequestRepository) GetByEventAndRequester(ctx context.Context, eventID, requesterID int32) (*domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM event_join_requests WHERE event_id = $1 AND requester_id = $2`
	return scanJoinRequest(r.db.QueryRowContext(ctx, query, eventID, requesterID))
}

func scanJoinRequest(row *sql.Row) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	err := row.Scan(&req.ID, &req.EventID, &req.RequesterID, &req.Status, &req.CreatedAt, &req.DecidedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *joinRequestRepository) ListPendingForEvent(ctx context.Context, eventID int32) ([]domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM event_join_requests
	          WHERE event_id = $1 AND status = 'PENDING' ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.JoinRequest
	for rows.Next() {
		var req domain.JoinRequest
		if err := rows.Scan(&req.ID, &req.EventID, &req.RequesterID, &req.Status, &req.CreatedAt, &req.DecidedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// UpdateStatus decides a PENDING request; resolved requests are immutable.
func (r *joinRequestRepository) UpdateStatus(ctx context.Context, id int32, status domain.JoinRequestStatus) error {
	query := `UPDATE event_join_requests SET status = $1, decided_at = $2 WHERE id = $3 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrRequestNotPending)
}
