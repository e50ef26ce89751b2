package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/repository"
)

type eventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, description, host_id, visibility, start_time, start_location_id, share_token, is_deleted, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event, stops []domain.EventLocation) error {
	query := `INSERT INTO events (title, description, host_id, visibility, start_time, start_location_id, share_token, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id, created_at, updated_at`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.HostID, e.Visibility, e.StartTime, e.StartLocationID, e.ShareToken, now,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	for _, stop := range stops {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO event_locations (event_id, location_id, position, note) VALUES ($1, $2, $3, $4)`,
			e.ID, stop.LocationID, stop.Position, stop.Note)
		if err != nil {
			return fmt.Errorf("insert event location: %w", err)
		}
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND is_deleted = FALSE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetByShareToken(ctx context.Context, token string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE share_token = $1 AND is_deleted = FALSE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

func (r *eventRepository) scanOne(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.HostID, &e.Visibility, &e.StartTime,
		&e.StartLocationID, &e.ShareToken, &e.IsDeleted, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListPublic(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE is_deleted = FALSE AND visibility IN ('OPEN', 'INVITE_ONLY')`
	args := []any{}
	if filter.Visibility != "" {
		args = append(args, filter.Visibility)
		query += fmt.Sprintf(" AND visibility = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if filter.Ascending {
		query += " ORDER BY start_time ASC"
	} else {
		query += " ORDER BY start_time DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.HostID, &e.Visibility, &e.StartTime,
			&e.StartLocationID, &e.ShareToken, &e.IsDeleted, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListStops(ctx context.Context, eventID int32) ([]domain.EventLocation, error) {
	query := `SELECT event_id, location_id, position, note FROM event_locations WHERE event_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []domain.EventLocation
	for rows.Next() {
		var s domain.EventLocation
		if err := rows.Scan(&s.EventID, &s.LocationID, &s.Position, &s.Note); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

func (r *eventRepository) UpdateVisibility(ctx context.Context, eventID int32, visibility domain.EventVisibility) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET visibility = $1, updated_at = $2 WHERE id = $3 AND is_deleted = FALSE`,
		visibility, time.Now(), eventID)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrEventNotFound)
}

func (r *eventRepository) SoftDelete(ctx context.Context, eventID int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET is_deleted = TRUE, updated_at = $1 WHERE id = $2 AND is_deleted = FALSE`,
		time.Now(), eventID)
	if err != nil {
		return err
	}
	return requireRow(res, domain.ErrEventNotFound)
}

// requireRow converts a zero-row update into the given domain error.
func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}
