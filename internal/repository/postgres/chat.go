package postgres

import (
	"context"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/repository"
)

type chatMessageRepository struct {
	db DBTX
}

func NewChatMessageRepository(db DBTX) repository.ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

func (r *chatMessageRepository) Insert(ctx context.Context, msg *domain.ChatMessage) error {
	query := `INSERT INTO event_chat_messages (event_id, author_id, body, created_at)
	          VALUES ($1, $2, $3, NOW()) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, msg.EventID, msg.AuthorID, msg.Body).
		Scan(&msg.ID, &msg.CreatedAt)
}

// PruneOldest deletes everything outside the most recent keep window for the
// event. The cutoff orders by created_at with id as tiebreaker so two
// messages in the same instant prune deterministically. Callers run this in
// the same transaction as Insert so the cap is enforced at write time.
func (r *chatMessageRepository) PruneOldest(ctx context.Context, eventID int32, keep int) error {
	query := `DELETE FROM event_chat_messages
	          WHERE event_id = $1 AND id NOT IN (
	              SELECT id FROM event_chat_messages
	              WHERE event_id = $1
	              ORDER BY created_at DESC, id DESC
	              LIMIT $2
	          )`
	_, err := r.db.ExecContext(ctx, query, eventID, keep)
	return err
}

// ListRecent returns the latest limit messages in chronological order. The
// inner query selects newest-first for the cutoff, the outer flips to
// oldest-first for display.
func (r *chatMessageRepository) ListRecent(ctx context.Context, eventID int32, limit int) ([]domain.ChatMessage, error) {
	query := `SELECT id, event_id, author_id, body, created_at FROM (
	              SELECT id, event_id, author_id, body, created_at
	              FROM event_chat_messages
	              WHERE event_id = $1
	              ORDER BY created_at DESC, id DESC
	              LIMIT $2
	          ) recent ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, eventID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.EventID, &m.AuthorID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
