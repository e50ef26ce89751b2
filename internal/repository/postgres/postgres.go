package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"artevents-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same repository code serves both plain calls and transactional ones.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db     *sql.DB // nil when the store is bound to a transaction
	events repository.EventRepository
	member repository.MembershipRepository
	invite repository.InviteRepository
	joins  repository.JoinRequestRepository
	chat   repository.ChatMessageRepository
}

func NewStore(db *sql.DB) *Store {
	s := newStore(db)
	s.db = db
	return s
}

func newStore(dbtx DBTX) *Store {
	return &Store{
		events: NewEventRepository(dbtx),
		member: NewMembershipRepository(dbtx),
		invite: NewInviteRepository(dbtx),
		joins:  NewJoinRequestRepository(dbtx),
		chat:   NewChatMessageRepository(dbtx),
	}
}

func (s *Store) Events() repository.EventRepository            { return s.events }
func (s *Store) Memberships() repository.MembershipRepository  { return s.member }
func (s *Store) Invites() repository.InviteRepository          { return s.invite }
func (s *Store) JoinRequests() repository.JoinRequestRepository { return s.joins }
func (s *Store) Chat() repository.ChatMessageRepository        { return s.chat }

// WithTx runs fn against a Store bound to a single transaction. The
// transaction commits only when fn returns nil; any error rolls everything
// back.
func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		// Already inside a transaction; nested use cases share it.
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(newStore(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
