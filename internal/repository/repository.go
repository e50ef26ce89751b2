package repository

import (
	"context"
	"time"

	"artevents-backend/internal/domain"
)

// EventFilter narrows ListPublic results.
type EventFilter struct {
	Query      string                 // matches title, case-insensitive
	Visibility domain.EventVisibility // empty means both public modes
	Ascending  bool                   // order by start_time
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event, stops []domain.EventLocation) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	GetByShareToken(ctx context.Context, token string) (*domain.Event, error)
	ListPublic(ctx context.Context, filter EventFilter) ([]domain.Event, error)
	ListStops(ctx context.Context, eventID int32) ([]domain.EventLocation, error)
	UpdateVisibility(ctx context.Context, eventID int32, visibility domain.EventVisibility) error
	SoftDelete(ctx context.Context, eventID int32) error
}

type MembershipRepository interface {
	GetRole(ctx context.Context, eventID, userID int32) (*domain.MembershipRole, error)
	// UpsertAttendee is idempotent: concurrent callers racing to create the
	// same membership both observe success with identical final state.
	UpsertAttendee(ctx context.Context, eventID, userID int32) error
	CreateHost(ctx context.Context, eventID, userID int32) error
	// CreateInvited inserts an INVITED stub unless any membership row exists.
	CreateInvited(ctx context.Context, eventID, userID int32) error
	RemoveInvited(ctx context.Context, eventID, userID int32) error
	ListAttendees(ctx context.Context, eventID int32) ([]domain.Membership, error)
}

type InviteRepository interface {
	// Create is a no-op when an invite for (event, invitee) already exists.
	Create(ctx context.Context, invite *domain.Invite) error
	GetByID(ctx context.Context, id int32) (*domain.Invite, error)
	GetByEventAndInvitee(ctx context.Context, eventID, inviteeID int32) (*domain.Invite, error)
	ListPendingForUser(ctx context.Context, userID int32) ([]domain.Invite, error)
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.Invite, error)
	UpdateStatus(ctx context.Context, id int32, status domain.InviteStatus) error
}

type JoinRequestRepository interface {
	// Create is a no-op when a request for (event, requester) already exists.
	Create(ctx context.Context, req *domain.JoinRequest) error
	GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error)
	GetByEventAndRequester(ctx context.Context, eventID, requesterID int32) (*domain.JoinRequest, error)
	ListPendingForEvent(ctx context.Context, eventID int32) ([]domain.JoinRequest, error)
	UpdateStatus(ctx context.Context, id int32, status domain.JoinRequestStatus) error
}

type ChatMessageRepository interface {
	Insert(ctx context.Context, msg *domain.ChatMessage) error
	// PruneOldest deletes every message for the event outside the most
	// recent keep window. Must run in the same transaction as Insert.
	PruneOldest(ctx context.Context, eventID int32, keep int) error
	// ListRecent returns the most recent limit messages, oldest first.
	ListRecent(ctx context.Context, eventID int32, limit int) ([]domain.ChatMessage, error)
}

// Store aggregates the repositories over one underlying database handle.
// WithTx runs fn against a Store bound to a single transaction; every
// mutating use case goes through it so its effects commit or roll back as
// one unit.
type Store interface {
	Events() EventRepository
	Memberships() MembershipRepository
	Invites() InviteRepository
	JoinRequests() JoinRequestRepository
	Chat() ChatMessageRepository
	WithTx(ctx context.Context, fn func(Store) error) error
}
