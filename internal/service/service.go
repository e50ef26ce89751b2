package service

import (
	"context"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/repository"
)

// AccessService exposes the event access-control use cases. Every mutating
// method runs as one atomic transaction: role changes, ledger writes and
// chat retention pruning either all commit or none do, and each failure is
// one of the closed set of domain errors.
type AccessService interface {
	InviteUsers(ctx context.Context, eventID, inviterID int32, inviteeIDs []int32) ([]domain.Invite, error)
	AcceptInvite(ctx context.Context, inviteID, userID int32) error
	DeclineInvite(ctx context.Context, inviteID, userID int32) error
	JoinEvent(ctx context.Context, eventID, userID int32) error
	RequestToJoin(ctx context.Context, eventID, userID int32) (*domain.JoinRequest, error)
	ApproveRequest(ctx context.Context, requestID, actingUserID int32) error
	DeclineRequest(ctx context.Context, requestID, actingUserID int32) error
	PostMessage(ctx context.Context, eventID, authorID int32, body string) (*domain.ChatMessage, error)

	// Read-only selectors; no side effects.
	ListMessages(ctx context.Context, eventID, userID int32) ([]domain.ChatMessage, error)
	ListInvitations(ctx context.Context, userID int32) ([]domain.Invite, error)
	ListPendingRequests(ctx context.Context, eventID, actingUserID int32) ([]domain.JoinRequest, error)
	ResolveAccess(ctx context.Context, eventID, userID int32) (*domain.Access, error)
}

// EventService covers the event lifecycle around the access subsystem:
// creation with stops and initial invites, public listing, visibility
// changes and soft deletion.
type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, eventID int32) (*domain.Event, []domain.EventLocation, error)
	GetEventByShareToken(ctx context.Context, token string) (*domain.Event, error)
	ListPublicEvents(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error)
	ListAttendees(ctx context.Context, eventID int32) ([]domain.Membership, error)
	ChangeVisibility(ctx context.Context, eventID, actingUserID int32, visibility domain.EventVisibility) error
	DeleteEvent(ctx context.Context, eventID, actingUserID int32) error
}

// CreateEventInput carries everything needed to create an event in one
// transaction.
type CreateEventInput struct {
	HostID          int32
	Title           string
	Description     string
	Visibility      domain.EventVisibility
	StartTime       string // RFC 3339
	StartLocationID int32
	LocationIDs     []int32 // additional stops, ordered
	InviteeIDs      []int32 // initial invites
}
