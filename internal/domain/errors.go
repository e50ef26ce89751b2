package domain

import "errors"

// Closed set of domain errors. Every use case failure maps to one of these;
// the transport layer translates them to status codes. Idempotent no-ops
// (already joined, already invited, already requested) are successes, not
// members of this set.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInviteNotFound    = errors.New("invite not found")
	ErrRequestNotFound   = errors.New("join request not found")
	ErrNotHost           = errors.New("action requires the event host")
	ErrNotInvitee        = errors.New("invite belongs to another user")
	ErrInviteNotPending  = errors.New("invite already resolved")
	ErrRequestNotPending = errors.New("join request already resolved")
	ErrJoinNotAllowed    = errors.New("event visibility does not allow joining")
	ErrNotAMember        = errors.New("user is not a participant of this event")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrMessageTooLong    = errors.New("message exceeds maximum length")
	ErrLocationLimit     = errors.New("too many event locations")
	ErrDuplicateLocation = errors.New("duplicate event location")
	ErrEmptyTitle        = errors.New("event title is required")
	ErrInvalidStartTime  = errors.New("invalid event start time")
	ErrInvalidVisibility = errors.New("invalid event visibility")
)
