package domain

import "time"

type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "PENDING"
	JoinRequestStatusApproved JoinRequestStatus = "APPROVED"
	JoinRequestStatusDeclined JoinRequestStatus = "DECLINED"
)

// JoinRequest is a visitor-issued request to join an INVITE_ONLY event.
// At most one exists per (event, requester); like invites, requests are an
// audit trail and are never deleted.
type JoinRequest struct {
	ID          int32             `json:"id"`
	EventID     int32             `json:"event_id"`
	RequesterID int32             `json:"requester_id"`
	Status      JoinRequestStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	DecidedAt   *time.Time        `json:"decided_at,omitempty"`
}
