package domain

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
	InviteStatusDeclined InviteStatus = "DECLINED"
	InviteStatusExpired  InviteStatus = "EXPIRED"
)

// DefaultInviteTTL is how long a pending invite stays actionable before the
// sweeper marks it EXPIRED.
const DefaultInviteTTL = 7 * 24 * time.Hour

// Invite is a host-issued offer to a specific user. Creating one also creates
// an INVITED membership stub so the invitee can see the event before deciding.
// Invites move through terminal states but are never deleted.
type Invite struct {
	ID          int32        `json:"id"`
	EventID     int32        `json:"event_id"`
	InviterID   int32        `json:"inviter_id"`
	InviteeID   int32        `json:"invitee_id"`
	Status      InviteStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	RespondedAt *time.Time   `json:"responded_at,omitempty"`
}
