package domain

import "time"

type MembershipRole string

const (
	RoleHost     MembershipRole = "HOST"
	RoleAttendee MembershipRole = "ATTENDEE"
	RoleInvited  MembershipRole = "INVITED"
)

// Membership is the authoritative participation record. At most one row
// exists per (event, user); a user with no row is a visitor.
type Membership struct {
	EventID  int32          `json:"event_id"`
	UserID   int32          `json:"user_id"`
	Role     MembershipRole `json:"role"`
	JoinedAt time.Time      `json:"joined_at"`
}

// IsParticipant reports whether the role grants full participation (chat rights).
func (r MembershipRole) IsParticipant() bool {
	return r == RoleHost || r == RoleAttendee
}
