package domain

import "time"

type EventVisibility string

const (
	VisibilityOpen       EventVisibility = "OPEN"
	VisibilityInviteOnly EventVisibility = "INVITE_ONLY"
	VisibilityPrivate    EventVisibility = "PRIVATE"
)

// MaxEventLocations caps the number of waypoints attached to one event.
const MaxEventLocations = 5

type Event struct {
	ID              int32           `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	HostID          int32           `json:"host_id"`
	Visibility      EventVisibility `json:"visibility"`
	StartTime       time.Time       `json:"start_time"`
	StartLocationID int32           `json:"start_location_id"`
	ShareToken      string          `json:"share_token"`
	IsDeleted       bool            `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// EventLocation is an ordered stop attached to an event. Position runs 1..MaxEventLocations.
type EventLocation struct {
	EventID    int32  `json:"event_id"`
	LocationID int32  `json:"location_id"`
	Position   int32  `json:"position"`
	Note       string `json:"note"`
}

// IsPublic reports whether the event shows up in public listings.
// PRIVATE events are reachable only through membership or the share token.
func (e *Event) IsPublic() bool {
	return e.Visibility == VisibilityOpen || e.Visibility == VisibilityInviteOnly
}
