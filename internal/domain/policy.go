package domain

// Access is the set of actions a user may take on an event, as resolved by
// ResolveAccess. The zero value means no access at all.
type Access struct {
	CanView       bool `json:"can_view"`
	CanJoinDirect bool `json:"can_join_direct"`
	CanRequest    bool `json:"can_request"`
	CanChat       bool `json:"can_chat"`
}

// ResolveAccess maps an event's visibility and a user's current relationship
// to the event into an allowed action set. Pure function, no side effects;
// it gates every mutating use case and selects the read-only panel a caller
// is shown.
//
// role is nil for a visitor. invite and request, when non-nil, are the
// caller's invite/request row for this event regardless of status.
func ResolveAccess(visibility EventVisibility, role *MembershipRole, invite *Invite, request *JoinRequest) Access {
	// Full members first: view + chat regardless of visibility mode.
	if role != nil && role.IsParticipant() {
		return Access{CanView: true, CanChat: true}
	}

	// A pending invite grants view rights but not chat until accepted.
	// On a PRIVATE event the invitee must respond through the invite
	// itself; there is no direct-join shortcut.
	if role != nil && *role == RoleInvited {
		return Access{CanView: true, CanJoinDirect: visibility != VisibilityPrivate}
	}

	switch visibility {
	case VisibilityOpen:
		return Access{CanView: true, CanJoinDirect: true}
	case VisibilityInviteOnly:
		// A request already in flight or approved blocks a second one.
		if request != nil && request.Status != JoinRequestStatusDeclined {
			return Access{}
		}
		return Access{CanView: true, CanRequest: true}
	default:
		return Access{}
	}
}
