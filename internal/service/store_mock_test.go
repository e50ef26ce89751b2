package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/repository"
)

// memStore is an in-memory repository.Store used by the service tests.
// WithTx applies fn directly; the SQL-level transactional behavior is
// covered by the repository tests.
type memStore struct {
	mu sync.Mutex

	nextEventID   int32
	nextInviteID  int32
	nextRequestID int32
	nextMessageID int32

	events      map[int32]*domain.Event
	stops       map[int32][]domain.EventLocation
	memberships map[[2]int32]*domain.Membership
	invites     map[int32]*domain.Invite
	requests    map[int32]*domain.JoinRequest
	messages    map[int32][]domain.ChatMessage
}

func newMemStore() *memStore {
	return &memStore{
		nextEventID:   1,
		nextInviteID:  1,
		nextRequestID: 1,
		nextMessageID: 1,
		events:        make(map[int32]*domain.Event),
		stops:         make(map[int32][]domain.EventLocation),
		memberships:   make(map[[2]int32]*domain.Membership),
		invites:       make(map[int32]*domain.Invite),
		requests:      make(map[int32]*domain.JoinRequest),
		messages:      make(map[int32][]domain.ChatMessage),
	}
}

func (s *memStore) Events() repository.EventRepository             { return (*memEvents)(s) }
func (s *memStore) Memberships() repository.MembershipRepository   { return (*memMemberships)(s) }
func (s *memStore) Invites() repository.InviteRepository           { return (*memInvites)(s) }
func (s *memStore) JoinRequests() repository.JoinRequestRepository { return (*memRequests)(s) }
func (s *memStore) Chat() repository.ChatMessageRepository         { return (*memChat)(s) }

func (s *memStore) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// seedEvent inserts an event plus its HOST membership and returns it.
func (s *memStore) seedEvent(hostID int32, visibility domain.EventVisibility) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &domain.Event{
		ID:         s.nextEventID,
		Title:      "Test Event",
		HostID:     hostID,
		Visibility: visibility,
		StartTime:  time.Now().Add(24 * time.Hour),
		ShareToken: "token",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	s.nextEventID++
	s.events[e.ID] = e
	s.memberships[[2]int32{e.ID, hostID}] = &domain.Membership{
		EventID: e.ID, UserID: hostID, Role: domain.RoleHost, JoinedAt: time.Now(),
	}
	return e
}

func (s *memStore) roleOf(eventID, userID int32) *domain.MembershipRole {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.memberships[[2]int32{eventID, userID}]
	if !ok {
		return nil
	}
	role := m.Role
	return &role
}

type memEvents memStore

func (s *memEvents) Create(ctx context.Context, e *domain.Event, stops []domain.EventLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextEventID
	s.nextEventID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	clone := *e
	s.events[e.ID] = &clone
	for i := range stops {
		stops[i].EventID = e.ID
	}
	s.stops[e.ID] = stops
	return nil
}

func (s *memEvents) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok || e.IsDeleted {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (s *memEvents) GetByShareToken(ctx context.Context, token string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ShareToken == token && !e.IsDeleted {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (s *memEvents) ListPublic(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Event
	for _, e := range s.events {
		if e.IsDeleted || !e.IsPublic() {
			continue
		}
		if filter.Visibility != "" && e.Visibility != filter.Visibility {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Ascending {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[j].StartTime.Before(out[i].StartTime)
	})
	return out, nil
}

func (s *memEvents) ListStops(ctx context.Context, eventID int32) ([]domain.EventLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops[eventID], nil
}

func (s *memEvents) UpdateVisibility(ctx context.Context, eventID int32, visibility domain.EventVisibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok || e.IsDeleted {
		return domain.ErrEventNotFound
	}
	e.Visibility = visibility
	return nil
}

func (s *memEvents) SoftDelete(ctx context.Context, eventID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[eventID]
	if !ok || e.IsDeleted {
		return domain.ErrEventNotFound
	}
	e.IsDeleted = true
	return nil
}

type memMemberships memStore

func (s *memMemberships) GetRole(ctx context.Context, eventID, userID int32) (*domain.MembershipRole, error) {
	return (*memStore)(s).roleOf(eventID, userID), nil
}

func (s *memMemberships) UpsertAttendee(ctx context.Context, eventID, userID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int32{eventID, userID}
	if m, ok := s.memberships[key]; ok {
		if m.Role == domain.RoleInvited {
			m.Role = domain.RoleAttendee
		}
		return nil
	}
	s.memberships[key] = &domain.Membership{
		EventID: eventID, UserID: userID, Role: domain.RoleAttendee, JoinedAt: time.Now(),
	}
	return nil
}

func (s *memMemberships) CreateHost(ctx context.Context, eventID, userID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships[[2]int32{eventID, userID}] = &domain.Membership{
		EventID: eventID, UserID: userID, Role: domain.RoleHost, JoinedAt: time.Now(),
	}
	return nil
}

func (s *memMemberships) CreateInvited(ctx context.Context, eventID, userID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int32{eventID, userID}
	if _, ok := s.memberships[key]; ok {
		return nil
	}
	s.memberships[key] = &domain.Membership{
		EventID: eventID, UserID: userID, Role: domain.RoleInvited, JoinedAt: time.Now(),
	}
	return nil
}

func (s *memMemberships) RemoveInvited(ctx context.Context, eventID, userID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int32{eventID, userID}
	if m, ok := s.memberships[key]; ok && m.Role == domain.RoleInvited {
		delete(s.memberships, key)
	}
	return nil
}

func (s *memMemberships) ListAttendees(ctx context.Context, eventID int32) ([]domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Membership
	for _, m := range s.memberships {
		if m.EventID == eventID && m.Role.IsParticipant() {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}

type memInvites memStore

func (s *memInvites) Create(ctx context.Context, inv *domain.Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.invites {
		if existing.EventID == inv.EventID && existing.InviteeID == inv.InviteeID {
			inv.ID = 0 // conflict no-op
			return nil
		}
	}
	inv.ID = s.nextInviteID
	s.nextInviteID++
	inv.CreatedAt = time.Now()
	clone := *inv
	s.invites[inv.ID] = &clone
	return nil
}

func (s *memInvites) GetByID(ctx context.Context, id int32) (*domain.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invites[id]
	if !ok {
		return nil, domain.ErrInviteNotFound
	}
	clone := *inv
	return &clone, nil
}

func (s *memInvites) GetByEventAndInvitee(ctx context.Context, eventID, inviteeID int32) (*domain.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invites {
		if inv.EventID == eventID && inv.InviteeID == inviteeID {
			clone := *inv
			return &clone, nil
		}
	}
	return nil, domain.ErrInviteNotFound
}

func (s *memInvites) ListPendingForUser(ctx context.Context, userID int32) ([]domain.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Invite
	for _, inv := range s.invites {
		if inv.InviteeID == userID && inv.Status == domain.InviteStatusPending {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memInvites) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Invite
	for _, inv := range s.invites {
		if inv.Status == domain.InviteStatusPending && inv.CreatedAt.Before(cutoff) {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (s *memInvites) UpdateStatus(ctx context.Context, id int32, status domain.InviteStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invites[id]
	if !ok || inv.Status != domain.InviteStatusPending {
		return domain.ErrInviteNotPending
	}
	now := time.Now()
	inv.Status = status
	inv.RespondedAt = &now
	return nil
}

type memRequests memStore

func (s *memRequests) Create(ctx context.Context, req *domain.JoinRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.requests {
		if existing.EventID == req.EventID && existing.RequesterID == req.RequesterID {
			if existing.Status == domain.JoinRequestStatusDeclined {
				// re-open the declined row as a fresh pending request
				existing.Status = domain.JoinRequestStatusPending
				existing.CreatedAt = time.Now()
				existing.DecidedAt = nil
				req.ID = existing.ID
				req.CreatedAt = existing.CreatedAt
				return nil
			}
			req.ID = 0
			return nil
		}
	}
	req.ID = s.nextRequestID
	s.nextRequestID++
	req.CreatedAt = time.Now()
	clone := *req
	s.requests[req.ID] = &clone
	return nil
}

func (s *memRequests) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (s *memRequests) GetByEventAndRequester(ctx context.Context, eventID, requesterID int32) (*domain.JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, req := range s.requests {
		if req.EventID == eventID && req.RequesterID == requesterID {
			clone := *req
			return &clone, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (s *memRequests) ListPendingForEvent(ctx context.Context, eventID int32) ([]domain.JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.JoinRequest
	for _, req := range s.requests {
		if req.EventID == eventID && req.Status == domain.JoinRequestStatusPending {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memRequests) UpdateStatus(ctx context.Context, id int32, status domain.JoinRequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok || req.Status != domain.JoinRequestStatusPending {
		return domain.ErrRequestNotPending
	}
	now := time.Now()
	req.Status = status
	req.DecidedAt = &now
	return nil
}

type memChat memStore

func (s *memChat) Insert(ctx context.Context, msg *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = s.nextMessageID
	s.nextMessageID++
	msg.CreatedAt = time.Now()
	s.messages[msg.EventID] = append(s.messages[msg.EventID], *msg)
	return nil
}

func (s *memChat) PruneOldest(ctx context.Context, eventID int32, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[eventID]
	if len(msgs) > keep {
		s.messages[eventID] = append([]domain.ChatMessage(nil), msgs[len(msgs)-keep:]...)
	}
	return nil
}

func (s *memChat) ListRecent(ctx context.Context, eventID int32, limit int) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[eventID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]domain.ChatMessage(nil), msgs...), nil
}

// recordingNotifier captures notification calls for assertions.
type recordingNotifier struct {
	mu             sync.Mutex
	invitesCreated []int32 // invitee IDs
	requestsSeen   []int32 // requester IDs
	decisionsSeen  []domain.JoinRequestStatus
}

func (n *recordingNotifier) InviteCreated(ctx context.Context, event *domain.Event, invite *domain.Invite) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.invitesCreated = append(n.invitesCreated, invite.InviteeID)
	return nil
}

func (n *recordingNotifier) JoinRequestCreated(ctx context.Context, event *domain.Event, req *domain.JoinRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requestsSeen = append(n.requestsSeen, req.RequesterID)
	return nil
}

func (n *recordingNotifier) JoinRequestDecided(ctx context.Context, event *domain.Event, req *domain.JoinRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.decisionsSeen = append(n.decisionsSeen, req.Status)
	return nil
}
