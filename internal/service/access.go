package service

import (
	"context"
	"errors"
	"fmt"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/logger"
	"artevents-backend/internal/notify"
	"artevents-backend/internal/repository"
)

type accessService struct {
	store    repository.Store
	notifier notify.Notifier
}

func NewAccessService(store repository.Store, notifier notify.Notifier) AccessService {
	return &accessService{
		store:    store,
		notifier: notifier,
	}
}

// InviteUsers creates PENDING invites plus INVITED membership stubs for
// every unique invitee who is not already a participant. Re-inviting an
// existing invitee is a no-op, not an error. All pairs commit atomically.
func (s *accessService) InviteUsers(ctx context.Context, eventID, inviterID int32, inviteeIDs []int32) ([]domain.Invite, error) {
	var created []domain.Invite
	var event *domain.Event

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		event, err = tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event.HostID != inviterID {
			return domain.ErrNotHost
		}

		for _, inviteeID := range dedupe(inviteeIDs) {
			if inviteeID == event.HostID {
				continue
			}
			role, err := tx.Memberships().GetRole(ctx, eventID, inviteeID)
			if err != nil {
				return fmt.Errorf("load membership: %w", err)
			}
			if role != nil && role.IsParticipant() {
				continue
			}

			inv := &domain.Invite{
				EventID:   eventID,
				InviterID: inviterID,
				InviteeID: inviteeID,
				Status:    domain.InviteStatusPending,
			}
			if err := tx.Invites().Create(ctx, inv); err != nil {
				return fmt.Errorf("create invite: %w", err)
			}
			if inv.ID == 0 {
				continue // invite already existed
			}
			if err := tx.Memberships().CreateInvited(ctx, eventID, inviteeID); err != nil {
				return fmt.Errorf("create invited membership: %w", err)
			}
			created = append(created, *inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range created {
		if err := s.notifier.InviteCreated(ctx, event, &created[i]); err != nil {
			logger.Error("invite notification failed", "event_id", eventID, "invitee_id", created[i].InviteeID, "error", err)
		}
	}
	return created, nil
}

// AcceptInvite resolves a PENDING invite and promotes the invitee's
// membership to ATTENDEE. Only the invite's own invitee may accept.
func (s *accessService) AcceptInvite(ctx context.Context, inviteID, userID int32) error {
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		inv, err := tx.Invites().GetByID(ctx, inviteID)
		if err != nil {
			return err
		}
		if inv.InviteeID != userID {
			return domain.ErrNotInvitee
		}
		if inv.Status != domain.InviteStatusPending {
			return domain.ErrInviteNotPending
		}
		if err := tx.Invites().UpdateStatus(ctx, inviteID, domain.InviteStatusAccepted); err != nil {
			return err
		}
		return tx.Memberships().UpsertAttendee(ctx, inv.EventID, userID)
	})
}

// DeclineInvite resolves a PENDING invite and removes the INVITED membership
// stub entirely; the user reverts to visitor.
func (s *accessService) DeclineInvite(ctx context.Context, inviteID, userID int32) error {
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		inv, err := tx.Invites().GetByID(ctx, inviteID)
		if err != nil {
			return err
		}
		if inv.InviteeID != userID {
			return domain.ErrNotInvitee
		}
		if inv.Status != domain.InviteStatusPending {
			return domain.ErrInviteNotPending
		}
		if err := tx.Invites().UpdateStatus(ctx, inviteID, domain.InviteStatusDeclined); err != nil {
			return err
		}
		return tx.Memberships().RemoveInvited(ctx, inv.EventID, userID)
	})
}

// JoinEvent makes the caller an attendee when the visibility policy allows a
// direct join. Already being a member is a harmless idempotent success. A
// pending invite on an INVITE_ONLY event counts as a direct-join grant and
// is resolved as accepted along the way.
func (s *accessService) JoinEvent(ctx context.Context, eventID, userID int32) error {
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		event, err := tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		role, err := tx.Memberships().GetRole(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("load membership: %w", err)
		}
		if role != nil && role.IsParticipant() {
			return nil // already joined
		}

		inv, err := tx.Invites().GetByEventAndInvitee(ctx, eventID, userID)
		if err != nil && !errors.Is(err, domain.ErrInviteNotFound) {
			return err
		}
		req, err := tx.JoinRequests().GetByEventAndRequester(ctx, eventID, userID)
		if err != nil && !errors.Is(err, domain.ErrRequestNotFound) {
			return err
		}

		access := domain.ResolveAccess(event.Visibility, role, inv, req)
		if !access.CanJoinDirect {
			return domain.ErrJoinNotAllowed
		}

		if inv != nil && inv.Status == domain.InviteStatusPending {
			if err := tx.Invites().UpdateStatus(ctx, inv.ID, domain.InviteStatusAccepted); err != nil {
				return err
			}
		}
		return tx.Memberships().UpsertAttendee(ctx, eventID, userID)
	})
}

// RequestToJoin files a PENDING join request on an INVITE_ONLY event.
// Calling again while a request is pending returns the existing request as
// a success, never a duplicate row. A previously declined requester may ask
// again; the declined row is re-opened as PENDING. An approved request
// blocks further requests.
func (s *accessService) RequestToJoin(ctx context.Context, eventID, userID int32) (*domain.JoinRequest, error) {
	var result *domain.JoinRequest
	var event *domain.Event
	var createdNew bool

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		event, err = tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		role, err := tx.Memberships().GetRole(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("load membership: %w", err)
		}

		existing, err := tx.JoinRequests().GetByEventAndRequester(ctx, eventID, userID)
		if err != nil && !errors.Is(err, domain.ErrRequestNotFound) {
			return err
		}
		if existing != nil && existing.Status == domain.JoinRequestStatusPending {
			result = existing
			return nil
		}

		access := domain.ResolveAccess(event.Visibility, role, nil, existing)
		if !access.CanRequest {
			return domain.ErrJoinNotAllowed
		}

		req := &domain.JoinRequest{
			EventID:     eventID,
			RequesterID: userID,
			Status:      domain.JoinRequestStatusPending,
		}
		if err := tx.JoinRequests().Create(ctx, req); err != nil {
			return fmt.Errorf("create join request: %w", err)
		}
		if req.ID == 0 {
			// Lost a race with a concurrent request; return the winner's row.
			result, err = tx.JoinRequests().GetByEventAndRequester(ctx, eventID, userID)
			return err
		}
		result = req
		createdNew = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if createdNew {
		if err := s.notifier.JoinRequestCreated(ctx, event, result); err != nil {
			logger.Error("join request notification failed", "event_id", eventID, "requester_id", userID, "error", err)
		}
	}
	return result, nil
}

// ApproveRequest approves a PENDING request and creates the ATTENDEE
// membership. The host check happens inside the transaction.
func (s *accessService) ApproveRequest(ctx context.Context, requestID, actingUserID int32) error {
	return s.decideRequest(ctx, requestID, actingUserID, domain.JoinRequestStatusApproved)
}

// DeclineRequest declines a PENDING request; no membership is created.
func (s *accessService) DeclineRequest(ctx context.Context, requestID, actingUserID int32) error {
	return s.decideRequest(ctx, requestID, actingUserID, domain.JoinRequestStatusDeclined)
}

func (s *accessService) decideRequest(ctx context.Context, requestID, actingUserID int32, status domain.JoinRequestStatus) error {
	var event *domain.Event
	var req *domain.JoinRequest

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		req, err = tx.JoinRequests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		event, err = tx.Events().GetByID(ctx, req.EventID)
		if err != nil {
			return err
		}
		if event.HostID != actingUserID {
			return domain.ErrNotHost
		}
		if req.Status != domain.JoinRequestStatusPending {
			return domain.ErrRequestNotPending
		}
		if err := tx.JoinRequests().UpdateStatus(ctx, requestID, status); err != nil {
			return err
		}
		req.Status = status
		if status == domain.JoinRequestStatusApproved {
			return tx.Memberships().UpsertAttendee(ctx, req.EventID, req.RequesterID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.notifier.JoinRequestDecided(ctx, event, req); err != nil {
		logger.Error("join request decision notification failed", "request_id", requestID, "error", err)
	}
	return nil
}

// PostMessage appends a chat message and prunes the log past the retention
// cap within the same transaction, so no caller ever observes the store
// growing without bound.
func (s *accessService) PostMessage(ctx context.Context, eventID, authorID int32, body string) (*domain.ChatMessage, error) {
	body, err := domain.ValidateMessageBody(body)
	if err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		EventID:  eventID,
		AuthorID: authorID,
		Body:     body,
	}
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Events().GetByID(ctx, eventID); err != nil {
			return err
		}
		role, err := tx.Memberships().GetRole(ctx, eventID, authorID)
		if err != nil {
			return fmt.Errorf("load membership: %w", err)
		}
		if role == nil || !role.IsParticipant() {
			return domain.ErrNotAMember
		}
		if err := tx.Chat().Insert(ctx, msg); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		return tx.Chat().PruneOldest(ctx, eventID, domain.ChatRetentionCap)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns the retained messages oldest-first for conversation
// display. Chat history is only visible to participants.
func (s *accessService) ListMessages(ctx context.Context, eventID, userID int32) ([]domain.ChatMessage, error) {
	if _, err := s.store.Events().GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	role, err := s.store.Memberships().GetRole(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if role == nil || !role.IsParticipant() {
		return nil, domain.ErrNotAMember
	}
	return s.store.Chat().ListRecent(ctx, eventID, domain.ChatRetentionCap)
}

func (s *accessService) ListInvitations(ctx context.Context, userID int32) ([]domain.Invite, error) {
	return s.store.Invites().ListPendingForUser(ctx, userID)
}

func (s *accessService) ListPendingRequests(ctx context.Context, eventID, actingUserID int32) ([]domain.JoinRequest, error) {
	event, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.HostID != actingUserID {
		return nil, domain.ErrNotHost
	}
	return s.store.JoinRequests().ListPendingForEvent(ctx, eventID)
}

// ResolveAccess reports what the caller may do with the event; the
// presentation layer uses it to pick the panel to render.
func (s *accessService) ResolveAccess(ctx context.Context, eventID, userID int32) (*domain.Access, error) {
	event, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	role, err := s.store.Memberships().GetRole(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	inv, err := s.store.Invites().GetByEventAndInvitee(ctx, eventID, userID)
	if err != nil && !errors.Is(err, domain.ErrInviteNotFound) {
		return nil, err
	}
	req, err := s.store.JoinRequests().GetByEventAndRequester(ctx, eventID, userID)
	if err != nil && !errors.Is(err, domain.ErrRequestNotFound) {
		return nil, err
	}

	access := domain.ResolveAccess(event.Visibility, role, inv, req)
	return &access, nil
}

// dedupe preserves first-seen order.
func dedupe(ids []int32) []int32 {
	seen := make(map[int32]bool, len(ids))
	out := make([]int32, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
