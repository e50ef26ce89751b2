package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/logger"
	"artevents-backend/internal/notify"
	"artevents-backend/internal/repository"
)

type eventService struct {
	store    repository.Store
	notifier notify.Notifier
}

func NewEventService(store repository.Store, notifier notify.Notifier) EventService {
	return &eventService{
		store:    store,
		notifier: notifier,
	}
}

// CreateEvent creates the event, its HOST membership, up to five deduplicated
// stops and the initial invites as one transaction.
func (s *eventService) CreateEvent(ctx context.Context, input CreateEventInput) (*domain.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	startTime, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStartTime, input.StartTime)
	}
	switch input.Visibility {
	case domain.VisibilityOpen, domain.VisibilityInviteOnly, domain.VisibilityPrivate:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidVisibility, input.Visibility)
	}

	locationIDs := dedupe(input.LocationIDs)
	if len(locationIDs) > domain.MaxEventLocations {
		return nil, domain.ErrLocationLimit
	}
	stops := make([]domain.EventLocation, 0, len(locationIDs))
	for i, locID := range locationIDs {
		stops = append(stops, domain.EventLocation{
			LocationID: locID,
			Position:   int32(i + 1),
		})
	}

	event := &domain.Event{
		Title:           title,
		Description:     input.Description,
		HostID:          input.HostID,
		Visibility:      input.Visibility,
		StartTime:       startTime,
		StartLocationID: input.StartLocationID,
		ShareToken:      uuid.NewString(),
	}

	var createdInvites []domain.Invite
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Events().Create(ctx, event, stops); err != nil {
			return err
		}
		if err := tx.Memberships().CreateHost(ctx, event.ID, input.HostID); err != nil {
			return fmt.Errorf("create host membership: %w", err)
		}

		for _, inviteeID := range dedupe(input.InviteeIDs) {
			if inviteeID == input.HostID {
				continue
			}
			inv := &domain.Invite{
				EventID:   event.ID,
				InviterID: input.HostID,
				InviteeID: inviteeID,
				Status:    domain.InviteStatusPending,
			}
			if err := tx.Invites().Create(ctx, inv); err != nil {
				return fmt.Errorf("create invite: %w", err)
			}
			if err := tx.Memberships().CreateInvited(ctx, event.ID, inviteeID); err != nil {
				return fmt.Errorf("create invited membership: %w", err)
			}
			createdInvites = append(createdInvites, *inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range createdInvites {
		if err := s.notifier.InviteCreated(ctx, event, &createdInvites[i]); err != nil {
			logger.Error("invite notification failed", "event_id", event.ID, "invitee_id", createdInvites[i].InviteeID, "error", err)
		}
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID int32) (*domain.Event, []domain.EventLocation, error) {
	event, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	stops, err := s.store.Events().ListStops(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	return event, stops, nil
}

func (s *eventService) GetEventByShareToken(ctx context.Context, token string) (*domain.Event, error) {
	return s.store.Events().GetByShareToken(ctx, token)
}

func (s *eventService) ListPublicEvents(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	return s.store.Events().ListPublic(ctx, filter)
}

func (s *eventService) ListAttendees(ctx context.Context, eventID int32) ([]domain.Membership, error) {
	if _, err := s.store.Events().GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.Memberships().ListAttendees(ctx, eventID)
}

// ChangeVisibility updates the visibility mode. Host only; existing
// memberships are never revoked by the change.
func (s *eventService) ChangeVisibility(ctx context.Context, eventID, actingUserID int32, visibility domain.EventVisibility) error {
	switch visibility {
	case domain.VisibilityOpen, domain.VisibilityInviteOnly, domain.VisibilityPrivate:
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidVisibility, visibility)
	}
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		event, err := tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event.HostID != actingUserID {
			return domain.ErrNotHost
		}
		return tx.Events().UpdateVisibility(ctx, eventID, visibility)
	})
}

// DeleteEvent soft-deletes the event. Host only.
func (s *eventService) DeleteEvent(ctx context.Context, eventID, actingUserID int32) error {
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		event, err := tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event.HostID != actingUserID {
			return domain.ErrNotHost
		}
		return tx.Events().SoftDelete(ctx, eventID)
	})
}
