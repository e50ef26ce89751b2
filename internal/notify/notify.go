package notify

import (
	"context"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/logger"
)

// Notifier observes access-control events after their transaction has
// committed. Delivery is entirely the notifier's concern; a failure here
// must never roll back or fail the committed state change, so callers log
// errors and move on.
type Notifier interface {
	InviteCreated(ctx context.Context, event *domain.Event, invite *domain.Invite) error
	JoinRequestCreated(ctx context.Context, event *domain.Event, req *domain.JoinRequest) error
	JoinRequestDecided(ctx context.Context, event *domain.Event, req *domain.JoinRequest) error
}

// LogNotifier writes notification events to the log. Used when no delivery
// channel is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) InviteCreated(ctx context.Context, event *domain.Event, invite *domain.Invite) error {
	logger.Info("invite created", "event_id", event.ID, "invitee_id", invite.InviteeID)
	return nil
}

func (n *LogNotifier) JoinRequestCreated(ctx context.Context, event *domain.Event, req *domain.JoinRequest) error {
	logger.Info("join request created", "event_id", event.ID, "requester_id", req.RequesterID)
	return nil
}

func (n *LogNotifier) JoinRequestDecided(ctx context.Context, event *domain.Event, req *domain.JoinRequest) error {
	logger.Info("join request decided", "event_id", event.ID, "requester_id", req.RequesterID, "status", req.Status)
	return nil
}
