package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"artevents-backend/internal/domain"
)

// UserDirectory resolves opaque user identifiers to contact details. Backed
// by the external identity service; this subsystem never stores emails.
type UserDirectory interface {
	Lookup(ctx context.Context, userID int32) (email, name string, err error)
}

// EmailNotifier delivers invite and join-request notifications over
// SendGrid.
type EmailNotifier struct {
	apiKey    string
	fromEmail string
	fromName  string
	directory UserDirectory
}

func NewEmailNotifier(apiKey, fromEmail, fromName string, directory UserDirectory) *EmailNotifier {
	return &EmailNotifier{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		directory: directory,
	}
}

func (n *EmailNotifier) InviteCreated(ctx context.Context, event *domain.Event, invite *domain.Invite) error {
	subject := fmt.Sprintf("You're invited: %s", event.Title)
	body := fmt.Sprintf("You have been invited to the event %q on %s.\n\nOpen your invitations to accept or decline.",
		event.Title, event.StartTime.Format("Jan 2, 2006 15:04"))
	return n.send(ctx, invite.InviteeID, subject, body)
}

func (n *EmailNotifier) JoinRequestCreated(ctx context.Context, event *domain.Event, req *domain.JoinRequest) error {
	subject := fmt.Sprintf("Join request for %s", event.Title)
	body := fmt.Sprintf("A user has requested to join your event %q.\n\nOpen the event's pending requests to approve or decline.", event.Title)
	return n.send(ctx, event.HostID, subject, body)
}

func (n *EmailNotifier) JoinRequestDecided(ctx context.Context, event *domain.Event, req *domain.JoinRequest) error {
	var subject, body string
	if req.Status == domain.JoinRequestStatusApproved {
		subject = fmt.Sprintf("Request approved: %s", event.Title)
		body = fmt.Sprintf("Your request to join %q was approved. See you there!", event.Title)
	} else {
		subject = fmt.Sprintf("Request declined: %s", event.Title)
		body = fmt.Sprintf("Your request to join %q was declined by the host.", event.Title)
	}
	return n.send(ctx, req.RequesterID, subject, body)
}

func (n *EmailNotifier) send(ctx context.Context, userID int32, subject, plainText string) error {
	email, name, err := n.directory.Lookup(ctx, userID)
	if err != nil {
		return fmt.Errorf("directory lookup for user %d: %w", userID, err)
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	recipient := mail.NewEmail(name, email)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
