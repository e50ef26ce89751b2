package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// ChatRetentionCap is the maximum number of persisted messages per event.
	// Anything older than the most recent cap is deleted at write time.
	ChatRetentionCap = 20

	MaxMessageLen = 300
)

// ChatMessage is a single utterance in an event's group chat. Only HOST and
// ATTENDEE members may author one.
type ChatMessage struct {
	ID        int32     `json:"id"`
	EventID   int32     `json:"event_id"`
	AuthorID  int32     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateMessageBody trims the body and checks the length bounds.
// Returns the trimmed body on success.
func ValidateMessageBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", ErrEmptyMessage
	}
	// MaxMessageLen bounds characters, not bytes; the column is VARCHAR(300).
	if utf8.RuneCountInString(body) > MaxMessageLen {
		return "", ErrMessageTooLong
	}
	return body, nil
}
