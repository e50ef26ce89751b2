package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestValidateMessageBody(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		body, err := ValidateMessageBody("  hello there \n")
		assert.NoError(t, err)
		assert.Equal(t, "hello there", body)
	})

	t.Run("rejects empty and whitespace-only", func(t *testing.T) {
		_, err := ValidateMessageBody("")
		assert.ErrorIs(t, err, ErrEmptyMessage)
		_, err = ValidateMessageBody("   \t\n")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("enforces the length cap after trimming", func(t *testing.T) {
		body, err := ValidateMessageBody(strings.Repeat("a", MaxMessageLen) + "  ")
		assert.NoError(t, err)
		assert.Len(t, body, MaxMessageLen)

		_, err = ValidateMessageBody(strings.Repeat("a", MaxMessageLen+1))
		assert.ErrorIs(t, err, ErrMessageTooLong)
	})

	t.Run("multibyte text is measured in characters", func(t *testing.T) {
		// 300 CJK characters are within the cap despite being 900 bytes
		body, err := ValidateMessageBody(strings.Repeat("画", MaxMessageLen))
		assert.NoError(t, err)
		assert.Equal(t, MaxMessageLen, utf8.RuneCountInString(body))

		_, err = ValidateMessageBody(strings.Repeat("画", MaxMessageLen+1))
		assert.ErrorIs(t, err, ErrMessageTooLong)
	})
}
