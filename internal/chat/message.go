package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxInputLength is the default cap on a chat message, in runes.
const MaxInputLength = 1000

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message is too long")
	ErrNothingPending = errors.New("no message awaiting a reply")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation.
type Message struct {
	ID        string
	Content   string
	Role      Role
	Timestamp time.Time
}

// Clock formats the message time the way the conversation shows it.
func (m Message) Clock() string {
	return m.Timestamp.Format("15:04")
}

// ValidateInput checks a draft against max runes after trimming. max <= 0
// means MaxInputLength.
func ValidateInput(input string, max int) error {
	if max <= 0 {
		max = MaxInputLength
	}
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ErrEmptyMessage
	}
	if n := utf8.RuneCountInString(trimmed); n > max {
		return fmt.Errorf("%w: %d of %d characters", ErrMessageTooLong, n, max)
	}
	return nil
}

// Counter renders the n/max indicator shown under the input.
func Counter(input string, max int) string {
	if max <= 0 {
		max = MaxInputLength
	}
	return fmt.Sprintf("%d/%d", utf8.RuneCountInString(input), max)
}
