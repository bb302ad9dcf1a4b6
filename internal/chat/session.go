package chat

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is one conversation. Sends queue up; each Reply answers the
// oldest unanswered message. Not safe for concurrent use; the TUI drives it
// from its update loop.
type Session struct {
	responder Responder
	maxInput  int
	now       func() time.Time
	messages  []Message
	queue     []string
}

func NewSession(r Responder, maxInput int) *Session {
	if maxInput <= 0 {
		maxInput = MaxInputLength
	}
	return &Session{responder: r, maxInput: maxInput, now: time.Now}
}

func (s *Session) MaxInput() int { return s.maxInput }

// Send validates input, appends it as a user message and marks a reply as
// pending.
func (s *Session) Send(input string) (Message, error) {
	if err := ValidateInput(input, s.maxInput); err != nil {
		return Message{}, err
	}
	content := strings.TrimSpace(input)
	m := Message{ID: uuid.NewString(), Content: content, Role: RoleUser, Timestamp: s.now()}
	s.messages = append(s.messages, m)
	s.queue = append(s.queue, content)
	return m, nil
}

// Reply answers the oldest pending message.
func (s *Session) Reply(ctx context.Context) (Message, error) {
	if err := ctx.Err(); err != nil {
		return Message{}, err
	}
	if len(s.queue) == 0 {
		return Message{}, ErrNothingPending
	}
	input := s.queue[0]
	s.queue = s.queue[1:]
	m := Message{ID: uuid.NewString(), Content: s.responder.Respond(input), Role: RoleAssistant, Timestamp: s.now()}
	s.messages = append(s.messages, m)
	return m, nil
}

// Pending reports whether a reply is still owed; the typing indicator
// shows while it is true.
func (s *Session) Pending() bool { return len(s.queue) > 0 }

func (s *Session) Messages() []Message { return slices.Clone(s.messages) }

func (s *Session) Empty() bool { return len(s.messages) == 0 }
