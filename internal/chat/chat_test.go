package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type echoResponder struct{}

func (echoResponder) Respond(input string) string { return "echo: " + input }

func TestValidateInput(t *testing.T) {
	require.ErrorIs(t, ValidateInput("   \n", 0), ErrEmptyMessage)
	require.NoError(t, ValidateInput("hello", 0))
	require.NoError(t, ValidateInput(strings.Repeat("é", MaxInputLength), 0))

	err := ValidateInput(strings.Repeat("a", MaxInputLength+1), 0)
	require.ErrorIs(t, err, ErrMessageTooLong)
	require.ErrorContains(t, err, "1001 of 1000")

	require.ErrorIs(t, ValidateInput("abcdef", 5), ErrMessageTooLong)
}

func TestCounterCountsRunes(t *testing.T) {
	require.Equal(t, "0/1000", Counter("", 0))
	require.Equal(t, "3/20", Counter("héy", 20))
}

func TestSessionSendThenReply(t *testing.T) {
	ctx := context.Background()
	s := NewSession(echoResponder{}, 0)
	s.now = func() time.Time { return time.Date(2024, 10, 5, 9, 30, 0, 0, time.UTC) }
	require.True(t, s.Empty())

	_, err := s.Send("  ")
	require.ErrorIs(t, err, ErrEmptyMessage)
	require.True(t, s.Empty())
	require.False(t, s.Pending())

	sent, err := s.Send("  what is RAG? ")
	require.NoError(t, err)
	require.Equal(t, RoleUser, sent.Role)
	require.Equal(t, "what is RAG?", sent.Content)
	require.NotEmpty(t, sent.ID)
	require.Equal(t, "09:30", sent.Clock())
	require.True(t, s.Pending())

	reply, err := s.Reply(ctx)
	require.NoError(t, err)
	require.Equal(t, RoleAssistant, reply.Role)
	require.Equal(t, "echo: what is RAG?", reply.Content)
	require.NotEqual(t, sent.ID, reply.ID)
	require.False(t, s.Pending())

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, sent.ID, msgs[0].ID)

	_, err = s.Reply(ctx)
	require.ErrorIs(t, err, ErrNothingPending)
}

func TestSessionRepliesInSendOrder(t *testing.T) {
	ctx := context.Background()
	s := NewSession(echoResponder{}, 0)
	_, err := s.Send("first")
	require.NoError(t, err)
	_, err = s.Send("second")
	require.NoError(t, err)

	r1, err := s.Reply(ctx)
	require.NoError(t, err)
	require.True(t, s.Pending())
	r2, err := s.Reply(ctx)
	require.NoError(t, err)
	require.Equal(t, "echo: first", r1.Content)
	require.Equal(t, "echo: second", r2.Content)
}

func TestSessionReplyHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSession(echoResponder{}, 0)
	_, err := s.Send("hi")
	require.NoError(t, err)
	_, err = s.Reply(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, s.Pending())
}

func TestTemplateResponderIsDeterministicForSeed(t *testing.T) {
	a := NewTemplateResponder(42)
	b := NewTemplateResponder(42)
	for i := 0; i < 10; i++ {
		ra, rb := a.Respond("pricing"), b.Respond("pricing")
		require.Equal(t, ra, rb)
		require.Contains(t, ra, "'pricing'")
	}
}

func TestTemplateResponderUsesEveryTemplate(t *testing.T) {
	r := NewTemplateResponder(7)
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[r.Respond("x")] = true
	}
	require.Len(t, seen, len(replyTemplates))
}

func TestTemplateResponderQuotesInputLiterally(t *testing.T) {
	r := NewTemplateResponder(3)
	for _, in := range []string{
		"is 2*3*4 = 24",
		"what does <div> do?",
		"use `go test`",
		"explain [x](y) links",
		"snake_case_name & # heading",
		`a \ b`,
	} {
		got := RenderMarkdown(r.Respond(in), 0, nil)
		require.Contains(t, got, "'"+in+"'")
	}
}
