package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jask/zams/internal/chat"
)

var chatNoWait bool

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the assistant one question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer func() { _ = e.Close() }()

		delay := e.cfg.Chat.ReplyDelay
		if chatNoWait {
			delay = 0
		}
		session := chat.NewSession(chat.NewTemplateResponder(e.cfg.Chat.Seed), e.cfg.Chat.MaxInput)
		out := cmd.OutOrStdout()
		r := chat.NewRenderer(out, false)
		if e.cfg.UI.Color {
			r = lipgloss.NewRenderer(out)
		}
		reply, err := ask(cmd.Context(), session, strings.Join(args, " "), delay)
		if err != nil {
			return err
		}
		e.log.Info("chat reply", "id", reply.ID)
		_, err = fmt.Fprintln(out, chat.RenderMarkdown(reply.Content, 80, r))
		return err
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatNoWait, "no-wait", false, "skip the simulated reply delay")
}

// ask sends input and waits delay before taking the reply.
func ask(ctx context.Context, s *chat.Session, input string, delay time.Duration) (chat.Message, error) {
	if _, err := s.Send(input); err != nil {
		return chat.Message{}, err
	}
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return chat.Message{}, ctx.Err()
		case <-t.C:
		}
	}
	return s.Reply(ctx)
}
