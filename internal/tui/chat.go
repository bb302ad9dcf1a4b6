package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/zams/internal/chat"
)

const privacyNotice = "Your chats aren't used to train our models. Obviously AI may make mistakes, so please double-check. Your privacy is our priority."

// chatWidth caps the conversation column.
const chatWidth = 80

type chatView struct {
	session  *chat.Session
	input    textinput.Model
	history  viewport.Model
	spinner  spinner.Model
	renderer *lipgloss.Renderer
	delay    time.Duration
}

func newChatView(session *chat.Session, renderer *lipgloss.Renderer, delay time.Duration) chatView {
	in := textinput.New()
	in.Placeholder = "Ask whatever you want..."
	in.CharLimit = session.MaxInput()
	in.Prompt = "› "
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = faintStyle

	return chatView{
		session:  session,
		input:    in,
		history:  viewport.New(chatWidth, 20),
		spinner:  sp,
		renderer: renderer,
		delay:    delay,
	}
}

type chatReplyMsg struct{}

func (a *App) handleChatKey(msg tea.KeyMsg, b *Binding) (tea.Model, tea.Cmd) {
	v := &a.chat
	if b != nil {
		switch b.Action {
		case actionSend:
			if strings.TrimSpace(v.input.Value()) == "" {
				return a, nil
			}
			sent, err := v.session.Send(v.input.Value())
			if err != nil {
				return a, func() tea.Msg { return errMsg{err} }
			}
			v.input.Reset()
			a.refreshChat()
			a.log.Debug("chat message sent", "id", sent.ID, "runes", len([]rune(sent.Content)))
			return a, tea.Batch(
				tea.Tick(v.delay, func(time.Time) tea.Msg { return chatReplyMsg{} }),
				v.spinner.Tick,
			)
		case actionScroll:
			var cmd tea.Cmd
			v.history, cmd = v.history.Update(msg)
			return a, cmd
		case actionQuit:
			return a, tea.Quit
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return a, cmd
}

func (a *App) receiveReply() tea.Cmd {
	reply, err := a.chat.session.Reply(a.ctx)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	a.log.Debug("chat reply", "id", reply.ID)
	a.refreshChat()
	return nil
}

func (a *App) updateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !a.chat.session.Pending() {
		return nil
	}
	var cmd tea.Cmd
	a.chat.spinner, cmd = a.chat.spinner.Update(msg)
	a.refreshChat()
	return cmd
}

func (a *App) chatInnerWidth() int {
	width := a.width
	if width <= 0 {
		width = 100
	}
	return min(width-4, chatWidth)
}

// refreshChat re-renders the conversation into the history viewport and
// keeps the newest message in view.
func (a *App) refreshChat() {
	v := &a.chat
	inner := a.chatInnerWidth()
	height := 20
	if a.height > 0 {
		// input box, counter, privacy footer, status and help lines
		height = max(a.height-11, 3)
	}
	v.history.Width = inner
	v.history.Height = height
	v.history.SetContent(a.renderMessages(inner))
	v.history.GotoBottom()
}

func (a *App) renderChat() string {
	v := &a.chat
	width := a.width
	if width <= 0 {
		width = 100
	}
	inner := a.chatInnerWidth()

	box := focusedInputBoxStyle.Width(inner).Render(v.input.View())
	counter := faintStyle.Render(chat.Counter(v.input.Value(), v.session.MaxInput()))
	inputBlock := box + "\n" + lipgloss.PlaceHorizontal(inner+2, lipgloss.Right, counter)
	footer := faintStyle.Width(inner).Align(lipgloss.Center).Render(privacyNotice)

	var sections []string
	if v.session.Empty() {
		sections = append(sections,
			logoStyle.Render("Za")+" "+titleStyle.Render("Zams"),
			"",
			greetingStyle.Render("Hey there,"),
			greetingAlt.Render("What would you like to ask today?"),
			"",
			inputBlock,
		)
	} else {
		sections = append(sections, v.history.View(), inputBlock)
	}
	sections = append(sections, "", footer)
	body := strings.Join(sections, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (a *App) renderMessages(width int) string {
	v := &a.chat
	bubbleWidth := width * 4 / 5
	var out []string
	for _, m := range v.session.Messages() {
		if m.Role == chat.RoleUser {
			bubble := userBubbleStyle.Render(ansi.Wrap(m.Content, bubbleWidth-2, " "))
			meta := faintStyle.Render(m.Clock() + " · You")
			out = append(out,
				lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble),
				lipgloss.PlaceHorizontal(width, lipgloss.Right, meta),
			)
			continue
		}
		content := chat.RenderMarkdown(m.Content, bubbleWidth-2, v.renderer)
		out = append(out,
			assistantBubbleStyle.Render(content),
			faintStyle.Render("Assistant · "+m.Clock()),
		)
	}
	if v.session.Pending() {
		out = append(out, assistantBubbleStyle.Render(v.spinner.View()+" typing"))
	}
	return strings.Join(out, "\n")
}
