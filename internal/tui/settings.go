package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jask/zams/internal/config"
)

type settingsTab int

const (
	tabGeneral settingsTab = iota
	tabAPI
	tabNotifications
)

var settingsTabs = []string{"General", "API", "Notifications"}

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldToggle
	fieldSecret
)

type settingsField struct {
	label string
	desc  string
	kind  fieldKind
	text  func(*config.Config) *string
	flag  func(*config.Config) *bool
}

var settingsFields = map[settingsTab][]settingsField{
	tabGeneral: {
		{label: "Username", kind: fieldText, text: func(c *config.Config) *string { return &c.User.Username }},
		{label: "Email", kind: fieldText, text: func(c *config.Config) *string { return &c.User.Email }},
		{label: "Enable email notifications", kind: fieldToggle, flag: func(c *config.Config) *bool { return &c.Notifications.Email }},
	},
	tabAPI: {
		{label: "API Key", kind: fieldSecret, text: func(c *config.Config) *string { return &c.API.Key }},
		{label: "Enable rate limiting", kind: fieldToggle, flag: func(c *config.Config) *bool { return &c.API.RateLimit }},
	},
	tabNotifications: {
		{label: "Email Notifications", desc: "Receive email notifications for important updates.", kind: fieldToggle,
			flag: func(c *config.Config) *bool { return &c.Notifications.Email }},
		{label: "Push Notifications", desc: "Receive push notifications in your browser.", kind: fieldToggle,
			flag: func(c *config.Config) *bool { return &c.Notifications.Push }},
		{label: "Weekly Digest", desc: "Receive a weekly summary of your account activity.", kind: fieldToggle,
			flag: func(c *config.Config) *bool { return &c.Notifications.WeeklyDigest }},
	},
}

// settingsView edits a draft copy of the config. Nothing is written until
// save.
type settingsView struct {
	draft   config.Config
	tab     settingsTab
	cursor  int
	editing bool
	reveal  bool
	dirty   bool
	input   textinput.Model
}

func newSettingsView(cfg config.Config) settingsView {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 120
	in.Width = 36
	return settingsView{draft: cfg, input: in}
}

func (v *settingsView) fields() []settingsField { return settingsFields[v.tab] }

func (v *settingsView) current() settingsField { return v.fields()[v.cursor] }

// newAPIKey returns a fresh key of the form zams_sk_<32 hex>.
func newAPIKey() string {
	return "zams_sk_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func maskKey(k string) string {
	if k == "" {
		return "(not set)"
	}
	n := len(k)
	if n <= 8 {
		return strings.Repeat("•", n)
	}
	return k[:8] + strings.Repeat("•", n-8)
}

func (a *App) handleSettingsKey(msg tea.KeyMsg, b *Binding) (tea.Model, tea.Cmd) {
	v := &a.settings
	if v.editing {
		return a.handleSettingsEditKey(msg, b)
	}
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionTab:
		delta := 1
		if k := msg.String(); k == "h" || k == "left" {
			delta = -1
		}
		n := len(settingsTabs)
		v.tab = settingsTab(((int(v.tab)+delta)%n + n) % n)
		v.cursor = 0
		v.reveal = false
	case actionNavigate:
		delta := 1
		if k := msg.String(); k == "k" || k == "up" {
			delta = -1
		}
		n := len(v.fields())
		v.cursor = ((v.cursor+delta)%n + n) % n
	case actionActivate:
		f := v.current()
		if f.kind == fieldToggle {
			p := f.flag(&v.draft)
			*p = !*p
			v.dirty = true
			return a, nil
		}
		v.editing = true
		v.input.SetValue(*f.text(&v.draft))
		v.input.CursorEnd()
		return a, v.input.Focus()
	case actionReveal:
		if v.tab == tabAPI {
			v.reveal = !v.reveal
		}
	case actionRegenerate:
		if v.tab == tabAPI {
			v.draft.API.Key = newAPIKey()
			v.dirty = true
			a.setStatus("API key regenerated (unsaved)")
		}
	case actionSave:
		return a, a.saveSettingsCmd(v.draft)
	}
	return a, nil
}

func (a *App) handleSettingsEditKey(msg tea.KeyMsg, b *Binding) (tea.Model, tea.Cmd) {
	v := &a.settings
	if b != nil {
		switch b.Action {
		case actionConfirm:
			p := v.current().text(&v.draft)
			if value := strings.TrimSpace(v.input.Value()); value != *p {
				*p = value
				v.dirty = true
			}
			v.editing = false
			v.input.Blur()
			return a, nil
		case actionCancel:
			v.editing = false
			v.input.Blur()
			return a, nil
		case actionQuit:
			return a, tea.Quit
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return a, cmd
}

func (a *App) renderSettings() string {
	v := &a.settings
	header := titleStyle.Render("Settings") + "\n" +
		mutedStyle.Render("Manage your account settings and preferences.")

	tabs := make([]string, len(settingsTabs))
	for i, t := range settingsTabs {
		if settingsTab(i) == v.tab {
			tabs[i] = badgeStyle.Render(t)
		} else {
			tabs[i] = mutedBadgeStyle.Render(t)
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, interleave(tabs, " ")...)

	var lines []string
	for i, f := range v.fields() {
		focused := i == v.cursor
		var value string
		switch f.kind {
		case fieldToggle:
			value = toggleView(*f.flag(&v.draft))
		case fieldSecret:
			value = maskKey(v.draft.API.Key)
			if v.reveal {
				value = *f.text(&v.draft)
			}
		default:
			value = *f.text(&v.draft)
		}
		if focused && v.editing {
			value = focusedInputBoxStyle.Render(v.input.View())
		}
		marker := "  "
		if focused {
			marker = accentStyle.Render("▶ ")
		}
		line := marker + lipgloss.NewStyle().Width(28).Render(f.label) + value
		if f.desc != "" {
			line += "\n    " + faintStyle.Render(f.desc)
		}
		lines = append(lines, line)
	}
	if v.tab == tabAPI {
		lines = append(lines, "", faintStyle.Render("v show/hide · r regenerate"))
	}

	save := buttonStyle.Render("Save Changes")
	if v.dirty {
		save += " " + tagStyle.Render("unsaved changes")
	}
	title := []string{"General Settings", "API Settings", "Notification Settings"}[v.tab]
	card := cardStyle.Width(min(a.contentWidth()-2, 80)).Render(
		titleStyle.Render(title) + "\n\n" + strings.Join(lines, "\n") + "\n\n" + save)
	return header + "\n\n" + tabRow + "\n\n" + card
}

func toggleView(on bool) string {
	if on {
		return successStyle.Render("● on")
	}
	return faintStyle.Render("○ off")
}
