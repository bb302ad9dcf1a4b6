package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/zams/internal/repository"
	"github.com/jask/zams/internal/tableview"
)

// choice is a closed option picker cycled with left/right.
type choice struct {
	options []string
	index   int
}

func (c choice) Value() string {
	if len(c.options) == 0 {
		return ""
	}
	return c.options[c.index]
}

func (c choice) Shift(delta int) choice {
	if n := len(c.options); n > 0 {
		c.index = ((c.index+delta)%n + n) % n
	}
	return c
}

func (c choice) View(focused bool) string {
	v := c.Value()
	if !focused {
		return v
	}
	return accentStyle.Render("‹ " + v + " ›")
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 32
	in.Prompt = ""
	return in
}

func fieldLine(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = accentStyle.Render("▶ ")
	}
	return fmt.Sprintf("%s%-12s %s", marker, label, value)
}

// addDatasourceForm is the Add Data dialog.
type addDatasourceForm struct {
	name   textinput.Model
	typ    choice
	status choice
	focus  int
	err    string
}

const addFormFields = 3

func newAddDatasourceForm(opts repository.Options) addDatasourceForm {
	f := addDatasourceForm{
		name:   newInput("Enter datasource name", 120),
		typ:    choice{options: opts.Types},
		status: choice{options: opts.Statuses},
	}
	f.name.Focus()
	return f
}

func (f addDatasourceForm) Input() repository.NewDatasource {
	return repository.NewDatasource{Name: f.name.Value(), Type: f.typ.Value(), Status: f.status.Value()}
}

func (f addDatasourceForm) Move(delta int) addDatasourceForm {
	f.focus = ((f.focus+delta)%addFormFields + addFormFields) % addFormFields
	if f.focus == 0 {
		f.name.Focus()
	} else {
		f.name.Blur()
	}
	return f
}

func (f addDatasourceForm) Adjust(msg tea.KeyMsg) (addDatasourceForm, tea.Cmd) {
	delta := 1
	if msg.String() == "left" {
		delta = -1
	}
	switch f.focus {
	case 0:
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		return f, cmd
	case 1:
		f.typ = f.typ.Shift(delta)
	case 2:
		f.status = f.status.Shift(delta)
	}
	return f, nil
}

func (f addDatasourceForm) Type(msg tea.KeyMsg) (addDatasourceForm, tea.Cmd) {
	if f.focus != 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.name, cmd = f.name.Update(msg)
	f.err = ""
	return f, cmd
}

func (f addDatasourceForm) View() string {
	lines := []string{
		mutedStyle.Render("Enter the details for the new datasource."),
		"",
		fieldLine("Name", f.name.View(), f.focus == 0),
		fieldLine("Type", f.typ.View(f.focus == 1), f.focus == 1),
		fieldLine("Status", f.status.View(f.focus == 2), f.focus == 2),
	}
	if f.err != "" {
		lines = append(lines, "", errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}

// buildModelForm is the Build a Model dialog.
type buildModelForm struct {
	name        textinput.Model
	typ         choice
	base        choice
	temperature float64
	maxTokens   textinput.Model
	focus       int
	err         string
}

const buildFormFields = 5

func newBuildModelForm(opts repository.Options) buildModelForm {
	f := buildModelForm{
		name:        newInput("Enter model name", 120),
		typ:         choice{options: opts.ModelTypes},
		base:        choice{options: opts.BaseModels},
		temperature: repository.DefaultTemperature,
		maxTokens:   newInput("1-8192", 4),
	}
	f.maxTokens.SetValue(strconv.Itoa(repository.DefaultMaxTokens))
	f.maxTokens.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}
	f.name.Focus()
	return f
}

// Input parses the form. A non-numeric max tokens value reads as 0 and is
// rejected by the repo's range check.
func (f buildModelForm) Input() repository.NewModel {
	tokens, _ := strconv.Atoi(strings.TrimSpace(f.maxTokens.Value()))
	return repository.NewModel{
		Name:        f.name.Value(),
		Type:        f.typ.Value(),
		BaseModel:   f.base.Value(),
		Temperature: f.temperature,
		MaxTokens:   tokens,
	}
}

func (f buildModelForm) Move(delta int) buildModelForm {
	f.focus = ((f.focus+delta)%buildFormFields + buildFormFields) % buildFormFields
	f.name.Blur()
	f.maxTokens.Blur()
	switch f.focus {
	case 0:
		f.name.Focus()
	case 4:
		f.maxTokens.Focus()
	}
	return f
}

func (f buildModelForm) Adjust(msg tea.KeyMsg) (buildModelForm, tea.Cmd) {
	delta := 1
	if msg.String() == "left" {
		delta = -1
	}
	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.name, cmd = f.name.Update(msg)
	case 1:
		f.typ = f.typ.Shift(delta)
	case 2:
		f.base = f.base.Shift(delta)
	case 3:
		t := repository.RoundTemperature(f.temperature + float64(delta)*0.1)
		f.temperature = min(max(t, 0), 1)
	case 4:
		f.maxTokens, cmd = f.maxTokens.Update(msg)
	}
	return f, cmd
}

func (f buildModelForm) Type(msg tea.KeyMsg) (buildModelForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.name, cmd = f.name.Update(msg)
	case 4:
		f.maxTokens, cmd = f.maxTokens.Update(msg)
	default:
		return f, nil
	}
	f.err = ""
	return f, cmd
}

func (f buildModelForm) View() string {
	lines := []string{
		mutedStyle.Render("Configure your custom AI model with the settings below."),
		"",
		fieldLine("Name", f.name.View(), f.focus == 0),
		fieldLine("Model type", f.typ.View(f.focus == 1), f.focus == 1),
		fieldLine("Base model", f.base.View(f.focus == 2), f.focus == 2),
		fieldLine("Temperature", temperatureSlider(f.temperature, f.focus == 3), f.focus == 3),
		fieldLine("Max tokens", f.maxTokens.View(), f.focus == 4),
	}
	if f.err != "" {
		lines = append(lines, "", errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}

func temperatureSlider(t float64, focused bool) string {
	steps := int(t*10 + 0.5)
	bar := strings.Repeat("━", steps) + "●" + strings.Repeat("─", 10-steps)
	if focused {
		bar = accentStyle.Render(bar)
	}
	return fmt.Sprintf("Precise %s Creative  %.1f", bar, t)
}

type filterKind string

const (
	filterType   filterKind = "Type"
	filterStatus filterKind = "Status"
)

// filterMenu is the checkbox dropdown behind the Type and Status buttons.
type filterMenu struct {
	kind    filterKind
	options []string
	cursor  int
}

func (m filterMenu) Move(delta int) filterMenu {
	if n := len(m.options); n > 0 {
		m.cursor = ((m.cursor+delta)%n + n) % n
	}
	return m
}

func (m filterMenu) Current() string {
	if len(m.options) == 0 {
		return ""
	}
	return m.options[m.cursor]
}

func (m filterMenu) View(f tableview.Filters) string {
	selected := f.Types
	if m.kind == filterStatus {
		selected = f.Statuses
	}
	var b strings.Builder
	for i, opt := range m.options {
		marker := "  "
		if i == m.cursor {
			marker = accentStyle.Render("▶ ")
		}
		b.WriteString(marker + checkbox(selected[opt]) + " " + opt)
		if i < len(m.options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func confirmDeleteText(n int) string {
	return fmt.Sprintf("This will permanently delete %d selected datasource(s).", n)
}
