package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/zams/internal/repository"
)

type modelItem struct {
	m repository.Model
}

func (i modelItem) Title() string { return i.m.Name }

func (i modelItem) Description() string {
	return fmt.Sprintf("%s · %s · %s · Created on %s", i.m.Type, i.m.BaseModel, i.m.Status, i.m.CreatedAt)
}

func (i modelItem) FilterValue() string { return i.m.Name }

func newModelList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(colorAccent).BorderForeground(colorAccent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(colorSubtext1).BorderForeground(colorAccent)
	l := list.New(nil, delegate, 60, 20)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func (a *App) setModels(rows []repository.Model) tea.Cmd {
	items := make([]list.Item, len(rows))
	for i, m := range rows {
		items[i] = modelItem{m: m}
	}
	return a.models.SetItems(items)
}

func (a *App) handleModelsKey(msg tea.KeyMsg, b *Binding) (tea.Model, tea.Cmd) {
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionAdd:
		return a.openBuildModel()
	case actionDelete:
		item, ok := a.models.SelectedItem().(modelItem)
		if !ok {
			a.setStatus("No model selected")
			return a, nil
		}
		return a, a.deleteModelCmd(item.m)
	case actionNavigate:
		var cmd tea.Cmd
		a.models, cmd = a.models.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) openBuildModel() (tea.Model, tea.Cmd) {
	a.buildForm = newBuildModelForm(a.opts)
	a.modal = modalBuildModel
	return a, textinput.Blink
}

func (a *App) handleBuildFormKey(msg tea.KeyMsg, b *Binding) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if b == nil {
		a.buildForm, cmd = a.buildForm.Type(msg)
		return a, cmd
	}
	switch b.Action {
	case actionNextField:
		a.buildForm = a.buildForm.Move(1)
	case actionPrevField:
		a.buildForm = a.buildForm.Move(-1)
	case actionAdjust:
		a.buildForm, cmd = a.buildForm.Adjust(msg)
	case actionCancel:
		a.modal = modalNone
	case actionConfirm:
		return a, a.buildModelCmd(a.buildForm.Input())
	case actionQuit:
		return a, tea.Quit
	default:
		a.buildForm, cmd = a.buildForm.Type(msg)
	}
	return a, cmd
}

func (a *App) renderModels() string {
	header := titleStyle.Render("AI Models") + "\n" +
		mutedStyle.Render("Build and manage your custom AI models") + "\n\n" +
		buttonStyle.Render("✦ Build a Model")
	if len(a.models.Items()) == 0 {
		return header + "\n\n" + mutedStyle.Render("No models yet")
	}
	return header + "\n\n" + a.models.View()
}
