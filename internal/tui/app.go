package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/zams/internal/chat"
	"github.com/jask/zams/internal/config"
	"github.com/jask/zams/internal/logging"
	"github.com/jask/zams/internal/repository"
	"github.com/jask/zams/internal/secrets"
	"github.com/jask/zams/internal/seed"
	"github.com/jask/zams/internal/tableview"
)

// App ties together views.
type App struct {
	ctx       context.Context
	cfg       config.Config
	cfgPath   string
	secrets   *secrets.Store
	opts      repository.Options
	repos     seed.Repos
	workflows []seed.Workflow
	keys      *KeyRegistry
	log       *slog.Logger

	page             page
	modal            modalState
	width            int
	height           int
	sidebarCollapsed bool
	status           string
	statusErr        bool

	chat      chatView
	sources   datasourcesView
	models    list.Model
	settings  settingsView
	addForm   addDatasourceForm
	buildForm buildModelForm
	filter    filterMenu
	help      help.Model
}

// Deps are the collaborators New does not build itself.
type Deps struct {
	Responder  chat.Responder
	Workflows  []seed.Workflow
	Logger     *slog.Logger
	ConfigPath string
	Secrets    *secrets.Store
}

type page int

const (
	pageHome page = iota
	pageModels
	pageDatasources
	pageWorkflows
	pageSettings
)

var pageOrder = []page{pageHome, pageModels, pageDatasources, pageWorkflows, pageSettings}

func (p page) String() string {
	switch p {
	case pageModels:
		return "Models"
	case pageDatasources:
		return "Datasources"
	case pageWorkflows:
		return "Workflows"
	case pageSettings:
		return "Settings"
	}
	return "Home"
}

type modalState string

const (
	modalNone          modalState = ""
	modalAddDatasource modalState = "addDatasource"
	modalConfirmDelete modalState = "confirmDelete"
	modalFilter        modalState = "filter"
	modalBuildModel    modalState = "buildModel"
)

func New(ctx context.Context, cfg config.Config, repos seed.Repos, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Responder == nil {
		deps.Responder = chat.NewTemplateResponder(cfg.Chat.Seed)
	}
	opts := repository.Options{
		Types:      cfg.Catalog.Types,
		Statuses:   cfg.Catalog.Statuses,
		ModelTypes: cfg.Catalog.ModelTypes,
		BaseModels: cfg.Catalog.BaseModels,
	}
	if repos.Datasources != nil {
		opts = repos.Datasources.Options()
	}

	a := &App{
		ctx:              ctx,
		cfg:              cfg,
		cfgPath:          deps.ConfigPath,
		secrets:          deps.Secrets,
		opts:             opts,
		repos:            repos,
		workflows:        deps.Workflows,
		keys:             NewKeyRegistry(),
		log:              deps.Logger,
		sidebarCollapsed: cfg.UI.SidebarCollapsed,
		models:           newModelList(),
		settings:         newSettingsView(cfg),
		help:             help.New(),
	}
	a.help.Styles.ShortKey = helpKeyStyle
	a.help.Styles.ShortDesc = helpDescStyle
	a.help.Styles.ShortSeparator = faintStyle

	session := chat.NewSession(deps.Responder, cfg.Chat.MaxInput)
	a.chat = newChatView(session, chat.NewRenderer(os.Stdout, cfg.UI.Color), cfg.Chat.ReplyDelay)
	a.sources = newDatasourcesView(cfg.UI.PageSize, tableview.Callbacks{
		OnSelectionChange: func(ids []int) { a.sources.selected = ids },
		OnDelete:          func(ids []int) { a.sources.deleting = ids },
	})
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadDatasources(), a.loadModels(), textinput.Blink)
}

type datasourcesMsg []repository.Datasource

type modelsMsg []repository.Model

type datasourceAddedMsg struct {
	added repository.Datasource
	rows  []repository.Datasource
}

type datasourcesDeletedMsg struct {
	n    int
	rows []repository.Datasource
}

type modelBuiltMsg struct {
	built repository.Model
	rows  []repository.Model
}

type modelBuildFailedMsg struct{ err error }

type modelDeletedMsg struct {
	name string
	rows []repository.Model
}

type settingsSavedMsg struct{ cfg config.Config }

type statusMsg string

type errMsg struct{ error }

func (a *App) loadDatasources() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.repos.Datasources.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return datasourcesMsg(rows)
	}
}

func (a *App) loadModels() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.repos.Models.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return modelsMsg(rows)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.models.SetSize(max(a.contentWidth()-4, 20), max(m.Height-12, 6))
		a.syncTable()
		a.refreshChat()
		return a, nil
	case spinner.TickMsg:
		return a, a.updateSpinner(m)
	case tea.KeyMsg:
		return a.handleKey(m)
	case datasourcesMsg:
		a.sources.ctl.SetRecords(m)
		a.syncTable()
	case modelsMsg:
		return a, a.setModels(m)
	case datasourceAddedMsg:
		a.sources.ctl.SetRecords(m.rows)
		a.syncTable()
		a.setStatus(fmt.Sprintf("Added %s", m.added.Name))
	case datasourcesDeletedMsg:
		a.sources.ctl.Deleted(m.rows)
		a.syncTable()
		a.setStatus(fmt.Sprintf("Deleted %d datasource(s)", m.n))
	case modelBuiltMsg:
		a.modal = modalNone
		a.page = pageModels
		a.setStatus(fmt.Sprintf("Model %s created", m.built.Name))
		return a, a.setModels(m.rows)
	case modelBuildFailedMsg:
		a.buildForm.err = buildErrorText(m.err)
	case modelDeletedMsg:
		a.setStatus(fmt.Sprintf("Deleted model %s", m.name))
		return a, a.setModels(m.rows)
	case chatReplyMsg:
		return a, a.receiveReply()
	case settingsSavedMsg:
		a.cfg = m.cfg
		a.settings.dirty = false
		a.setStatus("Settings saved")
	case statusMsg:
		a.setStatus(string(m))
	case errMsg:
		a.setError(m.error)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := a.scope()
	b := a.keys.Lookup(m.String(), scope)
	if b != nil && a.handlesGlobal(scope) {
		switch b.Action {
		case actionQuit:
			if m.String() == "ctrl+c" {
				return a, tea.Quit
			}
		case actionNextPage:
			return a.cyclePage(1)
		case actionPrevPage:
			return a.cyclePage(-1)
		case actionToggleSidebar:
			a.sidebarCollapsed = !a.sidebarCollapsed
			a.syncTable()
			return a, nil
		case actionBuildModel:
			return a.openBuildModel()
		}
	}

	switch a.modal {
	case modalAddDatasource:
		return a.handleAddFormKey(m, b)
	case modalBuildModel:
		return a.handleBuildFormKey(m, b)
	case modalConfirmDelete:
		return a.handleConfirmKey(b)
	case modalFilter:
		return a.handleFilterKey(m, b)
	}

	switch a.page {
	case pageHome:
		return a.handleChatKey(m, b)
	case pageDatasources:
		if a.sources.searching {
			return a.handleSearchKey(m, b)
		}
		return a.handleDatasourcesKey(m, b)
	case pageModels:
		return a.handleModelsKey(m, b)
	case pageSettings:
		return a.handleSettingsKey(m, b)
	case pageWorkflows:
		if b != nil && b.Action == actionQuit {
			return a, tea.Quit
		}
	}
	return a, nil
}

// handlesGlobal reports whether global bindings apply in scope. Text entry
// and modal scopes keep their keys.
func (a *App) handlesGlobal(scope string) bool {
	switch scope {
	case scopeGlobal, scopeDatasources, scopeModels, scopeWorkflows, scopeSettings, scopeChat:
		return true
	}
	return false
}

func (a *App) scope() string {
	switch a.modal {
	case modalAddDatasource, modalBuildModel:
		return scopeForm
	case modalConfirmDelete:
		return scopeConfirm
	case modalFilter:
		return scopeFilterMenu
	}
	switch a.page {
	case pageHome:
		return scopeChat
	case pageDatasources:
		if a.sources.searching {
			return scopeSearch
		}
		return scopeDatasources
	case pageModels:
		return scopeModels
	case pageWorkflows:
		return scopeWorkflows
	case pageSettings:
		if a.settings.editing {
			return scopeSettingsEdit
		}
		return scopeSettings
	}
	return scopeGlobal
}

func (a *App) cyclePage(delta int) (tea.Model, tea.Cmd) {
	i := 0
	for j, p := range pageOrder {
		if p == a.page {
			i = j
		}
	}
	n := len(pageOrder)
	return a.switchPage(pageOrder[((i+delta)%n+n)%n])
}

func (a *App) switchPage(p page) (tea.Model, tea.Cmd) {
	a.page = p
	a.status = ""
	a.statusErr = false
	if p == pageHome {
		return a, a.chat.input.Focus()
	}
	a.chat.input.Blur()
	a.syncTable()
	return a, nil
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.log.Error("operation failed", "page", a.page.String(), "err", err)
	a.status = "error: " + err.Error()
	a.statusErr = true
}

func (a *App) sidebarVisible() bool {
	if a.page == pageHome {
		return false
	}
	if a.sidebarCollapsed {
		return false
	}
	return a.width == 0 || a.width >= a.cfg.UI.SidebarCollapseWidth
}

// contentWidth is the width left for the page body.
func (a *App) contentWidth() int {
	w := a.width
	if w <= 0 {
		w = 120
	}
	if a.sidebarVisible() {
		w -= sidebarWidth
	}
	return max(w-4, 20)
}

func (a *App) View() string {
	var body string
	switch a.page {
	case pageModels:
		body = a.renderModels()
	case pageDatasources:
		body = a.renderDatasources()
	case pageWorkflows:
		body = a.renderWorkflows()
	case pageSettings:
		body = a.renderSettings()
	default:
		body = a.renderChat()
	}
	if a.page != pageHome {
		body = contentStyle.Width(a.contentWidth() + 4).Render(body)
		if a.sidebarVisible() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(lipgloss.Height(body)), body)
		}
	}

	footer := footerStyle.Render(a.help.ShortHelpView(a.keys.HelpBindings(a.scope())))
	out := body + "\n" + a.renderStatus() + "\n" + footer

	if a.height > 0 && a.width > 0 {
		out = fitHeight(out, a.width, a.height)
	}
	if a.modal != modalNone {
		out = overlayCenter(out, a.renderModal(), a.width, a.height)
	}
	return out
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return statusBarStyle.Render(errorStyle.Render(a.status))
	}
	return statusBarStyle.Render(a.status)
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalAddDatasource:
		return renderModal("Add New Datasource", a.addForm.View(), a.width)
	case modalBuildModel:
		return renderModal("Build a Model", a.buildForm.View(), a.width)
	case modalConfirmDelete:
		body := confirmDeleteText(len(a.sources.selected)) + "\n\n" +
			errorStyle.Render("y") + " delete   " + faintStyle.Render("n") + " cancel"
		return renderModal("Are you sure?", body, a.width)
	case modalFilter:
		return a.renderFilterMenu()
	}
	return ""
}

// commands

func (a *App) addDatasourceCmd(in repository.NewDatasource) tea.Cmd {
	return func() tea.Msg {
		d, err := a.repos.Datasources.Add(a.ctx, in)
		if err != nil {
			return errMsg{err}
		}
		a.log.Info("datasource added", "id", d.ID, "type", d.Type)
		rows, err := a.repos.Datasources.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return datasourceAddedMsg{added: d, rows: rows}
	}
}

func (a *App) deleteDatasourcesCmd(ids []int) tea.Cmd {
	return func() tea.Msg {
		n, err := a.repos.Datasources.Delete(a.ctx, ids)
		if err != nil {
			return errMsg{err}
		}
		a.log.Info("datasources deleted", "requested", len(ids), "deleted", n)
		rows, err := a.repos.Datasources.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return datasourcesDeletedMsg{n: n, rows: rows}
	}
}

func (a *App) buildModelCmd(in repository.NewModel) tea.Cmd {
	return func() tea.Msg {
		m, err := a.repos.Models.Build(a.ctx, in)
		if err != nil {
			return modelBuildFailedMsg{err}
		}
		a.log.Info("model built", "id", m.ID, "base", m.BaseModel)
		rows, err := a.repos.Models.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return modelBuiltMsg{built: m, rows: rows}
	}
}

func (a *App) deleteModelCmd(m repository.Model) tea.Cmd {
	return func() tea.Msg {
		if err := a.repos.Models.Delete(a.ctx, m.ID); err != nil {
			return errMsg{err}
		}
		a.log.Info("model deleted", "id", m.ID)
		rows, err := a.repos.Models.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return modelDeletedMsg{name: m.Name, rows: rows}
	}
}

func (a *App) saveSettingsCmd(cfg config.Config) tea.Cmd {
	path := a.cfgPath
	store := a.secrets
	keyChanged := cfg.API.Key != a.cfg.API.Key
	return func() tea.Msg {
		if err := config.Save(cfg, path); err != nil {
			return errMsg{err}
		}
		if store != nil && keyChanged {
			if err := store.Put(secrets.APIKey, cfg.API.Key); err != nil {
				return errMsg{err}
			}
		}
		a.log.Info("settings saved", "path", path)
		return settingsSavedMsg{cfg: cfg}
	}
}

// buildErrorText turns a repo validation error into form text.
func buildErrorText(err error) string {
	if errors.Is(err, repository.ErrNameRequired) {
		return "Name is required"
	}
	msg := strings.TrimPrefix(err.Error(), "build model: ")
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
