package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/zams/internal/config"
	"github.com/jask/zams/internal/repository"
	"github.com/jask/zams/internal/seed"
	"github.com/jask/zams/internal/tableview"
)

type echoResponder struct{}

func (echoResponder) Respond(input string) string { return "echo: " + input }

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.UI.Color = false
	cfg.Chat.ReplyDelay = 0
	cfg.Log.Path = ""

	fx, err := seed.Load()
	require.NoError(t, err)
	now := func() time.Time { return time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC) }
	repos := seed.Seed(fx, repository.DefaultOptions(), cfg.User.Name, now)

	a := New(context.Background(), cfg, repos, Deps{
		Responder:  echoResponder{},
		Workflows:  fx.Workflows,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
	})
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 48})
	run(t, a, a.loadDatasources())
	run(t, a, a.loadModels())
	return a
}

func testKey(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press applies keys in order and returns the command of the last one.
func press(t *testing.T, a *App, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		next, c := a.Update(testKey(k))
		require.Same(t, a, next)
		cmd = c
	}
	return cmd
}

func typeText(t *testing.T, a *App, text string) {
	t.Helper()
	for _, r := range text {
		press(t, a, string(r))
	}
}

// run executes cmd once and feeds its message back.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	a.Update(cmd())
}

func openDatasources(t *testing.T, a *App) {
	t.Helper()
	press(t, a, "tab", "tab")
	require.Equal(t, pageDatasources, a.page)
}

func TestPageCycleWithTab(t *testing.T) {
	a := newTestApp(t)
	require.Equal(t, pageHome, a.page)

	press(t, a, "tab")
	assert.Equal(t, pageModels, a.page)
	press(t, a, "tab", "tab", "tab")
	assert.Equal(t, pageSettings, a.page)
	press(t, a, "tab")
	assert.Equal(t, pageHome, a.page)
	press(t, a, "shift+tab")
	assert.Equal(t, pageSettings, a.page)
}

func TestDatasourcesInitialPage(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	view := a.sources.ctl.View()
	require.Equal(t, 16, view.TotalCount)
	require.Equal(t, 2, view.TotalPages)
	require.Len(t, view.Items, 10)

	out := a.View()
	assert.Contains(t, out, "Datasources")
	assert.Contains(t, out, "Showing 1 to 10 of 16 entries")
	assert.Contains(t, out, "0 selected")
}

func TestDatasourcesSearch(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "/")
	require.True(t, a.sources.searching)
	require.Equal(t, scopeSearch, a.scope())
	typeText(t, a, "server")

	view := a.sources.ctl.View()
	require.Equal(t, 3, view.TotalCount)
	for _, d := range view.Items {
		assert.Equal(t, "Server Files", d.Name)
	}
	assert.NotContains(t, a.View(), "Showing")

	press(t, a, "esc")
	assert.False(t, a.sources.searching)
	assert.Equal(t, "", a.sources.ctl.State().Search)
	assert.Equal(t, 16, a.sources.ctl.View().TotalCount)
}

func TestDatasourcesSearchNoResults(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "/")
	typeText(t, a, "zzz")
	press(t, a, "enter")
	require.False(t, a.sources.searching)

	out := a.View()
	assert.Contains(t, out, "No datasources found")
	assert.Contains(t, out, "Clear search")
}

func TestDatasourcesTypeFilter(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "t")
	require.Equal(t, modalFilter, a.modal)
	require.Equal(t, "PDF", a.filter.Current())
	press(t, a, " ")
	press(t, a, "esc")
	require.Equal(t, modalNone, a.modal)

	view := a.sources.ctl.View()
	require.Equal(t, 5, view.TotalCount)
	for _, d := range view.Items {
		assert.Equal(t, "PDF", d.Type)
	}

	press(t, a, "c")
	assert.Equal(t, "Cleared 1 filter(s)", a.status)
	assert.Equal(t, 16, a.sources.ctl.View().TotalCount)

	press(t, a, "c")
	assert.Equal(t, "No active filters", a.status)
}

func TestDatasourcesStatusFilterCombinesWithType(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "t", "j", "x", "esc")
	press(t, a, "s", "j", "x", "esc")

	state := a.sources.ctl.State()
	require.True(t, state.Filters.Types["CSV"])
	require.True(t, state.Filters.Statuses["Connected"])

	view := a.sources.ctl.View()
	require.Equal(t, 3, view.TotalCount)
	for _, d := range view.Items {
		assert.Equal(t, "CSV", d.Type)
		assert.Equal(t, "Connected", d.Status)
	}
}

func TestDatasourcesSortCycle(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "2")
	assert.Equal(t, tableview.SortSpec{Field: tableview.FieldCreatedBy, Direction: tableview.DirAsc}, a.sources.ctl.State().Sort)
	assert.Equal(t, "Natalie Craig", a.sources.ctl.View().Items[0].CreatedBy)

	press(t, a, "2")
	assert.Equal(t, tableview.DirDesc, a.sources.ctl.State().Sort.Direction)
	assert.Equal(t, "Phoenix Baker", a.sources.ctl.View().Items[0].CreatedBy)

	press(t, a, "2")
	assert.False(t, a.sources.ctl.State().Sort.Active())
	assert.Equal(t, 1, a.sources.ctl.View().Items[0].ID)
}

func TestDatasourcesPaging(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "]")
	view := a.sources.ctl.View()
	require.Equal(t, 2, view.Page)
	require.Len(t, view.Items, 6)
	assert.Contains(t, a.View(), "Showing 11 to 16 of 16 entries")

	press(t, a, "]")
	assert.Equal(t, 2, a.sources.ctl.State().Page)

	press(t, a, "[", "[")
	assert.Equal(t, 1, a.sources.ctl.State().Page)
}

func TestDatasourcesSelectAndDelete(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "x")
	assert.Equal(t, "Select datasources to delete first", a.status)
	assert.Equal(t, modalNone, a.modal)

	press(t, a, " ", "j", " ")
	require.Equal(t, []int{1, 2}, a.sources.selected)
	assert.Contains(t, a.View(), "2 selected")

	press(t, a, "x")
	require.Equal(t, modalConfirmDelete, a.modal)
	assert.Contains(t, a.View(), "This will permanently delete 2 selected datasource(s).")

	press(t, a, "n")
	require.Equal(t, modalNone, a.modal)
	require.Len(t, a.sources.selected, 2)

	press(t, a, "x")
	cmd := press(t, a, "y")
	require.Empty(t, a.sources.selected)
	run(t, a, cmd)

	assert.Equal(t, "Deleted 2 datasource(s)", a.status)
	ids, err := a.repos.Datasources.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 14)
	assert.Equal(t, 14, a.sources.ctl.View().TotalCount)
	assert.Equal(t, 3, a.sources.ctl.View().Items[0].ID)
}

func TestDatasourcesSelectAllSpansPages(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "a")
	require.Len(t, a.sources.selected, 16)
	assert.True(t, tableview.AllSelected(a.sources.ctl.State().Selection, a.sources.ctl.AllIDs()))

	press(t, a, "a")
	assert.Empty(t, a.sources.selected)
}

func TestDeleteLastPageFallsBack(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "]")
	for range 6 {
		press(t, a, " ", "j")
	}
	require.Len(t, a.sources.selected, 6)
	press(t, a, "x")
	run(t, a, press(t, a, "y"))

	view := a.sources.ctl.View()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 10, view.TotalCount)
}

func TestAddDatasourceDialog(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "n")
	require.Equal(t, modalAddDatasource, a.modal)
	assert.Contains(t, a.View(), "Add New Datasource")

	press(t, a, "enter")
	assert.Equal(t, "Name is required", a.addForm.err)
	require.Equal(t, modalAddDatasource, a.modal)

	typeText(t, a, "Quarterly")
	press(t, a, "down", "right", "down", "right")
	in := a.addForm.Input()
	require.Equal(t, repository.NewDatasource{Name: "Quarterly", Type: "CSV", Status: "Connected"}, in)

	cmd := press(t, a, "enter")
	require.Equal(t, modalNone, a.modal)
	run(t, a, cmd)

	assert.Equal(t, "Added Quarterly", a.status)
	view := a.sources.ctl.View()
	assert.Equal(t, 17, view.TotalCount)
	last := a.sources.ctl.Records()[len(a.sources.ctl.Records())-1]
	assert.Equal(t, 17, last.ID)
	assert.Equal(t, "John Doe", last.CreatedBy)
	assert.Equal(t, "Oct 1, 2024", last.CreatedAt)
}

func TestAddDatasourceCancel(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)

	press(t, a, "n")
	typeText(t, a, "nope")
	press(t, a, "esc")
	assert.Equal(t, modalNone, a.modal)
	assert.Equal(t, 16, a.sources.ctl.View().TotalCount)
}

func TestChatSendAndReply(t *testing.T) {
	a := newTestApp(t)
	require.Equal(t, scopeChat, a.scope())
	assert.Contains(t, a.View(), "What would you like to ask today?")

	typeText(t, a, "hi there")
	assert.Contains(t, a.View(), "8/1000")

	cmd := press(t, a, "enter")
	require.NotNil(t, cmd)
	require.True(t, a.chat.session.Pending())
	assert.Equal(t, "", a.chat.input.Value())
	assert.Contains(t, a.View(), "typing")

	a.Update(chatReplyMsg{})
	require.False(t, a.chat.session.Pending())
	msgs := a.chat.session.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "echo: hi there", msgs[1].Content)

	out := a.View()
	assert.Contains(t, out, "hi there")
	assert.Contains(t, out, "echo: hi there")
	assert.NotContains(t, out, "typing")
	assert.NotContains(t, out, "What would you like to ask today?")
}

func TestChatHistoryScrollsToNewest(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 16})
	for i := range 6 {
		typeText(t, a, fmt.Sprintf("question %d", i))
		press(t, a, "enter")
		a.Update(chatReplyMsg{})
	}
	require.Len(t, a.chat.session.Messages(), 12)
	assert.True(t, a.chat.history.AtBottom())
	out := a.View()
	assert.Contains(t, out, "echo: question 5")
	assert.NotContains(t, out, "question 0")

	press(t, a, "pgup")
	assert.False(t, a.chat.history.AtBottom())
}

func TestChatIgnoresBlankInput(t *testing.T) {
	a := newTestApp(t)
	typeText(t, a, "   ")
	cmd := press(t, a, "enter")
	assert.Nil(t, cmd)
	assert.True(t, a.chat.session.Empty())
}

func TestSidebarToggle(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "tab")
	require.True(t, a.sidebarVisible())
	assert.Contains(t, a.View(), "Platform UI")

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.False(t, a.sidebarVisible())
	assert.NotContains(t, a.View(), "Platform UI")
}

func TestSidebarHiddenOnNarrowTerminal(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "tab")
	a.Update(tea.WindowSizeMsg{Width: 90, Height: 40})
	assert.False(t, a.sidebarVisible())
}

func TestCompactCardsOnNarrowTerminal(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)
	a.Update(tea.WindowSizeMsg{Width: 70, Height: 40})
	out := a.View()
	assert.Contains(t, out, "PDF · Uploaded")
	assert.Contains(t, out, "Jan 6 2024 · Olivia Ryhe")
}

func TestBuildModelFlow(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, modalBuildModel, a.modal)

	run(t, a, press(t, a, "enter"))
	assert.Equal(t, "Name is required", a.buildForm.err)
	require.Equal(t, modalBuildModel, a.modal)

	typeText(t, a, "Helper")
	press(t, a, "down", "down", "down", "right", "right")
	require.InDelta(t, 0.9, a.buildForm.temperature, 1e-9)

	run(t, a, press(t, a, "enter"))
	require.Equal(t, modalNone, a.modal)
	require.Equal(t, pageModels, a.page)
	assert.Equal(t, "Model Helper created", a.status)
	assert.Len(t, a.models.Items(), 4)

	out := a.View()
	assert.Contains(t, out, "AI Models")
	assert.Contains(t, out, "Helper")
}

func TestBuildModelRejectsTokens(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	typeText(t, a, "Big")
	press(t, a, "up")
	require.Equal(t, 4, a.buildForm.focus)
	a.buildForm.maxTokens.SetValue("9999")

	run(t, a, press(t, a, "enter"))
	require.Equal(t, modalBuildModel, a.modal)
	assert.Contains(t, a.buildForm.err, "out of range")
}

func TestDeleteModel(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "tab")
	require.Equal(t, pageModels, a.page)

	run(t, a, press(t, a, "x"))
	assert.Equal(t, "Deleted model Customer Support Bot", a.status)
	assert.Len(t, a.models.Items(), 2)
}

func TestWorkflowsPage(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "tab", "tab", "tab")
	require.Equal(t, pageWorkflows, a.page)

	out := a.View()
	assert.Contains(t, out, "Coming Soon")
	assert.Contains(t, out, "Data Processing Pipeline")
	assert.Contains(t, out, "Example workflow (coming soon)")
}

func TestQuitFromAdminPage(t *testing.T) {
	a := newTestApp(t)
	press(t, a, "tab")
	cmd := press(t, a, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewHelpFooterFollowsScope(t *testing.T) {
	a := newTestApp(t)
	openDatasources(t, a)
	out := a.View()
	assert.True(t, strings.Contains(out, "search") && strings.Contains(out, "add data"))
}
