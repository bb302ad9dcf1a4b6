package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/zams/internal/repository"
	"github.com/jask/zams/internal/tableview"
)

type datasourcesView struct {
	ctl       *tableview.Controller[repository.Datasource]
	table     table.Model
	search    textinput.Model
	searching bool
	selected  []int
	deleting  []int
}

func newDatasourcesView(pageSize int, cb tableview.Callbacks) datasourcesView {
	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "⌕ "
	search.Width = 24

	t := table.New(table.WithFocused(true), table.WithHeight(pageSize))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSurface2).
		BorderBottom(true).
		Foreground(colorSubtext0).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(colorText).
		Background(colorSurface0).
		Bold(false)
	t.SetStyles(styles)

	return datasourcesView{
		ctl:    tableview.NewController[repository.Datasource](nil, pageSize, cb),
		table:  t,
		search: search,
	}
}

// currentID is the id of the row under the table cursor.
func (v *datasourcesView) currentID() (int, bool) {
	items := v.ctl.View().Items
	i := v.table.Cursor()
	if i < 0 || i >= len(items) {
		return 0, false
	}
	return items[i].ID, true
}

func (a *App) handleDatasourcesKey(msg tea.KeyMsg, b *Binding) (tea.Model, tea.Cmd) {
	v := &a.sources
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionSearch:
		v.searching = true
		return a, v.search.Focus()
	case actionFilterType:
		a.openFilterMenu(filterType, a.opts.Types)
	case actionFilterStatus:
		a.openFilterMenu(filterStatus, a.opts.Statuses)
	case actionAdd:
		a.addForm = newAddDatasourceForm(a.opts)
		a.modal = modalAddDatasource
		return a, textinput.Blink
	case actionDelete:
		if len(v.selected) == 0 {
			a.setStatus("Select datasources to delete first")
			return a, nil
		}
		a.modal = modalConfirmDelete
	case actionClearFilters:
		n := v.ctl.State().Filters.Count()
		if n == 0 {
			a.setStatus("No active filters")
			return a, nil
		}
		v.ctl.ClearFilters()
		a.syncTable()
		a.setStatus(fmt.Sprintf("Cleared %d filter(s)", n))
	case actionClearSearch:
		a.clearSearch()
	case actionSortCreatedAt:
		v.ctl.CycleSort(tableview.FieldCreatedAt)
		a.syncTable()
	case actionSortCreatedBy:
		v.ctl.CycleSort(tableview.FieldCreatedBy)
		a.syncTable()
	case actionToggleSelect:
		if id, ok := v.currentID(); ok {
			v.ctl.ToggleSelect(id)
			a.syncTable()
		}
	case actionSelectAll:
		v.ctl.ToggleSelectAll()
		a.syncTable()
	case actionTablePrev:
		v.ctl.PrevPage()
		v.table.SetCursor(0)
		a.syncTable()
	case actionTableNext:
		v.ctl.NextPage()
		v.table.SetCursor(0)
		a.syncTable()
	case actionNavigate:
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg, b *Binding) (tea.Model, tea.Cmd) {
	v := &a.sources
	if b != nil {
		switch b.Action {
		case actionConfirm:
			v.searching = false
			v.search.Blur()
			return a, nil
		case actionClearSearch:
			a.clearSearch()
			return a, nil
		case actionQuit:
			return a, tea.Quit
		}
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.ctl.SetSearch(v.search.Value())
	a.syncTable()
	return a, cmd
}

func (a *App) clearSearch() {
	v := &a.sources
	v.searching = false
	v.search.Blur()
	v.search.SetValue("")
	v.ctl.SetSearch("")
	a.syncTable()
}

func (a *App) openFilterMenu(kind filterKind, options []string) {
	a.filter = filterMenu{kind: kind, options: options}
	a.modal = modalFilter
}

func (a *App) handleFilterKey(msg tea.KeyMsg, b *Binding) (tea.Model, tea.Cmd) {
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionNavigate:
		delta := 1
		if k := msg.String(); k == "k" || k == "up" {
			delta = -1
		}
		a.filter = a.filter.Move(delta)
	case actionToggleSelect:
		opt := a.filter.Current()
		if a.filter.kind == filterType {
			a.sources.ctl.ToggleType(opt)
		} else {
			a.sources.ctl.ToggleStatus(opt)
		}
		a.syncTable()
	case actionCancel:
		a.modal = modalNone
	case actionQuit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleConfirmKey(b *Binding) (tea.Model, tea.Cmd) {
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionConfirm:
		a.modal = modalNone
		a.sources.ctl.ConfirmDelete()
		ids := a.sources.deleting
		a.sources.deleting = nil
		a.syncTable()
		if len(ids) == 0 {
			return a, nil
		}
		return a, a.deleteDatasourcesCmd(ids)
	case actionCancel:
		a.modal = modalNone
	case actionQuit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleAddFormKey(msg tea.KeyMsg, b *Binding) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if b == nil {
		a.addForm, cmd = a.addForm.Type(msg)
		return a, cmd
	}
	switch b.Action {
	case actionNextField:
		a.addForm = a.addForm.Move(1)
	case actionPrevField:
		a.addForm = a.addForm.Move(-1)
	case actionAdjust:
		a.addForm, cmd = a.addForm.Adjust(msg)
	case actionCancel:
		a.modal = modalNone
	case actionConfirm:
		in := a.addForm.Input()
		if strings.TrimSpace(in.Name) == "" {
			a.addForm.err = "Name is required"
			return a, nil
		}
		a.modal = modalNone
		return a, a.addDatasourceCmd(in)
	case actionQuit:
		return a, tea.Quit
	default:
		a.addForm, cmd = a.addForm.Type(msg)
	}
	return a, cmd
}

// syncTable rebuilds the table rows from the controller's current view.
func (a *App) syncTable() {
	v := &a.sources
	view := v.ctl.View()
	state := v.ctl.State()
	width := a.contentWidth()

	all := tableview.AllSelected(state.Selection, v.ctl.AllIDs())
	nameW := max(12, width-3-6-11-16-16-12)
	v.table.SetColumns([]table.Column{
		{Title: checkbox(all), Width: 3},
		{Title: "Name", Width: nameW},
		{Title: "Type", Width: 6},
		{Title: "Status", Width: 11},
		{Title: "Created At " + state.Sort.Indicator(tableview.FieldCreatedAt), Width: 16},
		{Title: "Created By " + state.Sort.Indicator(tableview.FieldCreatedBy), Width: 16},
	})
	rows := make([]table.Row, 0, len(view.Items))
	for _, d := range view.Items {
		rows = append(rows, table.Row{
			checkbox(state.Selection.Contains(d.ID)),
			d.Name,
			d.Type,
			d.Status,
			d.CreatedAt,
			d.CreatedBy,
		})
	}
	v.table.SetRows(rows)
	v.table.SetHeight(max(len(rows), 1) + 1)
	if c := v.table.Cursor(); c >= len(rows) {
		v.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (a *App) renderDatasources() string {
	v := &a.sources
	view := v.ctl.View()
	state := v.ctl.State()
	width := a.contentWidth()

	header := titleStyle.Render("Datasources") + "\n" +
		mutedStyle.Render("Upload files, connect to databases, or integrate with apps.")

	searchBox := inputBoxStyle
	if v.searching {
		searchBox = focusedInputBoxStyle
	}
	toolbar := lipgloss.JoinHorizontal(lipgloss.Center,
		searchBox.Render(v.search.View()),
		"  ",
		filterButton("Type", len(state.Filters.Types)),
		" ",
		filterButton("Status", len(state.Filters.Statuses)),
		"  ",
		buttonStyle.Render("+ Add Data"),
	)
	info := faintStyle.Render(fmt.Sprintf("%d selected", len(v.selected)))
	if n := state.Filters.Count(); n > 0 {
		info += faintStyle.Render(" · ") + tagStyle.Render(fmt.Sprintf("%d filter(s) active", n))
	}

	var body string
	switch {
	case view.Empty():
		body = "\n" + mutedStyle.Render("No datasources found")
		if state.Search != "" {
			body += "\n" + accentStyle.Render("esc") + " " + mutedStyle.Render("Clear search")
		}
	case width < a.cfg.UI.CompactWidth:
		body = a.renderDatasourceCards(view, state)
	default:
		body = v.table.View()
	}

	parts := []string{header, "", toolbar, info, "", body}
	if view.TotalPages > 1 && !view.Empty() {
		parts = append(parts, "", paginationLine(view))
	}
	return strings.Join(parts, "\n")
}

func (a *App) renderDatasourceCards(view tableview.View[repository.Datasource], state tableview.State) string {
	cursor := a.sources.table.Cursor()
	cards := make([]string, 0, len(view.Items))
	for i, d := range view.Items {
		marker := "  "
		if i == cursor {
			marker = accentStyle.Render("▶ ")
		}
		top := fmt.Sprintf("%s%s %s", marker, checkbox(state.Selection.Contains(d.ID)), titleStyle.Render(d.Name))
		meta := mutedStyle.Render(fmt.Sprintf("      %s · %s", d.Type, d.Status))
		foot := faintStyle.Render(fmt.Sprintf("      %s · %s", d.CreatedAt, d.CreatedBy))
		cards = append(cards, top+"\n"+meta+"\n"+foot)
	}
	return strings.Join(cards, "\n")
}

func filterButton(label string, n int) string {
	if n == 0 {
		return mutedBadgeStyle.Render(label + " ▾")
	}
	return badgeStyle.Render(fmt.Sprintf("%s %d ▾", label, n))
}

func paginationLine(view tableview.View[repository.Datasource]) string {
	showing := fmt.Sprintf("Showing %d to %d of %d entries", view.Start, view.End, view.TotalCount)
	pages := make([]string, 0, view.TotalPages)
	for p := 1; p <= view.TotalPages; p++ {
		label := fmt.Sprintf(" %d ", p)
		if p == view.Page {
			label = badgeStyle.Render(fmt.Sprintf("%d", p))
		}
		pages = append(pages, label)
	}
	return mutedStyle.Render(showing) + "   ‹ " + strings.Join(pages, "") + " ›"
}

func (a *App) renderFilterMenu() string {
	title := a.filter.kind.title()
	return renderModal(title, a.filter.View(a.sources.ctl.State().Filters), a.width)
}

func (k filterKind) title() string {
	return "Filter by " + strings.ToLower(string(k))
}
