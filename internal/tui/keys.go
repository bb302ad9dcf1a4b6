package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps pressed keys to actions per scope. Lookups fall back to
// the global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal       = "global"
	scopeChat         = "chat"
	scopeDatasources  = "datasources"
	scopeSearch       = "search"
	scopeFilterMenu   = "filter_menu"
	scopeForm         = "form"
	scopeConfirm      = "confirm"
	scopeModels       = "models"
	scopeWorkflows    = "workflows"
	scopeSettings     = "settings"
	scopeSettingsEdit = "settings_edit"
)

const (
	actionQuit          Action = "quit"
	actionNextPage      Action = "next_page"
	actionPrevPage      Action = "prev_page"
	actionToggleSidebar Action = "toggle_sidebar"
	actionBuildModel    Action = "build_model"
	actionSend          Action = "send"
	actionSearch        Action = "search"
	actionFilterType    Action = "filter_type"
	actionFilterStatus  Action = "filter_status"
	actionAdd           Action = "add"
	actionDelete        Action = "delete"
	actionClearFilters  Action = "clear_filters"
	actionClearSearch   Action = "clear_search"
	actionSortCreatedAt Action = "sort_created_at"
	actionSortCreatedBy Action = "sort_created_by"
	actionToggleSelect  Action = "toggle_select"
	actionSelectAll     Action = "select_all"
	actionTablePrev     Action = "table_prev"
	actionTableNext     Action = "table_next"
	actionNavigate      Action = "navigate"
	actionConfirm       Action = "confirm"
	actionCancel        Action = "cancel"
	actionNextField     Action = "next_field"
	actionPrevField     Action = "prev_field"
	actionAdjust        Action = "adjust"
	actionTab           Action = "tab"
	actionActivate      Action = "activate"
	actionReveal        Action = "reveal"
	actionRegenerate    Action = "regenerate"
	actionSave          Action = "save"
	actionScroll        Action = "scroll"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")
	reg(scopeGlobal, actionNextPage, []string{"tab"}, "next page")
	reg(scopeGlobal, actionPrevPage, []string{"shift+tab"}, "prev page")
	reg(scopeGlobal, actionToggleSidebar, []string{"ctrl+b"}, "sidebar")
	reg(scopeGlobal, actionBuildModel, []string{"ctrl+n"}, "build a model")

	reg(scopeChat, actionSend, []string{"enter"}, "send")
	reg(scopeChat, actionNextPage, []string{"tab"}, "admin")
	reg(scopeChat, actionScroll, []string{"pgup", "pgdown"}, "scroll")
	reg(scopeChat, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeDatasources, actionSearch, []string{"/"}, "search")
	reg(scopeDatasources, actionFilterType, []string{"t"}, "type")
	reg(scopeDatasources, actionFilterStatus, []string{"s"}, "status")
	reg(scopeDatasources, actionAdd, []string{"n"}, "add data")
	reg(scopeDatasources, actionDelete, []string{"x"}, "delete")
	reg(scopeDatasources, actionClearFilters, []string{"c"}, "clear filters")
	reg(scopeDatasources, actionSortCreatedAt, []string{"1"}, "sort date")
	reg(scopeDatasources, actionSortCreatedBy, []string{"2"}, "sort owner")
	reg(scopeDatasources, actionToggleSelect, []string{"space"}, "select")
	reg(scopeDatasources, actionSelectAll, []string{"a"}, "all")
	reg(scopeDatasources, actionTablePrev, []string{"["}, "prev")
	reg(scopeDatasources, actionTableNext, []string{"]"}, "next")
	reg(scopeDatasources, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeDatasources, actionClearSearch, []string{"esc"}, "clear search")
	reg(scopeDatasources, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeSearch, actionConfirm, []string{"enter", "tab"}, "done")
	reg(scopeSearch, actionClearSearch, []string{"esc"}, "clear search")

	reg(scopeFilterMenu, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeFilterMenu, actionToggleSelect, []string{"space", "x"}, "toggle")
	reg(scopeFilterMenu, actionCancel, []string{"esc", "enter"}, "close")

	reg(scopeForm, actionNextField, []string{"tab", "down"}, "next field")
	reg(scopeForm, actionPrevField, []string{"shift+tab", "up"}, "prev field")
	reg(scopeForm, actionAdjust, []string{"←/→", "left", "right"}, "change")
	reg(scopeForm, actionConfirm, []string{"enter"}, "submit")
	reg(scopeForm, actionCancel, []string{"esc"}, "cancel")

	reg(scopeConfirm, actionConfirm, []string{"y", "enter"}, "delete")
	reg(scopeConfirm, actionCancel, []string{"n", "esc"}, "cancel")

	reg(scopeModels, actionAdd, []string{"n"}, "build")
	reg(scopeModels, actionDelete, []string{"x"}, "delete")
	reg(scopeModels, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeModels, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeWorkflows, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeSettings, actionTab, []string{"h/l", "h", "l", "left", "right"}, "tab")
	reg(scopeSettings, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "field")
	reg(scopeSettings, actionActivate, []string{"enter", "space"}, "edit/toggle")
	reg(scopeSettings, actionReveal, []string{"v"}, "show key")
	reg(scopeSettings, actionRegenerate, []string{"r"}, "regenerate")
	reg(scopeSettings, actionSave, []string{"s"}, "save")
	reg(scopeSettings, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeSettingsEdit, actionConfirm, []string{"enter", "tab"}, "apply")
	reg(scopeSettingsEdit, actionCancel, []string{"esc"}, "cancel")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

// Lookup resolves keyName in scope, then in the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.indexByScope[scope][keyName]; b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.indexByScope[scopeGlobal][keyName]
	}
	return nil
}

// HelpBindings returns the scope's bindings for the footer, first key as
// the label.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.bindingsByScope[scope]
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		// Single runes keep their case so "n" and "N" stay distinct.
		return trimmed
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}
