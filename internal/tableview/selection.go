package tableview

import "slices"

// Selection is an ordered set of checked record ids. The zero value is an
// empty selection. Methods never modify the receiver.
type Selection struct {
	ids []int
}

// NewSelection builds a selection from ids, dropping duplicates.
func NewSelection(ids ...int) Selection {
	seen := make(map[int]struct{}, len(ids))
	var s Selection
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

func (s Selection) Len() int { return len(s.ids) }

func (s Selection) Contains(id int) bool { return slices.Contains(s.ids, id) }

// IDs returns a copy of the ids in the order they were checked.
func (s Selection) IDs() []int { return slices.Clone(s.ids) }

// Prune drops ids that are not in valid.
func (s Selection) Prune(valid []int) Selection {
	keep := make(map[int]struct{}, len(valid))
	for _, id := range valid {
		keep[id] = struct{}{}
	}
	var out Selection
	for _, id := range s.ids {
		if _, ok := keep[id]; ok {
			out.ids = append(out.ids, id)
		}
	}
	return out
}

// ToggleSelect returns sel with id added if absent, removed if present.
func ToggleSelect(sel Selection, id int) Selection {
	if sel.Contains(id) {
		out := Selection{ids: make([]int, 0, len(sel.ids)-1)}
		for _, v := range sel.ids {
			if v != id {
				out.ids = append(out.ids, v)
			}
		}
		return out
	}
	return Selection{ids: append(slices.Clone(sel.ids), id)}
}

// ToggleSelectAll clears the selection when it already holds as many ids as
// the full record set, otherwise it selects every id in allIDs. allIDs is the
// whole record list, not the visible page.
func ToggleSelectAll(sel Selection, allIDs []int) Selection {
	if sel.Len() == len(allIDs) {
		return Selection{}
	}
	return NewSelection(allIDs...)
}

// AllSelected reports whether the header checkbox should render checked.
func AllSelected(sel Selection, allIDs []int) bool {
	return len(allIDs) > 0 && sel.Len() == len(allIDs)
}

// RequestDelete snapshots the ids the host should remove.
func RequestDelete(sel Selection) []int {
	return sel.IDs()
}
