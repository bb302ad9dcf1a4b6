package tableview

// State is the UI-transient part of a table: what the user typed, picked and
// checked. Every update returns a new State; nothing here is shared.
type State struct {
	Search    string
	Filters   Filters
	Sort      SortSpec
	Page      int
	Selection Selection
}

// NewState returns the initial state: no search, no filters, unsorted, page 1.
func NewState() State {
	return State{Filters: NewFilters(nil, nil), Page: 1}
}

// Query packages the state for DeriveView.
func (s State) Query(pageSize int) Query {
	return Query{
		Search:   s.Search,
		Filters:  s.Filters,
		Sort:     s.Sort,
		Page:     s.Page,
		PageSize: pageSize,
	}
}

// WithSearch replaces the search text. The page is kept as is.
func (s State) WithSearch(q string) State {
	s.Search = q
	return s
}

// ToggleType flips a type filter option. The page is kept as is.
func (s State) ToggleType(value string) State {
	s.Filters = s.Filters.ToggleType(value)
	return s
}

// ToggleStatus flips a status filter option. The page is kept as is.
func (s State) ToggleStatus(value string) State {
	s.Filters = s.Filters.ToggleStatus(value)
	return s
}

func (s State) ClearFilters() State {
	s.Filters = NewFilters(nil, nil)
	return s
}

func (s State) CycleSort(field Field) State {
	s.Sort = s.Sort.Cycle(field)
	return s
}

// WithPage jumps to page, bounded by totalPages.
func (s State) WithPage(page, totalPages int) State {
	s.Page = ClampPage(page, totalPages)
	return s
}

func (s State) NextPage(totalPages int) State { return s.WithPage(s.Page+1, totalPages) }

func (s State) PrevPage(totalPages int) State { return s.WithPage(s.Page-1, totalPages) }

func (s State) ToggleSelect(id int) State {
	s.Selection = ToggleSelect(s.Selection, id)
	return s
}

func (s State) ToggleSelectAll(allIDs []int) State {
	s.Selection = ToggleSelectAll(s.Selection, allIDs)
	return s
}

// AfterDelete is applied once the host has removed the deleted records:
// the selection is cleared and, if the current page no longer exists in the
// filtered view of remaining, the page resets to 1.
func AfterDelete[R Record](s State, remaining []R, pageSize int) State {
	s.Selection = Selection{}
	v := DeriveView(remaining, s.Query(pageSize))
	if s.Page > v.TotalPages {
		s.Page = 1
	}
	return s
}
