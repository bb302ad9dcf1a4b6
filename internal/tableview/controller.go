package tableview

// Callbacks are the intents a Controller emits to its host.
type Callbacks struct {
	// OnSelectionChange receives the full selection after every change.
	OnSelectionChange func(ids []int)
	// OnDelete receives the ids the host should remove. The host is expected
	// to call SetRecords with the updated list afterwards.
	OnDelete func(ids []int)
}

// Controller binds a State to a record list and a page size. It is the
// TableView component: hosts feed it records and input events, render
// View(), and act on the callbacks.
type Controller[R Record] struct {
	records   []R
	state     State
	pageSize  int
	callbacks Callbacks
}

func NewController[R Record](records []R, pageSize int, cb Callbacks) *Controller[R] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller[R]{records: records, state: NewState(), pageSize: pageSize, callbacks: cb}
}

func (c *Controller[R]) State() State  { return c.state }
func (c *Controller[R]) PageSize() int { return c.pageSize }
func (c *Controller[R]) Records() []R  { return c.records }

// View derives the current page.
func (c *Controller[R]) View() View[R] {
	return DeriveView(c.records, c.state.Query(c.pageSize))
}

// AllIDs lists every record id in source order.
func (c *Controller[R]) AllIDs() []int {
	ids := make([]int, 0, len(c.records))
	for _, r := range c.records {
		ids = append(ids, r.RecordID())
	}
	return ids
}

// SetRecords swaps in the host's current records and drops selected ids that
// no longer exist.
func (c *Controller[R]) SetRecords(records []R) {
	c.records = records
	before := c.state.Selection.Len()
	c.state.Selection = c.state.Selection.Prune(c.AllIDs())
	if c.state.Selection.Len() != before {
		c.emitSelection()
	}
}

func (c *Controller[R]) SetSearch(q string) { c.state = c.state.WithSearch(q) }

func (c *Controller[R]) ToggleType(value string) { c.state = c.state.ToggleType(value) }

func (c *Controller[R]) ToggleStatus(value string) { c.state = c.state.ToggleStatus(value) }

func (c *Controller[R]) ClearFilters() { c.state = c.state.ClearFilters() }

func (c *Controller[R]) CycleSort(field Field) { c.state = c.state.CycleSort(field) }

func (c *Controller[R]) NextPage() { c.state = c.state.NextPage(c.View().TotalPages) }

func (c *Controller[R]) PrevPage() { c.state = c.state.PrevPage(c.View().TotalPages) }

func (c *Controller[R]) GoToPage(page int) { c.state = c.state.WithPage(page, c.View().TotalPages) }

func (c *Controller[R]) ToggleSelect(id int) {
	c.state = c.state.ToggleSelect(id)
	c.emitSelection()
}

func (c *Controller[R]) ToggleSelectAll() {
	c.state = c.state.ToggleSelectAll(c.AllIDs())
	c.emitSelection()
}

// ConfirmDelete hands the selection snapshot to OnDelete and clears the
// selection. It returns the snapshot; an empty selection is a no-op.
func (c *Controller[R]) ConfirmDelete() []int {
	ids := RequestDelete(c.state.Selection)
	if len(ids) == 0 {
		return nil
	}
	if c.callbacks.OnDelete != nil {
		c.callbacks.OnDelete(ids)
	}
	c.state.Selection = Selection{}
	c.emitSelection()
	return ids
}

// Deleted is called by the host once the records in ids are gone. It applies
// the post-delete page rule against remaining.
func (c *Controller[R]) Deleted(remaining []R) {
	c.records = remaining
	c.state = AfterDelete(c.state, remaining, c.pageSize)
}

func (c *Controller[R]) emitSelection() {
	if c.callbacks.OnSelectionChange != nil {
		c.callbacks.OnSelectionChange(c.state.Selection.IDs())
	}
}
