package tableview

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// host mimics a screen that owns the records and reacts to the callbacks.
type host struct {
	rows       []row
	selections [][]int
	deleted    [][]int
	ctrl       *Controller[row]
}

func newHost(rows []row, pageSize int) *host {
	h := &host{rows: rows}
	h.ctrl = NewController(rows, pageSize, Callbacks{
		OnSelectionChange: func(ids []int) { h.selections = append(h.selections, ids) },
		OnDelete: func(ids []int) {
			h.deleted = append(h.deleted, ids)
			var keep []row
			for _, r := range h.rows {
				if !slices.Contains(ids, r.id) {
					keep = append(keep, r)
				}
			}
			h.rows = keep
		},
	})
	return h
}

func TestStateSearchAndFilterKeepPageAndSort(t *testing.T) {
	s := NewState().CycleSort(FieldCreatedBy).WithPage(3, 5)
	s = s.WithSearch("web").ToggleType("PDF").ToggleStatus("Uploaded")
	assert.Equal(t, 3, s.Page)
	assert.Equal(t, SortSpec{Field: FieldCreatedBy, Direction: DirAsc}, s.Sort)
	assert.Equal(t, 2, s.Filters.Count())

	s = s.ToggleType("PDF").ClearFilters()
	assert.True(t, s.Filters.Empty())
	assert.Equal(t, 3, s.Page)
}

func TestStateUpdatesDoNotShareFilters(t *testing.T) {
	a := NewState().ToggleType("PDF")
	b := a.ToggleType("CSV")
	assert.Equal(t, []string{"PDF"}, a.Filters.TypeList())
	assert.Equal(t, []string{"CSV", "PDF"}, b.Filters.TypeList())
}

func TestStatePaging(t *testing.T) {
	s := NewState()
	s = s.NextPage(2)
	assert.Equal(t, 2, s.Page)
	s = s.NextPage(2)
	assert.Equal(t, 2, s.Page)
	s = s.PrevPage(2).PrevPage(2)
	assert.Equal(t, 1, s.Page)
}

func TestAfterDeleteResetsPageWhenBeyondEnd(t *testing.T) {
	s := NewState().WithPage(2, 2).ToggleSelect(11)
	s = AfterDelete(s, numbered(10), 10)
	assert.Equal(t, 1, s.Page)
	assert.Zero(t, s.Selection.Len())

	s = NewState().WithPage(2, 3).ToggleSelect(1)
	s = AfterDelete(s, numbered(20), 10)
	assert.Equal(t, 2, s.Page)
}

func TestControllerSelectionCallbacks(t *testing.T) {
	h := newHost(numbered(12), 10)
	h.ctrl.ToggleSelect(3)
	h.ctrl.ToggleSelect(5)
	h.ctrl.ToggleSelect(3)
	require.Len(t, h.selections, 3)
	assert.Equal(t, []int{5}, h.selections[2])

	h.ctrl.ToggleSelectAll()
	assert.Len(t, h.selections[3], 12)
	h.ctrl.ToggleSelectAll()
	assert.Empty(t, h.selections[4])
}

func TestControllerDeleteFlow(t *testing.T) {
	h := newHost(numbered(15), 10)
	h.ctrl.NextPage()
	require.Equal(t, 2, h.ctrl.State().Page)
	for id := 11; id <= 15; id++ {
		h.ctrl.ToggleSelect(id)
	}

	got := h.ctrl.ConfirmDelete()
	assert.Equal(t, []int{11, 12, 13, 14, 15}, got)
	require.Len(t, h.deleted, 1)
	assert.Len(t, h.rows, 10)
	assert.Zero(t, h.ctrl.State().Selection.Len())

	h.ctrl.Deleted(h.rows)
	assert.Equal(t, 1, h.ctrl.State().Page)
	v := h.ctrl.View()
	assert.Len(t, v.Items, 10)
	assert.Equal(t, 1, v.TotalPages)
}

func TestControllerConfirmDeleteWithEmptySelection(t *testing.T) {
	h := newHost(numbered(3), 10)
	assert.Nil(t, h.ctrl.ConfirmDelete())
	assert.Empty(t, h.deleted)
}

func TestControllerSetRecordsPrunesSelection(t *testing.T) {
	h := newHost(numbered(4), 10)
	h.ctrl.ToggleSelect(2)
	h.ctrl.ToggleSelect(4)
	h.ctrl.SetRecords(numbered(3))
	assert.Equal(t, []int{2}, h.ctrl.State().Selection.IDs())
	assert.Equal(t, []int{2}, h.selections[len(h.selections)-1])
}

func TestControllerFilterEditKeepsPage(t *testing.T) {
	h := newHost(numbered(30), 10)
	h.ctrl.GoToPage(3)
	h.ctrl.ToggleType("PDF")
	assert.Equal(t, 3, h.ctrl.State().Page)
	// Only 10 PDF rows remain so page 3 is now past the end.
	assert.True(t, h.ctrl.View().Empty())
}
