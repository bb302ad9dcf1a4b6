package tableview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleSelectIsSymmetricDifference(t *testing.T) {
	sel := ToggleSelect(Selection{}, 3)
	sel = ToggleSelect(sel, 7)
	assert.Equal(t, []int{3, 7}, sel.IDs())

	sel = ToggleSelect(sel, 3)
	assert.Equal(t, []int{7}, sel.IDs())
	assert.False(t, sel.Contains(3))
}

func TestToggleSelectDoesNotAliasInput(t *testing.T) {
	base := NewSelection(1, 2)
	_ = ToggleSelect(base, 3)
	_ = ToggleSelect(base, 1)
	assert.Equal(t, []int{1, 2}, base.IDs())
}

func TestToggleSelectAllUsesFullRecordSet(t *testing.T) {
	all := ids(numbered(15))

	sel := ToggleSelectAll(NewSelection(4), all)
	require.Equal(t, 15, sel.Len())
	assert.True(t, AllSelected(sel, all))

	sel = ToggleSelectAll(sel, all)
	assert.Zero(t, sel.Len())
}

func TestToggleSelectAllTwiceIsInvolution(t *testing.T) {
	all := []int{5, 6, 7}
	for _, start := range []Selection{{}, NewSelection(5, 6, 7)} {
		got := ToggleSelectAll(ToggleSelectAll(start, all), all)
		assert.ElementsMatch(t, start.IDs(), got.IDs())
	}
}

func TestAllSelectedFalseForEmptyTable(t *testing.T) {
	assert.False(t, AllSelected(Selection{}, nil))
}

func TestRequestDeleteSnapshot(t *testing.T) {
	sel := NewSelection(9, 2, 9)
	got := RequestDelete(sel)
	assert.Equal(t, []int{9, 2}, got)
	got[0] = 100
	assert.Equal(t, []int{9, 2}, sel.IDs())
}

func TestPruneDropsDanglingIDs(t *testing.T) {
	sel := NewSelection(1, 2, 3).Prune([]int{3, 1, 8})
	assert.Equal(t, []int{1, 3}, sel.IDs())
}

func TestNewSelectionDropsDuplicatesKeepingOrder(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, NewSelection(3, 1, 3, 2, 1).IDs())
	assert.Zero(t, NewSelection().Len())
}

func TestToggleSelectAllLargeTable(t *testing.T) {
	all := make([]int, 100_000)
	for i := range all {
		all[i] = i + 1
	}
	sel := ToggleSelectAll(Selection{}, all)
	assert.Equal(t, len(all), sel.Len())
	assert.True(t, AllSelected(sel, all))
	assert.Zero(t, ToggleSelectAll(sel, all).Len())
}
