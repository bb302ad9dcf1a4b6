package tableview

import "sort"

// SortDirection is the direction half of a SortSpec.
type SortDirection string

const (
	DirNone SortDirection = ""
	DirAsc  SortDirection = "asc"
	DirDesc SortDirection = "desc"
)

// SortNone is the zero Field; a spec holding it does not sort.
const SortNone Field = ""

// SortSpec selects a column and direction. The view is only sorted when both
// halves are set.
type SortSpec struct {
	Field     Field
	Direction SortDirection
}

// Active reports whether the spec sorts anything.
func (s SortSpec) Active() bool {
	return s.Field != SortNone && s.Direction != DirNone
}

// Cycle advances the spec for a header click on field:
// none -> asc -> desc -> none on the same column; a different column starts
// at asc.
func (s SortSpec) Cycle(field Field) SortSpec {
	if s.Field != field {
		return SortSpec{Field: field, Direction: DirAsc}
	}
	switch s.Direction {
	case DirAsc:
		return SortSpec{Field: field, Direction: DirDesc}
	case DirDesc:
		return SortSpec{}
	default:
		return SortSpec{Field: field, Direction: DirAsc}
	}
}

// Indicator is the header glyph for column field.
func (s SortSpec) Indicator(field Field) string {
	if s.Field != field {
		return "↕"
	}
	switch s.Direction {
	case DirAsc:
		return "↑"
	case DirDesc:
		return "↓"
	}
	return "↕"
}

// sortRecords orders rows by the raw string value of the column. Dates are
// compared as the strings they are stored as, not parsed.
func sortRecords[R Record](rows []R, spec SortSpec) {
	if !spec.Active() {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Field(spec.Field), rows[j].Field(spec.Field)
		if spec.Direction == DirDesc {
			return a > b
		}
		return a < b
	})
}
