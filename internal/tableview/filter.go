package tableview

import (
	"sort"
	"strings"
)

// Field names a record column the engine can read.
type Field string

const (
	FieldName      Field = "name"
	FieldType      Field = "type"
	FieldStatus    Field = "status"
	FieldCreatedAt Field = "createdAt"
	FieldCreatedBy Field = "createdBy"
)

// Record is the minimum the engine needs from a row. Identity is owned by the
// host; the engine only reads it.
type Record interface {
	RecordID() int
	Field(f Field) string
}

// searchFields are OR-ed together by matchesSearch.
var searchFields = []Field{FieldName, FieldType, FieldCreatedBy}

// Filters restricts records to a set of types and a set of statuses. An empty
// set means no restriction on that column.
type Filters struct {
	Types    map[string]bool
	Statuses map[string]bool
}

// NewFilters builds a Filters value from option lists.
func NewFilters(types, statuses []string) Filters {
	f := Filters{Types: map[string]bool{}, Statuses: map[string]bool{}}
	for _, t := range types {
		f.Types[t] = true
	}
	for _, s := range statuses {
		f.Statuses[s] = true
	}
	return f
}

// Empty reports whether neither column is restricted.
func (f Filters) Empty() bool {
	return len(f.Types) == 0 && len(f.Statuses) == 0
}

// Count is the number of selected options across both columns.
func (f Filters) Count() int {
	return len(f.Types) + len(f.Statuses)
}

// TypeList returns the selected types in sorted order.
func (f Filters) TypeList() []string { return sortedKeys(f.Types) }

// StatusList returns the selected statuses in sorted order.
func (f Filters) StatusList() []string { return sortedKeys(f.Statuses) }

// ToggleType returns a copy with the type option flipped.
func (f Filters) ToggleType(value string) Filters {
	out := f.clone()
	if out.Types[value] {
		delete(out.Types, value)
	} else {
		out.Types[value] = true
	}
	return out
}

// ToggleStatus returns a copy with the status option flipped.
func (f Filters) ToggleStatus(value string) Filters {
	out := f.clone()
	if out.Statuses[value] {
		delete(out.Statuses, value)
	} else {
		out.Statuses[value] = true
	}
	return out
}

func (f Filters) clone() Filters {
	out := Filters{
		Types:    make(map[string]bool, len(f.Types)),
		Statuses: make(map[string]bool, len(f.Statuses)),
	}
	for k, v := range f.Types {
		if v {
			out.Types[k] = true
		}
	}
	for k, v := range f.Statuses {
		if v {
			out.Statuses[k] = true
		}
	}
	return out
}

func (f Filters) matches(r Record) bool {
	if len(f.Types) > 0 && !f.Types[r.Field(FieldType)] {
		return false
	}
	if len(f.Statuses) > 0 && !f.Statuses[r.Field(FieldStatus)] {
		return false
	}
	return true
}

func matchesSearch(r Record, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range searchFields {
		if strings.Contains(strings.ToLower(r.Field(f)), q) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
