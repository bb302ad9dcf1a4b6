package tableview

// DefaultPageSize is used when a query carries a non-positive page size.
const DefaultPageSize = 10

// Query is everything DeriveView reads besides the records.
type Query struct {
	Search   string
	Filters  Filters
	Sort     SortSpec
	Page     int
	PageSize int
}

// View is one derived page.
type View[R Record] struct {
	Items      []R
	TotalPages int
	TotalCount int
	Page       int
	PageSize   int
	// Start and End are the 1-based positions of the first and last item on
	// the page within the filtered set; both are zero for an empty page.
	Start int
	End   int
}

// Empty reports whether the page has nothing to render.
func (v View[R]) Empty() bool { return len(v.Items) == 0 }

// DeriveView filters, sorts and paginates records. It never mutates records
// and holds no state between calls.
//
// The page is not clamped: a page past the last one yields an empty slice so
// callers decide whether to move back (see ClampPage).
func DeriveView[R Record](records []R, q Query) View[R] {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	matched := Filtered(records, q.Search, q.Filters)
	sortRecords(matched, q.Sort)

	total := len(matched)
	v := View[R]{
		TotalCount: total,
		TotalPages: pageCount(total, pageSize),
		Page:       page,
		PageSize:   pageSize,
		Items:      []R{},
	}
	start := (page - 1) * pageSize
	if start >= total {
		return v
	}
	end := min(start+pageSize, total)
	v.Items = append(v.Items, matched[start:end]...)
	v.Start = start + 1
	v.End = end
	return v
}

// Filtered returns the records matching the search and filters, in input
// order, as a new slice.
func Filtered[R Record](records []R, search string, filters Filters) []R {
	out := make([]R, 0, len(records))
	for _, r := range records {
		if !matchesSearch(r, search) {
			continue
		}
		if !filters.matches(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ClampPage bounds page to [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

func pageCount(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
