// Package table is the console's client-side data table: search, sort and
// paginate rows already fetched from the API, then render them as aligned
// text.
package table

import (
	"fmt"
	"slices"
	"strings"
)

const DefaultPageSize = 10

type Column[T any] struct {
	Key    string
	Header string
	Value  func(T) string
	// Less orders rows for this column; when nil, Value strings are compared.
	Less       func(a, b T) bool
	Sortable   bool
	Searchable bool
}

type Table[T any] struct {
	Columns []Column[T]
}

// State is the user's current view of the table.
type State struct {
	Search   string
	SortKey  string
	SortDesc bool
	Page     int
	PageSize int
}

// View is the visible slice of rows plus the numbers needed for a pager.
type View[T any] struct {
	Rows       []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

func (t *Table[T]) column(key string) (Column[T], bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Apply filters rows by a case-insensitive substring match on searchable
// columns, sorts them stably by SortKey and cuts out the requested page. The
// page is clamped into range. rows is not modified.
func (t *Table[T]) Apply(rows []T, st State) (View[T], error) {
	filtered := t.filter(rows, st.Search)

	if st.SortKey != "" {
		col, ok := t.column(st.SortKey)
		if !ok || !col.Sortable {
			return View[T]{}, fmt.Errorf("column %q is not sortable", st.SortKey)
		}
		less := col.Less
		if less == nil {
			less = func(a, b T) bool { return col.Value(a) < col.Value(b) }
		}
		slices.SortStableFunc(filtered, func(a, b T) int {
			if st.SortDesc {
				a, b = b, a
			}
			switch {
			case less(a, b):
				return -1
			case less(b, a):
				return 1
			}
			return 0
		})
	}

	size := st.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (len(filtered) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	page := min(max(st.Page, 1), totalPages)

	start := min((page-1)*size, len(filtered))
	end := min(start+size, len(filtered))

	return View[T]{
		Rows:       filtered[start:end],
		Total:      len(filtered),
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}, nil
}

func (t *Table[T]) filter(rows []T, search string) []T {
	out := make([]T, 0, len(rows))
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return append(out, rows...)
	}
	for _, r := range rows {
		for _, c := range t.Columns {
			if c.Searchable && strings.Contains(strings.ToLower(c.Value(r)), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
