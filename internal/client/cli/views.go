package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/examprep-admin/internal/client/models"
	"github.com/dmitrijs2005/examprep-admin/internal/client/table"
)

// columnsByResource are the JSON fields shown by "list".
var columnsByResource = map[string][]string{
	"categories": {"id", "name", "slug", "isActive"},
	"subjects":   {"id", "name", "categoryId", "isActive"},
	"topics":     {"id", "name", "subjectId", "isActive"},
	"questions":  {"id", "topicId", "difficulty", "text"},
	"tests":      {"id", "title", "durationMinutes", "totalMarks", "isPublished"},
	"plans":      {"id", "name", "price", "currency", "durationDays", "isActive"},
	"users":      {"id", "name", "email", "planName", "isActive"},
	"payments":   {"id", "userEmail", "amount", "currency", "status", "createdAt"},
}

func listColumns(resource string) []string {
	if cols, ok := columnsByResource[resource]; ok {
		return cols
	}
	return []string{"id"}
}

type row = map[string]any

// toRows flattens typed items into their JSON field maps.
func toRows(items []any) ([]row, error) {
	rows := make([]row, 0, len(items))
	for _, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		var r row
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

const maxCell = 48

func cell(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = fmt.Sprint(x)
	}
	if r := []rune(s); len(r) > maxCell {
		s = string(r[:maxCell-1]) + "…"
	}
	return s
}

func rowTable(cols []string) *table.Table[row] {
	t := &table.Table[row]{}
	for _, key := range cols {
		t.Columns = append(t.Columns, table.Column[row]{
			Key:    key,
			Header: key,
			Value:  func(r row) string { return cell(r[key]) },
			Less: func(a, b row) bool {
				fa, aok := a[key].(float64)
				fb, bok := b[key].(float64)
				if aok && bok {
					return fa < fb
				}
				return cell(a[key]) < cell(b[key])
			},
			Sortable:   true,
			Searchable: true,
		})
	}
	return t
}

// renderRows prints rows sorted by sortKey. The pager line reflects the
// server's pagination rather than the local slice.
func renderRows(w io.Writer, cols []string, rows []row, sortKey string, desc bool, pg models.Pagination) error {
	t := rowTable(cols)
	view, err := t.Apply(rows, table.State{SortKey: sortKey, SortDesc: desc, PageSize: max(len(rows), 1)})
	if err != nil {
		return err
	}
	view.Page = max(pg.Page, 1)
	view.TotalPages = max(pg.TotalPages, 1)
	view.Total = max(pg.Total, len(rows))
	return t.Render(w, view)
}
