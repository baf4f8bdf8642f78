package table

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Render writes the view as tab-aligned text followed by a pager line.
func (t *Table[T]) Render(w io.Writer, v View[T]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = strings.ToUpper(c.Header)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, r := range v.Rows {
		cells := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cells[i] = c.Value(r)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "page %d/%d, %d rows\n", v.Page, v.TotalPages, v.Total)
	return err
}
