package executor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// cellWidth is the minimum width of a rendered cell; longer values overflow.
const cellWidth = 15

// Result is the generic query result returned to the caller.
type Result struct {
	Columns []string
	Rows    [][]string

	// For DML:
	AffectedRows int64

	Message string
}

// IsQuery reports whether the result carries a row set.
func (r *Result) IsQuery() bool { return r.Columns != nil }

// Render returns the row table for queries and the message otherwise.
func (r *Result) Render() string {
	if !r.IsQuery() {
		return r.Message
	}
	var sb strings.Builder
	_ = r.RenderTable(&sb)
	return strings.TrimSuffix(sb.String(), "\n")
}

// RenderTable writes a header line, a dash rule and one line per row. Cells
// are right-aligned and separated by '|'.
func (r *Result) RenderTable(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeLine(bw, r.Columns)
	n := len(r.Columns)
	rule := 0
	if n > 0 {
		rule = cellWidth*n + n - 1
	}
	bw.WriteString(strings.Repeat("-", rule))
	bw.WriteByte('\n')
	for _, row := range r.Rows {
		writeLine(bw, row)
	}
	return bw.Flush()
}

func writeLine(w *bufio.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			w.WriteByte('|')
		}
		fmt.Fprintf(w, "%*s", cellWidth, c)
	}
	w.WriteByte('\n')
}
