package planner

import "github.com/tuannm99/novadoc/internal/record"

// Filter is a single equality predicate compared as exact text.
type Filter struct {
	Field string
	Value string
}

// Match reports whether row satisfies f. A nil filter matches every row; a
// row that lacks the field never matches.
func (f *Filter) Match(row record.Row) bool {
	if f == nil {
		return true
	}
	v, ok := row[f.Field]
	return ok && v == f.Value
}
