// Package table locates an HTML table via a CSS selector, infers its
// column headers and extracts its rows as trimmed string cells.
//
// Parsing is delegated to goquery (net/html underneath), which parses
// malformed markup the way browsers do and never fails outright; a
// document that yields no matching table simply produces no result.
package table

// Table is a positional table of string cells. Every row holds exactly
// len(Headers) cells after extraction; columns are matched by position,
// never by name.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table holds no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Append stacks the rows of other onto t. Column counts are expected to
// match; other's cells beyond t's column count are dropped, missing
// cells are filled with empty strings.
func (t *Table) Append(other Table) {
	ncols := len(t.Headers)
	for _, row := range other.Rows {
		t.Rows = append(t.Rows, fitRow(row, ncols))
	}
}

// fitRow pads or truncates row to exactly ncols cells.
func fitRow(row []string, ncols int) []string {
	if len(row) == ncols {
		return row
	}
	fitted := make([]string, ncols)
	copy(fitted, row)
	return fitted
}
