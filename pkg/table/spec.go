package table

import "fmt"

// HeaderStrategy selects how column names are derived from a table.
type HeaderStrategy string

const (
	// HeaderAuto tries HeaderTH first, then HeaderFirstRow.
	HeaderAuto HeaderStrategy = "auto"

	// HeaderTH uses the <th> cells of the first row as column names.
	HeaderTH HeaderStrategy = "th"

	// HeaderFirstRow uses the <td> cells of the first row as column names.
	HeaderFirstRow HeaderStrategy = "first_row"
)

// ParseStrategy validates the string form of a header strategy.
func ParseStrategy(s string) (HeaderStrategy, error) {
	switch HeaderStrategy(s) {
	case HeaderAuto, HeaderTH, HeaderFirstRow:
		return HeaderStrategy(s), nil
	default:
		return "", fmt.Errorf("invalid header strategy %q (must be auto, th or first_row)", s)
	}
}

// Spec identifies which table to extract from a page and how to read it.
// Immutable; constructed once per request.
type Spec struct {
	// Selector is the CSS selector matching candidate table elements.
	Selector string

	// Index picks among the selector matches, in document order.
	Index int

	// Headers is the column-name derivation strategy.
	Headers HeaderStrategy
}

// DefaultSpec returns the default table specification: the first
// <table> element with automatic header inference.
func DefaultSpec() Spec {
	return Spec{
		Selector: "table",
		Index:    0,
		Headers:  HeaderAuto,
	}
}
