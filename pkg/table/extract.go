package table

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Locate parses the HTML document, collects the elements matching the
// spec's selector in document order, and returns the one at the spec's
// index. Returns false when nothing matches or the index is out of
// range.
func Locate(html string, spec Spec) (*goquery.Selection, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}

	matches := doc.Find(spec.Selector)
	if matches.Length() == 0 || spec.Index >= matches.Length() {
		return nil, false
	}
	return matches.Eq(spec.Index), true
}

// Extract derives column names from the located table and returns them
// together with the data rows. Returns false when the table has no
// rows at all.
//
// Strategy th uses the first row's <th> cells as headers; first_row
// uses its <td> cells; auto tries th then first_row. When the chosen
// strategy yields headers, the first row is excluded from the data.
// When neither applies, synthetic col_1..col_n headers are generated
// from the first row's cell count (minimum 1) and every row, the first
// included, is data.
func Extract(tbl *goquery.Selection, strategy HeaderStrategy) ([]string, []*goquery.Selection, bool) {
	rows := selections(tbl.Find("tr"))
	if len(rows) == 0 {
		return nil, nil, false
	}

	if strategy == HeaderAuto || strategy == HeaderTH {
		if headers, ok := headerTexts(rows[0].Find("th")); ok {
			return headers, rows[1:], true
		}
	}

	if strategy == HeaderAuto || strategy == HeaderFirstRow {
		if headers, ok := headerTexts(rows[0].Find("td")); ok {
			return headers, rows[1:], true
		}
	}

	// Fallback: synthesize positional names and keep the first row as data.
	n := rows[0].Find("th, td").Length()
	if n < 1 {
		n = 1
	}
	headers := make([]string, n)
	for i := range headers {
		headers[i] = fmt.Sprintf("col_%d", i+1)
	}
	return headers, rows, true
}

// NormalizeRow extracts the trimmed cell texts of a data row and fits
// them to the header column count: short rows are padded with empty
// strings, long rows truncated. A row without any cells is discarded
// (returns false).
func NormalizeRow(row *goquery.Selection, ncols int) ([]string, bool) {
	cells := row.Find("th, td")
	if cells.Length() == 0 {
		return nil, false
	}

	vals := make([]string, 0, ncols)
	cells.EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if i >= ncols {
			return false
		}
		vals = append(vals, strings.TrimSpace(cell.Text()))
		return true
	})
	for len(vals) < ncols {
		vals = append(vals, "")
	}
	return vals, true
}

// FromHTML runs the full per-page pipeline: locate the table, infer
// headers, normalize the data rows. Returns false when the page
// contributes no data (no matching table, no rows, or all rows empty).
func FromHTML(html string, spec Spec) (Table, bool) {
	tbl, ok := Locate(html, spec)
	if !ok {
		return Table{}, false
	}

	headers, dataRows, ok := Extract(tbl, spec.Headers)
	if !ok {
		return Table{}, false
	}

	out := Table{Headers: headers}
	for _, row := range dataRows {
		if vals, ok := NormalizeRow(row, len(headers)); ok {
			out.Rows = append(out.Rows, vals)
		}
	}
	if out.Empty() {
		return Table{}, false
	}
	return out, true
}

// headerTexts turns a cell selection into header labels, substituting
// col_<position> for cells whose text is empty after trimming.
// Returns false when the selection has no cells.
func headerTexts(cells *goquery.Selection) ([]string, bool) {
	if cells.Length() == 0 {
		return nil, false
	}
	headers := make([]string, 0, cells.Length())
	cells.Each(func(i int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		if text == "" {
			text = fmt.Sprintf("col_%d", i+1)
		}
		headers = append(headers, text)
	})
	return headers, true
}

// selections flattens a goquery selection into per-node selections.
func selections(sel *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}
