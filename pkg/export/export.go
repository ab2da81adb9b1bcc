// Package export serializes an aggregate table for the API response.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/tablescrape/tablescrape/pkg/table"
)

// CSV serializes the table as comma-separated text with a header line.
func CSV(t table.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}

	return buf.Bytes(), nil
}

// Records converts the table rows into column-name -> cell mappings for
// JSON output. Duplicate column names collapse to the last occurrence,
// as JSON objects cannot carry duplicate keys.
func Records(t table.Table) []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Headers))
		for i, name := range t.Headers {
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records
}
