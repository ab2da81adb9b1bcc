package export

import (
	"reflect"
	"testing"

	"github.com/tablescrape/tablescrape/pkg/table"
)

func sampleTable() table.Table {
	return table.Table{
		Headers: []string{"Name", "Age"},
		Rows: [][]string{
			{"alice", "30"},
			{"bob", "25"},
		},
	}
}

func TestCSV(t *testing.T) {
	got, err := CSV(sampleTable())
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}
	want := "Name,Age\nalice,30\nbob,25\n"
	if string(got) != want {
		t.Errorf("CSV = %q, want %q", got, want)
	}
}

func TestCSV_QuotesSpecialCharacters(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"a", "b"},
		Rows:    [][]string{{"has,comma", `has"quote`}},
	}
	got, err := CSV(tbl)
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}
	want := "a,b\n\"has,comma\",\"has\"\"quote\"\n"
	if string(got) != want {
		t.Errorf("CSV = %q, want %q", got, want)
	}
}

func TestRecords(t *testing.T) {
	got := Records(sampleTable())
	want := []map[string]string{
		{"Name": "alice", "Age": "30"},
		{"Name": "bob", "Age": "25"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Records = %v, want %v", got, want)
	}
}

func TestRecords_EmptyTable(t *testing.T) {
	got := Records(table.Table{Headers: []string{"a"}})
	if len(got) != 0 {
		t.Errorf("Records of empty table = %v, want empty", got)
	}
}
