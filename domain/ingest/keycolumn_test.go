package ingest

import (
	"testing"

	"sheetdesk/domain/table"
)

// TestDetectKeyColumnCommonName tests that a well-known key name wins over
// the first column
func TestDetectKeyColumnCommonName(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"Name", "Customer_ID"},
		Rows: []table.Row{
			{"Name": text("Ana"), "Customer_ID": text("c1")},
			{"Name": text("Bo"), "Customer_ID": text("c2")},
			{"Name": text("Cy"), "Customer_ID": text("c3")},
		},
	}

	col, err := DetectKeyColumn(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col != "Customer_ID" {
		t.Errorf("expected Customer_ID, got %s", col)
	}
}

// TestDetectKeyColumnFirstColumnFallback tests the fallback when no common
// name matches
func TestDetectKeyColumnFirstColumnFallback(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"Code", "Label"},
		Rows: []table.Row{
			{"Code": text("a"), "Label": text("x")},
			{"Code": text("b"), "Label": text("x")},
		},
	}

	col, err := DetectKeyColumn(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col != "Code" {
		t.Errorf("expected Code, got %s", col)
	}
}

// TestDetectKeyColumnRejectsLowCardinality tests that a mostly-duplicate
// first column is not accepted
func TestDetectKeyColumnRejectsLowCardinality(t *testing.T) {
	tbl := table.Table{
		Headers: []string{"Dept", "Name"},
		Rows: []table.Row{
			{"Dept": text("Math"), "Name": text("Ana")},
			{"Dept": text("Math"), "Name": text("Bo")},
			{"Dept": text("Math"), "Name": text("Cy")},
			{"Dept": text("Math"), "Name": text("Di")},
		},
	}

	if _, err := DetectKeyColumn(tbl); err == nil {
		t.Error("expected detection to fail for a low-cardinality first column")
	}
}

// TestDetectKeyColumnEmptyTable tests failure on zero rows
func TestDetectKeyColumnEmptyTable(t *testing.T) {
	tbl := table.Table{Headers: []string{"id"}}
	if _, err := DetectKeyColumn(tbl); err == nil {
		t.Error("expected error for empty table")
	}
}
