package ingest

import (
	"testing"

	"sheetdesk/domain/table"
)

// TestNormalizeDropsAllNullRows tests that fully blank rows carry no
// information and are dropped
func TestNormalizeDropsAllNullRows(t *testing.T) {
	matrix := table.RawMatrix{
		{text("x"), text("y")},
		{num(1), null()},
		{null(), null()},
	}
	span := HeaderSpan{RowIndex: 0, Headers: []string{"x", "y"}}

	result := Normalize(matrix, span)
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row after dropping blank rows, got %d", len(result.Rows))
	}

	row := result.Rows[0]
	if n, ok := row["x"].Number(); !ok || n != 1 {
		t.Errorf("expected x=1, got %v", row["x"])
	}
	if !row["y"].IsNull() {
		t.Errorf("expected y=null, got %v", row["y"])
	}
}

// TestNormalizePadsShortRows tests that missing trailing cells become null
func TestNormalizePadsShortRows(t *testing.T) {
	matrix := table.RawMatrix{
		{text("a"), text("b"), text("c")},
		{num(1)},
	}
	span := HeaderSpan{RowIndex: 0, Headers: []string{"a", "b", "c"}}

	result := Normalize(matrix, span)
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}

	row := result.Rows[0]
	if !row["b"].IsNull() || !row["c"].IsNull() {
		t.Errorf("expected padded null cells, got b=%v c=%v", row["b"], row["c"])
	}
	if !result.Validate() {
		t.Error("normalized table violates the key-set invariant")
	}
}

// TestNormalizeSkipsRowsBeforeHeader tests that only rows after the header
// row are normalized
func TestNormalizeSkipsRowsBeforeHeader(t *testing.T) {
	matrix := table.RawMatrix{
		{text("ignored title")},
		{text("a"), text("b")},
		{num(1), num(2)},
	}
	span := HeaderSpan{RowIndex: 1, Headers: []string{"a", "b"}}

	result := Normalize(matrix, span)
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
}

// TestNormalizeEmptyResult tests that an empty-after-filtering table is
// valid
func TestNormalizeEmptyResult(t *testing.T) {
	matrix := table.RawMatrix{
		{text("a"), text("b")},
		{null(), null()},
	}
	span := HeaderSpan{RowIndex: 0, Headers: []string{"a", "b"}}

	result := Normalize(matrix, span)
	if len(result.Rows) != 0 {
		t.Errorf("expected zero rows, got %d", len(result.Rows))
	}
	if len(result.Headers) != 2 {
		t.Errorf("expected headers preserved, got %v", result.Headers)
	}
}

// TestNormalizeIgnoresCellsBeyondSpan tests that trailing note columns
// outside the header span are discarded
func TestNormalizeIgnoresCellsBeyondSpan(t *testing.T) {
	matrix := table.RawMatrix{
		{text("a"), text("b"), null(), text("notes")},
		{num(1), num(2), null(), text("unrelated")},
	}
	span := HeaderSpan{RowIndex: 0, Headers: []string{"a", "b"}}

	result := Normalize(matrix, span)
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if len(result.Rows[0]) != 2 {
		t.Errorf("expected 2 keyed cells, got %d", len(result.Rows[0]))
	}
}
