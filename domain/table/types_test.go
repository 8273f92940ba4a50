package table

import (
	"testing"
)

// TestScalarString tests display-string coercion for every kind
func TestScalarString(t *testing.T) {
	tests := []struct {
		name     string
		scalar   Scalar
		expected string
	}{
		{"null", NewNullScalar(), ""},
		{"text", NewTextScalar("hello"), "hello"},
		{"whole number", NewNumberScalar(2), "2"},
		{"fractional number", NewNumberScalar(2.5), "2.5"},
		{"bool true", NewBoolScalar(true), "true"},
		{"bool false", NewBoolScalar(false), "false"},
	}

	for _, test := range tests {
		if got := test.scalar.String(); got != test.expected {
			t.Errorf("%s: expected %q, got %q", test.name, test.expected, got)
		}
	}
}

// TestScalarIsBlank tests blank detection for null and whitespace text
func TestScalarIsBlank(t *testing.T) {
	tests := []struct {
		name     string
		scalar   Scalar
		expected bool
	}{
		{"null", NewNullScalar(), true},
		{"empty text", NewTextScalar(""), true},
		{"whitespace text", NewTextScalar("   "), true},
		{"text", NewTextScalar("x"), false},
		{"zero number", NewNumberScalar(0), false},
		{"false bool", NewBoolScalar(false), false},
	}

	for _, test := range tests {
		if got := test.scalar.IsBlank(); got != test.expected {
			t.Errorf("%s: expected IsBlank=%v, got %v", test.name, test.expected, got)
		}
	}
}

// TestScalarNumber tests numeric payload extraction
func TestScalarNumber(t *testing.T) {
	if _, ok := NewTextScalar("5").Number(); ok {
		t.Error("text scalar should not report a numeric payload")
	}
	n, ok := NewNumberScalar(5).Number()
	if !ok || n != 5 {
		t.Errorf("expected (5, true), got (%v, %v)", n, ok)
	}
}

// TestRowIsEmpty tests the all-null row check
func TestRowIsEmpty(t *testing.T) {
	empty := Row{"a": NewNullScalar(), "b": NewNullScalar()}
	if !empty.IsEmpty() {
		t.Error("expected all-null row to be empty")
	}

	partial := Row{"a": NewNumberScalar(1), "b": NewNullScalar()}
	if partial.IsEmpty() {
		t.Error("expected row with one value to not be empty")
	}
}

// TestHeadersEqual tests header comparison in both name and order
func TestHeadersEqual(t *testing.T) {
	base := Table{Headers: []string{"A", "B"}}

	tests := []struct {
		name     string
		other    Table
		expected bool
	}{
		{"identical", Table{Headers: []string{"A", "B"}}, true},
		{"different name", Table{Headers: []string{"A", "C"}}, false},
		{"different order", Table{Headers: []string{"B", "A"}}, false},
		{"different length", Table{Headers: []string{"A", "B", "C"}}, false},
	}

	for _, test := range tests {
		if got := base.HeadersEqual(test.other); got != test.expected {
			t.Errorf("%s: expected %v, got %v", test.name, test.expected, got)
		}
	}
}

// TestTableValidate tests the row key-set invariant
func TestTableValidate(t *testing.T) {
	valid := Table{
		Headers: []string{"x", "y"},
		Rows: []Row{
			{"x": NewNumberScalar(1), "y": NewNullScalar()},
		},
	}
	if !valid.Validate() {
		t.Error("expected table with matching key sets to validate")
	}

	invalid := Table{
		Headers: []string{"x", "y"},
		Rows: []Row{
			{"x": NewNumberScalar(1), "z": NewNullScalar()},
		},
	}
	if invalid.Validate() {
		t.Error("expected table with mismatched key set to fail validation")
	}
}

// TestRowValues tests header-ordered value extraction
func TestRowValues(t *testing.T) {
	tbl := Table{Headers: []string{"b", "a"}}
	row := Row{"a": NewTextScalar("1"), "b": NewTextScalar("2")}

	values := tbl.RowValues(row)
	if len(values) != 2 || values[0].String() != "2" || values[1].String() != "1" {
		t.Errorf("expected values in header order [2 1], got %v", values)
	}
}
