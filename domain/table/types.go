package table

import (
	"strconv"
	"strings"
)

// ScalarKind defines the storage type for cell values
type ScalarKind string

const (
	KindNull   ScalarKind = "null"
	KindText   ScalarKind = "text"
	KindNumber ScalarKind = "number"
	KindBool   ScalarKind = "bool"
)

// Scalar represents a single typed cell value with deterministic coercion.
// Exactly one payload field is set for the non-null kinds.
type Scalar struct {
	Kind      ScalarKind `json:"kind"`
	TextVal   *string    `json:"text_val,omitempty"`
	NumberVal *float64   `json:"number_val,omitempty"`
	BoolVal   *bool      `json:"bool_val,omitempty"`
}

// NewNullScalar creates a null/absent cell
func NewNullScalar() Scalar {
	return Scalar{Kind: KindNull}
}

// NewTextScalar creates a text cell
func NewTextScalar(s string) Scalar {
	return Scalar{Kind: KindText, TextVal: &s}
}

// NewNumberScalar creates a numeric cell
func NewNumberScalar(f float64) Scalar {
	return Scalar{Kind: KindNumber, NumberVal: &f}
}

// NewBoolScalar creates a boolean cell
func NewBoolScalar(b bool) Scalar {
	return Scalar{Kind: KindBool, BoolVal: &b}
}

// IsNull reports whether the cell carries no value
func (s Scalar) IsNull() bool {
	return s.Kind == KindNull
}

// IsBlank reports whether the cell is null or contains only whitespace text
func (s Scalar) IsBlank() bool {
	if s.Kind == KindNull {
		return true
	}
	if s.Kind == KindText && s.TextVal != nil {
		return strings.TrimSpace(*s.TextVal) == ""
	}
	return false
}

// String coerces the cell to its display string. Null coerces to the empty
// string; numbers render without a trailing ".0" for whole values.
func (s Scalar) String() string {
	switch s.Kind {
	case KindText:
		if s.TextVal != nil {
			return *s.TextVal
		}
	case KindNumber:
		if s.NumberVal != nil {
			return strconv.FormatFloat(*s.NumberVal, 'f', -1, 64)
		}
	case KindBool:
		if s.BoolVal != nil {
			return strconv.FormatBool(*s.BoolVal)
		}
	}
	return ""
}

// Number extracts the numeric payload, reporting whether one is present
func (s Scalar) Number() (float64, bool) {
	if s.Kind == KindNumber && s.NumberVal != nil {
		return *s.NumberVal, true
	}
	return 0, false
}

// RawMatrix is the raw rectangular grid of decoded cell values, before any
// header interpretation. Rows may be ragged.
type RawMatrix [][]Scalar

// Row maps a column header to its cell value. Every row in a table shares
// the table's exact header set; absent cells are stored as null scalars.
type Row map[string]Scalar

// IsEmpty reports whether every cell in the row is null
func (r Row) IsEmpty() bool {
	for _, v := range r {
		if !v.IsNull() {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of the row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered set of column headers plus the rows keyed by them
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// HeadersEqual reports whether the table's headers match other's in both
// name and order
func (t Table) HeadersEqual(other Table) bool {
	if len(t.Headers) != len(other.Headers) {
		return false
	}
	for i, h := range t.Headers {
		if other.Headers[i] != h {
			return false
		}
	}
	return true
}

// Validate checks the table invariant: every row's key set equals the
// header set
func (t Table) Validate() bool {
	for _, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return false
		}
		for _, h := range t.Headers {
			if _, ok := row[h]; !ok {
				return false
			}
		}
	}
	return true
}

// RowValues returns the row's cell values in header order
func (t Table) RowValues(row Row) []Scalar {
	values := make([]Scalar, len(t.Headers))
	for i, h := range t.Headers {
		values[i] = row[h]
	}
	return values
}
