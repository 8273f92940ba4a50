package ingest

import (
	"sheetdesk/domain/table"
)

// Normalize converts the raw positional rows after the header row into keyed
// records. Cells are zipped to header names index-by-index; missing trailing
// cells become null. Rows where every value is null carry no information and
// are dropped. Normalization never fails: an empty table is a valid result.
func Normalize(matrix table.RawMatrix, span HeaderSpan) table.Table {
	t := table.Table{Headers: span.Headers}

	for i := span.RowIndex + 1; i < len(matrix); i++ {
		raw := matrix[i]
		row := make(table.Row, len(span.Headers))
		for j, header := range span.Headers {
			if j < len(raw) {
				row[header] = raw[j]
			} else {
				row[header] = table.NewNullScalar()
			}
		}
		if row.IsEmpty() {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}
