package ingest

import (
	"fmt"
	"strings"

	"sheetdesk/domain/table"
)

// Common key column names to check, in preference order
var commonKeyColumns = []string{
	"id",
	"entity_id",
	"customer_id",
	"user_id",
	"account_id",
	"record_id",
	"key",
	"primary_key",
}

// DetectKeyColumn automatically detects a column suitable as a row identity
// for first-column-key reconciliation. Columns with a well-known key name
// win; otherwise the first column is accepted if its values are mostly
// non-empty and mostly unique.
func DetectKeyColumn(t table.Table) (string, error) {
	if len(t.Rows) == 0 {
		return "", fmt.Errorf("no data rows found")
	}

	for _, colName := range commonKeyColumns {
		for _, header := range t.Headers {
			if strings.ToLower(header) == colName {
				if isValidKeyColumn(t, header) {
					return header, nil
				}
			}
		}
	}

	// Fall back to first column if no common names found
	if len(t.Headers) > 0 {
		firstCol := t.Headers[0]
		if isValidKeyColumn(t, firstCol) {
			return firstCol, nil
		}
	}

	return "", fmt.Errorf("could not detect a valid key column")
}

// isValidKeyColumn checks if a column is suitable as a row identity
func isValidKeyColumn(t table.Table, columnName string) bool {
	values := make(map[string]bool)
	emptyCount := 0

	for _, row := range t.Rows {
		cell := row[columnName]
		if cell.IsNull() || cell.String() == "" {
			emptyCount++
		} else {
			values[cell.String()] = true
		}
	}

	// Key column should have mostly non-empty, somewhat unique values
	totalRows := len(t.Rows)
	emptyRatio := float64(emptyCount) / float64(totalRows)
	uniqueRatio := float64(len(values)) / float64(totalRows)

	return emptyRatio < 0.5 && uniqueRatio > 0.5
}
