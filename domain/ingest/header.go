package ingest

import (
	"strings"

	"sheetdesk/domain/core"
	"sheetdesk/domain/table"
)

// HeaderSpan describes the accepted header row and the contiguous run of
// valid column names starting at its first cell.
type HeaderSpan struct {
	RowIndex int      // index of the header row within the raw matrix
	Headers  []string // trimmed column names, truncated at the first blank
}

// maxHeaderScanRows bounds the fallback scan for a header row
const maxHeaderScanRows = 5

// DetectHeader locates the header row inside a raw cell matrix and computes
// the valid column span. Real-world exports often interleave a title row
// before the true header, so position alone cannot be trusted; the rules run
// in priority order:
//
//  1. accept row 1 if it has at least 3 non-empty cells, all text
//  2. accept row 2 under the same rule
//  3. scan rows 0..4 for the first row with at least 2 non-empty cells of
//     any type
func DetectHeader(matrix table.RawMatrix) (HeaderSpan, error) {
	if len(matrix) < 2 {
		return HeaderSpan{}, core.NewMalformedInputError("insufficient data", nil)
	}

	rowIndex := -1
	for _, idx := range []int{1, 2} {
		if idx < len(matrix) && isTextHeaderRow(matrix[idx]) {
			rowIndex = idx
			break
		}
	}

	if rowIndex < 0 {
		limit := maxHeaderScanRows
		if limit > len(matrix) {
			limit = len(matrix)
		}
		for idx := 0; idx < limit; idx++ {
			if countNonEmpty(matrix[idx]) >= 2 {
				rowIndex = idx
				break
			}
		}
	}

	if rowIndex < 0 {
		return HeaderSpan{}, core.ErrHeaderNotFound
	}

	headers := headerSpan(matrix[rowIndex])
	if len(headers) == 0 {
		return HeaderSpan{}, core.ErrNoValidColumns
	}

	return HeaderSpan{RowIndex: rowIndex, Headers: headers}, nil
}

// isTextHeaderRow reports whether the row qualifies under the strict rule:
// at least 3 non-empty cells, and every non-empty cell is text
func isTextHeaderRow(row []table.Scalar) bool {
	nonEmpty := 0
	for _, cell := range row {
		if cell.IsBlank() {
			continue
		}
		if cell.Kind != table.KindText {
			return false
		}
		nonEmpty++
	}
	return nonEmpty >= 3
}

func countNonEmpty(row []table.Scalar) int {
	n := 0
	for _, cell := range row {
		if !cell.IsBlank() {
			n++
		}
	}
	return n
}

// headerSpan walks the accepted header row left to right and stops at the
// first blank cell. Column ranges are often followed by unrelated trailing
// notes columns after a gap; those are discarded.
func headerSpan(row []table.Scalar) []string {
	var headers []string
	for _, cell := range row {
		if cell.IsBlank() {
			break
		}
		headers = append(headers, strings.TrimSpace(cell.String()))
	}
	return headers
}
