package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetdesk/domain/table"
	"sheetdesk/ports"
)

// DataDecoder decodes Excel and CSV uploads into a raw cell matrix
type DataDecoder struct{}

// NewDataDecoder creates a decoder handling both Excel and CSV content
func NewDataDecoder() *DataDecoder {
	return &DataDecoder{}
}

var _ ports.DecoderPort = (*DataDecoder)(nil)

// DecodeFirstSheet reads the first sheet of the workbook (or the whole CSV
// stream) into a raw matrix of typed cells. Empty cells become null.
func (d *DataDecoder) DecodeFirstSheet(ctx context.Context, r io.Reader, filename string) (table.RawMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	log.Printf("[Decoder] Starting to decode %s file: %s", ext, filename)

	if ext == ".csv" {
		return d.decodeCSV(r)
	}
	return d.decodeWorkbook(r)
}

// decodeWorkbook reads the first sheet of an xlsx/xlsm workbook, preserving
// Excel's native cell types
func (d *DataDecoder) decodeWorkbook(r io.Reader) (table.RawMatrix, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	log.Printf("[Decoder] Sheet %q read in %.2fms (%d rows)",
		sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	matrix := make(table.RawMatrix, len(rows))
	for i, row := range rows {
		cells := make([]table.Scalar, len(row))
		for j, value := range row {
			cellRef := fmt.Sprintf("%s%d", columnIndexToLetter(j), i+1)
			cellType, err := f.GetCellType(sheet, cellRef)
			if err != nil {
				cellType = excelize.CellTypeUnset
			}
			cells[j] = cellScalar(value, cellType)
		}
		matrix[i] = cells
	}

	return matrix, nil
}

// decodeCSV reads CSV content; cell types are inferred from the string
// values since CSV carries none
func (d *DataDecoder) decodeCSV(r io.Reader) (table.RawMatrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports are frequently ragged

	startTime := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV content: %w", err)
	}
	log.Printf("[Decoder] CSV content read in %.2fms (%d rows)",
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	matrix := make(table.RawMatrix, len(rows))
	for i, row := range rows {
		cells := make([]table.Scalar, len(row))
		for j, value := range row {
			cells[j] = stringScalar(value)
		}
		matrix[i] = cells
	}

	return matrix, nil
}

// cellScalar converts one worksheet cell using Excel's native type as a hint
func cellScalar(value string, cellType excelize.CellType) table.Scalar {
	if strings.TrimSpace(value) == "" {
		return table.NewNullScalar()
	}

	switch cellType {
	case excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return table.NewNumberScalar(n)
		}
	case excelize.CellTypeBool:
		switch strings.TrimSpace(value) {
		case "TRUE", "1":
			return table.NewBoolScalar(true)
		case "FALSE", "0":
			return table.NewBoolScalar(false)
		}
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return table.NewTextScalar(value)
	}

	// Formula results and shared strings land here; fall back to string
	// inference so numeric formula output still compares numerically
	return stringScalar(value)
}

// stringScalar infers a typed cell from a bare string value
func stringScalar(value string) table.Scalar {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return table.NewNullScalar()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return table.NewNumberScalar(n)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return table.NewBoolScalar(true)
	case "false":
		return table.NewBoolScalar(false)
	}
	return table.NewTextScalar(value)
}

// columnIndexToLetter converts 0-based column index to Excel column letter
// (A, B, ..., Z, AA, AB, ...)
func columnIndexToLetter(colIdx int) string {
	result := ""
	colIdx++ // Excel is 1-indexed internally
	for colIdx > 0 {
		colIdx--
		result = string(rune('A'+(colIdx%26))) + result
		colIdx /= 26
	}
	return result
}
