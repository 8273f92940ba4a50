package ports

import (
	"context"
	"io"

	"sheetdesk/domain/table"
)

// DecoderPort turns raw spreadsheet bytes into a raw cell matrix for the
// first contained sheet. Decode failures and too-little-data results are
// surfaced by the caller as malformed input; the decoder itself makes no
// promises about header structure.
type DecoderPort interface {
	DecodeFirstSheet(ctx context.Context, r io.Reader, filename string) (table.RawMatrix, error)
}
