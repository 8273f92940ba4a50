package ports

import (
	"context"
	"time"

	"sheetdesk/domain/core"
	"sheetdesk/domain/profile"
	"sheetdesk/domain/table"
)

// DatasetRecord is the full stored payload for one dataset: the canonical
// merged table plus display metadata and timestamps.
type DatasetRecord struct {
	ID             core.DatasetID          `json:"id"`
	Name           string                  `json:"name"`
	Table          table.Table             `json:"table"`
	VisibleColumns []string                `json:"visible_columns"`
	KeyColumn      string                  `json:"key_column,omitempty"`
	Profile        []profile.ColumnProfile `json:"profile,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// DatasetSummary is the listing view of a stored dataset
type DatasetSummary struct {
	ID          core.DatasetID `json:"id"`
	Name        string         `json:"name"`
	RecordCount int            `json:"record_count"`
	FieldCount  int            `json:"field_count"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DatasetStorePort is the key-value persistence boundary, keyed by dataset
// identifier. Read/write failures are reported to the caller and never
// retried internally.
type DatasetStorePort interface {
	Get(ctx context.Context, id core.DatasetID) (*DatasetRecord, error)
	Put(ctx context.Context, record *DatasetRecord) error
	List(ctx context.Context) ([]DatasetSummary, error)
	Delete(ctx context.Context, id core.DatasetID) error
}
