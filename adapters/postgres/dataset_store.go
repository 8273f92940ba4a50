package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sheetdesk/domain/core"
	"sheetdesk/ports"
)

// datasetStore implements the DatasetStorePort on a postgres key-value table
type datasetStore struct {
	db *sqlx.DB
}

// NewDatasetStore creates a new postgres-backed dataset store
func NewDatasetStore(db *sqlx.DB) ports.DatasetStorePort {
	return &datasetStore{db: db}
}

// Migrate creates the datasets table if it does not exist
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS datasets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			payload JSONB NOT NULL,
			record_count INTEGER NOT NULL DEFAULT 0,
			field_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create datasets table: %w", err)
	}
	return nil
}

// Put upserts the full dataset payload under its identifier
func (s *datasetStore) Put(ctx context.Context, record *ports.DatasetRecord) error {
	payloadJSON, err := json.Marshal(record)
	if err != nil {
		return core.NewStoreError("marshal dataset payload", err)
	}

	query := `INSERT INTO datasets (id, name, payload, record_count, field_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			payload = EXCLUDED.payload,
			record_count = EXCLUDED.record_count,
			field_count = EXCLUDED.field_count,
			updated_at = EXCLUDED.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.Name, payloadJSON,
		len(record.Table.Rows), len(record.Table.Headers),
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return core.NewStoreError("write dataset", err)
	}

	return nil
}

// Get retrieves the full dataset payload by its identifier
func (s *datasetStore) Get(ctx context.Context, id core.DatasetID) (*ports.DatasetRecord, error) {
	var payloadJSON []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM datasets WHERE id = $1`, id).Scan(&payloadJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("dataset", id.String())
		}
		return nil, core.NewStoreError("read dataset", err)
	}

	var record ports.DatasetRecord
	if err := json.Unmarshal(payloadJSON, &record); err != nil {
		return nil, core.NewStoreError("unmarshal dataset payload", err)
	}

	return &record, nil
}

// List returns summaries of all stored datasets, most recently updated first
func (s *datasetStore) List(ctx context.Context) ([]ports.DatasetSummary, error) {
	query := `SELECT id, name, record_count, field_count, updated_at
		FROM datasets ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, core.NewStoreError("list datasets", err)
	}
	defer rows.Close()

	var summaries []ports.DatasetSummary
	for rows.Next() {
		var summary ports.DatasetSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.RecordCount,
			&summary.FieldCount, &summary.UpdatedAt); err != nil {
			return nil, core.NewStoreError("scan dataset summary", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewStoreError("list datasets", err)
	}

	return summaries, nil
}

// Delete removes a dataset by its identifier
func (s *datasetStore) Delete(ctx context.Context, id core.DatasetID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return core.NewStoreError("delete dataset", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return core.NewNotFoundError("dataset", id.String())
	}
	return nil
}
