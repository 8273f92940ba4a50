package app

import (
	"context"
	"io"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"sheetdesk/domain/core"
	"sheetdesk/domain/ingest"
	"sheetdesk/domain/profile"
	"sheetdesk/domain/reconcile"
	"sheetdesk/domain/table"
	"sheetdesk/ports"
)

// ImportService orchestrates one spreadsheet import: decode, header
// detection, normalization, reconciliation against the stored table, and
// the write-through of the merged result.
type ImportService struct {
	decoder       ports.DecoderPort
	store         ports.DatasetStorePort
	policy        reconcile.IdentityPolicy
	profileConfig profile.ProfileConfig

	// Imports for the same dataset must never run concurrently; duplicate
	// requests in flight share the first one's outcome.
	group singleflight.Group
}

// ImportResult summarizes one completed import
type ImportResult struct {
	DatasetID core.DatasetID   `json:"dataset_id"`
	Headers   []string         `json:"headers"`
	RowCount  int              `json:"row_count"`
	Report    reconcile.Report `json:"report"`
	Created   bool             `json:"created"`
}

// NewImportService creates an import service using the given identity policy
func NewImportService(decoder ports.DecoderPort, store ports.DatasetStorePort, policy reconcile.IdentityPolicy) *ImportService {
	return &ImportService{
		decoder:       decoder,
		store:         store,
		policy:        policy,
		profileConfig: profile.DefaultProfileConfig(),
	}
}

// Import runs the full ingestion flow for one uploaded file. The merge is
// all-or-nothing: any failure before the final write leaves the stored
// dataset untouched.
func (s *ImportService) Import(ctx context.Context, id core.DatasetID, name string, content io.Reader, filename string) (*ImportResult, error) {
	v, err, _ := s.group.Do(id.String(), func() (interface{}, error) {
		return s.runImport(ctx, id, name, content, filename)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ImportResult), nil
}

func (s *ImportService) runImport(ctx context.Context, id core.DatasetID, name string, content io.Reader, filename string) (*ImportResult, error) {
	startTime := time.Now()

	matrix, err := s.decoder.DecodeFirstSheet(ctx, content, filename)
	if err != nil {
		return nil, core.NewMalformedInputError("decode failed", err)
	}

	span, err := ingest.DetectHeader(matrix)
	if err != nil {
		return nil, err
	}

	incoming := ingest.Normalize(matrix, span)
	log.Printf("[ImportService] %s normalized (%d columns, %d rows, header at row %d)",
		filename, len(incoming.Headers), len(incoming.Rows), span.RowIndex)

	record, err := s.store.Get(ctx, id)
	created := false
	switch {
	case err == nil:
	case core.IsNotFoundError(err):
		created = true
		record = &ports.DatasetRecord{
			ID:        id,
			Name:      name,
			Table:     table.Table{Headers: incoming.Headers},
			CreatedAt: time.Now(),
		}
	default:
		return nil, err
	}

	result, err := reconcile.Merge(record.Table, incoming, s.policy)
	if err != nil {
		return nil, err
	}

	record.Table = result.Merged
	record.Profile = profile.ProfileTable(result.Merged, s.profileConfig)
	if keyCol, err := ingest.DetectKeyColumn(result.Merged); err == nil {
		record.KeyColumn = keyCol
	}
	if len(record.VisibleColumns) == 0 {
		record.VisibleColumns = append([]string(nil), result.Merged.Headers...)
	}
	if name != "" {
		record.Name = name
	}
	record.UpdatedAt = time.Now()

	if err := s.store.Put(ctx, record); err != nil {
		return nil, err
	}

	log.Printf("[ImportService] dataset %s merged in %.2fms (%d updated, %d new, %d total rows)",
		id, float64(time.Since(startTime).Nanoseconds())/1e6,
		len(result.Report.UpdatedKeys), len(result.Report.NewKeys), len(result.Merged.Rows))

	return &ImportResult{
		DatasetID: id,
		Headers:   result.Merged.Headers,
		RowCount:  len(result.Merged.Rows),
		Report:    result.Report,
		Created:   created,
	}, nil
}
