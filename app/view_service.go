package app

import (
	"context"

	"sheetdesk/domain/core"
	"sheetdesk/domain/query"
	"sheetdesk/domain/table"
	"sheetdesk/domain/viewport"
	"sheetdesk/ports"
)

// ViewService answers filtered, sorted, windowed row queries over stored
// datasets. It holds no state of its own: the same request against the same
// stored table always yields the same response.
type ViewService struct {
	store ports.DatasetStorePort
}

// NewViewService creates a view service over the dataset store
func NewViewService(store ports.DatasetStorePort) *ViewService {
	return &ViewService{store: store}
}

// RowsRequest carries the applied filter state, sort state, and scroll
// geometry for one recomputation
type RowsRequest struct {
	Filters  query.Filters
	Sort     *query.SortState
	Geometry viewport.Geometry
}

// RowsResponse is the only interface the display layer needs: the visible
// row slice plus pad sizes
type RowsResponse struct {
	Headers     []string        `json:"headers"`
	Rows        []table.Row     `json:"rows"`
	Window      viewport.Window `json:"window"`
	TotalRows   int             `json:"total_rows"`
	MatchedRows int             `json:"matched_rows"`
}

// VisibleRows runs the query pipeline over the stored table and materializes
// only the rows the viewport needs
func (s *ViewService) VisibleRows(ctx context.Context, id core.DatasetID, req RowsRequest) (*RowsResponse, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	matched := query.Apply(record.Table.Rows, req.Filters, req.Sort)
	window := viewport.Compute(len(matched), req.Geometry)

	visible := []table.Row{}
	if window.Count() > 0 {
		visible = matched[window.StartIndex : window.EndIndex+1]
	}

	return &RowsResponse{
		Headers:     record.Table.Headers,
		Rows:        visible,
		Window:      window,
		TotalRows:   len(record.Table.Rows),
		MatchedRows: len(matched),
	}, nil
}

// Dataset returns the stored record for one dataset
func (s *ViewService) Dataset(ctx context.Context, id core.DatasetID) (*ports.DatasetRecord, error) {
	return s.store.Get(ctx, id)
}

// ListDatasets returns summaries of all stored datasets
func (s *ViewService) ListDatasets(ctx context.Context) ([]ports.DatasetSummary, error) {
	return s.store.List(ctx)
}

// DeleteDataset removes a dataset from the store
func (s *ViewService) DeleteDataset(ctx context.Context, id core.DatasetID) error {
	return s.store.Delete(ctx, id)
}
