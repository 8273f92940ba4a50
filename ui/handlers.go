package ui

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sheetdesk/app"
	"sheetdesk/domain/core"
	"sheetdesk/domain/query"
	"sheetdesk/domain/reconcile"
	"sheetdesk/domain/viewport"
	apperrors "sheetdesk/internal/errors"
	"sheetdesk/ports"
)

// allowedUploadExts is the caller-side admission check; the decoder itself
// only sees content it recognizes
var allowedUploadExts = map[string]bool{
	".xls":  true,
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
}

// handleImport accepts a multipart spreadsheet upload and merges it into the
// dataset
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	datasetID, err := core.ParseDatasetID(chi.URLParam(r, "datasetID"))
	if err != nil {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput(err.Error()))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput("invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput("missing file field"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		writeAppError(w, http.StatusUnsupportedMediaType,
			apperrors.UnsupportedFile("unsupported file extension: "+ext))
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(header.Filename, ext)
	}

	result, err := s.imports.Import(r.Context(), datasetID, name, file, header.Filename)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleRows answers one windowed query: applied filters, sort, and scroll
// geometry in; visible rows plus pads out
func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	datasetID, err := core.ParseDatasetID(chi.URLParam(r, "datasetID"))
	if err != nil {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput(err.Error()))
		return
	}

	req := app.RowsRequest{
		Filters:  parseFilters(r),
		Sort:     parseSort(r),
		Geometry: parseGeometry(r),
	}

	resp, err := s.views.VisibleRows(r.Context(), datasetID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	datasetID, err := core.ParseDatasetID(chi.URLParam(r, "datasetID"))
	if err != nil {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput(err.Error()))
		return
	}

	record, err := s.views.Dataset(r.Context(), datasetID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// The full table is served through /rows; the dataset endpoint carries
	// metadata only
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":              record.ID,
		"name":            record.Name,
		"headers":         record.Table.Headers,
		"visible_columns": record.VisibleColumns,
		"key_column":      record.KeyColumn,
		"record_count":    len(record.Table.Rows),
		"profile":         record.Profile,
		"created_at":      record.CreatedAt,
		"updated_at":      record.UpdatedAt,
	})
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.views.ListDatasets(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if summaries == nil {
		summaries = []ports.DatasetSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	datasetID, err := core.ParseDatasetID(chi.URLParam(r, "datasetID"))
	if err != nil {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput(err.Error()))
		return
	}

	if err := s.views.DeleteDataset(r.Context(), datasetID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseFilters extracts per-column filter strings from query parameters of
// the form filter[Column]=raw
func parseFilters(r *http.Request) query.Filters {
	filters := query.Filters{}
	for key, values := range r.URL.Query() {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		column := key[len("filter[") : len(key)-1]
		if column == "" || len(values) == 0 {
			continue
		}
		filters[column] = values[0]
	}
	return filters
}

func parseSort(r *http.Request) *query.SortState {
	key := r.URL.Query().Get("sort")
	if key == "" {
		return nil
	}
	direction := query.SortAscending
	if r.URL.Query().Get("dir") == string(query.SortDescending) {
		direction = query.SortDescending
	}
	return &query.SortState{Key: key, Direction: direction}
}

func parseGeometry(r *http.Request) viewport.Geometry {
	return viewport.Geometry{
		RowHeight:       queryInt(r, "row_height", 37),
		Overscan:        queryInt(r, "overscan", 3),
		ScrollOffset:    queryInt(r, "scroll", 0),
		ContainerHeight: queryInt(r, "height", 600),
	}
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// writeDomainError maps domain errors onto HTTP status codes and structured
// error payloads
func writeDomainError(w http.ResponseWriter, err error) {
	var mismatch *reconcile.SchemaMismatchError
	if errors.As(err, &mismatch) {
		// Both header lists are surfaced so the operator can decide
		// whether to import as a new dataset instead
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error": map[string]interface{}{
				"code":             apperrors.CodeSchemaMismatch,
				"message":          "incoming headers do not match the stored dataset",
				"existing_headers": mismatch.Existing,
				"incoming_headers": mismatch.Incoming,
			},
		})
		return
	}

	switch {
	case core.IsNotFoundError(err):
		writeAppError(w, http.StatusNotFound, apperrors.NotFound("dataset"))
	case core.IsIngestError(err):
		writeAppError(w, http.StatusBadRequest, apperrors.New(ingestCode(err), err.Error()))
	case core.IsStoreFailure(err):
		writeAppError(w, http.StatusInternalServerError, apperrors.New(apperrors.CodeStoreFailure, err.Error()))
	default:
		writeAppError(w, http.StatusInternalServerError, apperrors.InternalError(err.Error()))
	}
}

// ingestCode maps an ingestion error chain onto its boundary code
func ingestCode(err error) string {
	switch {
	case errors.Is(err, core.ErrHeaderNotFound):
		return apperrors.CodeHeaderNotFound
	case errors.Is(err, core.ErrNoValidColumns):
		return apperrors.CodeNoValidColumns
	default:
		return apperrors.CodeMalformedInput
	}
}

func writeAppError(w http.ResponseWriter, status int, appErr *apperrors.AppError) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
