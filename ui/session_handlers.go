package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sheetdesk/app"
	"sheetdesk/domain/core"
	apperrors "sheetdesk/internal/errors"
)

// Session endpoints give an interactive client the input-handling contract:
// filter keystrokes are pending until the quiet period elapses, scroll
// offsets are coalesced per frame, and /rows always reads the applied side.

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	datasetID, err := core.ParseDatasetID(chi.URLParam(r, "datasetID"))
	if err != nil {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput(err.Error()))
		return
	}

	// Sessions only open against datasets that exist
	if _, err := s.views.Dataset(r.Context(), datasetID); err != nil {
		writeDomainError(w, err)
		return
	}

	sessionID := s.sessions.Open(datasetID)
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": sessionID})
}

func (s *Server) handleSessionFilter(w http.ResponseWriter, r *http.Request) {
	_, session, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	var body struct {
		Column string `json:"column"`
		Value  string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Column == "" {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput("column is required"))
		return
	}

	session.SetFilter(body.Column, body.Value)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pending": session.PendingFilters(),
	})
}

func (s *Server) handleSessionScroll(w http.ResponseWriter, r *http.Request) {
	_, session, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	var body struct {
		Offset int `json:"offset"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput("invalid scroll payload"))
		return
	}

	session.SetScroll(body.Offset)
	writeJSON(w, http.StatusOK, map[string]int{"offset": body.Offset})
}

func (s *Server) handleSessionSort(w http.ResponseWriter, r *http.Request) {
	_, session, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	var body struct {
		Column string `json:"column"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAppError(w, http.StatusBadRequest, apperrors.InvalidInput("invalid sort payload"))
		return
	}

	if body.Column == "" {
		session.ClearSort()
	} else {
		session.ToggleSort(body.Column)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sort": session.Sort()})
}

// handleSessionRows serves the windowed view for one session: applied filters
// and scroll come from the session, geometry from query parameters
func (s *Server) handleSessionRows(w http.ResponseWriter, r *http.Request) {
	datasetID, session, ok := s.resolveSession(w, r)
	if !ok {
		return
	}

	geometry := parseGeometry(r)
	geometry.ScrollOffset = session.Scroll()

	req := app.RowsRequest{
		Filters:  session.AppliedFilters(),
		Sort:     session.Sort(),
		Geometry: geometry,
	}

	resp, err := s.views.VisibleRows(r.Context(), datasetID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(chi.URLParam(r, "sessionID")); err != nil {
		writeAppError(w, http.StatusNotFound, apperrors.NotFound("session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) (core.DatasetID, *app.ViewSession, bool) {
	datasetID, session, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeAppError(w, http.StatusNotFound, apperrors.NotFound("session"))
		return "", nil, false
	}
	return datasetID, session, true
}
