package app

import (
	"sync"
	"time"

	"sheetdesk/domain/core"
)

// SessionManager owns the live view sessions, one per connected client view.
// A session binds a dataset to its debounced filter and coalesced scroll
// state; the query boundary reads only the applied side.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*boundSession
	debounce time.Duration
	frame    time.Duration
}

type boundSession struct {
	datasetID core.DatasetID
	view      *ViewSession
}

// NewSessionManager creates a manager whose sessions use the given debounce
// and frame intervals
func NewSessionManager(debounce, frame time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*boundSession),
		debounce: debounce,
		frame:    frame,
	}
}

// Open creates a session bound to a dataset and returns its identifier
func (m *SessionManager) Open(datasetID core.DatasetID) string {
	id := core.NewID().String()
	m.mu.Lock()
	m.sessions[id] = &boundSession{
		datasetID: datasetID,
		view:      NewViewSessionWithIntervals(nil, m.debounce, m.frame),
	}
	m.mu.Unlock()
	return id
}

// Get resolves a session identifier to its dataset and view state
func (m *SessionManager) Get(sessionID string) (core.DatasetID, *ViewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bound, ok := m.sessions[sessionID]
	if !ok {
		return "", nil, core.NewNotFoundError("session", sessionID)
	}
	return bound.datasetID, bound.view, nil
}

// Close stops a session's timers and removes it
func (m *SessionManager) Close(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bound, ok := m.sessions[sessionID]
	if !ok {
		return core.NewNotFoundError("session", sessionID)
	}
	bound.view.Close()
	delete(m.sessions, sessionID)
	return nil
}
