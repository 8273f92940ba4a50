package app

import (
	"sync"
	"time"

	"sheetdesk/domain/query"
)

const (
	// DefaultFilterDebounce is the quiet period after the last keystroke
	// before pending filters propagate to the pipeline
	DefaultFilterDebounce = 300 * time.Millisecond
	// DefaultFrameInterval bounds scroll recomputation to roughly one per
	// animation frame
	DefaultFrameInterval = 16 * time.Millisecond
)

// ViewSession owns the ephemeral interaction state between the input surface
// and the query pipeline. Filter keystrokes mutate the pending state
// immediately so the input stays responsive, but only propagate to the
// applied state after a quiet period; scroll offsets are coalesced
// trailing-edge so rapid scrolling costs at most one recomputation per
// frame. This is the only cross-call state the core keeps.
type ViewSession struct {
	mu sync.Mutex

	pending query.Filters
	applied query.Filters
	sort    *query.SortState

	appliedScroll int
	latestScroll  int

	debounce    time.Duration
	frame       time.Duration
	filterTimer *time.Timer
	scrollTimer *time.Timer
	closed      bool

	// notify fires after applied state changes; the display layer hooks
	// its recomputation here
	notify func()
}

// NewViewSession creates a session with the default debounce and frame
// intervals. notify may be nil.
func NewViewSession(notify func()) *ViewSession {
	return NewViewSessionWithIntervals(notify, DefaultFilterDebounce, DefaultFrameInterval)
}

// NewViewSessionWithIntervals creates a session with explicit intervals
func NewViewSessionWithIntervals(notify func(), debounce, frame time.Duration) *ViewSession {
	return &ViewSession{
		pending:  query.Filters{},
		applied:  query.Filters{},
		debounce: debounce,
		frame:    frame,
		notify:   notify,
	}
}

// SetFilter records a filter keystroke. The pending value is visible
// immediately; propagation to the applied filters restarts the quiet-period
// timer.
func (s *ViewSession) SetFilter(column, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if raw == "" {
		delete(s.pending, column)
	} else {
		s.pending[column] = raw
	}

	if s.filterTimer != nil {
		s.filterTimer.Stop()
	}
	s.filterTimer = time.AfterFunc(s.debounce, s.applyFilters)
}

func (s *ViewSession) applyFilters() {
	s.mu.Lock()
	s.applied = clonedFilters(s.pending)
	s.filterTimer = nil
	notify := s.notify
	closed := s.closed
	s.mu.Unlock()

	if notify != nil && !closed {
		notify()
	}
}

// SetScroll records the latest scroll offset. Only the latest offset within
// a frame interval is applied.
func (s *ViewSession) SetScroll(offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.latestScroll = offset
	if s.scrollTimer == nil {
		s.scrollTimer = time.AfterFunc(s.frame, s.applyScroll)
	}
}

func (s *ViewSession) applyScroll() {
	s.mu.Lock()
	s.appliedScroll = s.latestScroll
	s.scrollTimer = nil
	notify := s.notify
	closed := s.closed
	s.mu.Unlock()

	if notify != nil && !closed {
		notify()
	}
}

// ToggleSort applies a header click immediately: same key flips direction,
// a new key resets to ascending
func (s *ViewSession) ToggleSort(column string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.sort.Toggle(column)
	s.sort = &next
}

// ClearSort removes the active sort
func (s *ViewSession) ClearSort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = nil
}

// PendingFilters returns the immediately-visible filter state
func (s *ViewSession) PendingFilters() query.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonedFilters(s.pending)
}

// AppliedFilters returns the filter state the pipeline should see
func (s *ViewSession) AppliedFilters() query.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonedFilters(s.applied)
}

// Sort returns the active sort state, or nil
func (s *ViewSession) Sort() *query.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sort == nil {
		return nil
	}
	copied := *s.sort
	return &copied
}

// Scroll returns the applied scroll offset
func (s *ViewSession) Scroll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appliedScroll
}

// Flush applies any pending filter and scroll state immediately, cancelling
// outstanding timers
func (s *ViewSession) Flush() {
	s.mu.Lock()
	if s.filterTimer != nil {
		s.filterTimer.Stop()
		s.filterTimer = nil
	}
	if s.scrollTimer != nil {
		s.scrollTimer.Stop()
		s.scrollTimer = nil
	}
	s.applied = clonedFilters(s.pending)
	s.appliedScroll = s.latestScroll
	s.mu.Unlock()
}

// Close stops the session's timers; further input is ignored
func (s *ViewSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.filterTimer != nil {
		s.filterTimer.Stop()
		s.filterTimer = nil
	}
	if s.scrollTimer != nil {
		s.scrollTimer.Stop()
		s.scrollTimer = nil
	}
}

func clonedFilters(f query.Filters) query.Filters {
	out := make(query.Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
