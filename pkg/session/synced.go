package session

import "sync"

// SyncedYears tracks the calendar years already synchronized with the
// backend this session, so each year triggers at most one refresh. The set
// grows monotonically within a session; a failed refresh must not be marked
// so a later visit retries.
type SyncedYears struct {
	mu    sync.Mutex
	years map[int]struct{}
}

// NewSyncedYears creates an empty tracker.
func NewSyncedYears() *SyncedYears {
	return &SyncedYears{years: make(map[int]struct{})}
}

// ShouldSync reports whether year still needs a backend refresh.
func (s *SyncedYears) ShouldSync(year int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, done := s.years[year]
	return !done
}

// MarkSynced records year as refreshed. Duplicate calls are absorbed by the
// set semantics.
func (s *SyncedYears) MarkSynced(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.years[year] = struct{}{}
}
