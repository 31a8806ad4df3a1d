package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/tally/internal/records"
)

// Snapshot represents the latest record collection available to the UI.
type Snapshot struct {
	Records     []records.Record
	HasRecords  bool
	LastUpdated time.Time
	LastError   error
	// Generation increments on every successful update so readers can skip
	// rebuilding views when nothing new arrived.
	Generation          uint64
	ConsecutiveFailures int
}

// IsOffline reports whether the source has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored records. When err is non-nil the previous records
// are kept but the error is recorded for visibility.
func (s *Store) Update(recs []records.Record, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Records = slices.Clone(recs)
	s.snapshot.HasRecords = true
	s.snapshot.LastError = nil
	s.snapshot.Generation++
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot. Records themselves are
// shared and must be treated as read-only.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Records = slices.Clone(s.snapshot.Records)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
