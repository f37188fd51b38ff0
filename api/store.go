package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/malawski/cloudworkflowsimulator/contracts"
	"github.com/malawski/cloudworkflowsimulator/errors"
)

// Report is a finished validation kept for later retrieval.
type Report struct {
	ID        uuid.UUID
	Result    contracts.ValidationResult
	CreatedAt time.Time
}

// ReportStore provides thread-safe in-memory storage for reports.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]Report
}

// NewReportStore creates a new ReportStore.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[uuid.UUID]Report),
	}
}

// Add stores result under a fresh id and returns the stored report.
func (s *ReportStore) Add(result contracts.ValidationResult) Report {
	r := Report{
		ID:        uuid.New(),
		Result:    result,
		CreatedAt: timeNowFunc(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return r
}

// Get returns the report stored under id, or ErrReportNotFound.
func (s *ReportStore) Get(id uuid.UUID) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return Report{}, errors.Wrapf(contracts.ErrReportNotFound, "report %s", id)
	}
	return r, nil
}

// Len returns the number of stored reports.
func (s *ReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// Prune removes reports older than the retention duration.
// Returns the number of removed reports.
func (s *ReportStore) Prune(retention time.Duration) int {
	if retention <= 0 {
		return 0
	}

	cutoff := timeNowFunc().Add(-retention)
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range s.reports {
		if r.CreatedAt.Before(cutoff) {
			delete(s.reports, id)
			removed++
		}
	}

	return removed
}
