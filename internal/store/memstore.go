package store

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// MemStore is an in-memory Store for tests. Implements Store.
type MemStore struct {
	mu     sync.Mutex
	nextID int64
	runs   []*Run // insertion order
}

// NewMemStore returns a new in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

// SaveRun implements Store.
func (s *MemStore) SaveRun(run *Run) (int64, error) {
	if run == nil {
		return 0, errors.New("run is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *run
	cp.ID = s.nextID
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	cp.Predictions = append([]float64(nil), run.Predictions...)
	s.nextID++
	s.runs = append(s.runs, &cp)
	run.ID = cp.ID
	return cp.ID, nil
}

// GetRun implements Store.
func (s *MemStore) GetRun(id int64) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.runs {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("run #%d not found", id)
}

// ListRuns implements Store.
func (s *MemStore) ListRuns(limit int) ([]*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Run, 0, len(s.runs))
	for i := len(s.runs) - 1; i >= 0; i-- {
		cp := *s.runs[i]
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Close implements Store.
func (s *MemStore) Close() error { return nil }
