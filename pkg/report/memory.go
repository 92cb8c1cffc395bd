package report

import (
	"context"
	"sync"

	"github.com/kart-io/eventcast/pkg/session"
)

// MemoryStore keeps reports in process memory. It is the default store
// and the one tests use; nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*session.Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*session.Report)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, r *session.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	cp.Outcomes = append([]session.Outcome(nil), r.Outcomes...)
	s.reports[r.SessionID] = &cp
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*session.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	cp.Outcomes = append([]session.Outcome(nil), r.Outcomes...)
	return &cp, nil
}

// Len reports how many sessions have a stored report.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
