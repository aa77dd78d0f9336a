package memory

import (
	"context"
	"sync"

	"ea-coach-service/internal/domain"
)

// ResultStore keeps ended-session records in memory, newest last.
type ResultStore struct {
	mu      sync.RWMutex
	records []domain.ExamRecord
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

func (s *ResultStore) Record(_ context.Context, rec domain.ExamRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Recent returns up to limit records, newest first. limit <= 0 means all.
func (s *ResultStore) Recent(_ context.Context, limit int) ([]domain.ExamRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.records)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.ExamRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
