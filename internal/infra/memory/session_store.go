package memory

import (
	"sync"

	"ea-coach-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.ExamRun
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.ExamRun),
	}
}

func (s *SessionStore) Put(run *app.ExamRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[run.ID()] = run
}

func (s *SessionStore) Get(id string) (*app.ExamRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.sessions[id]
	return run, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) All() []*app.ExamRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*app.ExamRun, 0, len(s.sessions))
	for _, run := range s.sessions {
		out = append(out, run)
	}
	return out
}
