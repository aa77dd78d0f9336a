package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ea-coach-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Runs live in a local map so the in-process broadcast logic keeps working.
//   - Redis holds a liveness marker per run (exam:session:{id}) carrying the
//     form ID, so other instances and operators can see active sittings.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.ExamRun
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.ExamRun),
	}
}

func (s *SessionStore) Put(run *app.ExamRun) {
	s.mu.Lock()
	s.sessions[run.ID()] = run
	s.mu.Unlock()
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), sessionKey(run.ID()), run.Snapshot().FormID, s.ttl).Err()
}

func (s *SessionStore) Get(id string) (*app.ExamRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.sessions[id]
	return run, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	_ = s.client.Del(context.Background(), sessionKey(id)).Err()
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

// Touch extends the liveness marker of every local run still in progress.
// Markers of ended runs are left to expire.
func (s *SessionStore) Touch(ctx context.Context) error {
	s.mu.RLock()
	runs := make([]*app.ExamRun, 0, len(s.sessions))
	for _, run := range s.sessions {
		runs = append(runs, run)
	}
	s.mu.RUnlock()

	ids := make([]string, 0, len(runs))
	for _, run := range runs {
		if !run.Ended() {
			ids = append(ids, run.ID())
		}
	}
	if len(ids) == 0 || s.ttl <= 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, id := range ids {
		pipe.Expire(ctx, sessionKey(id), s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func sessionKey(id string) string {
	return "exam:session:" + id
}
