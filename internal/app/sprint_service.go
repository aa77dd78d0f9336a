package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/event"
	"ea-coach-service/internal/exam"
	"ea-coach-service/internal/metrics"
)

// SprintState is a sprint as returned to clients.
type SprintState struct {
	ID string `json:"id"`
	exam.SprintView
}

type sprintRun struct {
	mu         sync.Mutex
	sprint     *exam.Sprint
	reported   bool
	finishedAt time.Time
}

// SprintService runs timed practice sprints.
type SprintService struct {
	questions []domain.Question

	mu   sync.RWMutex
	runs map[string]*sprintRun

	publisher event.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	retention time.Duration
	now       func() time.Time
}

func NewSprintService(questions []domain.Question, cfg PracticeConfig) *SprintService {
	cfg = cfg.withDefaults()
	return &SprintService{
		questions: questions,
		runs:      make(map[string]*sprintRun),
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		retention: cfg.Retention,
		now:       cfg.Now,
	}
}

// Start opens a fresh sprint.
func (s *SprintService) Start(_ context.Context) (SprintState, error) {
	sp, err := exam.NewSprint(s.questions)
	if err != nil {
		return SprintState{}, err
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.runs[id] = &sprintRun{sprint: sp}
	s.mu.Unlock()
	return SprintState{ID: id, SprintView: sp.View()}, nil
}

func (s *SprintService) run(id string) (*sprintRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrSprintNotFound
	}
	return run, nil
}

// Get returns the sprint state.
func (s *SprintService) Get(_ context.Context, id string) (SprintState, error) {
	run, err := s.run(id)
	if err != nil {
		return SprintState{}, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	return SprintState{ID: id, SprintView: run.sprint.View()}, nil
}

// Answer grades the current question.
func (s *SprintService) Answer(_ context.Context, id string, option int) (exam.Feedback, SprintState, error) {
	run, err := s.run(id)
	if err != nil {
		return exam.Feedback{}, SprintState{}, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	fb, err := run.sprint.Answer(option)
	if err != nil {
		return exam.Feedback{}, SprintState{}, err
	}
	return fb, SprintState{ID: id, SprintView: run.sprint.View()}, nil
}

// Next moves to the following question or finishes the sprint.
func (s *SprintService) Next(ctx context.Context, id string) (SprintState, error) {
	run, err := s.run(id)
	if err != nil {
		return SprintState{}, err
	}
	run.mu.Lock()
	defer run.mu.Unlock()
	if err := run.sprint.Next(); err != nil {
		return SprintState{}, err
	}
	view := run.sprint.View()
	s.reportLocked(ctx, id, run, view)
	return SprintState{ID: id, SprintView: view}, nil
}

// Tick advances every sprint countdown by one second and forgets sprints
// finished more than the retention ago.
func (s *SprintService) Tick(ctx context.Context) {
	s.mu.RLock()
	runs := make(map[string]*sprintRun, len(s.runs))
	for id, run := range s.runs {
		runs[id] = run
	}
	s.mu.RUnlock()

	now := s.now()
	var stale []string
	for id, run := range runs {
		run.mu.Lock()
		run.sprint.Tick()
		s.reportLocked(ctx, id, run, run.sprint.View())
		if s.retention > 0 && run.reported && now.Sub(run.finishedAt) >= s.retention {
			stale = append(stale, id)
		}
		run.mu.Unlock()
	}
	if len(stale) == 0 {
		return
	}
	s.mu.Lock()
	for _, id := range stale {
		delete(s.runs, id)
	}
	s.mu.Unlock()
}

// Discard forgets a sprint.
func (s *SprintService) Discard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return domain.ErrSprintNotFound
	}
	delete(s.runs, id)
	return nil
}

func (s *SprintService) reportLocked(ctx context.Context, id string, run *sprintRun, view exam.SprintView) {
	if !view.Finished || run.reported {
		return
	}
	run.reported = true
	run.finishedAt = s.now()
	s.metrics.SprintFinished()
	payload := map[string]any{
		"sprintId":  id,
		"score":     view.Score,
		"total":     view.Total,
		"remaining": view.Remaining,
	}
	if err := s.publisher.Publish(ctx, event.New(event.TypeSprintFinished, payload)); err != nil {
		s.logger.Warn("publish event", zap.String("type", event.TypeSprintFinished), zap.Error(err))
	}
}
