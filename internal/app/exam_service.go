package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ea-coach-service/internal/coach"
	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/event"
	"ea-coach-service/internal/exam"
	"ea-coach-service/internal/metrics"
)

// SessionRepository abstracts where live exam runs are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Put(run *ExamRun)
	Get(id string) (*ExamRun, bool)
	Delete(id string)
	All() []*ExamRun
}

// FormRepository loads exam forms (from cache/backing store).
type FormRepository interface {
	GetForm(ctx context.Context, formID string) (domain.ExamForm, error)
	ListForms(ctx context.Context) ([]domain.FormSummary, error)
}

// ResultStore persists the results of ended sessions.
type ResultStore interface {
	Record(ctx context.Context, rec domain.ExamRecord) error
	Recent(ctx context.Context, limit int) ([]domain.ExamRecord, error)
}

// ErrUnknownCommand is returned for a command type the service does not handle.
var ErrUnknownCommand = errors.New("unknown exam command")

// CommandType names an exam mutation.
type CommandType string

const (
	CmdSelectAnswer  CommandType = "select_answer"
	CmdToggleFlag    CommandType = "toggle_flag"
	CmdToggleStrike  CommandType = "toggle_strike"
	CmdAdvance       CommandType = "advance"
	CmdGoTo          CommandType = "go_to"
	CmdRequestEnd    CommandType = "request_end"
	CmdCancelEnd     CommandType = "cancel_end"
	CmdConfirmEnd    CommandType = "confirm_end"
	CmdShowResults   CommandType = "show_results"
	CmdShowStudyPlan CommandType = "show_study_plan"
	CmdBackToResults CommandType = "back_to_results"
)

// Command is one client action against an exam session.
type Command struct {
	Type      CommandType    `json:"type"`
	Question  int            `json:"question"`
	Option    int            `json:"option"`
	Direction exam.Direction `json:"direction"`
}

// ExamService contains the exam session use cases.
type ExamService struct {
	sessions SessionRepository
	forms    FormRepository
	results  ResultStore
	opts     exam.Options

	// retention is how long an ended or expired run stays in memory after
	// its last activity. Zero keeps runs until they are abandoned.
	retention time.Duration

	publisher event.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// ExamServiceConfig carries the optional collaborators of an ExamService.
type ExamServiceConfig struct {
	Options   exam.Options
	Retention time.Duration
	Publisher event.Publisher
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewExamService(sessions SessionRepository, forms FormRepository, results ResultStore, cfg ExamServiceConfig) *ExamService {
	s := &ExamService{
		sessions:  sessions,
		forms:     forms,
		results:   results,
		opts:      cfg.Options,
		retention: cfg.Retention,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.publisher == nil {
		s.publisher = event.NewLogPublisher(s.logger)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Forms lists the available exam forms.
func (s *ExamService) Forms(ctx context.Context) ([]domain.FormSummary, error) {
	return s.forms.ListForms(ctx)
}

// Start opens a new sitting over the form.
func (s *ExamService) Start(ctx context.Context, formID string) (exam.Snapshot, error) {
	form, err := s.forms.GetForm(ctx, formID)
	if err != nil {
		return exam.Snapshot{}, err
	}
	sess, err := exam.NewSession(form, s.opts)
	if err != nil {
		return exam.Snapshot{}, fmt.Errorf("start form %s: %w", formID, err)
	}
	run := NewExamRun(uuid.NewString(), sess, s.now())
	s.sessions.Put(run)
	s.metrics.ExamStarted()
	s.publish(ctx, event.TypeExamStarted, map[string]any{
		"sessionId": run.ID(),
		"formId":    form.ID,
		"part":      form.Part,
	})
	s.logger.Info("exam started", zap.String("session", run.ID()), zap.String("form", form.ID))
	return run.Snapshot(), nil
}

// Snapshot returns the current state of a session.
func (s *ExamService) Snapshot(_ context.Context, id string) (exam.Snapshot, error) {
	run, ok := s.sessions.Get(id)
	if !ok {
		return exam.Snapshot{}, domain.ErrSessionNotFound
	}
	return run.Snapshot(), nil
}

// Apply runs a command against a session and broadcasts the new state.
func (s *ExamService) Apply(ctx context.Context, id string, cmd Command) (exam.Snapshot, error) {
	run, ok := s.sessions.Get(id)
	if !ok {
		return exam.Snapshot{}, domain.ErrSessionNotFound
	}
	snap, ended, err := run.apply(cmd, s.now())
	if err != nil {
		return exam.Snapshot{}, err
	}
	if ended != nil {
		s.finish(ctx, run.ID(), *ended)
	}
	return snap, nil
}

// StudyPlan builds the remediation plan once results exist.
func (s *ExamService) StudyPlan(_ context.Context, id string) (coach.StudyPlan, error) {
	run, ok := s.sessions.Get(id)
	if !ok {
		return coach.StudyPlan{}, domain.ErrSessionNotFound
	}
	results, ok := run.Results()
	if !ok {
		return coach.StudyPlan{}, exam.ErrInvalidTransition
	}
	return coach.BuildStudyPlan(results.WeakDomains()), nil
}

// Subscribe returns a channel of snapshots for a session.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *ExamService) Subscribe(_ context.Context, id string) (<-chan exam.Snapshot, func(), error) {
	run, ok := s.sessions.Get(id)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := run.subscribe()
	return ch, cancel, nil
}

// Abandon drops a session; its state is lost.
func (s *ExamService) Abandon(_ context.Context, id string) error {
	run, ok := s.sessions.Get(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.drop(run)
	s.logger.Info("exam abandoned", zap.String("session", id))
	return nil
}

func (s *ExamService) drop(run *ExamRun) {
	s.sessions.Delete(run.ID())
	if run.close() {
		s.metrics.ExamDropped()
	}
}

// Results lists recently recorded results, newest first.
func (s *ExamService) Results(ctx context.Context, limit int) ([]domain.ExamRecord, error) {
	return s.results.Recent(ctx, limit)
}

// Tick advances every running countdown by one second, then evicts runs
// that ended or ran out of time more than the retention ago.
func (s *ExamService) Tick(ctx context.Context) {
	now := s.now()
	for _, run := range s.sessions.All() {
		if ended := run.tick(now); ended != nil {
			s.finish(ctx, run.ID(), *ended)
			continue
		}
		if s.retention > 0 && run.expired(now, s.retention) {
			s.drop(run)
			s.logger.Debug("exam evicted", zap.String("session", run.ID()))
		}
	}
}

func (s *ExamService) finish(ctx context.Context, id string, results domain.ExamResults) {
	s.metrics.ExamEnded(string(results.EndReason))
	rec := domain.ExamRecord{SessionID: id, Results: results, EndedAt: s.now().UTC()}
	if err := s.results.Record(ctx, rec); err != nil {
		s.logger.Error("record exam results", zap.String("session", id), zap.Error(err))
	}
	s.publish(ctx, event.TypeExamEnded, map[string]any{
		"sessionId":   id,
		"formId":      results.FormID,
		"scaledScore": results.ScaledScore,
		"passed":      results.Passed,
		"endReason":   results.EndReason,
	})
	s.logger.Info("exam ended",
		zap.String("session", id),
		zap.String("reason", string(results.EndReason)),
		zap.Int("scaled_score", results.ScaledScore))
}

func (s *ExamService) publish(ctx context.Context, eventType string, payload any) {
	if err := s.publisher.Publish(ctx, event.New(eventType, payload)); err != nil {
		s.logger.Warn("publish event", zap.String("type", eventType), zap.Error(err))
	}
}

// ExamRun serializes access to one exam session and fans its snapshots out
// to subscribers.
type ExamRun struct {
	id        string
	startedAt time.Time

	mu          sync.Mutex
	session     *exam.Session
	touched     time.Time
	closed      bool
	subscribers map[chan exam.Snapshot]struct{}
}

// NewExamRun is exported for infrastructure layers that need to seed runs.
func NewExamRun(id string, session *exam.Session, startedAt time.Time) *ExamRun {
	return &ExamRun{
		id:          id,
		startedAt:   startedAt,
		session:     session,
		touched:     startedAt,
		subscribers: make(map[chan exam.Snapshot]struct{}),
	}
}

func (r *ExamRun) ID() string { return r.id }

// StartedAt is when the sitting began.
func (r *ExamRun) StartedAt() time.Time { return r.startedAt }

// Snapshot copies the run state.
func (r *ExamRun) Snapshot() exam.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Results returns the scored outcome once the session has ended.
func (r *ExamRun) Results() (domain.ExamResults, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Results()
}

// Ended reports whether the session left the in-progress phase.
func (r *ExamRun) Ended() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Phase() != exam.PhaseInProgress
}

func (r *ExamRun) snapshotLocked() exam.Snapshot {
	snap := r.session.Snapshot()
	snap.SessionID = r.id
	return snap
}

// apply returns the results when this command ended the session.
func (r *ExamRun) apply(cmd Command, now time.Time) (exam.Snapshot, *domain.ExamResults, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		err   error
		ended *domain.ExamResults
	)
	sess := r.session
	switch cmd.Type {
	case CmdSelectAnswer:
		err = sess.SelectAnswer(cmd.Question, cmd.Option)
	case CmdToggleFlag:
		err = sess.ToggleFlag(cmd.Question)
	case CmdToggleStrike:
		err = sess.ToggleStrike(cmd.Question, cmd.Option)
	case CmdAdvance:
		_, err = sess.Advance(cmd.Direction)
	case CmdGoTo:
		err = sess.GoTo(cmd.Question)
	case CmdRequestEnd:
		err = sess.RequestEnd()
	case CmdCancelEnd:
		sess.CancelEnd()
	case CmdConfirmEnd:
		var results domain.ExamResults
		results, err = sess.ConfirmEnd()
		if err == nil {
			ended = &results
		}
	case CmdShowResults:
		err = sess.ShowResults()
	case CmdShowStudyPlan:
		err = sess.ShowStudyPlan()
	case CmdBackToResults:
		err = sess.BackToResults()
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	if err != nil {
		return exam.Snapshot{}, nil, err
	}
	r.touched = now
	return r.broadcastLocked(), ended, nil
}

func (r *ExamRun) tick(now time.Time) *domain.ExamResults {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session.Phase() != exam.PhaseInProgress || r.session.Remaining() == 0 {
		return nil
	}
	ended := r.session.Tick()
	if ended || r.session.Remaining() == 0 {
		r.touched = now
	}
	r.broadcastLocked()
	if !ended {
		return nil
	}
	results, _ := r.session.Results()
	return &results
}

// expired reports whether the run is past its countdown or ended, and idle
// for at least retention.
func (r *ExamRun) expired(now time.Time, retention time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session.Phase() == exam.PhaseInProgress && r.session.Remaining() > 0 {
		return false
	}
	return now.Sub(r.touched) >= retention
}

func (r *ExamRun) subscribe() (<-chan exam.Snapshot, func()) {
	ch := make(chan exam.Snapshot, 8)

	r.mu.Lock()
	if r.closed {
		close(ch)
		r.mu.Unlock()
		return ch, func() {}
	}
	r.subscribers[ch] = struct{}{}
	// The channel is empty, so this send cannot block.
	ch <- r.snapshotLocked()
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		if _, ok := r.subscribers[ch]; ok {
			delete(r.subscribers, ch)
			close(ch)
		}
		r.mu.Unlock()
	}
	return ch, cancel
}

// close reports false when the run was already closed.
func (r *ExamRun) close() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.closed = true
	for ch := range r.subscribers {
		delete(r.subscribers, ch)
		close(ch)
	}
	return true
}

func (r *ExamRun) broadcastLocked() exam.Snapshot {
	snap := r.snapshotLocked()
	for ch := range r.subscribers {
		select {
		case ch <- snap:
		default:
			// Slow subscriber: replace its oldest queued snapshot.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}
