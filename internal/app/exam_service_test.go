package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ea-coach-service/internal/app"
	"ea-coach-service/internal/content"
	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/event"
	"ea-coach-service/internal/exam"
	"ea-coach-service/internal/infra/memory"
	"ea-coach-service/internal/metrics"
)

type examEnv struct {
	service *app.ExamService
	results *memory.ResultStore
	events  *event.Recorder
}

func newExamEnv(t *testing.T, opts exam.Options, forms ...domain.ExamForm) examEnv {
	t.Helper()
	if len(forms) == 0 {
		forms = content.Forms()
	}
	env := examEnv{results: memory.NewResultStore(), events: &event.Recorder{}}
	env.service = app.NewExamService(
		memory.NewSessionStore(),
		memory.NewFormRepository(memory.NewStaticFormLoader(forms), time.Minute),
		env.results,
		app.ExamServiceConfig{Options: opts, Publisher: env.events, Metrics: metrics.New()},
	)
	return env
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 11, 22, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func shortForm() domain.ExamForm {
	one, two := 1, 0
	return domain.ExamForm{
		ID:              "short",
		Part:            1,
		Title:           "Short",
		DurationSeconds: 2,
		Questions: []domain.Question{
			{ID: "q1", Options: []string{"a", "b"}, CorrectIndex: &one, Domain: "Income", Topic: "Wages"},
			{ID: "q2", Options: []string{"a", "b"}, CorrectIndex: &two, Domain: "Income", Topic: "Wages"},
		},
	}
}

func TestExamConfirmedWalkthrough(t *testing.T) {
	ctx := context.Background()
	env := newExamEnv(t, exam.Options{}, shortForm())

	snap, err := env.service.Start(ctx, "short")
	require.NoError(t, err)
	require.NotEmpty(t, snap.SessionID)
	assert.Equal(t, exam.PhaseInProgress, snap.Phase)
	id := snap.SessionID

	_, err = env.service.Apply(ctx, id, app.Command{Type: app.CmdSelectAnswer, Question: 0, Option: 1})
	require.NoError(t, err)
	_, err = env.service.Apply(ctx, id, app.Command{Type: app.CmdAdvance, Direction: exam.Next})
	require.NoError(t, err)
	_, err = env.service.Apply(ctx, id, app.Command{Type: app.CmdSelectAnswer, Question: 1, Option: 1})
	require.NoError(t, err)

	_, err = env.service.Apply(ctx, id, app.Command{Type: app.CmdConfirmEnd})
	require.ErrorIs(t, err, exam.ErrEndNotRequested)

	_, err = env.service.Apply(ctx, id, app.Command{Type: app.CmdRequestEnd})
	require.NoError(t, err)
	snap, err = env.service.Apply(ctx, id, app.Command{Type: app.CmdConfirmEnd})
	require.NoError(t, err)
	assert.Equal(t, exam.PhaseEnded, snap.Phase)
	require.NotNil(t, snap.Results)
	assert.Equal(t, 1, snap.Results.RawScore)

	records, err := env.results.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].SessionID)
	assert.Equal(t, domain.EndReasonConfirmed, records[0].Results.EndReason)

	assert.Len(t, env.events.OfType(event.TypeExamStarted), 1)
	assert.Len(t, env.events.OfType(event.TypeExamEnded), 1)

	plan, err := env.service.StudyPlan(ctx, id)
	require.NoError(t, err)
	require.Len(t, plan.Modules, 1)
	assert.Equal(t, "Wages", plan.Modules[0].Topic)
}

func TestExamStartErrors(t *testing.T) {
	ctx := context.Background()
	env := newExamEnv(t, exam.Options{})

	_, err := env.service.Start(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrFormNotFound)

	_, err = env.service.Apply(ctx, "missing", app.Command{Type: app.CmdAdvance, Direction: exam.Next})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	snap, err := env.service.Start(ctx, content.Part1FormID)
	require.NoError(t, err)
	_, err = env.service.Apply(ctx, snap.SessionID, app.Command{Type: "explode"})
	assert.ErrorIs(t, err, app.ErrUnknownCommand)

	_, err = env.service.StudyPlan(ctx, snap.SessionID)
	assert.ErrorIs(t, err, exam.ErrInvalidTransition)
}

func TestExamSubscribeReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	env := newExamEnv(t, exam.Options{})

	snap, err := env.service.Start(ctx, content.Part2FormID)
	require.NoError(t, err)
	ch, cancel, err := env.service.Subscribe(ctx, snap.SessionID)
	require.NoError(t, err)
	defer cancel()

	initial := <-ch
	assert.Equal(t, 0, initial.Answered)

	_, err = env.service.Apply(ctx, snap.SessionID, app.Command{Type: app.CmdSelectAnswer, Question: 2, Option: 1})
	require.NoError(t, err)

	update := <-ch
	assert.Equal(t, 1, update.Answered)
	require.NotNil(t, update.Questions[2].Selected)
	assert.Equal(t, 1, *update.Questions[2].Selected)
}

func TestExamTickWithoutAutoSubmit(t *testing.T) {
	ctx := context.Background()
	env := newExamEnv(t, exam.Options{}, shortForm())

	snap, err := env.service.Start(ctx, "short")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		env.service.Tick(ctx)
	}

	snap, err = env.service.Snapshot(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Remaining)
	assert.True(t, snap.TimeExpired)
	assert.Equal(t, exam.PhaseInProgress, snap.Phase)
	assert.Empty(t, env.events.OfType(event.TypeExamEnded))
}

func TestExamTickAutoSubmit(t *testing.T) {
	ctx := context.Background()
	env := newExamEnv(t, exam.Options{AutoSubmitOnExpiry: true}, shortForm())

	snap, err := env.service.Start(ctx, "short")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		env.service.Tick(ctx)
	}

	snap, err = env.service.Snapshot(ctx, snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, exam.PhaseEnded, snap.Phase)
	require.NotNil(t, snap.Results)
	assert.Equal(t, domain.EndReasonTimeExpired, snap.Results.EndReason)

	records, err := env.results.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Len(t, env.events.OfType(event.TypeExamEnded), 1)
}

func TestExamRunTimersStopsWithContext(t *testing.T) {
	env := newExamEnv(t, exam.Options{}, shortForm())
	snap, err := env.service.Start(context.Background(), "short")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.RunTimers(ctx, 5*time.Millisecond, env.service)
		close(done)
	}()

	require.Eventually(t, func() bool {
		s, _ := env.service.Snapshot(context.Background(), snap.SessionID)
		return s.Remaining == 0
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestExamAbandonClosesSubscribers(t *testing.T) {
	ctx := context.Background()
	env := newExamEnv(t, exam.Options{})

	snap, err := env.service.Start(ctx, content.Part3FormID)
	require.NoError(t, err)
	ch, cancel, err := env.service.Subscribe(ctx, snap.SessionID)
	require.NoError(t, err)
	defer cancel()
	<-ch

	require.NoError(t, env.service.Abandon(ctx, snap.SessionID))
	_, ok := <-ch
	assert.False(t, ok)

	_, err = env.service.Snapshot(ctx, snap.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, env.service.Abandon(ctx, snap.SessionID), domain.ErrSessionNotFound)
}

func TestExamFormsListing(t *testing.T) {
	env := newExamEnv(t, exam.Options{})
	forms, err := env.service.Forms(context.Background())
	require.NoError(t, err)
	assert.Len(t, forms, 3)
}

func TestExamSubscribeRacingAbandon(t *testing.T) {
	ctx := context.Background()
	env := newExamEnv(t, exam.Options{})

	for i := 0; i < 200; i++ {
		snap, err := env.service.Start(ctx, content.Part1FormID)
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			ch, cancel, err := env.service.Subscribe(ctx, snap.SessionID)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrSessionNotFound)
				return
			}
			defer cancel()
			for range ch {
			}
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, env.service.Abandon(ctx, snap.SessionID))
		}()
		wg.Wait()
	}
}

func newRetentionEnv(clock *fakeClock, retention time.Duration) (*app.ExamService, *memory.SessionStore, *memory.ResultStore) {
	sessions := memory.NewSessionStore()
	results := memory.NewResultStore()
	forms := append(content.Forms(), shortForm())
	service := app.NewExamService(
		sessions,
		memory.NewFormRepository(memory.NewStaticFormLoader(forms), time.Minute),
		results,
		app.ExamServiceConfig{Retention: retention, Now: clock.Now},
	)
	return service, sessions, results
}

func TestExamTickEvictsEndedRuns(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	service, sessions, results := newRetentionEnv(clock, 10*time.Minute)

	ended, err := service.Start(ctx, "short")
	require.NoError(t, err)
	live, err := service.Start(ctx, content.Part1FormID)
	require.NoError(t, err)

	_, err = service.Apply(ctx, ended.SessionID, app.Command{Type: app.CmdRequestEnd})
	require.NoError(t, err)
	_, err = service.Apply(ctx, ended.SessionID, app.Command{Type: app.CmdConfirmEnd})
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	service.Tick(ctx)
	assert.Len(t, sessions.All(), 2)

	clock.Advance(5 * time.Minute)
	service.Tick(ctx)
	_, err = service.Snapshot(ctx, ended.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = service.Snapshot(ctx, live.SessionID)
	assert.NoError(t, err, "a running countdown is never evicted")
	assert.Len(t, sessions.All(), 1)

	records, err := results.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1, "results outlive the evicted run")
}

func TestExamTickEvictsExpiredIdleRuns(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	service, sessions, _ := newRetentionEnv(clock, 10*time.Minute)

	snap, err := service.Start(ctx, "short")
	require.NoError(t, err)
	service.Tick(ctx)
	service.Tick(ctx)

	clock.Advance(9 * time.Minute)
	service.Tick(ctx)
	_, err = service.Apply(ctx, snap.SessionID, app.Command{Type: app.CmdToggleFlag, Question: 0})
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	service.Tick(ctx)
	require.Len(t, sessions.All(), 1, "activity resets the idle clock")

	clock.Advance(4 * time.Minute)
	service.Tick(ctx)
	assert.Empty(t, sessions.All())
}

func TestExamZeroRetentionKeepsRuns(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	service, sessions, _ := newRetentionEnv(clock, 0)

	snap, err := service.Start(ctx, "short")
	require.NoError(t, err)
	_, err = service.Apply(ctx, snap.SessionID, app.Command{Type: app.CmdRequestEnd})
	require.NoError(t, err)
	_, err = service.Apply(ctx, snap.SessionID, app.Command{Type: app.CmdConfirmEnd})
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	service.Tick(ctx)
	assert.Len(t, sessions.All(), 1)
}
