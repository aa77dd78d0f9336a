package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ea-coach-service/internal/app"
	"ea-coach-service/internal/content"
	"ea-coach-service/internal/domain"
	"ea-coach-service/internal/ethics"
	"ea-coach-service/internal/event"
	"ea-coach-service/internal/exam"
	"ea-coach-service/internal/metrics"
)

func TestEthicsRunToCompletion(t *testing.T) {
	ctx := context.Background()
	events := &event.Recorder{}
	service := app.NewEthicsService(content.Decks(), app.PracticeConfig{Publisher: events, Metrics: metrics.New()})

	decks := service.Decks()
	require.Len(t, decks, 2)

	run, err := service.Start(ctx, content.ReputationDeckID)
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, ethics.PhaseAwaitingChoice, run.Phase)
	assert.Equal(t, 50, run.Meter)

	for i := 0; i < run.Total; i++ {
		view, err := service.Choose(ctx, run.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, ethics.PhaseShowingOutcome, view.Phase)

		_, err = service.Choose(ctx, run.ID, 1)
		require.ErrorIs(t, err, ethics.ErrChoiceLocked)

		_, err = service.Advance(ctx, run.ID)
		require.NoError(t, err)
	}

	final, err := service.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, ethics.PhaseCompleted, final.Phase)
	assert.Nil(t, final.Scenario)
	assert.GreaterOrEqual(t, final.Meter, ethics.MeterMin)
	assert.LessOrEqual(t, final.Meter, ethics.MeterMax)
	require.Len(t, events.OfType(event.TypeEthicsCompleted), 1)

	_, err = service.Advance(ctx, run.ID)
	assert.ErrorIs(t, err, ethics.ErrRunCompleted)
	assert.Len(t, events.OfType(event.TypeEthicsCompleted), 1)
}

func TestEthicsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	service := app.NewEthicsService(content.Decks(), app.PracticeConfig{})

	_, err := service.Start(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)
	_, err = service.Choose(ctx, "nope", 0)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	run, err := service.Start(ctx, content.PracticeRightsDeckID)
	require.NoError(t, err)
	require.NoError(t, service.Discard(ctx, run.ID))
	_, err = service.Get(ctx, run.ID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestSprintAnswerAndFinish(t *testing.T) {
	ctx := context.Background()
	events := &event.Recorder{}
	service := app.NewSprintService(content.SprintQuestions(), app.PracticeConfig{Publisher: events, Metrics: metrics.New()})

	state, err := service.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, exam.SprintDuration, state.Remaining)

	_, err = service.Next(ctx, state.ID)
	require.ErrorIs(t, err, exam.ErrAnswerRequired)

	for i := 0; i < state.Total; i++ {
		fb, _, err := service.Answer(ctx, state.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, i, fb.Question)

		_, _, err = service.Answer(ctx, state.ID, 1)
		require.ErrorIs(t, err, exam.ErrAlreadyAnswered)

		state, err = service.Next(ctx, state.ID)
		require.NoError(t, err)
	}
	assert.True(t, state.Finished)
	assert.Len(t, events.OfType(event.TypeSprintFinished), 1)

	service.Tick(ctx)
	assert.Len(t, events.OfType(event.TypeSprintFinished), 1)
}

func TestSprintTimesOut(t *testing.T) {
	ctx := context.Background()
	events := &event.Recorder{}
	service := app.NewSprintService(content.SprintQuestions(), app.PracticeConfig{Publisher: events})

	state, err := service.Start(ctx)
	require.NoError(t, err)
	for i := 0; i < exam.SprintDuration; i++ {
		service.Tick(ctx)
	}

	state, err = service.Get(ctx, state.ID)
	require.NoError(t, err)
	assert.True(t, state.Finished)
	assert.Equal(t, 0, state.Remaining)
	require.Len(t, events.OfType(event.TypeSprintFinished), 1)

	_, _, err = service.Answer(ctx, state.ID, 0)
	assert.ErrorIs(t, err, exam.ErrSprintFinished)

	require.NoError(t, service.Discard(ctx, state.ID))
	_, err = service.Get(ctx, state.ID)
	assert.ErrorIs(t, err, domain.ErrSprintNotFound)
}


func TestSprintTickEvictsFinishedSprints(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	service := app.NewSprintService(content.SprintQuestions(), app.PracticeConfig{Retention: time.Minute, Now: clock.Now})

	done, err := service.Start(ctx)
	require.NoError(t, err)
	for i := 0; i < exam.SprintDuration; i++ {
		service.Tick(ctx)
	}
	running, err := service.Start(ctx)
	require.NoError(t, err)

	service.Tick(ctx)
	_, err = service.Get(ctx, done.ID)
	require.NoError(t, err, "kept until the retention passes")

	clock.Advance(time.Minute)
	service.Tick(ctx)
	_, err = service.Get(ctx, done.ID)
	assert.ErrorIs(t, err, domain.ErrSprintNotFound)
	_, err = service.Get(ctx, running.ID)
	assert.NoError(t, err)
}

func TestEthicsTickEvictsIdleRuns(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	service := app.NewEthicsService(content.Decks(), app.PracticeConfig{Retention: 10 * time.Minute, Now: clock.Now})

	stale, err := service.Start(ctx, content.PracticeRightsDeckID)
	require.NoError(t, err)
	active, err := service.Start(ctx, content.ReputationDeckID)
	require.NoError(t, err)

	clock.Advance(8 * time.Minute)
	_, err = service.Choose(ctx, active.ID, 0)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	service.Tick(ctx)
	_, err = service.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
	_, err = service.Get(ctx, active.ID)
	assert.NoError(t, err)
}
