package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogPublisherWritesEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPublisher(zap.New(core))

	require.NoError(t, p.Publish(context.Background(), New(TypeExamEnded, map[string]int{"score": 105})))
	entries := logs.FilterField(zap.String("type", TypeExamEnded)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "event", entries[0].Message)
}

func TestRecorderFiltersByType(t *testing.T) {
	var r Recorder
	ctx := context.Background()
	require.NoError(t, r.Publish(ctx, New(TypeExamStarted, nil)))
	require.NoError(t, r.Publish(ctx, New(TypeMentorReply, nil)))
	require.NoError(t, r.Publish(ctx, New(TypeExamStarted, nil)))

	assert.Len(t, r.Events(), 3)
	assert.Len(t, r.OfType(TypeExamStarted), 2)
	assert.Empty(t, r.OfType(TypeEthicsCompleted))
}

func TestNewStampsTime(t *testing.T) {
	evt := New(TypeSprintFinished, "x")
	assert.False(t, evt.OccurredAt.IsZero())
	assert.Equal(t, TypeSprintFinished, evt.Type)
}
