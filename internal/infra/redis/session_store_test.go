package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ea-coach-service/internal/app"
	"ea-coach-service/internal/content"
	"ea-coach-service/internal/exam"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client, time.Minute)

	form, _ := content.Form(content.Part3FormID)
	sess, err := exam.NewSession(form, exam.Options{})
	require.NoError(t, err)

	store.Put(app.NewExamRun("s1", sess, time.Now()))
	require.True(t, mr.Exists("exam:session:s1"))
	val, err := mr.Get("exam:session:s1")
	require.NoError(t, err)
	assert.Equal(t, content.Part3FormID, val)

	mr.FastForward(30 * time.Second)
	require.NoError(t, store.Touch(context.Background()))
	assert.Equal(t, time.Minute, mr.TTL("exam:session:s1"))

	_, ok := store.Get("s1")
	assert.True(t, ok)
	assert.Len(t, store.All(), 1)

	store.Delete("s1")
	assert.False(t, mr.Exists("exam:session:s1"), "expected redis key to be removed")
	_, ok = store.Get("s1")
	assert.False(t, ok)
}

func TestSessionStoreTouchSkipsEndedRuns(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client, time.Minute)

	form, _ := content.Form(content.Part1FormID)
	live, err := exam.NewSession(form, exam.Options{})
	require.NoError(t, err)
	done, err := exam.NewSession(form, exam.Options{})
	require.NoError(t, err)
	require.NoError(t, done.RequestEnd())
	_, err = done.ConfirmEnd()
	require.NoError(t, err)

	store.Put(app.NewExamRun("live", live, time.Now()))
	store.Put(app.NewExamRun("done", done, time.Now()))

	mr.FastForward(40 * time.Second)
	require.NoError(t, store.Touch(context.Background()))
	assert.Equal(t, time.Minute, mr.TTL("exam:session:live"))
	assert.Equal(t, 20*time.Second, mr.TTL("exam:session:done"))

	mr.FastForward(30 * time.Second)
	assert.True(t, mr.Exists("exam:session:live"))
	assert.False(t, mr.Exists("exam:session:done"), "ended run marker should lapse")
}
