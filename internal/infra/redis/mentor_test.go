package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ea-coach-service/internal/mentor"
)

func TestReplyCacheRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewReplyCache(client)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "chat:abc")
	require.NoError(t, err)
	assert.False(t, ok)

	reply := mentor.Reply{Text: "Circular 230", Suggestions: []string{"More"}, Agent: "TAX_SPECIALIST"}
	require.NoError(t, cache.Set(ctx, "chat:abc", reply, 24*time.Hour))
	assert.Equal(t, 24*time.Hour, mr.TTL("mentor:reply:chat:abc"))

	got, ok, err := cache.Get(ctx, "chat:abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, reply, got)

	mr.FastForward(25 * time.Hour)
	_, ok, err = cache.Get(ctx, "chat:abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLimiterWindow(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewLimiter(client, 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "learner-1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := limiter.Allow(ctx, "learner-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Hour, mr.TTL("mentor:rate:learner-1"))

	mr.FastForward(time.Hour)
	ok, err = limiter.Allow(ctx, "learner-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiterReportsRedisErrors(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewLimiter(client, 1, time.Hour)
	mr.Close()

	ok, err := limiter.Allow(context.Background(), "learner-1")
	assert.Error(t, err)
	assert.False(t, ok)
}

var (
	_ mentor.ReplyCache = (*ReplyCache)(nil)
	_ mentor.Limiter    = (*Limiter)(nil)
)
