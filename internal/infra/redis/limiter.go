package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter shared across instances:
//
//	INCR mentor:rate:{key}; EXPIRE when the counter is new.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLimiter allows limit calls per key in each window. limit <= 0 disables limiting.
func NewLimiter(client *redis.Client, limit int, per time.Duration) *Limiter {
	return &Limiter{client: client, limit: int64(limit), window: per}
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	k := "mentor:rate:" + key

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, err
		}
	}
	return n <= l.limit, nil
}
