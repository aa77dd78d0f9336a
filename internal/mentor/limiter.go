package mentor

import (
	"context"
	"errors"
)

// ErrRateLimited is returned when a learner exceeds the message quota.
var ErrRateLimited = errors.New("mentor message rate limit exceeded")

// Limiter decides whether another message from key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
