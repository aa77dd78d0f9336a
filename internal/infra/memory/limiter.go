package memory

import (
	"context"
	"sync"
	"time"
)

// Limiter is a fixed-window counter per key.
type Limiter struct {
	limit  int
	window time.Duration
	clock  func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

const sweepThreshold = 4096

type window struct {
	start time.Time
	count int
}

// NewLimiter allows limit calls per key in each window. limit <= 0 disables limiting.
func NewLimiter(limit int, per time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  per,
		clock:   time.Now,
		windows: make(map[string]*window),
	}
}

func (l *Limiter) Allow(_ context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		if len(l.windows) >= sweepThreshold {
			l.sweepLocked(now)
		}
		w = &window{start: now}
		l.windows[key] = w
	}
	if w.count >= l.limit {
		return false, nil
	}
	w.count++
	return true, nil
}

func (l *Limiter) sweepLocked(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
}
