package app

import (
	"context"
	"time"
)

// Ticker is anything advanced by the once-per-interval timer loop.
type Ticker interface {
	Tick(ctx context.Context)
}

// TickFunc adapts a function to Ticker.
type TickFunc func(ctx context.Context)

func (f TickFunc) Tick(ctx context.Context) { f(ctx) }

// RunTimers ticks every ticker once per interval until ctx is done.
func RunTimers(ctx context.Context, interval time.Duration, tickers ...Ticker) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, t := range tickers {
				t.Tick(ctx)
			}
		}
	}
}
