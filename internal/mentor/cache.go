package mentor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ReplyCache stores replies for deterministic placements.
type ReplyCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (Reply, bool, error)
	Set(ctx context.Context, key string, reply Reply, ttl time.Duration) error
}

// CachedResponder serves repeated questions from a ReplyCache. Cache errors
// are logged and fall through to Next.
type CachedResponder struct {
	Next   Responder
	Cache  ReplyCache
	TTL    time.Duration
	Logger *zap.Logger
}

func (c CachedResponder) Respond(ctx context.Context, req Request) (Reply, error) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	key := CacheKey(req)
	if reply, ok, err := c.Cache.Get(ctx, key); err != nil {
		logger.Warn("reply cache get failed", zap.Error(err))
	} else if ok {
		return reply, nil
	}

	reply, err := c.Next.Respond(ctx, req)
	if err != nil {
		return Reply{}, err
	}
	if err := c.Cache.Set(ctx, key, reply, c.TTL); err != nil {
		logger.Warn("reply cache set failed", zap.Error(err))
	}
	return reply, nil
}

// CacheKey hashes everything a scripted reply depends on.
func CacheKey(req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%s\x00%s",
		strings.ToLower(strings.TrimSpace(req.Text)),
		req.Learner.ReadyScore,
		strings.Join(req.Learner.WeakAreas, "\x1f"),
		req.Learner.RecentActivity)
	return string(req.Placement) + ":" + hex.EncodeToString(h.Sum(nil))
}
