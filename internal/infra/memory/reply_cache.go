package memory

import (
	"context"
	"sync"
	"time"

	"ea-coach-service/internal/mentor"
)

// ReplyCache is an in-memory mentor.ReplyCache with per-entry expiry.
type ReplyCache struct {
	clock func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedReply
}

type cachedReply struct {
	reply     mentor.Reply
	expiresAt time.Time
}

func NewReplyCache() *ReplyCache {
	return &ReplyCache{clock: time.Now, entries: make(map[string]cachedReply)}
}

func (c *ReplyCache) Get(_ context.Context, key string) (mentor.Reply, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return mentor.Reply{}, false, nil
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(c.clock()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return mentor.Reply{}, false, nil
	}
	return copyReply(entry.reply), true, nil
}

// Set stores the reply; ttl <= 0 never expires.
func (c *ReplyCache) Set(_ context.Context, key string, reply mentor.Reply, ttl time.Duration) error {
	entry := cachedReply{reply: copyReply(reply)}
	if ttl > 0 {
		entry.expiresAt = c.clock().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

func copyReply(r mentor.Reply) mentor.Reply {
	r.Suggestions = append([]string(nil), r.Suggestions...)
	return r
}
