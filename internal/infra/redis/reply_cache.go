package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"ea-coach-service/internal/mentor"
)

// ReplyCache stores mentor replies as JSON under mentor:reply:{key}.
type ReplyCache struct {
	client *redis.Client
}

func NewReplyCache(client *redis.Client) *ReplyCache {
	return &ReplyCache{client: client}
}

func (c *ReplyCache) Get(ctx context.Context, key string) (mentor.Reply, bool, error) {
	raw, err := c.client.Get(ctx, replyKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return mentor.Reply{}, false, nil
	}
	if err != nil {
		return mentor.Reply{}, false, err
	}
	var reply mentor.Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return mentor.Reply{}, false, err
	}
	return reply, true, nil
}

func (c *ReplyCache) Set(ctx context.Context, key string, reply mentor.Reply, ttl time.Duration) error {
	raw, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, replyKey(key), raw, ttl).Err()
}

func replyKey(key string) string {
	return "mentor:reply:" + key
}
