package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shallyquinn/Chatbot/pkg/errors"
)

// stringCmdable is the command subset the reply cache needs; tests stub it
// with canned redis results.
type stringCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// ReplyCache stores conversation answers with a TTL.  It satisfies the
// conversation service's ReplyCache port.
type ReplyCache struct {
	cmd stringCmdable
	ttl time.Duration
}

// DefaultReplyTTL bounds how long a generated answer may be replayed.
const DefaultReplyTTL = 24 * time.Hour

// NewReplyCache builds a ReplyCache over an established client.
// ttl <= 0 selects DefaultReplyTTL.
func NewReplyCache(client *Client, ttl time.Duration) *ReplyCache {
	if ttl <= 0 {
		ttl = DefaultReplyTTL
	}
	return &ReplyCache{cmd: client.Raw(), ttl: ttl}
}

// GetReply returns the cached reply for key.  A missing key is a miss, not
// an error.
func (c *ReplyCache) GetReply(ctx context.Context, key string) (string, bool, error) {
	val, err := c.cmd.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrCodeCacheError, "reply cache get failed")
	}
	return val, true, nil
}

// SetReply stores reply under key with the configured TTL.
func (c *ReplyCache) SetReply(ctx context.Context, key, reply string) error {
	if err := c.cmd.Set(ctx, key, reply, c.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "reply cache set failed")
	}
	return nil
}
