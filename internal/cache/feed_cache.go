// Package cache fronts the home listing with a whole-page TTL cache.
// Writes never invalidate entries; staleness up to the TTL is accepted.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL matches the home page cache window of the web frontend.
const DefaultTTL = 15 * time.Minute

const keyPrefix = "feed:home:"

// FeedCache stores rendered home pages by listing key.
type FeedCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
	InvalidateAll(ctx context.Context) error
}

// HomeKey identifies one page of the home listing.
func HomeKey(page int) string {
	return fmt.Sprintf("p%d", page)
}

type redisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFeedCache builds a FeedCache over the given client. Non-positive
// ttl falls back to DefaultTTL.
func NewRedisFeedCache(client *redis.Client, ttl time.Duration) FeedCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisFeedCache{client: client, ttl: ttl}
}

func (c *redisFeedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *redisFeedCache) Put(ctx context.Context, key string, payload []byte) error {
	return c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err()
}

// InvalidateAll walks the namespace with SCAN instead of flushing the DB,
// so the cache can share a redis database with other keys.
func (c *redisFeedCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
