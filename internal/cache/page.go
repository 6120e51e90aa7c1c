package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// PageCachePrefix namespaces cached pages inside Redis.
	PageCachePrefix = "page:"

	// DefaultPageTTL bounds how stale a cached page may be. Entries are
	// never invalidated by writes; they simply age out.
	DefaultPageTTL = 20 * time.Second
)

// PageCache stores rendered page bytes keyed by request URI (path plus
// query string, so each page number is a distinct entry).
//
// Expiry is the only implicit invalidation trigger: publishing a post does
// not evict cached pages, so readers may see a feed lagging up to the TTL
// behind the true state. Clear exists for tests and administration.
type PageCache interface {
	// Get returns the cached bytes for key, or found=false when the key
	// is absent or expired.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Clear drops every cached page immediately.
	Clear(ctx context.Context) error
}

// RedisPageCache implements PageCache on a shared Redis client.
type RedisPageCache struct {
	client *redis.Client
}

// NewPageCache creates a PageCache backed by Redis.
func NewPageCache(client *redis.Client) *RedisPageCache {
	return &RedisPageCache{client: client}
}

func pageKey(key string) string {
	return PageCachePrefix + key
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, pageKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get page: %w", err)
	}
	return value, true, nil
}

func (c *RedisPageCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	if err := c.client.Set(ctx, pageKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("set page: %w", err)
	}
	return nil
}

// Clear scans for prefixed keys and deletes them in batches. SCAN keeps
// this safe on a shared Redis instance, unlike FLUSHDB.
func (c *RedisPageCache) Clear(ctx context.Context) error {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, PageCachePrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("scan pages: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete pages: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	log.Printf("[PageCache] Clear: deleted=%d", deleted)
	return nil
}
