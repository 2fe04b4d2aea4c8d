package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Page is one cached full response.
type Page struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache stores rendered responses keyed by request path. Entries expire
// on their TTL, there is no invalidation on write.
type PageCache interface {
	Get(ctx context.Context, key string) (*Page, error)
	Set(ctx context.Context, key string, page *Page, ttl time.Duration) error
	// Invalidate drops every entry whose key starts with prefix.
	Invalidate(ctx context.Context, prefix string) error
}

type redisPageCache struct {
	client *redis.Client
}

// NewRedisPageCache connects to Redis and returns a PageCache backed by it.
func NewRedisPageCache(redisURL string) (PageCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisPageCache{client: rdb}, nil
}

func (c *redisPageCache) Get(ctx context.Context, key string) (*Page, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // miss
	}
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *redisPageCache) Set(ctx context.Context, key string, page *Page, ttl time.Duration) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *redisPageCache) Invalidate(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
