// Package cache stores app settings in Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds the Redis client behind the settings store. Settings traffic
// is a few point reads per request, so the pool stays small and fails fast.
type Cache struct {
	client *redis.Client
}

// New connects to redisURL and returns once the server answers PING.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := settingsOptions(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

func settingsOptions(redisURL string) (*redis.Options, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 4
	opt.MinIdleConns = 1
	opt.DialTimeout = 2 * time.Second
	opt.ReadTimeout = time.Second
	opt.WriteTimeout = time.Second
	opt.PoolTimeout = 2 * time.Second
	return opt, nil
}

// Close releases the Redis connections.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the Redis client to test helpers.
func (c *Cache) Client() *redis.Client {
	return c.client
}
