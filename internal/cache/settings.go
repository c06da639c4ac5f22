package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultSettingsKey is the Redis hash holding app settings.
const DefaultSettingsKey = "eventlocator:settings"

// SettingsStore keeps app settings as fields of a single Redis hash.
type SettingsStore struct {
	client *redis.Client
	key    string
}

// NewSettingsStore returns a SettingsStore on hash key. Empty key uses DefaultSettingsKey.
func NewSettingsStore(c *Cache, key string) *SettingsStore {
	if key == "" {
		key = DefaultSettingsKey
	}
	return &SettingsStore{client: c.client, key: key}
}

// Ping reports whether Redis answers and the settings key, if present,
// is a hash. Any other type would make every HGET fail with WRONGTYPE.
func (s *SettingsStore) Ping(ctx context.Context) error {
	kind, err := s.client.Type(ctx, s.key).Result()
	if err != nil {
		return fmt.Errorf("redis type failed: %w", err)
	}
	if kind != "hash" && kind != "none" {
		return fmt.Errorf("settings key %q holds a %s, want hash", s.key, kind)
	}
	return nil
}

// Get returns the value of a settings field.
func (s *SettingsStore) Get(ctx context.Context, field string) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget failed: %w", err)
	}
	return value, true, nil
}

// Set stores a settings field.
func (s *SettingsStore) Set(ctx context.Context, field, value string) error {
	if err := s.client.HSet(ctx, s.key, field, value).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	return nil
}

// Delete removes a settings field.
func (s *SettingsStore) Delete(ctx context.Context, field string) error {
	if err := s.client.HDel(ctx, s.key, field).Err(); err != nil {
		return fmt.Errorf("redis hdel failed: %w", err)
	}
	return nil
}
