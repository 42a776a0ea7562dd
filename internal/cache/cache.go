// Package cache stores generated AI results in Redis so identical profiles
// are not sent to the model twice.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thepetra/petra/internal/config"
)

// Store is a JSON value cache.
type Store interface {
	// GetJSON decodes the cached value into dst and reports whether it was found.
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	// SetJSON stores v under key for ttl. A zero ttl keeps the value until evicted.
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// RedisCache implements Store on go-redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed cache. Connectivity is checked by Ping.
func NewRedis(cfg config.RedisConfig) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return NewFromClient(rdb, "petra:")
}

// NewFromClient wraps an existing client. Every key is namespaced by prefix.
func NewFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetJSON implements Store.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON implements Store.
func (c *RedisCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Key builds a stable cache key from a namespace and the identifying parts
// of a request. Parts are hashed so free-text input cannot break key syntax.
func Key(namespace string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return namespace + ":" + hex.EncodeToString(sum[:12])
}
