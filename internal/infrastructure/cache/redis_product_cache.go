package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
)

// RedisProductCache implements catalog.ProductCache using Redis so that every
// kiosk backend instance sees the same invalidations.
type RedisProductCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisProductCache connects to Redis and verifies the connection
func NewRedisProductCache(cfg RedisConfig, keyPrefix string, ttl time.Duration) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisProductCacheWithClient(client, keyPrefix, ttl), nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis client
func NewRedisProductCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisProductCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisProductCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached product or nil on a miss
func (c *RedisProductCache) Get(ctx context.Context, itemCode string) (*catalog.ProductDetail, error) {
	data, err := c.client.Get(ctx, productKey(c.keyPrefix, itemCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read product %s from cache: %w", itemCode, err)
	}
	return decodeDetail(data)
}

// Set stores detail with the configured TTL
func (c *RedisProductCache) Set(ctx context.Context, detail *catalog.ProductDetail) error {
	if detail == nil {
		return nil
	}
	data, err := encodeDetail(detail)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, productKey(c.keyPrefix, detail.Product.ItemCode), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache product %s: %w", detail.Product.ItemCode, err)
	}
	return nil
}

// Invalidate deletes the entry for itemCode
func (c *RedisProductCache) Invalidate(ctx context.Context, itemCode string) error {
	if err := c.client.Del(ctx, productKey(c.keyPrefix, itemCode)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product %s: %w", itemCode, err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

var _ catalog.ProductCache = (*RedisProductCache)(nil)
