package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/config"
)

// QuoteCache stores resolved prices keyed by symbol and trade day.
// Get returns apperrors.ErrCacheMiss for unknown keys.
type QuoteCache interface {
	Get(ctx context.Context, symbol string, day time.Time) (float64, error)
	Set(ctx context.Context, symbol string, day time.Time, price float64) error
}

const keyPrefix = "quote"

// RedisCache is a QuoteCache on Redis. Entries expire after ttl.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// DialRedis connects to the configured server and verifies it answers.
func DialRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func cacheKey(symbol string, day time.Time) string {
	return strings.Join([]string{keyPrefix, strings.ToUpper(symbol), day.UTC().Format(time.DateOnly)}, ":")
}

// Get implements QuoteCache.
func (c *RedisCache) Get(ctx context.Context, symbol string, day time.Time) (float64, error) {
	v, err := c.client.Get(ctx, cacheKey(symbol, day)).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, apperrors.ErrCacheMiss
	}
	if err != nil {
		return 0, fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

// Set implements QuoteCache.
func (c *RedisCache) Set(ctx context.Context, symbol string, day time.Time, price float64) error {
	if err := c.client.Set(ctx, cacheKey(symbol, day), price, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
