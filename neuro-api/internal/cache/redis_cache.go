package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weiawesome/neurolab/neuro-api/internal/config"
	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

type RedisAnalyticsCache struct {
	client *redis.Client
	prefix string
}

func NewRedisAnalyticsCache(cfg config.RedisConfig, prefix string) (*RedisAnalyticsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisAnalyticsCacheWithClient(client, prefix), nil
}

// NewRedisAnalyticsCacheWithClient wraps an existing client without pinging it.
func NewRedisAnalyticsCacheWithClient(client *redis.Client, prefix string) *RedisAnalyticsCache {
	return &RedisAnalyticsCache{
		client: client,
		prefix: prefix,
	}
}

func (c *RedisAnalyticsCache) BuildKey(parts ...string) string {
	return buildKey(c.prefix, parts...)
}

func (c *RedisAnalyticsCache) Get(ctx context.Context, key string) (*domain.AnalyticsSnapshot, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var snapshot domain.AnalyticsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &snapshot, nil
}

func (c *RedisAnalyticsCache) Set(ctx context.Context, key string, snapshot *domain.AnalyticsSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *RedisAnalyticsCache) Close() error {
	return c.client.Close()
}

func buildKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix, "analytics"}, parts...), ":")
}
