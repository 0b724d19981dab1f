package cache

import (
	"context"
	"errors"
	"time"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

type AnalyticsCache interface {
	Get(ctx context.Context, key string) (*domain.AnalyticsSnapshot, error)
	Set(ctx context.Context, key string, snapshot *domain.AnalyticsSnapshot, ttl time.Duration) error
	BuildKey(parts ...string) string
	Close() error
}
