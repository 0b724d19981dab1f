package cache

import (
	"context"
	"sync"
	"time"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
)

type memoryEntry struct {
	snapshot  domain.AnalyticsSnapshot
	expiresAt time.Time
}

// MemoryAnalyticsCache keeps snapshots in process. It is used when no
// redis address is configured.
type MemoryAnalyticsCache struct {
	mu      sync.RWMutex
	prefix  string
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryAnalyticsCache(prefix string) *MemoryAnalyticsCache {
	return &MemoryAnalyticsCache{
		prefix:  prefix,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryAnalyticsCache) BuildKey(parts ...string) string {
	return buildKey(c.prefix, parts...)
}

func (c *MemoryAnalyticsCache) Get(_ context.Context, key string) (*domain.AnalyticsSnapshot, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || (!entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt)) {
		return nil, ErrCacheMiss
	}

	snapshot := entry.snapshot
	snapshot.Recommendations = append([]string(nil), entry.snapshot.Recommendations...)
	snapshot.TimeSeriesData = append([]domain.TimePoint(nil), entry.snapshot.TimeSeriesData...)
	return &snapshot, nil
}

// Set stores a copy of snapshot. A non-positive ttl never expires.
func (c *MemoryAnalyticsCache) Set(_ context.Context, key string, snapshot *domain.AnalyticsSnapshot, ttl time.Duration) error {
	entry := memoryEntry{snapshot: *snapshot}
	entry.snapshot.Recommendations = append([]string(nil), snapshot.Recommendations...)
	entry.snapshot.TimeSeriesData = append([]domain.TimePoint(nil), snapshot.TimeSeriesData...)
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryAnalyticsCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
