package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/weiawesome/neurolab/neuro-api/internal/cache"
	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/neuro-api/internal/repository"
	"github.com/weiawesome/neurolab/pkg/log"
)

// Live series bounds.
const (
	LiveMin      = 10.0
	LiveMax      = 100.0
	LiveStep     = 5.0
	LiveWindow   = 6
	analyticsKey = "latest"
)

// DashboardOption configures the dashboard service.
type DashboardOption func(*dashboardServiceImpl)

// WithRand sets the random source of the live series.
func WithRand(r *rand.Rand) DashboardOption {
	return func(s *dashboardServiceImpl) { s.rnd = r }
}

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) DashboardOption {
	return func(s *dashboardServiceImpl) { s.now = now }
}

type dashboardServiceImpl struct {
	repo           repository.AnalyticsRepository
	cache          cache.AnalyticsCache
	cacheTTL       time.Duration
	analyticsDelay time.Duration
	sf             singleflight.Group

	mu   sync.Mutex
	rnd  *rand.Rand
	live []domain.BrainData
	now  func() time.Time
}

func NewDashboardService(
	repo repository.AnalyticsRepository,
	analyticsCache cache.AnalyticsCache,
	cacheTTL time.Duration,
	analyticsDelay time.Duration,
	opts ...DashboardOption,
) DashboardService {
	s := &dashboardServiceImpl{
		repo:           repo,
		cache:          analyticsCache,
		cacheTTL:       cacheTTL,
		analyticsDelay: analyticsDelay,
		live:           repository.DefaultLiveSeries(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	return s
}

// Analytics returns the analytics snapshot after the configured delay.
func (s *dashboardServiceImpl) Analytics(ctx context.Context) (*domain.AnalyticsSnapshot, error) {
	if err := sleep(ctx, s.analyticsDelay); err != nil {
		return nil, err
	}

	cacheKey := s.cache.BuildKey(analyticsKey)

	// Use singleflight to prevent duplicate requests for the same key
	result, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		return s.fetchWithCache(ctx, cacheKey)
	})
	if err != nil {
		return nil, err
	}

	snapshot, ok := result.(*domain.AnalyticsSnapshot)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from singleflight")
	}
	return snapshot, nil
}

func (s *dashboardServiceImpl) fetchWithCache(ctx context.Context, cacheKey string) (*domain.AnalyticsSnapshot, error) {
	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, cache.ErrCacheMiss) {
		// Log error but continue to fetch from DB
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("cache get error")
	}

	snapshot, err := s.repo.GetSnapshot(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analytics from repository: %w", err)
	}

	// Store in cache (async to avoid blocking response)
	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.cache.Set(cacheCtx, cacheKey, snapshot, s.cacheTTL); err != nil {
			l := log.L()
			l.Warn().Err(err).Msg("cache set error")
		}
	}()

	return snapshot, nil
}

// Home returns the home dashboard with the current live series.
func (s *dashboardServiceImpl) Home(_ context.Context) (*domain.HomeData, error) {
	home := repository.DefaultHome(s.now())

	s.mu.Lock()
	home.LiveData = append([]domain.BrainData(nil), s.live...)
	s.mu.Unlock()

	return &home, nil
}

// LiveBrainData drops the oldest sample and appends one that moves at
// most LiveStep from the previous value, clamped to [LiveMin, LiveMax].
func (s *dashboardServiceImpl) LiveBrainData(_ context.Context) ([]domain.BrainData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := LiveMin
	if n := len(s.live); n > 0 {
		last = s.live[n-1].Value
	}

	change := (s.rnd.Float64() - 0.5) * 2 * LiveStep
	next := math.Max(LiveMin, math.Min(LiveMax, last+change))

	s.live = append(s.live, domain.BrainData{
		Timestamp: s.now().UTC().Format(TimestampLayout),
		Value:     next,
	})
	if len(s.live) > LiveWindow {
		s.live = append([]domain.BrainData(nil), s.live[len(s.live)-LiveWindow:]...)
	}

	return append([]domain.BrainData(nil), s.live...), nil
}
