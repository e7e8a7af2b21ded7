package weather

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// CurrentAndForecast resolves a location name and returns its weather.
	// Returns ErrLocationNotFound when the name cannot be resolved.
	CurrentAndForecast(ctx context.Context, location string) (*Report, error)

	// Name returns the provider name for logging.
	Name() string
}

// MetricsRecorder receives provider call and cache metrics.
type MetricsRecorder interface {
	RecordRequest(provider, operation string, duration time.Duration, err error)
	RecordCacheHit(provider, operation string)
	RecordCacheMiss(provider, operation string)
}

const metricsOperation = "current-and-forecast"

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache weather data (default: 10 minutes).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on provider errors (default: 1 hour).
	StaleIfErrorTTL time.Duration

	// Metrics is optional.
	Metrics MetricsRecorder

	// Concurrency bounds parallel lookups for multi-city destinations
	// (default 4).
	Concurrency int
}

// Service provides weather data with caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration
	metrics         MetricsRecorder
	concurrency     int

	// inflight collapses concurrent misses for the same key into one
	// provider call. mu is never held across that call.
	inflight singleflight.Group

	mu              sync.RWMutex
	cache           map[string]*cachedReport
	lastCleanup     time.Time
	cleanupInterval time.Duration
}

type cachedReport struct {
	report    *Report
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 1 * time.Hour
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &Service{
		provider:        cfg.Provider,
		concurrency:     concurrency,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		metrics:         cfg.Metrics,
		cache:           make(map[string]*cachedReport),
		cleanupInterval: 5 * time.Minute,
	}
}

// Get returns the weather report for a single location, from cache while
// it is fresh.
func (s *Service) Get(ctx context.Context, location string) (*Report, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrLocationNotFound
	}
	key := cacheKey(location)

	if report, ok := s.fresh(key); ok {
		if s.metrics != nil {
			s.metrics.RecordCacheHit(s.provider.Name(), metricsOperation)
		}
		return report, nil
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss(s.provider.Name(), metricsOperation)
	}

	v, err, _ := s.inflight.Do(key, func() (interface{}, error) {
		return s.fetch(ctx, location, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Report), nil
}

// ForDestination looks up every location in a comma-separated destination,
// in parallel, keeping input order. Failures are reported per location; one
// bad name never hides the others.
func (s *Service) ForDestination(ctx context.Context, destination string) []LocationReport {
	var locations []string
	for _, part := range strings.Split(destination, ",") {
		if location := strings.TrimSpace(part); location != "" {
			locations = append(locations, location)
		}
	}

	results := make([]LocationReport, len(locations))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, location := range locations {
		g.Go(func() error {
			report, err := s.Get(ctx, location)
			if err != nil {
				s.logger.Warn().
					Str("location", location).
					Err(err).
					Msg("failed to get weather for location")
			}
			results[i] = LocationReport{Location: location, Report: report, Err: err}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // lookups report errors per location

	return results
}

func (s *Service) fresh(key string) (*Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		return cached.report, true
	}
	return nil, false
}

// fetch calls the provider and stores the result. On provider failure a
// cached report younger than staleIfErrorTTL is served instead.
func (s *Service) fetch(ctx context.Context, location, key string) (*Report, error) {
	// Another caller may have filled the entry between the miss and now.
	if report, ok := s.fresh(key); ok {
		return report, nil
	}

	s.logger.Debug().
		Str("location", location).
		Str("provider", s.provider.Name()).
		Msg("fetching weather from provider")

	start := time.Now()
	report, err := s.provider.CurrentAndForecast(ctx, location)
	if s.metrics != nil {
		s.metrics.RecordRequest(s.provider.Name(), metricsOperation, time.Since(start), err)
	}
	if err != nil {
		// An unknown location stays unknown; stale data must not mask it.
		if errors.Is(err, ErrLocationNotFound) {
			return nil, err
		}
		return s.stale(key, location, err)
	}

	now := time.Now()
	s.mu.Lock()
	s.cache[key] = &cachedReport{report: report, fetchedAt: now, expiresAt: now.Add(s.cacheTTL)}
	s.cleanupIfNeeded(now)
	s.mu.Unlock()

	return report, nil
}

func (s *Service) stale(key, location string, cause error) (*Report, error) {
	s.logger.Error().Err(cause).
		Str("location", location).
		Msg("failed to fetch weather")

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()

	if ok && time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
		s.logger.Warn().
			Str("location", location).
			Time("fetched_at", cached.fetchedAt).
			Msg("serving stale weather data due to provider error")
		return cached.report, nil
	}
	return nil, ErrProviderUnavailable
}

func cacheKey(location string) string {
	return strings.ToLower(location)
}

// cleanupIfNeeded drops entries too old to serve even as stale data, at
// most once per cleanupInterval. Callers hold mu.
func (s *Service) cleanupIfNeeded(now time.Time) {
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}

	s.lastCleanup = now
	expired := 0

	for key, cached := range s.cache {
		if now.After(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.cache, key)
			expired++
		}
	}

	if expired > 0 {
		s.logger.Debug().
			Int("expired_entries", expired).
			Msg("cleaned up expired weather cache entries")
	}
}

// InvalidateCache clears all cached data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedReport)
}

// CacheStats returns cache statistics.
func (s *Service) CacheStats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	fresh := 0
	for _, c := range s.cache {
		if now.Before(c.expiresAt) {
			fresh++
		}
	}

	return CacheStats{
		Entries:      len(s.cache),
		FreshEntries: fresh,
		Provider:     s.provider.Name(),
	}
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Entries      int
	FreshEntries int
	Provider     string
}
