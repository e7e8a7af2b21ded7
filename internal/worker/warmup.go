package worker

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
)

// TripLister lists trips of all users by start date.
type TripLister interface {
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*trip.Trip, error)
}

// WeatherFetcher resolves the weather for one location, filling its cache.
type WeatherFetcher interface {
	Get(ctx context.Context, location string) (*weather.Report, error)
}

// WarmupJob pre-fetches weather for destinations of upcoming trips so that
// plans built shortly before departure are served from cache.
type WarmupJob struct {
	config  WarmupConfig
	trips   TripLister
	weather WeatherFetcher
	logger  zerolog.Logger
	now     func() time.Time

	mu      sync.Mutex
	metrics WarmupMetrics
}

// WarmupMetrics are cumulative warm-up statistics.
type WarmupMetrics struct {
	TotalRuns         int64
	SuccessfulLookups int64
	FailedLookups     int64
	NotFoundLookups   int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// WarmupJobConfig holds configuration for creating a WarmupJob.
type WarmupJobConfig struct {
	Config  WarmupConfig
	Trips   TripLister
	Weather WeatherFetcher
	Logger  zerolog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewWarmupJob creates a new warm-up job.
func NewWarmupJob(cfg WarmupJobConfig) *WarmupJob {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &WarmupJob{
		config:  cfg.Config.withDefaults(),
		trips:   cfg.Trips,
		weather: cfg.Weather,
		logger:  cfg.Logger,
		now:     now,
	}
}

// WarmupResult contains the result of a warm-up run.
type WarmupResult struct {
	Locations  []string
	Successful int
	Failed     int
	NotFound   int
	Errors     []WarmupError
	Duration   time.Duration
}

// WarmupError represents a failed lookup.
type WarmupError struct {
	Location string
	Error    string
}

// Run warms the weather cache for every unique location of trips starting
// within the lookahead window. Unknown locations are counted separately and
// do not count as failures.
func (j *WarmupJob) Run(ctx context.Context) (*WarmupResult, error) {
	now := j.now()
	trips, err := j.trips.ListStartingBetween(ctx, now.Add(-24*time.Hour), now.Add(j.config.Lookahead))
	if err != nil {
		return nil, err
	}

	locations := uniqueLocations(trips)
	j.logger.Info().
		Int("trips", len(trips)).
		Int("locations", len(locations)).
		Int("concurrency", j.config.Concurrency).
		Msg("starting weather warm-up job")

	return j.warmAll(ctx, locations), nil
}

// WarmLocations warms the given destinations directly, e.g. right after a
// trip is saved. Entries are split and deduped like trip destinations.
func (j *WarmupJob) WarmLocations(ctx context.Context, destinations []string) *WarmupResult {
	trips := make([]*trip.Trip, 0, len(destinations))
	for _, d := range destinations {
		trips = append(trips, &trip.Trip{Destination: d})
	}
	return j.warmAll(ctx, uniqueLocations(trips))
}

func (j *WarmupJob) warmAll(ctx context.Context, locations []string) *WarmupResult {
	start := j.now()
	result := &WarmupResult{Locations: locations}

	locationsChan := make(chan string, len(locations))
	resultsChan := make(chan lookupResult, len(locations))

	var wg sync.WaitGroup
	for i := 0; i < min(j.config.Concurrency, max(len(locations), 1)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.warmWorker(ctx, locationsChan, resultsChan)
		}()
	}

	for _, loc := range locations {
		locationsChan <- loc
	}
	close(locationsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for lr := range resultsChan {
		switch {
		case lr.err == nil:
			result.Successful++
		case errors.Is(lr.err, weather.ErrLocationNotFound):
			result.NotFound++
		default:
			result.Failed++
			result.Errors = append(result.Errors, WarmupError{Location: lr.location, Error: lr.err.Error()})
		}
	}
	sort.Slice(result.Errors, func(a, b int) bool { return result.Errors[a].Location < result.Errors[b].Location })

	result.Duration = j.now().Sub(start)
	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("not_found", result.NotFound).
		Msg("weather warm-up completed")

	return result
}

// Healthy reports whether a run counts as a success: no more lookups
// failed than succeeded.
func (r *WarmupResult) Healthy() bool {
	return r.Failed <= r.Successful
}

type lookupResult struct {
	location string
	err      error
}

func (j *WarmupJob) warmWorker(ctx context.Context, locations <-chan string, results chan<- lookupResult) {
	for loc := range locations {
		select {
		case <-ctx.Done():
			results <- lookupResult{location: loc, err: ctx.Err()}
		default:
			results <- lookupResult{location: loc, err: j.warm(ctx, loc)}
		}
	}
}

func (j *WarmupJob) warm(ctx context.Context, location string) error {
	lookupCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	_, err := j.weather.Get(lookupCtx, location)
	return err
}

// CheckProvider looks up the health check location once.
func (j *WarmupJob) CheckProvider(ctx context.Context) error {
	return j.warm(ctx, j.config.HealthCheckLocation)
}

// uniqueLocations splits trip destinations and dedupes them case-insensitively,
// keeping the first spelling seen. The result is sorted for stable logs.
func uniqueLocations(trips []*trip.Trip) []string {
	seen := make(map[string]bool)
	var locations []string
	for _, t := range trips {
		for _, loc := range trip.SplitLocations(t.Destination) {
			key := strings.ToLower(loc)
			if seen[key] {
				continue
			}
			seen[key] = true
			locations = append(locations, loc)
		}
	}
	sort.Strings(locations)
	return locations
}

func (j *WarmupJob) updateMetrics(result *WarmupResult) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SuccessfulLookups += int64(result.Successful)
	j.metrics.FailedLookups += int64(result.Failed)
	j.metrics.NotFoundLookups += int64(result.NotFound)
	j.metrics.LastRunAt = j.now()
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a snapshot of the cumulative metrics.
func (j *WarmupJob) GetMetrics() WarmupMetrics {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.metrics
}
