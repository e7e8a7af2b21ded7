package worker_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
	"github.com/packwise/packwise/internal/worker"
)

var fixedNow = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

type stubTrips struct {
	trips    []*trip.Trip
	err      error
	from, to time.Time
}

func (s *stubTrips) ListStartingBetween(_ context.Context, from, to time.Time) ([]*trip.Trip, error) {
	s.from, s.to = from, to
	return s.trips, s.err
}

type stubWeather struct {
	mu       sync.Mutex
	calls    []string
	unknown  map[string]bool
	failures map[string]bool
}

func (s *stubWeather) Get(_ context.Context, location string) (*weather.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, location)

	key := strings.ToLower(location)
	switch {
	case s.unknown[key]:
		return nil, weather.ErrLocationNotFound
	case s.failures[key]:
		return nil, weather.ErrProviderUnavailable
	}
	return &weather.Report{Location: location}, nil
}

func newJob(trips worker.TripLister, w worker.WeatherFetcher) *worker.WarmupJob {
	return worker.NewWarmupJob(worker.WarmupJobConfig{
		Trips:   trips,
		Weather: w,
		Logger:  zerolog.Nop(),
		Now:     func() time.Time { return fixedNow },
	})
}

func TestDefaultWarmupConfig(t *testing.T) {
	cfg := worker.DefaultWarmupConfig()

	assert.Equal(t, 7*24*time.Hour, cfg.Lookahead)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "London", cfg.HealthCheckLocation)
}

func TestWarmupJob_Run(t *testing.T) {
	trips := &stubTrips{trips: []*trip.Trip{
		{ID: "trp_1", Destination: "Lisbon, Porto"},
		{ID: "trp_2", Destination: "lisbon"},
		{ID: "trp_3", Destination: "Atlantis, Rome"},
	}}
	w := &stubWeather{
		unknown:  map[string]bool{"atlantis": true},
		failures: map[string]bool{"rome": true},
	}

	result, err := newJob(trips, w).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Atlantis", "Lisbon", "Porto", "Rome"}, result.Locations)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.NotFound)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Rome", result.Errors[0].Location)

	// Each unique location is looked up once
	assert.Len(t, w.calls, 4)

	// Window covers trips starting today through the lookahead
	assert.Equal(t, fixedNow.Add(-24*time.Hour), trips.from)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), trips.to)
}

func TestWarmupJob_Run_NoTrips(t *testing.T) {
	w := &stubWeather{}

	result, err := newJob(&stubTrips{}, w).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.Locations)
	assert.Zero(t, result.Successful)
	assert.Empty(t, w.calls)
}

func TestWarmupJob_Run_ListError(t *testing.T) {
	trips := &stubTrips{err: errors.New("connection refused")}

	result, err := newJob(trips, &stubWeather{}).Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestWarmupJob_Run_CancelledContext(t *testing.T) {
	trips := &stubTrips{trips: []*trip.Trip{{ID: "trp_1", Destination: "Lisbon, Porto"}}}
	w := &stubWeather{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newJob(trips, w).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Failed)
	assert.Empty(t, w.calls)
}

func TestWarmupJob_WithInMemoryRepository(t *testing.T) {
	repo := trip.NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &trip.Trip{ID: "trp_soon", UserID: "usr_1", Destination: "Paris", StartDate: fixedNow.Add(48 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &trip.Trip{ID: "trp_today", UserID: "usr_2", Destination: "Oslo", StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, repo.Create(ctx, &trip.Trip{ID: "trp_later", UserID: "usr_1", Destination: "Tokyo", StartDate: fixedNow.Add(30 * 24 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &trip.Trip{ID: "trp_past", UserID: "usr_1", Destination: "Cairo", StartDate: fixedNow.Add(-10 * 24 * time.Hour)}))

	w := &stubWeather{}
	result, err := newJob(repo, w).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"Oslo", "Paris"}, result.Locations)
	assert.Equal(t, 2, result.Successful)
}

func TestWarmupJob_GetMetrics(t *testing.T) {
	trips := &stubTrips{trips: []*trip.Trip{{ID: "trp_1", Destination: "Lisbon, Atlantis"}}}
	w := &stubWeather{unknown: map[string]bool{"atlantis": true}}
	job := newJob(trips, w)

	_, err := job.Run(context.Background())
	require.NoError(t, err)
	_, err = job.Run(context.Background())
	require.NoError(t, err)

	m := job.GetMetrics()
	assert.Equal(t, int64(2), m.TotalRuns)
	assert.Equal(t, int64(2), m.SuccessfulLookups)
	assert.Equal(t, int64(2), m.NotFoundLookups)
	assert.Zero(t, m.FailedLookups)
	assert.Equal(t, fixedNow, m.LastRunAt)
}

func TestWarmupJob_CheckProvider(t *testing.T) {
	w := &stubWeather{}
	job := newJob(&stubTrips{}, w)

	require.NoError(t, job.CheckProvider(context.Background()))
	assert.Equal(t, []string{"London"}, w.calls)
}

func TestWarmupJob_WarmLocations(t *testing.T) {
	w := &stubWeather{failures: map[string]bool{"milan": true}}
	job := newJob(&stubTrips{}, w)

	result := job.WarmLocations(context.Background(), []string{"Rome, Milan", "rome", ""})

	assert.Equal(t, []string{"Milan", "Rome"}, result.Locations)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Milan", result.Errors[0].Location)
	assert.True(t, result.Healthy())
	assert.Equal(t, int64(1), job.GetMetrics().TotalRuns)
}

func TestWarmupResult_Healthy(t *testing.T) {
	assert.True(t, (&worker.WarmupResult{}).Healthy())
	assert.True(t, (&worker.WarmupResult{Successful: 2, Failed: 2}).Healthy())
	assert.False(t, (&worker.WarmupResult{Successful: 1, Failed: 2}).Healthy())
}
