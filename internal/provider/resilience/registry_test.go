package resilience_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwise/packwise/internal/provider/resilience"
)

type fakeCircuit struct {
	state gobreaker.State
}

func (f fakeCircuit) CircuitBreakerState() gobreaker.State   { return f.state }
func (f fakeCircuit) CircuitBreakerCounts() gobreaker.Counts { return gobreaker.Counts{} }

func TestRegistry_ClientRegistersItself(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("openmeteo")
	cfg.Registry = registry

	client := resilience.NewClient(cfg)

	assert.Equal(t, "openmeteo", client.Name())
	assert.Equal(t, 1, registry.Len())

	health, ok := registry.Health("openmeteo")
	require.True(t, ok)
	assert.Equal(t, "openmeteo", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.CircuitState)
	assert.Equal(t, resilience.StatusHealthy, health.Status())
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
	assert.Zero(t, health.FailureStreak)
}

func TestRegistry_Unregister(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("openmeteo", fakeCircuit{})
	require.Equal(t, 1, registry.Len())

	registry.Unregister("openmeteo")

	assert.Zero(t, registry.Len())
	_, ok := registry.Health("openmeteo")
	assert.False(t, ok)
}

func TestRegistry_FailureStreak(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("openmeteo", fakeCircuit{})

	registry.RecordFailure("openmeteo", assert.AnError)
	registry.RecordFailure("openmeteo", nil)

	health, _ := registry.Health("openmeteo")
	assert.Equal(t, 2, health.FailureStreak)
	require.NotNil(t, health.LastFailureAt)
	assert.Equal(t, assert.AnError.Error(), health.LastError, "nil error keeps the previous message")

	registry.RecordSuccess("openmeteo")

	health, _ = registry.Health("openmeteo")
	assert.Zero(t, health.FailureStreak)
	require.NotNil(t, health.LastSuccessAt)
	assert.NotNil(t, health.LastFailureAt)
}

func TestRegistry_RegisterResetsOutcomes(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("openmeteo", fakeCircuit{})
	registry.RecordFailure("openmeteo", assert.AnError)

	registry.Register("openmeteo", fakeCircuit{})

	health, _ := registry.Health("openmeteo")
	assert.Zero(t, health.FailureStreak)
	assert.Empty(t, health.LastError)
}

func TestRegistry_UnknownNamesIgnored(t *testing.T) {
	registry := resilience.NewRegistry()

	assert.NotPanics(t, func() {
		registry.RecordSuccess("nonexistent")
		registry.RecordFailure("nonexistent", assert.AnError)
	})
	assert.Zero(t, registry.Len())
}

func TestRegistry_SnapshotSortedByName(t *testing.T) {
	registry := resilience.NewRegistry()
	assert.Empty(t, registry.Names())

	registry.Register("openmeteo", fakeCircuit{state: gobreaker.StateOpen})
	registry.Register("geocoder", fakeCircuit{})
	registry.Register("archive", fakeCircuit{state: gobreaker.StateHalfOpen})

	snapshot := registry.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "archive", snapshot[0].Name)
	assert.Equal(t, resilience.StatusDegraded, snapshot[0].Status())
	assert.Equal(t, "geocoder", snapshot[1].Name)
	assert.Equal(t, "openmeteo", snapshot[2].Name)
	assert.Equal(t, resilience.StatusUnhealthy, snapshot[2].Status())

	assert.Equal(t, []string{"archive", "geocoder", "openmeteo"}, registry.Names())
}

func TestProviderHealth_Status(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  string
	}{
		{gobreaker.StateClosed, resilience.StatusHealthy},
		{gobreaker.StateHalfOpen, resilience.StatusDegraded},
		{gobreaker.StateOpen, resilience.StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			h := &resilience.ProviderHealth{CircuitState: tt.state}
			assert.Equal(t, tt.want, h.Status())
		})
	}
}

func TestRegistry_ClientRecordsOutcomes(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer server.Close()

	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("openmeteo")
	cfg.Registry = registry
	cfg.MaxRetries = 1
	cfg.InitialInterval = time.Millisecond
	cfg.MaxInterval = time.Millisecond
	client := resilience.NewClient(cfg)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	health, ok := registry.Health("openmeteo")
	require.True(t, ok)
	require.NotNil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)

	status.Store(http.StatusServiceUnavailable)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	health, _ = registry.Health("openmeteo")
	require.NotNil(t, health.LastFailureAt)
	assert.Positive(t, health.FailureStreak)
	assert.Contains(t, health.LastError, "Service Unavailable")
}
