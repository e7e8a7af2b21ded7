package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwise/packwise/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		OTLPEndpoint:   "localhost:4317",
		Enabled:        false,
	})

	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)

	// Noop provider should have nil TracerProvider and MeterProvider
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)

	// Shutdown should not error
	err = provider.Shutdown(ctx)
	assert.NoError(t, err)
}

func TestProvider_Shutdown_NilProviders(t *testing.T) {
	provider := &telemetry.Provider{}
	err := provider.Shutdown(context.Background())
	assert.NoError(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")
	t.Setenv("APP_ENV", "production")

	cfg := telemetry.ConfigFromEnv("packwise-api", "1.4.0")

	assert.Equal(t, "packwise-api", cfg.ServiceName)
	assert.Equal(t, "1.4.0", cfg.ServiceVersion)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
	assert.False(t, cfg.Insecure)
	assert.Equal(t, "production", cfg.Environment)
	assert.InDelta(t, 0.25, cfg.SampleRatio, 1e-9)
	assert.Equal(t, telemetry.DefaultMetricInterval, cfg.MetricInterval)
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "2")
	t.Setenv("APP_ENV", "")

	cfg := telemetry.ConfigFromEnv("packwise-worker", "dev")

	assert.False(t, cfg.Enabled)
	assert.Equal(t, telemetry.DefaultOTLPEndpoint, cfg.OTLPEndpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, "development", cfg.Environment)
	assert.Zero(t, cfg.SampleRatio)
}

func TestSampler(t *testing.T) {
	assert.Contains(t, telemetry.Sampler(0).Description(), "AlwaysOnSampler")
	assert.Contains(t, telemetry.Sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, telemetry.Sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
	assert.Contains(t, telemetry.Sampler(0.25).Description(), "ParentBased")
}

func TestProviderMetrics_Record(t *testing.T) {
	pm, err := telemetry.NewProviderMetrics()
	require.NoError(t, err)
	require.NotNil(t, pm)

	// Should not panic with the noop meter
	pm.RecordRequest("open-meteo", "current-and-forecast", 150*time.Millisecond, nil)
	pm.RecordRequest("open-meteo", "current-and-forecast", time.Second, errors.New("timeout"))
	pm.RecordCacheHit("open-meteo", "current-and-forecast")
	pm.RecordCacheMiss("open-meteo", "current-and-forecast")
}

func TestPlanMetrics_RecordPlan(t *testing.T) {
	m, err := telemetry.NewPlanMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	m.RecordPlan(context.Background(), 42, 5, true)
	m.RecordPlan(context.Background(), 30, 0, false)
}
