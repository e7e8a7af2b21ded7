package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/packwise/packwise/internal/telemetry"

// ProviderMetrics holds metrics for external provider calls.
type ProviderMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	cacheHit        metric.Int64Counter
	cacheMiss       metric.Int64Counter
}

// NewProviderMetrics creates metrics for monitoring external provider calls.
func NewProviderMetrics() (*ProviderMetrics, error) {
	meter := otel.Meter(meterName)

	requestDuration, err := meter.Float64Histogram(
		"provider.request.duration",
		metric.WithDescription("Duration of provider requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"provider.request.total",
		metric.WithDescription("Total number of provider requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cacheHit, err := meter.Int64Counter(
		"provider.cache.hit",
		metric.WithDescription("Number of cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMiss, err := meter.Int64Counter(
		"provider.cache.miss",
		metric.WithDescription("Number of cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	return &ProviderMetrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheHit:        cacheHit,
		cacheMiss:       cacheMiss,
	}, nil
}

// RecordRequest records metrics for a provider request.
func (m *ProviderMetrics) RecordRequest(provider, operation string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("provider.name", provider),
		attribute.String("provider.operation", operation),
	}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	// Detached from the request so cancellation never drops a sample.
	ctx := context.Background()
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCacheHit records a cache hit for a provider.
func (m *ProviderMetrics) RecordCacheHit(provider, operation string) {
	m.cacheHit.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("provider.name", provider),
		attribute.String("provider.operation", operation),
	))
}

// RecordCacheMiss records a cache miss for a provider.
func (m *ProviderMetrics) RecordCacheMiss(provider, operation string) {
	m.cacheMiss.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("provider.name", provider),
		attribute.String("provider.operation", operation),
	))
}

// PlanMetrics holds metrics for generated packing lists and outfit plans.
type PlanMetrics struct {
	plansTotal   metric.Int64Counter
	packingItems metric.Int64Histogram
	outfitDays   metric.Int64Histogram
}

// NewPlanMetrics creates the plan generation instruments.
func NewPlanMetrics() (*PlanMetrics, error) {
	meter := otel.Meter(meterName)

	plansTotal, err := meter.Int64Counter(
		"plan.generated.total",
		metric.WithDescription("Number of generated plans"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return nil, err
	}

	packingItems, err := meter.Int64Histogram(
		"plan.packing.items",
		metric.WithDescription("Number of items in a generated packing list"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	outfitDays, err := meter.Int64Histogram(
		"plan.outfit.days",
		metric.WithDescription("Number of days in a generated outfit plan"),
		metric.WithUnit("{day}"),
	)
	if err != nil {
		return nil, err
	}

	return &PlanMetrics{
		plansTotal:   plansTotal,
		packingItems: packingItems,
		outfitDays:   outfitDays,
	}, nil
}

// RecordPlan records one generated plan.
func (m *PlanMetrics) RecordPlan(ctx context.Context, items, days int, weatherAvailable bool) {
	attrs := metric.WithAttributes(attribute.Bool("weather.available", weatherAvailable))
	m.plansTotal.Add(ctx, 1, attrs)
	m.packingItems.Record(ctx, int64(items), attrs)
	m.outfitDays.Record(ctx, int64(days), attrs)
}
