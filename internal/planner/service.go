// Package planner combines weather lookup with the packing and outfit engines
// to produce a complete trip plan.
package planner

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/packwise/packwise/internal/outfit"
	"github.com/packwise/packwise/internal/packing"
	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
)

// WeatherLookup resolves weather for every location of a destination.
type WeatherLookup interface {
	ForDestination(ctx context.Context, destination string) []weather.LocationReport
}

// MetricsRecorder receives one sample per generated plan.
type MetricsRecorder interface {
	RecordPlan(ctx context.Context, items, days int, weatherAvailable bool)
}

// ServiceConfig holds configuration for the planner service.
type ServiceConfig struct {
	// Weather resolves destination weather. Plans are built without weather when nil.
	Weather WeatherLookup

	// Outfits plans daily outfits (default: max-day attach mode).
	Outfits *outfit.Planner

	// UseForecast uses each day's real forecast when the provider returns one,
	// falling back to the synthetic cycle for days past its end.
	UseForecast bool

	// Tracer for plan spans (default: global tracer).
	Tracer trace.Tracer

	// Metrics is optional.
	Metrics MetricsRecorder

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service builds trip plans.
type Service struct {
	weather     WeatherLookup
	outfits     *outfit.Planner
	useForecast bool
	tracer      trace.Tracer
	metrics     MetricsRecorder
	logger      zerolog.Logger
}

// NewService creates a new planner service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Outfits == nil {
		cfg.Outfits = outfit.NewPlanner(outfit.PlannerConfig{})
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer("packwise/planner")
	}
	return &Service{
		weather:     cfg.Weather,
		outfits:     cfg.Outfits,
		useForecast: cfg.UseForecast,
		tracer:      cfg.Tracer,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
}

// Plan is everything generated for one trip.
type Plan struct {
	PackingList packing.List
	Outfits     []outfit.DailyOutfit
	Weather     []weather.LocationReport
	// Base is the reading the plan was built from; nil when no location resolved.
	Base        *weather.Snapshot
	Suggestion  *outfit.Suggestion
	Strategy    *packing.Strategy
	GeneratedAt time.Time
}

// Warnings returns the locations whose weather could not be resolved.
func (p *Plan) Warnings() []weather.LocationReport {
	var warnings []weather.LocationReport
	for _, r := range p.Weather {
		if r.Err != nil {
			warnings = append(warnings, r)
		}
	}
	return warnings
}

// Build resolves weather for the destination and runs both engines once.
// Weather failures never fail the plan; they are reported per location.
func (s *Service) Build(ctx context.Context, params trip.Parameters) *Plan {
	ctx, span := s.tracer.Start(ctx, "planner.Build",
		trace.WithAttributes(
			attribute.String("trip.destination", params.Destination),
			attribute.Int("trip.duration_days", params.DurationDays),
		),
	)
	defer span.End()

	var reports []weather.LocationReport
	if s.weather != nil && params.Destination != "" {
		reports = s.weather.ForDestination(ctx, params.Destination)
	}

	current, forecast := baseWeather(reports)
	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
		}
	}
	span.SetAttributes(
		attribute.Int("weather.locations", len(reports)),
		attribute.Int("weather.failed", failed),
		attribute.Bool("weather.available", current != nil),
	)
	if failed > 0 {
		s.logger.Warn().
			Str("destination", params.Destination).
			Int("failed", failed).
			Int("locations", len(reports)).
			Msg("plan built with missing weather")
	}

	src := outfit.SyntheticCycle(current)
	if s.useForecast && len(forecast) > 0 {
		src = outfit.ForecastSource(forecast, src)
	}

	plan := s.assemble(ctx, params, current, src)
	plan.Weather = reports
	return plan
}

// BuildWithWeather runs both engines against an already-resolved reading.
// base may be nil.
func (s *Service) BuildWithWeather(ctx context.Context, params trip.Parameters, base *weather.Snapshot) *Plan {
	ctx, span := s.tracer.Start(ctx, "planner.BuildWithWeather",
		trace.WithAttributes(attribute.Bool("weather.available", base != nil)),
	)
	defer span.End()

	return s.assemble(ctx, params, base, outfit.SyntheticCycle(base))
}

// Outfits plans daily outfits only.
func (s *Service) Outfits(params trip.Parameters, base *weather.Snapshot) []outfit.DailyOutfit {
	return s.outfits.Plan(params, outfit.SyntheticCycle(base))
}

func (s *Service) assemble(ctx context.Context, params trip.Parameters, base *weather.Snapshot, src outfit.WeatherSource) *Plan {
	plan := &Plan{
		PackingList: packing.Generate(params, base),
		Outfits:     s.outfits.Plan(params, src),
		Base:        base,
		Suggestion:  outfit.QuickSuggestion(base, params.Gender),
		Strategy:    packing.StrategyFor(params.LuggageType),
		GeneratedAt: time.Now().UTC(),
	}
	if s.metrics != nil {
		s.metrics.RecordPlan(ctx, plan.PackingList.Count(), len(plan.Outfits), base != nil)
	}
	return plan
}

// baseWeather picks the current reading and forecast of the first resolved location.
func baseWeather(reports []weather.LocationReport) (*weather.Snapshot, []weather.Snapshot) {
	for _, r := range reports {
		if r.Err == nil && r.Report != nil {
			current := r.Report.Current
			return &current, r.Report.Forecast
		}
	}
	return nil, nil
}
