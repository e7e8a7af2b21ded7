// Package main provides the entrypoint for the Packwise background worker.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/packwise/packwise/internal/api/response"
	"github.com/packwise/packwise/internal/database"
	"github.com/packwise/packwise/internal/provider/resilience"
	"github.com/packwise/packwise/internal/telemetry"
	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
	"github.com/packwise/packwise/internal/weather/openmeteo"
	"github.com/packwise/packwise/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "packwise-worker"

	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Packwise worker")

	// Worker also exposes health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, err := telemetry.Init(ctx, telemetry.ConfigFromEnv(serviceName, Version))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}

	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	registry := resilience.NewRegistry()
	clientCfg := resilience.DefaultClientConfig(openmeteo.ProviderName)
	clientCfg.Registry = registry
	clientCfg.Logger = log
	clientCfg.UserAgent = "packwise-worker/" + Version
	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: openmeteo.NewClient(openmeteo.ClientConfig{
			BaseURL:      os.Getenv("OPENMETEO_BASE_URL"),
			GeocodingURL: os.Getenv("OPENMETEO_GEOCODING_URL"),
			HTTPClient:   resilience.NewClient(clientCfg),
			Logger:       log,
		}),
		Logger:  log,
		Metrics: providerMetrics,
	})

	warmupCfg := worker.DefaultWarmupConfig()
	if days, err := strconv.Atoi(os.Getenv("WARMUP_LOOKAHEAD_DAYS")); err == nil && days > 0 {
		warmupCfg.Lookahead = time.Duration(days) * 24 * time.Hour
	}
	if loc := os.Getenv("WARMUP_HEALTH_CHECK_LOCATION"); loc != "" {
		warmupCfg.HealthCheckLocation = loc
	}

	warmupJob := worker.NewWarmupJob(worker.WarmupJobConfig{
		Config:  warmupCfg,
		Trips:   trip.NewPostgresRepository(pool),
		Weather: weatherService,
		Logger:  log,
	})
	dispatcher := worker.NewDispatcher(warmupJob, log)

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		providers := make([]map[string]interface{}, 0)
		for _, ph := range registry.Snapshot() {
			providers = append(providers, map[string]interface{}{
				"provider":            ph.Name,
				"status":              ph.Status(),
				"circuitState":        ph.CircuitState.String(),
				"consecutiveFailures": ph.FailureStreak,
				"lastError":           ph.LastError,
			})
		}

		m := warmupJob.GetMetrics()
		response.JSON(w, r, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"version":   Version,
			"providers": providers,
			"warmup": map[string]interface{}{
				"totalRuns":   m.TotalRuns,
				"successful":  m.SuccessfulLookups,
				"failed":      m.FailedLookups,
				"notFound":    m.NotFoundLookups,
				"lastRunAt":   m.LastRunAt,
				"lastRunTook": m.LastRunDuration.String(),
			},
		})
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if projectID != "" && subscription != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			Dispatcher:       dispatcher,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer func() {
			if err := handler.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close pubsub client")
			}
		}()

		go func() {
			if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
	} else {
		interval := time.Hour
		if d, err := time.ParseDuration(os.Getenv("WARMUP_INTERVAL")); err == nil && d > 0 {
			interval = d
		}
		log.Warn().
			Dur("interval", interval).
			Msg("pubsub not configured, running warm-up on a timer")
		go runOnTicker(ctx, dispatcher, interval)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}

// runOnTicker stands in for the scheduler when Pub/Sub is not configured.
func runOnTicker(ctx context.Context, d *worker.Dispatcher, interval time.Duration) {
	payload := []byte(`{"job_type":"` + worker.JobWeatherWarmup + `"}`)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.Dispatch(ctx, payload)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
