// Package main provides the entrypoint for the Packwise API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/packwise/packwise/internal/api"
	"github.com/packwise/packwise/internal/api/handler"
	"github.com/packwise/packwise/internal/api/middleware"
	"github.com/packwise/packwise/internal/auth"
	"github.com/packwise/packwise/internal/database"
	"github.com/packwise/packwise/internal/itinerary"
	"github.com/packwise/packwise/internal/outfit"
	"github.com/packwise/packwise/internal/packing"
	"github.com/packwise/packwise/internal/planner"
	"github.com/packwise/packwise/internal/provider/resilience"
	"github.com/packwise/packwise/internal/telemetry"
	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
	"github.com/packwise/packwise/internal/weather/openmeteo"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "packwise-api"

	// Local development reads .env; deployed environments set real variables.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Packwise API")

	port := getEnv("APP_PORT", "8080")

	// Initialize OpenTelemetry
	ctx := context.Background()
	otelCfg := telemetry.ConfigFromEnv(serviceName, Version)

	tp, err := telemetry.Init(ctx, otelCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if otelCfg.Enabled {
		log.Info().
			Str("otlp_endpoint", otelCfg.OTLPEndpoint).
			Str("environment", otelCfg.Environment).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics(nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}
	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}
	planMetrics, err := telemetry.NewPlanMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize plan metrics")
	}

	// Storage: postgres unless STORAGE_BACKEND=memory
	var (
		tripRepo      trip.Repository
		checklistRepo packing.Repository
		dbPinger      handler.Pinger
	)
	switch backend := getEnv("STORAGE_BACKEND", "postgres"); backend {
	case "memory":
		tripRepo = trip.NewInMemoryRepository()
		checklistRepo = packing.NewInMemoryRepository()
		log.Warn().Msg("using in-memory storage - data is lost on restart")
	case "postgres":
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		tripRepo = trip.NewPostgresRepository(pool)
		checklistRepo = packing.NewPostgresRepository(pool)
		dbPinger = pool
	default:
		log.Fatal().Str("backend", backend).Msg("unknown STORAGE_BACKEND")
	}

	tripService := trip.NewService(tripRepo)
	checklistService := packing.NewService(checklistRepo)

	// JWT validation for /v1/me routes
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey:   jwtSigningKey,
		PreviousKeys: strings.Split(os.Getenv("JWT_PREVIOUS_SIGNING_KEYS"), ","),
		Issuer:       getEnv("JWT_ISSUER", "https://api.packwise.app"),
		Audience:     getEnv("JWT_AUDIENCE", "packwise-api"),
	})

	// Weather provider behind circuit breaker and retries
	registry := resilience.NewRegistry()
	clientCfg := resilience.DefaultClientConfig(openmeteo.ProviderName)
	clientCfg.Registry = registry
	clientCfg.Logger = log
	clientCfg.UserAgent = "packwise-api/" + Version
	weatherProvider := openmeteo.NewClient(openmeteo.ClientConfig{
		BaseURL:      os.Getenv("OPENMETEO_BASE_URL"),
		GeocodingURL: os.Getenv("OPENMETEO_GEOCODING_URL"),
		HTTPClient:   resilience.NewClient(clientCfg),
		Logger:       log,
	})

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: weatherProvider,
		Logger:   log,
		CacheTTL: getDurationEnv("WEATHER_CACHE_TTL", 10*time.Minute),
		Metrics:  providerMetrics,
	})
	log.Info().Msg("weather service initialized")

	attachMode := itinerary.ParseAttachMode(os.Getenv("ITINERARY_ATTACH_MODE"))
	plannerService := planner.NewService(planner.ServiceConfig{
		Weather:     weatherService,
		Outfits:     outfit.NewPlanner(outfit.PlannerConfig{AttachMode: attachMode}),
		UseForecast: os.Getenv("PLANNER_USE_FORECAST") == "true",
		Metrics:     planMetrics,
		Logger:      log,
	})
	log.Info().
		Str("attach_mode", attachMode.String()).
		Msg("planner initialized")

	generateLimit, err := middleware.ParseRateLimitPolicy(os.Getenv("RATE_LIMIT_GENERATE"), middleware.GeneratePolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid RATE_LIMIT_GENERATE")
	}
	standardLimit, err := middleware.ParseRateLimitPolicy(os.Getenv("RATE_LIMIT_STANDARD"), middleware.StandardPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid RATE_LIMIT_STANDARD")
	}
	log.Info().
		Stringer("generate", generateLimit).
		Stringer("standard", standardLimit).
		Msg("rate limits configured")

	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		Authenticator:    jwtService,
		TripService:      tripService,
		ChecklistService: checklistService,
		Planner:          plannerService,
		Weather:          weatherService,
		Registry:         registry,
		Database:         dbPinger,
		GenerateLimit:    generateLimit,
		StandardLimit:    standardLimit,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDurationEnv accepts Go durations ("15m") or plain seconds ("900").
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
