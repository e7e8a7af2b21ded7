// Package api provides the HTTP API for Packwise.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/packwise/packwise/internal/api/handler"
	"github.com/packwise/packwise/internal/api/middleware"
	"github.com/packwise/packwise/internal/packing"
	"github.com/packwise/packwise/internal/planner"
	"github.com/packwise/packwise/internal/provider/resilience"
	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	Authenticator    middleware.TokenAuthenticator
	TripService      *trip.Service
	ChecklistService *packing.Service

	// Planner defaults to a planner backed by Weather.
	Planner *planner.Service

	// Weather serves GET /v1/weather and cache stats. The route is not
	// mounted when nil.
	Weather *weather.Service

	Registry *resilience.Registry
	Database handler.Pinger

	// GenerateLimit and StandardLimit override the built-in rate limit
	// policies when Requests is non-zero.
	GenerateLimit middleware.RateLimitPolicy
	StandardLimit middleware.RateLimitPolicy
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "packwise-api"
	}

	plannerService := cfg.Planner
	if plannerService == nil {
		plannerCfg := planner.ServiceConfig{Logger: cfg.Logger}
		if cfg.Weather != nil {
			plannerCfg.Weather = cfg.Weather
		}
		plannerService = planner.NewService(plannerCfg)
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // Reject non-JSON bodies

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Registry:  cfg.Registry,
		Database:  cfg.Database,
		Weather:   cfg.Weather,
	})
	metadataHandler := handler.NewMetadataHandler()
	planningHandler := handler.NewPlanningHandler(plannerService)
	tripHandler := handler.NewTripHandler(cfg.TripService, plannerService, cfg.Logger)
	checklistHandler := handler.NewChecklistHandler(cfg.ChecklistService, cfg.TripService, plannerService, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.Authenticator)

	generatePolicy, standardPolicy := middleware.GeneratePolicy, middleware.StandardPolicy
	if cfg.GenerateLimit.Requests > 0 {
		generatePolicy = cfg.GenerateLimit
	}
	if cfg.StandardLimit.Requests > 0 {
		standardPolicy = cfg.StandardLimit
	}
	generateRateLimit := middleware.RateLimit(generatePolicy)
	standardRateLimit := middleware.RateLimit(standardPolicy)

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/enums", metadataHandler.GetEnums)
			r.Get("/packing-strategies/{luggageType}", metadataHandler.GetPackingStrategy)
		})

		// Stateless generation (public) - stricter rate limiting
		r.Group(func(r chi.Router) {
			r.Use(generateRateLimit)
			r.Post("/packing-lists:generate", planningHandler.GeneratePackingList)
			r.Post("/outfits:plan", planningHandler.PlanOutfits)
			r.Post("/plans", planningHandler.BuildPlan)
		})

		if cfg.Weather != nil {
			weatherHandler := handler.NewWeatherHandler(cfg.Weather)
			r.With(standardRateLimit).Get("/weather", weatherHandler.GetWeather)
		}

		// Saved trips (authenticated) - user-based rate limiting
		userGenerateLimit := middleware.RateLimit(generatePolicy.PerUser())
		r.Route("/me/trips", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimit(standardPolicy.PerUser()))
			r.Get("/", tripHandler.ListTrips)
			r.Post("/", tripHandler.CreateTrip)

			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", tripHandler.GetTrip)
				r.Patch("/", tripHandler.UpdateTrip)
				r.Delete("/", tripHandler.DeleteTrip)
				r.With(userGenerateLimit).Get("/plan", tripHandler.GetTripPlan)

				r.Route("/packing-list", func(r chi.Router) {
					r.Get("/", checklistHandler.GetChecklist)
					r.With(userGenerateLimit).Post("/", checklistHandler.CreateChecklist)
					r.Delete("/", checklistHandler.DeleteChecklist)
					r.Put("/notes", checklistHandler.UpdateNotes)
					r.Post("/items", checklistHandler.AddItem)

					r.Route("/items/{category}/{index}", func(r chi.Router) {
						r.Put("/", checklistHandler.RenameItem)
						r.Delete("/", checklistHandler.RemoveItem)
						r.Post("/toggle", checklistHandler.TogglePacked)
						r.Post("/quantity", checklistHandler.AdjustQuantity)
					})
				})
			})
		})
	})

	return r
}
