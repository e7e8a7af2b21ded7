// Package handler provides HTTP handlers for the Packwise API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/packwise/packwise/internal/api/models"
	"github.com/packwise/packwise/internal/api/response"
	"github.com/packwise/packwise/internal/provider/resilience"
	"github.com/packwise/packwise/internal/weather"
)

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsConfig holds dependencies for the ops endpoints.
type OpsConfig struct {
	Version   string
	BuildTime string

	// Registry reports provider circuit states. Optional.
	Registry *resilience.Registry

	// Database is pinged for readiness. Nil when trips are stored in memory.
	Database Pinger

	// Weather exposes cache statistics. Optional.
	Weather *weather.Service
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	cfg OpsConfig
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	return &OpsHandler{cfg: cfg}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.cfg.Version,
			"buildTime": h.cfg.BuildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if db := h.databaseStatus(r.Context()); db.Status == models.HealthStatusFail {
		health.Status = models.HealthStatusFail
		health.Details = map[string]interface{}{"database": db.Detail}
		response.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	}

	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       models.Timestamp(time.Now()),
		Subsystems: []models.SubsystemStatus{h.databaseStatus(r.Context())},
		Providers:  []models.ProviderStatus{},
	}

	if h.cfg.Weather != nil {
		stats := h.cfg.Weather.CacheStats()
		detail := stats.Provider
		status.Subsystems = append(status.Subsystems, models.SubsystemStatus{
			Name:    "weather-cache",
			Status:  models.HealthStatusOK,
			Detail:  &detail,
			Entries: &stats.Entries,
		})
	}

	if h.cfg.Registry != nil {
		for _, ph := range h.cfg.Registry.Snapshot() {
			ps := toProviderStatus(ph)
			status.Providers = append(status.Providers, ps)
			if ps.Status != models.HealthStatusOK {
				status.ActiveDegradationFlags = append(status.ActiveDegradationFlags, "provider:"+ph.Name)
			}
		}
	}

	for _, sub := range status.Subsystems {
		if sub.Status == models.HealthStatusFail {
			status.Status = models.HealthStatusFail
		}
	}
	if status.Status == models.HealthStatusOK && len(status.ActiveDegradationFlags) > 0 {
		status.Status = models.HealthStatusDegraded
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) databaseStatus(ctx context.Context) models.SubsystemStatus {
	if h.cfg.Database == nil {
		detail := "in-memory storage"
		return models.SubsystemStatus{Name: "database", Status: models.HealthStatusOK, Detail: &detail}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.cfg.Database.Ping(ctx); err != nil {
		detail := err.Error()
		return models.SubsystemStatus{Name: "database", Status: models.HealthStatusFail, Detail: &detail}
	}
	return models.SubsystemStatus{Name: "database", Status: models.HealthStatusOK}
}

func toProviderStatus(ph *resilience.ProviderHealth) models.ProviderStatus {
	ps := models.ProviderStatus{
		Provider:      ph.Name,
		Status:        models.HealthStatusOK,
		CircuitState:  ph.CircuitState.String(),
		FailureStreak: ph.FailureStreak,
	}

	switch ph.CircuitState {
	case gobreaker.StateOpen:
		ps.Status = models.HealthStatusFail
	case gobreaker.StateHalfOpen:
		ps.Status = models.HealthStatusDegraded
	}

	if ph.LastSuccessAt != nil {
		t := models.Timestamp(*ph.LastSuccessAt)
		ps.LastSuccessAt = &t
	}
	if ph.LastFailureAt != nil {
		t := models.Timestamp(*ph.LastFailureAt)
		ps.LastFailureAt = &t
	}
	if ph.LastError != "" {
		msg := ph.LastError
		ps.Message = &msg
	}
	return ps
}
