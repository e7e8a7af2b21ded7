package handler

import (
	"net/http"
	"strings"

	"github.com/packwise/packwise/internal/api/models"
	"github.com/packwise/packwise/internal/api/response"
	"github.com/packwise/packwise/internal/planner"
	"github.com/packwise/packwise/internal/trip"
)

// WeatherHandler handles weather lookups.
type WeatherHandler struct {
	weather planner.WeatherLookup
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(lookup planner.WeatherLookup) *WeatherHandler {
	return &WeatherHandler{weather: lookup}
}

// GetWeather handles GET /v1/weather?destination=Paris,Rome.
// Unknown locations are reported as warnings. The request fails with 404
// only when no location resolves and at least one was not found.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	destination := strings.TrimSpace(r.URL.Query().Get("destination"))
	if len(trip.SplitLocations(destination)) == 0 {
		response.BadRequest(w, r, "destination is required", []models.FieldError{
			{Field: "destination", Message: "destination is required", Code: models.CodeRequired},
		})
		return
	}

	reports := h.weather.ForDestination(r.Context(), destination)

	resolved := 0
	var notFound []string
	for _, rep := range reports {
		switch {
		case rep.Err == nil:
			resolved++
		case rep.NotFound():
			notFound = append(notFound, rep.Location)
		}
	}

	if resolved == 0 {
		if len(notFound) > 0 {
			response.LocationNotFound(w, r, strings.Join(notFound, ", "))
			return
		}
		response.ServiceUnavailable(w, r, "weather provider unavailable")
		return
	}

	locations, warnings := toAPIWeather(reports)
	response.JSON(w, r, http.StatusOK, models.DestinationWeather{
		Destination: destination,
		Locations:   locations,
		Warnings:    warnings,
	})
}
