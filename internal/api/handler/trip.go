package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/packwise/packwise/internal/api/middleware"
	"github.com/packwise/packwise/internal/api/models"
	"github.com/packwise/packwise/internal/api/response"
	"github.com/packwise/packwise/internal/planner"
	"github.com/packwise/packwise/internal/trip"
)

// Trip list limits.
const (
	DefaultTripLimit = 50
	MaxTripLimit     = 100
)

// TripHandler handles saved trip endpoints.
type TripHandler struct {
	trips   *trip.Service
	planner *planner.Service
	logger  zerolog.Logger
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *trip.Service, plannerService *planner.Service, logger zerolog.Logger) *TripHandler {
	return &TripHandler{
		trips:   tripService,
		planner: plannerService,
		logger:  logger,
	}
}

// ListTrips handles GET /v1/me/trips - list saved trips, newest first.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	limit := DefaultTripLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxTripLimit {
			response.BadRequest(w, r, "limit must be between 1 and 100", []models.FieldError{
				{Field: "limit", Message: "must be between 1 and 100", Code: models.CodeOutOfRange},
			})
			return
		}
		limit = n
	}

	trips, err := h.trips.List(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list trips")
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, trips)
}

// CreateTrip handles POST /v1/me/trips - save a trip.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	var input models.TripCreateRequest
	if !response.DecodeJSON(w, r, &input, false) {
		return
	}

	created, err := h.trips.Create(r.Context(), userID, &input)
	if err != nil {
		h.writeTripError(w, r, err, "failed to create trip")
		return
	}

	response.Created(w, r, "/v1/me/trips/"+created.ID, created)
}

// GetTrip handles GET /v1/me/trips/{tripId}.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	t, err := h.trips.Get(r.Context(), userID, chi.URLParam(r, "tripId"))
	if err != nil {
		h.writeTripError(w, r, err, "failed to get trip")
		return
	}

	response.JSON(w, r, http.StatusOK, t)
}

// UpdateTrip handles PATCH /v1/me/trips/{tripId} - partial update.
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	var input models.TripUpdateRequest
	if !response.DecodeJSON(w, r, &input, false) {
		return
	}

	updated, err := h.trips.Update(r.Context(), userID, chi.URLParam(r, "tripId"), &input)
	if err != nil {
		h.writeTripError(w, r, err, "failed to update trip")
		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /v1/me/trips/{tripId}.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	if err := h.trips.Delete(r.Context(), userID, chi.URLParam(r, "tripId")); err != nil {
		h.writeTripError(w, r, err, "failed to delete trip")
		return
	}

	response.NoContent(w, r)
}

// GetTripPlan handles GET /v1/me/trips/{tripId}/plan - plan a saved trip.
func (h *TripHandler) GetTripPlan(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	t, err := h.trips.GetTrip(r.Context(), userID, chi.URLParam(r, "tripId"))
	if err != nil {
		h.writeTripError(w, r, err, "failed to get trip")
		return
	}

	plan := h.planner.Build(r.Context(), t.Parameters())
	response.JSON(w, r, http.StatusOK, toAPIPlan(plan))
}

func (h *TripHandler) writeTripError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var validationErr *trip.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(w, r, "validation failed", validationErr.Errors)
	case errors.Is(err, trip.ErrTripNotFound):
		response.NotFound(w, r, "trip not found")
	default:
		h.logger.Error().Err(err).Msg(msg)
		response.InternalError(w, r, "internal server error")
	}
}
