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
	"github.com/packwise/packwise/internal/packing"
	"github.com/packwise/packwise/internal/planner"
	"github.com/packwise/packwise/internal/trip"
)

// ChecklistHandler handles the saved packing list of a trip.
type ChecklistHandler struct {
	checklists *packing.Service
	trips      *trip.Service
	planner    *planner.Service
	logger     zerolog.Logger
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklists *packing.Service, trips *trip.Service, plannerService *planner.Service, logger zerolog.Logger) *ChecklistHandler {
	return &ChecklistHandler{
		checklists: checklists,
		trips:      trips,
		planner:    plannerService,
		logger:     logger,
	}
}

// CreateChecklist handles POST /v1/me/trips/{tripId}/packing-list. The list
// is generated from the trip and either the supplied weather or the current
// weather of the destination.
func (h *ChecklistHandler) CreateChecklist(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	var input models.ChecklistCreateRequest
	if !response.DecodeJSON(w, r, &input, true) {
		return
	}

	tripID := chi.URLParam(r, "tripId")
	t, err := h.trips.GetTrip(r.Context(), userID, tripID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var plan *planner.Plan
	if input.Weather != nil {
		plan = h.planner.BuildWithWeather(r.Context(), t.Parameters(), toSnapshot(input.Weather))
	} else {
		plan = h.planner.Build(r.Context(), t.Parameters())
	}

	c, err := h.checklists.Create(r.Context(), userID, tripID, plan.PackingList)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Created(w, r, "/v1/me/trips/"+tripID+"/packing-list", toAPIChecklist(c))
}

// GetChecklist handles GET /v1/me/trips/{tripId}/packing-list.
func (h *ChecklistHandler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	c, err := h.checklists.Get(r.Context(), userID, chi.URLParam(r, "tripId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toAPIChecklist(c))
}

// DeleteChecklist handles DELETE /v1/me/trips/{tripId}/packing-list.
func (h *ChecklistHandler) DeleteChecklist(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	if err := h.checklists.Delete(r.Context(), userID, chi.URLParam(r, "tripId")); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

// UpdateNotes handles PUT /v1/me/trips/{tripId}/packing-list/notes.
func (h *ChecklistHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var input models.ChecklistNotesRequest
	if !response.DecodeJSON(w, r, &input, false) {
		return
	}

	h.modify(w, r, func(c *packing.Checklist) error {
		c.SetNotes(input.Notes)
		return nil
	})
}

// AddItem handles POST /v1/me/trips/{tripId}/packing-list/items - add a custom item.
func (h *ChecklistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var input models.ItemNameRequest
	if !response.DecodeJSON(w, r, &input, false) {
		return
	}

	h.modify(w, r, func(c *packing.Checklist) error {
		_, err := c.AddCustomItem(input.Name)
		return err
	})
}

// TogglePacked handles POST .../items/{category}/{index}/toggle.
func (h *ChecklistHandler) TogglePacked(w http.ResponseWriter, r *http.Request) {
	category, index, ok := itemRef(w, r)
	if !ok {
		return
	}

	h.modify(w, r, func(c *packing.Checklist) error {
		return c.TogglePacked(category, index)
	})
}

// AdjustQuantity handles POST .../items/{category}/{index}/quantity.
func (h *ChecklistHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	category, index, ok := itemRef(w, r)
	if !ok {
		return
	}

	var input models.ItemQuantityRequest
	if !response.DecodeJSON(w, r, &input, false) {
		return
	}

	h.modify(w, r, func(c *packing.Checklist) error {
		return c.AdjustQuantity(category, index, input.Delta)
	})
}

// RenameItem handles PUT .../items/{category}/{index}.
func (h *ChecklistHandler) RenameItem(w http.ResponseWriter, r *http.Request) {
	category, index, ok := itemRef(w, r)
	if !ok {
		return
	}

	var input models.ItemNameRequest
	if !response.DecodeJSON(w, r, &input, false) {
		return
	}

	h.modify(w, r, func(c *packing.Checklist) error {
		return c.RenameItem(category, index, input.Name)
	})
}

// RemoveItem handles DELETE .../items/{category}/{index}.
func (h *ChecklistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	category, index, ok := itemRef(w, r)
	if !ok {
		return
	}

	h.modify(w, r, func(c *packing.Checklist) error {
		return c.RemoveItem(category, index)
	})
}

func (h *ChecklistHandler) modify(w http.ResponseWriter, r *http.Request, fn func(c *packing.Checklist) error) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	c, err := h.checklists.Modify(r.Context(), userID, chi.URLParam(r, "tripId"), fn)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toAPIChecklist(c))
}

func (h *ChecklistHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, trip.ErrTripNotFound):
		response.NotFound(w, r, "trip not found")
	case errors.Is(err, packing.ErrChecklistNotFound):
		response.NotFound(w, r, "packing list not found")
	case errors.Is(err, packing.ErrItemNotFound):
		response.NotFound(w, r, "packing item not found")
	case errors.Is(err, packing.ErrChecklistExists):
		response.Conflict(w, r, "trip already has a packing list")
	case errors.Is(err, packing.ErrChecklistConflict):
		response.Conflict(w, r, "packing list is being changed by another request, try again")
	case errors.Is(err, packing.ErrEmptyItemName):
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "name", Message: "item name is required", Code: models.CodeRequired},
		})
	default:
		h.logger.Error().Err(err).Msg("packing list operation failed")
		response.InternalError(w, r, "internal server error")
	}
}

// itemRef parses the {category}/{index} path parameters.
func itemRef(w http.ResponseWriter, r *http.Request) (packing.Category, int, bool) {
	category, ok := packing.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		response.NotFound(w, r, "unknown packing category")
		return "", 0, false
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		response.BadRequest(w, r, "item index must be a non-negative integer", []models.FieldError{
			{Field: "index", Message: "must be a non-negative integer", Code: "INVALID"},
		})
		return "", 0, false
	}

	return category, index, true
}
