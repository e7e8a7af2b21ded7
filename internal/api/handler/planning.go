package handler

import (
	"net/http"

	"github.com/packwise/packwise/internal/api/models"
	"github.com/packwise/packwise/internal/api/response"
	"github.com/packwise/packwise/internal/outfit"
	"github.com/packwise/packwise/internal/packing"
	"github.com/packwise/packwise/internal/planner"
)

// PlanningHandler serves the stateless generation endpoints.
type PlanningHandler struct {
	planner *planner.Service
}

// NewPlanningHandler creates a new PlanningHandler.
func NewPlanningHandler(plannerService *planner.Service) *PlanningHandler {
	return &PlanningHandler{planner: plannerService}
}

// GeneratePackingList handles POST /v1/packing-lists:generate.
func (h *PlanningHandler) GeneratePackingList(w http.ResponseWriter, r *http.Request) {
	var input models.PackingListGenerateRequest
	if !response.DecodeJSON(w, r, &input, false) {
		return
	}

	params, fieldErrors := toParameters(&input.TripParametersInput)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	list := packing.Generate(params, toSnapshot(input.Weather))
	response.JSON(w, r, http.StatusOK, toAPIPackingList(list))
}

// PlanOutfits handles POST /v1/outfits:plan. The result is paginated by day.
func (h *PlanningHandler) PlanOutfits(w http.ResponseWriter, r *http.Request) {
	var input models.OutfitPlanRequest
	if !response.DecodeJSON(w, r, &input, false) {
		return
	}

	params, fieldErrors := toParameters(&input.TripParametersInput)
	if input.Page < 0 || input.Page > MaxDurationDays {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "page", Message: "must be between 1 and 365", Code: models.CodeOutOfRange})
	}
	if input.PageSize < 0 || input.PageSize > 31 {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "pageSize", Message: "must be between 1 and 31", Code: models.CodeOutOfRange})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	days := h.planner.Outfits(params, toSnapshot(input.Weather))
	page := outfit.Paginate(days, input.Page, input.PageSize)

	response.JSON(w, r, http.StatusOK, models.OutfitPlan{
		Items: toAPIDailyOutfits(page.Days),
		Meta: models.PageMeta{
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
			TotalDays:  page.TotalDays,
		},
	})
}

// BuildPlan handles POST /v1/plans - full plan with live weather lookup.
func (h *PlanningHandler) BuildPlan(w http.ResponseWriter, r *http.Request) {
	var input models.PlanRequest
	if !response.DecodeJSON(w, r, &input, false) {
		return
	}

	params, fieldErrors := toParameters(&input.TripParametersInput)
	if params.Destination == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "destination", Message: "destination is required", Code: models.CodeRequired})
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	plan := h.planner.Build(r.Context(), params)
	response.JSON(w, r, http.StatusOK, toAPIPlan(plan))
}
