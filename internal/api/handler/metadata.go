package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/packwise/packwise/internal/api/models"
	"github.com/packwise/packwise/internal/api/response"
	"github.com/packwise/packwise/internal/itinerary"
	"github.com/packwise/packwise/internal/outfit"
	"github.com/packwise/packwise/internal/packing"
	"github.com/packwise/packwise/internal/trip"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct{}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// GetEnums handles GET /v1/metadata/enums - get enum values used by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	enums := models.Enums{
		TripPurposes:   make([]string, 0, len(trip.KnownPurposes)),
		Accommodations: make([]string, 0, len(trip.KnownAccommodations)),
		LuggageTypes: []string{
			trip.LuggageCarryOn,
			trip.LuggageChecked,
			trip.LuggageBackpackSmall,
			trip.LuggageBackpackMedium,
			trip.LuggageBackpackLarge,
			trip.LuggageDuffel,
			trip.LuggageOspreyFairview,
			trip.LuggageOther,
		},
		Genders: []string{
			string(trip.GenderMale),
			string(trip.GenderFemale),
			string(trip.GenderNeutral),
		},
		PackingCategories: make([]string, 0, len(packing.Categories)),
		OutfitCategories: []string{
			string(outfit.CategoryBeach),
			string(outfit.CategoryBusiness),
			string(outfit.CategoryOutdoor),
			string(outfit.CategoryCasual),
		},
		ItineraryAttachBy: []string{
			itinerary.AttachMaxDay.String(),
			itinerary.AttachLastSeen.String(),
		},
	}
	for _, p := range trip.KnownPurposes {
		enums.TripPurposes = append(enums.TripPurposes, string(p))
	}
	for _, a := range trip.KnownAccommodations {
		enums.Accommodations = append(enums.Accommodations, string(a))
	}
	for _, c := range packing.Categories {
		enums.PackingCategories = append(enums.PackingCategories, string(c))
	}

	response.JSON(w, r, http.StatusOK, enums)
}

// GetPackingStrategy handles GET /v1/metadata/packing-strategies/{luggageType}.
// Unknown luggage labels get the general guide.
func (h *MetadataHandler) GetPackingStrategy(w http.ResponseWriter, r *http.Request) {
	luggageType := chi.URLParam(r, "luggageType")

	strategy := packing.StrategyFor(luggageType)
	if strategy == nil {
		response.NotFound(w, r, "packing strategy not found")
		return
	}

	response.JSON(w, r, http.StatusOK, toAPIStrategy(strategy))
}
