package models

// Enums represents the enum values used by the API.
type Enums struct {
	TripPurposes      []string `json:"tripPurposes"`
	Accommodations    []string `json:"accommodations"`
	LuggageTypes      []string `json:"luggageTypes"`
	Genders           []string `json:"genders"`
	PackingCategories []string `json:"packingCategories"`
	OutfitCategories  []string `json:"outfitCategories"`
	ItineraryAttachBy []string `json:"itineraryAttachModes"`
}

// PackingStrategy is a packing guide for a luggage type.
type PackingStrategy struct {
	LuggageType string                   `json:"luggageType"`
	Title       string                   `json:"title"`
	Sections    []PackingStrategySection `json:"sections"`
}

// PackingStrategySection is one titled group of tips.
type PackingStrategySection struct {
	Title string   `json:"title"`
	Intro string   `json:"intro,omitempty"`
	Tips  []string `json:"tips"`
}
