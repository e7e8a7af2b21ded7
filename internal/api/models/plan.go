package models

// PlanRequest is the request body for POST /v1/plans.
type PlanRequest struct {
	TripParametersInput
}

// Plan is a complete trip plan.
type Plan struct {
	PackingList PackingList       `json:"packingList"`
	Outfits     []DailyOutfit     `json:"outfits"`
	Weather     []LocationWeather `json:"weather"`
	Warnings    []LocationWarning `json:"warnings"`
	Suggestion  *OutfitSuggestion `json:"suggestion,omitempty"`
	Strategy    *PackingStrategy  `json:"packingStrategy,omitempty"`
	GeneratedAt Timestamp         `json:"generatedAt"`
}
