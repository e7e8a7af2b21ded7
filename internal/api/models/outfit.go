package models

// OutfitPlanRequest is the request body for POST /v1/outfits:plan.
type OutfitPlanRequest struct {
	TripParametersInput
	Weather  *WeatherSnapshot `json:"weather,omitempty"`
	Page     int              `json:"page,omitempty"`
	PageSize int              `json:"pageSize,omitempty"`
}

// Outfit is one set of clothing recommendations.
type Outfit struct {
	Top         string   `json:"top"`
	Bottom      string   `json:"bottom"`
	Shoes       string   `json:"shoes"`
	Outerwear   string   `json:"outerwear,omitempty"`
	Accessories []string `json:"accessories"`
}

// DailyOutfit is the outfit plan for one trip day.
type DailyOutfit struct {
	Day        int              `json:"day"`
	Date       Date             `json:"date"`
	Activities []string         `json:"activities"`
	Category   string           `json:"category"`
	Daytime    Outfit           `json:"daytimeOutfit"`
	Evening    Outfit           `json:"eveningOutfit"`
	Weather    *WeatherSnapshot `json:"weatherForDay,omitempty"`
}

// PageMeta describes one page of days.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalDays  int `json:"totalDays"`
}

// OutfitPlan is a page of daily outfits.
type OutfitPlan struct {
	Items []DailyOutfit `json:"items"`
	Meta  PageMeta      `json:"meta"`
}

// OutfitSuggestion is a quick temperature-band suggestion for one reading.
type OutfitSuggestion struct {
	Band            string   `json:"band"`
	Items           []string `json:"items"`
	RainAccessories []string `json:"rainAccessories"`
}
