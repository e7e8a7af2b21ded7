package models

// TripParametersInput describes a trip for the stateless generation endpoints.
// DurationDays wins over the date range when both are given.
type TripParametersInput struct {
	Destination    string   `json:"destination"`
	StartDate      *Date    `json:"startDate,omitempty"`
	EndDate        *Date    `json:"endDate,omitempty"`
	DurationDays   int      `json:"durationDays,omitempty"`
	TripPurposes   []string `json:"tripPurposes"`
	OtherPurpose   string   `json:"otherPurpose,omitempty"`
	Accommodations []string `json:"accommodations"`
	LuggageType    string   `json:"luggageType,omitempty"`
	Itinerary      string   `json:"itinerary,omitempty"`
	Gender         string   `json:"gender,omitempty"`
}

// PackingListGenerateRequest is the request body for POST /v1/packing-lists:generate.
type PackingListGenerateRequest struct {
	TripParametersInput
	// Weather is an already-resolved reading. No weather items are added when nil.
	Weather *WeatherSnapshot `json:"weather,omitempty"`
}

// PackingItem is one entry of a packing list.
type PackingItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Packed   bool   `json:"packed"`
	Purpose  string `json:"purpose,omitempty"`
	IsLiquid bool   `json:"isLiquid,omitempty"`
	VolumeMl string `json:"volumeMl,omitempty"`
}

// PackingCategory is one category of a packing list, in display order.
type PackingCategory struct {
	Category string        `json:"category"`
	Items    []PackingItem `json:"items"`
}

// PackingProgress is the packed count over the total count.
type PackingProgress struct {
	Packed  int `json:"packed"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// LiquidsSummary reports liquid items against the carry-on container limit.
type LiquidsSummary struct {
	Items        []PackingItem `json:"items"`
	TotalMl      int           `json:"totalMl"`
	OverLimit    []PackingItem `json:"overLimit"`
	LimitPerItem int           `json:"limitPerItemMl"`
}

// PackingList is a generated packing list.
type PackingList struct {
	Categories []PackingCategory `json:"categories"`
	Progress   PackingProgress   `json:"progress"`
	Liquids    LiquidsSummary    `json:"liquids"`
}

// Checklist is a saved packing list attached to a trip.
type Checklist struct {
	ID        string    `json:"id"`
	TripID    string    `json:"tripId"`
	Notes     string    `json:"notes"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
	PackingList
}

// ChecklistCreateRequest is the optional body for creating a checklist. When
// Weather is nil the current weather of the trip destination is used.
type ChecklistCreateRequest struct {
	Weather *WeatherSnapshot `json:"weather,omitempty"`
}

// ChecklistNotesRequest replaces the checklist notes.
type ChecklistNotesRequest struct {
	Notes string `json:"notes"`
}

// ItemQuantityRequest adjusts an item quantity by Delta.
type ItemQuantityRequest struct {
	Delta int `json:"delta"`
}

// ItemNameRequest names an item, for rename and custom item creation.
type ItemNameRequest struct {
	Name string `json:"name"`
}
