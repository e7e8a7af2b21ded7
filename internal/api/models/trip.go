package models

// Trip represents a saved trip.
type Trip struct {
	ID                  string    `json:"id"`
	Destination         string    `json:"destination"`
	Country             string    `json:"country"`
	StartDate           Date      `json:"startDate"`
	EndDate             Date      `json:"endDate"`
	DurationDays        int       `json:"durationDays"`
	TripPurposes        []string  `json:"tripPurposes"`
	OtherPurpose        string    `json:"otherPurpose,omitempty"`
	Accommodations      []string  `json:"accommodations"`
	CustomAccommodation string    `json:"customAccommodation,omitempty"`
	LuggageType         string    `json:"luggageType,omitempty"`
	Itinerary           string    `json:"itinerary,omitempty"`
	Gender              string    `json:"gender"`
	CreatedAt           Timestamp `json:"createdAt"`
	UpdatedAt           Timestamp `json:"updatedAt"`
}

// PagedTrips represents a paginated list of trips.
type PagedTrips struct {
	Items []Trip            `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// TripCreateRequest is the request body for creating a trip.
type TripCreateRequest struct {
	Destination         string   `json:"destination"`
	Country             string   `json:"country"`
	StartDate           Date     `json:"startDate"`
	EndDate             Date     `json:"endDate"`
	TripPurposes        []string `json:"tripPurposes"`
	OtherPurpose        string   `json:"otherPurpose,omitempty"`
	Accommodations      []string `json:"accommodations"`
	CustomAccommodation string   `json:"customAccommodation,omitempty"`
	LuggageType         string   `json:"luggageType,omitempty"`
	CustomLuggageType   string   `json:"customLuggageType,omitempty"`
	Itinerary           string   `json:"itinerary,omitempty"`
	Gender              string   `json:"gender,omitempty"`
}

// TripUpdateRequest is the request body for updating a trip.
// Nil fields are left unchanged.
type TripUpdateRequest struct {
	Destination         *string  `json:"destination,omitempty"`
	Country             *string  `json:"country,omitempty"`
	StartDate           *Date    `json:"startDate,omitempty"`
	EndDate             *Date    `json:"endDate,omitempty"`
	TripPurposes        []string `json:"tripPurposes,omitempty"`
	OtherPurpose        *string  `json:"otherPurpose,omitempty"`
	Accommodations      []string `json:"accommodations,omitempty"`
	CustomAccommodation *string  `json:"customAccommodation,omitempty"`
	LuggageType         *string  `json:"luggageType,omitempty"`
	CustomLuggageType   *string  `json:"customLuggageType,omitempty"`
	Itinerary           *string  `json:"itinerary,omitempty"`
	Gender              *string  `json:"gender,omitempty"`
}
