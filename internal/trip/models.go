// Package trip provides the trip model shared by the packing and outfit engines,
// plus persistence and validation for saved trips.
package trip

import (
	"errors"
	"strings"
	"time"
)

// Repository errors.
var (
	ErrTripNotFound = errors.New("trip not found")
)

// Gender selects the gender-specific clothing and outfit tables.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
)

// ParseGender maps free input onto a Gender. Anything unrecognised is neutral.
func ParseGender(s string) Gender {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderNeutral
	}
}

// Purpose is a trip purpose tag.
type Purpose string

const (
	PurposeCity     Purpose = "city"
	PurposeBeach    Purpose = "beach"
	PurposeOutdoor  Purpose = "outdoor"
	PurposeBusiness Purpose = "business"
	PurposeOther    Purpose = "other"
)

// KnownPurposes lists the purposes the engines have rules for.
var KnownPurposes = []Purpose{PurposeCity, PurposeBeach, PurposeOutdoor, PurposeBusiness, PurposeOther}

// Accommodation is an accommodation tag.
type Accommodation string

const (
	AccommodationHotel    Accommodation = "hotel"
	AccommodationHostel   Accommodation = "hostel"
	AccommodationRental   Accommodation = "rental"
	AccommodationCamping  Accommodation = "camping"
	AccommodationYurt     Accommodation = "yurt"
	AccommodationHomestay Accommodation = "homestay"
	AccommodationOther    Accommodation = "other"
)

// KnownAccommodations lists the accepted accommodation tags.
var KnownAccommodations = []Accommodation{
	AccommodationHotel, AccommodationHostel, AccommodationRental, AccommodationCamping,
	AccommodationYurt, AccommodationHomestay, AccommodationOther,
}

// Luggage types with a dedicated packing strategy.
const (
	LuggageCarryOn        = "carry-on"
	LuggageChecked        = "checked"
	LuggageBackpackSmall  = "backpack-small"
	LuggageBackpackMedium = "backpack-medium"
	LuggageBackpackLarge  = "backpack-large"
	LuggageDuffel         = "duffel"
	LuggageOspreyFairview = "osprey-fairview"
	LuggageOther          = "other"
)

// Parameters are the inputs of a single packing-list or outfit generation call.
// Purposes and Accommodations are not deduplicated; duplicates produce
// duplicated item bundles.
type Parameters struct {
	DurationDays   int
	Purposes       []Purpose
	OtherPurpose   string
	Accommodations []Accommodation
	Gender         Gender
	Itinerary      string
	Destination    string
	StartDate      time.Time
	LuggageType    string
}

// HasPurpose reports whether p is among the trip purposes.
func (p Parameters) HasPurpose(purpose Purpose) bool {
	for _, have := range p.Purposes {
		if have == purpose {
			return true
		}
	}
	return false
}

// Locations splits the comma-separated destination into trimmed, non-empty names.
func (p Parameters) Locations() []string {
	return SplitLocations(p.Destination)
}

// SplitLocations splits a comma-separated destination list.
func SplitLocations(destination string) []string {
	parts := strings.Split(destination, ",")
	locations := make([]string, 0, len(parts))
	for _, part := range parts {
		if loc := strings.TrimSpace(part); loc != "" {
			locations = append(locations, loc)
		}
	}
	return locations
}

// DurationBetween returns the trip length in whole days, rounding partial days up.
func DurationBetween(start, end time.Time) int {
	hours := end.Sub(start).Hours()
	days := int(hours / 24)
	if float64(days)*24 < hours {
		days++
	}
	return days
}

// Trip is a saved trip.
type Trip struct {
	ID                  string
	UserID              string
	Destination         string
	Country             string
	StartDate           time.Time
	EndDate             time.Time
	DurationDays        int
	Purposes            []Purpose
	OtherPurpose        string
	Accommodations      []Accommodation
	CustomAccommodation string
	LuggageType         string
	Itinerary           string
	Gender              Gender
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Parameters returns the generation inputs for the trip.
func (t *Trip) Parameters() Parameters {
	return Parameters{
		DurationDays:   t.DurationDays,
		Purposes:       t.Purposes,
		OtherPurpose:   t.OtherPurpose,
		Accommodations: t.Accommodations,
		Gender:         t.Gender,
		Itinerary:      t.Itinerary,
		Destination:    t.Destination,
		StartDate:      t.StartDate,
		LuggageType:    t.LuggageType,
	}
}
