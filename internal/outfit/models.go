// Package outfit plans daytime and evening outfits for each day of a trip
// from trip purposes, itinerary activities and weather.
package outfit

import (
	"time"

	"github.com/packwise/packwise/internal/weather"
)

// DefaultActivity is used for days without itinerary entries.
const DefaultActivity = "Free day / Exploration"

// Outfit is one set of clothing recommendations.
type Outfit struct {
	Top         string
	Bottom      string
	Shoes       string
	Outerwear   string // empty when none is needed
	Accessories []string
}

// DailyOutfit is the plan for one day of the trip.
type DailyOutfit struct {
	Day        int // 1-based
	Date       time.Time
	Activities []string
	Category   Category
	Daytime    Outfit
	Evening    Outfit
	// Weather is nil when no weather was available.
	Weather *weather.Snapshot
}
