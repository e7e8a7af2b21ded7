package outfit

import (
	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
)

// Band is a temperature band for quick suggestions.
type Band string

const (
	BandHot  Band = "hot"
	BandWarm Band = "warm"
	BandMild Band = "mild"
	BandCool Band = "cool"
	BandCold Band = "cold"
)

// BandFor buckets a temperature: >=30 hot, >=20 warm, >=15 mild, >=10 cool, else cold.
func BandFor(tempC float64) Band {
	switch {
	case tempC >= 30:
		return BandHot
	case tempC >= 20:
		return BandWarm
	case tempC >= 15:
		return BandMild
	case tempC >= 10:
		return BandCool
	default:
		return BandCold
	}
}

var quickTable = map[Band]map[trip.Gender][]string{
	BandHot: {
		trip.GenderMale:   {"Light t-shirt", "Shorts", "Sandals", "Sunglasses", "Baseball cap"},
		trip.GenderFemale: {"Light blouse", "Shorts or skirt", "Sandals", "Sunglasses", "Sun hat"},
	},
	BandWarm: {
		trip.GenderMale:   {"T-shirt", "Light pants", "Sneakers", "Light jacket"},
		trip.GenderFemale: {"Blouse", "Light pants or skirt", "Sneakers", "Light cardigan"},
	},
	BandMild: {
		trip.GenderMale:   {"Long-sleeve shirt", "Jeans", "Sneakers", "Light jacket"},
		trip.GenderFemale: {"Long-sleeve top", "Jeans or pants", "Sneakers", "Light jacket"},
	},
	BandCool: {
		trip.GenderMale:   {"Sweater", "Jeans", "Boots", "Jacket"},
		trip.GenderFemale: {"Sweater", "Jeans or pants", "Boots", "Jacket"},
	},
	BandCold: {
		trip.GenderMale:   {"Thermal shirt", "Jeans", "Winter boots", "Winter jacket", "Gloves", "Beanie"},
		trip.GenderFemale: {"Thermal top", "Jeans or pants", "Winter boots", "Winter jacket", "Gloves", "Beanie"},
	},
}

var rainAccessories = []string{"Waterproof jacket", "Umbrella", "Waterproof shoes"}

// Suggestion is a single-glance outfit for the current weather.
type Suggestion struct {
	Band            Band
	Items           []string
	RainAccessories []string
}

// QuickSuggestion suggests clothing for one weather reading. Neutral uses the
// male table. It returns nil when there is no weather.
func QuickSuggestion(w *weather.Snapshot, g trip.Gender) *Suggestion {
	if w == nil {
		return nil
	}
	if g != trip.GenderFemale {
		g = trip.GenderMale
	}

	band := BandFor(w.TemperatureC)
	s := &Suggestion{
		Band:            band,
		Items:           append([]string(nil), quickTable[band][g]...),
		RainAccessories: []string{},
	}
	if w.IsRainy() {
		s.RainAccessories = append(s.RainAccessories, rainAccessories...)
	}
	return s
}
