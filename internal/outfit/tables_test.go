package outfit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packwise/packwise/internal/outfit"
	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
)

func snap(temp float64, desc string) *weather.Snapshot {
	return &weather.Snapshot{TemperatureC: temp, Description: desc}
}

func TestDaytime_TopAndBottomFollowTemperature(t *testing.T) {
	hot := outfit.Daytime(outfit.CategoryCasual, trip.GenderMale, snap(30, "clear sky"))
	assert.Equal(t, "Light t-shirt", hot.Top)
	assert.Equal(t, "Shorts", hot.Bottom)

	mild := outfit.Daytime(outfit.CategoryCasual, trip.GenderMale, snap(20, "clear sky"))
	assert.Equal(t, "T-shirt", mild.Top)
	assert.Equal(t, "Jeans or pants", mild.Bottom)

	// Exactly 25 is not hot.
	edge := outfit.Daytime(outfit.CategoryCasual, trip.GenderFemale, snap(25, "clear sky"))
	assert.Equal(t, "T-shirt", edge.Top)
	assert.Equal(t, "Jeans or pants", edge.Bottom)

	beach := outfit.Daytime(outfit.CategoryBeach, trip.GenderFemale, snap(28, "sunny"))
	assert.Equal(t, "Light tank top or t-shirt", beach.Top)
	assert.Equal(t, "Swimsuit with shorts/skirt/cover-up", beach.Bottom)
	assert.Equal(t, "Sandals or flip-flops", beach.Shoes)
	assert.Contains(t, beach.Accessories, "Hair tie")
}

func TestDaytime_Outerwear(t *testing.T) {
	tests := []struct {
		name     string
		category outfit.Category
		weather  *weather.Snapshot
		want     string
	}{
		{"casual rain", outfit.CategoryCasual, snap(20, "Light rain"), "Rain jacket or umbrella"},
		{"casual cold", outfit.CategoryCasual, snap(10, "clear sky"), "Light jacket or sweater"},
		{"casual zero degrees is cold", outfit.CategoryCasual, snap(0, "clear sky"), "Light jacket or sweater"},
		{"casual mild", outfit.CategoryCasual, snap(15, "clear sky"), ""},
		{"outdoor rain", outfit.CategoryOutdoor, snap(5, "rainy"), "Waterproof jacket"},
		{"outdoor cold", outfit.CategoryOutdoor, snap(12, "fog"), "Light jacket or fleece"},
		{"business cold", outfit.CategoryBusiness, snap(10, "clear sky"), "Blazer or suit jacket"},
		{"business rain only", outfit.CategoryBusiness, snap(20, "rain"), ""},
		{"beach never", outfit.CategoryBeach, snap(5, "rain"), ""},
		{"no weather", outfit.CategoryCasual, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := outfit.Daytime(tt.category, trip.GenderNeutral, tt.weather)
			assert.Equal(t, tt.want, o.Outerwear)
		})
	}
}

func TestDaytime_UnknownGenderUsesNeutral(t *testing.T) {
	o := outfit.Daytime(outfit.CategoryBeach, trip.Gender("unknown"), nil)
	assert.Equal(t, "Swimwear with shorts/cover-up", o.Bottom)
}

func TestDaytime_AccessoriesAreCopied(t *testing.T) {
	o := outfit.Daytime(outfit.CategoryBusiness, trip.GenderMale, nil)
	o.Accessories[0] = "changed"

	again := outfit.Daytime(outfit.CategoryBusiness, trip.GenderMale, nil)
	assert.Equal(t, []string{"Watch", "Professional bag/briefcase", "Tie"}, again.Accessories)
}

func TestEvening(t *testing.T) {
	female := outfit.Evening(trip.GenderFemale, snap(10, "clear sky"))
	assert.Equal(t, "Nice blouse or dressy top", female.Top)
	assert.Equal(t, "Light jacket or sweater", female.Outerwear)

	male := outfit.Evening(trip.GenderMale, snap(22, "heavy rain"))
	assert.Equal(t, "Dress shirt", male.Top)
	assert.Equal(t, "Rain jacket or umbrella", male.Outerwear)

	neutral := outfit.Evening(trip.GenderNeutral, nil)
	assert.Equal(t, "Dress shirt or blouse", neutral.Top)
	assert.Empty(t, neutral.Outerwear)
}
