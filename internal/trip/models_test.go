package trip_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/packwise/packwise/internal/trip"
)

func TestParseGender(t *testing.T) {
	assert.Equal(t, trip.GenderMale, trip.ParseGender("male"))
	assert.Equal(t, trip.GenderFemale, trip.ParseGender(" Female "))
	assert.Equal(t, trip.GenderNeutral, trip.ParseGender(""))
	assert.Equal(t, trip.GenderNeutral, trip.ParseGender("unknown"))
}

func TestSplitLocations(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Paris", []string{"Paris"}},
		{"Paris, Lyon ,Nice", []string{"Paris", "Lyon", "Nice"}},
		{" , ,", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, trip.SplitLocations(tt.in), "input %q", tt.in)
	}
}

func TestDurationBetween(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, trip.DurationBetween(start, start))
	assert.Equal(t, 1, trip.DurationBetween(start, start.Add(24*time.Hour)))
	assert.Equal(t, 2, trip.DurationBetween(start, start.Add(25*time.Hour)))
	assert.Equal(t, 7, trip.DurationBetween(start, start.AddDate(0, 0, 7)))
	assert.Less(t, trip.DurationBetween(start, start.Add(-48*time.Hour)), 1)
}
