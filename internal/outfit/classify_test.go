package outfit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packwise/packwise/internal/outfit"
	"github.com/packwise/packwise/internal/trip"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		day        int
		activities []string
		purposes   []trip.Purpose
		want       outfit.Category
	}{
		{
			name:       "beach wins over meeting",
			day:        1,
			activities: []string{"Beach meeting with the team"},
			want:       outfit.CategoryBeach,
		},
		{
			name:       "business keyword",
			day:        1,
			activities: []string{"Conference keynote"},
			want:       outfit.CategoryBusiness,
		},
		{
			name:       "business wins over outdoor",
			day:        1,
			activities: []string{"Presentation", "Trail run"},
			want:       outfit.CategoryBusiness,
		},
		{
			name:       "outdoor keyword is case insensitive",
			day:        2,
			activities: []string{"HIKE to the summit"},
			want:       outfit.CategoryOutdoor,
		},
		{
			name:       "business purpose on day divisible by three",
			day:        3,
			activities: []string{outfit.DefaultActivity},
			purposes:   []trip.Purpose{trip.PurposeBusiness},
			want:       outfit.CategoryBusiness,
		},
		{
			name:       "business purpose on other days is casual",
			day:        2,
			activities: []string{outfit.DefaultActivity},
			purposes:   []trip.Purpose{trip.PurposeBusiness},
			want:       outfit.CategoryCasual,
		},
		{
			name:       "beach purpose on even day",
			day:        4,
			activities: []string{outfit.DefaultActivity},
			purposes:   []trip.Purpose{trip.PurposeBeach},
			want:       outfit.CategoryBeach,
		},
		{
			name:       "beach purpose on odd day",
			day:        3,
			activities: []string{outfit.DefaultActivity},
			purposes:   []trip.Purpose{trip.PurposeBeach},
			want:       outfit.CategoryCasual,
		},
		{
			name:       "outdoor purpose on odd day",
			day:        1,
			activities: []string{outfit.DefaultActivity},
			purposes:   []trip.Purpose{trip.PurposeOutdoor},
			want:       outfit.CategoryOutdoor,
		},
		{
			name:       "beach and business purposes on day six",
			day:        6,
			activities: []string{outfit.DefaultActivity},
			purposes:   []trip.Purpose{trip.PurposeBusiness, trip.PurposeBeach},
			want:       outfit.CategoryBeach,
		},
		{
			name:       "nothing matches",
			day:        1,
			activities: []string{"Museum"},
			purposes:   []trip.Purpose{trip.PurposeCity},
			want:       outfit.CategoryCasual,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := trip.Parameters{Purposes: tt.purposes}
			assert.Equal(t, tt.want, outfit.Classify(tt.day, tt.activities, p))
		})
	}
}
