package outfit

import (
	"strings"

	"github.com/packwise/packwise/internal/trip"
)

// Category is the activity context that selects a daytime outfit table.
type Category string

const (
	CategoryBeach    Category = "beach"
	CategoryBusiness Category = "business"
	CategoryOutdoor  Category = "outdoor"
	CategoryCasual   Category = "casual"
)

// classifier decides whether a day belongs to a category, either from
// activity keywords or from a trip-purpose fallback on certain days.
type classifier struct {
	category Category
	keywords []string
	purpose  trip.Purpose
	onDay    func(day int) bool
}

// classifiers are evaluated in priority order; the first match wins.
var classifiers = []classifier{
	{
		category: CategoryBeach,
		keywords: []string{"beach", "swim", "ocean", "sea"},
		purpose:  trip.PurposeBeach,
		onDay:    func(day int) bool { return day%2 == 0 },
	},
	{
		category: CategoryBusiness,
		keywords: []string{"meeting", "conference", "business", "presentation"},
		purpose:  trip.PurposeBusiness,
		onDay:    func(day int) bool { return day%3 == 0 },
	},
	{
		category: CategoryOutdoor,
		keywords: []string{"hike", "trek", "outdoor", "mountain", "trail"},
		purpose:  trip.PurposeOutdoor,
		onDay:    func(day int) bool { return day%2 == 1 },
	},
}

func (c classifier) matches(day int, activities []string, p trip.Parameters) bool {
	for _, activity := range activities {
		lower := strings.ToLower(activity)
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return p.HasPurpose(c.purpose) && c.onDay(day)
}

// Classify returns the activity context of a day. Priority is beach, then
// business, then outdoor; casual when nothing matches.
func Classify(day int, activities []string, p trip.Parameters) Category {
	for _, c := range classifiers {
		if c.matches(day, activities, p) {
			return c.category
		}
	}
	return CategoryCasual
}
