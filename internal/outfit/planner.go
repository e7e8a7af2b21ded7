package outfit

import (
	"time"

	"github.com/packwise/packwise/internal/itinerary"
	"github.com/packwise/packwise/internal/trip"
)

// PlannerConfig configures a Planner.
type PlannerConfig struct {
	// AttachMode controls how orphan itinerary lines are assigned to days.
	AttachMode itinerary.AttachMode

	// Now supplies the start date when the trip has none. Defaults to time.Now.
	Now func() time.Time
}

// Planner builds day-by-day outfit plans.
type Planner struct {
	parser *itinerary.Parser
	now    func() time.Time
}

// NewPlanner creates a planner.
func NewPlanner(cfg PlannerConfig) *Planner {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Planner{
		parser: itinerary.NewParser(cfg.AttachMode),
		now:    cfg.Now,
	}
}

// Plan returns one DailyOutfit per trip day, in day order. A trip without a
// start date starts today (UTC). Weather comes from src, which may be nil.
func (p *Planner) Plan(params trip.Parameters, src WeatherSource) []DailyOutfit {
	if params.DurationDays <= 0 {
		return []DailyOutfit{}
	}
	if src == nil {
		src = noWeather{}
	}

	start := params.StartDate
	if start.IsZero() {
		start = p.now().UTC().Truncate(24 * time.Hour)
	}

	activities := p.parser.Parse(params.Itinerary)
	days := make([]DailyOutfit, 0, params.DurationDays)

	for d := 1; d <= params.DurationDays; d++ {
		dayActivities := activities[d]
		if len(dayActivities) == 0 {
			dayActivities = []string{DefaultActivity}
		} else {
			dayActivities = append([]string(nil), dayActivities...)
		}

		w := src.ForDay(d)
		category := Classify(d, dayActivities, params)

		days = append(days, DailyOutfit{
			Day:        d,
			Date:       start.AddDate(0, 0, d-1),
			Activities: dayActivities,
			Category:   category,
			Daytime:    Daytime(category, params.Gender, w),
			Evening:    Evening(params.Gender, w),
			Weather:    w,
		})
	}

	return days
}

// Plan plans outfits with the default max-day attach mode.
func Plan(params trip.Parameters, src WeatherSource) []DailyOutfit {
	return NewPlanner(PlannerConfig{}).Plan(params, src)
}
