package handler

import (
	"errors"
	"strings"

	"github.com/packwise/packwise/internal/api/models"
	"github.com/packwise/packwise/internal/outfit"
	"github.com/packwise/packwise/internal/packing"
	"github.com/packwise/packwise/internal/planner"
	"github.com/packwise/packwise/internal/trip"
	"github.com/packwise/packwise/internal/weather"
)

// MaxDurationDays bounds the trip length accepted by the generation endpoints.
const MaxDurationDays = 365

// toParameters converts request input into engine parameters. Unknown purpose
// and accommodation tags pass through; the engines ignore them.
func toParameters(in *models.TripParametersInput) (trip.Parameters, []models.FieldError) {
	var fieldErrors []models.FieldError

	p := trip.Parameters{
		Destination:  strings.TrimSpace(in.Destination),
		OtherPurpose: strings.TrimSpace(in.OtherPurpose),
		Gender:       trip.ParseGender(in.Gender),
		Itinerary:    in.Itinerary,
		LuggageType:  strings.TrimSpace(in.LuggageType),
	}
	for _, v := range in.TripPurposes {
		p.Purposes = append(p.Purposes, trip.Purpose(strings.ToLower(strings.TrimSpace(v))))
	}
	for _, v := range in.Accommodations {
		p.Accommodations = append(p.Accommodations, trip.Accommodation(strings.ToLower(strings.TrimSpace(v))))
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate.Time()
	}

	switch {
	case in.DurationDays != 0:
		p.DurationDays = in.DurationDays
	case in.StartDate != nil && in.EndDate != nil:
		if !in.EndDate.Time().After(in.StartDate.Time()) {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   "endDate",
				Message: "end date must be after start date",
				Code:    models.CodeInvalidRange,
			})
		}
		p.DurationDays = trip.DurationBetween(in.StartDate.Time(), in.EndDate.Time())
	default:
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "durationDays",
			Message: "durationDays or both startDate and endDate are required",
			Code:    models.CodeRequired,
		})
	}

	if len(fieldErrors) == 0 && (p.DurationDays < 1 || p.DurationDays > MaxDurationDays) {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "durationDays",
			Message: "must be between 1 and 365",
			Code:    models.CodeOutOfRange,
		})
	}
	if len(in.Itinerary) > trip.MaxItineraryLength {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field:   "itinerary",
			Message: "must be at most 10000 characters",
			Code:    models.CodeTooLong,
		})
	}

	return p, fieldErrors
}

func toSnapshot(in *models.WeatherSnapshot) *weather.Snapshot {
	if in == nil {
		return nil
	}
	s := &weather.Snapshot{
		TemperatureC:  in.Temperature,
		Description:   in.Description,
		Icon:          in.Icon,
		Humidity:      in.Humidity,
		WindSpeed:     in.WindSpeed,
		Precipitation: in.Precipitation,
		CloudCover:    in.CloudCover,
	}
	if in.Date != nil {
		s.Date = in.Date.Time()
	}
	return s
}

func toAPISnapshot(s *weather.Snapshot) *models.WeatherSnapshot {
	if s == nil {
		return nil
	}
	out := &models.WeatherSnapshot{
		Temperature:   s.TemperatureC,
		Description:   s.Description,
		Icon:          s.Icon,
		Humidity:      s.Humidity,
		WindSpeed:     s.WindSpeed,
		Precipitation: s.Precipitation,
		CloudCover:    s.CloudCover,
	}
	if !s.Date.IsZero() {
		d := models.Date(s.Date)
		out.Date = &d
	}
	return out
}

func toAPIItem(it packing.Item) models.PackingItem {
	return models.PackingItem{
		Name:     it.Name,
		Quantity: it.Quantity,
		Packed:   it.Packed,
		Purpose:  it.Purpose,
		IsLiquid: it.IsLiquid,
		VolumeMl: it.VolumeMl,
	}
}

func toAPIItems(items []packing.Item) []models.PackingItem {
	out := make([]models.PackingItem, 0, len(items))
	for _, it := range items {
		out = append(out, toAPIItem(it))
	}
	return out
}

func toAPIPackingList(l packing.List) models.PackingList {
	categories := make([]models.PackingCategory, 0, len(packing.Categories))
	for _, c := range packing.Categories {
		categories = append(categories, models.PackingCategory{
			Category: string(c),
			Items:    toAPIItems(l[c]),
		})
	}

	progress := l.Progress()
	liquids := l.Liquids()

	return models.PackingList{
		Categories: categories,
		Progress: models.PackingProgress{
			Packed:  progress.Packed,
			Total:   progress.Total,
			Percent: progress.Percent,
		},
		Liquids: models.LiquidsSummary{
			Items:        toAPIItems(liquids.Items),
			TotalMl:      liquids.TotalMl,
			OverLimit:    toAPIItems(liquids.OverLimit),
			LimitPerItem: packing.CarryOnLiquidLimitMl,
		},
	}
}

func toAPIChecklist(c *packing.Checklist) models.Checklist {
	return models.Checklist{
		ID:          c.ID,
		TripID:      c.TripID,
		Notes:       c.Notes,
		CreatedAt:   models.Timestamp(c.CreatedAt),
		UpdatedAt:   models.Timestamp(c.UpdatedAt),
		PackingList: toAPIPackingList(c.Items),
	}
}

func toAPIOutfit(o outfit.Outfit) models.Outfit {
	accessories := o.Accessories
	if accessories == nil {
		accessories = []string{}
	}
	return models.Outfit{
		Top:         o.Top,
		Bottom:      o.Bottom,
		Shoes:       o.Shoes,
		Outerwear:   o.Outerwear,
		Accessories: accessories,
	}
}

func toAPIDailyOutfits(days []outfit.DailyOutfit) []models.DailyOutfit {
	out := make([]models.DailyOutfit, 0, len(days))
	for _, d := range days {
		out = append(out, models.DailyOutfit{
			Day:        d.Day,
			Date:       models.Date(d.Date),
			Activities: d.Activities,
			Category:   string(d.Category),
			Daytime:    toAPIOutfit(d.Daytime),
			Evening:    toAPIOutfit(d.Evening),
			Weather:    toAPISnapshot(d.Weather),
		})
	}
	return out
}

func toAPISuggestion(s *outfit.Suggestion) *models.OutfitSuggestion {
	if s == nil {
		return nil
	}
	return &models.OutfitSuggestion{
		Band:            string(s.Band),
		Items:           s.Items,
		RainAccessories: s.RainAccessories,
	}
}

func toAPIStrategy(s *packing.Strategy) *models.PackingStrategy {
	if s == nil {
		return nil
	}
	out := &models.PackingStrategy{
		LuggageType: s.LuggageType,
		Title:       s.Title,
		Sections:    make([]models.PackingStrategySection, 0, len(s.Sections)),
	}
	for _, sec := range s.Sections {
		out.Sections = append(out.Sections, models.PackingStrategySection{
			Title: sec.Title,
			Intro: sec.Intro,
			Tips:  sec.Tips,
		})
	}
	return out
}

// toAPIWeather splits per-location results into reports and warnings.
func toAPIWeather(reports []weather.LocationReport) ([]models.LocationWeather, []models.LocationWarning) {
	locations := make([]models.LocationWeather, 0, len(reports))
	warnings := []models.LocationWarning{}

	for _, r := range reports {
		if r.Err != nil {
			warnings = append(warnings, toWarning(r))
			locations = append(locations, models.LocationWeather{Location: r.Location})
			continue
		}

		report := &models.WeatherReport{
			Current:   *toAPISnapshot(&r.Report.Current),
			Forecast:  make([]models.WeatherSnapshot, 0, len(r.Report.Forecast)),
			FetchedAt: models.Timestamp(r.Report.FetchedAt),
		}
		for i := range r.Report.Forecast {
			report.Forecast = append(report.Forecast, *toAPISnapshot(&r.Report.Forecast[i]))
		}
		locations = append(locations, models.LocationWeather{Location: r.Location, Report: report})
	}

	return locations, warnings
}

func toWarning(r weather.LocationReport) models.LocationWarning {
	if errors.Is(r.Err, weather.ErrLocationNotFound) {
		return models.LocationWarning{
			Location: r.Location,
			Code:     models.WarningLocationNotFound,
			Message:  `location "` + r.Location + `" not found; check the spelling or try a nearby city`,
		}
	}
	return models.LocationWarning{
		Location: r.Location,
		Code:     models.WarningProviderUnavailable,
		Message:  "weather is temporarily unavailable for " + r.Location,
	}
}

func toAPIPlan(p *planner.Plan) models.Plan {
	locations, warnings := toAPIWeather(p.Weather)
	return models.Plan{
		PackingList: toAPIPackingList(p.PackingList),
		Outfits:     toAPIDailyOutfits(p.Outfits),
		Weather:     locations,
		Warnings:    warnings,
		Suggestion:  toAPISuggestion(p.Suggestion),
		Strategy:    toAPIStrategy(p.Strategy),
		GeneratedAt: models.Timestamp(p.GeneratedAt),
	}
}
