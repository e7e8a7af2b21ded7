package outfit

import (
	"math"
	"strings"

	"github.com/packwise/packwise/internal/weather"
)

// WeatherSource supplies the weather for a 1-based trip day. A nil result
// means no weather for that day.
type WeatherSource interface {
	ForDay(day int) *weather.Snapshot
}

// Cycle bounds in Celsius.
const (
	cycleMaxC = 35.0
	cycleMinC = 0.0
)

type syntheticCycle struct {
	variations [4]weather.Snapshot
}

// SyntheticCycle derives four variations from one reading and cycles through
// them by day modulo 4: unchanged, 2 degrees warmer (capped at 35), 2 degrees
// colder (floored at 0) and rainy, then rainy at the base temperature.
// A nil base yields a source with no weather.
func SyntheticCycle(base *weather.Snapshot) WeatherSource {
	if base == nil {
		return noWeather{}
	}

	warmer := *base
	warmer.TemperatureC = math.Min(base.TemperatureC+2, cycleMaxC)

	colder := *base
	colder.TemperatureC = math.Max(base.TemperatureC-2, cycleMinC)
	if !strings.Contains(strings.ToLower(base.Description), "rain") {
		colder.Description = "rainy"
	}

	rainy := *base
	rainy.Description = "rainy"

	return &syntheticCycle{variations: [4]weather.Snapshot{*base, warmer, colder, rainy}}
}

func (s *syntheticCycle) ForDay(day int) *weather.Snapshot {
	idx := day % len(s.variations)
	if idx < 0 {
		idx += len(s.variations)
	}
	snap := s.variations[idx]
	return &snap
}

type forecastSource struct {
	forecast []weather.Snapshot
	fallback WeatherSource
}

// ForecastSource uses real daily forecasts: day d reads forecast[d-1]. Days
// past the end of the forecast are answered by fallback, which may be nil.
func ForecastSource(forecast []weather.Snapshot, fallback WeatherSource) WeatherSource {
	return &forecastSource{
		forecast: append([]weather.Snapshot(nil), forecast...),
		fallback: fallback,
	}
}

func (s *forecastSource) ForDay(day int) *weather.Snapshot {
	if day >= 1 && day <= len(s.forecast) {
		snap := s.forecast[day-1]
		return &snap
	}
	if s.fallback == nil {
		return nil
	}
	return s.fallback.ForDay(day)
}

type noWeather struct{}

func (noWeather) ForDay(int) *weather.Snapshot { return nil }
