package weather

import (
	"errors"
	"strings"
	"time"
)

// Weather errors.
var (
	// ErrLocationNotFound means the location name could not be geocoded.
	ErrLocationNotFound = errors.New("location not found")

	// ErrProviderUnavailable covers transport and format failures.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)

// Snapshot is a single normalized weather reading, current or daily.
type Snapshot struct {
	// TemperatureC in Celsius. Zero is a real reading, not "unset".
	TemperatureC float64

	// Description is free text such as "Partly cloudy" or "Rain".
	Description string

	// Icon is an icon code (01d, 02d, 10d ...).
	Icon string

	Humidity      float64 // percent
	WindSpeed     float64 // km/h
	Precipitation float64 // mm
	CloudCover    float64 // percent

	// Date is set for forecast entries only.
	Date time.Time
}

// IsRainy reports whether the description mentions rain, case-insensitively.
func (s *Snapshot) IsRainy() bool {
	if s == nil {
		return false
	}
	return strings.Contains(strings.ToLower(s.Description), "rain")
}

// Report is the current reading plus daily forecast for one location.
type Report struct {
	Location  string
	Current   Snapshot
	Forecast  []Snapshot
	FetchedAt time.Time
}

// LocationReport is the per-location outcome of a multi-location lookup.
// Exactly one of Report and Err is set.
type LocationReport struct {
	Location string
	Report   *Report
	Err      error
}

// NotFound reports whether the lookup failed because the location is unknown.
func (r LocationReport) NotFound() bool {
	return errors.Is(r.Err, ErrLocationNotFound)
}
