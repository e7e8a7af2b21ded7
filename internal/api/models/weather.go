package models

// WeatherSnapshot is one weather reading.
type WeatherSnapshot struct {
	Temperature   float64 `json:"temperature"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon,omitempty"`
	Humidity      float64 `json:"humidity,omitempty"`
	WindSpeed     float64 `json:"windSpeed,omitempty"`
	Precipitation float64 `json:"precipitation,omitempty"`
	CloudCover    float64 `json:"cloudCover,omitempty"`
	Date          *Date   `json:"date,omitempty"`
}

// WeatherReport is the current reading and daily forecast for a location.
type WeatherReport struct {
	Current   WeatherSnapshot   `json:"current"`
	Forecast  []WeatherSnapshot `json:"forecast"`
	FetchedAt Timestamp         `json:"fetchedAt"`
}

// LocationWeather is the outcome of a lookup for one location.
type LocationWeather struct {
	Location string         `json:"location"`
	Report   *WeatherReport `json:"report,omitempty"`
}

// LocationWarning explains why a location has no weather.
type LocationWarning struct {
	Location string `json:"location"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// Warning codes for LocationWarning.
const (
	WarningLocationNotFound    = "LOCATION_NOT_FOUND"
	WarningProviderUnavailable = "PROVIDER_UNAVAILABLE"
)

// DestinationWeather is the response of GET /v1/weather.
type DestinationWeather struct {
	Destination string            `json:"destination"`
	Locations   []LocationWeather `json:"locations"`
	Warnings    []LocationWarning `json:"warnings"`
}
