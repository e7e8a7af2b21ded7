// Package openmeteo implements weather.Provider on top of the Open-Meteo
// geocoding and forecast APIs. Neither API requires a key.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/packwise/packwise/internal/provider/resilience"
	"github.com/packwise/packwise/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openmeteo"

	// DefaultBaseURL is the Open-Meteo forecast API base URL.
	DefaultBaseURL = "https://api.open-meteo.com/v1"

	// DefaultGeocodingURL is the Open-Meteo geocoding API base URL.
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1"
)

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// BaseURL is the forecast API base URL (optional).
	BaseURL string

	// GeocodingURL is the geocoding API base URL (optional).
	GeocodingURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo API client.
type Client struct {
	baseURL      string
	geocodingURL string
	httpClient   *resilience.Client
	logger       zerolog.Logger
}

// NewClient creates a new Open-Meteo client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	geocodingURL := cfg.GeocodingURL
	if geocodingURL == "" {
		geocodingURL = DefaultGeocodingURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:      baseURL,
		geocodingURL: geocodingURL,
		httpClient:   httpClient,
		logger:       cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// CurrentAndForecast geocodes the location and fetches current conditions
// plus the daily forecast.
func (c *Client) CurrentAndForecast(ctx context.Context, location string) (*weather.Report, error) {
	place, err := c.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("location", location).
		Float64("lat", place.Latitude).
		Float64("lon", place.Longitude).
		Msg("resolved location")

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.6f", place.Latitude))
	q.Set("longitude", fmt.Sprintf("%.6f", place.Longitude))
	q.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code,precipitation,cloud_cover")
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max")
	q.Set("timezone", "auto")

	var resp forecastResponse
	if err := c.getJSON(ctx, c.baseURL+"/forecast?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}

	return toReport(location, &resp), nil
}

func (c *Client) geocode(ctx context.Context, location string) (*geocodingResult, error) {
	q := url.Values{}
	q.Set("name", location)
	q.Set("count", "1")

	var resp geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL+"/search?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetching location data: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: %q", weather.ErrLocationNotFound, location)
	}

	return &resp.Results[0], nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// toReport converts the Open-Meteo response to the domain model.
func toReport(location string, resp *forecastResponse) *weather.Report {
	description, icon := describeCode(resp.Current.WeatherCode)

	report := &weather.Report{
		Location: location,
		Current: weather.Snapshot{
			TemperatureC:  resp.Current.Temperature,
			Description:   description,
			Icon:          icon,
			Humidity:      resp.Current.Humidity,
			WindSpeed:     resp.Current.WindSpeed,
			Precipitation: resp.Current.Precipitation,
			CloudCover:    resp.Current.CloudCover,
		},
		FetchedAt: time.Now(),
	}

	d := resp.Daily
	for i, day := range d.Time {
		if i >= len(d.WeatherCode) || i >= len(d.TemperatureMax) || i >= len(d.TemperatureMin) {
			break
		}

		description, icon := describeCode(d.WeatherCode[i])
		snap := weather.Snapshot{
			TemperatureC: (d.TemperatureMax[i] + d.TemperatureMin[i]) / 2,
			Description:  description,
			Icon:         icon,
		}
		if i < len(d.WindSpeedMax) {
			snap.WindSpeed = d.WindSpeedMax[i]
		}
		if i < len(d.PrecipitationSum) {
			snap.Precipitation = d.PrecipitationSum[i]
		}
		if parsed, err := time.Parse("2006-01-02", day); err == nil {
			snap.Date = parsed
		}

		report.Forecast = append(report.Forecast, snap)
	}

	return report
}

// describeCode maps a WMO weather code to a description and icon code.
func describeCode(code int) (description, icon string) {
	switch {
	case code == 0:
		return "Clear sky", "01d"
	case code < 0:
		return "Unknown", "01d"
	case code <= 3:
		return "Partly cloudy", "02d"
	case code <= 48:
		return "Fog", "50d"
	case code <= 67:
		return "Rain", "10d"
	case code <= 77:
		return "Snow", "13d"
	case code <= 99:
		return "Thunderstorm", "11d"
	default:
		return "Unknown", "01d"
	}
}

// Open-Meteo API response structures.

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

type forecastResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WeatherCode   int     `json:"weather_code"`
		Precipitation float64 `json:"precipitation"`
		CloudCover    float64 `json:"cloud_cover"`
	} `json:"current"`
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weather_code"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

// Ensure Client implements weather.Provider.
var _ weather.Provider = (*Client)(nil)
