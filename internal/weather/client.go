// Package weather fetches current conditions and hourly forecasts from the
// Open-Meteo API and maps them onto the snapshot types the scoring engine
// consumes. No API key is required for the public forecast endpoint.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"huntcast/internal/config"
	"huntcast/internal/external"
	"huntcast/internal/types"
)

// hPa to inches of mercury.
const inHgPerHPa = 0.02953

// Client fetches weather data from Open-Meteo.
type Client struct {
	base     *external.BaseClient
	baseURL  string
	baseOpts []external.BaseClientOption
	observe  func(outcome string, d time.Duration)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithFetchObserver installs a callback invoked once per upstream fetch with
// the outcome label ("success" or "error") and the fetch latency, used for
// metrics.
func WithFetchObserver(fn func(outcome string, d time.Duration)) ClientOption {
	return func(c *Client) {
		c.observe = fn
	}
}

// WithBaseOptions forwards options to the underlying BaseClient, used by
// tests to disable retry sleeps.
func WithBaseOptions(opts ...external.BaseClientOption) ClientOption {
	return func(c *Client) {
		c.baseOpts = append(c.baseOpts, opts...)
	}
}

// NewClient creates a weather client from config. The underlying BaseClient
// carries the circuit breaker and retry policy shared by all outbound calls.
func NewClient(cfg config.WeatherConfig, opts ...ClientOption) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	policy := external.DefaultRetryPolicy()
	policy.MaxRetries = cfg.MaxRetries

	c := &Client{
		baseURL: cfg.BaseURL,
		observe: func(string, time.Duration) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.base = external.NewBaseClient(httpClient, "open-meteo", policy, cfg.UserAgent, c.baseOpts...)
	return c
}

// currentResponse mirrors the subset of the Open-Meteo current-weather
// payload we consume.
type currentResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		Pressure    float64 `json:"surface_pressure"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// forecastResponse mirrors the daily forecast payload.
type forecastResponse struct {
	Daily struct {
		Time        []string  `json:"time"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
		WindMax     []float64 `json:"wind_speed_10m_max"`
		WeatherCode []int     `json:"weather_code"`
	} `json:"daily"`
}

// Current fetches the current conditions at the given coordinates.
func (c *Client) Current(ctx context.Context, lat, lon float64) (types.WeatherSnapshot, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current", "temperature_2m,wind_speed_10m,relative_humidity_2m,surface_pressure,weather_code")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("wind_speed_unit", "mph")

	var payload currentResponse
	if err := c.getJSON(ctx, "/v1/forecast", q, &payload); err != nil {
		return types.WeatherSnapshot{}, err
	}

	humidity := payload.Current.Humidity
	return types.WeatherSnapshot{
		TemperatureF: payload.Current.Temperature,
		WindSpeedMPH: payload.Current.WindSpeed,
		Sky:          skyFromWMOCode(payload.Current.WeatherCode),
		PressureInHg: payload.Current.Pressure * inHgPerHPa,
		HumidityPct:  &humidity,
	}, nil
}

// DailyForecast holds one day of the multi-day outlook feed.
type DailyForecast struct {
	Date     time.Time
	TempMaxF float64
	TempMinF float64
	WindMPH  float64
	Sky      types.SkyCondition
}

// Snapshot converts the daily aggregate into a point snapshot usable by the
// scoring engine. Temperature is the midpoint of the daily range; pressure
// is not provided at daily resolution so a neutral value is used.
func (d DailyForecast) Snapshot() types.WeatherSnapshot {
	return types.WeatherSnapshot{
		TemperatureF: (d.TempMaxF + d.TempMinF) / 2,
		WindSpeedMPH: d.WindMPH,
		Sky:          d.Sky,
		PressureInHg: 29.92,
	}
}

// Forecast fetches up to days of daily forecasts at the given coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, days int) ([]DailyForecast, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,wind_speed_10m_max,weather_code")
	q.Set("forecast_days", fmt.Sprintf("%d", days))
	q.Set("temperature_unit", "fahrenheit")
	q.Set("wind_speed_unit", "mph")
	q.Set("timezone", "UTC")

	var payload forecastResponse
	if err := c.getJSON(ctx, "/v1/forecast", q, &payload); err != nil {
		return nil, err
	}

	out := make([]DailyForecast, 0, len(payload.Daily.Time))
	for i, day := range payload.Daily.Time {
		if i >= len(payload.Daily.TempMax) || i >= len(payload.Daily.TempMin) ||
			i >= len(payload.Daily.WindMax) || i >= len(payload.Daily.WeatherCode) {
			break
		}
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, types.NewAppError(
				types.ErrCodeUpstreamWeather,
				fmt.Sprintf("unparsable forecast date %q", day),
				err,
			)
		}
		out = append(out, DailyForecast{
			Date:     date,
			TempMaxF: payload.Daily.TempMax[i],
			TempMinF: payload.Daily.TempMin[i],
			WindMPH:  payload.Daily.WindMax[i],
			Sky:      skyFromWMOCode(payload.Daily.WeatherCode[i]),
		})
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build weather request", err)
	}

	start := time.Now()
	resp, err := c.base.Do(req)
	if err != nil {
		c.observe("error", time.Since(start))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		c.observe("success", time.Since(start))
	} else {
		c.observe("error", time.Since(start))
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("weather API returned %d: %s", resp.StatusCode, string(body)),
			nil,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return types.NewAppError(types.ErrCodeUpstreamWeather, "failed to decode weather response", err)
	}
	return nil
}

// skyFromWMOCode maps WMO weather interpretation codes onto the sky
// condition vocabulary used by the scoring tables.
func skyFromWMOCode(code int) types.SkyCondition {
	switch {
	case code == 0:
		return types.SkyClear
	case code <= 2:
		return types.SkyPartlyCloudy
	case code == 3:
		return types.SkyOvercast
	case code >= 45 && code <= 48:
		return types.SkyFog
	case code >= 51 && code <= 57:
		return types.SkyLightRain
	case code >= 61 && code <= 63:
		return types.SkyLightRain
	case code >= 65 && code <= 67:
		return types.SkyHeavyRain
	case code >= 71 && code <= 77:
		return types.SkySnow
	case code >= 80 && code <= 81:
		return types.SkyLightRain
	case code == 82:
		return types.SkyHeavyRain
	case code >= 85 && code <= 86:
		return types.SkySnow
	case code >= 95:
		return types.SkyHeavyRain
	default:
		return types.SkyOvercast
	}
}
