// Package openweather fetches daily forecasts from the OpenWeather One Call
// API and maps them onto the domain weather aggregate.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/photoscout/photoscout/internal/config"
	"github.com/photoscout/photoscout/internal/domain"
	"github.com/photoscout/photoscout/internal/observability"
)

// Client calls the One Call daily forecast endpoint. Requests retry with
// exponential backoff behind a circuit breaker so a flapping provider does
// not stall the refresh cycle.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	metrics    *observability.Metrics

	baseURL    string
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	multiplier float64
}

// NewClient builds a provider client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	settings := gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"client", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.WeatherTimeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     logger,
		metrics:    metrics,
		baseURL:    cfg.WeatherBaseURL,
		apiKey:     cfg.WeatherAPIKey,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		multiplier: cfg.RetryMultiplier,
	}
}

// oneCallResponse mirrors the subset of the One Call payload the aggregate
// needs.
type oneCallResponse struct {
	Timezone       string `json:"timezone"`
	TimezoneOffset int    `json:"timezone_offset"`
	Daily          []struct {
		Dt        int64   `json:"dt"`
		Sunrise   int64   `json:"sunrise"`
		Sunset    int64   `json:"sunset"`
		Moonrise  int64   `json:"moonrise"`
		Moonset   int64   `json:"moonset"`
		MoonPhase float64 `json:"moon_phase"`
		Temp      struct {
			Day float64 `json:"day"`
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"temp"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
		WindSpeed float64 `json:"wind_speed"`
		WindDeg   float64 `json:"wind_deg"`
		WindGust  float64 `json:"wind_gust"`
		Weather   []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Clouds float64 `json:"clouds"`
		UVI    float64 `json:"uvi"`
		Rain   float64 `json:"rain"`
		Snow   float64 `json:"snow"`
	} `json:"daily"`
}

// FetchWeather requests the daily forecast for a coordinate and returns a
// weather aggregate for the location with the forecasts applied.
func (c *Client) FetchWeather(ctx context.Context, locationID int64, coord domain.Coordinate) (*domain.Weather, error) {
	endpoint := fmt.Sprintf("%s/onecall?%s", c.baseURL, url.Values{
		"lat":     {fmt.Sprintf("%.6f", coord.Lat)},
		"lon":     {fmt.Sprintf("%.6f", coord.Lon)},
		"exclude": {"current,minutely,hourly,alerts"},
		"units":   {"metric"},
		"appid":   {c.apiKey},
	}.Encode())

	start := time.Now()
	body, err := c.getWithRetry(ctx, endpoint)
	c.metrics.ProviderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch forecast for location %d: %w", locationID, err)
	}
	c.metrics.ProviderRequests.WithLabelValues("success").Inc()

	var payload oneCallResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode forecast for location %d: %w", locationID, err)
	}

	weather := domain.NewWeather(locationID, coord, payload.Timezone, payload.TimezoneOffset)
	forecasts := make([]domain.WeatherForecast, 0, len(payload.Daily))
	for _, day := range payload.Daily {
		description, icon := "", ""
		if len(day.Weather) > 0 {
			description = day.Weather[0].Description
			icon = day.Weather[0].Icon
		}

		forecast, err := domain.NewWeatherForecast(
			weather.ID(),
			time.Unix(day.Dt, 0).UTC(),
			time.Unix(day.Sunrise, 0).UTC(),
			time.Unix(day.Sunset, 0).UTC(),
			domain.TemperatureFromCelsius(day.Temp.Day),
			domain.TemperatureFromCelsius(day.Temp.Min),
			domain.TemperatureFromCelsius(day.Temp.Max),
			description, icon,
			domain.NewWindInfo(day.WindSpeed, day.WindDeg, day.WindGust),
			day.Humidity, day.Pressure, day.Clouds, day.UVI,
		)
		if err != nil {
			return nil, fmt.Errorf("forecast for location %d: %w", locationID, err)
		}
		forecast.SetMoonData(unixOrNil(day.Moonrise), unixOrNil(day.Moonset), day.MoonPhase)
		forecast.SetPrecipitation(day.Rain + day.Snow)
		forecasts = append(forecasts, forecast)
	}

	if err := weather.UpdateForecasts(forecasts); err != nil {
		return nil, err
	}
	return weather, nil
}

// unixOrNil maps the provider's zero sentinel for missing moon events to nil.
func unixOrNil(ts int64) *time.Time {
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

func (c *Client) getWithRetry(ctx context.Context, endpoint string) ([]byte, error) {
	body, err := c.breaker.Execute(func() (any, error) {
		return c.doGetWithRetry(ctx, endpoint)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *Client) doGetWithRetry(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(c.retryDelay) * math.Pow(c.multiplier, float64(attempt-1)))
			c.logger.Debug("retrying provider request", "attempt", attempt, "delay", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Warn("provider request failed", "attempt", attempt, "error", err)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			payload, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = readErr
				continue
			}
			return payload, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)

		// Client errors will not heal on retry, except rate limiting.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			break
		}
	}
	return nil, fmt.Errorf("provider request: %w", lastErr)
}
