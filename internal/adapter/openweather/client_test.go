package openweather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photoscout/photoscout/internal/config"
	"github.com/photoscout/photoscout/internal/domain"
	"github.com/photoscout/photoscout/internal/observability"
)

const oneCallFixture = `{
	"timezone": "Europe/Tallinn",
	"timezone_offset": 10800,
	"daily": [
		{
			"dt": 1778227200,
			"sunrise": 1778208000,
			"sunset": 1778263200,
			"moonrise": 1778215000,
			"moonset": 0,
			"moon_phase": 0.5,
			"temp": {"day": 14.2, "min": 7.8, "max": 15.1},
			"pressure": 1015,
			"humidity": 52,
			"wind_speed": 4.1,
			"wind_deg": 230,
			"wind_gust": 9.7,
			"weather": [{"description": "scattered clouds", "icon": "03d"}],
			"clouds": 40,
			"uvi": 4.2,
			"rain": 1.2,
			"snow": 0.3
		},
		{
			"dt": 1778313600,
			"sunrise": 1778294300,
			"sunset": 1778349700,
			"moonrise": 0,
			"moonset": 0,
			"moon_phase": 0.98,
			"temp": {"day": 11.0, "min": 6.0, "max": 12.5},
			"pressure": 1019,
			"humidity": 61,
			"wind_speed": 2.3,
			"wind_deg": 180,
			"wind_gust": 0,
			"weather": [],
			"clouds": 75,
			"uvi": 3.0
		}
	]
}`

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		WeatherAPIKey:   "test-key",
		WeatherBaseURL:  baseURL,
		WeatherTimeout:  5 * time.Second,
		MaxRetries:      2,
		RetryDelay:      time.Millisecond,
		RetryMultiplier: 2,
		BreakerTimeout:  time.Second,
	}
}

func testClient(baseURL string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(testConfig(baseURL), logger, observability.NewMetricsForTesting())
}

func TestFetchWeather(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/onecall", r.URL.Path)
		query = r.URL.Query()
		w.Write([]byte(oneCallFixture))
	}))
	defer srv.Close()

	weather, err := testClient(srv.URL).FetchWeather(context.Background(), 21, domain.NewCoordinate(59.436, 24.753))
	require.NoError(t, err)

	assert.Equal(t, []string{"59.436000"}, query["lat"])
	assert.Equal(t, []string{"24.753000"}, query["lon"])
	assert.Equal(t, []string{"test-key"}, query["appid"])
	assert.Equal(t, []string{"metric"}, query["units"])

	assert.Equal(t, int64(21), weather.LocationID())
	assert.Equal(t, "Europe/Tallinn", weather.Timezone())
	assert.Equal(t, 10800, weather.TimezoneOffset())

	forecasts := weather.Forecasts()
	require.Len(t, forecasts, 2)

	first := forecasts[0]
	assert.Equal(t, "scattered clouds", first.Description())
	assert.Equal(t, "03d", first.Icon())
	assert.InDelta(t, 14.2, first.Temperature().Celsius(), 1e-9)
	assert.InDelta(t, 7.8, first.MinTemp().Celsius(), 1e-9)
	assert.InDelta(t, 15.1, first.MaxTemp().Celsius(), 1e-9)
	assert.Equal(t, domain.NewWindInfo(4.1, 230, 9.7), first.Wind())
	assert.InDelta(t, 52, first.Humidity(), 1e-9)
	assert.InDelta(t, 4.2, first.UVIndex(), 1e-9)
	assert.InDelta(t, 1.5, first.Precipitation(), 1e-9, "rain and snow are summed")
	require.NotNil(t, first.MoonRise())
	assert.Nil(t, first.MoonSet(), "zero moonset maps to nil")
	assert.Equal(t, "Full Moon", first.MoonPhaseDescription())

	second := forecasts[1]
	assert.Empty(t, second.Description(), "missing weather block leaves description empty")
	assert.Nil(t, second.MoonRise())
	assert.Zero(t, second.Precipitation())
	assert.Equal(t, "New Moon", second.MoonPhaseDescription())

	// Fetch raises the aggregate's update event for the dispatcher to drain.
	require.Len(t, weather.DomainEvents(), 1)
	assert.Equal(t, "weather.updated", weather.DomainEvents()[0].Kind())
}

func TestFetchWeatherRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(oneCallFixture))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchWeather(context.Background(), 1, domain.NewCoordinate(0, 0))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchWeatherDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchWeather(context.Background(), 1, domain.NewCoordinate(0, 0))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses are not retried")
}

func TestFetchWeatherBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchWeather(context.Background(), 1, domain.NewCoordinate(0, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode forecast")
}
