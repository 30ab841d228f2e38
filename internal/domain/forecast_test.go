package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeatherForecastValidation(t *testing.T) {
	date := time.Date(2026, 6, 1, 15, 42, 7, 0, time.UTC)

	valid := func(humidity, clouds float64) (WeatherForecast, error) {
		return NewWeatherForecast(1, date, date, date,
			TemperatureFromCelsius(20), TemperatureFromCelsius(15), TemperatureFromCelsius(25),
			"clear sky", "01d", NewWindInfo(3, 90, 0),
			humidity, 1015, clouds, 4)
	}

	t.Run("normalizes date to calendar day", func(t *testing.T) {
		f, err := valid(50, 10)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), f.Date())
	})

	tests := []struct {
		name     string
		humidity float64
		clouds   float64
		wantErr  bool
	}{
		{"bounds are inclusive", 0, 100, false},
		{"typical values", 55, 40, false},
		{"humidity negative", -1, 50, true},
		{"humidity above 100", 101, 50, true},
		{"clouds negative", 50, -0.5, true},
		{"clouds above 100", 50, 100.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := valid(tt.humidity, tt.clouds)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutOfRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetMoonDataClampsPhase(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	f := dayForecast(t, 1, date)

	tests := []struct {
		name  string
		phase float64
		want  float64
	}{
		{"below zero clamped up", -0.1, 0.0},
		{"above one clamped down", 1.1, 1.0},
		{"in range untouched", 0.42, 0.42},
		{"exactly zero", 0, 0},
		{"exactly one", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.SetMoonData(nil, nil, tt.phase)
			assert.Equal(t, tt.want, f.MoonPhase())
		})
	}

	t.Run("rise and set accepted as given", func(t *testing.T) {
		rise := date.Add(21 * time.Hour)
		f.SetMoonData(&rise, nil, 0.5)
		require.NotNil(t, f.MoonRise())
		assert.Equal(t, rise, *f.MoonRise())
		assert.Nil(t, f.MoonSet())
	})
}

func TestSetPrecipitationClampsNegative(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	f := dayForecast(t, 1, date)

	f.SetPrecipitation(-5)
	assert.Equal(t, 0.0, f.Precipitation())

	f.SetPrecipitation(2.4)
	assert.Equal(t, 2.4, f.Precipitation())
}

func TestMoonPhaseDescription(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		phase float64
		want  string
	}{
		{0.0, "New Moon"},
		{0.02, "New Moon"},
		{0.1, "Waxing Crescent"},
		{0.25, "First Quarter"},
		{0.4, "Waxing Gibbous"},
		{0.5, "Full Moon"},
		{0.6, "Waning Gibbous"},
		{0.75, "Last Quarter"},
		{0.9, "Waning Crescent"},
		{0.98, "New Moon"},
		{1.0, "New Moon"},
		// boundary edges
		{0.03, "Waxing Crescent"},
		{0.22, "First Quarter"},
		{0.28, "Waxing Gibbous"},
		{0.47, "Full Moon"},
		{0.53, "Waning Gibbous"},
		{0.72, "Last Quarter"},
		{0.78, "Waning Crescent"},
		{0.97, "New Moon"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			f := dayForecast(t, 1, date)
			f.SetMoonData(nil, nil, tt.phase)
			assert.Equal(t, tt.want, f.MoonPhaseDescription())
			// Pure function of stored phase: stable across repeated calls.
			assert.Equal(t, tt.want, f.MoonPhaseDescription())
		})
	}
}
