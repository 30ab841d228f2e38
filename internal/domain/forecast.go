package domain

import (
	"fmt"
	"time"
)

// WeatherForecast is one day's forecast snapshot for a weather aggregate.
// It is constructed in a single call; SetMoonData and SetPrecipitation are
// the only post-construction mutators, and neither can fail.
type WeatherForecast struct {
	weatherID     int64
	date          time.Time
	sunrise       time.Time
	sunset        time.Time
	temperature   Temperature
	minTemp       Temperature
	maxTemp       Temperature
	description   string
	icon          string
	wind          WindInfo
	humidity      float64
	pressure      float64
	clouds        float64
	uvIndex       float64
	moonRise      *time.Time
	moonSet       *time.Time
	moonPhase     float64
	precipitation float64
}

// NewWeatherForecast builds a validated forecast. Humidity and cloud cover
// must be percentages in [0, 100]; the date is normalized to its calendar day
// in UTC.
func NewWeatherForecast(
	weatherID int64,
	date, sunrise, sunset time.Time,
	temperature, minTemp, maxTemp Temperature,
	description, icon string,
	wind WindInfo,
	humidity, pressure, clouds, uvIndex float64,
) (WeatherForecast, error) {
	if err := requirePercent("humidity", humidity); err != nil {
		return WeatherForecast{}, err
	}
	if err := requirePercent("cloud cover", clouds); err != nil {
		return WeatherForecast{}, err
	}
	y, m, d := date.UTC().Date()
	return WeatherForecast{
		weatherID:   weatherID,
		date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		sunrise:     sunrise,
		sunset:      sunset,
		temperature: temperature,
		minTemp:     minTemp,
		maxTemp:     maxTemp,
		description: description,
		icon:        icon,
		wind:        wind,
		humidity:    humidity,
		pressure:    pressure,
		clouds:      clouds,
		uvIndex:     uvIndex,
	}, nil
}

func (f WeatherForecast) WeatherID() int64         { return f.weatherID }
func (f WeatherForecast) Date() time.Time          { return f.date }
func (f WeatherForecast) Sunrise() time.Time       { return f.sunrise }
func (f WeatherForecast) Sunset() time.Time        { return f.sunset }
func (f WeatherForecast) Temperature() Temperature { return f.temperature }
func (f WeatherForecast) MinTemp() Temperature     { return f.minTemp }
func (f WeatherForecast) MaxTemp() Temperature     { return f.maxTemp }
func (f WeatherForecast) Description() string      { return f.description }
func (f WeatherForecast) Icon() string             { return f.icon }
func (f WeatherForecast) Wind() WindInfo           { return f.wind }
func (f WeatherForecast) Humidity() float64        { return f.humidity }
func (f WeatherForecast) Pressure() float64        { return f.pressure }
func (f WeatherForecast) Clouds() float64          { return f.clouds }
func (f WeatherForecast) UVIndex() float64         { return f.uvIndex }
func (f WeatherForecast) MoonRise() *time.Time     { return f.moonRise }
func (f WeatherForecast) MoonSet() *time.Time      { return f.moonSet }
func (f WeatherForecast) MoonPhase() float64       { return f.moonPhase }
func (f WeatherForecast) Precipitation() float64   { return f.precipitation }

// SetMoonData records moon rise/set (either may be nil near the poles or on
// days without one) and the phase, clamped to [0, 1]. Out-of-range phases
// are provider noise, not caller errors.
func (f *WeatherForecast) SetMoonData(moonRise, moonSet *time.Time, phase float64) {
	f.moonRise = moonRise
	f.moonSet = moonSet
	f.moonPhase = clamp(phase, 0, 1)
}

// SetPrecipitation records expected precipitation in millimeters, clamping
// negatives to 0.
func (f *WeatherForecast) SetPrecipitation(mm float64) {
	f.precipitation = max(mm, 0)
}

// MoonPhaseDescription maps the stored phase to one of the eight common
// phase names. Phase 0 and 1 both describe a new moon, so the top of the
// range wraps around.
func (f WeatherForecast) MoonPhaseDescription() string {
	p := f.moonPhase
	switch {
	case p < 0.03 || p >= 0.97:
		return "New Moon"
	case p < 0.22:
		return "Waxing Crescent"
	case p < 0.28:
		return "First Quarter"
	case p < 0.47:
		return "Waxing Gibbous"
	case p < 0.53:
		return "Full Moon"
	case p < 0.72:
		return "Waning Gibbous"
	case p < 0.78:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}

// String summarizes the forecast for logs.
func (f WeatherForecast) String() string {
	return fmt.Sprintf("%s: %s, %.1f°C (%.1f–%.1f)",
		f.date.Format("2006-01-02"), f.description,
		f.temperature.Celsius(), f.minTemp.Celsius(), f.maxTemp.Celsius())
}
