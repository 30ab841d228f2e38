package domain

import (
	"fmt"
	"time"
)

// MaxForecasts caps how many daily forecasts a weather aggregate keeps.
const MaxForecasts = 7

// Weather owns the daily forecasts for one location. Forecast updates replace
// the whole collection; the aggregate never merges provider data.
type Weather struct {
	Entity
	locationID     int64
	coordinate     Coordinate
	timezone       string
	timezoneOffset int // seconds east of UTC
	updatedAt      time.Time
	forecasts      []WeatherForecast
}

// NewWeather creates an empty weather aggregate for a location.
func NewWeather(locationID int64, coordinate Coordinate, timezone string, timezoneOffset int) *Weather {
	return &Weather{
		locationID:     locationID,
		coordinate:     coordinate,
		timezone:       timezone,
		timezoneOffset: timezoneOffset,
		updatedAt:      clock.Now().UTC(),
	}
}

func (w *Weather) LocationID() int64      { return w.locationID }
func (w *Weather) Coordinate() Coordinate { return w.coordinate }
func (w *Weather) Timezone() string       { return w.timezone }
func (w *Weather) TimezoneOffset() int    { return w.timezoneOffset }
func (w *Weather) UpdatedAt() time.Time   { return w.updatedAt }

// Forecasts returns a copy of the owned forecasts, most recent input order
// preserved.
func (w *Weather) Forecasts() []WeatherForecast {
	out := make([]WeatherForecast, len(w.forecasts))
	copy(out, w.forecasts)
	return out
}

// UpdateForecasts replaces the collection with at most MaxForecasts entries
// of the input, preserving order, and raises WeatherUpdated. A nil slice is
// rejected; an explicit empty slice clears the forecasts.
func (w *Weather) UpdateForecasts(forecasts []WeatherForecast) error {
	if forecasts == nil {
		return fmt.Errorf("%w: forecasts", ErrNilValue)
	}
	if len(forecasts) > MaxForecasts {
		forecasts = forecasts[:MaxForecasts]
	}
	w.forecasts = make([]WeatherForecast, len(forecasts))
	copy(w.forecasts, forecasts)
	w.updatedAt = clock.Now().UTC()
	w.AddDomainEvent(WeatherUpdated{LocationID: w.locationID, At: w.updatedAt})
	return nil
}

// ForecastForDate returns the forecast whose calendar date matches the given
// time's calendar date.
func (w *Weather) ForecastForDate(date time.Time) (WeatherForecast, bool) {
	y, m, d := date.UTC().Date()
	for _, f := range w.forecasts {
		fy, fm, fd := f.Date().Date()
		if fy == y && fm == m && fd == d {
			return f, true
		}
	}
	return WeatherForecast{}, false
}

// CurrentForecast returns the forecast for today, if any.
func (w *Weather) CurrentForecast() (WeatherForecast, bool) {
	return w.ForecastForDate(clock.Now())
}
