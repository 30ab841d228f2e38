package domain

import "strings"

// Coordinate is a WGS-84 latitude/longitude pair. Values are not range
// checked; equality is by both components.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewCoordinate builds a coordinate from decimal degrees.
func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

// Address names the city and state a location belongs to.
type Address struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// NewAddress builds an address. Fields are kept verbatim; comparison is
// case-insensitive via Equal.
func NewAddress(city, state string) Address {
	return Address{City: city, State: state}
}

// Equal reports whether two addresses name the same place, ignoring case.
func (a Address) Equal(other Address) bool {
	return strings.EqualFold(a.City, other.City) && strings.EqualFold(a.State, other.State)
}

// Temperature stores a canonical Celsius value so that readings constructed
// from either unit compare equal when they describe the same temperature.
type Temperature struct {
	celsius float64
}

// TemperatureFromCelsius builds a temperature from degrees Celsius.
func TemperatureFromCelsius(c float64) Temperature {
	return Temperature{celsius: c}
}

// TemperatureFromFahrenheit builds a temperature from degrees Fahrenheit.
func TemperatureFromFahrenheit(f float64) Temperature {
	return Temperature{celsius: (f - 32) * 5 / 9}
}

// Celsius returns the temperature in degrees Celsius.
func (t Temperature) Celsius() float64 { return t.celsius }

// Fahrenheit returns the temperature in degrees Fahrenheit.
func (t Temperature) Fahrenheit() float64 { return t.celsius*9/5 + 32 }

// WindInfo holds a wind reading. Direction is meteorological degrees.
// Gust 0 means the provider reported none.
type WindInfo struct {
	Speed     float64 `json:"speed"`
	Direction float64 `json:"direction"`
	Gust      float64 `json:"gust,omitempty"`
}

// NewWindInfo builds a wind reading.
func NewWindInfo(speed, direction, gust float64) WindInfo {
	return WindInfo{Speed: speed, Direction: direction, Gust: gust}
}
