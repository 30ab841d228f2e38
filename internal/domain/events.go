package domain

import "time"

// Event is a record of an entity state change, buffered on the entity that
// produced it until a consumer drains and clears the buffer.
type Event interface {
	// Kind identifies the event type on the wire, e.g. "location.saved".
	Kind() string
	// OccurredAt is the UTC time the change happened.
	OccurredAt() time.Time
}

// LocationSaved is raised when a location is created or its details or
// coordinate change.
type LocationSaved struct {
	Location *Location
	At       time.Time
}

func (e LocationSaved) Kind() string          { return "location.saved" }
func (e LocationSaved) OccurredAt() time.Time { return e.At }

// PhotoAttached is raised when a photo is attached to a location. Removing a
// photo raises nothing.
type PhotoAttached struct {
	LocationID int64
	Path       string
	At         time.Time
}

func (e PhotoAttached) Kind() string          { return "location.photo_attached" }
func (e PhotoAttached) OccurredAt() time.Time { return e.At }

// LocationDeleted is raised when a location is soft-deleted. Restore raises
// nothing.
type LocationDeleted struct {
	LocationID int64
	At         time.Time
}

func (e LocationDeleted) Kind() string          { return "location.deleted" }
func (e LocationDeleted) OccurredAt() time.Time { return e.At }

// WeatherUpdated is raised when a weather aggregate's forecasts are replaced.
type WeatherUpdated struct {
	LocationID int64
	At         time.Time
}

func (e WeatherUpdated) Kind() string          { return "weather.updated" }
func (e WeatherUpdated) OccurredAt() time.Time { return e.At }
