package store

import (
	"sync"

	"github.com/photoscout/photoscout/internal/domain"
)

// WeatherCache holds the latest weather aggregate per location. Forecasts are
// refreshed wholesale and never survive a restart, so they live in memory
// rather than SQLite. The lock guards the map; callers must not mutate a
// cached aggregate concurrently.
type WeatherCache struct {
	mu         sync.RWMutex
	byLocation map[int64]*domain.Weather
}

func NewWeatherCache() *WeatherCache {
	return &WeatherCache{byLocation: make(map[int64]*domain.Weather)}
}

// Get returns the cached weather for a location, or false when none is held.
func (c *WeatherCache) Get(locationID int64) (*domain.Weather, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.byLocation[locationID]
	return w, ok
}

// Put stores the weather aggregate under its location id, replacing any
// previous entry.
func (c *WeatherCache) Put(w *domain.Weather) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byLocation[w.LocationID()] = w
}

// Delete drops the cached weather for a location, typically after the
// location itself is deleted.
func (c *WeatherCache) Delete(locationID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byLocation, locationID)
}

// Len reports how many locations currently have cached weather.
func (c *WeatherCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byLocation)
}
