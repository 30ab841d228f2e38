// Package refresh runs the forecast refresh cycle: every active location gets
// fresh forecasts from the weather provider, the weather cache is replaced,
// and the resulting domain events are dispatched.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/photoscout/photoscout/internal/dispatch"
	"github.com/photoscout/photoscout/internal/domain"
	"github.com/photoscout/photoscout/internal/observability"
)

// LocationLister supplies the locations to refresh.
type LocationLister interface {
	ListActiveLocations(ctx context.Context) ([]*domain.Location, error)
}

// WeatherProvider fetches a populated weather aggregate for a coordinate.
type WeatherProvider interface {
	FetchWeather(ctx context.Context, locationID int64, coord domain.Coordinate) (*domain.Weather, error)
}

// WeatherSink receives refreshed aggregates.
type WeatherSink interface {
	Put(w *domain.Weather)
}

// EventDispatcher drains and publishes an entity's pending domain events.
type EventDispatcher interface {
	Dispatch(ctx context.Context, src dispatch.EventSource) error
}

// Refresher orchestrates one refresh cycle at a time.
type Refresher struct {
	locations  LocationLister
	provider   WeatherProvider
	sink       WeatherSink
	dispatcher EventDispatcher
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
}

// New creates a Refresher.
func New(locations LocationLister, provider WeatherProvider, sink WeatherSink, dispatcher EventDispatcher, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{
		locations:  locations,
		provider:   provider,
		sink:       sink,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once at least one refresh cycle has completed,
// or an error describing why the service is not yet ready.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no refresh cycle has completed yet")
	}
	return nil
}

// RefreshAll runs one cycle over all active locations. A failing location is
// logged and skipped so one bad coordinate cannot starve the rest; the
// returned error reports only a wholesale failure to list locations.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	start := time.Now()

	locations, err := r.locations.ListActiveLocations(ctx)
	if err != nil {
		r.metrics.RefreshErrors.Inc()
		return err
	}

	r.metrics.LocationsTracked.Set(float64(len(locations)))

	refreshed := 0
	for _, loc := range locations {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := r.refreshLocation(ctx, loc); err != nil {
			r.logger.Warn("location refresh failed, skipping",
				"location_id", loc.ID(), "title", loc.Title(), "error", err)
			r.metrics.RefreshErrors.Inc()
			continue
		}
		refreshed++
	}

	r.metrics.RefreshCycles.Inc()
	r.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	r.ready.Store(true)

	r.logger.Info("refresh cycle complete",
		"locations", len(locations), "refreshed", refreshed,
		"duration", time.Since(start))
	return nil
}

func (r *Refresher) refreshLocation(ctx context.Context, loc *domain.Location) error {
	weather, err := r.provider.FetchWeather(ctx, loc.ID(), loc.Coordinate())
	if err != nil {
		return err
	}

	// Cache before dispatch: a failed publish retries on the next cycle, but
	// readers should see the fresh forecasts immediately.
	r.sink.Put(weather)

	return r.dispatcher.Dispatch(ctx, weather)
}
