package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photoscout/photoscout/internal/dispatch"
	"github.com/photoscout/photoscout/internal/domain"
	"github.com/photoscout/photoscout/internal/observability"
)

type fakeLister struct {
	locations []*domain.Location
	err       error
}

func (f *fakeLister) ListActiveLocations(context.Context) ([]*domain.Location, error) {
	return f.locations, f.err
}

type fakeProvider struct {
	failFor map[int64]error
	fetched []int64
}

func (f *fakeProvider) FetchWeather(_ context.Context, locationID int64, coord domain.Coordinate) (*domain.Weather, error) {
	if err := f.failFor[locationID]; err != nil {
		return nil, err
	}
	f.fetched = append(f.fetched, locationID)

	w := domain.NewWeather(locationID, coord, "Europe/Tallinn", 10800)
	if err := w.UpdateForecasts([]domain.WeatherForecast{}); err != nil {
		return nil, err
	}
	return w, nil
}

type fakeSink struct {
	stored []*domain.Weather
}

func (f *fakeSink) Put(w *domain.Weather) { f.stored = append(f.stored, w) }

type fakeDispatcher struct {
	dispatched []dispatch.EventSource
	err        error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, src dispatch.EventSource) error {
	if f.err != nil {
		return f.err
	}
	f.dispatched = append(f.dispatched, src)
	src.ClearDomainEvents()
	return nil
}

func location(t *testing.T, id int64, title string) *domain.Location {
	t.Helper()
	loc, err := domain.NewLocation(title, "",
		domain.NewCoordinate(float64(id), float64(id)), domain.NewAddress("", ""))
	require.NoError(t, err)
	loc.SetID(id)
	loc.ClearDomainEvents()
	return loc
}

func newTestRefresher(lister *fakeLister, provider *fakeProvider, sink *fakeSink, d *fakeDispatcher) *Refresher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(lister, provider, sink, d, logger, observability.NewMetricsForTesting())
}

func TestRefreshAll(t *testing.T) {
	lister := &fakeLister{locations: []*domain.Location{
		location(t, 1, "Harbor"), location(t, 2, "Forest"),
	}}
	provider := &fakeProvider{}
	sink := &fakeSink{}
	d := &fakeDispatcher{}

	r := newTestRefresher(lister, provider, sink, d)
	require.Error(t, r.CheckReadiness(context.Background()), "not ready before the first cycle")

	require.NoError(t, r.RefreshAll(context.Background()))

	assert.Equal(t, []int64{1, 2}, provider.fetched)
	require.Len(t, sink.stored, 2)
	assert.Equal(t, int64(1), sink.stored[0].LocationID())
	assert.Len(t, d.dispatched, 2)
	assert.NoError(t, r.CheckReadiness(context.Background()))
}

func TestRefreshAllSkipsFailingLocation(t *testing.T) {
	lister := &fakeLister{locations: []*domain.Location{
		location(t, 1, "Harbor"), location(t, 2, "Forest"), location(t, 3, "Cliff"),
	}}
	provider := &fakeProvider{failFor: map[int64]error{2: errors.New("provider down")}}
	sink := &fakeSink{}
	d := &fakeDispatcher{}

	r := newTestRefresher(lister, provider, sink, d)
	require.NoError(t, r.RefreshAll(context.Background()), "one bad location does not fail the cycle")

	assert.Equal(t, []int64{1, 3}, provider.fetched)
	assert.Len(t, sink.stored, 2)
}

func TestRefreshAllListFailure(t *testing.T) {
	lister := &fakeLister{err: errors.New("database locked")}
	r := newTestRefresher(lister, &fakeProvider{}, &fakeSink{}, &fakeDispatcher{})

	require.Error(t, r.RefreshAll(context.Background()))
	assert.Error(t, r.CheckReadiness(context.Background()), "failed cycle does not mark ready")
}

func TestRefreshAllCachesBeforeDispatchFailure(t *testing.T) {
	lister := &fakeLister{locations: []*domain.Location{location(t, 1, "Harbor")}}
	sink := &fakeSink{}
	d := &fakeDispatcher{err: errors.New("broker down")}

	r := newTestRefresher(lister, &fakeProvider{}, sink, d)
	require.NoError(t, r.RefreshAll(context.Background()))

	// The fetch succeeded, so the cache holds fresh forecasts even though the
	// event publish failed; pending events survive for a later dispatch.
	require.Len(t, sink.stored, 1)
	assert.NotEmpty(t, sink.stored[0].DomainEvents())
}

func TestRefreshAllEmpty(t *testing.T) {
	r := newTestRefresher(&fakeLister{}, &fakeProvider{}, &fakeSink{}, &fakeDispatcher{})
	require.NoError(t, r.RefreshAll(context.Background()))
	assert.NoError(t, r.CheckReadiness(context.Background()), "an empty cycle still counts as a completed cycle")
}
