package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// service.
type Metrics struct {
	// Domain event dispatch metrics.
	EventsPublished *prometheus.CounterVec // label: event_type
	PublishErrors   prometheus.Counter

	// Forecast refresh metrics.
	RefreshCycles    prometheus.Counter
	RefreshErrors    prometheus.Counter
	RefreshDuration  prometheus.Histogram
	LocationsTracked prometheus.Gauge

	// Weather provider metrics.
	ProviderRequests *prometheus.CounterVec // label: outcome={success,error}
	ProviderDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "photoscout",
			Name:      "events_published_total",
			Help:      "Domain events published, by event type.",
		}, []string{"event_type"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "photoscout",
			Name:      "publish_errors_total",
			Help:      "Failed domain event publish attempts.",
		}),
		RefreshCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "photoscout",
			Name:      "refresh_cycles_total",
			Help:      "Completed forecast refresh cycles.",
		}),
		RefreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "photoscout",
			Name:      "refresh_errors_total",
			Help:      "Per-location refresh failures.",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "photoscout",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete refresh cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LocationsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "photoscout",
			Name:      "locations_tracked",
			Help:      "Active locations covered by the last refresh cycle.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "photoscout",
			Name:      "provider_requests_total",
			Help:      "Weather provider requests by outcome.",
		}, []string{"outcome"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "photoscout",
			Name:      "provider_request_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	prometheus.MustRegister(
		m.EventsPublished,
		m.PublishErrors,
		m.RefreshCycles,
		m.RefreshErrors,
		m.RefreshDuration,
		m.LocationsTracked,
		m.ProviderRequests,
		m.ProviderDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		EventsPublished:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "photoscout", Name: "events_published_total"}, []string{"event_type"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "photoscout", Name: "publish_errors_total"}),
		RefreshCycles:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "photoscout", Name: "refresh_cycles_total"}),
		RefreshErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "photoscout", Name: "refresh_errors_total"}),
		RefreshDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "photoscout", Name: "refresh_duration_seconds"}),
		LocationsTracked: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "photoscout", Name: "locations_tracked"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "photoscout", Name: "provider_requests_total"}, []string{"outcome"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "photoscout", Name: "provider_request_duration_seconds"}),
	}
}
