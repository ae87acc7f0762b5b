package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingest loop, the weather adapter, and the HTTP API.
type Metrics struct {
	RowsParsed  prometheus.Counter
	RowsSkipped prometheus.Counter
	FeedFetches *prometheus.CounterVec // labels: outcome={success,error}
	FeedCache   *prometheus.CounterVec // labels: result={hit,miss}

	RefreshDuration    prometheus.Histogram
	SnapshotsDiscarded prometheus.Counter
	SnapshotRecords    prometheus.Gauge
	ServiceReady       prometheus.Gauge

	// Weather adapter metrics.
	WeatherRequests    *prometheus.CounterVec // labels: outcome={success,error,rejected}
	WeatherCache       *prometheus.CounterVec // labels: result={hit,miss}
	WeatherAPIDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_analytics",
			Name:      "feed_rows_parsed_total",
			Help:      "Total feed rows normalized into visitor records.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_analytics",
			Name:      "feed_rows_skipped_total",
			Help:      "Total feed rows skipped for unparseable timestamps.",
		}),
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_analytics",
			Name:      "feed_fetches_total",
			Help:      "Feed fetch attempts by outcome.",
		}, []string{"outcome"}),
		FeedCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_analytics",
			Name:      "feed_cache_total",
			Help:      "Feed cache lookups by result.",
		}, []string{"result"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "venue_analytics",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete snapshot refresh cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SnapshotsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "venue_analytics",
			Name:      "snapshots_discarded_total",
			Help:      "Refresh results discarded because a newer refresh superseded them.",
		}),
		SnapshotRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "venue_analytics",
			Name:      "snapshot_records",
			Help:      "Number of visitor records in the visible snapshot.",
		}),
		ServiceReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "venue_analytics",
			Name:      "service_ready",
			Help:      "1 once a first snapshot has been installed, 0 before.",
		}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_analytics",
			Name:      "weather_requests_total",
			Help:      "Weather archive requests by outcome.",
		}, []string{"outcome"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_analytics",
			Name:      "weather_cache_total",
			Help:      "Per-day weather cache lookups by result.",
		}, []string{"result"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "venue_analytics",
			Name:      "weather_api_duration_seconds",
			Help:      "Weather archive request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	prometheus.MustRegister(
		m.RowsParsed,
		m.RowsSkipped,
		m.FeedFetches,
		m.FeedCache,
		m.RefreshDuration,
		m.SnapshotsDiscarded,
		m.SnapshotRecords,
		m.ServiceReady,
		m.WeatherRequests,
		m.WeatherCache,
		m.WeatherAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsParsed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "venue_analytics", Name: "feed_rows_parsed_total"}),
		RowsSkipped:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "venue_analytics", Name: "feed_rows_skipped_total"}),
		FeedFetches:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "venue_analytics", Name: "feed_fetches_total"}, []string{"outcome"}),
		FeedCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "venue_analytics", Name: "feed_cache_total"}, []string{"result"}),
		RefreshDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "venue_analytics", Name: "refresh_duration_seconds"}),
		SnapshotsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "venue_analytics", Name: "snapshots_discarded_total"}),
		SnapshotRecords:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "venue_analytics", Name: "snapshot_records"}),
		ServiceReady:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "venue_analytics", Name: "service_ready"}),
		WeatherRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "venue_analytics", Name: "weather_requests_total"}, []string{"outcome"}),
		WeatherCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "venue_analytics", Name: "weather_cache_total"}, []string{"result"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "venue_analytics", Name: "weather_api_duration_seconds"}),
	}
}
