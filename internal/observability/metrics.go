package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GeocodeRequests counts geocoder lookups by outcome ("hit", "miss", "error").
	GeocodeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_geocode_requests_total",
		Help: "Total number of geocoder lookups by outcome",
	}, []string{"outcome"})

	// GeocodeLatency records geocoder lookup latency.
	GeocodeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waypost_geocode_latency_seconds",
		Help:    "Geocoder lookup latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// TransactionsTotal counts store transactions by operation and result
	// ("committed", "aborted").
	TransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_store_transactions_total",
		Help: "Total number of store transactions by operation and result",
	}, []string{"operation", "result"})

	// EventsPublished counts notifier events published by type.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypost_events_published_total",
		Help: "Total number of pub/sub events published by event type",
	}, []string{"event"})
)

// ObserveGeocode records the outcome and latency of a geocoder lookup.
func ObserveGeocode(outcome string, start time.Time) {
	GeocodeRequests.WithLabelValues(outcome).Inc()
	GeocodeLatency.Observe(time.Since(start).Seconds())
}
