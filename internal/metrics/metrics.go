// Package metrics holds the Prometheus collectors of the service.
//
// Collectors are package-level and live on a dedicated Registry, which the
// HTTP server exposes on /metrics after RegisterDefault.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry of the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// GeocodeLookups counts external geocoder calls by outcome:
	// resolved, empty or error.
	GeocodeLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "geocode_lookups_total", Help: "External geocoder calls by outcome."},
		[]string{"outcome"},
	)
	// GeocodeCacheRequests counts geocode cache reads by result: hit or miss.
	GeocodeCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "geocode_cache_requests_total", Help: "Geocode cache reads by result."},
		[]string{"result"},
	)
	// GeocodeLookupDuration records external geocoder latency in seconds.
	GeocodeLookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geocode_lookup_duration_seconds",
			Help:    "External geocoder latency in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// AssignmentsByTier counts order assignments by the tier that chose the driver.
	AssignmentsByTier = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "assignments_total", Help: "Order assignments by matching tier."},
		[]string{"tier"},
	)
	// AssignmentRuns counts assignment runs by outcome: published, superseded or failed.
	AssignmentRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "assignment_runs_total", Help: "Assignment runs by outcome."},
		[]string{"outcome"},
	)
	// AssignmentRunDuration records the wall time of a run, geocoding included.
	AssignmentRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assignment_run_duration_seconds",
			Help:    "Assignment run duration in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)
)

// RegisterDefault registers every collector on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(GeocodeLookups)
		Registry.MustRegister(GeocodeCacheRequests)
		Registry.MustRegister(GeocodeLookupDuration)
		Registry.MustRegister(AssignmentsByTier)
		Registry.MustRegister(AssignmentRuns)
		Registry.MustRegister(AssignmentRunDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
