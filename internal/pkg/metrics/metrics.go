// Package metrics holds the Prometheus registry and the collectors exported
// by the service.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// SolveRequests counts solver backend calls by backend and outcome.
	SolveRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "solver_requests_total", Help: "Solver backend calls by outcome."},
		[]string{"backend", "outcome"},
	)

	// SolveDuration records solver call durations in seconds. Async backends
	// include polling time, hence the wide buckets.
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "solver_request_duration_seconds",
			Help:    "Solver backend call duration in seconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"backend"},
	)

	// RoutesPlanned counts routes created by planning runs.
	RoutesPlanned = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "routes_planned_total", Help: "Routes created by planning runs."},
	)

	// StopsAssigned counts stops linked to routes by planning runs.
	StopsAssigned = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "stops_assigned_total", Help: "Stops linked to routes by planning runs."},
	)
)

// ObserveSolve records one solver backend call: outcome counter plus
// duration since start.
func ObserveSolve(backend string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	SolveRequests.WithLabelValues(backend, outcome).Inc()
	SolveDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
}

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry, along
// with the standard Go and process collectors. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SolveRequests)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(RoutesPlanned)
		Registry.MustRegister(StopsAssigned)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
