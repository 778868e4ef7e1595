// Package metrics exposes Prometheus collectors for database startup and HTTP traffic
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chybatronik/driftiAPI/internal/types"
)

const namespace = "driftiapi"

// Connect attempt outcomes
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// unmatchedRoute labels requests that no route pattern matched, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// Metrics owns a private registry and the service collectors
type Metrics struct {
	registry *prometheus.Registry

	connectAttempts *prometheus.CounterVec
	readyState      prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them with a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		connectAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "connect_attempts_total",
				Help:      "Database connection attempts made during startup.",
			},
			[]string{"result"},
		),
		readyState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "ready_state",
				Help:      "Database connection ready state (0 disconnected, 1 connected, 2 connecting, 3 disconnecting, 99 uninitialized).",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "route"},
		),
	}

	m.readyState.Set(float64(types.StateUninitialized))

	m.registry.MustRegister(
		m.connectAttempts,
		m.readyState,
		m.httpRequests,
		m.httpDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler returns an HTTP handler exposing the registered metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the private registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveConnectAttempt counts one startup connection attempt
func (m *Metrics) ObserveConnectAttempt(attempt int, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.connectAttempts.WithLabelValues(result).Inc()
}

// SetReadyState records the current database connection state
func (m *Metrics) SetReadyState(state types.ReadyState) {
	m.readyState.Set(float64(state))
}

// Instrument records request counts and latency by chi route pattern
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
