// Package metrics exposes gameplay counters to Prometheus. A nil *Metrics
// is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for one process.
type Metrics struct {
	registry       *prometheus.Registry
	keyPresses     *prometheus.CounterVec
	completions    *prometheus.CounterVec
	loadFailures   prometheus.Counter
	recordFailures prometheus.Counter
	fetchLatency   prometheus.Histogram
	sessions       prometheus.Gauge
	requests       *prometheus.CounterVec
}

// New creates the collectors in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		keyPresses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turtle_key_presses_total",
				Help: "Gameplay key presses by verdict",
			},
			[]string{"verdict"},
		),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turtle_levels_completed_total",
				Help: "Level attempts finished",
			},
			[]string{"level"},
		),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turtle_level_load_failures_total",
			Help: "Level fetches that failed",
		}),
		recordFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turtle_progress_record_failures_total",
			Help: "Pass notifications the backend rejected or never received",
		}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turtle_level_fetch_seconds",
			Help:    "Latency of level data fetches",
			Buckets: prometheus.DefBuckets,
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "turtle_ssh_sessions",
			Help: "Open SSH play sessions",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turtle_devserver_requests_total",
				Help: "Development backend requests by route and status",
			},
			[]string{"route", "status"},
		),
	}
	m.registry.MustRegister(
		m.keyPresses,
		m.completions,
		m.loadFailures,
		m.recordFailures,
		m.fetchLatency,
		m.sessions,
		m.requests,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// KeyPress counts a gameplay key by verdict name.
func (m *Metrics) KeyPress(verdict string) {
	if m == nil {
		return
	}
	m.keyPresses.WithLabelValues(verdict).Inc()
}

// LevelCompleted counts a finished attempt.
func (m *Metrics) LevelCompleted(level string) {
	if m == nil {
		return
	}
	m.completions.WithLabelValues(level).Inc()
}

// LoadFailed counts a failed level fetch.
func (m *Metrics) LoadFailed() {
	if m == nil {
		return
	}
	m.loadFailures.Inc()
}

// RecordFailed counts a failed pass notification.
func (m *Metrics) RecordFailed() {
	if m == nil {
		return
	}
	m.recordFailures.Inc()
}

// ObserveFetch records the latency of a level fetch.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.fetchLatency.Observe(d.Seconds())
}

// SessionOpened and SessionClosed track live SSH sessions.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}

// Request counts a development backend request.
func (m *Metrics) Request(route, status string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, status).Inc()
}
