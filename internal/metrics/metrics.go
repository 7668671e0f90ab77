// Package metrics exposes engine and stream counters in the Prometheus
// text format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orrery"

// Command results used as the "result" label.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected" // unknown id or command
	ResultLimited  = "limited"  // dropped by the per-client rate limiter
	ResultInvalid  = "invalid"  // undecodable payload
)

// Collector owns its own registry so several engines (and tests) never
// collide on the default one.
type Collector struct {
	registry *prometheus.Registry

	ticksTotal       prometheus.Counter
	tickDuration     prometheus.Histogram
	commandsTotal    *prometheus.CounterVec
	focusCompletions *prometheus.CounterVec
	streamClients    prometheus.Gauge
	framesSent       prometheus.Counter
}

// NewCollector creates and registers every metric.
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total simulation ticks",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent computing one tick",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Commands received, by type and result",
			},
			[]string{"type", "result"},
		),
		focusCompletions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "focus_completions_total",
				Help:      "Camera focus transitions that completed",
			},
			[]string{"body"},
		),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_clients",
			Help:      "Connected WebSocket clients",
		}),
		framesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_broadcast_total",
			Help:      "Frames broadcast to stream clients",
		}),
	}

	m.registry.MustRegister(
		m.ticksTotal,
		m.tickDuration,
		m.commandsTotal,
		m.focusCompletions,
		m.streamClients,
		m.framesSent,
		collectors.NewGoCollector(),
	)
	return m
}

// RecordTick counts one tick and its compute time.
func (m *Collector) RecordTick(d time.Duration) {
	if m == nil {
		return
	}
	m.ticksTotal.Inc()
	m.tickDuration.Observe(d.Seconds())
}

// RecordCommand counts a command by wire type and result.
func (m *Collector) RecordCommand(kind, result string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(kind, result).Inc()
}

// RecordFocusComplete counts a finished focus transition.
func (m *Collector) RecordFocusComplete(body string) {
	if m == nil {
		return
	}
	m.focusCompletions.WithLabelValues(body).Inc()
}

// ClientConnected and ClientDisconnected track the live client gauge.
func (m *Collector) ClientConnected() {
	if m == nil {
		return
	}
	m.streamClients.Inc()
}

func (m *Collector) ClientDisconnected() {
	if m == nil {
		return
	}
	m.streamClients.Dec()
}

// RecordBroadcast counts one frame fan-out.
func (m *Collector) RecordBroadcast() {
	if m == nil {
		return
	}
	m.framesSent.Inc()
}

// Registry returns the collector's registry.
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewServer returns an HTTP server exposing /metrics on addr.
func (m *Collector) NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
