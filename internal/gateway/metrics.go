package gateway

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the gateway's Prometheus collectors. Each gateway owns
// its own registry so tests never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	sessionsOpen prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "easel",
			Name:      "tool_calls_total",
			Help:      "Tool calls dispatched, by tool and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "easel",
			Name:      "tool_call_duration_seconds",
			Help:      "Tool call latency, by tool.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		sessionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "easel",
			Name:      "sessions_open",
			Help:      "Currently open sessions.",
		}),
	}

	m.registry.MustRegister(m.toolCalls, m.toolDuration, m.sessionsOpen)
	return m
}

// ObserveDispatch is the dispatcher observer hook.
func (m *Metrics) ObserveDispatch(toolName, outcome string, elapsed time.Duration) {
	m.toolCalls.WithLabelValues(toolName, outcome).Inc()
	m.toolDuration.WithLabelValues(toolName).Observe(elapsed.Seconds())
}

// SetSessions records the open session count.
func (m *Metrics) SetSessions(n int) {
	m.sessionsOpen.Set(float64(n))
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
