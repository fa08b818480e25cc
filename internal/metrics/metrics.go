// Package metrics holds the Prometheus collectors for the ask proxy.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katakuxiko/askai/internal/model"
)

const namespace = "askai"

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	asks     *prometheus.CounterVec
	upstream prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		asks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ask_requests_total",
			Help:      "Ask requests by outcome.",
		}, []string{"outcome"}),
		upstream: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of calls to the generative-language API.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
	reg.MustRegister(m.asks, m.upstream)
	return m
}

func (m *Metrics) ObserveOutcome(kind model.OutcomeKind) {
	if m == nil {
		return
	}
	m.asks.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) ObserveUpstream(d time.Duration) {
	if m == nil {
		return
	}
	m.upstream.Observe(d.Seconds())
}
