package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katakuxiko/askai/internal/model"
)

func TestObserveOutcome(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOutcome(model.OutcomeAnswered)
	m.ObserveOutcome(model.OutcomeAnswered)
	m.ObserveOutcome(model.OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.asks.WithLabelValues("answered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.asks.WithLabelValues("rejected")))
}

func TestObserveUpstream(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveUpstream(150 * time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "askai_upstream_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOutcome(model.OutcomeFailed)
		m.ObserveUpstream(time.Second)
	})
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
