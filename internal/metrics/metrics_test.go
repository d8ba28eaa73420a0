package metrics

import (
	"testing"

	"tosipeli/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSpin(model.OutcomeWin)
	m.ObserveSpin(model.OutcomeTip)
	m.ObserveSpin(model.OutcomeTip)
	m.ObserveDecision(model.GateExhausted)
	m.ObserveRegistration("ok")
	m.SetWindowWinRate(0.125)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.spins.WithLabelValues("win")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.spins.WithLabelValues("tip")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues(string(model.GateExhausted))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues("ok")))
	assert.Equal(t, 0.125, testutil.ToFloat64(m.winRate))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSpin(model.OutcomeWin)
		m.ObserveDecision(model.GatePermitted)
		m.ObserveRegistration("ok")
		m.ObserveLogin("ok")
		m.SetWindowWinRate(1)
	})
}
