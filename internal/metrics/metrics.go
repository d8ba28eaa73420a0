package metrics

import (
	"tosipeli/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tosipeli"

// Metrics counters for the play gate and the registration proxy.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	spins         *prometheus.CounterVec
	decisions     *prometheus.CounterVec
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	winRate       prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		spins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spins_total",
			Help:      "Committed spins by outcome kind.",
		}, []string{"kind"}),
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Play gate decisions by state.",
		}, []string{"state"}),
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by result.",
		}, []string{"result"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		winRate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_win_rate",
			Help:      "Share of win outcomes in the recent spin window.",
		}),
	}
}

func (m *Metrics) ObserveSpin(kind model.OutcomeKind) {
	if m == nil {
		return
	}
	m.spins.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) ObserveDecision(state model.GateState) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(string(state)).Inc()
}

func (m *Metrics) ObserveRegistration(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) SetWindowWinRate(rate float64) {
	if m == nil {
		return
	}
	m.winRate.Set(rate)
}
