// Package metrics exposes prometheus collectors for the form session API and the database pool.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"depo/internal/domain/form"
)

const namespace = "depo"

// Outcome labels for submissions.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Forms counts dialog session lifecycle events.
// A nil *Forms is valid and records nothing.
type Forms struct {
	opened    *prometheus.CounterVec
	submitted *prometheus.CounterVec
	cancelled *prometheus.CounterVec
	expired   *prometheus.CounterVec
}

// NewForms registers the form collectors on reg. open reports the number of
// live sessions and backs the open-sessions gauge.
func NewForms(reg prometheus.Registerer, open func() int) *Forms {
	m := &Forms{
		opened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "sessions_opened_total",
			Help:      "Dialog sessions opened, by kind and mode.",
		}, []string{"kind", "mode"}),
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "submissions_total",
			Help:      "Dialog submissions, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		cancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "sessions_cancelled_total",
			Help:      "Dialog sessions cancelled by the user.",
		}, []string{"kind"}),
		expired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "sessions_expired_total",
			Help:      "Dialog sessions dismissed after the idle timeout.",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.opened, m.submitted, m.cancelled, m.expired)
	if open != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "forms",
			Name:      "sessions_open",
			Help:      "Dialog sessions currently registered.",
		}, func() float64 { return float64(open()) }))
	}
	return m
}

// Opened records a new session.
func (m *Forms) Opened(kind string, mode form.Mode) {
	if m == nil {
		return
	}
	m.opened.WithLabelValues(kind, mode.String()).Inc()
}

// Submitted records a submission with its outcome label.
func (m *Forms) Submitted(kind, outcome string) {
	if m == nil {
		return
	}
	m.submitted.WithLabelValues(kind, outcome).Inc()
}

// Cancelled records a user cancellation.
func (m *Forms) Cancelled(kind string) {
	if m == nil {
		return
	}
	m.cancelled.WithLabelValues(kind).Inc()
}

// Expired records an idle dismissal.
func (m *Forms) Expired(kind string) {
	if m == nil {
		return
	}
	m.expired.WithLabelValues(kind).Inc()
}
