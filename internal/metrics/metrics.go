// Package metrics exposes Prometheus counters for the publication pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for submissions_total.
const (
	OutcomeFullyCreated     = "fully_created"
	OutcomePartiallyCreated = "partially_created"
	OutcomeRejected         = "rejected"
	OutcomeFailed           = "failed"
)

// Metrics holds the pipeline counters.
type Metrics struct {
	Submissions  *prometheus.CounterVec
	AIMode       *prometheus.CounterVec
	Degradations *prometheus.CounterVec
}

// New creates and registers the pipeline metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdesk_submissions_total",
			Help: "Publication submissions by outcome",
		}, []string{"outcome"}),
		AIMode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdesk_ai_mode_total",
			Help: "AI rewrite mode decisions",
		}, []string{"mode"}),
		Degradations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdesk_lookup_degradations_total",
			Help: "Best-effort lookups that degraded to null",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.Submissions, m.AIMode, m.Degradations)
	return m
}

// NewNop creates metrics bound to a throwaway registry, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
