// Package metrics holds the Prometheus collectors recorded by routing runs.
//
// Collectors are registered on a caller-supplied Registerer, so tests and
// embedding programs never touch the global registry. A nil *Metrics is valid
// and records nothing.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "qroute"

// Run outcomes.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics is the collector set of one process.
type Metrics struct {
	RunsTotal       *prometheus.CounterVec
	RunDuration     *prometheus.HistogramVec
	Variables       prometheus.Histogram
	BestEnergy      *prometheus.GaugeVec
	CandidatesTotal *prometheus.CounterVec
	FlipsAccepted   prometheus.Counter
}

// New registers the collectors on reg under namespace (DefaultNamespace if empty).
// It panics if a collector with the same name is already registered on reg.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	f := promauto.With(reg)

	return &Metrics{
		RunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Routing runs by solver method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		RunDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall time of routing runs.",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30, 60},
			},
			[]string{"method"},
		),
		Variables: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "qubo_variables",
				Help:      "Binary variables per encoded problem.",
				Buckets:   prometheus.ExponentialBuckets(2, 2, 12),
			},
		),
		BestEnergy: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "best_energy",
				Help:      "Energy of the selected solution of the latest run.",
			},
			[]string{"method"},
		),
		CandidatesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "candidates_total",
				Help:      "Decoded candidates by validation verdict.",
			},
			[]string{"method", "verdict"},
		),
		FlipsAccepted: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "anneal_flips_accepted_total",
				Help:      "Metropolis flips accepted by simulated annealing.",
			},
		),
	}
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(method, outcome string, d time.Duration, vars int, energy float64) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(method, outcome).Inc()
	m.RunDuration.WithLabelValues(method).Observe(d.Seconds())
	if outcome == OutcomeError {
		return
	}
	m.Variables.Observe(float64(vars))
	m.BestEnergy.WithLabelValues(method).Set(energy)
}

// ObserveCandidate counts one decoded candidate.
func (m *Metrics) ObserveCandidate(method, verdict string) {
	if m == nil {
		return
	}
	m.CandidatesTotal.WithLabelValues(method, verdict).Inc()
}

// ObserveAccepted adds accepted annealing flips.
func (m *Metrics) ObserveAccepted(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.FlipsAccepted.Add(float64(n))
}

// Dump writes every family gathered from g in the Prometheus text format.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
