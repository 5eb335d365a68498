package metrics_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qroute/metrics"
)

func TestObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "test")

	m.ObserveRun("anneal", metrics.OutcomeFound, 20*time.Millisecond, 14, 7)
	m.ObserveRun("anneal", metrics.OutcomeFound, 10*time.Millisecond, 14, 9)
	m.ObserveRun("exhaustive", metrics.OutcomeError, time.Millisecond, 0, 0)

	require.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("anneal", metrics.OutcomeFound)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("exhaustive", metrics.OutcomeError)))
	require.Equal(t, 9.0, testutil.ToFloat64(m.BestEnergy.WithLabelValues("anneal")))
	require.Equal(t, 2, testutil.CollectAndCount(m.RunDuration))
	require.Equal(t, 1, testutil.CollectAndCount(m.Variables))
}

func TestObserveCandidateAndAccepted(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "")

	m.ObserveCandidate("sampler", "none")
	m.ObserveCandidate("sampler", "cycle")
	m.ObserveCandidate("sampler", "cycle")
	m.ObserveAccepted(40)
	m.ObserveAccepted(-3)

	require.Equal(t, 2.0, testutil.ToFloat64(m.CandidatesTotal.WithLabelValues("sampler", "cycle")))
	require.Equal(t, 40.0, testutil.ToFloat64(m.FlipsAccepted))

	n, err := testutil.GatherAndCount(reg, "qroute_candidates_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.ObserveRun("anneal", metrics.OutcomeFound, time.Second, 1, 1)
		m.ObserveCandidate("anneal", "none")
		m.ObserveAccepted(1)
	})
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg, "dup")
	require.Panics(t, func() { metrics.New(reg, "dup") })
}

func TestDump(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "dump")
	m.ObserveRun("anneal", metrics.OutcomeNotFound, time.Millisecond, 4, 60)

	var buf bytes.Buffer
	require.NoError(t, metrics.Dump(&buf, reg))
	require.Contains(t, buf.String(), `dump_runs_total{method="anneal",outcome="not_found"} 1`)
	require.Contains(t, buf.String(), "# TYPE dump_best_energy gauge")
}
