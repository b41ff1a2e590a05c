package observability

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestObs(t *testing.T) *Obs {
	t.Helper()

	origReg := prometheus.DefaultRegisterer
	origGatherer := prometheus.DefaultGatherer
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = origReg
		prometheus.DefaultGatherer = origGatherer
	})

	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	return New(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestObsMetrics(t *testing.T) {
	obs := newTestObs(t)

	obs.IncCounter("agricycle_cycles_total", 3)
	if got := testutil.ToFloat64(obs.counters["agricycle_cycles_total"]); got != 3 {
		t.Fatalf("expected cycles counter 3, got %f", got)
	}

	obs.IncCounter("agricycle_publish_failures_total", 1)
	if got := testutil.ToFloat64(obs.counters["agricycle_publish_failures_total"]); got != 1 {
		t.Fatalf("expected publish failure counter 1, got %f", got)
	}

	obs.SetGauge("agricycle_history_length", 12)
	if got := testutil.ToFloat64(obs.gauges["agricycle_history_length"]); got != 12 {
		t.Fatalf("expected history gauge 12, got %f", got)
	}

	obs.ObserveLatency("agricycle_cycle_duration_seconds", 0.02)
	hCollector := obs.histos["agricycle_cycle_duration_seconds"].(prometheus.Collector)
	if samples := testutil.CollectAndCount(hCollector); samples != 1 {
		t.Fatalf("expected duration histogram to record 1 sample, got %d", samples)
	}
}

func TestObsUnknownNamesAreIgnored(t *testing.T) {
	obs := newTestObs(t)

	obs.IncCounter("no_such_counter", 1)
	obs.SetGauge("no_such_gauge", 1)
	obs.ObserveLatency("no_such_histogram", 1)
}

func TestObsLoggingDoesNotPanic(t *testing.T) {
	obs := newTestObs(t)

	obs.LogInfo("cycle_complete")
	obs.LogError("publish_failed", errors.New("broker unreachable"))
}
