package observability

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/verdantio/agricycle/internal/ports"
)

// Obs implements ports.Observability on top of slog and Prometheus.
type Obs struct {
	log      *slog.Logger
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

// New registers the node's metrics with the default registerer and wraps
// the given logger. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Obs {
	if logger == nil {
		logger = slog.Default()
	}

	cycles := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agricycle_cycles_total",
		Help: "Completed acquisition cycles.",
	})
	publishFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agricycle_publish_failures_total",
		Help: "Telemetry publishes that failed; the cycle carries on regardless.",
	})
	publishedBytes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agricycle_published_bytes_total",
		Help: "Total serialized telemetry bytes handed to the publisher.",
	})
	analysisFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agricycle_analysis_failures_total",
		Help: "Cycles skipped because the batch was missing a required reading.",
	})
	summaries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agricycle_summaries_total",
		Help: "Rolling summaries emitted by the aggregator.",
	})
	cloudSyncs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agricycle_cloud_syncs_total",
		Help: "Sync reports emitted by the batch sync stage.",
	})
	storeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agricycle_cloud_store_failures_total",
		Help: "Best-effort cloud store writes that failed.",
	})
	historyLen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "agricycle_history_length",
		Help: "Entries in the aggregator's rolling history.",
	})
	pendingLen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "agricycle_pending_records",
		Help: "Entries in the cloud sync pending buffer.",
	})
	actuators := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "agricycle_actuators_engaged",
		Help: "Actuators currently latched on.",
	})
	cycleDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "agricycle_cycle_duration_seconds",
		Help:    "Wall time of one full acquisition-to-sync cycle.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	})

	prometheus.MustRegister(cycles, publishFailures, publishedBytes, analysisFailures,
		summaries, cloudSyncs, storeFailures, historyLen, pendingLen, actuators, cycleDuration)

	return &Obs{
		log: logger,
		counters: map[string]prometheus.Counter{
			"agricycle_cycles_total":               cycles,
			"agricycle_publish_failures_total":     publishFailures,
			"agricycle_published_bytes_total":      publishedBytes,
			"agricycle_analysis_failures_total":    analysisFailures,
			"agricycle_summaries_total":            summaries,
			"agricycle_cloud_syncs_total":          cloudSyncs,
			"agricycle_cloud_store_failures_total": storeFailures,
		},
		gauges: map[string]prometheus.Gauge{
			"agricycle_history_length":    historyLen,
			"agricycle_pending_records":   pendingLen,
			"agricycle_actuators_engaged": actuators,
		},
		histos: map[string]prometheus.Observer{
			"agricycle_cycle_duration_seconds": cycleDuration,
		},
	}
}

func (o *Obs) LogInfo(msg string, fields ...ports.Field) {
	o.log.Info(msg, attrs(fields)...)
}

func (o *Obs) LogError(msg string, err error, fields ...ports.Field) {
	args := attrs(fields)
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	o.log.Error(msg, args...)
}

func (o *Obs) IncCounter(name string, v float64) {
	if c, ok := o.counters[name]; ok {
		c.Add(v)
	}
}

func (o *Obs) SetGauge(name string, v float64) {
	if g, ok := o.gauges[name]; ok {
		g.Set(v)
	}
}

func (o *Obs) ObserveLatency(name string, seconds float64) {
	if h, ok := o.histos[name]; ok {
		h.Observe(seconds)
	}
}

func attrs(fields []ports.Field) []any {
	if len(fields) == 0 {
		return nil
	}
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

var _ ports.Observability = (*Obs)(nil)
