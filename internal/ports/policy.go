package ports

import "time"

// Policy fixes the cadence of the cycle pipeline.
type Policy struct {
	// CycleInterval is the fixed tick driving the acquisition cycle.
	CycleInterval time.Duration `yaml:"cycle_interval"`
	// SummaryEvery gates the aggregator's rolling summary: one summary
	// every SummaryEvery recorded cycles.
	SummaryEvery int `yaml:"summary_every"`
	// CloudSyncInterval gates sync reports: one report every
	// CloudSyncInterval pending records.
	CloudSyncInterval int `yaml:"cloud_sync_interval"`
}
