package pipeline

import (
	"github.com/verdantio/agricycle/internal/adapters/store"
	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// CloudSync accumulates analysis records and reports a durable sync every
// fixed number of records. The pending buffer is a cumulative log: a flush
// is a report event (plus a best-effort store write when a store is
// configured), never a drain.
type CloudSync struct {
	pending  *store.AnalysisLog
	interval int
	cloud    ports.CloudStore
	obs      ports.Observability
}

// NewCloudSync builds the stage. cloud may be nil for report-only nodes.
func NewCloudSync(pending *store.AnalysisLog, interval int, cloud ports.CloudStore, obs ports.Observability) *CloudSync {
	if interval <= 0 {
		interval = 5
	}
	return &CloudSync{pending: pending, interval: interval, cloud: cloud, obs: obs}
}

// Record appends unconditionally and emits a report each time the buffer
// length hits a multiple of the interval. A failed store write is logged
// and counted but the report is still emitted; the buffer is untouched
// either way.
func (c *CloudSync) Record(result *domain.AnalysisResult) *domain.SyncReport {
	n := c.pending.Append(result)
	if n%c.interval != 0 {
		return nil
	}

	if c.cloud != nil {
		window := c.pending.Last(c.interval)
		if err := c.cloud.SaveRecords(window); err != nil {
			c.obs.LogError("cloud_store_write_failed", err,
				ports.Field{Key: "store", Value: c.cloud.Name()},
				ports.Field{Key: "window", Value: len(window)})
			c.obs.IncCounter("agricycle_cloud_store_failures_total", 1)
		}
	}

	c.obs.IncCounter("agricycle_cloud_syncs_total", 1)
	return &domain.SyncReport{Uploaded: c.interval}
}

// PendingLen exposes the buffer size for gauges and shutdown reports.
func (c *CloudSync) PendingLen() int { return c.pending.Len() }
