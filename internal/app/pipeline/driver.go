package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// DriverState is the cycle driver's lifecycle state.
type DriverState string

const (
	StateRunning DriverState = "running"
	StateStopped DriverState = "stopped"
)

// Driver runs the telemetry-to-actuation cycle at a fixed interval until
// its context is cancelled. Exactly one cycle executes at a time, and
// cancellation is honored between ticks only, so an in-flight cycle always
// finishes and never leaves partial actuator or history mutations behind.
type Driver struct {
	reader     *SensorReader
	transport  *Transport
	analyzer   *Analyzer
	engine     *Engine
	aggregator *Aggregator
	cloudSync  *CloudSync
	actuators  *domain.ActuatorState
	interval   time.Duration
	obs        ports.Observability

	mu     sync.Mutex
	state  DriverState
	cycles int
}

func NewDriver(
	reader *SensorReader,
	transport *Transport,
	analyzer *Analyzer,
	engine *Engine,
	aggregator *Aggregator,
	cloudSync *CloudSync,
	actuators *domain.ActuatorState,
	interval time.Duration,
	obs ports.Observability,
) *Driver {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Driver{
		reader:     reader,
		transport:  transport,
		analyzer:   analyzer,
		engine:     engine,
		aggregator: aggregator,
		cloudSync:  cloudSync,
		actuators:  actuators,
		interval:   interval,
		obs:        obs,
		state:      StateStopped,
	}
}

// Run executes cycles until ctx is cancelled, then emits a shutdown report
// and returns nil. Cancellation is a normal terminal transition, not an
// error; Stopped is terminal with no resume.
func (d *Driver) Run(ctx context.Context) error {
	d.setState(StateRunning)
	d.obs.LogInfo("cycle_driver_started", ports.Field{Key: "interval", Value: d.interval.String()})

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		d.runCycle()

		select {
		case <-ctx.Done():
			return d.stop()
		default:
		}

		select {
		case <-ctx.Done():
			return d.stop()
		case <-ticker.C:
		}
	}
}

// State reports the current lifecycle state.
func (d *Driver) State() DriverState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Cycles reports how many cycles have completed, including skipped ones.
func (d *Driver) Cycles() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cycles
}

func (d *Driver) runCycle() {
	start := time.Now()

	batch := d.reader.ReadSensors()
	d.transport.Publish(batch)

	result, err := d.analyzer.Analyze(batch)
	if err != nil {
		// Skip decision, aggregation and sync: no stage may operate on
		// partial data, and pre-cycle state must survive untouched.
		d.obs.LogError("analysis_failed", err)
		d.obs.IncCounter("agricycle_analysis_failures_total", 1)
		d.finishCycle(start)
		return
	}

	d.engine.ApplyRules(result, d.actuators)

	if sum := d.aggregator.Record(result); sum != nil {
		d.obs.LogInfo("rolling_summary",
			ports.Field{Key: "total_count", Value: sum.TotalCount},
			ports.Field{Key: "recent_stress", Value: sum.RecentStress},
			ports.Field{Key: "advisory", Value: sum.Advisory})
	}

	if rep := d.cloudSync.Record(result); rep != nil {
		d.obs.LogInfo("cloud_sync",
			ports.Field{Key: "uploaded", Value: rep.Uploaded})
	}

	d.finishCycle(start)
}

func (d *Driver) finishCycle(start time.Time) {
	d.mu.Lock()
	d.cycles++
	d.mu.Unlock()
	d.obs.IncCounter("agricycle_cycles_total", 1)
	d.obs.ObserveLatency("agricycle_cycle_duration_seconds", time.Since(start).Seconds())
}

func (d *Driver) stop() error {
	d.setState(StateStopped)
	d.obs.LogInfo("cycle_driver_stopped",
		ports.Field{Key: "cycles", Value: d.Cycles()},
		ports.Field{Key: "history", Value: d.aggregator.HistoryLen()},
		ports.Field{Key: "pending", Value: d.cloudSync.PendingLen()},
		ports.Field{Key: "actuators_engaged", Value: d.actuators.EngagedCount()})
	return nil
}

func (d *Driver) setState(s DriverState) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}
