package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/verdantio/agricycle/internal/adapters/store"
	"github.com/verdantio/agricycle/internal/domain"
)

type driverFixture struct {
	driver    *Driver
	publisher *capturePublisher
	actuators *domain.ActuatorState
	history   *store.AnalysisLog
	pending   *store.AnalysisLog
	obs       *nopObs
}

func newDriverFixture(catalog domain.Catalog, risk float64, pubErr error) *driverFixture {
	obs := newNopObs()
	pub := &capturePublisher{err: pubErr}
	actuators := domain.NewActuatorState()
	history := store.NewAnalysisLog()
	pending := store.NewAnalysisLog()

	// Sensor values sit mid-range; the analyzer gets its own source so the
	// stress risk is exactly the requested value.
	reader := NewSensorReader(catalog, fixedClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}, &seqRand{vals: []float64{0.5}})
	transport := NewTransport(pub, "iot/agriculture/data", obs)
	analyzer := NewAnalyzer(&seqRand{vals: []float64{risk}})
	engine := NewEngine(obs)
	aggregator := NewAggregator(history, 5, obs)
	cloudSync := NewCloudSync(pending, 5, nil, obs)

	driver := NewDriver(reader, transport, analyzer, engine, aggregator, cloudSync,
		actuators, time.Millisecond, obs)

	return &driverFixture{
		driver:    driver,
		publisher: pub,
		actuators: actuators,
		history:   history,
		pending:   pending,
		obs:       obs,
	}
}

func TestDriverCycleRunsAllStages(t *testing.T) {
	f := newDriverFixture(domain.DefaultCatalog(), 0.9, nil)

	f.driver.runCycle()

	if f.publisher.count() != 1 {
		t.Fatalf("expected one publish, got %d", f.publisher.count())
	}
	if !f.actuators.Engaged(domain.Irrigation) {
		t.Fatalf("risk 0.9 should engage irrigation")
	}
	if f.history.Len() != 1 || f.pending.Len() != 1 {
		t.Fatalf("expected one entry in history and pending, got %d/%d", f.history.Len(), f.pending.Len())
	}
	if f.driver.Cycles() != 1 {
		t.Fatalf("expected 1 cycle, got %d", f.driver.Cycles())
	}
}

func TestDriverTransportFailureDoesNotAffectDownstream(t *testing.T) {
	f := newDriverFixture(domain.DefaultCatalog(), 0.9, context.DeadlineExceeded)

	f.driver.runCycle()

	if f.obs.counter("agricycle_publish_failures_total") != 1 {
		t.Fatalf("expected a counted publish failure")
	}
	if !f.actuators.Engaged(domain.Irrigation) {
		t.Fatalf("publish failure must not block the decision stage")
	}
	if f.history.Len() != 1 || f.pending.Len() != 1 {
		t.Fatalf("publish failure must not block aggregation or sync")
	}
}

func TestDriverAnalysisFailureLeavesStateUntouched(t *testing.T) {
	// A catalog without a temperature sensor yields batches the analyzer
	// must reject.
	catalog := domain.DefaultCatalog()
	delete(catalog, domain.Temperature)

	f := newDriverFixture(catalog, 0.9, nil)
	f.driver.runCycle()

	if f.obs.counter("agricycle_analysis_failures_total") != 1 {
		t.Fatalf("expected a counted analysis failure")
	}
	if f.publisher.count() != 1 {
		t.Fatalf("transport runs before analysis and should have published")
	}
	if f.actuators.EngagedCount() != 0 {
		t.Fatalf("actuators must stay untouched on analysis failure")
	}
	if f.history.Len() != 0 || f.pending.Len() != 0 {
		t.Fatalf("history and pending must stay untouched on analysis failure")
	}
	if f.driver.Cycles() != 1 {
		t.Fatalf("a skipped cycle still counts as a cycle")
	}
}

func TestDriverRunStopsOnCancel(t *testing.T) {
	f := newDriverFixture(domain.DefaultCatalog(), 0.5, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.driver.Run(ctx) }()

	// Let at least one cycle complete, then cancel.
	deadline := time.After(2 * time.Second)
	for f.driver.Cycles() == 0 {
		select {
		case <-deadline:
			t.Fatalf("driver never completed a cycle")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancellation is not an error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("driver did not stop after cancellation")
	}

	if f.driver.State() != StateStopped {
		t.Fatalf("expected state stopped, got %s", f.driver.State())
	}
}

func TestDriverRunsFirstCycleImmediately(t *testing.T) {
	f := newDriverFixture(domain.DefaultCatalog(), 0.5, nil)
	f.driver.interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.driver.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for f.driver.Cycles() == 0 {
		select {
		case <-deadline:
			t.Fatalf("first cycle should run without waiting for the interval")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()
	<-done
}
