package agricycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verdantio/agricycle/internal/adapters/mqttpub"
	"github.com/verdantio/agricycle/internal/adapters/observability"
	"github.com/verdantio/agricycle/internal/adapters/sink"
	"github.com/verdantio/agricycle/internal/adapters/store"
	"github.com/verdantio/agricycle/internal/app/pipeline"
	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// NodeRuntimeOption customizes the dependencies used by NodeRuntime.
type NodeRuntimeOption func(*runtimeOverrides)

type runtimeOverrides struct {
	publisher     ports.Publisher
	cloud         ports.CloudStore
	observability ports.Observability
	clock         ports.Clock
	rand          ports.Rand
}

// WithPublisher injects a custom publish capability (a different broker,
// a test capture, an async wrapper, etc.).
func WithPublisher(p Publisher) NodeRuntimeOption {
	return func(o *runtimeOverrides) {
		o.publisher = p
	}
}

// WithCloudStore injects a custom durable store for flushed sync windows.
func WithCloudStore(s CloudStore) NodeRuntimeOption {
	return func(o *runtimeOverrides) {
		o.cloud = s
	}
}

// WithObservability plugs in a custom logging/metrics backend.
func WithObservability(obs Observability) NodeRuntimeOption {
	return func(o *runtimeOverrides) {
		o.observability = obs
	}
}

// WithClock overrides the wall clock, mostly for tests and simulations.
func WithClock(c Clock) NodeRuntimeOption {
	return func(o *runtimeOverrides) {
		o.clock = c
	}
}

// WithRand overrides the randomness source for readings and predictions.
func WithRand(r Rand) NodeRuntimeOption {
	return func(o *runtimeOverrides) {
		o.rand = r
	}
}

// NodeRuntime wires the acquisition → transport → analysis → decision →
// aggregation → sync cycle and exposes lifecycle hooks for embedding the
// node inside any Go service.
type NodeRuntime struct {
	cfg       *Config
	obs       ports.Observability
	publisher ports.Publisher
	mqttPub   *mqttpub.Publisher
	cloud     ports.CloudStore
	db        *sql.DB

	actuators *domain.ActuatorState
	history   *store.AnalysisLog
	pending   *store.AnalysisLog
	driver    *pipeline.Driver

	metricsSrv   *http.Server
	gaugeStopCh  chan struct{}
	driverCancel context.CancelFunc
	driverDoneCh chan struct{}
}

// NewNodeRuntime bootstraps the default adapters (MQTT publisher, slog +
// Prometheus observability, optional Postgres cloud store). Options can
// override any dependency.
func NewNodeRuntime(cfg *Config, opts ...NodeRuntimeOption) (*NodeRuntime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var overrides runtimeOverrides
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	obs := overrides.observability
	if obs == nil {
		obs = observability.New(slog.Default().With("node", cfg.Node.ID))
	}

	var (
		pub     = overrides.publisher
		mqttPub *mqttpub.Publisher
		err     error
	)
	if pub == nil {
		mqttPub, err = mqttpub.New(cfg.MQTT, slog.Default().With("node", cfg.Node.ID))
		if err != nil {
			return nil, err
		}
		pub = mqttPub
	}

	var (
		db    *sql.DB
		cloud = overrides.cloud
	)
	if cloud == nil && cfg.Cloud.ConnString != "" {
		db, err = sql.Open("postgres", cfg.Cloud.ConnString)
		if err != nil {
			return nil, err
		}
		cloud = sink.NewPostgresStore(db, cfg.Cloud.Table)
	}

	actuators := domain.NewActuatorState()
	history := store.NewAnalysisLog()
	pending := store.NewAnalysisLog()

	reader := pipeline.NewSensorReader(domain.DefaultCatalog(), overrides.clock, overrides.rand)
	transport := pipeline.NewTransport(pub, cfg.MQTT.Topic, obs)
	analyzer := pipeline.NewAnalyzer(overrides.rand)
	engine := pipeline.NewEngine(obs)
	aggregator := pipeline.NewAggregator(history, cfg.Pipeline.SummaryEvery, obs)
	cloudSync := pipeline.NewCloudSync(pending, cfg.Pipeline.CloudSyncInterval, cloud, obs)

	driver := pipeline.NewDriver(reader, transport, analyzer, engine, aggregator,
		cloudSync, actuators, cfg.Pipeline.CycleInterval, obs)

	return &NodeRuntime{
		cfg:       cfg,
		obs:       obs,
		publisher: pub,
		mqttPub:   mqttPub,
		cloud:     cloud,
		db:        db,
		actuators: actuators,
		history:   history,
		pending:   pending,
		driver:    driver,
	}, nil
}

// Start connects the transport, launches the cycle driver and the
// observability stack, and returns immediately. Call Run to block on a
// context instead.
func (n *NodeRuntime) Start() error {
	if n == nil {
		return fmt.Errorf("node runtime is nil")
	}

	if n.mqttPub != nil {
		if err := n.mqttPub.Start(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.driverCancel = cancel
	n.driverDoneCh = make(chan struct{})
	go func() {
		_ = n.driver.Run(ctx)
		close(n.driverDoneCh)
	}()

	n.startMetrics()
	return nil
}

// Run starts the runtime and blocks until the provided context is
// cancelled, then attempts a graceful shutdown.
func (n *NodeRuntime) Run(ctx context.Context) error {
	if err := n.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return n.Shutdown(shutdownCtx)
}

// Shutdown stops the driver, metrics server, transport, and DB connection.
// The driver finishes its in-flight cycle before the transport closes.
func (n *NodeRuntime) Shutdown(ctx context.Context) error {
	var errs []error

	if n.driverCancel != nil {
		n.driverCancel()
		select {
		case <-n.driverDoneCh:
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
		}
	}

	if n.gaugeStopCh != nil {
		close(n.gaugeStopCh)
		n.gaugeStopCh = nil
	}

	if n.metricsSrv != nil {
		if err := n.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}

	if n.mqttPub != nil {
		if err := n.mqttPub.Stop(); err != nil {
			errs = append(errs, err)
		}
	}

	if n.db != nil {
		if err := n.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Actuators returns a snapshot of the actuator latches for reporting.
func (n *NodeRuntime) Actuators() map[ActuatorKind]bool {
	return n.actuators.Snapshot()
}

// ResetActuators clears every latch. This is the only way a latch clears;
// no rule ever switches an actuator off.
func (n *NodeRuntime) ResetActuators() {
	n.actuators.Reset()
	n.obs.LogInfo("actuators_reset")
}

// HistoryLen reports how many analysis results the aggregator holds.
func (n *NodeRuntime) HistoryLen() int { return n.history.Len() }

// PendingLen reports how many records sit in the cloud sync buffer.
func (n *NodeRuntime) PendingLen() int { return n.pending.Len() }

// State reports the cycle driver's lifecycle state.
func (n *NodeRuntime) State() pipeline.DriverState { return n.driver.State() }

func (n *NodeRuntime) startMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	n.metricsSrv = &http.Server{
		Addr:    n.cfg.Metrics.Addr,
		Handler: mux,
	}

	go func() {
		if err := n.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server exited", "error", err)
		}
	}()

	n.gaugeStopCh = make(chan struct{})
	go n.recordResourceGauges(n.gaugeStopCh, time.Second)
}

func (n *NodeRuntime) recordResourceGauges(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			n.obs.SetGauge("agricycle_history_length", float64(n.history.Len()))
			n.obs.SetGauge("agricycle_pending_records", float64(n.pending.Len()))
			n.obs.SetGauge("agricycle_actuators_engaged", float64(n.actuators.EngagedCount()))
		}
	}
}
