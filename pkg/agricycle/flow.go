package agricycle

import (
	"context"
	"fmt"
)

// Flow is a convenience builder that lets callers say Conf → Collect →
// Deliver without touching the underlying wiring.
type Flow struct {
	cfg  *Config
	opts []NodeRuntimeOption
}

// FlowOption mutates the Flow after configuration is loaded.
type FlowOption func(*Flow)

// CollectOption configures the sensing side of the pipeline.
type CollectOption func(*Flow)

// DeliverOption configures the transport/reporting side of the pipeline.
type DeliverOption func(*Flow)

// Conf loads YAML from disk, applies FlowOption values, and returns a
// Flow builder.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return ConfFromConfig(cfg, opts...)
}

// ConfFromConfig bootstraps a Flow from an in-memory Config.
func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	f := &Flow{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// Config returns the underlying configuration so callers can tweak it
// before building a runtime.
func (f *Flow) Config() *Config {
	if f == nil {
		return nil
	}
	return f.cfg
}

// Collect records sensing-side overrides (clock, randomness, observability).
func (f *Flow) Collect(opts ...CollectOption) *Flow {
	if f == nil {
		return nil
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Deliver records transport-side overrides and builds a NodeRuntime ready
// to run.
func (f *Flow) Deliver(opts ...DeliverOption) (*NodeRuntime, error) {
	if f == nil {
		return nil, fmt.Errorf("flow is nil")
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return NewNodeRuntime(f.cfg, f.opts...)
}

// Run is a shortcut for Deliver + runtime.Run.
func (f *Flow) Run(ctx context.Context, opts ...DeliverOption) error {
	rt, err := f.Deliver(opts...)
	if err != nil {
		return err
	}
	return rt.Run(ctx)
}

// WithFlowOptions appends NodeRuntimeOption values during Conf.
func WithFlowOptions(opts ...NodeRuntimeOption) FlowOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(opts...)
		}
	}
}

// CollectClock overrides the wall clock used to stamp readings.
func CollectClock(c Clock) CollectOption {
	return func(f *Flow) {
		if f != nil && c != nil {
			f.appendOptions(WithClock(c))
		}
	}
}

// CollectRand overrides the randomness source for readings and predictions.
func CollectRand(r Rand) CollectOption {
	return func(f *Flow) {
		if f != nil && r != nil {
			f.appendOptions(WithRand(r))
		}
	}
}

// CollectObservability overrides the default slog + Prometheus stack.
func CollectObservability(obs Observability) CollectOption {
	return func(f *Flow) {
		if f != nil && obs != nil {
			f.appendOptions(WithObservability(obs))
		}
	}
}

// DeliverPublisher injects a custom publish capability.
func DeliverPublisher(p Publisher) DeliverOption {
	return func(f *Flow) {
		if f != nil && p != nil {
			f.appendOptions(WithPublisher(p))
		}
	}
}

// DeliverCloudStore injects a custom durable store for sync windows.
func DeliverCloudStore(s CloudStore) DeliverOption {
	return func(f *Flow) {
		if f != nil && s != nil {
			f.appendOptions(WithCloudStore(s))
		}
	}
}

// DeliverObservability replaces the default observability backend.
func DeliverObservability(obs Observability) DeliverOption {
	return func(f *Flow) {
		if f != nil && obs != nil {
			f.appendOptions(WithObservability(obs))
		}
	}
}

// DeliverCallback installs a publisher built from a simple callback
// function.
func DeliverCallback(name string, fn PublishFunc) DeliverOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(WithPublisher(NewCallbackPublisher(name, fn)))
		}
	}
}

func (f *Flow) appendOptions(opts ...NodeRuntimeOption) {
	for _, opt := range opts {
		if opt != nil {
			f.opts = append(f.opts, opt)
		}
	}
}
