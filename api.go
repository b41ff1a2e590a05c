package agricycle

import (
	base "github.com/verdantio/agricycle/pkg/agricycle"
)

// Re-exported errors for convenience.
var (
	ErrPublishQueueFull       = base.ErrPublishQueueFull
	ErrChannelPublisherClosed = base.ErrChannelPublisherClosed
)

// Type aliases so consumers can import github.com/verdantio/agricycle directly.
type (
	Config            = base.Config
	NodeConfig        = base.NodeConfig
	MQTTConfig        = base.MQTTConfig
	CloudConfig       = base.CloudConfig
	MetricsConfig     = base.MetricsConfig
	Policy            = base.Policy
	Flow              = base.Flow
	FlowOption        = base.FlowOption
	CollectOption     = base.CollectOption
	DeliverOption     = base.DeliverOption
	NodeRuntime       = base.NodeRuntime
	NodeRuntimeOption = base.NodeRuntimeOption
	SensorKind        = base.SensorKind
	Reading           = base.Reading
	CycleBatch        = base.CycleBatch
	AnalysisResult    = base.AnalysisResult
	Summary           = base.Summary
	SyncReport        = base.SyncReport
	ActuatorKind      = base.ActuatorKind
	ActuatorState     = base.ActuatorState
	Publisher         = base.Publisher
	PublishFunc       = base.PublishFunc
	PublishedMessage  = base.PublishedMessage
	CloudStore        = base.CloudStore
	Observability     = base.Observability
	Field             = base.Field
	Clock             = base.Clock
	Rand              = base.Rand
	TransportError    = base.TransportError
	AsyncPublisher    = base.AsyncPublisher
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

// Flow builder helpers.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	return base.Conf(path, opts...)
}

func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	return base.ConfFromConfig(cfg, opts...)
}

func WithFlowOptions(opts ...NodeRuntimeOption) FlowOption {
	return base.WithFlowOptions(opts...)
}

func CollectClock(c Clock) CollectOption {
	return base.CollectClock(c)
}

func CollectRand(r Rand) CollectOption {
	return base.CollectRand(r)
}

func CollectObservability(obs Observability) CollectOption {
	return base.CollectObservability(obs)
}

func DeliverPublisher(p Publisher) DeliverOption {
	return base.DeliverPublisher(p)
}

func DeliverCloudStore(s CloudStore) DeliverOption {
	return base.DeliverCloudStore(s)
}

func DeliverObservability(obs Observability) DeliverOption {
	return base.DeliverObservability(obs)
}

func DeliverCallback(name string, fn PublishFunc) DeliverOption {
	return base.DeliverCallback(name, fn)
}

// Node runtime and options.
func NewNodeRuntime(cfg *Config, opts ...NodeRuntimeOption) (*NodeRuntime, error) {
	return base.NewNodeRuntime(cfg, opts...)
}

func WithPublisher(p Publisher) NodeRuntimeOption {
	return base.WithPublisher(p)
}

func WithCloudStore(s CloudStore) NodeRuntimeOption {
	return base.WithCloudStore(s)
}

func WithObservability(obs Observability) NodeRuntimeOption {
	return base.WithObservability(obs)
}

func WithClock(c Clock) NodeRuntimeOption {
	return base.WithClock(c)
}

func WithRand(r Rand) NodeRuntimeOption {
	return base.WithRand(r)
}

// Publisher adapters.
func NewCallbackPublisher(name string, fn PublishFunc) Publisher {
	return base.NewCallbackPublisher(name, fn)
}

func NewChannelPublisher(name string, buffer int) (Publisher, <-chan PublishedMessage, func()) {
	return base.NewChannelPublisher(name, buffer)
}

// Async publisher.
func NewAsyncPublisher(next Publisher, queueLen int, obs Observability) *AsyncPublisher {
	return base.NewAsyncPublisher(next, queueLen, obs)
}
