package agricycle

import (
	"github.com/verdantio/agricycle/internal/adapters/mqttpub"
	"github.com/verdantio/agricycle/internal/app/config"
)

// Config re-exports the root configuration struct so embedders can
// construct or modify it programmatically.
type Config = config.Config

type (
	// NodeConfig names the node.
	NodeConfig = config.NodeConfig
	// MQTTConfig holds broker connection details and the telemetry topic.
	MQTTConfig = mqttpub.Config
	// CloudConfig configures the optional durable store.
	CloudConfig = config.CloudConfig
	// MetricsConfig configures the metrics HTTP server.
	MetricsConfig = config.MetricsConfig
)

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}
