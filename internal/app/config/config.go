package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/verdantio/agricycle/internal/adapters/mqttpub"
	"github.com/verdantio/agricycle/internal/ports"
)

type Config struct {
	Node     NodeConfig     `yaml:"node"`
	Pipeline ports.Policy   `yaml:"pipeline"`
	MQTT     mqttpub.Config `yaml:"mqtt"`
	Cloud    CloudConfig    `yaml:"cloud"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type NodeConfig struct {
	ID string `yaml:"id"`
}

// CloudConfig points the sync stage at a durable store. An empty conn
// string keeps the node report-only.
type CloudConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Node.ID == "" {
		c.Node.ID = uuid.NewString()
	}
	if c.Pipeline.CycleInterval == 0 {
		c.Pipeline.CycleInterval = 5 * time.Second
	}
	if c.Pipeline.SummaryEvery == 0 {
		c.Pipeline.SummaryEvery = 5
	}
	if c.Pipeline.CloudSyncInterval == 0 {
		c.Pipeline.CloudSyncInterval = 5
	}
	if c.Cloud.Table == "" {
		c.Cloud.Table = "analysis_records"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9100"
	}

	c.MQTT.ApplyDefaults()
}

func (c *Config) Validate() error {
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt config: %w", err)
	}
	if c.Pipeline.CycleInterval <= 0 {
		return fmt.Errorf("pipeline.cycle_interval must be positive")
	}
	if c.Pipeline.SummaryEvery <= 0 {
		return fmt.Errorf("pipeline.summary_every must be positive")
	}
	if c.Pipeline.CloudSyncInterval <= 0 {
		return fmt.Errorf("pipeline.cloud_sync_interval must be positive")
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required")
	}
	return nil
}
