package mqttpub

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// Config captures the runtime details of the MQTT transport channel.
type Config struct {
	BrokerURL      string        `yaml:"broker_url"`
	ClientID       string        `yaml:"client_id"`
	Topic          string        `yaml:"topic"`
	QoS            byte          `yaml:"qos"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// DefaultTopic is the fixed channel the node's telemetry is addressed to.
const DefaultTopic = "iot/agriculture/data"

func (c *Config) ApplyDefaults() {
	if c.ClientID == "" {
		c.ClientID = "agricycle-" + uuid.NewString()[:8]
	}
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
}

func (c *Config) Validate() error {
	if c.BrokerURL == "" {
		return errors.New("broker_url is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("qos must be 0..2, got %d", c.QoS)
	}
	return nil
}

// Publisher delivers telemetry over MQTT. The paho client owns the network
// loop; Publish hands the payload off and resolves the delivery token on a
// background goroutine, so the cycle never waits on the broker.
type Publisher struct {
	cfg    Config
	log    *slog.Logger
	client mqtt.Client
}

// New builds a publisher from config. The connection is opened by Start.
func New(cfg Config, logger *slog.Logger) (*Publisher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mqtt config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{cfg: cfg, log: logger}, nil
}

func (p *Publisher) Name() string { return "mqtt" }

// Start connects to the broker and blocks up to ConnectTimeout.
func (p *Publisher) Start() error {
	opts := mqtt.NewClientOptions().
		AddBroker(p.cfg.BrokerURL).
		SetClientID(p.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectTimeout(p.cfg.ConnectTimeout)

	opts.OnConnect = func(mqtt.Client) {
		p.log.Info("mqtt connected", "broker", p.cfg.BrokerURL, "client_id", p.cfg.ClientID)
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		p.log.Error("mqtt connection lost", "error", err)
	}

	p.client = mqtt.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(p.cfg.ConnectTimeout) {
		return fmt.Errorf("mqtt connect to %s: timeout after %s", p.cfg.BrokerURL, p.cfg.ConnectTimeout)
	}
	return token.Error()
}

// Publish fires the payload at the broker and returns without waiting for
// delivery. Failed deliveries are logged by the token watcher.
func (p *Publisher) Publish(topic string, payload []byte) error {
	if p.client == nil {
		return errors.New("mqtt publisher not started")
	}

	token := p.client.Publish(topic, p.cfg.QoS, false, payload)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			p.log.Error("mqtt publish failed", "topic", topic, "error", err)
		}
	}()
	return nil
}

// Stop disconnects from the broker, allowing in-flight work to flush.
func (p *Publisher) Stop() error {
	if p.client == nil {
		return nil
	}
	p.client.Disconnect(250)
	return nil
}
