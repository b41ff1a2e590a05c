package pipeline

import (
	"encoding/json"

	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// PublishOutcome reports what the transport stage did with one batch.
type PublishOutcome struct {
	Bytes int
	Err   error
}

// Transport serializes a cycle's readings and hands them to the publish
// capability. Delivery is best-effort at-most-once: a failure is logged,
// counted, and recorded in the outcome, and the cycle carries on.
type Transport struct {
	pub   ports.Publisher
	topic string
	obs   ports.Observability
}

func NewTransport(pub ports.Publisher, topic string, obs ports.Observability) *Transport {
	return &Transport{pub: pub, topic: topic, obs: obs}
}

func (t *Transport) Publish(batch domain.CycleBatch) PublishOutcome {
	payload, err := json.Marshal(batch)
	if err != nil {
		terr := &ports.TransportError{Topic: t.topic, Err: err}
		t.obs.LogError("telemetry_encode_failed", terr)
		t.obs.IncCounter("agricycle_publish_failures_total", 1)
		return PublishOutcome{Err: terr}
	}

	if err := t.pub.Publish(t.topic, payload); err != nil {
		terr := &ports.TransportError{Topic: t.topic, Err: err}
		t.obs.LogError("telemetry_publish_failed", terr,
			ports.Field{Key: "publisher", Value: t.pub.Name()},
			ports.Field{Key: "bytes", Value: len(payload)})
		t.obs.IncCounter("agricycle_publish_failures_total", 1)
		return PublishOutcome{Bytes: len(payload), Err: terr}
	}

	t.obs.IncCounter("agricycle_published_bytes_total", float64(len(payload)))
	t.obs.LogInfo("telemetry_published",
		ports.Field{Key: "topic", Value: t.topic},
		ports.Field{Key: "bytes", Value: len(payload)})
	return PublishOutcome{Bytes: len(payload)}
}
