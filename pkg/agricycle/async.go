package agricycle

import (
	"context"
	"errors"
	"sync"

	"github.com/verdantio/agricycle/internal/ports"
)

// ErrPublishQueueFull indicates the async publisher's buffer rejected a
// payload. Consistent with the transport's best-effort contract, the
// payload is lost, not retried.
var ErrPublishQueueFull = errors.New("agricycle: publish queue full")

// AsyncPublisher decouples the cycle from a delivery path that may block:
// Publish enqueues and returns, and a background goroutine owned by the
// publisher delivers to the wrapped Publisher. It never touches pipeline
// state, so it is safe to run alongside the driver indefinitely.
type AsyncPublisher struct {
	next ports.Publisher
	obs  ports.Observability
	ch   chan PublishedMessage

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewAsyncPublisher wraps next with a bounded queue and starts the
// delivery loop. obs may be nil. queueLen defaults to 64.
func NewAsyncPublisher(next Publisher, queueLen int, obs Observability) *AsyncPublisher {
	if queueLen <= 0 {
		queueLen = 64
	}
	p := &AsyncPublisher{
		next:   next,
		obs:    obs,
		ch:     make(chan PublishedMessage, queueLen),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go p.runDelivery()
	return p
}

func (p *AsyncPublisher) Name() string { return "async(" + p.next.Name() + ")" }

// Publish enqueues without blocking. A full queue surfaces as an error to
// the transport stage, which logs it and moves on.
func (p *AsyncPublisher) Publish(topic string, payload []byte) error {
	select {
	case <-p.stopCh:
		return ErrChannelPublisherClosed
	default:
	}

	msg := PublishedMessage{Topic: topic, Payload: append([]byte(nil), payload...)}
	select {
	case p.ch <- msg:
		return nil
	default:
		return ErrPublishQueueFull
	}
}

// Close stops the delivery loop, respecting the provided context. Queued
// payloads that have not been delivered yet are dropped.
func (p *AsyncPublisher) Close(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})

	select {
	case <-p.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *AsyncPublisher) runDelivery() {
	defer close(p.doneCh)
	for {
		select {
		case <-p.stopCh:
			return
		case msg := <-p.ch:
			if err := p.next.Publish(msg.Topic, msg.Payload); err != nil {
				if p.obs != nil {
					p.obs.LogError("async_delivery_failed", err,
						ports.Field{Key: "publisher", Value: p.next.Name()},
						ports.Field{Key: "topic", Value: msg.Topic})
				}
			}
		}
	}
}

var _ ports.Publisher = (*AsyncPublisher)(nil)
