package agricycle

import (
	"errors"
	"fmt"
	"sync"
)

// ErrChannelPublisherClosed is returned when a channel publisher is used
// after being closed.
var ErrChannelPublisherClosed = errors.New("agricycle: channel publisher closed")

// PublishedMessage is one payload captured by the channel publisher.
type PublishedMessage struct {
	Topic   string
	Payload []byte
}

// PublishFunc is invoked with every payload the transport stage emits.
type PublishFunc func(topic string, payload []byte) error

// NewCallbackPublisher adapts a function into a full Publisher so callers
// can capture telemetry without defining structs or running a broker.
func NewCallbackPublisher(name string, fn PublishFunc) Publisher {
	if name == "" {
		name = "callback"
	}
	return &callbackPublisher{name: name, fn: fn}
}

// NewChannelPublisher exposes published payloads via a channel; it returns
// the publisher, the read-only channel, and a close function the caller
// should invoke during shutdown.
func NewChannelPublisher(name string, buffer int) (Publisher, <-chan PublishedMessage, func()) {
	if name == "" {
		name = "channel"
	}
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan PublishedMessage, buffer)
	p := &channelPublisher{
		name:   name,
		ch:     ch,
		closed: make(chan struct{}),
	}
	return p, ch, func() { p.close() }
}

type callbackPublisher struct {
	name string
	fn   PublishFunc
}

func (p *callbackPublisher) Publish(topic string, payload []byte) error {
	if p.fn == nil {
		return fmt.Errorf("callback publisher %q: nil handler", p.name)
	}
	return p.fn(topic, payload)
}

func (p *callbackPublisher) Name() string { return p.name }

type channelPublisher struct {
	name   string
	ch     chan PublishedMessage
	closed chan struct{}
	once   sync.Once
}

func (p *channelPublisher) Publish(topic string, payload []byte) error {
	select {
	case <-p.closed:
		return ErrChannelPublisherClosed
	default:
	}

	msg := PublishedMessage{Topic: topic, Payload: append([]byte(nil), payload...)}

	select {
	case <-p.closed:
		return ErrChannelPublisherClosed
	case p.ch <- msg:
		return nil
	}
}

func (p *channelPublisher) Name() string { return p.name }

func (p *channelPublisher) close() {
	p.once.Do(func() {
		close(p.closed)
		close(p.ch)
	})
}
