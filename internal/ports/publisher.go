package ports

import "fmt"

// Publisher is the injected publish capability the transport stage hands
// serialized telemetry to. Implementations must not block the caller on
// delivery; failures surface either as a synchronous error or through
// their own logging.
type Publisher interface {
	Publish(topic string, payload []byte) error
	Name() string
}

// TransportError wraps a failed publish attempt. Transport failures are
// logged and counted but never halt the cycle.
type TransportError struct {
	Topic string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: publish to %q failed: %v", e.Topic, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
