package ports

// Observability emits structured logs and metrics about cycle throughput,
// transport health, and actuator transitions.
type Observability interface {
	LogInfo(msg string, fields ...Field)
	LogError(msg string, err error, fields ...Field)

	IncCounter(name string, v float64)
	ObserveLatency(name string, seconds float64)

	SetGauge(name string, v float64)
}

// Field is a structured log field.
type Field struct {
	Key   string
	Value any
}
