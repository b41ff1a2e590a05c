package ports

import "time"

// Clock supplies the shared timestamp each cycle's readings are stamped with.
type Clock interface {
	Now() time.Time
}

// Rand supplies uniform draws in [0,1) for the simulated sensor values and
// the stress-risk prediction.
type Rand interface {
	Float64() float64
}
