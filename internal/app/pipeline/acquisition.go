package pipeline

import (
	"math"
	"math/rand"
	"time"

	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// SensorReader simulates the node's sensor bank: one reading per catalog
// kind per cycle, drawn uniformly within the kind's range.
type SensorReader struct {
	catalog domain.Catalog
	clock   ports.Clock
	rand    ports.Rand
}

func NewSensorReader(catalog domain.Catalog, clock ports.Clock, rnd ports.Rand) *SensorReader {
	if clock == nil {
		clock = SystemClock()
	}
	if rnd == nil {
		rnd = UniformRand()
	}
	return &SensorReader{catalog: catalog, clock: clock, rand: rnd}
}

// ReadSensors produces the cycle's batch. All readings share a single
// timestamp and values are rounded to one decimal place.
func (r *SensorReader) ReadSensors() domain.CycleBatch {
	now := r.clock.Now()
	kinds := r.catalog.Kinds()

	batch := make(domain.CycleBatch, 0, len(kinds))
	for _, kind := range kinds {
		rng := r.catalog[kind]
		value := round1(rng.Min + r.rand.Float64()*(rng.Max-rng.Min))
		batch = append(batch, domain.Reading{
			Kind:      kind,
			Value:     value,
			Unit:      rng.Unit,
			Timestamp: now,
		})
	}
	return batch
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() ports.Clock { return systemClock{} }

type uniformRand struct{}

func (uniformRand) Float64() float64 { return rand.Float64() }

// UniformRand returns the process-wide uniform randomness source.
func UniformRand() ports.Rand { return uniformRand{} }
