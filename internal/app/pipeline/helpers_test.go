package pipeline

import (
	"errors"
	"sync"
	"time"

	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// nopObs satisfies ports.Observability and remembers counter totals so
// tests can assert on them without Prometheus.
type nopObs struct {
	mu       sync.Mutex
	counters map[string]float64
}

func newNopObs() *nopObs {
	return &nopObs{counters: map[string]float64{}}
}

func (o *nopObs) LogInfo(string, ...ports.Field)         {}
func (o *nopObs) LogError(string, error, ...ports.Field) {}
func (o *nopObs) SetGauge(string, float64)               {}
func (o *nopObs) ObserveLatency(string, float64)         {}

func (o *nopObs) IncCounter(name string, v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.counters[name] += v
}

func (o *nopObs) counter(name string) float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counters[name]
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// seqRand replays a fixed sequence of draws, wrapping around at the end.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

// capturePublisher records every publish it sees.
type capturePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
	err      error
}

func (p *capturePublisher) Publish(topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func (p *capturePublisher) Name() string { return "capture" }

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

var errStoreDown = errors.New("store down")

// captureStore records flushed windows and can be told to fail.
type captureStore struct {
	windows [][]*domain.AnalysisResult
	err     error
}

func (s *captureStore) SaveRecords(records []*domain.AnalysisResult) error {
	if s.err != nil {
		return s.err
	}
	s.windows = append(s.windows, records)
	return nil
}

func (s *captureStore) Name() string { return "capture-store" }

func analysisResult(stress float64) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Predictions: domain.Predictions{CropStressRisk: stress},
	}
}
