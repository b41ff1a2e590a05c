package store

import (
	"sync"

	"github.com/verdantio/agricycle/internal/domain"
)

// AnalysisLog is an unbounded, append-only in-memory log of analysis
// results. It backs both the aggregator's history and the cloud sync's
// pending buffer: entries are never removed while the process lives.
// The pipeline is the single writer; the mutex covers read-side
// collaborators such as gauges and status reports.
type AnalysisLog struct {
	mu      sync.Mutex
	entries []*domain.AnalysisResult
}

func NewAnalysisLog() *AnalysisLog {
	return &AnalysisLog{}
}

// Append adds a result and returns the new length.
func (l *AnalysisLog) Append(r *domain.AnalysisResult) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, r)
	return len(l.entries)
}

func (l *AnalysisLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Last returns a copy of the most recent n entries, oldest first. It
// returns fewer when the log is shorter than n.
func (l *AnalysisLog) Last(n int) []*domain.AnalysisResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]*domain.AnalysisResult, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
