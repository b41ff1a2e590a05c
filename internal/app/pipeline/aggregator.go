package pipeline

import (
	"github.com/verdantio/agricycle/internal/adapters/store"
	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// Advisory is the static recommendation attached to every summary.
const Advisory = "Check irrigation valves"

const recentWindow = 3

// Aggregator appends every analysis result to the rolling history and
// emits a summary each time the history length hits a multiple of its
// cadence. The history is never capped or pruned.
type Aggregator struct {
	history *store.AnalysisLog
	every   int
	obs     ports.Observability
}

func NewAggregator(history *store.AnalysisLog, every int, obs ports.Observability) *Aggregator {
	if every <= 0 {
		every = 5
	}
	return &Aggregator{history: history, every: every, obs: obs}
}

// Record appends unconditionally and returns a summary on cadence
// boundaries, nil otherwise.
func (a *Aggregator) Record(result *domain.AnalysisResult) *domain.Summary {
	n := a.history.Append(result)
	if n%a.every != 0 {
		return nil
	}

	recent := a.history.Last(recentWindow)
	stress := make([]float64, 0, len(recent))
	for _, r := range recent {
		stress = append(stress, r.Predictions.CropStressRisk)
	}

	a.obs.IncCounter("agricycle_summaries_total", 1)
	return &domain.Summary{
		TotalCount:   n,
		RecentStress: stress,
		Advisory:     Advisory,
	}
}

// HistoryLen exposes the history size for gauges and shutdown reports.
func (a *Aggregator) HistoryLen() int { return a.history.Len() }
