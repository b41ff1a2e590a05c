package pipeline

import (
	"testing"

	"github.com/verdantio/agricycle/internal/adapters/store"
)

func TestAggregatorEmitsOnCadenceOnly(t *testing.T) {
	obs := newNopObs()
	agg := NewAggregator(store.NewAnalysisLog(), 5, obs)

	for i := 1; i <= 17; i++ {
		sum := agg.Record(analysisResult(float64(i) / 100))
		onBoundary := i%5 == 0
		if onBoundary && sum == nil {
			t.Fatalf("expected summary at length %d", i)
		}
		if !onBoundary && sum != nil {
			t.Fatalf("unexpected summary at length %d", i)
		}
	}

	if agg.HistoryLen() != 17 {
		t.Fatalf("history must never be pruned, got %d", agg.HistoryLen())
	}
	if got := obs.counter("agricycle_summaries_total"); got != 3 {
		t.Fatalf("expected 3 summaries, got %f", got)
	}
}

func TestAggregatorSummaryContents(t *testing.T) {
	agg := NewAggregator(store.NewAnalysisLog(), 5, newNopObs())

	for i := 1; i <= 9; i++ {
		agg.Record(analysisResult(float64(i) / 10))
	}
	sum := agg.Record(analysisResult(1.0))

	if sum == nil {
		t.Fatalf("expected summary at length 10")
	}
	if sum.TotalCount != 10 {
		t.Fatalf("expected total count 10, got %d", sum.TotalCount)
	}
	if len(sum.RecentStress) != 3 {
		t.Fatalf("expected 3 recent stress values, got %d", len(sum.RecentStress))
	}
	want := []float64{0.8, 0.9, 1.0}
	for i := range want {
		if sum.RecentStress[i] != want[i] {
			t.Fatalf("recent stress %d: expected %f, got %f", i, want[i], sum.RecentStress[i])
		}
	}
	if sum.Advisory != Advisory {
		t.Fatalf("expected advisory %q, got %q", Advisory, sum.Advisory)
	}
}

func TestAggregatorDefaultsCadence(t *testing.T) {
	agg := NewAggregator(store.NewAnalysisLog(), 0, newNopObs())

	for i := 1; i <= 4; i++ {
		if sum := agg.Record(analysisResult(0.1)); sum != nil {
			t.Fatalf("unexpected summary at length %d", i)
		}
	}
	if sum := agg.Record(analysisResult(0.1)); sum == nil {
		t.Fatalf("expected default cadence of 5")
	}
}
