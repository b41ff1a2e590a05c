package store

import (
	"testing"

	"github.com/verdantio/agricycle/internal/domain"
)

func result(stress float64) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Predictions: domain.Predictions{CropStressRisk: stress},
	}
}

func TestAnalysisLogAppendReturnsLength(t *testing.T) {
	l := NewAnalysisLog()

	if n := l.Append(result(0.1)); n != 1 {
		t.Fatalf("expected length 1 after first append, got %d", n)
	}
	if n := l.Append(result(0.2)); n != 2 {
		t.Fatalf("expected length 2 after second append, got %d", n)
	}
	if l.Len() != 2 {
		t.Fatalf("expected Len 2, got %d", l.Len())
	}
}

func TestAnalysisLogLastOrderAndBounds(t *testing.T) {
	l := NewAnalysisLog()
	for i := 1; i <= 7; i++ {
		l.Append(result(float64(i) / 10))
	}

	last := l.Last(3)
	if len(last) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(last))
	}
	for i, want := range []float64{0.5, 0.6, 0.7} {
		if got := last[i].Predictions.CropStressRisk; got != want {
			t.Fatalf("entry %d: expected stress %f, got %f", i, want, got)
		}
	}

	if got := l.Last(100); len(got) != 7 {
		t.Fatalf("expected Last to clamp to log length, got %d", len(got))
	}
	if got := l.Last(0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}

	// Appending after Last must not show through the returned slice header.
	if l.Len() != 7 {
		t.Fatalf("expected log untouched by reads, got %d", l.Len())
	}
}
