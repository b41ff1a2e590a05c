package pipeline

import (
	"fmt"

	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// MissingReadingError reports a malformed cycle batch handed to the
// analyzer. It is fatal to that cycle's analysis only; downstream stages
// are skipped so no partial state is written.
type MissingReadingError struct {
	Kind domain.SensorKind
}

func (e *MissingReadingError) Error() string {
	return fmt.Sprintf("analysis: batch is missing a %s reading", e.Kind)
}

// requiredKinds must each appear exactly once in an analyzable batch.
// Soil moisture is required but consumed by no formula or rule yet.
var requiredKinds = []domain.SensorKind{
	domain.Temperature,
	domain.Humidity,
	domain.SoilMoisture,
	domain.Co2Level,
}

// Analyzer derives environmental metrics and a risk prediction from one
// cycle's readings. Pure apart from the single stress-risk draw.
type Analyzer struct {
	rand ports.Rand
}

func NewAnalyzer(rnd ports.Rand) *Analyzer {
	if rnd == nil {
		rnd = UniformRand()
	}
	return &Analyzer{rand: rnd}
}

func (a *Analyzer) Analyze(batch domain.CycleBatch) (*domain.AnalysisResult, error) {
	for _, kind := range requiredKinds {
		if _, ok := batch.Value(kind); !ok {
			return nil, &MissingReadingError{Kind: kind}
		}
	}

	temp, _ := batch.Value(domain.Temperature)
	humidity, _ := batch.Value(domain.Humidity)

	dewPoint := round1(temp - (100-humidity)/5)
	heatIndex := round1(temp + humidity*0.1)

	risk := a.rand.Float64()
	watering := domain.WaterWithin6h
	if risk > 0.7 {
		watering = domain.WaterASAP
	}

	return &domain.AnalysisResult{
		Raw:     batch,
		Metrics: domain.Metrics{DewPoint: dewPoint, HeatIndex: heatIndex},
		Predictions: domain.Predictions{
			CropStressRisk:   risk,
			IrrigationNeeded: risk > 0.7,
			OptimalWatering:  watering,
		},
	}, nil
}
