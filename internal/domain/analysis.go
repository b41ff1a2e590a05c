package domain

// Metrics are the environmental values derived from one cycle's readings.
type Metrics struct {
	DewPoint  float64 `json:"dew_point"`
	HeatIndex float64 `json:"heat_index"`
}

// WateringWindow says how urgently irrigation should run.
type WateringWindow string

const (
	WaterASAP     WateringWindow = "ASAP"
	WaterWithin6h WateringWindow = "6h"
)

// Predictions carry the edge model's risk output for one cycle.
//
// CropStressRisk is an independent uniform draw, a stand-in until a trained
// model replaces it. It is deliberately not derived from the readings.
type Predictions struct {
	CropStressRisk   float64        `json:"crop_stress_risk"`
	IrrigationNeeded bool           `json:"irrigation_needed"`
	OptimalWatering  WateringWindow `json:"optimal_watering"`
}

// AnalysisResult is the immutable output of one cycle's edge analysis,
// shared read-only by the decision engine, aggregator, and cloud sync.
type AnalysisResult struct {
	Raw         CycleBatch  `json:"raw_data"`
	Metrics     Metrics     `json:"metrics"`
	Predictions Predictions `json:"predictions"`
}

// Summary is the rolling digest the aggregator emits every few cycles.
type Summary struct {
	TotalCount   int       `json:"total_count"`
	RecentStress []float64 `json:"recent_stress"`
	Advisory     string    `json:"advisory"`
}

// SyncReport describes one cloud sync window.
type SyncReport struct {
	Uploaded int `json:"uploaded"`
}
