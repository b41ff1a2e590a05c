package sink

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/verdantio/agricycle/internal/domain"
)

func TestPostgresStoreSaveRecords(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	store := NewPostgresStore(db, "analysis_records")
	ts := time.Now()

	records := []*domain.AnalysisResult{
		{
			Raw: domain.CycleBatch{
				{Kind: domain.Temperature, Value: 25.0, Unit: "°C", Timestamp: ts},
				{Kind: domain.Humidity, Value: 60.0, Unit: "%", Timestamp: ts},
			},
			Metrics: domain.Metrics{DewPoint: 17.0, HeatIndex: 31.0},
			Predictions: domain.Predictions{
				CropStressRisk:   0.42,
				IrrigationNeeded: false,
				OptimalWatering:  domain.WaterWithin6h,
			},
		},
	}

	expectedQuery := regexp.QuoteMeta("INSERT INTO analysis_records (recorded_at, dew_point, heat_index, crop_stress_risk, irrigation_needed, optimal_watering, readings) VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT (recorded_at) DO NOTHING")
	mock.ExpectExec(expectedQuery).
		WithArgs(ts, 17.0, 31.0, 0.42, false, "6h", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.SaveRecords(records); err != nil {
		t.Fatalf("save records: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreSaveRecordsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	store := NewPostgresStore(db, "analysis_records")
	if err := store.SaveRecords(nil); err != nil {
		t.Fatalf("expected nil error for empty window, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreName(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	store := NewPostgresStore(db, "analysis_records")
	if store.Name() != "postgres" {
		t.Fatalf("expected store name postgres, got %s", store.Name())
	}
}
