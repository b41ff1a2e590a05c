package sink

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// PostgresStore persists flushed analysis windows. One row per analysis
// result, keyed by the cycle timestamp so replayed windows are idempotent.
type PostgresStore struct {
	db        *sql.DB
	tableName string
}

func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	return &PostgresStore{db: db, tableName: table}
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) SaveRecords(records []*domain.AnalysisResult) error {
	if len(records) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.tableName)
	b.WriteString(" (recorded_at, dew_point, heat_index, crop_stress_risk, irrigation_needed, optimal_watering, readings) VALUES ")

	args := make([]any, 0, len(records)*7)
	for i, r := range records {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			len(args)+1, len(args)+2, len(args)+3, len(args)+4, len(args)+5, len(args)+6, len(args)+7))

		readings, err := json.Marshal(r.Raw)
		if err != nil {
			return fmt.Errorf("marshal readings: %w", err)
		}

		args = append(args,
			recordedAt(r),
			r.Metrics.DewPoint,
			r.Metrics.HeatIndex,
			r.Predictions.CropStressRisk,
			r.Predictions.IrrigationNeeded,
			string(r.Predictions.OptimalWatering),
			readings,
		)
	}

	b.WriteString(" ON CONFLICT (recorded_at) DO NOTHING")

	_, err := s.db.Exec(b.String(), args...)
	return err
}

// recordedAt takes the cycle timestamp from the batch; readings share one.
func recordedAt(r *domain.AnalysisResult) time.Time {
	if len(r.Raw) > 0 {
		return r.Raw[0].Timestamp
	}
	return time.Time{}
}

var _ ports.CloudStore = (*PostgresStore)(nil)
