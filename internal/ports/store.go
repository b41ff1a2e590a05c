package ports

import "github.com/verdantio/agricycle/internal/domain"

// CloudStore persists a flushed window of analysis records. The store is
// optional; without one the node runs report-only and the sync stage just
// counts windows.
type CloudStore interface {
	SaveRecords(records []*domain.AnalysisResult) error
	Name() string
}
