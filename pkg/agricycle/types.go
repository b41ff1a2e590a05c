package agricycle

import (
	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// SensorKind identifies one of the node's simulated sensors.
type SensorKind = domain.SensorKind

// Reading is a single timestamped sensor measurement.
type Reading = domain.Reading

// CycleBatch is one cycle's readings, one per sensor kind.
type CycleBatch = domain.CycleBatch

// AnalysisResult is the immutable output of one cycle's edge analysis.
type AnalysisResult = domain.AnalysisResult

// Summary is the aggregator's rolling digest.
type Summary = domain.Summary

// SyncReport describes one cloud sync window.
type SyncReport = domain.SyncReport

// ActuatorKind identifies one of the node's controllable devices.
type ActuatorKind = domain.ActuatorKind

// ActuatorState is the process-wide actuator latch map.
type ActuatorState = domain.ActuatorState

// Publisher is the injected publish capability telemetry is handed to.
type Publisher = ports.Publisher

// CloudStore persists flushed analysis windows.
type CloudStore = ports.CloudStore

// Observability emits structured logs and metrics for the pipeline.
type Observability = ports.Observability

// Field is a structured log field.
type Field = ports.Field

// Clock supplies cycle timestamps.
type Clock = ports.Clock

// Rand supplies uniform draws for readings and predictions.
type Rand = ports.Rand

// Policy fixes the cadence of the cycle pipeline.
type Policy = ports.Policy

// TransportError wraps a failed publish attempt.
type TransportError = ports.TransportError
