package pipeline

import (
	"github.com/verdantio/agricycle/internal/domain"
	"github.com/verdantio/agricycle/internal/ports"
)

// Engine turns one cycle's analysis into actuator latches. Every rule is
// evaluated independently on every cycle and can only engage an actuator,
// never release one.
type Engine struct {
	obs ports.Observability
}

func NewEngine(obs ports.Observability) *Engine {
	return &Engine{obs: obs}
}

// ApplyRules mutates the process-wide actuator state in place. Running it
// twice with the same result leaves the state unchanged.
func (e *Engine) ApplyRules(result *domain.AnalysisResult, state *domain.ActuatorState) {
	if result.Predictions.IrrigationNeeded {
		e.engage(state, domain.Irrigation)
	}
	if result.Metrics.HeatIndex > 30 {
		e.engage(state, domain.Cooling)
	}
	if result.Metrics.DewPoint > 25 {
		e.engage(state, domain.Ventilation)
	}
	if co2, ok := result.Raw.Value(domain.Co2Level); ok && co2 < 400 {
		e.engage(state, domain.FertilizerDoser)
	}
	// Soil moisture is acquired every cycle but no rule consumes it yet.
}

func (e *Engine) engage(state *domain.ActuatorState, kind domain.ActuatorKind) {
	if state.Engage(kind) {
		e.obs.LogInfo("actuator_engaged", ports.Field{Key: "actuator", Value: string(kind)})
	}
}
