package domain

import "sync"

// ActuatorKind identifies one of the node's controllable devices.
type ActuatorKind string

const (
	Irrigation      ActuatorKind = "irrigation"
	Cooling         ActuatorKind = "cooling"
	Ventilation     ActuatorKind = "ventilation"
	FertilizerDoser ActuatorKind = "fertilizer_doser"
)

// ActuatorKinds lists every actuator in canonical order.
var ActuatorKinds = []ActuatorKind{Irrigation, Cooling, Ventilation, FertilizerDoser}

// ActuatorState is the process-wide on/off latch per actuator. Rules only
// ever engage an actuator; nothing switches one off short of an explicit
// Reset. The decision engine is the single writer; the mutex exists for
// read-side collaborators such as gauges and status reports.
type ActuatorState struct {
	mu sync.Mutex
	on map[ActuatorKind]bool
}

// NewActuatorState returns a state with every actuator off.
func NewActuatorState() *ActuatorState {
	on := make(map[ActuatorKind]bool, len(ActuatorKinds))
	for _, kind := range ActuatorKinds {
		on[kind] = false
	}
	return &ActuatorState{on: on}
}

// Engage latches the actuator on. It reports whether the call changed
// anything, so callers can log transitions without re-reading the state.
func (s *ActuatorState) Engage(kind ActuatorKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.on[kind] {
		return false
	}
	s.on[kind] = true
	return true
}

// Engaged reports whether the actuator is currently on.
func (s *ActuatorState) Engaged(kind ActuatorKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on[kind]
}

// EngagedCount returns how many actuators are currently on.
func (s *ActuatorState) EngagedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, v := range s.on {
		if v {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the full latch map.
func (s *ActuatorState) Snapshot() map[ActuatorKind]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[ActuatorKind]bool, len(s.on))
	for k, v := range s.on {
		out[k] = v
	}
	return out
}

// Reset switches every actuator off. This is the only way a latch clears.
func (s *ActuatorState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.on {
		s.on[k] = false
	}
}
