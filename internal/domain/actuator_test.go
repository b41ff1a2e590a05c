package domain

import "testing"

func TestActuatorStateStartsAllOff(t *testing.T) {
	state := NewActuatorState()

	for _, kind := range ActuatorKinds {
		if state.Engaged(kind) {
			t.Fatalf("%s should start off", kind)
		}
	}
	if state.EngagedCount() != 0 {
		t.Fatalf("expected 0 engaged, got %d", state.EngagedCount())
	}
}

func TestActuatorStateLatches(t *testing.T) {
	state := NewActuatorState()

	if !state.Engage(Irrigation) {
		t.Fatalf("first engage should report a transition")
	}
	if state.Engage(Irrigation) {
		t.Fatalf("second engage should be a no-op")
	}
	if !state.Engaged(Irrigation) {
		t.Fatalf("irrigation should stay latched on")
	}
	if state.EngagedCount() != 1 {
		t.Fatalf("expected 1 engaged, got %d", state.EngagedCount())
	}
}

func TestActuatorStateSnapshotIsACopy(t *testing.T) {
	state := NewActuatorState()
	state.Engage(Cooling)

	snap := state.Snapshot()
	snap[Ventilation] = true

	if state.Engaged(Ventilation) {
		t.Fatalf("mutating a snapshot must not touch the state")
	}
	if !snap[Cooling] {
		t.Fatalf("snapshot should reflect engaged actuators")
	}
}

func TestActuatorStateReset(t *testing.T) {
	state := NewActuatorState()
	state.Engage(Irrigation)
	state.Engage(FertilizerDoser)

	state.Reset()

	for _, kind := range ActuatorKinds {
		if state.Engaged(kind) {
			t.Fatalf("%s should be off after reset", kind)
		}
	}
}
