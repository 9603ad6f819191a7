package core

import (
	"testing"

	"pgregory.net/rapid"
)

// Property: for any previous value and any draw, Advance stays within
// [Low, High].
func TestProperty_AdvanceBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := DefaultWalkParams()
		previous := rapid.Float64Range(-50, 150).Draw(rt, "previous")
		draw := rapid.Float64Range(0, 1).Draw(rt, "draw")

		got := Advance(previous, p, newStubRNG(draw))
		if got < p.Low || got > p.High {
			rt.Fatalf("Advance(%v, r=%v) = %v, outside [%v, %v]", previous, draw, got, p.Low, p.High)
		}
	})
}

// Property: inside the neutral band the step never exceeds half the
// step magnitude.
func TestProperty_AdvanceStepSizeInsideBand(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := DefaultWalkParams()
		previous := rapid.Float64Range(p.CenterLow+p.StepMagnitude/2, p.CenterHigh-p.StepMagnitude/2).Draw(rt, "previous")
		draw := rapid.Float64Range(0, 1).Draw(rt, "draw")

		got := Advance(previous, p, newStubRNG(draw))
		if d := got - previous; d > p.StepMagnitude/2+1e-9 || d < -p.StepMagnitude/2-1e-9 {
			rt.Fatalf("step %v exceeds ±%v", d, p.StepMagnitude/2)
		}
	})
}
