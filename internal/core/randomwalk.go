package core

import (
	"math"

	"github.com/valter-silva-au/sentinel/pkg/models"
)

// WalkParams bounds a random walk and configures its gravity.
type WalkParams struct {
	// StepMagnitude is the width of the uniform step range centred on zero.
	StepMagnitude float64
	// Pull is subtracted above CenterHigh and added below CenterLow.
	Pull       float64
	Low        float64
	High       float64
	CenterLow  float64
	CenterHigh float64
}

// DefaultWalkParams returns a walk over [10, 90] with gravity outside [20, 80].
func DefaultWalkParams() WalkParams {
	return WalkParams{
		StepMagnitude: 10,
		Pull:          5,
		Low:           10,
		High:          90,
		CenterLow:     20,
		CenterHigh:    80,
	}
}

// WalkParamsFromConfig converts the walk section of the configuration.
func WalkParamsFromConfig(cfg models.WalkConfig) WalkParams {
	return WalkParams{
		StepMagnitude: cfg.StepMagnitude,
		Pull:          cfg.Pull,
		Low:           cfg.Low,
		High:          cfg.High,
		CenterLow:     cfg.CenterLow,
		CenterHigh:    cfg.CenterHigh,
	}
}

// Advance moves previous one tick along the walk. Gravity is a one-shot
// correction applied only once a soft threshold is crossed, so the value
// can linger past 20 or 80 for a few ticks. The result is always clamped
// to [Low, High], even when previous itself is out of range.
func Advance(previous float64, p WalkParams, rng RNG) float64 {
	delta := (rng.Float64() - 0.5) * p.StepMagnitude

	if previous > p.CenterHigh {
		delta -= p.Pull
	}
	if previous < p.CenterLow {
		delta += p.Pull
	}

	return clamp(previous+delta, p.Low, p.High)
}

// CurrentLoad rounds a sample for display. Buffered samples keep full
// precision so the smoothed curve does not look stair-stepped.
func CurrentLoad(sample float64) int {
	return int(math.Round(sample))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
