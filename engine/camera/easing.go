package camera

import "github.com/chewxy/math32"

// DefaultEasingFactor is the per-frame fraction of the remaining distance the camera covers.
const DefaultEasingFactor float32 = 0.1

// Easing yields the interpolation fraction applied to (target - current) each tick.
type Easing interface {
	// Factor returns the fraction in [0, 1] to cover this tick.
	//
	// Parameters:
	//   - dt: seconds elapsed since the previous tick
	//
	// Returns:
	//   - float32: the interpolation fraction
	Factor(dt float32) float32
}

// FixedEasing covers a constant fraction per tick regardless of elapsed time, so glide speed
// scales with frame rate.
type FixedEasing float32

// Factor implements Easing.
func (f FixedEasing) Factor(float32) float32 {
	return clamp01(float32(f))
}

// DecayEasing covers 1 - exp(-Rate*dt) of the remaining distance, which is frame-rate
// independent. A rate of DecayRateFor(0.1, 60) reproduces FixedEasing(0.1) at 60 Hz.
type DecayEasing struct {
	Rate float32
}

// Factor implements Easing.
func (d DecayEasing) Factor(dt float32) float32 {
	if dt <= 0 || d.Rate <= 0 {
		return 0
	}
	return clamp01(1 - math32.Exp(-d.Rate*dt))
}

// DecayRateFor converts a per-frame factor at the given frame rate into an exponential rate.
//
// Parameters:
//   - factor: per-frame fraction in (0, 1)
//   - hz: frames per second the factor was tuned for
//
// Returns:
//   - float32: the equivalent decay rate in 1/s
func DecayRateFor(factor, hz float32) float32 {
	if factor <= 0 || factor >= 1 || hz <= 0 {
		return 0
	}
	return -math32.Log(1-factor) * hz
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
