package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the world-space position of the light.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(p mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithDirection sets the direction of the light. The direction is normalized before storing.
//
// Parameters:
//   - d: the direction
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(d mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetDirection(d)
	}
}

// WithTarget aims the light at a world-space point. Apply after WithPosition.
//
// Parameters:
//   - target: the point to aim at
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(target mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetTarget(target)
	}
}

// WithColor sets the RGB color of the light.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(c mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange sets the maximum attenuation distance. Zero leaves the light unbounded.
//
// Parameters:
//   - lightRange: the range value
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithDecay sets the distance falloff exponent.
//
// Parameters:
//   - decay: the decay exponent
//
// Returns:
//   - LightBuilderOption: a function that applies the decay option to a lightImpl
func WithDecay(decay float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.decay = decay
	}
}

// WithSpotCone sets the cone from an outer half-angle in radians and a penumbra fraction.
//
// Parameters:
//   - angle: outer cone half-angle in radians
//   - penumbra: fraction of the cone that fades
//
// Returns:
//   - LightBuilderOption: a function that applies the cone option to a lightImpl
func WithSpotCone(angle, penumbra float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetSpotCone(angle, penumbra)
	}
}

// WithEnabled sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
