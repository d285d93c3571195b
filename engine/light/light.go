package light

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Affects all fragments uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Used for the pools of light over each exhibit plinth. Attenuates with both
	// distance and angle from the cone axis, controlled by inner and outer cone angles.
	LightTypeSpot
)

// String returns the lower-case name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType  LightType
	position   mgl32.Vec3
	direction  mgl32.Vec3
	color      mgl32.Vec3
	intensity  float32
	lightRange float32
	decay      float32
	innerCone  float32 // stored as cos(angle in radians)
	outerCone  float32 // stored as cos(angle in radians)
	enabled    bool
}

// Light defines the interface for a light source in the scene.
//
// All light types (directional, point, spot) share this interface; type-specific
// properties (e.g. cone angles for spot lights) are ignored when not applicable.
// Ambient light is not a Light: it is a scene-wide colour carried by the scene and
// written into the light buffer header.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Direction returns the normalized direction the light travels.
	// For directional lights this is the light direction. For spot lights this
	// is the cone axis. Meaningless for point lights.
	//
	// Returns:
	//   - mgl32.Vec3: normalized direction
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance for point and spot lights.
	// Zero means unbounded.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Decay returns the exponent of the distance falloff for point and spot lights.
	//
	// Returns:
	//   - float32: the decay exponent
	Decay() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are skipped during GPU buffer marshaling.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - p: the position
	SetPosition(p mgl32.Vec3)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - d: the direction (will be normalized)
	SetDirection(d mgl32.Vec3)

	// SetTarget aims the light from its current position at a world-space point.
	//
	// Parameters:
	//   - target: the point to aim at
	SetTarget(target mgl32.Vec3)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - c: the color
	SetColor(c mgl32.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetSpotCone sets the cone from an outer half-angle and a penumbra fraction.
	// The inner half-angle is angle * (1 - penumbra).
	//
	// Parameters:
	//   - angle: outer cone half-angle in radians
	//   - penumbra: fraction of the cone that fades, in [0, 1]
	SetSpotCone(angle, penumbra float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		direction: mgl32.Vec3{0, -1, 0},
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1.0,
		decay:     2.0,
		enabled:   true,
	}
	l.SetSpotCone(math32.Pi/3, 0)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetDirection(d mgl32.Vec3) {
	if d.Len() == 0 {
		return
	}
	l.direction = d.Normalize()
}

func (l *lightImpl) SetTarget(target mgl32.Vec3) {
	l.SetDirection(target.Sub(l.position))
}

func (l *lightImpl) SetColor(c mgl32.Vec3) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetSpotCone(angle, penumbra float32) {
	penumbra = math32.Max(0, math32.Min(1, penumbra))
	l.outerCone = math32.Cos(angle)
	l.innerCone = math32.Cos(angle * (1 - penumbra))
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
