package scene

import (
	"github.com/Carmen-Shannon/oxy-museum/engine/game_object"
	"github.com/Carmen-Shannon/oxy-museum/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.addLocked(obj)
		}
	}
}

// WithLights adds initial lights to the scene.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithAmbient sets the ambient light colour and intensity.
//
// Parameters:
//   - color: the ambient colour
//   - intensity: the scalar multiplier
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbient(color mgl32.Vec3, intensity float32) SceneBuilderOption {
	return func(s *scene) {
		s.ambientColor = color
		s.ambientIntensity = intensity
	}
}

// WithBackground sets the clear colour.
//
// Parameters:
//   - c: the colour
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}
