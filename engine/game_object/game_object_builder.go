package game_object

import (
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the human-readable name of the GameObject.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithMesh sets the key of the mesh drawn for this GameObject.
//
// Parameters:
//   - key: the mesh key registered with the renderer
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the mesh key
func WithMesh(key string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.meshKey = key
	}
}

// WithMaterial sets the surface parameters of the GameObject.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the material
func WithMaterial(m model.Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.material = m
	}
}

// WithParent attaches the GameObject to a group node.
//
// Parameters:
//   - parent: the group node
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the parent
func WithParent(parent GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.parent = parent
	}
}

// WithPosition sets the initial local translation.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p
	}
}

// WithRotation sets the initial local Euler rotation in radians.
//
// Parameters:
//   - r: rotation about X, Y and Z
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(r mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = r
	}
}

// WithScale sets the initial local scale.
//
// Parameters:
//   - s: the scale
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(s mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = s
	}
}
