package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-museum/common"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool

	meshKey  string
	material model.Material
	parent   GameObject

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
}

// GameObject defines the interface for a placed, renderable scene node.
// A node references a mesh uploaded to the renderer by key, carries its own
// material and transform, and may be parented to a group node whose transform
// is applied on top of its own.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's human-readable name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// MeshKey returns the key of the mesh drawn for this object. Empty for pure group nodes.
	//
	// Returns:
	//   - string: the mesh key
	MeshKey() string

	// Material returns the surface parameters used to shade the mesh.
	//
	// Returns:
	//   - model.Material: the material
	Material() model.Material

	// Parent returns the group node this object is attached to, or nil.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Position returns the local translation.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the local Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: rotation about X, Y and Z
	Rotation() mgl32.Vec3

	// Scale returns the local scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// LocalMatrix returns the transform relative to the parent.
	//
	// Returns:
	//   - mgl32.Mat4: translation * rotation * scale
	LocalMatrix() mgl32.Mat4

	// ModelMatrix returns the world transform, including every ancestor.
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	ModelMatrix() mgl32.Mat4

	// WorldPosition returns the origin of the object in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the world position
	WorldPosition() mgl32.Vec3

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetMeshKey sets the mesh drawn for this object.
	//
	// Parameters:
	//   - key: the mesh key
	SetMeshKey(key string)

	// SetMaterial replaces the surface parameters.
	//
	// Parameters:
	//   - m: the material
	SetMaterial(m model.Material)

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - p: the position
	SetPosition(p mgl32.Vec3)

	// SetRotation sets the local Euler rotation in radians.
	//
	// Parameters:
	//   - r: rotation about X, Y and Z
	SetRotation(r mgl32.Vec3)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - s: the scale
	SetScale(s mgl32.Vec3)

	// Rotate adds the given deltas to the current rotation.
	//
	// Parameters:
	//   - dx, dy, dz: rotation deltas in radians
	Rotate(dx, dy, dz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject at the origin with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		scale: mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)

	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	if !g.enabled.Load() {
		return false
	}
	if g.parent != nil {
		return g.parent.Enabled()
	}
	return true
}

func (g *gameObject) MeshKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.meshKey
}

func (g *gameObject) Material() model.Material {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.material
}

func (g *gameObject) Parent() GameObject {
	return g.parent
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) LocalMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.ModelMatrix(g.position, g.rotation, g.scale)
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	local := g.LocalMatrix()
	if g.parent == nil {
		return local
	}
	return g.parent.ModelMatrix().Mul4(local)
}

func (g *gameObject) WorldPosition() mgl32.Vec3 {
	return g.ModelMatrix().Col(3).Vec3()
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetMeshKey(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.meshKey = key
}

func (g *gameObject) SetMaterial(m model.Material) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.material = m
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *gameObject) SetRotation(r mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = r
}

func (g *gameObject) SetScale(s mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = s
}

func (g *gameObject) Rotate(dx, dy, dz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = g.rotation.Add(mgl32.Vec3{dx, dy, dz})
}
