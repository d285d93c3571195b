// Package exhibit loads exhibit models off the render thread, normalises and places them,
// and keeps the registry of exhibits that made it into the hall.
package exhibit

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/common"
	"github.com/Carmen-Shannon/oxy-museum/engine/game_object"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/Carmen-Shannon/oxy-museum/museum/config"
	"github.com/go-gl/mathgl/mgl32"
)

// TargetSize is the largest dimension every exhibit is scaled to.
const TargetSize float32 = 2

// Material is the surface every exhibit model is drawn with.
var Material = model.Material{Color: common.HexColor(0xaaaaaa), Roughness: 0.7, Metalness: 0.5}

// Exhibit is one placed model and the descriptor it came from.
type Exhibit struct {
	Index      int
	Descriptor config.Descriptor
	MeshKey    string
	Mesh       *model.Mesh // centred on the origin, unscaled
	Object     game_object.GameObject
}

// Title returns the exhibit's title.
func (e *Exhibit) Title() string {
	return e.Descriptor.Title
}

// WorldPosition returns the model's current world position.
func (e *Exhibit) WorldPosition() mgl32.Vec3 {
	return e.Object.WorldPosition()
}

// AssetLoadError reports that one exhibit's model could not be used.
type AssetLoadError struct {
	Title string
	Path  string
	Err   error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("exhibit %q (%s): %v", e.Title, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// MeshKey returns the renderer key for the exhibit at index. Keys include the index so two
// exhibits sharing a model file still get independently centred meshes.
//
// Parameters:
//   - index: the descriptor index
//   - path: the model path
//
// Returns:
//   - string: the mesh key
func MeshKey(index int, path string) string {
	return fmt.Sprintf("exhibit/%d/%s", index, path)
}

// Place centres a loaded mesh and builds the object that positions it in the hall.
// The mesh is modified in place.
//
// Parameters:
//   - index: the descriptor index
//   - d: the exhibit descriptor
//   - mesh: the loaded mesh
//   - spacing: distance between exhibit positions
//
// Returns:
//   - *Exhibit: the placed exhibit
//   - error: an *AssetLoadError if the mesh is degenerate
func Place(index int, d config.Descriptor, mesh *model.Mesh, spacing float32) (*Exhibit, error) {
	if mesh == nil {
		return nil, &AssetLoadError{Title: d.Title, Path: d.Model, Err: model.ErrDegenerateMesh}
	}
	mesh.CenterOnOrigin()
	scale, err := mesh.FitScale(TargetSize)
	if err != nil {
		return nil, &AssetLoadError{Title: d.Title, Path: d.Model, Err: err}
	}

	key := MeshKey(index, d.Model)
	obj := game_object.NewGameObject(
		game_object.WithName(d.Title),
		game_object.WithMesh(key),
		game_object.WithMaterial(Material),
		game_object.WithPosition(d.Anchor(spacing)),
		game_object.WithScale(mgl32.Vec3{scale, scale, scale}),
	)
	return &Exhibit{
		Index:      index,
		Descriptor: d,
		MeshKey:    key,
		Mesh:       mesh,
		Object:     obj,
	}, nil
}

// Registry records exhibits in completion order along with the ones that failed.
// Thread-safe for concurrent access.
type Registry struct {
	mu       *sync.Mutex
	expected int
	exhibits []*Exhibit
	failures []*AssetLoadError
}

// NewRegistry creates a Registry expecting the given number of loads.
//
// Parameters:
//   - expected: the number of exhibits being loaded
//
// Returns:
//   - *Registry: the new registry
func NewRegistry(expected int) *Registry {
	return &Registry{
		mu:       &sync.Mutex{},
		expected: expected,
	}
}

// Add records a loaded exhibit.
func (r *Registry) Add(e *Exhibit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exhibits = append(r.exhibits, e)
}

// Fail records a failed load.
func (r *Registry) Fail(err *AssetLoadError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, err)
}

// All returns the loaded exhibits in completion order.
func (r *Registry) All() []*Exhibit {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Exhibit, len(r.exhibits))
	copy(out, r.exhibits)
	return out
}

// Failures returns the failed loads in completion order.
func (r *Registry) Failures() []*AssetLoadError {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*AssetLoadError, len(r.failures))
	copy(out, r.failures)
	return out
}

// Expected returns the number of loads the registry is waiting for.
func (r *Registry) Expected() int {
	return r.expected
}

// Settled returns how many loads have finished, successfully or not.
func (r *Registry) Settled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.exhibits) + len(r.failures)
}

// Done reports whether every expected load has settled.
func (r *Registry) Done() bool {
	return r.Settled() >= r.expected
}
