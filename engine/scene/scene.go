package scene

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/engine/camera"
	"github.com/Carmen-Shannon/oxy-museum/engine/game_object"
	"github.com/Carmen-Shannon/oxy-museum/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene owns everything drawn in a frame: a Camera, a registry of GameObjects
// keyed by ID, the light list, and the scene-wide ambient and background colours.
// The scene never touches the GPU; the render loop reads it to build a frame.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Background returns the clear colour.
	Background() mgl32.Vec3

	// SetBackground sets the clear colour.
	//
	// Parameters:
	//   - c: the colour
	SetBackground(c mgl32.Vec3)

	// Ambient returns the ambient colour already multiplied by its intensity.
	Ambient() mgl32.Vec3

	// SetAmbient sets the ambient light.
	//
	// Parameters:
	//   - color: the ambient colour
	//   - intensity: the scalar multiplier
	SetAmbient(color mgl32.Vec3, intensity float32)

	// AddLight appends a light to the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a light from the scene, if present.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Lights returns a snapshot of the scene's lights in insertion order.
	Lights() []light.Light

	// Add registers an object. Objects without an ID are assigned the next free one.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove unregisters the object with the given ID.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Objects returns a snapshot of all registered objects ordered by ID.
	Objects() []game_object.GameObject

	// Drawables returns the enabled objects that reference a mesh, ordered by ID.
	Drawables() []game_object.GameObject

	// Count returns the number of registered objects.
	Count() int

	// Clear removes every object and light.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name string
	cam  camera.Camera

	registry map[uint64]game_object.GameObject
	nextID   uint64

	lights           []light.Light
	ambientColor     mgl32.Vec3
	ambientIntensity float32
	background       mgl32.Vec3
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera. The camera is required and
// NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:               &sync.RWMutex{},
		name:             name,
		cam:              cam,
		registry:         make(map[uint64]game_object.GameObject),
		nextID:           1,
		ambientIntensity: 1,
	}

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Background() mgl32.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Ambient() mgl32.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambientColor.Mul(s.ambientIntensity)
}

func (s *scene) SetAmbient(color mgl32.Vec3, intensity float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambientColor = color
	s.ambientIntensity = intensity
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(obj)
	return obj.ID()
}

// addLocked assigns an ID if needed and registers the object. Caller must hold s.mu.
func (s *scene) addLocked(obj game_object.GameObject) {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = obj
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(game_object.GameObject) bool { return true })
}

func (s *scene) Drawables() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(o game_object.GameObject) bool {
		return o.Enabled() && o.MeshKey() != ""
	})
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
	s.lights = nil
}

// sortedLocked returns the registry objects accepted by keep, ordered by ID.
// Caller must hold s.mu.
func (s *scene) sortedLocked(keep func(game_object.GameObject) bool) []game_object.GameObject {
	out := make([]game_object.GameObject, 0, len(s.registry))
	for _, o := range s.registry {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
