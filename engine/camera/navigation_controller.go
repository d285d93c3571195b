package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// NavigationController walks the camera through a corridor: dragging turns the view about
// the vertical axis, the wheel moves a target point along the horizontal facing, and Tick
// glides the eye toward that target.
//
// The controller satisfies both input.Handler and Controller, so it can be registered with
// an input.Router and attached to a Camera at the same time.
type NavigationController interface {
	input.Handler
	Controller

	// Tick advances the eye one step toward the target using the configured Easing.
	//
	// Parameters:
	//   - dt: seconds elapsed since the previous tick
	Tick(dt float32)

	// Target returns the clamped point the eye is gliding toward.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// Yaw returns the rotation about the Y axis in radians. Zero looks down -Z.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Dragging reports whether a pointer drag is in progress.
	//
	// Returns:
	//   - bool: true while the primary pointer is held
	Dragging() bool

	// Bounds returns the box the target is clamped into.
	//
	// Returns:
	//   - Bounds: the navigation bounds
	Bounds() Bounds

	// SetBounds replaces the navigation bounds and re-clamps the target.
	//
	// Parameters:
	//   - b: the new bounds
	SetBounds(b Bounds)
}

// NewNavigationController creates a controller standing at the hall entrance (0, 1.6, 5)
// facing -Z, with the default drag sensitivity, scroll speed and fixed 0.1 easing.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - NavigationController: the newly created controller
func NewNavigationController(options ...NavigationControllerOption) NavigationController {
	start := mgl32.Vec3{0, 1.6, 5}
	nc := &navigationControllerImpl{
		mu:                &sync.Mutex{},
		current:           start,
		target:            start,
		bounds:            CorridorBounds(30, 100),
		rotateSensitivity: DefaultRotateSensitivity,
		scrollSpeed:       DefaultScrollSpeed,
		easing:            FixedEasing(DefaultEasingFactor),
	}

	for _, option := range options {
		option(nc)
	}

	nc.target = nc.bounds.Clamp(nc.target)
	return nc
}
