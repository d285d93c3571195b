package camera

type NavigationControllerOption func(*navigationControllerImpl)

// WithStartYaw sets the initial facing in radians.
//
// Parameters:
//   - yaw: rotation about Y, zero looks down -Z
//
// Returns:
//   - NavigationControllerOption: a function that sets the starting yaw
func WithStartYaw(yaw float32) NavigationControllerOption {
	return func(nc *navigationControllerImpl) {
		nc.yaw = yaw
	}
}

// WithBounds sets the box the target is clamped into.
//
// Parameters:
//   - b: the navigation bounds
//
// Returns:
//   - NavigationControllerOption: a function that sets the bounds
func WithBounds(b Bounds) NavigationControllerOption {
	return func(nc *navigationControllerImpl) {
		nc.bounds = b
	}
}

// WithRotateSensitivity sets the yaw change per pixel of drag.
//
// Parameters:
//   - s: radians per pixel
//
// Returns:
//   - NavigationControllerOption: a function that sets the drag sensitivity
func WithRotateSensitivity(s float32) NavigationControllerOption {
	return func(nc *navigationControllerImpl) {
		nc.rotateSensitivity = s
	}
}

// WithScrollSpeed sets the distance moved per pixel of wheel delta.
//
// Parameters:
//   - s: world units per pixel
//
// Returns:
//   - NavigationControllerOption: a function that sets the scroll speed
func WithScrollSpeed(s float32) NavigationControllerOption {
	return func(nc *navigationControllerImpl) {
		nc.scrollSpeed = s
	}
}

// WithEasing sets the glide behaviour applied on each Tick. A nil easing is ignored.
//
// Parameters:
//   - e: the easing to use
//
// Returns:
//   - NavigationControllerOption: a function that sets the easing
func WithEasing(e Easing) NavigationControllerOption {
	return func(nc *navigationControllerImpl) {
		if e != nil {
			nc.easing = e
		}
	}
}
