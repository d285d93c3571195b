package hall

import "github.com/Carmen-Shannon/oxy-museum/engine/camera"

// BuildOption configures Build.
type BuildOption func(*builder)

// WithCamera sets the camera handed to the new scene.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - BuildOption: option function to apply
func WithCamera(cam camera.Camera) BuildOption {
	return func(b *builder) {
		b.cam = cam
	}
}

// WithSpacing sets the distance between exhibit positions.
//
// Parameters:
//   - spacing: units along -Z per position
//
// Returns:
//   - BuildOption: option function to apply
func WithSpacing(spacing float32) BuildOption {
	return func(b *builder) {
		if spacing > 0 {
			b.spacing = spacing
		}
	}
}

// WithGroupOffset sets the Z translation of the shell group.
//
// Parameters:
//   - z: the group offset
//
// Returns:
//   - BuildOption: option function to apply
func WithGroupOffset(z float32) BuildOption {
	return func(b *builder) {
		b.groupOffset = z
	}
}
