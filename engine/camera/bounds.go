package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Eye height limits applied to every corridor.
const (
	MinEyeHeight float32 = 1.4
	MaxEyeHeight float32 = 2.0
)

// Bounds is an axis-aligned box the navigation target is clamped into.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// CorridorBounds returns the walkable box for a hall of the given width and length.
// Side margins are asymmetric (3 units from the left wall, 5 from the right), the far limit
// stops 15 units short of the hall length, and the near limit is the entrance at z = 5.
//
// Parameters:
//   - width: hall width along X
//   - length: hall length along Z
//
// Returns:
//   - Bounds: the corridor bounds
func CorridorBounds(width, length float32) Bounds {
	return Bounds{
		Min: mgl32.Vec3{-width/2 + 3, MinEyeHeight, -length + 15},
		Max: mgl32.Vec3{width/2 - 5, MaxEyeHeight, 5},
	}
}

// Clamp returns p with each component clamped into the box.
//
// Parameters:
//   - p: the point to clamp
//
// Returns:
//   - mgl32.Vec3: the clamped point
func (b Bounds) Clamp(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(p[0], b.Min[0], b.Max[0]),
		mgl32.Clamp(p[1], b.Min[1], b.Max[1]),
		mgl32.Clamp(p[2], b.Min[2], b.Max[2]),
	}
}

// Contains reports whether p lies inside the box, boundary included.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - bool: true if p is inside
func (b Bounds) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}
