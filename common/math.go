package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a right-handed perspective projection matrix that maps view-space
// depth into the WebGPU clip range [0, 1]. mgl32.Perspective targets the OpenGL range [-1, 1],
// which would clip the near half of the scene on a WebGPU surface.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	if aspect == 0 {
		aspect = 1
	}
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / (near - far), -1,
		0, 0, (near * far) / (near - far), 0,
	}
}

// ModelMatrix constructs a model matrix from translation, Euler rotation, and scale.
// Rotation is applied in X, Y, Z order (T * Rx * Ry * Rz * S) so that stepping rotation.x
// tilts the model about its own horizontal axis after any yaw has been applied.
//
// Parameters:
//   - position: translation in world space
//   - rotation: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ModelMatrix(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	r := mgl32.HomogRotate3DX(rotation.X()).
		Mul4(mgl32.HomogRotate3DY(rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(rotation.Z()))
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(r).Mul4(s)
}

// HexColor converts a 0xRRGGBB color into normalized RGB components.
//
// Parameters:
//   - hex: packed 24-bit color
//
// Returns:
//   - mgl32.Vec3: color with each channel in [0, 1]
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xFF) / 255.0,
		float32((hex>>8)&0xFF) / 255.0,
		float32(hex&0xFF) / 255.0,
	}
}
