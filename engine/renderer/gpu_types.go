package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-museum/engine/frame"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform sizes matching the structs in assets/mesh.wgsl and assets/overlay.wgsl.
const (
	frameUniformSize   = 80
	objectUniformSize  = 160
	overlayUniformSize = 32
)

// GPUFrameUniform is the per-frame camera block.
//
// Layout:
//
//	mat4x4<f32> view_proj   (64 bytes, offset  0)
//	vec3<f32>   camera_pos  (12 bytes, offset 64)
//	f32         _pad        ( 4 bytes, offset 76)
type GPUFrameUniform struct {
	ViewProjection mgl32.Mat4
	CameraPosition mgl32.Vec3
}

// Marshal serializes the uniform for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (u *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, frameUniformSize)
	putFloats(buf[0:64], u.ViewProjection[:])
	putFloats(buf[64:76], u.CameraPosition[:])
	return buf
}

// GPUObjectUniform is the per-draw transform and material block.
//
// Layout:
//
//	mat4x4<f32> model          (64 bytes, offset   0)
//	mat4x4<f32> normal_matrix  (64 bytes, offset  64)
//	vec3<f32>   color          (12 bytes, offset 128)
//	f32         roughness      ( 4 bytes, offset 140)
//	f32         metalness      ( 4 bytes, offset 144)
//	f32 x3      _pad           (12 bytes, offset 148)
type GPUObjectUniform struct {
	Model        mgl32.Mat4
	NormalMatrix mgl32.Mat4
	Material     model.Material
}

// NewGPUObjectUniform derives the normal matrix from the model matrix.
//
// Parameters:
//   - m: the model matrix
//   - mat: the surface material
//
// Returns:
//   - GPUObjectUniform: the uniform block
func NewGPUObjectUniform(m mgl32.Mat4, mat model.Material) GPUObjectUniform {
	return GPUObjectUniform{
		Model:        m,
		NormalMatrix: m.Mat3().Inv().Transpose().Mat4(),
		Material:     mat,
	}
}

// Marshal serializes the uniform for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer ready for GPU upload
func (u *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, objectUniformSize)
	putFloats(buf[0:64], u.Model[:])
	putFloats(buf[64:128], u.NormalMatrix[:])
	putFloats(buf[128:140], u.Material.Color[:])
	putFloats(buf[140:148], []float32{u.Material.Roughness, u.Material.Metalness})
	return buf
}

// GPUOverlayUniform positions one textured quad in normalized device coordinates.
//
// Layout:
//
//	vec4<f32> rect     (16 bytes, offset  0) min.x, min.y, max.x, max.y
//	f32       opacity  ( 4 bytes, offset 16)
//	f32 x3    _pad     (12 bytes, offset 20)
type GPUOverlayUniform struct {
	Rect    [4]float32
	Opacity float32
}

// NewGPUOverlayUniform converts a pixel-space quad to NDC for a surface of the given size.
// Pixel space has its origin at the top-left with Y down; NDC has Y up.
//
// Parameters:
//   - q: the overlay quad in pixels
//   - width, height: surface size in pixels
//
// Returns:
//   - GPUOverlayUniform: the uniform block
func NewGPUOverlayUniform(q frame.OverlayQuad, width, height int) GPUOverlayUniform {
	w := float32(max(width, 1))
	h := float32(max(height, 1))
	toX := func(px float32) float32 { return px/w*2 - 1 }
	toY := func(py float32) float32 { return 1 - py/h*2 }
	return GPUOverlayUniform{
		Rect:    [4]float32{toX(q.X), toY(q.Y + q.Height), toX(q.X + q.Width), toY(q.Y)},
		Opacity: q.Opacity,
	}
}

// Marshal serializes the uniform for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (u *GPUOverlayUniform) Marshal() []byte {
	buf := make([]byte, overlayUniformSize)
	putFloats(buf[0:16], u.Rect[:])
	putFloats(buf[16:20], []float32{u.Opacity})
	return buf
}

func putFloats(buf []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
