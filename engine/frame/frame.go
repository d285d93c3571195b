// Package frame holds the plain-data description of one rendered image. The museum
// core builds frames without touching the GPU; the renderer consumes them.
package frame

import (
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawItem is one lit mesh draw.
type DrawItem struct {
	MeshKey  string
	Model    mgl32.Mat4
	Material model.Material
}

// OverlayQuad is one textured screen-space rectangle drawn over the 3D scene.
// Coordinates are pixels with the origin at the top-left corner.
type OverlayQuad struct {
	TextureKey string
	X, Y       float32
	Width      float32
	Height     float32
	Opacity    float32
}

// Frame is everything the renderer needs to draw one image.
type Frame struct {
	ViewProjection mgl32.Mat4
	CameraPosition mgl32.Vec3
	Clear          mgl32.Vec3

	// Lights is a buffer produced by light.MarshalLightBuffer.
	Lights []byte

	Draws    []DrawItem
	Overlays []OverlayQuad // drawn in order after all meshes, back to front
}
