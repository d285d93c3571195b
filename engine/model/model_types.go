package model

import "github.com/go-gl/mathgl/mgl32"

// Mesh is triangle geometry produced by a loader backend or a primitive constructor.
// Vertices are stored in their GPU layout so the renderer can upload them without conversion.
type Mesh struct {
	// Name is the mesh identifier, usually the source path.
	Name string

	// Vertices are the mesh vertices in model space.
	Vertices []GPUVertex

	// Indices are the triangle indices into Vertices.
	Indices []uint32

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin mgl32.Vec3

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax mgl32.Vec3
}

// Material holds the surface parameters used by the lit mesh pipeline.
type Material struct {
	// Color is the base RGB color.
	Color mgl32.Vec3

	// Roughness is the surface roughness in [0, 1].
	Roughness float32

	// Metalness is the metallic factor in [0, 1].
	Metalness float32
}
