package model

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateMesh is returned when a mesh has no triangles or zero extent.
var ErrDegenerateMesh = errors.New("degenerate mesh")

// NewMesh creates a mesh from vertices and indices and computes its bounding box.
//
// Parameters:
//   - name: the mesh identifier
//   - vertices: the mesh vertices
//   - indices: the triangle indices
//
// Returns:
//   - *Mesh: the new mesh
func NewMesh(name string, vertices []GPUVertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	m.ComputeBounds()
	return m
}

// ComputeBounds recalculates BoundingMin and BoundingMax from the vertex positions.
// An empty mesh gets a zero box.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.BoundingMin, m.BoundingMax = mgl32.Vec3{}, mgl32.Vec3{}
		return
	}
	inf := float32(math.Inf(1))
	lo := mgl32.Vec3{inf, inf, inf}
	hi := mgl32.Vec3{-inf, -inf, -inf}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	m.BoundingMin, m.BoundingMax = lo, hi
}

// Size returns the extent of the bounding box along each axis.
func (m *Mesh) Size() mgl32.Vec3 {
	return m.BoundingMax.Sub(m.BoundingMin)
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() mgl32.Vec3 {
	return m.BoundingMin.Add(m.BoundingMax).Mul(0.5)
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// CenterOnOrigin translates every vertex so the bounding box center sits at the local origin.
// The bounding box is updated to match.
func (m *Mesh) CenterOnOrigin() {
	c := m.Center()
	for i := range m.Vertices {
		p := &m.Vertices[i].Position
		p[0] -= c.X()
		p[1] -= c.Y()
		p[2] -= c.Z()
	}
	m.BoundingMin = m.BoundingMin.Sub(c)
	m.BoundingMax = m.BoundingMax.Sub(c)
}

// FitScale returns the uniform scale that maps the mesh's largest extent to target units.
//
// Parameters:
//   - target: the desired size of the largest dimension
//
// Returns:
//   - float32: the uniform scale factor
//   - error: ErrDegenerateMesh if the mesh has no triangles or zero extent
func (m *Mesh) FitScale(target float32) (float32, error) {
	if m.TriangleCount() == 0 {
		return 0, ErrDegenerateMesh
	}
	return FitScale(m.Size(), target)
}

// FitScale returns the uniform scale that maps the largest component of size to target units.
//
// Parameters:
//   - size: bounding box extent
//   - target: the desired size of the largest dimension
//
// Returns:
//   - float32: target / max(size)
//   - error: ErrDegenerateMesh if every extent is zero
func FitScale(size mgl32.Vec3, target float32) (float32, error) {
	maxDim := max(size.X(), size.Y(), size.Z())
	if maxDim <= 0 {
		return 0, ErrDegenerateMesh
	}
	return target / maxDim, nil
}

// Clone returns a deep copy of the mesh so callers can centre or transform it without
// touching a cached original.
func (m *Mesh) Clone() *Mesh {
	vertices := make([]GPUVertex, len(m.Vertices))
	copy(vertices, m.Vertices)
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)
	return &Mesh{
		Name:        m.Name,
		Vertices:    vertices,
		Indices:     indices,
		BoundingMin: m.BoundingMin,
		BoundingMax: m.BoundingMax,
	}
}
