package model

// Plane builds a width x height quad in the XY plane centered on the origin, facing +Z.
// Mirrors a PlaneGeometry with one segment per side.
//
// Parameters:
//   - name: the mesh identifier
//   - width: extent along X
//   - height: extent along Y
//
// Returns:
//   - *Mesh: the two-triangle plane
func Plane(name string, width, height float32) *Mesh {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	vertices := []GPUVertex{
		{Position: [3]float32{-hw, hh, 0}, Normal: n},
		{Position: [3]float32{hw, hh, 0}, Normal: n},
		{Position: [3]float32{-hw, -hh, 0}, Normal: n},
		{Position: [3]float32{hw, -hh, 0}, Normal: n},
	}
	indices := []uint32{0, 2, 1, 2, 3, 1}
	return NewMesh(name, vertices, indices)
}
