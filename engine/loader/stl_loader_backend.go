package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hschendel/stl"
)

// stlLoaderBackend imports binary and ASCII STL solids as flat-shaded triangle meshes.
type stlLoaderBackend struct{}

var _ loaderBackend = &stlLoaderBackend{}

func newSTLLoaderBackend() *stlLoaderBackend {
	return &stlLoaderBackend{}
}

func (b *stlLoaderBackend) Load(path string) (*model.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stl: %w", err)
	}
	defer f.Close()
	return b.LoadReader(path, f)
}

func (b *stlLoaderBackend) LoadReader(name string, r io.Reader) (*model.Mesh, error) {
	// The STL reader sniffs the ASCII "solid" header and needs to rewind, so hand it a seekable buffer.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stl %s: %w", name, err)
	}
	solid, err := stl.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse stl %s: %w", name, err)
	}
	return solidToMesh(name, solid), nil
}

// solidToMesh expands every STL facet into three vertices sharing the facet normal.
// Facets with a missing normal get one from the winding order.
func solidToMesh(name string, solid *stl.Solid) *model.Mesh {
	vertices := make([]model.GPUVertex, 0, len(solid.Triangles)*3)
	indices := make([]uint32, 0, len(solid.Triangles)*3)

	for _, tri := range solid.Triangles {
		a := mgl32.Vec3(tri.Vertices[0])
		b := mgl32.Vec3(tri.Vertices[1])
		c := mgl32.Vec3(tri.Vertices[2])

		n := mgl32.Vec3(tri.Normal)
		if n.Len() < 1e-6 {
			n = b.Sub(a).Cross(c.Sub(a))
		}
		if n.Len() > 0 {
			n = n.Normalize()
		}

		base := uint32(len(vertices))
		for _, p := range []mgl32.Vec3{a, b, c} {
			vertices = append(vertices, model.GPUVertex{Position: p, Normal: n})
		}
		indices = append(indices, base, base+1, base+2)
	}

	return model.NewMesh(name, vertices, indices)
}
