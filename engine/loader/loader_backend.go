package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-museum/engine/model"
)

// loaderBackend defines the generic interface for loading meshes from files or streams.
// Concrete implementations (e.g., stlLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load imports a mesh from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.Mesh: the imported mesh
	//   - error: error if loading fails
	Load(path string) (*model.Mesh, error)

	// LoadReader imports a mesh from a reader stream.
	//
	// Parameters:
	//   - name: the name given to the resulting mesh
	//   - r: the reader providing model data
	//
	// Returns:
	//   - *model.Mesh: the imported mesh
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (*model.Mesh, error)
}
