package loader

import "github.com/Carmen-Shannon/oxy-museum/engine/model"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithBaseDir is an option builder that sets the directory relative model paths are resolved against.
//
// Parameters:
//   - dir: the base directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the base directory option to a loader
func WithBaseDir(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.baseDir = dir
	}
}

// WithWorkers is an option builder that sets the number of goroutines used by LoadAsync.
// Values <= 0 keep the default of max(NumCPU-1, 1).
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithMesh is an option builder that pre-populates the mesh cache.
//
// Parameters:
//   - key: the cache key for the mesh
//   - m: the mesh to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mesh option to a loader
func WithMesh(key string, m *model.Mesh) LoaderBuilderOption {
	return func(l *loader) {
		l.meshCache[key] = m
	}
}
