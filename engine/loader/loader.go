package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
)

// ErrUnsupportedFormat is returned when no backend handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	baseDir string

	meshCache map[string]*model.Mesh

	backends map[string]loaderBackend

	// pool runs LoadAsync work off the caller's thread. Created lazily on first use.
	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
	workers  int
	taskID   atomic.Int64
	pending  atomic.Int64
}

// Loader defines the public-facing interface for loading and caching meshes.
// It abstracts the file format behind a backend selected by extension and keeps a
// cache of parsed meshes. Every mesh handed out is a private copy, so callers may
// centre or scale it freely.
type Loader interface {
	// Load imports a mesh file and caches the parsed result.
	// Relative paths are resolved against the configured base directory.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - *model.Mesh: a copy of the loaded mesh
	//   - error: error if the format is unsupported or parsing fails
	Load(path string) (*model.Mesh, error)

	// LoadReader imports a mesh from a reader stream and caches it under name.
	//
	// Parameters:
	//   - name: the cache key for the loaded mesh
	//   - format: the file extension identifying the format (e.g. ".stl")
	//   - r: the reader providing model data
	//
	// Returns:
	//   - *model.Mesh: a copy of the loaded mesh
	//   - error: error if the format is unsupported or parsing fails
	LoadReader(name, format string, r io.Reader) (*model.Mesh, error)

	// LoadAsync runs Load on the worker pool and calls done from the worker goroutine.
	// Callers that mutate single-threaded state must hand the result back to their own thread.
	//
	// Parameters:
	//   - path: the file path to the model file
	//   - done: completion callback receiving the mesh or the load error
	LoadAsync(path string, done func(*model.Mesh, error))

	// Pending returns the number of LoadAsync calls that have not completed yet.
	//
	// Returns:
	//   - int: in-flight async loads
	Pending() int

	// Get retrieves a copy of a cached mesh by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *model.Mesh: a copy of the cached mesh or nil
	Get(name string) *model.Mesh

	// Meshes returns the names of every cached mesh.
	//
	// Returns:
	//   - []string: cache keys
	Meshes() []string
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the STL backend registered and options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		meshCache: make(map[string]*model.Mesh),
		backends: map[string]loaderBackend{
			".stl": newSTLLoaderBackend(),
		},
		workers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (*model.Mesh, error) {
	resolved := l.resolvePath(path)

	l.mu.RLock()
	if m, ok := l.meshCache[resolved]; ok {
		l.mu.RUnlock()
		return m.Clone(), nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(resolved)
	if err != nil {
		return nil, err
	}

	m, err := backend.Load(resolved)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", resolved, err)
	}

	l.mu.Lock()
	l.meshCache[resolved] = m
	l.mu.Unlock()

	return m.Clone(), nil
}

func (l *loader) LoadReader(name, format string, r io.Reader) (*model.Mesh, error) {
	backend, err := l.resolveBackend(format)
	if err != nil {
		return nil, err
	}

	m, err := backend.LoadReader(name, r)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	l.mu.Lock()
	l.meshCache[name] = m
	l.mu.Unlock()

	return m.Clone(), nil
}

func (l *loader) LoadAsync(path string, done func(*model.Mesh, error)) {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	})

	l.pending.Add(1)
	id := int(l.taskID.Add(1))
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer l.pending.Add(-1)
			m, err := l.Load(path)
			if done != nil {
				done(m, err)
			}
			return m, err
		},
	})
}

func (l *loader) Pending() int {
	return int(l.pending.Load())
}

func (l *loader) Get(name string) *model.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if m, ok := l.meshCache[l.resolvePath(name)]; ok {
		return m.Clone()
	}
	if m, ok := l.meshCache[name]; ok {
		return m.Clone()
	}
	return nil
}

func (l *loader) Meshes() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.meshCache))
	for k := range l.meshCache {
		names = append(names, k)
	}
	return names
}

// resolvePath joins relative paths onto the base directory.
func (l *loader) resolvePath(path string) string {
	if l.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.baseDir, path)
}

// resolveBackend selects a loader backend based on the file extension.
// A bare extension such as ".stl" is accepted as well as a full path.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" && strings.HasPrefix(path, ".") {
		ext = strings.ToLower(path)
	}
	if b, ok := l.backends[ext]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}
