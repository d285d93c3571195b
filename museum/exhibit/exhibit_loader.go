package exhibit

import (
	"errors"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/engine/loader"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/Carmen-Shannon/oxy-museum/museum/config"
)

// completion is one finished load waiting to be drained on the render thread.
type completion struct {
	index int
	desc  config.Descriptor
	mesh  *model.Mesh
	err   error
}

// Loader starts one asynchronous model load per descriptor. Workers only queue their
// results; Drain places them and updates the Registry from the caller's thread.
type Loader struct {
	mu       *sync.Mutex
	loader   loader.Loader
	registry *Registry
	spacing  float32
	queue    []completion
	started  bool
	onLoad   func(*Exhibit) error
	onFail   func(*AssetLoadError)
}

// NewLoader creates a Loader feeding reg from the given mesh loader.
//
// Parameters:
//   - l: the mesh loader doing file IO and parsing
//   - reg: the registry receiving results
//   - options: functional options to configure the loader
//
// Returns:
//   - *Loader: the new loader
func NewLoader(l loader.Loader, reg *Registry, options ...LoaderOption) *Loader {
	el := &Loader{
		mu:       &sync.Mutex{},
		loader:   l,
		registry: reg,
		spacing:  8,
	}
	for _, opt := range options {
		opt(el)
	}
	return el
}

// Start submits a load for every descriptor. Calling Start more than once does nothing.
//
// Parameters:
//   - descriptors: the exhibits to load, indexed by position in the slice
func (l *Loader) Start(descriptors []config.Descriptor) {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.mu.Unlock()

	for i, d := range descriptors {
		l.loader.LoadAsync(d.Model, func(m *model.Mesh, err error) {
			l.mu.Lock()
			l.queue = append(l.queue, completion{index: i, desc: d, mesh: m, err: err})
			l.mu.Unlock()
		})
	}
}

// Drain processes every queued completion: successful loads are placed and registered,
// failures are logged once and recorded. Must be called from the thread that owns the scene.
//
// Returns:
//   - []*Exhibit: the exhibits registered by this call, in completion order
func (l *Loader) Drain() []*Exhibit {
	l.mu.Lock()
	queue := l.queue
	l.queue = nil
	l.mu.Unlock()

	var loaded []*Exhibit
	for _, c := range queue {
		e, err := l.place(c)
		if err == nil && l.onLoad != nil {
			if err = l.onLoad(e); err != nil {
				err = &AssetLoadError{Title: c.desc.Title, Path: c.desc.Model, Err: err}
			}
		}
		if err != nil {
			var loadErr *AssetLoadError
			if !errors.As(err, &loadErr) {
				loadErr = &AssetLoadError{Title: c.desc.Title, Path: c.desc.Model, Err: err}
			}
			log.Printf("[exhibit] %v", loadErr)
			l.registry.Fail(loadErr)
			if l.onFail != nil {
				l.onFail(loadErr)
			}
			continue
		}
		l.registry.Add(e)
		loaded = append(loaded, e)
	}

	if len(queue) > 0 && l.registry.Done() {
		log.Printf("[exhibit] loading complete: %d loaded, %d failed",
			len(l.registry.All()), len(l.registry.Failures()))
	}
	return loaded
}

func (l *Loader) place(c completion) (*Exhibit, error) {
	if c.err != nil {
		return nil, &AssetLoadError{Title: c.desc.Title, Path: c.desc.Model, Err: c.err}
	}
	return Place(c.index, c.desc, c.mesh, l.spacing)
}

// Pending returns the number of loads not yet drained.
//
// Returns:
//   - int: loads in flight plus completions waiting in the queue
func (l *Loader) Pending() int {
	l.mu.Lock()
	queued := len(l.queue)
	l.mu.Unlock()
	return l.loader.Pending() + queued
}

// Registry returns the registry the loader feeds.
func (l *Loader) Registry() *Registry {
	return l.registry
}
