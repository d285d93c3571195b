package engine

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-museum/engine/profiler"
)

// Host is the message loop the engine drives frames from. window.Window satisfies it.
type Host interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	SetUpdateCallback(callback func())

	// ProcessMessages runs the message loop until the host is closed.
	ProcessMessages()

	// RequestClose asks the message loop to stop.
	RequestClose()

	// Close releases platform resources.
	Close() error
}

// engine implements the Engine interface.
// Frames run on the host's message loop thread: tick, then render, then profiling
// and the optional frame cap.
type engine struct {
	host Host

	quitting atomic.Bool

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxDelta         float32       // dt ceiling so a stalled frame cannot teleport animations

	now       func() time.Time
	sleep     func(time.Duration)
	lastFrame time.Time
	frames    uint64
}

// Engine is the main entry point for the engine.
// It owns the frame loop and hands each frame's delta time to the tick and render callbacks.
type Engine interface {
	// Host returns the message loop the engine runs on.
	//
	// Returns:
	//   - Host: the host instance
	Host() Host

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called first in every frame.
	// Use this for input-driven state, easing and asset completion handling.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after the tick in every frame.
	// Use this for GPU buffer updates and drawing.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns the number of frames completed so far.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Run starts the frame loop and blocks until the host closes, then releases the host.
	//
	// Returns:
	//   - error: error from closing the host
	Run() error

	// Quit stops the frame loop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (host, profiling, frame cap, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profilingEnabled: false,
		maxDelta:         0.25,
		now:              time.Now,
		sleep:            time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}
	return e
}

func (e *engine) Host() Host {
	return e.host
}

func (e *engine) Run() error {
	if e.host == nil {
		log.Printf("[engine] Run called without a host")
		return nil
	}
	e.lastFrame = e.now()
	e.host.SetUpdateCallback(e.frame)
	e.host.ProcessMessages()
	return e.host.Close()
}

func (e *engine) Quit() {
	if e.quitting.CompareAndSwap(false, true) && e.host != nil {
		e.host.RequestClose()
	}
}

func (e *engine) Frames() uint64 {
	return atomic.LoadUint64(&e.frames)
}

// frame runs one iteration of the loop: tick, render, profile, cap.
// Recovers from panics in either callback, logs them, and quits so the host can shut down cleanly.
func (e *engine) frame() {
	if e.quitting.Load() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[engine] frame recovered from panic: %v", r)
			e.Quit()
		}
	}()

	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start
	if dt > e.maxDelta {
		dt = e.maxDelta
	}
	if dt < 0 {
		dt = 0
	}

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	atomic.AddUint64(&e.frames, 1)

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickCallback registers the function called first in every frame.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called after the tick in every frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
