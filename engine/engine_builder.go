package engine

import (
	"github.com/Carmen-Shannon/oxy-museum/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, e.g. to attach a stats callback.
//
// Parameters:
//   - p: the profiler to use
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithHost sets the message loop the engine drives frames from.
//
// Parameters:
//   - h: a pre-configured Host, usually a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHost(h Host) EngineBuilderOption {
	return func(e *engine) {
		e.host = h
	}
}

// WithTickCallback registers the per-frame tick callback during construction.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithRenderCallback registers the per-frame render callback during construction.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.renderCallback = callback
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithMaxDelta caps the delta time handed to callbacks, in seconds.
//
// Parameters:
//   - seconds: the ceiling (ignored if <= 0)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxDelta(seconds float32) EngineBuilderOption {
	return func(e *engine) {
		if seconds > 0 {
			e.maxDelta = seconds
		}
	}
}
