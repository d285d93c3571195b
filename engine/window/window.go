package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-museum/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface and
// satisfies input.Source so an input.Router can bind to it directly.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving wheel notches (positive = wheel rolled away from the user)
	SetScrollCallback(callback func(delta float32))

	// SetPointerDownCallback sets the callback for left mouse button press.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window coordinates
	SetPointerDownCallback(callback func(x, y float32))

	// SetPointerUpCallback sets the callback for left mouse button release.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window coordinates
	SetPointerUpCallback(callback func(x, y float32))

	// SetPointerMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window coordinates
	SetPointerMoveCallback(callback func(x, y float32))

	// SetHandCursor switches between the hand cursor and the default arrow.
	//
	// Parameters:
	//   - hand: true to show the hand cursor
	SetHandCursor(hand bool)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	// Unlike Close it leaves platform resources alive, so it is safe to call from callbacks.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// ContentScale returns the ratio of framebuffer pixels to window coordinates,
	// 2 on a typical HiDPI display.
	//
	// Returns:
	//   - float32: the content scale, 1 when unknown
	ContentScale() float32
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight bound resizing from below; 0 means no limit.
	minWidth  int
	minHeight int

	// maxWidth and maxHeight bound resizing from above; 0 means no limit.
	maxWidth  int
	maxHeight int

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onScroll is called for mouse wheel events with the vertical notch count.
	onScroll func(delta float32)

	// onPointerDown is called when the left mouse button is pressed.
	onPointerDown func(x, y float32)

	// onPointerUp is called when the left mouse button is released.
	onPointerUp func(x, y float32)

	// onPointerMove is called when the cursor moves within the window.
	onPointerMove func(x, y float32)
}

var _ Window = &engineWindow{}
var _ input.Source = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window (not yet spawned)
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Virtual Museum",
		minWidth:  600,
		minHeight: 400,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(x, y float32)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(x, y float32)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float32)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SetHandCursor(hand bool) {
	platformSetHandCursor(w, hand)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) ContentScale() float32 {
	return platformContentScale(w)
}
