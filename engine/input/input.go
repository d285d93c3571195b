// Package input defines the platform-agnostic input capability set consumed by the museum
// core and the Router that feeds it from a window.
package input

// Handler is the capability set a navigation or UI component implements to receive
// pointer and wheel input. Pointer coordinates are window pixels with the origin at the
// top-left corner.
type Handler interface {
	// OnPointerDown is called when the primary pointer (left mouse button or first touch) is pressed.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	OnPointerDown(x, y float32)

	// OnPointerMove is called whenever the pointer moves, pressed or not.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	OnPointerMove(x, y float32)

	// OnPointerUp is called when the primary pointer is released.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	OnPointerUp(x, y float32)

	// OnWheel is called for wheel input expressed in pixel units.
	// Positive deltaY scrolls down, matching browser wheel events.
	//
	// Parameters:
	//   - deltaY: vertical scroll delta in pixels
	OnWheel(deltaY float32)
}

// Interceptor gets the first look at a pointer press. Returning true consumes the press
// so the Router's Handler never sees it (and no drag starts).
type Interceptor interface {
	// InterceptPointerDown reports whether the press at (x, y) was handled.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	//
	// Returns:
	//   - bool: true if the press was consumed
	InterceptPointerDown(x, y float32) bool
}

// ResizeListener receives framebuffer size changes.
type ResizeListener interface {
	// OnResize is called with the new framebuffer size in pixels.
	//
	// Parameters:
	//   - width, height: the new size
	OnResize(width, height int)
}

// Source is the subset of a platform window the Router binds to.
type Source interface {
	SetPointerDownCallback(callback func(x, y float32))
	SetPointerUpCallback(callback func(x, y float32))
	SetPointerMoveCallback(callback func(x, y float32))
	SetScrollCallback(callback func(delta float32))
	SetResizeCallback(callback func(width, height int))
}
