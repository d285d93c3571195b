package input

import "sync"

// DefaultPixelsPerNotch converts one scroll-wheel notch into the pixel delta a browser reports.
const DefaultPixelsPerNotch = 100

// Router fans window input out to an ordered set of interceptors and a target Handler.
// Touch input is folded into pointer input, and wheel notches are converted into pixel
// deltas with a browser's sign convention (scroll down is positive).
type Router struct {
	mu *sync.Mutex

	target         Handler
	interceptors   []Interceptor
	resize         []ResizeListener
	pixelsPerNotch float32

	// captured is true while a press consumed by an interceptor is still held, so the
	// matching release is not forwarded as the end of a drag that never started.
	captured bool
	touching bool
}

// NewRouter creates a Router delivering to target.
//
// Parameters:
//   - target: the Handler receiving unconsumed input
//   - options: functional options to configure the router
//
// Returns:
//   - *Router: the new router
func NewRouter(target Handler, options ...RouterOption) *Router {
	r := &Router{
		mu:             &sync.Mutex{},
		target:         target,
		pixelsPerNotch: DefaultPixelsPerNotch,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Bind registers the router's callbacks on a window.
//
// Parameters:
//   - src: the window to receive events from
func (r *Router) Bind(src Source) {
	src.SetPointerDownCallback(r.OnPointerDown)
	src.SetPointerUpCallback(r.OnPointerUp)
	src.SetPointerMoveCallback(r.OnPointerMove)
	src.SetScrollCallback(r.OnScrollNotches)
	src.SetResizeCallback(r.OnResize)
}

// AddInterceptor appends an interceptor. Interceptors are consulted in insertion order.
//
// Parameters:
//   - i: the interceptor to add
func (r *Router) AddInterceptor(i Interceptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interceptors = append(r.interceptors, i)
}

// AddResizeListener appends a resize listener.
//
// Parameters:
//   - l: the listener to add
func (r *Router) AddResizeListener(l ResizeListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resize = append(r.resize, l)
}

func (r *Router) OnPointerDown(x, y float32) {
	r.mu.Lock()
	interceptors := r.interceptors
	r.mu.Unlock()

	for _, i := range interceptors {
		if i.InterceptPointerDown(x, y) {
			r.mu.Lock()
			r.captured = true
			r.mu.Unlock()
			return
		}
	}
	r.target.OnPointerDown(x, y)
}

func (r *Router) OnPointerMove(x, y float32) {
	r.target.OnPointerMove(x, y)
}

func (r *Router) OnPointerUp(x, y float32) {
	r.mu.Lock()
	captured := r.captured
	r.captured = false
	r.mu.Unlock()

	if captured {
		return
	}
	r.target.OnPointerUp(x, y)
}

func (r *Router) OnWheel(deltaY float32) {
	r.target.OnWheel(deltaY)
}

// OnScrollNotches converts a window scroll offset (positive = wheel up) into a pixel wheel delta.
//
// Parameters:
//   - notches: the scroll offset reported by the window
func (r *Router) OnScrollNotches(notches float32) {
	r.OnWheel(-notches * r.pixelsPerNotch)
}

// OnResize forwards a framebuffer size change to every resize listener.
//
// Parameters:
//   - width, height: the new size in pixels
func (r *Router) OnResize(width, height int) {
	r.mu.Lock()
	listeners := r.resize
	r.mu.Unlock()

	for _, l := range listeners {
		l.OnResize(width, height)
	}
}

// TouchStart maps the first touch point onto a pointer press.
//
// Parameters:
//   - x, y: touch position in pixels
func (r *Router) TouchStart(x, y float32) {
	r.mu.Lock()
	r.touching = true
	r.mu.Unlock()
	r.OnPointerDown(x, y)
}

// TouchMove maps touch movement onto pointer movement while a touch is active.
//
// Parameters:
//   - x, y: touch position in pixels
func (r *Router) TouchMove(x, y float32) {
	r.mu.Lock()
	touching := r.touching
	r.mu.Unlock()
	if !touching {
		return
	}
	r.OnPointerMove(x, y)
}

// TouchEnd maps the end of a touch onto a pointer release.
//
// Parameters:
//   - x, y: last touch position in pixels
func (r *Router) TouchEnd(x, y float32) {
	r.mu.Lock()
	r.touching = false
	r.mu.Unlock()
	r.OnPointerUp(x, y)
}

var _ Handler = &Router{}
var _ ResizeListener = &Router{}
