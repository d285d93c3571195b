package input

// RouterOption is a functional option for configuring a Router.
type RouterOption func(*Router)

// WithPixelsPerNotch sets how many wheel pixels one scroll notch is worth.
// Values <= 0 keep DefaultPixelsPerNotch.
//
// Parameters:
//   - px: pixels per notch
//
// Returns:
//   - RouterOption: option function to apply
func WithPixelsPerNotch(px float32) RouterOption {
	return func(r *Router) {
		if px > 0 {
			r.pixelsPerNotch = px
		}
	}
}

// WithInterceptor adds an interceptor at construction time.
//
// Parameters:
//   - i: the interceptor
//
// Returns:
//   - RouterOption: option function to apply
func WithInterceptor(i Interceptor) RouterOption {
	return func(r *Router) {
		r.interceptors = append(r.interceptors, i)
	}
}

// WithResizeListener adds a resize listener at construction time.
//
// Parameters:
//   - l: the listener
//
// Returns:
//   - RouterOption: option function to apply
func WithResizeListener(l ResizeListener) RouterOption {
	return func(r *Router) {
		r.resize = append(r.resize, l)
	}
}
