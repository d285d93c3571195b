package window

// WindowBuilderOption configures the museum window before it is spawned.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text.
//
// Parameters:
//   - title: the window title
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial client area size in window coordinates.
// Non-positive values keep the default 1280x720.
//
// Parameters:
//   - width, height: the initial size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 && height > 0 {
			w.width, w.height = width, height
		}
	}
}

// WithMinSize stops the window from being resized below width x height.
// Zero leaves that dimension unbounded.
//
// Parameters:
//   - width, height: the minimum size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = width, height
	}
}

// WithMaxSize stops the window from being resized above width x height.
// Zero leaves that dimension unbounded.
//
// Parameters:
//   - width, height: the maximum size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth, w.maxHeight = width, height
	}
}
