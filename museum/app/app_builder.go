package app

import (
	"github.com/Carmen-Shannon/oxy-museum/engine/loader"
	"github.com/Carmen-Shannon/oxy-museum/engine/text"
	"github.com/Carmen-Shannon/oxy-museum/museum/panel"
)

// AppOption configures an AppState.
type AppOption func(*AppState)

// WithMeshLoader replaces the default file-backed mesh loader.
//
// Parameters:
//   - l: the mesh loader
//
// Returns:
//   - AppOption: option function to apply
func WithMeshLoader(l loader.Loader) AppOption {
	return func(a *AppState) {
		a.meshes = l
	}
}

// WithFonts supplies the UI faces instead of loading the bundled ones.
//
// Parameters:
//   - fonts: the faces
//
// Returns:
//   - AppOption: option function to apply
func WithFonts(fonts *text.Fonts) AppOption {
	return func(a *AppState) {
		a.fonts = fonts
	}
}

// WithOpener sets how panels open video URLs.
//
// Parameters:
//   - open: the opener
//
// Returns:
//   - AppOption: option function to apply
func WithOpener(open panel.Opener) AppOption {
	return func(a *AppState) {
		a.opener = open
	}
}

// WithCursor registers a callback switching the hand cursor on and off.
//
// Parameters:
//   - fn: the cursor callback, window.Window.SetHandCursor in the desktop build
//
// Returns:
//   - AppOption: option function to apply
func WithCursor(fn func(hand bool)) AppOption {
	return func(a *AppState) {
		a.cursor = fn
	}
}

// WithUIScale sets the display content scale, 2 on a typical HiDPI screen. Panels, the
// HUD and pointer hit testing are laid out in window coordinates and stretched by scale
// when drawn. Non-positive values are ignored.
//
// Parameters:
//   - scale: framebuffer pixels per window coordinate
//
// Returns:
//   - AppOption: option function to apply
func WithUIScale(scale float32) AppOption {
	return func(a *AppState) {
		if scale > 0 {
			a.scale = scale
		}
	}
}
