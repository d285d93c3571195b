package panel

import "github.com/pkg/browser"

// PanelOption configures a Panel.
type PanelOption func(*Panel)

// DefaultOpener opens URLs in the system browser.
var DefaultOpener Opener = browser.OpenURL

// WithOpener sets the function used to open the video URL. Defaults to DefaultOpener.
//
// Parameters:
//   - open: the opener, nil to disable opening
//
// Returns:
//   - PanelOption: option function to apply
func WithOpener(open Opener) PanelOption {
	return func(p *Panel) {
		p.opener = open
	}
}
