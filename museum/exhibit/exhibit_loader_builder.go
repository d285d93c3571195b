package exhibit

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSpacing sets the distance between exhibit positions used for placement.
//
// Parameters:
//   - spacing: units along -Z per position
//
// Returns:
//   - LoaderOption: option function to apply
func WithSpacing(spacing float32) LoaderOption {
	return func(l *Loader) {
		if spacing > 0 {
			l.spacing = spacing
		}
	}
}

// WithOnLoad registers a callback run by Drain for every placed exhibit before it is
// registered. An error from fn records the exhibit as a failed load instead.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - LoaderOption: option function to apply
func WithOnLoad(fn func(*Exhibit) error) LoaderOption {
	return func(l *Loader) {
		l.onLoad = fn
	}
}

// WithOnFail registers a callback run by Drain for every failed load.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - LoaderOption: option function to apply
func WithOnFail(fn func(*AssetLoadError)) LoaderOption {
	return func(l *Loader) {
		l.onFail = fn
	}
}
