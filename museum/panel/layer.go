package panel

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/engine/input"
)

// Layer owns every panel and routes pointer presses to them ahead of navigation.
type Layer struct {
	mu     *sync.Mutex
	panels []*Panel
}

var _ input.Interceptor = &Layer{}

// NewLayer creates an empty Layer.
//
// Returns:
//   - *Layer: the new layer
func NewLayer() *Layer {
	return &Layer{mu: &sync.Mutex{}}
}

// Add appends a panel.
func (l *Layer) Add(p *Panel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.panels = append(l.panels, p)
}

// Panels returns every panel in insertion order.
func (l *Layer) Panels() []*Panel {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Panel, len(l.panels))
	copy(out, l.panels)
	return out
}

// Visible returns the visible panels ordered back to front (farthest exhibit first).
//
// Returns:
//   - []*Panel: the panels in draw order
func (l *Layer) Visible() []*Panel {
	var out []*Panel
	for _, p := range l.Panels() {
		if p.Placement().Visible {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Placement().Distance > out[j].Placement().Distance
	})
	return out
}

// top returns the front-most interactive panel under the point, or nil.
func (l *Layer) top(x, y float32) *Panel {
	visible := l.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		p := visible[i]
		if p.Placement().Interactive && p.Contains(x, y) {
			return p
		}
	}
	return nil
}

// InterceptPointerDown applies the button under the point on the front-most interactive
// panel. Presses anywhere on such a panel are consumed; presses on faded panels fall through.
//
// Parameters:
//   - x, y: screen position in pixels
//
// Returns:
//   - bool: true if a panel took the press
func (l *Layer) InterceptPointerDown(x, y float32) bool {
	p := l.top(x, y)
	if p == nil {
		return false
	}
	p.Apply(p.ActionAt(x, y))
	return true
}

// OverButton reports whether the point is over a clickable button, for cursor feedback.
//
// Parameters:
//   - x, y: screen position in pixels
//
// Returns:
//   - bool: true if a click at the point would do something
func (l *Layer) OverButton(x, y float32) bool {
	p := l.top(x, y)
	return p != nil && p.ActionAt(x, y) != ActionNone
}
