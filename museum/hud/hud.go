// Package hud draws the screen-fixed overlays: the navigation instructions banner and the
// loading screen shown while exhibit models load.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/engine/text"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// InstructionsText is the navigation hint shown at startup.
const InstructionsText = "Scroll to move • Click and drag to look around"

// Banner and loading screen timings in seconds.
const (
	InstructionsHold float32 = 5
	InstructionsFade float32 = 1
	LoadingHold      float32 = 1
	LoadingFade      float32 = 0.5
)

// Anchor says where an element sits on screen.
type Anchor int

const (
	// AnchorBottom centres the element horizontally near the bottom edge.
	AnchorBottom Anchor = iota
	// AnchorCenter centres the element on screen.
	AnchorCenter
	// AnchorFill stretches the element over the whole screen.
	AnchorFill
)

// Element is one HUD overlay.
type Element struct {
	Key    string
	Anchor Anchor

	mu       *sync.Mutex
	lines    []string
	opacity  float32
	fill     color.RGBA
	dirty    bool
	fade     *gween.Sequence
	finished bool
}

func newElement(key string, anchor Anchor, lines ...string) *Element {
	return &Element{
		Key:     key,
		Anchor:  anchor,
		mu:      &sync.Mutex{},
		lines:   lines,
		opacity: 1,
		fill:    color.RGBA{0, 0, 0, 178},
		dirty:   true,
	}
}

// holdThenFade builds a sequence that keeps the value at 1 for hold seconds and then
// eases it to 0 over fade seconds.
func holdThenFade(hold, fade float32) *gween.Sequence {
	seq := gween.NewSequence()
	seq.Add(
		gween.New(1, 1, hold, ease.Linear),
		gween.New(1, 0, fade, ease.Linear),
	)
	return seq
}

func (e *Element) tick(dt float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fade == nil || e.finished {
		return
	}
	v, _, done := e.fade.Update(dt)
	e.opacity = v
	if done {
		e.opacity = 0
		e.finished = true
	}
}

func (e *Element) setLines(lines ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if equalLines(e.lines, lines) {
		return
	}
	e.lines = lines
	e.dirty = true
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Lines returns the element's text.
func (e *Element) Lines() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

// Opacity returns the current opacity in [0, 1].
func (e *Element) Opacity() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opacity
}

// Visible reports whether the element still needs drawing.
func (e *Element) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.finished && e.opacity > 0
}

// Dirty reports whether the element's image must be rendered again.
func (e *Element) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Render rasterises the element as premultiplied RGBA. Fill elements render a single
// pixel meant to be stretched; text elements render their lines on a translucent box.
//
// Parameters:
//   - fonts: the UI faces
//
// Returns:
//   - *image.RGBA: the element image
func (e *Element) Render(fonts *text.Fonts) *image.RGBA {
	e.mu.Lock()
	lines := e.lines
	fill := e.fill
	e.dirty = false
	e.mu.Unlock()

	if e.Anchor == AnchorFill {
		img := image.NewRGBA(image.Rect(0, 0, 1, 1))
		img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
		return img
	}

	const pad = 14
	width := 0
	for _, l := range lines {
		width = max(width, fonts.Body.Measure(l))
	}
	height := len(lines)*fonts.Body.LineHeight() + 2*pad
	img := image.NewRGBA(image.Rect(0, 0, width+2*pad, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	fonts.Body.DrawLines(img, pad, pad, lines, color.RGBA{255, 255, 255, 255})
	return img
}

// HUD owns the instructions banner and the loading screen.
type HUD struct {
	mu           *sync.Mutex
	instructions *Element
	backdrop     *Element
	loading      *Element
	settled      bool
}

// New creates a HUD with the instructions banner already counting down and the loading
// screen waiting for total loads.
//
// Parameters:
//   - total: the number of exhibits being loaded
//
// Returns:
//   - *HUD: the new HUD
func New(total int) *HUD {
	h := &HUD{
		mu:           &sync.Mutex{},
		instructions: newElement("hud/instructions", AnchorBottom, InstructionsText),
		backdrop:     newElement("hud/loading-backdrop", AnchorFill),
		loading:      newElement("hud/loading", AnchorCenter, loadingLine(0, total)),
	}
	h.instructions.fade = holdThenFade(InstructionsHold, InstructionsFade)
	return h
}

func loadingLine(settled, total int) string {
	return fmt.Sprintf("Loading exhibits… %d/%d", settled, total)
}

// SetProgress updates the loading screen. Once every load has settled the screen holds
// for a second and fades out; failures are reported while it fades.
//
// Parameters:
//   - settled: loads finished so far, successful or not
//   - total: loads expected
//   - failed: loads that failed
func (h *HUD) SetProgress(settled, total, failed int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.settled {
		return
	}
	if settled < total {
		h.loading.setLines(loadingLine(settled, total))
		return
	}

	h.settled = true
	if failed > 0 {
		h.loading.setLines(loadingLine(settled, total), fmt.Sprintf("%d exhibit(s) unavailable", failed))
	} else {
		h.loading.setLines(loadingLine(settled, total))
	}
	for _, e := range []*Element{h.backdrop, h.loading} {
		e.mu.Lock()
		e.fade = holdThenFade(LoadingHold, LoadingFade)
		e.mu.Unlock()
	}
}

// Tick advances every fade.
//
// Parameters:
//   - dt: elapsed seconds
func (h *HUD) Tick(dt float32) {
	h.instructions.tick(dt)
	h.backdrop.tick(dt)
	h.loading.tick(dt)
}

// Loading reports whether the loading screen is still up.
func (h *HUD) Loading() bool {
	return h.loading.Visible()
}

// Instructions returns the instructions banner.
func (h *HUD) Instructions() *Element {
	return h.instructions
}

// Elements returns every element in draw order.
func (h *HUD) Elements() []*Element {
	return []*Element{h.instructions, h.backdrop, h.loading}
}
