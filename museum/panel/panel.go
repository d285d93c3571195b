// Package panel implements the per-exhibit information panels: title, video link,
// collapsible description and stepped rotation buttons.
package panel

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/engine/text"
	"github.com/Carmen-Shannon/oxy-museum/museum/overlay"
)

// Panel size in pixels while collapsed. Expanding the description grows it downward.
const (
	Width  = 350
	Height = 240
)

// RotationStep is the angle one rotation button click applies, in radians.
const RotationStep float32 = 0.1

// Toggle button labels.
const (
	ShowLabel = "Show Description ▼"
	HideLabel = "Hide Description ▲"
)

// Action is what a click on the panel does.
type Action int

const (
	ActionNone Action = iota
	ActionVideo
	ActionToggle
	ActionRotateUp
	ActionRotateDown
	ActionRotateLeft
	ActionRotateRight
)

// Rotatable is the model a panel turns. game_object.GameObject satisfies it.
type Rotatable interface {
	Rotate(dx, dy, dz float32)
}

// Opener opens a URL outside the application.
type Opener func(url string) error

const padding = 12

var (
	titleBox  = image.Rect(padding, 8, Width-padding, 36)
	videoBox  = image.Rect(padding, 40, Width-padding, 134)
	toggleBox = image.Rect(padding, 140, 240, 166)

	upBox    = image.Rect(286, 140, 312, 166)
	leftBox  = image.Rect(258, 168, 284, 194)
	rightBox = image.Rect(314, 168, 340, 194)
	downBox  = image.Rect(286, 196, 312, 222)

	descriptionTop = 230
)

var (
	panelBackground  = color.RGBA{0, 0, 0, 204}
	videoBackground  = color.RGBA{24, 24, 24, 255}
	buttonBackground = color.RGBA{51, 51, 51, 51}
	textColor        = color.RGBA{255, 255, 255, 255}
	linkColor        = color.RGBA{160, 200, 255, 255}
)

// Panel is the information panel of one exhibit.
type Panel struct {
	mu          *sync.Mutex
	title       string
	description string
	videoURL    string
	target      Rotatable
	opener      Opener

	expanded  bool
	dirty     bool
	height    int
	placement overlay.Placement
}

// New creates a collapsed panel.
//
// Parameters:
//   - title: the exhibit title
//   - description: the exhibit description
//   - videoURL: the embed URL, may be empty
//   - target: the model the rotation buttons turn
//   - options: functional options to configure the panel
//
// Returns:
//   - *Panel: the new panel
func New(title, description, videoURL string, target Rotatable, options ...PanelOption) *Panel {
	p := &Panel{
		mu:          &sync.Mutex{},
		title:       title,
		description: description,
		videoURL:    videoURL,
		target:      target,
		opener:      DefaultOpener,
		dirty:       true,
		height:      Height,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Title returns the exhibit title.
func (p *Panel) Title() string {
	return p.title
}

// VideoURL returns the embed URL shown in the video area.
func (p *Panel) VideoURL() string {
	return p.videoURL
}

// Expanded reports whether the description is shown.
func (p *Panel) Expanded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expanded
}

// ToggleLabel returns the label of the description toggle button.
func (p *Panel) ToggleLabel() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return toggleLabel(p.expanded)
}

func toggleLabel(expanded bool) string {
	if expanded {
		return HideLabel
	}
	return ShowLabel
}

// Toggle shows or hides the description.
func (p *Panel) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expanded = !p.expanded
	p.dirty = true
}

// SetPlacement stores the projector's output for this frame.
func (p *Panel) SetPlacement(pl overlay.Placement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.placement = pl
}

// Placement returns the last placement.
func (p *Panel) Placement() overlay.Placement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.placement
}

// Size returns the panel size in pixels as of the last render.
func (p *Panel) Size() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Width, p.height
}

// Dirty reports whether the panel must be rendered again.
func (p *Panel) Dirty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dirty
}

// Contains reports whether the screen point lies on the panel at its current placement.
//
// Parameters:
//   - x, y: screen position in pixels
//
// Returns:
//   - bool: true if the point is on a visible panel
func (p *Panel) Contains(x, y float32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pl := p.placement
	return pl.Visible &&
		x >= pl.X && x < pl.X+Width &&
		y >= pl.Y && y < pl.Y+float32(p.height)
}

// HitTest returns the action under a point given in panel-local pixels.
//
// Parameters:
//   - x, y: position relative to the panel's top-left corner
//
// Returns:
//   - Action: the button under the point, or ActionNone
func HitTest(x, y int) Action {
	pt := image.Pt(x, y)
	switch {
	case pt.In(videoBox):
		return ActionVideo
	case pt.In(toggleBox):
		return ActionToggle
	case pt.In(upBox):
		return ActionRotateUp
	case pt.In(downBox):
		return ActionRotateDown
	case pt.In(leftBox):
		return ActionRotateLeft
	case pt.In(rightBox):
		return ActionRotateRight
	}
	return ActionNone
}

// ActionAt returns the action under a screen point, taking the placement into account.
//
// Parameters:
//   - x, y: screen position in pixels
//
// Returns:
//   - Action: the button under the point, or ActionNone when off the panel
func (p *Panel) ActionAt(x, y float32) Action {
	if !p.Contains(x, y) {
		return ActionNone
	}
	pl := p.Placement()
	return HitTest(int(x-pl.X), int(y-pl.Y))
}

// Apply performs an action.
//
// Parameters:
//   - a: the action
func (p *Panel) Apply(a Action) {
	switch a {
	case ActionVideo:
		p.openVideo()
	case ActionToggle:
		p.Toggle()
	case ActionRotateUp:
		p.rotate(-RotationStep, 0)
	case ActionRotateDown:
		p.rotate(RotationStep, 0)
	case ActionRotateLeft:
		p.rotate(0, -RotationStep)
	case ActionRotateRight:
		p.rotate(0, RotationStep)
	}
}

func (p *Panel) rotate(dx, dy float32) {
	if p.target != nil {
		p.target.Rotate(dx, dy, 0)
	}
}

// openVideo hands the URL to the opener off the calling thread.
func (p *Panel) openVideo() {
	if p.videoURL == "" || p.opener == nil {
		return
	}
	url, open := p.videoURL, p.opener
	go func() {
		if err := open(url); err != nil {
			log.Printf("[panel] failed to open %s: %v", url, err)
		}
	}()
}

// Render rasterises the panel. The result is premultiplied RGBA sized to the panel,
// taller than Height while the description is expanded.
//
// Parameters:
//   - fonts: the UI faces
//
// Returns:
//   - *image.RGBA: the panel image
func (p *Panel) Render(fonts *text.Fonts) *image.RGBA {
	p.mu.Lock()
	expanded := p.expanded
	p.mu.Unlock()

	var lines []string
	height := Height
	if expanded {
		lines = fonts.Body.Wrap(p.description, Width-2*padding)
		height = descriptionTop + len(lines)*fonts.Body.LineHeight() + padding
	}

	img := image.NewRGBA(image.Rect(0, 0, Width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(panelBackground), image.Point{}, draw.Src)

	title := fonts.Title.Wrap(p.title, titleBox.Dx())
	if len(title) > 1 {
		title = title[:1]
	}
	fonts.Title.DrawLines(img, titleBox.Min.X, titleBox.Min.Y, title, textColor)

	draw.Draw(img, videoBox, image.NewUniform(videoBackground), image.Point{}, draw.Src)
	if p.videoURL != "" {
		label := "▶ Watch video"
		fonts.Body.Draw(img, videoBox.Min.X+(videoBox.Dx()-fonts.Body.Measure(label))/2,
			videoBox.Min.Y+videoBox.Dy()/2, label, textColor)
		url := fonts.Caption.Wrap(p.videoURL, videoBox.Dx()-8)
		if len(url) > 0 {
			fonts.Caption.Draw(img, videoBox.Min.X+4, videoBox.Max.Y-6, url[0], linkColor)
		}
	}

	drawButton(img, fonts.Body, toggleBox, toggleLabel(expanded))
	drawButton(img, fonts.Body, upBox, "↑")
	drawButton(img, fonts.Body, downBox, "↓")
	drawButton(img, fonts.Body, leftBox, "←")
	drawButton(img, fonts.Body, rightBox, "→")

	if expanded {
		fonts.Body.DrawLines(img, padding, descriptionTop, lines, textColor)
	}

	p.mu.Lock()
	p.height = height
	p.dirty = false
	p.mu.Unlock()
	return img
}

func drawButton(img *image.RGBA, face *text.Face, box image.Rectangle, label string) {
	draw.Draw(img, box, image.NewUniform(buttonBackground), image.Point{}, draw.Over)
	x := box.Min.X + (box.Dx()-face.Measure(label))/2
	y := box.Min.Y + (box.Dy()+face.Ascent())/2 - 1
	face.Draw(img, x, y, label, textColor)
}
