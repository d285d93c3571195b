// Package overlay projects exhibit positions to screen space and decides where, how
// opaque, and whether clickable each exhibit's panel is.
package overlay

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxDistance is the camera distance beyond which a panel is hidden.
	MaxDistance float32 = 5

	// InteractiveOpacity is the opacity above which a panel accepts clicks.
	InteractiveOpacity float32 = 0.5

	// SideOffset is how far to the side of the exhibit the panel is anchored, in world units.
	SideOffset float32 = 1.5

	// AnchorX and AnchorY shift the projected point from the panel's top-left corner to
	// its centre-left, matching a 350x240 panel.
	AnchorX float32 = 175
	AnchorY float32 = 120
)

// Placement is the projector's output for one panel.
type Placement struct {
	Visible     bool
	X, Y        float32 // top-left corner in pixels
	Opacity     float32
	Interactive bool
	Distance    float32
}

// View is the camera state the projector reads. camera.Camera satisfies it.
type View interface {
	Position() mgl32.Vec3
	Forward() mgl32.Vec3
	Up() mgl32.Vec3
	Project(world mgl32.Vec3) mgl32.Vec3
}

// Target receives a placement. panel.Panel satisfies it.
type Target interface {
	SetPlacement(p Placement)
}

// Subject pairs an exhibit's world position with the panel that follows it.
type Subject struct {
	Position mgl32.Vec3
	Target   Target
}

// Visibility maps a camera distance to panel opacity, visibility and interactivity.
//
// Parameters:
//   - distance: distance from the camera to the exhibit
//
// Returns:
//   - float32: opacity, max(0, 1 - distance/5)
//   - bool: visible, distance <= 5
//   - bool: interactive, opacity > 0.5
func Visibility(distance float32) (opacity float32, visible, interactive bool) {
	if distance > MaxDistance {
		return 0, false, false
	}
	opacity = math32.Max(0, 1-distance/MaxDistance)
	return opacity, true, opacity > InteractiveOpacity
}

// ToPixels converts normalized device coordinates to window pixels with the origin at the
// top-left corner and Y down.
//
// Parameters:
//   - ndc: the projected point
//   - width, height: the screen size in pixels
//
// Returns:
//   - float32, float32: the pixel position
func ToPixels(ndc mgl32.Vec3, width, height int) (float32, float32) {
	x := (ndc.X()*0.5 + 0.5) * float32(width)
	y := (-(ndc.Y() * 0.5) + 0.5) * float32(height)
	return x, y
}

// Projector computes panel placements for the current camera and screen size.
// Implements input.ResizeListener.
type Projector struct {
	mu     *sync.Mutex
	width  int
	height int
}

// NewProjector creates a Projector for a screen of the given size.
//
// Parameters:
//   - width, height: the screen size in pixels
//
// Returns:
//   - *Projector: the new projector
func NewProjector(width, height int) *Projector {
	return &Projector{
		mu:     &sync.Mutex{},
		width:  width,
		height: height,
	}
}

// OnResize updates the screen size used for pixel conversion.
func (p *Projector) OnResize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width, p.height = width, height
}

// Size returns the screen size in pixels.
func (p *Projector) Size() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

// Place computes the placement of the panel for an exhibit at world position pos.
// Visibility depends only on the distance between the camera and the exhibit.
//
// Parameters:
//   - view: the camera, already updated for this frame
//   - pos: the exhibit's world position
//
// Returns:
//   - Placement: where and how to draw the panel
func (p *Projector) Place(view View, pos mgl32.Vec3) Placement {
	eye := view.Position()
	distance := eye.Sub(pos).Len()
	opacity, visible, interactive := Visibility(distance)
	if !visible {
		return Placement{Distance: distance}
	}

	forward := view.Forward()
	side := view.Up().Cross(forward)
	if side.Len() > 0 {
		side = side.Normalize().Mul(SideOffset)
	}
	w, h := p.Size()
	x, y := ToPixels(view.Project(pos.Add(side)), w, h)
	return Placement{
		Visible:     true,
		X:           x - AnchorX,
		Y:           y - AnchorY,
		Opacity:     opacity,
		Interactive: interactive,
		Distance:    distance,
	}
}

// Project places every subject's panel.
//
// Parameters:
//   - view: the camera, already updated for this frame
//   - subjects: the exhibits and their panels
func (p *Projector) Project(view View, subjects []Subject) {
	for _, s := range subjects {
		if s.Target == nil {
			continue
		}
		s.Target.SetPlacement(p.Place(view, s.Position))
	}
}
