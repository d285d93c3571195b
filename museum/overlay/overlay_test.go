package overlay

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-museum/engine/camera"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-3 }

type recorder struct{ got Placement }

func (r *recorder) SetPlacement(p Placement) { r.got = p }

func newView(t *testing.T) (camera.NavigationController, camera.Camera) {
	t.Helper()
	nc := camera.NewNavigationController()
	return nc, camera.NewCamera(camera.WithAspect(1280.0/720.0), camera.WithController(nc))
}

func TestVisibility(t *testing.T) {
	tests := []struct {
		distance    float32
		opacity     float32
		visible     bool
		interactive bool
	}{
		{0, 1, true, true},
		{2, 0.6, true, true},
		{2.45, 0.51, true, true},
		{2.5, 0.5, true, false},
		{2.55, 0.49, true, false},
		{4, 0.2, true, false},
		{5, 0, true, false},
		{5.01, 0, false, false},
		{40, 0, false, false},
	}
	for _, tt := range tests {
		opacity, visible, interactive := Visibility(tt.distance)
		if !near(opacity, tt.opacity) || visible != tt.visible || interactive != tt.interactive {
			t.Fatalf("Visibility(%v): expected (%v,%v,%v), got (%v,%v,%v)",
				tt.distance, tt.opacity, tt.visible, tt.interactive, opacity, visible, interactive)
		}
	}
}

func TestToPixels(t *testing.T) {
	x, y := ToPixels(mgl32.Vec3{0, 0, 0.5}, 1280, 720)
	if x != 640 || y != 360 {
		t.Fatalf("expected centre (640,360), got (%v,%v)", x, y)
	}
	x, y = ToPixels(mgl32.Vec3{-1, 1, 0}, 1280, 720)
	if x != 0 || y != 0 {
		t.Fatalf("expected top-left (0,0), got (%v,%v)", x, y)
	}
	x, y = ToPixels(mgl32.Vec3{1, -1, 0}, 1280, 720)
	if x != 1280 || y != 720 {
		t.Fatalf("expected bottom-right (1280,720), got (%v,%v)", x, y)
	}
}

func TestPlaceHidesDistantExhibits(t *testing.T) {
	_, cam := newView(t)
	p := NewProjector(1280, 720)
	got := p.Place(cam, mgl32.Vec3{-8, 1.5, -5})
	if got.Visible || got.Opacity != 0 || got.Interactive {
		t.Fatalf("expected hidden placement, got %+v", got)
	}
	if got.Distance <= MaxDistance {
		t.Fatalf("expected distance beyond %v, got %v", MaxDistance, got.Distance)
	}
}

func TestPlaceNearExhibitOffsetToTheSide(t *testing.T) {
	_, cam := newView(t)
	p := NewProjector(1280, 720)

	got := p.Place(cam, mgl32.Vec3{0, 1.6, 3})
	if !got.Visible || !got.Interactive || !near(got.Opacity, 0.6) {
		t.Fatalf("expected visible interactive panel at opacity 0.6, got %+v", got)
	}
	// cross(up, forward) points to -X when looking down -Z.
	if got.X+AnchorX >= 640 {
		t.Fatalf("expected panel anchored left of centre, got x %v", got.X)
	}
	if !near(got.Y, 360-AnchorY) {
		t.Fatalf("expected y %v, got %v", 360-AnchorY, got.Y)
	}
}

func TestPlaceShowsExhibitsLevelWithTheVisitor(t *testing.T) {
	_, cam := newView(t)
	p := NewProjector(1280, 720)

	got := p.Place(cam, cam.Position())
	if !got.Visible || !got.Interactive || got.Opacity != 1 || got.Distance != 0 {
		t.Fatalf("expected fully opaque panel at distance 0, got %+v", got)
	}

	got = p.Place(cam, cam.Position().Add(mgl32.Vec3{-3, 0, 0}))
	if !got.Visible || got.Interactive || !near(got.Opacity, 0.4) {
		t.Fatalf("expected visible panel at opacity 0.4 beside the visitor, got %+v", got)
	}
}

func TestProjectFollowsResize(t *testing.T) {
	_, cam := newView(t)
	p := NewProjector(1280, 720)
	p.OnResize(640, 360)

	r := &recorder{}
	p.Project(cam, []Subject{{Position: mgl32.Vec3{0, 1.6, 3}, Target: r}, {Position: mgl32.Vec3{}}})
	if !r.got.Visible || !near(r.got.Y, 180-AnchorY) {
		t.Fatalf("expected placement against resized screen, got %+v", r.got)
	}
}
