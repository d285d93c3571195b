package panel

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-museum/engine/game_object"
	"github.com/Carmen-Shannon/oxy-museum/engine/text"
	"github.com/Carmen-Shannon/oxy-museum/museum/overlay"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-5 }

func centre(x0, y0, x1, y1 int) (int, int) { return (x0 + x1) / 2, (y0 + y1) / 2 }

func placed(p *Panel, x, y float32, interactive bool) {
	p.SetPlacement(overlay.Placement{Visible: true, X: x, Y: y, Opacity: 0.8, Interactive: interactive, Distance: 1})
}

func TestToggleLabel(t *testing.T) {
	p := New("Vase", "Old.", "", nil, WithOpener(nil))
	if p.ToggleLabel() != ShowLabel || p.Expanded() {
		t.Fatalf("expected collapsed panel, got %q", p.ToggleLabel())
	}
	p.Toggle()
	if p.ToggleLabel() != HideLabel || !p.Expanded() {
		t.Fatalf("expected expanded panel, got %q", p.ToggleLabel())
	}
	p.Toggle()
	if p.ToggleLabel() != "Show Description ▼" {
		t.Fatalf("expected %q, got %q", ShowLabel, p.ToggleLabel())
	}
}

func TestHitTestButtons(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want Action
	}{
		{"video", 175, 80, ActionVideo},
		{"toggle", 50, 150, ActionToggle},
		{"up", 299, 150, ActionRotateUp},
		{"down", 299, 210, ActionRotateDown},
		{"left", 270, 180, ActionRotateLeft},
		{"right", 326, 180, ActionRotateRight},
		{"title", 100, 20, ActionNone},
		{"outside", 400, 20, ActionNone},
	}
	for _, tt := range tests {
		if got := HitTest(tt.x, tt.y); got != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestRotationButtonsStepModel(t *testing.T) {
	obj := game_object.NewGameObject()
	p := New("Armor", "", "", obj, WithOpener(nil))
	layer := NewLayer()
	layer.Add(p)
	placed(p, 100, 50, true)

	lx, ly := centre(leftBox.Min.X, leftBox.Min.Y, leftBox.Max.X, leftBox.Max.Y)
	for i := 0; i < 4; i++ {
		if !layer.InterceptPointerDown(float32(100+lx), float32(50+ly)) {
			t.Fatalf("expected click %d consumed", i)
		}
	}
	if r := obj.Rotation(); !near(r[1], -0.4) || r[0] != 0 {
		t.Fatalf("expected rotation y -0.4, got %v", r)
	}

	ux, uy := centre(upBox.Min.X, upBox.Min.Y, upBox.Max.X, upBox.Max.Y)
	layer.InterceptPointerDown(float32(100+ux), float32(50+uy))
	dx, dy := centre(downBox.Min.X, downBox.Min.Y, downBox.Max.X, downBox.Max.Y)
	layer.InterceptPointerDown(float32(100+dx), float32(50+dy))
	layer.InterceptPointerDown(float32(100+dx), float32(50+dy))
	if r := obj.Rotation(); !near(r[0], 0.1) {
		t.Fatalf("expected rotation x 0.1, got %v", r)
	}
}

func TestLayerIgnoresFadedAndHiddenPanels(t *testing.T) {
	obj := game_object.NewGameObject()
	p := New("Lamp", "", "", obj, WithOpener(nil))
	layer := NewLayer()
	layer.Add(p)

	if layer.InterceptPointerDown(150, 150) {
		t.Fatal("expected hidden panel to let the press through")
	}
	placed(p, 0, 0, false)
	if layer.InterceptPointerDown(270, 180) {
		t.Fatal("expected faded panel to let the press through")
	}
	placed(p, 0, 0, true)
	if !layer.InterceptPointerDown(100, 20) {
		t.Fatal("expected press on panel body to be consumed")
	}
	if layer.OverButton(100, 20) || !layer.OverButton(270, 180) {
		t.Fatal("expected hand cursor only over buttons")
	}
	if obj.Rotation() != (mgl32.Vec3{}) {
		t.Fatalf("expected no rotation, got %v", obj.Rotation())
	}
}

func TestVideoClickOpensEmbedURL(t *testing.T) {
	opened := make(chan string, 1)
	p := New("Chair", "", "https://www.youtube.com/embed/abc", nil, WithOpener(func(url string) error {
		opened <- url
		return nil
	}))
	placed(p, 0, 0, true)
	p.Apply(p.ActionAt(175, 80))

	select {
	case url := <-opened:
		if url != "https://www.youtube.com/embed/abc" {
			t.Fatalf("expected embed url, got %q", url)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected the opener to be called")
	}
}

func TestVisibleOrdersBackToFront(t *testing.T) {
	front, back, hidden := New("front", "", "", nil), New("back", "", "", nil), New("hidden", "", "", nil)
	front.SetPlacement(overlay.Placement{Visible: true, Distance: 1})
	back.SetPlacement(overlay.Placement{Visible: true, Distance: 4})
	layer := NewLayer()
	layer.Add(front)
	layer.Add(hidden)
	layer.Add(back)

	got := layer.Visible()
	if len(got) != 2 || got[0] != back || got[1] != front {
		t.Fatalf("expected [back front], got %d panels", len(got))
	}
}

func TestRenderGrowsWhenExpanded(t *testing.T) {
	fonts, err := text.NewFonts(18, 14, 11)
	if err != nil {
		t.Fatal(err)
	}
	p := New("Car", "Scale model of an eco-friendly vehicle design proposing alternative energy solutions.", "https://example.com/v", nil)
	if !p.Dirty() {
		t.Fatal("expected new panel to be dirty")
	}

	img := p.Render(fonts)
	if img.Bounds().Dx() != Width || img.Bounds().Dy() != Height {
		t.Fatalf("expected %dx%d, got %v", Width, Height, img.Bounds())
	}
	if p.Dirty() {
		t.Fatal("expected panel clean after render")
	}

	p.Toggle()
	if !p.Dirty() {
		t.Fatal("expected toggle to dirty the panel")
	}
	img = p.Render(fonts)
	if img.Bounds().Dy() <= Height {
		t.Fatalf("expected expanded panel taller than %d, got %d", Height, img.Bounds().Dy())
	}
	if _, h := p.Size(); h != img.Bounds().Dy() {
		t.Fatalf("expected size to follow render, got %d", h)
	}
}
