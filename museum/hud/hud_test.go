package hud

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-museum/engine/text"
	"github.com/chewxy/math32"
)

func advance(h *HUD, seconds float32) {
	const step float32 = 0.05
	for t := float32(0); t < seconds-1e-4; t += step {
		h.Tick(step)
	}
}

func TestInstructionsHoldThenFade(t *testing.T) {
	h := New(1)
	banner := h.Instructions()

	advance(h, 4.5)
	if banner.Opacity() != 1 || !banner.Visible() {
		t.Fatalf("expected opaque banner at 4.5s, got %v", banner.Opacity())
	}
	advance(h, 1)
	if o := banner.Opacity(); math32.Abs(o-0.5) > 0.06 {
		t.Fatalf("expected half faded banner at 5.5s, got %v", o)
	}
	advance(h, 0.7)
	if banner.Visible() {
		t.Fatalf("expected banner gone after 6s, got opacity %v", banner.Opacity())
	}
}

func TestLoadingScreenWaitsForSettle(t *testing.T) {
	h := New(10)
	h.SetProgress(3, 10, 0)
	advance(h, 3)
	if !h.Loading() {
		t.Fatal("expected loading screen while loads are pending")
	}
	if got := h.loading.Lines(); len(got) != 1 || got[0] != "Loading exhibits… 3/10" {
		t.Fatalf("unexpected loading text %q", got)
	}

	h.SetProgress(10, 10, 2)
	if got := h.loading.Lines(); len(got) != 2 || got[1] != "2 exhibit(s) unavailable" {
		t.Fatalf("expected failure count, got %q", got)
	}
	advance(h, 0.9)
	if !h.Loading() || h.loading.Opacity() != 1 {
		t.Fatalf("expected loading screen held for 1s, got %v", h.loading.Opacity())
	}
	advance(h, 0.35)
	if o := h.loading.Opacity(); o <= 0 || o >= 1 {
		t.Fatalf("expected loading screen fading, got %v", o)
	}
	advance(h, 0.4)
	if h.Loading() {
		t.Fatal("expected loading screen gone after 1.5s")
	}

	h.SetProgress(0, 10, 0)
	if h.Loading() {
		t.Fatal("expected settled loading screen to stay down")
	}
}

func TestElementRender(t *testing.T) {
	fonts, err := text.NewFonts(18, 14, 11)
	if err != nil {
		t.Fatal(err)
	}
	h := New(2)
	banner := h.Instructions()
	if !banner.Dirty() {
		t.Fatal("expected new element dirty")
	}
	img := banner.Render(fonts)
	if img.Bounds().Dx() <= fonts.Body.Measure(InstructionsText) {
		t.Fatalf("expected banner wider than its text, got %v", img.Bounds())
	}
	if banner.Dirty() {
		t.Fatal("expected element clean after render")
	}
	if b := h.backdrop.Render(fonts).Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("expected 1x1 backdrop, got %v", b)
	}
}
