package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-museum/engine/camera"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := Default()
	if cfg.Title != want.Title || cfg.Width != want.Width || cfg.Height != want.Height {
		t.Fatalf("expected window defaults %+v, got %+v", want, cfg)
	}
	if cfg.Room() != (RoomBounds{Length: 100, Width: 30, Height: 10}) {
		t.Fatalf("expected default room, got %+v", cfg.Room())
	}
	if cfg.Spacing != 8 || cfg.Easing != EasingFixed || !cfg.VSync {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if _, ok := cfg.NavigationEasing().(camera.FixedEasing); !ok {
		t.Fatalf("expected fixed easing, got %T", cfg.NavigationEasing())
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MUSEUM_ROOM_LENGTH", "60")
	t.Setenv("MUSEUM_EASING", "decay")
	t.Setenv("MUSEUM_EASING_RATE", "4")
	t.Setenv("MUSEUM_LOAD_WORKERS", "3")
	t.Setenv("MUSEUM_LOOK_SENSITIVITY", "0.01")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.RoomLength != 60 {
		t.Fatalf("expected length 60, got %v", cfg.RoomLength)
	}
	e, ok := cfg.NavigationEasing().(camera.DecayEasing)
	if !ok || e.Rate != 4 {
		t.Fatalf("expected decay easing with rate 4, got %#v", cfg.NavigationEasing())
	}
	if cfg.LookSensitivity != 0.01 || cfg.MoveSpeed != camera.DefaultScrollSpeed {
		t.Fatalf("expected look 0.01 and default move speed, got %v/%v", cfg.LookSensitivity, cfg.MoveSpeed)
	}
	if cfg.Workers() != 3 {
		t.Fatalf("expected 3 workers, got %d", cfg.Workers())
	}
}

func TestLoadRejectsUnknownEasing(t *testing.T) {
	t.Setenv("MUSEUM_EASING", "bouncy")
	_, err := Load()
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "MUSEUM_EASING" {
		t.Fatalf("expected easing validation error, got %v", err)
	}
}

func TestLoadWindowSizeLimits(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.MinWidth != 600 || cfg.MinHeight != 400 || cfg.MaxWidth != 0 || cfg.MaxHeight != 0 {
		t.Fatalf("expected 600x400 minimum and no maximum, got %+v", cfg)
	}

	t.Setenv("MUSEUM_MAX_WIDTH", "500")
	_, err = Load()
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "MUSEUM_MAX_*" {
		t.Fatalf("expected maximum below minimum rejected, got %v", err)
	}
}

func TestLoadWrapsMalformedValue(t *testing.T) {
	t.Setenv("MUSEUM_WIDTH", "wide")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNavigationBoundsFromRoom(t *testing.T) {
	b := NavigationBounds(RoomBounds{Length: 100, Width: 30, Height: 10})
	if b.Min[0] != -12 || b.Max[0] != 10 || b.Min[2] != -85 || b.Max[2] != 5 {
		t.Fatalf("unexpected bounds %+v", b)
	}
}

func TestDefaultDescriptors(t *testing.T) {
	d := DefaultDescriptors()
	if len(d) != 10 {
		t.Fatalf("expected 10 exhibits, got %d", len(d))
	}
	seen := make(map[int]bool)
	for _, e := range d {
		seen[e.Position] = true
		if e.Side == SideLeft && (e.XOffset != -8 || e.Position%2 != 0) {
			t.Fatalf("unexpected left exhibit %+v", e)
		}
		if e.Side == SideRight && (e.XOffset != 8 || e.Position%2 != 1) {
			t.Fatalf("unexpected right exhibit %+v", e)
		}
	}
	if len(seen) != 10 {
		t.Fatalf("expected distinct positions, got %v", seen)
	}
	if got := d[0].VideoURL(Default().VideoEmbedURL); got != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("unexpected video url %q", got)
	}
}

func TestParseDescriptorsValidation(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"missing title", "- {model: a.stl, side: left, position: 0}", "title"},
		{"missing model", "- {title: A, side: left, position: 0}", "model"},
		{"bad side", "- {title: A, model: a.stl, side: up, position: 0}", "side"},
		{"negative position", "- {title: A, model: a.stl, side: right, position: -1}", "position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDescriptors([]byte(tt.doc))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field || verr.Index != 0 {
				t.Fatalf("expected field %q at 0, got %q at %d", tt.field, verr.Field, verr.Index)
			}
		})
	}
}

func TestLoadDescriptorsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exhibits.yaml")
	doc := "- {title: Bust, model: bust.stl, side: right, position: 2, xOffset: 8, videoId: abc}\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	d, err := LoadDescriptors(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(d) != 1 || d[0].Title != "Bust" || d[0].XOffset != 8 || d[0].VideoID != "abc" {
		t.Fatalf("unexpected descriptors %+v", d)
	}
}
