package exhibit

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-museum/engine/loader"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/Carmen-Shannon/oxy-museum/museum/config"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func box(sx, sy, sz float32, offset mgl32.Vec3) *model.Mesh {
	var vertices []model.GPUVertex
	for _, x := range []float32{0, sx} {
		for _, y := range []float32{0, sy} {
			for _, z := range []float32{0, sz} {
				vertices = append(vertices, model.GPUVertex{Position: [3]float32{x + offset[0], y + offset[1], z + offset[2]}})
			}
		}
	}
	return model.NewMesh("box", vertices, []uint32{0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6})
}

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-4 }

func drainUntilSettled(t *testing.T, l *Loader, want int) []*Exhibit {
	t.Helper()
	var loaded []*Exhibit
	deadline := time.Now().Add(5 * time.Second)
	for l.Registry().Settled() < want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d settled loads, got %d", want, l.Registry().Settled())
		}
		loaded = append(loaded, l.Drain()...)
		time.Sleep(5 * time.Millisecond)
	}
	return loaded
}

func TestPlaceCentresScalesAndPositions(t *testing.T) {
	d := config.Descriptor{Title: "Vase", Model: "vase.stl", Side: config.SideLeft, Position: 2, XOffset: -8}
	e, err := Place(0, d, box(4, 1, 2, mgl32.Vec3{10, 10, 10}), 8)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c := e.Mesh.Center(); !near(c.Len(), 0) {
		t.Fatalf("expected mesh centred on origin, got %v", c)
	}
	if s := e.Object.Scale(); !near(s[0], 0.5) || !near(s[1], 0.5) || !near(s[2], 0.5) {
		t.Fatalf("expected uniform scale 0.5, got %v", s)
	}
	if p := e.WorldPosition(); p != (mgl32.Vec3{-8, 1.5, -21}) {
		t.Fatalf("expected position (-8,1.5,-21), got %v", p)
	}
	if e.Object.Material() != Material || e.Object.MeshKey() != MeshKey(0, "vase.stl") {
		t.Fatalf("unexpected material or mesh key")
	}
}

func TestPlaceRejectsDegenerateMesh(t *testing.T) {
	d := config.Descriptor{Title: "Flat", Model: "flat.stl"}
	_, err := Place(0, d, box(0, 0, 0, mgl32.Vec3{}), 8)
	var loadErr *AssetLoadError
	if !errors.As(err, &loadErr) || !errors.Is(err, model.ErrDegenerateMesh) {
		t.Fatalf("expected degenerate AssetLoadError, got %v", err)
	}
	if loadErr.Title != "Flat" {
		t.Fatalf("expected title Flat, got %q", loadErr.Title)
	}
}

func TestLoaderPartialFailure(t *testing.T) {
	ml := loader.NewLoader(
		loader.WithWorkers(2),
		loader.WithMesh("a.stl", box(1, 1, 1, mgl32.Vec3{})),
		loader.WithMesh("b.stl", box(2, 2, 2, mgl32.Vec3{})),
	)
	descriptors := []config.Descriptor{
		{Title: "A", Model: "a.stl", Side: config.SideLeft, Position: 0, XOffset: -8},
		{Title: "Missing", Model: "does-not-exist.stl", Side: config.SideRight, Position: 1, XOffset: 8},
		{Title: "Wrong", Model: "c.obj", Side: config.SideLeft, Position: 2, XOffset: -8},
		{Title: "B", Model: "b.stl", Side: config.SideRight, Position: 3, XOffset: 8},
	}
	reg := NewRegistry(len(descriptors))
	var seen []string
	l := NewLoader(ml, reg, WithOnLoad(func(e *Exhibit) error { seen = append(seen, e.Title()); return nil }))
	l.Start(descriptors)
	l.Start(descriptors)

	loaded := drainUntilSettled(t, l, len(descriptors))
	if len(loaded) != 2 || len(reg.All()) != 2 || len(seen) != 2 {
		t.Fatalf("expected 2 loaded exhibits, got %d/%d/%d", len(loaded), len(reg.All()), len(seen))
	}
	failures := reg.Failures()
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}
	var unsupported bool
	for _, f := range failures {
		if errors.Is(f, loader.ErrUnsupportedFormat) {
			unsupported = true
			if f.Title != "Wrong" {
				t.Fatalf("expected Wrong to fail as unsupported, got %q", f.Title)
			}
		}
	}
	if !unsupported {
		t.Fatal("expected an unsupported-format failure")
	}
	if !reg.Done() || l.Pending() != 0 {
		t.Fatalf("expected registry done and nothing pending")
	}
	for _, e := range reg.All() {
		if e.Title() == "B" && e.WorldPosition() != (mgl32.Vec3{8, 1.5, -29}) {
			t.Fatalf("expected B at (8,1.5,-29), got %v", e.WorldPosition())
		}
	}
}

func TestLoaderRecordsCallbackErrorsAsFailures(t *testing.T) {
	ml := loader.NewLoader(loader.WithMesh("a.stl", box(1, 1, 1, mgl32.Vec3{})))
	descriptors := []config.Descriptor{{Title: "A", Model: "a.stl", Side: config.SideLeft}}
	reg := NewRegistry(1)
	errUpload := errors.New("out of memory")
	l := NewLoader(ml, reg, WithOnLoad(func(*Exhibit) error { return errUpload }))
	l.Start(descriptors)

	if loaded := drainUntilSettled(t, l, 1); len(loaded) != 0 {
		t.Fatalf("expected no loaded exhibits, got %d", len(loaded))
	}
	if len(reg.All()) != 0 {
		t.Fatalf("expected nothing registered, got %d", len(reg.All()))
	}
	failures := reg.Failures()
	if len(failures) != 1 || !errors.Is(failures[0], errUpload) || failures[0].Title != "A" {
		t.Fatalf("expected the callback error recorded for A, got %v", failures)
	}
}

func TestSharedModelGetsIndependentMeshes(t *testing.T) {
	ml := loader.NewLoader(loader.WithMesh("a.stl", box(1, 1, 1, mgl32.Vec3{5, 0, 0})))
	descriptors := []config.Descriptor{
		{Title: "One", Model: "a.stl", Side: config.SideLeft},
		{Title: "Two", Model: "a.stl", Side: config.SideRight, Position: 1},
	}
	reg := NewRegistry(2)
	l := NewLoader(ml, reg)
	l.Start(descriptors)
	drainUntilSettled(t, l, 2)

	all := reg.All()
	if len(all) != 2 || all[0].MeshKey == all[1].MeshKey || all[0].Mesh == all[1].Mesh {
		t.Fatalf("expected distinct mesh keys and meshes")
	}
	if got := ml.Get("a.stl").Center(); !near(got[0], 5.5) {
		t.Fatalf("expected cached mesh untouched, got center %v", got)
	}
}
