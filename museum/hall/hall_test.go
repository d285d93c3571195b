package hall

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-museum/engine/game_object"
	"github.com/Carmen-Shannon/oxy-museum/engine/light"
	"github.com/Carmen-Shannon/oxy-museum/museum/config"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var room = config.RoomBounds{Length: 100, Width: 30, Height: 10}

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-4 }

func nearVec(a, b mgl32.Vec3) bool { return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2]) }

func byName(t *testing.T, objects []game_object.GameObject, name string) game_object.GameObject {
	t.Helper()
	for _, o := range objects {
		if o.Name() == name {
			return o
		}
	}
	t.Fatalf("expected object %q", name)
	return nil
}

func TestBuildShellAndLights(t *testing.T) {
	s, err := Build(room, config.DefaultDescriptors())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := len(s.Drawables()); got != 5 {
		t.Fatalf("expected 5 shell surfaces, got %d", got)
	}
	if got := len(s.Lights()); got != 11 {
		t.Fatalf("expected 1 directional + 10 spot lights, got %d", got)
	}
	if s.Background() != (mgl32.Vec3{}) {
		t.Fatalf("expected black background, got %v", s.Background())
	}
	if !nearVec(s.Ambient(), mgl32.Vec3{0.25098, 0.25098, 0.25098}.Mul(0.5)) {
		t.Fatalf("unexpected ambient %v", s.Ambient())
	}
}

func TestShellIsOffsetAndFacesInward(t *testing.T) {
	s, err := Build(room, nil)
	if err != nil {
		t.Fatal(err)
	}
	objects := s.Objects()

	back := byName(t, objects, "back-wall")
	if !nearVec(back.WorldPosition(), mgl32.Vec3{0, 5, -90}) {
		t.Fatalf("expected back wall at (0,5,-90), got %v", back.WorldPosition())
	}

	facing := map[string]mgl32.Vec3{
		"floor":      {0, 1, 0},
		"ceiling":    {0, -1, 0},
		"left-wall":  {1, 0, 0},
		"right-wall": {-1, 0, 0},
		"back-wall":  {0, 0, 1},
	}
	for name, want := range facing {
		n := byName(t, objects, name).ModelMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
		if !nearVec(n, want) {
			t.Fatalf("%s: expected normal %v, got %v", name, want, n)
		}
	}
}

func TestSpotlightsHangOverExhibits(t *testing.T) {
	d := []config.Descriptor{{Title: "A", Model: "a.stl", Side: config.SideRight, Position: 3, XOffset: 8}}
	s, err := Build(room, d, WithSpacing(8))
	if err != nil {
		t.Fatal(err)
	}
	var spot light.Light
	for _, l := range s.Lights() {
		if l.Type() == light.LightTypeSpot {
			spot = l
		}
	}
	if spot == nil {
		t.Fatal("expected a spotlight")
	}
	if !nearVec(spot.Position(), mgl32.Vec3{8, 9, -29}) {
		t.Fatalf("expected spot at (8,9,-29), got %v", spot.Position())
	}
	if !nearVec(spot.Direction(), mgl32.Vec3{0, -1, 0}) {
		t.Fatalf("expected spot aimed straight down, got %v", spot.Direction())
	}
	if spot.Range() != SpotRange || spot.Decay() != SpotDecay || spot.Intensity() != SpotIntensity {
		t.Fatalf("unexpected spot parameters")
	}
	if !near(spot.OuterCone(), math32.Cos(math32.Pi/6)) || !near(spot.InnerCone(), math32.Cos(math32.Pi/12)) {
		t.Fatalf("unexpected cone %v/%v", spot.InnerCone(), spot.OuterCone())
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	if _, err := Build(config.RoomBounds{Length: 10}, nil); err == nil {
		t.Fatal("expected error for degenerate room")
	}
	many := make([]config.Descriptor, light.MaxGPULights)
	if _, err := Build(room, many); err == nil {
		t.Fatal("expected error for too many exhibits")
	}
}

func TestMeshesMatchRoom(t *testing.T) {
	m := Meshes(room)
	if got := m[SideWallMesh].Size(); !near(got[0], 100) || !near(got[1], 10) {
		t.Fatalf("expected side wall 100x10, got %v", got)
	}
	if got := m[FloorMesh].Size(); !near(got[0], 30) || !near(got[1], 100) {
		t.Fatalf("expected floor 30x100, got %v", got)
	}
}
