package app

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-museum/common"
	"github.com/Carmen-Shannon/oxy-museum/engine/frame"
	"github.com/Carmen-Shannon/oxy-museum/engine/input"
	"github.com/Carmen-Shannon/oxy-museum/engine/light"
	"github.com/Carmen-Shannon/oxy-museum/engine/loader"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/Carmen-Shannon/oxy-museum/museum/config"
	"github.com/Carmen-Shannon/oxy-museum/museum/hall"
	"github.com/chewxy/math32"
)

type fakeRenderer struct {
	mu         sync.Mutex
	rejectMesh string
	meshes     map[string]*model.Mesh
	textures   map[string]common.TextureStagingData
	frames     []*frame.Frame
	width      int
	height     int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		meshes:   make(map[string]*model.Mesh),
		textures: make(map[string]common.TextureStagingData),
	}
}

func (r *fakeRenderer) UploadMesh(key string, mesh *model.Mesh) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejectMesh != "" && strings.HasPrefix(key, r.rejectMesh) {
		return errors.New("buffer allocation failed")
	}
	r.meshes[key] = mesh
	return nil
}

func (r *fakeRenderer) UploadTexture(key string, data common.TextureStagingData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textures[key] = data
	return nil
}

func (r *fakeRenderer) Render(f *frame.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
	return nil
}

func (r *fakeRenderer) Resize(width, height int) {
	r.width, r.height = width, height
}

func cube() *model.Mesh {
	var vertices []model.GPUVertex
	for _, x := range []float32{0, 1} {
		for _, y := range []float32{0, 1} {
			for _, z := range []float32{0, 1} {
				vertices = append(vertices, model.GPUVertex{Position: [3]float32{x, y, z}})
			}
		}
	}
	return model.NewMesh("cube", vertices, []uint32{0, 1, 2, 1, 3, 2, 4, 5, 6, 5, 7, 6})
}

var testDescriptors = []config.Descriptor{
	{Title: "Centrepiece", Description: "A cube.", VideoID: "abc", Model: "cube.stl", Side: config.SideLeft, Position: 0, XOffset: 0},
	{Title: "Lost", Model: "gone.stl", Side: config.SideRight, Position: 1, XOffset: 8},
}

func newTestApp(t *testing.T, options ...AppOption) (*AppState, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer()
	options = append([]AppOption{
		WithMeshLoader(loader.NewLoader(loader.WithMesh("cube.stl", cube()))),
		WithOpener(nil),
	}, options...)
	a, err := New(config.Default(), testDescriptors, r, options...)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return a, r
}

func waitSettled(t *testing.T, a *AppState) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !a.Registry().Done() {
		if time.Now().After(deadline) {
			t.Fatalf("expected loads to settle, got %d/%d", a.Registry().Settled(), a.Registry().Expected())
		}
		a.Tick(1.0 / 60)
		time.Sleep(2 * time.Millisecond)
	}
}

func ticks(a *AppState, n int) {
	for i := 0; i < n; i++ {
		a.Tick(1.0 / 60)
	}
}

func TestNewUploadsHallAndDrawsShell(t *testing.T) {
	a, r := newTestApp(t)
	for key := range hall.Meshes(config.Default().Room()) {
		if r.meshes[key] == nil {
			t.Fatalf("expected %s uploaded", key)
		}
	}

	a.Tick(1.0 / 60)
	f := a.Frame()
	if len(f.Draws) != 5 {
		t.Fatalf("expected 5 shell draws before loading, got %d", len(f.Draws))
	}
	if len(f.Lights) != light.LightBufferSize() {
		t.Fatalf("expected light buffer of %d bytes, got %d", light.LightBufferSize(), len(f.Lights))
	}
	if f.CameraPosition != a.Navigation().Position() {
		t.Fatalf("expected frame from the navigation pose")
	}
	if err := a.Render(); err != nil || len(r.frames) != 1 {
		t.Fatalf("expected one rendered frame, got %d (%v)", len(r.frames), err)
	}
}

func TestLoadingRegistersExhibitsAndReportsFailures(t *testing.T) {
	a, r := newTestApp(t)
	a.Start()
	waitSettled(t, a)

	if len(a.Registry().All()) != 1 || len(a.Registry().Failures()) != 1 {
		t.Fatalf("expected 1 loaded and 1 failed, got %d/%d", len(a.Registry().All()), len(a.Registry().Failures()))
	}
	e := a.Registry().All()[0]
	if r.meshes[e.MeshKey] == nil {
		t.Fatalf("expected exhibit mesh %s uploaded", e.MeshKey)
	}
	if got := len(a.Frame().Draws); got != 6 {
		t.Fatalf("expected 6 draws after loading, got %d", got)
	}
	if len(a.Panels().Panels()) != 1 {
		t.Fatalf("expected one panel, got %d", len(a.Panels().Panels()))
	}

	elements := a.HUD().Elements()
	lines := elements[len(elements)-1].Lines()
	if !strings.Contains(strings.Join(lines, "\n"), "1 exhibit(s) unavailable") {
		t.Fatalf("expected loading screen to report the failure, got %q", lines)
	}
	if !a.HUD().Loading() {
		t.Fatal("expected loading screen to hold after settling")
	}
	ticks(a, 120)
	if a.HUD().Loading() {
		t.Fatal("expected loading screen gone two seconds after settling")
	}
}

func TestUploadFailureCountsAsFailedLoad(t *testing.T) {
	a, r := newTestApp(t)
	r.mu.Lock()
	r.rejectMesh = "exhibit/"
	r.mu.Unlock()
	a.Start()
	waitSettled(t, a)

	if len(a.Registry().All()) != 0 || len(a.Registry().Failures()) != 2 {
		t.Fatalf("expected 0 loaded and 2 failed, got %d/%d", len(a.Registry().All()), len(a.Registry().Failures()))
	}
	if len(a.Panels().Panels()) != 0 {
		t.Fatalf("expected no panels, got %d", len(a.Panels().Panels()))
	}
	if got := len(a.Frame().Draws); got != 5 {
		t.Fatalf("expected only the 5 shell draws, got %d", got)
	}
	elements := a.HUD().Elements()
	lines := elements[len(elements)-1].Lines()
	if !strings.Contains(strings.Join(lines, "\n"), "2 exhibit(s) unavailable") {
		t.Fatalf("expected loading screen to report both failures, got %q", lines)
	}
}

func TestWalkingUpShowsPanelAndButtonsRotate(t *testing.T) {
	var cursor []bool
	a, r := newTestApp(t, WithCursor(func(hand bool) { cursor = append(cursor, hand) }))
	a.Start()
	waitSettled(t, a)

	router := input.NewRouter(a.Input(), input.WithInterceptor(a.Panels()))
	ticks(a, 5)
	if p := a.Panels().Panels()[0]; p.Placement().Visible {
		t.Fatalf("expected panel hidden from the entrance, got %+v", p.Placement())
	}

	for i := 0; i < 16; i++ {
		router.OnScrollNotches(-1)
	}
	ticks(a, 300)

	p := a.Panels().Panels()[0]
	pl := p.Placement()
	if !pl.Visible || !pl.Interactive || math32.Abs(pl.Opacity-0.6) > 0.01 {
		t.Fatalf("expected interactive panel at opacity 0.6, got %+v", pl)
	}
	if _, ok := r.textures["panel/0"]; !ok {
		t.Fatal("expected panel texture uploaded")
	}

	var quad *frame.OverlayQuad
	f := a.Frame()
	for i := range f.Overlays {
		if f.Overlays[i].TextureKey == "panel/0" {
			quad = &f.Overlays[i]
		}
	}
	if quad == nil || quad.X != pl.X || quad.Opacity != pl.Opacity || quad.Width != 350 {
		t.Fatalf("expected panel quad matching placement, got %+v", quad)
	}

	x, y := pl.X+271, pl.Y+181
	router.OnPointerMove(x, y)
	if len(cursor) != 1 || !cursor[0] {
		t.Fatalf("expected hand cursor over a button, got %v", cursor)
	}
	for i := 0; i < 4; i++ {
		router.OnPointerDown(x, y)
		router.OnPointerUp(x, y)
	}
	if a.Navigation().Dragging() {
		t.Fatal("expected button presses not to start a drag")
	}
	obj := a.Registry().All()[0].Object
	if r := obj.Rotation(); math32.Abs(r[1]+0.4) > 1e-5 {
		t.Fatalf("expected rotation y -0.4, got %v", r)
	}
}

func TestDragTurnsCamera(t *testing.T) {
	a, _ := newTestApp(t)
	router := input.NewRouter(a.Input())
	router.OnPointerDown(100, 100)
	router.OnPointerMove(200, 100)
	router.OnPointerUp(200, 100)
	if yaw := a.Navigation().Yaw(); math32.Abs(yaw+0.5) > 1e-5 {
		t.Fatalf("expected yaw -0.5, got %v", yaw)
	}
	ticks(a, 1)
	if fwd := a.Camera().Forward(); fwd[0] <= 0 {
		t.Fatalf("expected camera turned right, got forward %v", fwd)
	}
}

func TestNavigationSpeedsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.LookSensitivity = 0.01
	cfg.MoveSpeed = 0.01
	a, err := New(cfg, testDescriptors, newFakeRenderer(), WithMeshLoader(loader.NewLoader()), WithOpener(nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	router := input.NewRouter(a.Input())
	router.OnPointerDown(100, 100)
	router.OnPointerMove(200, 100)
	router.OnPointerUp(200, 100)
	if yaw := a.Navigation().Yaw(); math32.Abs(yaw+1) > 1e-5 {
		t.Fatalf("expected yaw -1, got %v", yaw)
	}
}

func TestResizeUpdatesCameraAndRenderer(t *testing.T) {
	a, r := newTestApp(t)
	a.OnResize(640, 480)
	if r.width != 640 || r.height != 480 {
		t.Fatalf("expected renderer resized, got %dx%d", r.width, r.height)
	}
	if math32.Abs(a.Camera().Aspect()-640.0/480.0) > 1e-6 {
		t.Fatalf("expected aspect 4:3, got %v", a.Camera().Aspect())
	}
	a.Resize(0, 0)
	if r.width != 640 {
		t.Fatal("expected zero size ignored")
	}
}

func TestUIScaleLaysOutOverlaysInWindowCoordinates(t *testing.T) {
	a, r := newTestApp(t, WithUIScale(2))
	if w, h := a.projector.Size(); w != 640 || h != 360 {
		t.Fatalf("expected projector sized 640x360 in window coordinates, got %dx%d", w, h)
	}
	a.Tick(1.0 / 60)

	tex, ok := r.textures["hud/instructions"]
	if !ok {
		t.Fatal("expected instructions banner uploaded")
	}
	tw, th := float32(tex.Width), float32(tex.Height)
	var banner *frame.OverlayQuad
	f := a.Frame()
	for i := range f.Overlays {
		if f.Overlays[i].TextureKey == "hud/instructions" {
			banner = &f.Overlays[i]
		}
	}
	if banner == nil {
		t.Fatal("expected instructions banner in the frame")
	}
	if banner.Width != 2*tw || banner.Height != 2*th {
		t.Fatalf("expected banner drawn at twice its texture size, got %vx%v", banner.Width, banner.Height)
	}
	if banner.X != (1280-2*tw)/2 || banner.Y != 720-2*th-2*instructionsMargin {
		t.Fatalf("expected banner bottom-centred in framebuffer pixels, got (%v,%v)", banner.X, banner.Y)
	}

	a.Resize(1920, 1080)
	if w, h := a.projector.Size(); w != 960 || h != 540 {
		t.Fatalf("expected projector resized to 960x540, got %dx%d", w, h)
	}
}

func TestNewRequiresRenderer(t *testing.T) {
	if _, err := New(config.Default(), nil, nil); err == nil {
		t.Fatal("expected error without a renderer")
	}
}
