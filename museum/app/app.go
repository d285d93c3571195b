// Package app holds the museum's application state and the per-frame tick and render steps.
package app

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/common"
	"github.com/Carmen-Shannon/oxy-museum/engine/camera"
	"github.com/Carmen-Shannon/oxy-museum/engine/frame"
	"github.com/Carmen-Shannon/oxy-museum/engine/input"
	"github.com/Carmen-Shannon/oxy-museum/engine/light"
	"github.com/Carmen-Shannon/oxy-museum/engine/loader"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/Carmen-Shannon/oxy-museum/engine/profiler"
	"github.com/Carmen-Shannon/oxy-museum/engine/scene"
	"github.com/Carmen-Shannon/oxy-museum/engine/text"
	"github.com/Carmen-Shannon/oxy-museum/museum/config"
	"github.com/Carmen-Shannon/oxy-museum/museum/exhibit"
	"github.com/Carmen-Shannon/oxy-museum/museum/hall"
	"github.com/Carmen-Shannon/oxy-museum/museum/hud"
	"github.com/Carmen-Shannon/oxy-museum/museum/overlay"
	"github.com/Carmen-Shannon/oxy-museum/museum/panel"
)

// Renderer is the subset of renderer.Renderer the museum draws through.
type Renderer interface {
	UploadMesh(key string, mesh *model.Mesh) error
	UploadTexture(key string, data common.TextureStagingData) error
	Render(f *frame.Frame) error
	Resize(width, height int)
}

// instructionsMargin is the gap between the instructions banner and the bottom edge.
const instructionsMargin = 30

// exhibitView ties a registered exhibit to its panel and the panel's texture key.
type exhibitView struct {
	exhibit    *exhibit.Exhibit
	panel      *panel.Panel
	textureKey string
}

// AppState is everything the running museum owns. All methods except the loader's
// workers run on the render thread.
type AppState struct {
	mu *sync.Mutex

	cfg         config.Config
	descriptors []config.Descriptor

	scene     scene.Scene
	camera    camera.Camera
	nav       camera.NavigationController
	meshes    loader.Loader
	exhibits  *exhibit.Loader
	registry  *exhibit.Registry
	projector *overlay.Projector
	panels    *panel.Layer
	hud       *hud.HUD
	fonts     *text.Fonts
	renderer  Renderer

	views    []*exhibitView
	textures map[string][2]int // overlay texture sizes by key
	width    int               // framebuffer pixels
	height   int
	scale    float32           // framebuffer pixels per window coordinate

	opener panel.Opener
	cursor func(hand bool)
	hand   bool
}

var _ input.ResizeListener = &AppState{}

// New builds the hall, uploads its meshes and prepares exhibit loading. Loads do not start
// until Start is called.
//
// Parameters:
//   - cfg: the runtime configuration
//   - descriptors: the exhibits to show
//   - r: the renderer to draw through
//   - options: functional options to configure the state
//
// Returns:
//   - *AppState: the new state
//   - error: an error if the hall cannot be built or uploaded
func New(cfg config.Config, descriptors []config.Descriptor, r Renderer, options ...AppOption) (*AppState, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	a := &AppState{
		mu:          &sync.Mutex{},
		cfg:         cfg,
		descriptors: descriptors,
		renderer:    r,
		textures:    make(map[string][2]int),
		width:       cfg.Width,
		height:      cfg.Height,
		scale:       1,
		opener:      panel.DefaultOpener,
	}
	for _, opt := range options {
		opt(a)
	}

	room := cfg.Room()
	a.nav = camera.NewNavigationController(
		camera.WithBounds(config.NavigationBounds(room)),
		camera.WithEasing(cfg.NavigationEasing()),
		camera.WithRotateSensitivity(cfg.LookSensitivity),
		camera.WithScrollSpeed(cfg.MoveSpeed),
	)
	a.camera = camera.NewCamera(
		camera.WithAspect(float32(max(a.width, 1))/float32(max(a.height, 1))),
		camera.WithController(a.nav),
	)

	s, err := hall.Build(room, descriptors, hall.WithCamera(a.camera), hall.WithSpacing(cfg.Spacing))
	if err != nil {
		return nil, fmt.Errorf("build hall: %w", err)
	}
	a.scene = s
	for key, m := range hall.Meshes(room) {
		if err := r.UploadMesh(key, m); err != nil {
			return nil, fmt.Errorf("upload %s: %w", key, err)
		}
	}

	if a.fonts == nil {
		if a.fonts, err = text.NewFonts(18, 14, 11); err != nil {
			return nil, fmt.Errorf("load fonts: %w", err)
		}
	}
	if a.meshes == nil {
		a.meshes = loader.NewLoader(
			loader.WithBaseDir(cfg.AssetDir),
			loader.WithWorkers(cfg.Workers()),
		)
	}

	a.registry = exhibit.NewRegistry(len(descriptors))
	a.exhibits = exhibit.NewLoader(a.meshes, a.registry,
		exhibit.WithSpacing(cfg.Spacing),
		exhibit.WithOnLoad(a.register),
	)
	lw, lh := a.logicalSize()
	a.projector = overlay.NewProjector(lw, lh)
	a.panels = panel.NewLayer()
	a.hud = hud.New(len(descriptors))
	return a, nil
}

// Start begins loading every exhibit model in the background.
func (a *AppState) Start() {
	a.exhibits.Start(a.descriptors)
}

// register runs from Drain for each loaded exhibit: upload, add to the scene, attach a panel.
// An upload error makes Drain record the exhibit as failed.
func (a *AppState) register(e *exhibit.Exhibit) error {
	if err := a.renderer.UploadMesh(e.MeshKey, e.Mesh); err != nil {
		return fmt.Errorf("upload mesh: %w", err)
	}
	a.scene.Add(e.Object)

	p := panel.New(e.Descriptor.Title, e.Descriptor.Description,
		e.Descriptor.VideoURL(a.cfg.VideoEmbedURL), e.Object,
		panel.WithOpener(a.opener),
	)
	a.panels.Add(p)
	a.views = append(a.views, &exhibitView{
		exhibit:    e,
		panel:      p,
		textureKey: fmt.Sprintf("panel/%d", e.Index),
	})
	return nil
}

// Tick advances the museum by dt seconds: drain finished loads, ease the camera, place
// the panels and refresh any overlay textures that changed.
//
// Parameters:
//   - dt: elapsed seconds since the previous tick
func (a *AppState) Tick(dt float32) {
	a.exhibits.Drain()
	a.hud.SetProgress(a.registry.Settled(), a.registry.Expected(), len(a.registry.Failures()))

	a.nav.Tick(dt)
	a.camera.Update()

	subjects := make([]overlay.Subject, 0, len(a.views))
	for _, v := range a.views {
		subjects = append(subjects, overlay.Subject{Position: v.exhibit.WorldPosition(), Target: v.panel})
	}
	a.projector.Project(a.camera, subjects)

	for _, v := range a.views {
		if v.panel.Placement().Visible && v.panel.Dirty() {
			a.upload(v.textureKey, common.StageImage(v.panel.Render(a.fonts)))
		}
	}
	for _, e := range a.hud.Elements() {
		if e.Visible() && e.Dirty() {
			a.upload(e.Key, common.StageImage(e.Render(a.fonts)))
		}
	}

	a.hud.Tick(dt)
}

func (a *AppState) upload(key string, data common.TextureStagingData) {
	if err := a.renderer.UploadTexture(key, data); err != nil {
		log.Printf("[app] upload texture %s: %v", key, err)
		return
	}
	a.mu.Lock()
	a.textures[key] = [2]int{int(data.Width), int(data.Height)}
	a.mu.Unlock()
}

// Frame assembles the frame for the current state without drawing it.
//
// Returns:
//   - *frame.Frame: the draw list, lights and overlays
func (a *AppState) Frame() *frame.Frame {
	f := &frame.Frame{
		ViewProjection: a.camera.ViewProjectionMatrix(),
		CameraPosition: a.camera.Position(),
		Clear:          a.scene.Background(),
		Lights:         light.MarshalLightBuffer(a.scene.Lights(), a.scene.Ambient()),
	}
	for _, obj := range a.scene.Drawables() {
		f.Draws = append(f.Draws, frame.DrawItem{
			MeshKey:  obj.MeshKey(),
			Model:    obj.ModelMatrix(),
			Material: obj.Material(),
		})
	}

	lw, lh := a.logicalSize()
	a.mu.Lock()
	defer a.mu.Unlock()

	keyOf := make(map[*panel.Panel]string, len(a.views))
	for _, v := range a.views {
		keyOf[v.panel] = v.textureKey
	}
	for _, p := range a.panels.Visible() {
		key := keyOf[p]
		size, ok := a.textures[key]
		if !ok {
			continue
		}
		pl := p.Placement()
		f.Overlays = append(f.Overlays, a.toFramebuffer(frame.OverlayQuad{
			TextureKey: key,
			X:          pl.X,
			Y:          pl.Y,
			Width:      float32(size[0]),
			Height:     float32(size[1]),
			Opacity:    pl.Opacity,
		}))
	}

	for _, e := range a.hud.Elements() {
		size, ok := a.textures[e.Key]
		if !ok || !e.Visible() {
			continue
		}
		q := frame.OverlayQuad{TextureKey: e.Key, Width: float32(size[0]), Height: float32(size[1]), Opacity: e.Opacity()}
		switch e.Anchor {
		case hud.AnchorFill:
			q.Width, q.Height = float32(lw), float32(lh)
		case hud.AnchorCenter:
			q.X = float32(lw-size[0]) / 2
			q.Y = float32(lh-size[1]) / 2
		case hud.AnchorBottom:
			q.X = float32(lw-size[0]) / 2
			q.Y = float32(lh - size[1] - instructionsMargin)
		}
		f.Overlays = append(f.Overlays, a.toFramebuffer(q))
	}
	return f
}

// toFramebuffer converts a quad laid out in window coordinates to framebuffer pixels.
// Caller must hold a.mu.
func (a *AppState) toFramebuffer(q frame.OverlayQuad) frame.OverlayQuad {
	q.X *= a.scale
	q.Y *= a.scale
	q.Width *= a.scale
	q.Height *= a.scale
	return q
}

// Render draws the current state.
//
// Returns:
//   - error: the renderer's error, if any
func (a *AppState) Render() error {
	return a.renderer.Render(a.Frame())
}

// Resize updates the camera aspect, the projector's screen size and the renderer surface.
// Zero sizes (a minimized window) are ignored.
//
// Parameters:
//   - width, height: the new framebuffer size in pixels
func (a *AppState) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.mu.Lock()
	a.width, a.height = width, height
	a.mu.Unlock()

	a.camera.SetAspect(float32(width) / float32(height))
	a.projector.OnResize(a.logicalSize())
	a.renderer.Resize(width, height)
}

// logicalSize returns the framebuffer size in window coordinates, the space pointer input
// and overlay layout use.
func (a *AppState) logicalSize() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return int(float32(a.width) / a.scale), int(float32(a.height) / a.scale)
}

// OnResize implements input.ResizeListener.
func (a *AppState) OnResize(width, height int) {
	a.Resize(width, height)
}

// Input returns the handler that receives pointer and wheel input not taken by a panel.
//
// Returns:
//   - input.Handler: navigation input with hover feedback
func (a *AppState) Input() input.Handler {
	return &pointerInput{app: a}
}

// Panels returns the panel layer, which intercepts presses ahead of Input.
func (a *AppState) Panels() *panel.Layer {
	return a.panels
}

// Navigation returns the navigation controller.
func (a *AppState) Navigation() camera.NavigationController {
	return a.nav
}

// Camera returns the scene camera.
func (a *AppState) Camera() camera.Camera {
	return a.camera
}

// Scene returns the scene.
func (a *AppState) Scene() scene.Scene {
	return a.scene
}

// Registry returns the exhibit registry.
func (a *AppState) Registry() *exhibit.Registry {
	return a.registry
}

// HUD returns the HUD.
func (a *AppState) HUD() *hud.HUD {
	return a.hud
}

// LogStats appends exhibit counts to a profiler report.
//
// Parameters:
//   - s: the profiler report
func (a *AppState) LogStats(s profiler.Stats) {
	log.Printf("[Profiler] %.1f fps | exhibits: %d loaded, %d failed, %d pending | draws: %d",
		s.FPS, len(a.registry.All()), len(a.registry.Failures()), a.exhibits.Pending(), len(a.scene.Drawables()))
}

// setHover switches the cursor when the pointer enters or leaves a panel button.
func (a *AppState) setHover(hand bool) {
	if a.cursor == nil || hand == a.hand {
		return
	}
	a.hand = hand
	a.cursor(hand)
}

// pointerInput forwards to navigation and tracks hover for the cursor.
type pointerInput struct {
	app *AppState
}

var _ input.Handler = &pointerInput{}

func (p *pointerInput) OnPointerDown(x, y float32) {
	p.app.nav.OnPointerDown(x, y)
}

func (p *pointerInput) OnPointerMove(x, y float32) {
	p.app.nav.OnPointerMove(x, y)
	p.app.setHover(!p.app.nav.Dragging() && p.app.panels.OverButton(x, y))
}

func (p *pointerInput) OnPointerUp(x, y float32) {
	p.app.nav.OnPointerUp(x, y)
}

func (p *pointerInput) OnWheel(deltaY float32) {
	p.app.nav.OnWheel(deltaY)
}
