// Command museum opens the virtual museum in a desktop window.
package main

import (
	"log"

	"github.com/Carmen-Shannon/oxy-museum/engine"
	"github.com/Carmen-Shannon/oxy-museum/engine/input"
	"github.com/Carmen-Shannon/oxy-museum/engine/profiler"
	"github.com/Carmen-Shannon/oxy-museum/engine/renderer"
	"github.com/Carmen-Shannon/oxy-museum/engine/window"
	"github.com/Carmen-Shannon/oxy-museum/museum/app"
	"github.com/Carmen-Shannon/oxy-museum/museum/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[museum] %v", err)
	}
	descriptors := config.DefaultDescriptors()
	if cfg.ExhibitsFile != "" {
		if descriptors, err = config.LoadDescriptors(cfg.ExhibitsFile); err != nil {
			log.Fatalf("[museum] %v", err)
		}
	}

	// ── Window + Renderer ───────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithSize(cfg.Width, cfg.Height),
		window.WithMinSize(cfg.MinWidth, cfg.MinHeight),
		window.WithMaxSize(cfg.MaxWidth, cfg.MaxHeight),
	)
	presentMode := renderer.PresentModeUncapped
	if cfg.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
	)
	defer r.Release()

	// ── Museum ──────────────────────────────────────────────────────────
	museum, err := app.New(cfg, descriptors, r,
		app.WithCursor(win.SetHandCursor),
		app.WithUIScale(win.ContentScale()),
	)
	if err != nil {
		log.Fatalf("[museum] %v", err)
	}
	museum.Resize(win.Width(), win.Height())

	router := input.NewRouter(museum.Input(),
		input.WithInterceptor(museum.Panels()),
		input.WithResizeListener(museum),
		input.WithPixelsPerNotch(cfg.PixelsPerNotch),
	)
	router.Bind(win)

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithHost(win),
		engine.WithProfiling(cfg.Profile),
		engine.WithProfiler(profiler.NewProfiler(
			profiler.WithQuiet(true),
			profiler.WithStatsCallback(museum.LogStats),
		)),
		engine.WithRenderFrameLimit(cfg.FrameLimit),
		engine.WithTickCallback(museum.Tick),
		engine.WithRenderCallback(func(float32) {
			if err := museum.Render(); err != nil {
				log.Printf("[museum] render: %v", err)
			}
		}),
	)

	museum.Start()
	if err := eng.Run(); err != nil {
		log.Printf("[museum] close window: %v", err)
	}
}
