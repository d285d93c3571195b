// Package config loads the museum's runtime settings from the environment and its
// exhibit layout from YAML.
package config

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-museum/engine/camera"
	"github.com/caarlos0/env/v11"
)

// Easing modes accepted by MUSEUM_EASING.
const (
	EasingFixed = "fixed"
	EasingDecay = "decay"
)

// RoomBounds is the size of the hall in world units.
type RoomBounds struct {
	Length float32
	Width  float32
	Height float32
}

// Config is the museum's runtime configuration.
type Config struct {
	Title        string `env:"MUSEUM_TITLE"          envDefault:"Virtual Museum"`
	Width        int    `env:"MUSEUM_WIDTH"          envDefault:"1280"`
	Height       int    `env:"MUSEUM_HEIGHT"         envDefault:"720"`
	AssetDir     string `env:"MUSEUM_ASSET_DIR"      envDefault:"."`
	ExhibitsFile string `env:"MUSEUM_EXHIBITS_FILE"`

	MinWidth  int `env:"MUSEUM_MIN_WIDTH"  envDefault:"600"`
	MinHeight int `env:"MUSEUM_MIN_HEIGHT" envDefault:"400"`
	MaxWidth  int `env:"MUSEUM_MAX_WIDTH"  envDefault:"0"`
	MaxHeight int `env:"MUSEUM_MAX_HEIGHT" envDefault:"0"`

	RoomLength float32 `env:"MUSEUM_ROOM_LENGTH" envDefault:"100"`
	RoomWidth  float32 `env:"MUSEUM_ROOM_WIDTH"  envDefault:"30"`
	RoomHeight float32 `env:"MUSEUM_ROOM_HEIGHT" envDefault:"10"`
	Spacing    float32 `env:"MUSEUM_SPACING"     envDefault:"8"`

	Easing       string  `env:"MUSEUM_EASING"        envDefault:"fixed"`
	EasingFactor float32 `env:"MUSEUM_EASING_FACTOR" envDefault:"0.1"`
	EasingRate   float32 `env:"MUSEUM_EASING_RATE"   envDefault:"6.3216"`

	LookSensitivity float32 `env:"MUSEUM_LOOK_SENSITIVITY" envDefault:"0.005"`
	MoveSpeed       float32 `env:"MUSEUM_MOVE_SPEED"       envDefault:"0.005"`

	PixelsPerNotch float32 `env:"MUSEUM_WHEEL_PIXELS_PER_NOTCH" envDefault:"100"`
	FrameLimit     float64 `env:"MUSEUM_FRAME_LIMIT"            envDefault:"0"`
	VSync          bool    `env:"MUSEUM_VSYNC"                  envDefault:"true"`
	Profile        bool    `env:"MUSEUM_PROFILE"                envDefault:"false"`
	LoadWorkers    int     `env:"MUSEUM_LOAD_WORKERS"           envDefault:"0"`
	VideoEmbedURL  string  `env:"MUSEUM_VIDEO_EMBED_URL"        envDefault:"https://www.youtube.com/embed/%s"`
}

// Default returns the configuration produced by an empty environment.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Title:           "Virtual Museum",
		Width:           1280,
		Height:          720,
		AssetDir:        ".",
		MinWidth:        600,
		MinHeight:       400,
		RoomLength:      100,
		RoomWidth:       30,
		RoomHeight:      10,
		Spacing:         8,
		Easing:          EasingFixed,
		EasingFactor:    camera.DefaultEasingFactor,
		EasingRate:      camera.DecayRateFor(camera.DefaultEasingFactor, 60),
		PixelsPerNotch:  100,
		LookSensitivity: camera.DefaultRotateSensitivity,
		MoveSpeed:       camera.DefaultScrollSpeed,
		VSync:           true,
		VideoEmbedURL:   "https://www.youtube.com/embed/%s",
	}
}

// Load parses the configuration from the environment and validates it.
//
// Returns:
//   - Config: the parsed configuration
//   - error: an error if a variable is malformed or a value is out of range
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every numeric setting is usable.
//
// Returns:
//   - error: a *ValidationError naming the first bad field, or nil
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ValidationError{Index: -1, Field: "MUSEUM_WIDTH", Reason: "must be positive"}
	case c.Height <= 0:
		return &ValidationError{Index: -1, Field: "MUSEUM_HEIGHT", Reason: "must be positive"}
	case c.MinWidth < 0 || c.MinHeight < 0 || c.MaxWidth < 0 || c.MaxHeight < 0:
		return &ValidationError{Index: -1, Field: "MUSEUM_MIN_*/MUSEUM_MAX_*", Reason: "size limits must not be negative"}
	case (c.MaxWidth > 0 && c.MaxWidth < c.MinWidth) || (c.MaxHeight > 0 && c.MaxHeight < c.MinHeight):
		return &ValidationError{Index: -1, Field: "MUSEUM_MAX_*", Reason: "maximum size is below the minimum"}
	case c.RoomLength <= 0 || c.RoomWidth <= 0 || c.RoomHeight <= 0:
		return &ValidationError{Index: -1, Field: "MUSEUM_ROOM_*", Reason: "room dimensions must be positive"}
	case c.Spacing <= 0:
		return &ValidationError{Index: -1, Field: "MUSEUM_SPACING", Reason: "must be positive"}
	case c.Easing != EasingFixed && c.Easing != EasingDecay:
		return &ValidationError{Index: -1, Field: "MUSEUM_EASING", Reason: fmt.Sprintf("unknown mode %q", c.Easing)}
	case c.EasingFactor <= 0 || c.EasingFactor > 1:
		return &ValidationError{Index: -1, Field: "MUSEUM_EASING_FACTOR", Reason: "must be in (0, 1]"}
	case c.EasingRate <= 0:
		return &ValidationError{Index: -1, Field: "MUSEUM_EASING_RATE", Reason: "must be positive"}
	case c.LookSensitivity <= 0:
		return &ValidationError{Index: -1, Field: "MUSEUM_LOOK_SENSITIVITY", Reason: "must be positive"}
	case c.MoveSpeed <= 0:
		return &ValidationError{Index: -1, Field: "MUSEUM_MOVE_SPEED", Reason: "must be positive"}
	case c.LoadWorkers < 0:
		return &ValidationError{Index: -1, Field: "MUSEUM_LOAD_WORKERS", Reason: "must not be negative"}
	}
	return nil
}

// Room returns the hall dimensions.
//
// Returns:
//   - RoomBounds: the hall size
func (c Config) Room() RoomBounds {
	return RoomBounds{Length: c.RoomLength, Width: c.RoomWidth, Height: c.RoomHeight}
}

// NavigationEasing returns the camera easing selected by MUSEUM_EASING.
//
// Returns:
//   - camera.Easing: the easing strategy
func (c Config) NavigationEasing() camera.Easing {
	if c.Easing == EasingDecay {
		return camera.DecayEasing{Rate: c.EasingRate}
	}
	return camera.FixedEasing(c.EasingFactor)
}

// Workers returns the loader worker count, resolving 0 to one less than the CPU count.
//
// Returns:
//   - int: the worker count, at least 1
func (c Config) Workers() int {
	if c.LoadWorkers > 0 {
		return c.LoadWorkers
	}
	return max(runtime.NumCPU()-1, 1)
}

// NavigationBounds returns the clamp box for the visitor in a hall of the given size.
//
// Parameters:
//   - room: the hall size
//
// Returns:
//   - camera.Bounds: the walkable box
func NavigationBounds(room RoomBounds) camera.Bounds {
	return camera.CorridorBounds(room.Width, room.Length)
}
