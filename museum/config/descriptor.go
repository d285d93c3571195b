package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed exhibits.yaml
var defaultExhibits []byte

// Side is the wall an exhibit stands against.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Descriptor is the static description of one exhibit.
type Descriptor struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	VideoID     string  `yaml:"videoId"`
	Model       string  `yaml:"model"`
	Position    int     `yaml:"position"`
	Side        Side    `yaml:"side"`
	XOffset     float32 `yaml:"xOffset"`
}

// ValidationError reports a bad setting or exhibit descriptor.
// Index is the descriptor index, or -1 for environment settings.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("exhibit %d: invalid %s: %s", e.Index, e.Field, e.Reason)
}

// DefaultDescriptors returns the built-in exhibit layout.
//
// Returns:
//   - []Descriptor: the ten default exhibits
func DefaultDescriptors() []Descriptor {
	d, err := ParseDescriptors(defaultExhibits)
	if err != nil {
		panic(fmt.Sprintf("embedded exhibits.yaml: %v", err))
	}
	return d
}

// LoadDescriptors reads the exhibit layout from path, or the built-in layout when path is empty.
//
// Parameters:
//   - path: YAML descriptor file, may be empty
//
// Returns:
//   - []Descriptor: the validated descriptors
//   - error: an error if the file cannot be read or fails validation
func LoadDescriptors(path string) ([]Descriptor, error) {
	if path == "" {
		return DefaultDescriptors(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exhibits file: %w", err)
	}
	return ParseDescriptors(data)
}

// ParseDescriptors decodes and validates a YAML sequence of descriptors.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - []Descriptor: the validated descriptors
//   - error: a decode error or the first *ValidationError
func ParseDescriptors(data []byte) ([]Descriptor, error) {
	var out []Descriptor
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode exhibits: %w", err)
	}
	for i, d := range out {
		if err := d.validate(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d Descriptor) validate(i int) error {
	switch {
	case d.Title == "":
		return &ValidationError{Index: i, Field: "title", Reason: "must not be empty"}
	case d.Model == "":
		return &ValidationError{Index: i, Field: "model", Reason: "must not be empty"}
	case d.Side != SideLeft && d.Side != SideRight:
		return &ValidationError{Index: i, Field: "side", Reason: fmt.Sprintf("%q is not left or right", d.Side)}
	case d.Position < 0:
		return &ValidationError{Index: i, Field: "position", Reason: "must not be negative"}
	}
	return nil
}

// VideoURL formats the embed URL for the descriptor's video.
//
// Parameters:
//   - template: a format string with one %s verb
//
// Returns:
//   - string: the embed URL, or empty when the descriptor has no video
func (d Descriptor) VideoURL(template string) string {
	if d.VideoID == "" {
		return ""
	}
	return fmt.Sprintf(template, d.VideoID)
}

// ExhibitHeight is the height of every exhibit's centre above the floor.
const ExhibitHeight float32 = 1.5

// Anchor returns the world position of the exhibit's centre for the given spacing.
//
// Parameters:
//   - spacing: distance between consecutive positions along -Z
//
// Returns:
//   - mgl32.Vec3: (xOffset, 1.5, -position*spacing - 5)
func (d Descriptor) Anchor(spacing float32) mgl32.Vec3 {
	return mgl32.Vec3{d.XOffset, ExhibitHeight, -float32(d.Position)*spacing - 5}
}
