// Package text rasterizes UI strings into RGBA images with TrueType faces.
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Weight selects one of the bundled Go fonts.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Face is a sized TrueType face. Drawing and measuring are serialized because
// font.Face implementations cache glyphs and are not safe for concurrent use.
type Face struct {
	mu   *sync.Mutex
	face font.Face
	size float64
}

// FaceOption configures a Face.
type FaceOption func(*faceConfig)

type faceConfig struct {
	data   []byte
	weight Weight
	dpi    float64
}

// WithWeight selects the bundled regular or bold Go font.
//
// Parameters:
//   - w: the weight
//
// Returns:
//   - FaceOption: option function to apply
func WithWeight(w Weight) FaceOption {
	return func(c *faceConfig) {
		c.weight = w
	}
}

// WithFontData uses a caller-supplied TrueType font instead of the bundled ones.
//
// Parameters:
//   - ttf: raw TrueType font bytes
//
// Returns:
//   - FaceOption: option function to apply
func WithFontData(ttf []byte) FaceOption {
	return func(c *faceConfig) {
		c.data = ttf
	}
}

// WithDPI sets the resolution the point size is interpreted at. Defaults to 72 so one
// point is one pixel.
//
// Parameters:
//   - dpi: dots per inch
//
// Returns:
//   - FaceOption: option function to apply
func WithDPI(dpi float64) FaceOption {
	return func(c *faceConfig) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// NewFace parses a font and returns a face at the given size.
//
// Parameters:
//   - size: font size in points
//   - options: functional options selecting the font and DPI
//
// Returns:
//   - *Face: the face
//   - error: error if the font data cannot be parsed
func NewFace(size float64, options ...FaceOption) (*Face, error) {
	cfg := &faceConfig{dpi: 72}
	for _, opt := range options {
		opt(cfg)
	}
	data := cfg.data
	if data == nil {
		data = goregular.TTF
		if cfg.weight == Bold {
			data = gobold.TTF
		}
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Face{
		mu: &sync.Mutex{},
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     cfg.dpi,
			Hinting: font.HintingFull,
		}),
		size: size,
	}, nil
}

// Size returns the point size the face was created with.
func (f *Face) Size() float64 {
	return f.size
}

// Measure returns the advance width of s in pixels.
//
// Parameters:
//   - s: the string to measure
//
// Returns:
//   - int: width in pixels, rounded up
func (f *Face) Measure(s string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return font.MeasureString(f.face, s).Ceil()
}

// LineHeight returns the distance between consecutive baselines in pixels.
func (f *Face) LineHeight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Metrics().Height.Ceil()
}

// Ascent returns the distance from the top of a line to its baseline in pixels.
func (f *Face) Ascent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Metrics().Ascent.Ceil()
}

// Draw renders s onto dst with its baseline at (x, y).
//
// Parameters:
//   - dst: the destination image
//   - x, y: baseline origin in pixels
//   - s: the string to draw
//   - c: the text colour
func (f *Face) Draw(dst draw.Image, x, y int, s string, c color.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// DrawLines renders lines top-down starting with the first line's top edge at (x, top).
//
// Parameters:
//   - dst: the destination image
//   - x, top: position of the first line's top-left corner
//   - lines: the lines to draw
//   - c: the text colour
//
// Returns:
//   - int: the y coordinate just below the last line
func (f *Face) DrawLines(dst draw.Image, x, top int, lines []string, c color.Color) int {
	lh := f.LineHeight()
	ascent := f.Ascent()
	y := top
	for _, line := range lines {
		f.Draw(dst, x, y+ascent, line, c)
		y += lh
	}
	return y
}

// Wrap breaks s into lines no wider than maxWidth pixels. Newlines in s start new
// paragraphs; a single word wider than maxWidth is split between runes.
//
// Parameters:
//   - s: the text to wrap
//   - maxWidth: the line width limit in pixels
//
// Returns:
//   - []string: the wrapped lines
func (f *Face) Wrap(s string, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			continue
		}
		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if f.Measure(candidate) <= maxWidth {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = word
			for f.Measure(line) > maxWidth && utf8.RuneCountInString(line) > 1 {
				head, tail := f.splitToWidth(line, maxWidth)
				lines = append(lines, head)
				line = tail
			}
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitToWidth returns the longest rune prefix of s that fits maxWidth (at least one rune)
// and the remainder.
func (f *Face) splitToWidth(s string, maxWidth int) (string, string) {
	cut := 0
	for i := range s {
		if i == 0 {
			continue
		}
		if f.Measure(s[:i]) > maxWidth {
			break
		}
		cut = i
	}
	if cut == 0 {
		_, size := utf8.DecodeRuneInString(s)
		cut = size
	}
	return s[:cut], s[cut:]
}

// Fonts is the set of faces the museum UI draws with.
type Fonts struct {
	Title   *Face
	Body    *Face
	Caption *Face
}

// NewFonts creates a bold title face and regular body and caption faces.
//
// Parameters:
//   - title, body, caption: point sizes
//
// Returns:
//   - *Fonts: the face set
//   - error: error if a face cannot be created
func NewFonts(title, body, caption float64) (*Fonts, error) {
	t, err := NewFace(title, WithWeight(Bold))
	if err != nil {
		return nil, err
	}
	b, err := NewFace(body)
	if err != nil {
		return nil, err
	}
	c, err := NewFace(caption)
	if err != nil {
		return nil, err
	}
	return &Fonts{Title: t, Body: b, Caption: c}, nil
}
