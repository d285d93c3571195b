// package common contains plain data types and helpers shared across the engine and museum packages.
package common

import (
	"image"
	"image/draw"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the pixel data in RGBA format, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// StageImage copies any image into tightly packed RGBA staging data.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - TextureStagingData: the staged pixels, empty if img is nil
func StageImage(img image.Image) TextureStagingData {
	if img == nil {
		return TextureStagingData{}
	}
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}
