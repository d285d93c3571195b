package common

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestPerspectiveMapsDepthToWebGPURange(t *testing.T) {
	near, far := float32(0.1), float32(1000)
	p := Perspective(mgl32.DegToRad(75), 16.0/9.0, near, far)

	for _, tc := range []struct {
		z    float32
		want float32
	}{
		{-near, 0},
		{-far, 1},
	} {
		clip := p.Mul4x1(mgl32.Vec4{0, 0, tc.z, 1})
		if got := clip.Z() / clip.W(); !approx(got, tc.want) {
			t.Fatalf("expected depth %v at z=%v, got %v", tc.want, tc.z, got)
		}
	}
}

func TestModelMatrixTranslatesScaledOrigin(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{-8, 1.5, -5}, mgl32.Vec3{0, 0.4, 0}, mgl32.Vec3{0.5, 0.5, 0.5})
	origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !approx(origin.X(), -8) || !approx(origin.Y(), 1.5) || !approx(origin.Z(), -5) {
		t.Fatalf("expected origin at (-8,1.5,-5), got %v", origin)
	}

	unit := m.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	if l := unit.Vec3().Len(); !approx(l, 0.5) {
		t.Fatalf("expected scaled axis length 0.5, got %v", l)
	}
}

func TestHexColor(t *testing.T) {
	c := HexColor(0x8B0000)
	if !approx(c.X(), 139.0/255.0) || c.Y() != 0 || c.Z() != 0 {
		t.Fatalf("expected dark red, got %v", c)
	}
}

func TestStageImageRepacksSubImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(2, 2, color.RGBA{R: 255, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	staged := StageImage(sub)
	if staged.Width != 2 || staged.Height != 2 {
		t.Fatalf("expected 2x2, got %dx%d", staged.Width, staged.Height)
	}
	if len(staged.Pixels) != 16 || staged.Pixels[0] != 255 {
		t.Fatalf("expected first pixel red in 16 bytes, got %v", staged.Pixels)
	}
}
