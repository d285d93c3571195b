package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-museum/engine/frame"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

func TestOverlayUniformMapsPixelsToNDC(t *testing.T) {
	u := NewGPUOverlayUniform(frame.OverlayQuad{X: 0, Y: 0, Width: 640, Height: 180, Opacity: 0.5}, 1280, 720)
	want := [4]float32{-1, 0.5, 0, 1}
	for i := range want {
		if math.Abs(float64(u.Rect[i]-want[i])) > 1e-6 {
			t.Fatalf("Rect = %v, want %v", u.Rect, want)
		}
	}
	if u.Opacity != 0.5 {
		t.Fatalf("Opacity = %v", u.Opacity)
	}
}

func TestObjectUniformNormalMatrix(t *testing.T) {
	m := mgl32.Translate3D(3, 4, 5).Mul4(mgl32.Scale3D(2, 1, 1))
	u := NewGPUObjectUniform(m, model.Material{Color: mgl32.Vec3{1, 0, 0}, Roughness: 0.7, Metalness: 0.5})

	// Normals ignore translation and undo non-uniform scale.
	n := u.NormalMatrix.Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	if !n.Vec3().ApproxEqual(mgl32.Vec3{0.5, 0, 0}) {
		t.Fatalf("normal = %v", n)
	}

	buf := u.Marshal()
	if len(buf) != objectUniformSize {
		t.Fatalf("len = %d", len(buf))
	}
	if r := math.Float32frombits(binary.LittleEndian.Uint32(buf[140:])); r != 0.7 {
		t.Fatalf("roughness at 140 = %v", r)
	}
	if tx := math.Float32frombits(binary.LittleEndian.Uint32(buf[48:])); tx != 3 {
		t.Fatalf("translation x at 48 = %v", tx)
	}
}
