package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSpotlightAimedDown(t *testing.T) {
	pos := mgl32.Vec3{-8, 9, -13}
	l := NewLight(LightTypeSpot,
		WithPosition(pos),
		WithTarget(mgl32.Vec3{-8, 1.5, -13}),
		WithSpotCone(math.Pi/6, 0.5),
		WithDecay(0.5),
		WithRange(20),
	)

	if !l.Direction().ApproxEqual(mgl32.Vec3{0, -1, 0}) {
		t.Fatalf("Direction() = %v, want straight down", l.Direction())
	}
	if got, want := l.OuterCone(), float32(math.Cos(math.Pi/6)); math.Abs(float64(got-want)) > 1e-6 {
		t.Fatalf("OuterCone() = %v, want %v", got, want)
	}
	if got, want := l.InnerCone(), float32(math.Cos(math.Pi/12)); math.Abs(float64(got-want)) > 1e-6 {
		t.Fatalf("InnerCone() = %v, want %v", got, want)
	}
	if l.InnerCone() <= l.OuterCone() {
		t.Fatal("inner cone must be narrower than outer cone")
	}
}

func TestSetDirectionIgnoresZero(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithDirection(mgl32.Vec3{0, -10, -5}))
	before := l.Direction()
	l.SetDirection(mgl32.Vec3{})
	if l.Direction() != before {
		t.Fatalf("zero direction replaced %v with %v", before, l.Direction())
	}
	if n := before.Len(); math.Abs(float64(n-1)) > 1e-6 {
		t.Fatalf("direction not normalized, len = %v", n)
	}
}

func TestMarshalLightBufferSkipsDisabled(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeDirectional, WithIntensity(0.8)),
		NewLight(LightTypeSpot, WithEnabled(false)),
		NewLight(LightTypeSpot, WithIntensity(1.5), WithDecay(0.5)),
	}
	buf := MarshalLightBuffer(lights, mgl32.Vec3{0.125, 0.125, 0.125})

	if len(buf) != LightBufferSize() {
		t.Fatalf("len = %d, want %d", len(buf), LightBufferSize())
	}
	if n := binary.LittleEndian.Uint32(buf[12:16]); n != 2 {
		t.Fatalf("light count = %d, want 2", n)
	}
	if a := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])); a != 0.125 {
		t.Fatalf("ambient r = %v", a)
	}

	second := buf[16+64 : 16+128]
	if typ := binary.LittleEndian.Uint32(second[12:16]); typ != uint32(LightTypeSpot) {
		t.Fatalf("second light type = %d, want spot", typ)
	}
	if decay := math.Float32frombits(binary.LittleEndian.Uint32(second[56:60])); decay != 0.5 {
		t.Fatalf("second light decay = %v, want 0.5", decay)
	}
}

func TestGPULightSize(t *testing.T) {
	if s := (&GPULight{}).Size(); s != 64 {
		t.Fatalf("GPULight size = %d, want 64", s)
	}
	if s := (&GPULightHeader{}).Size(); s != 16 {
		t.Fatalf("GPULightHeader size = %d, want 16", s)
	}
}
