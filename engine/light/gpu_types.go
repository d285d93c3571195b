package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxGPULights is the maximum number of lights marshaled into the GPU storage buffer per frame.
// The hall uses one spotlight per exhibit plus a directional fill, well under this cap.
const MaxGPULights = 64

// GPULight is the GPU-aligned representation of a single light source.
// Matches the Light struct in the renderer's mesh shader.
// Size: 64 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position   [3]float32 // offset  0: world-space position (point/spot) or unused (directional)
	LightType  uint32     // offset 12: 0 = directional, 1 = point, 2 = spot
	Color      [3]float32 // offset 16: RGB color
	Intensity  float32    // offset 28: scalar multiplier
	Direction  [3]float32 // offset 32: normalized direction (directional/spot) or unused (point)
	LightRange float32    // offset 44: attenuation cutoff distance, 0 = unbounded
	InnerCone  float32    // offset 48: cos(inner half-angle) for spot
	OuterCone  float32    // offset 52: cos(outer half-angle) for spot
	Decay      float32    // offset 56: distance falloff exponent
	_pad       uint32     // offset 60: padding to 64-byte alignment
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	putVec3(buf[0:12], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putVec3(buf[16:28], g.Color)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	putVec3(buf[32:44], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.LightRange))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.InnerCone))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(g.OuterCone))
	binary.LittleEndian.PutUint32(buf[56:60], math.Float32bits(g.Decay))
	binary.LittleEndian.PutUint32(buf[60:64], 0) // padding
	return buf
}

// GPULightHeader is the header prepended to the light storage buffer.
// Contains the pre-multiplied ambient color and the active light count.
// Size: 16 bytes (vec3 + u32, std430 aligned).
type GPULightHeader struct {
	AmbientColor [3]float32 // offset 0: scene ambient RGB, already scaled by intensity
	LightCount   uint32     // offset 12: number of active lights following the header
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// Marshal serializes the GPULightHeader struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (h *GPULightHeader) Marshal() []byte {
	buf := make([]byte, 16)
	putVec3(buf[0:12], h.AmbientColor)
	binary.LittleEndian.PutUint32(buf[12:16], h.LightCount)
	return buf
}

// ToGPULight converts a Light interface value into the GPU-aligned GPULight struct
// suitable for writing into the light storage buffer.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	return GPULight{
		Position:   l.Position(),
		LightType:  uint32(l.Type()),
		Color:      l.Color(),
		Intensity:  l.Intensity(),
		Direction:  l.Direction(),
		LightRange: l.Range(),
		InnerCone:  l.InnerCone(),
		OuterCone:  l.OuterCone(),
		Decay:      l.Decay(),
	}
}

// MarshalLightBuffer marshals the enabled lights into a byte buffer suitable for GPU upload.
// The buffer layout is:
//
//	[GPULightHeader (16 bytes)] [GPULight × count (64 bytes each)]
//
// Only enabled lights are included, up to MaxGPULights. The buffer is always sized for
// MaxGPULights so it can be written into a fixed-size storage buffer.
//
// Parameters:
//   - lights: the full slice of lights to marshal (only enabled lights are included)
//   - ambient: the scene ambient color, already multiplied by its intensity
//
// Returns:
//   - []byte: the marshaled buffer ready for GPU upload
func MarshalLightBuffer(lights []Light, ambient mgl32.Vec3) []byte {
	headerSize := (&GPULightHeader{}).Size()
	lightSize := (&GPULight{}).Size()

	buf := make([]byte, LightBufferSize())

	offset := headerSize
	written := 0
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		if written >= MaxGPULights {
			break
		}
		gpu := ToGPULight(l)
		copy(buf[offset:offset+lightSize], gpu.Marshal())
		offset += lightSize
		written++
	}

	header := GPULightHeader{AmbientColor: ambient, LightCount: uint32(written)}
	copy(buf[0:headerSize], header.Marshal())
	return buf
}

// LightBufferSize returns the byte size of the storage buffer MarshalLightBuffer fills.
//
// Returns:
//   - int: header size plus MaxGPULights light slots
func LightBufferSize() int {
	return (&GPULightHeader{}).Size() + MaxGPULights*(&GPULight{}).Size()
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}
