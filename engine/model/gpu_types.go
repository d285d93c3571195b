package model

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// VertexStride is the byte size of a GPUVertex as laid out in the vertex buffer.
const VertexStride = 24

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the mesh pipeline's vertex input (location 0 position, location 1 normal).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space
	Normal   [3]float32 // offset 12: vertex normal for lighting
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, VertexStride)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	return buf
}

// MarshalVertices serializes a vertex slice into one contiguous buffer.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: len(vertices)*VertexStride bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*VertexStride)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices serializes a uint32 index slice into little-endian bytes.
//
// Parameters:
//   - indices: the indices to serialize
//
// Returns:
//   - []byte: len(indices)*4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
