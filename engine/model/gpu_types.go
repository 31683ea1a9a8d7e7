package model

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Size: 64 bytes (std430 aligned, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
	Color    [4]float32 // offset 32: per-vertex RGBA color (16 bytes)
	Tangent  [4]float32 // offset 48: tangent vector (xyz) + handedness (w) (16 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 64)
	put := func(off int, vals ...float32) {
		for i, v := range vals {
			binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(v))
		}
	}
	put(0, g.Position[:]...)
	put(12, g.Normal[:]...)
	put(24, g.TexCoord[:]...)
	put(32, g.Color[:]...)
	put(48, g.Tangent[:]...)
	return buf
}

// GPUModelData is the GPU-aligned representation of a single per-instance model matrix.
// Size: 64 bytes (mat4x4<f32> = 16 × float32, std430 aligned, no padding required).
type GPUModelData struct {
	Model [16]float32 // offset 0: 4×4 model-to-world transform matrix (64 bytes)
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	return buf
}

// MarshalIndices encodes a uint32 index buffer as little-endian bytes.
//
// Parameters:
//   - indices: the indices
//
// Returns:
//   - []byte: the encoded buffer, nil when empty
func MarshalIndices(indices []uint32) []byte {
	if len(indices) == 0 {
		return nil
	}
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// ComputeBoundingRadius returns the maximum distance from the origin to any corner
// of the box [min, max].
//
// Parameters:
//   - min, max: the box corners
//
// Returns:
//   - float32: the bounding radius
func ComputeBoundingRadius(min, max [3]float32) float32 {
	var maxDistSq float32
	for i := 0; i < 8; i++ {
		p := BoxCorner(min, max, i)
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}

// BoxCorner returns corner i (0..7) of the box [min, max]; bit 0 selects x, bit 1
// selects y and bit 2 selects z.
//
// Parameters:
//   - min, max: the box corners
//   - i: the corner index
//
// Returns:
//   - [3]float32: the corner
func BoxCorner(min, max [3]float32, i int) [3]float32 {
	c := min
	if i&1 != 0 {
		c[0] = max[0]
	}
	if i&2 != 0 {
		c[1] = max[1]
	}
	if i&4 != 0 {
		c[2] = max[2]
	}
	return c
}
