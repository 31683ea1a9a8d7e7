package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULight is the GPU-aligned staging record of a single light source.
// Size: 112 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position    [3]float32  // offset   0: world-space position
	LightType   uint32      // offset  12: LightType tag
	Intensity   [3]float32  // offset  16: RGB intensity or radiance
	SurfaceArea float32     // offset  28: emitting area, 0 for punctual lights
	Direction   [3]float32  // offset  32: normalized direction (directional only)
	_pad        uint32      // offset  44: padding to 16-byte alignment
	Transform   [16]float32 // offset  48: column-major world transform of the emitter
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 112)
	putVec3(buf[0:12], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putVec3(buf[16:28], g.Intensity)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.SurfaceArea))
	putVec3(buf[32:44], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:48], 0) // padding
	for i, v := range g.Transform {
		off := 48 + i*4
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
	}
	return buf
}

func putVec3(dst []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(v[2]))
}
