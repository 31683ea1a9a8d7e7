package material

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-scene/engine/gpu"
)

// MaxGPULayers is the number of layer slots in a GPUMaterial. Materials with more
// layers cannot be staged.
const MaxGPULayers = 4

// GPUMaterialLayer is the GPU-aligned representation of a single material layer.
// Size: 64 bytes (std430 / WGSL aligned).
type GPUMaterialLayer struct {
	Albedo     [4]float32 // offset  0: RGBA albedo (radiance for emissive layers)
	ExtraParam [4]float32 // offset 16: IOR or (eta, k)
	Roughness  float32    // offset 32
	LayerType  uint32     // offset 36
	Blend      uint32     // offset 40
	NDF        uint32     // offset 44
	HasTexture uint32     // offset 48: 1 if the layer samples a texture
	_pad       [3]uint32  // offset 52: padding to 64-byte alignment
}

// Size returns the size of the GPUMaterialLayer struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUMaterialLayer) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialLayer struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUMaterialLayer) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Albedo[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.ExtraParam[i]))
	}
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Roughness))
	binary.LittleEndian.PutUint32(buf[36:40], g.LayerType)
	binary.LittleEndian.PutUint32(buf[40:44], g.Blend)
	binary.LittleEndian.PutUint32(buf[44:48], g.NDF)
	binary.LittleEndian.PutUint32(buf[48:52], g.HasTexture)
	return buf
}

// GPUMaterial is the GPU-aligned representation of a material: a 16-byte header
// followed by MaxGPULayers layer slots.
// Size: 16 + 64*MaxGPULayers bytes.
type GPUMaterial struct {
	LayerCount  uint32 // offset 0
	DoubleSided uint32 // offset 4
	_pad        [2]uint32
	Layers      [MaxGPULayers]GPUMaterialLayer
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: buffer ready for GPU upload
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, 16, 16+64*MaxGPULayers)
	binary.LittleEndian.PutUint32(buf[0:4], g.LayerCount)
	binary.LittleEndian.PutUint32(buf[4:8], g.DoubleSided)
	for i := range g.Layers {
		buf = append(buf, g.Layers[i].Marshal()...)
	}
	return buf
}

// NewGPUMaterial stages m into its GPU representation.
//
// Parameters:
//   - m: the material to stage
//
// Returns:
//   - GPUMaterial: the staged record
//   - error: an error if m has more than MaxGPULayers layers
func NewGPUMaterial(m Material) (GPUMaterial, error) {
	var g GPUMaterial
	layers := m.Layers()
	if len(layers) > MaxGPULayers {
		return g, fmt.Errorf("material %q has %d layers, max %d", m.Name(), len(layers), MaxGPULayers)
	}
	g.LayerCount = uint32(len(layers))
	if m.DoubleSided() {
		g.DoubleSided = 1
	}
	for i, l := range layers {
		g.Layers[i] = GPUMaterialLayer{
			Albedo:     l.Albedo,
			ExtraParam: l.ExtraParam,
			Roughness:  l.Roughness,
			LayerType:  uint32(l.Type),
			Blend:      uint32(l.Blend),
			NDF:        uint32(l.NDF),
		}
		if l.Texture != "" {
			g.Layers[i].HasTexture = 1
		}
	}
	return g, nil
}

// SetIntoConstantBuffer stages m and writes it into the named constant buffer variable.
//
// Parameters:
//   - m: the material to stage
//   - cb: the destination buffer
//   - varName: the variable name
//
// Returns:
//   - error: an error if staging or the write fails
func SetIntoConstantBuffer(m Material, cb gpu.ConstantBuffer, varName string) error {
	g, err := NewGPUMaterial(m)
	if err != nil {
		return err
	}
	return cb.SetBlob(varName, g.Marshal())
}
