package material

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/chewxy/math32"
)

// BasicMaterial is a flat, non-layered material description such as the ones
// produced by simple model formats. ConvertToMaterial turns it into a layered
// Material.
type BasicMaterial struct {
	Name          string
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	EmissiveColor [3]float32
	Shininess     float32
	IOR           float32
	Opacity       float32
	DoubleSided   bool

	DiffuseTexture  string
	SpecularTexture string
	EmissiveTexture string
	NormalMap       string
	HeightMap       string
	AlphaMap        string
	AOMap           string
}

// ConvertToMaterial builds a layered Material from the basic description.
// Layers are emitted in the order emissive, lambert, conductor, dielectric, and a
// component is only emitted when its color is non-black or a texture is bound.
// A dielectric layer is added for translucent materials (Opacity in (0, 1)) with a
// positive IOR.
//
// Returns:
//   - Material: the converted material
func (b BasicMaterial) ConvertToMaterial() Material {
	m := NewMaterial(WithName(b.Name), WithDoubleSided(b.DoubleSided))

	if common.Luminance(b.EmissiveColor) > 0 || b.EmissiveTexture != "" {
		m.AddLayer(Layer{
			Type:    LayerTypeEmissive,
			Blend:   BlendAdd,
			Albedo:  [4]float32{b.EmissiveColor[0], b.EmissiveColor[1], b.EmissiveColor[2], 0},
			Texture: b.EmissiveTexture,
		})
	}
	if common.Luminance(b.DiffuseColor) > 0 || b.DiffuseTexture != "" {
		m.AddLayer(Layer{
			Type:    LayerTypeLambert,
			Blend:   BlendAdd,
			Albedo:  [4]float32{b.DiffuseColor[0], b.DiffuseColor[1], b.DiffuseColor[2], 1},
			Texture: b.DiffuseTexture,
		})
	}
	if common.Luminance(b.SpecularColor) > 0 || b.SpecularTexture != "" {
		m.AddLayer(Layer{
			Type:       LayerTypeConductor,
			Blend:      BlendFresnel,
			NDF:        NDFGGX,
			Albedo:     [4]float32{b.SpecularColor[0], b.SpecularColor[1], b.SpecularColor[2], 1},
			Roughness:  ShininessToRoughness(b.Shininess),
			ExtraParam: [4]float32{common.Coalesce(b.IOR, 1.5), 0, 0, 0},
			Texture:    b.SpecularTexture,
		})
	}
	if b.Opacity > 0 && b.Opacity < 1 && b.IOR > 0 {
		m.AddLayer(Layer{
			Type:       LayerTypeDielectric,
			Blend:      BlendFresnel,
			NDF:        NDFGGX,
			Albedo:     [4]float32{1, 1, 1, 1 - b.Opacity},
			ExtraParam: [4]float32{b.IOR, 0, 0, 0},
		})
	}

	m.SetMap(MapNormal, b.NormalMap)
	m.SetMap(MapHeight, b.HeightMap)
	m.SetMap(MapAlpha, b.AlphaMap)
	m.SetMap(MapAmbientOcclusion, b.AOMap)
	return m
}

// ShininessToRoughness maps a Blinn-Phong exponent to a Beckmann roughness.
// A shininess of 0 yields a fully rough layer.
//
// Parameters:
//   - shininess: the Phong exponent
//
// Returns:
//   - float32: the roughness in [0, 1]
func ShininessToRoughness(shininess float32) float32 {
	if shininess < 0 {
		shininess = 0
	}
	return math32.Sqrt(2 / (shininess + 2))
}

// NewEmissiveMaterial creates a double-sided material whose layer 0 is an emissive
// layer with the given radiance. The layer exists even for black radiance so that
// it can be updated in place later.
//
// Parameters:
//   - name: the material name
//   - radiance: the emitted radiance
//
// Returns:
//   - Material: the emissive material
func NewEmissiveMaterial(name string, radiance [3]float32) Material {
	m := BasicMaterial{Name: name, EmissiveColor: radiance, DoubleSided: true}.ConvertToMaterial()
	if m.FindLayer(LayerTypeEmissive) != 0 {
		m = NewMaterial(
			WithName(name),
			WithDoubleSided(true),
			WithLayer(Layer{Type: LayerTypeEmissive, Blend: BlendAdd, Albedo: [4]float32{radiance[0], radiance[1], radiance[2], 0}}),
		)
	}
	return m
}

// EmissiveRadiance returns the rgb albedo of the first emissive layer of m.
//
// Parameters:
//   - m: the material to inspect
//
// Returns:
//   - [3]float32: the emitted radiance
//   - bool: false if m is nil or has no emissive layer
func EmissiveRadiance(m Material) ([3]float32, bool) {
	if m == nil {
		return [3]float32{}, false
	}
	i := m.FindLayer(LayerTypeEmissive)
	if i < 0 {
		return [3]float32{}, false
	}
	a := m.Layer(i).Albedo
	return [3]float32{a[0], a[1], a[2]}, true
}
