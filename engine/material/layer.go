package material

// LayerType identifies the optical response of a material layer.
type LayerType int

const (
	// LayerTypeLambert is an ideal diffuse layer.
	LayerTypeLambert LayerType = iota

	// LayerTypeConductor is a metallic layer parameterized by a complex index of
	// refraction (eta, k).
	LayerTypeConductor

	// LayerTypeDielectric is a transmissive layer parameterized by an index of
	// refraction. When combined with other layers it acts as a coating.
	LayerTypeDielectric

	// LayerTypeEmissive is a light-emitting layer. Its albedo is the emitted radiance.
	LayerTypeEmissive

	// LayerTypeUser is an application-defined layer ignored by BSDF composition.
	LayerTypeUser
)

var layerTypeNames = [...]string{"lambert", "conductor", "dielectric", "emissive", "user"}

func (t LayerType) String() string {
	if t < 0 || int(t) >= len(layerTypeNames) {
		return "unknown"
	}
	return layerTypeNames[t]
}

// BlendMode controls how a layer is combined with the layers beneath it.
type BlendMode int

const (
	// BlendFresnel weights the layer by the Fresnel term.
	BlendFresnel BlendMode = iota
	// BlendConstant weights the layer by its albedo alpha.
	BlendConstant
	// BlendAdd adds the layer on top without attenuation.
	BlendAdd
)

// NDF is the microfacet normal distribution function of a rough layer.
type NDF int

const (
	// NDFBeckmann selects the Beckmann distribution.
	NDFBeckmann NDF = iota
	// NDFGGX selects the GGX (Trowbridge-Reitz) distribution.
	NDFGGX
)

func (n NDF) String() string {
	if n == NDFGGX {
		return "ggx"
	}
	return "beckmann"
}

// Layer is one optical component of a layered material.
//
// ExtraParam carries the type specific optical constants: for a dielectric
// ExtraParam[0] is the interior index of refraction; for a conductor
// ExtraParam[0] is eta and ExtraParam[1] is k.
type Layer struct {
	Type       LayerType
	Blend      BlendMode
	NDF        NDF
	Albedo     [4]float32
	Roughness  float32
	ExtraParam [4]float32
	Texture    string
}

// MapType identifies a per-material texture map that is not bound to a layer.
type MapType int

const (
	// MapNormal is the tangent space normal map.
	MapNormal MapType = iota
	// MapHeight is the height/displacement map.
	MapHeight
	// MapAlpha is the alpha test mask.
	MapAlpha
	// MapAmbientOcclusion is the baked ambient occlusion map.
	MapAmbientOcclusion
)
