package material

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoBSDFLayers is returned by Compose for a material with no lambert,
// conductor or dielectric layer.
var ErrNoBSDFLayers = errors.New("material: no BSDF layers")

// TextureParam marks a BSDF parameter whose value is a texture reference rather
// than a constant.
type TextureParam string

// BSDFParam is a single named parameter of a BSDF node.
type BSDFParam struct {
	Name  string
	Value any
}

// BSDF is an exporter-neutral node of a composed scattering function.
type BSDF struct {
	Type     string
	Params   []BSDFParam
	Children []*BSDF
}

// Param returns the value of the named parameter.
//
// Parameters:
//   - name: the parameter name
//
// Returns:
//   - any: the value
//   - bool: false if the node has no such parameter
func (b *BSDF) Param(name string) (any, bool) {
	for _, p := range b.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func (b *BSDF) add(name string, value any) {
	b.Params = append(b.Params, BSDFParam{Name: name, Value: value})
}

// Compose builds the BSDF tree of a layered material.
//
// A single contributing layer maps to one node. With several layers a dielectric
// layer becomes a coating that wraps the remaining layers, and lambert plus
// conductor layers are combined by an equally weighted mixture that does not
// enforce energy conservation. A roughness of exactly zero selects the smooth
// variant of a node; otherwise the rough variant with the layer's NDF is used.
// Emissive and user layers do not contribute.
//
// Parameters:
//   - m: the material to compose
//
// Returns:
//   - *BSDF: the root node
//   - error: ErrNoBSDFLayers if nothing contributes
func Compose(m Material) (*BSDF, error) {
	var contributing []Layer
	for _, l := range m.Layers() {
		switch l.Type {
		case LayerTypeLambert, LayerTypeConductor, LayerTypeDielectric:
			contributing = append(contributing, l)
		}
	}
	if len(contributing) == 0 {
		return nil, fmt.Errorf("compose %q: %w", m.Name(), ErrNoBSDFLayers)
	}
	if len(contributing) == 1 {
		return singleLayer(contributing[0]), nil
	}

	var coating *Layer
	var inner []*BSDF
	for i := range contributing {
		l := contributing[i]
		if l.Type == LayerTypeDielectric && coating == nil {
			coating = &contributing[i]
			continue
		}
		inner = append(inner, singleLayer(l))
	}

	var base *BSDF
	switch len(inner) {
	case 0:
		// only dielectrics: nothing to coat
		return singleLayer(*coating), nil
	case 1:
		base = inner[0]
	default:
		base = mixture(inner)
	}
	if coating == nil {
		return base, nil
	}
	coat := coatingLayer(*coating)
	coat.Children = append(coat.Children, base)
	return coat, nil
}

func singleLayer(l Layer) *BSDF {
	switch l.Type {
	case LayerTypeLambert:
		n := &BSDF{Type: "diffuse"}
		n.add("reflectance", albedoOrTexture(l))
		return n
	case LayerTypeConductor:
		n := &BSDF{Type: "conductor"}
		if l.Roughness != 0 {
			n.Type = "roughconductor"
			n.add("distribution", l.NDF.String())
			n.add("alpha", l.Roughness)
		}
		n.add("eta", l.ExtraParam[0])
		n.add("k", l.ExtraParam[1])
		n.add("specularReflectance", albedoOrTexture(l))
		return n
	default:
		n := &BSDF{Type: "dielectric"}
		if l.Roughness != 0 {
			n.Type = "roughdielectric"
			n.add("distribution", l.NDF.String())
			n.add("alpha", l.Roughness)
		}
		n.add("intIOR", l.ExtraParam[0])
		n.add("specularReflectance", albedoOrTexture(l))
		return n
	}
}

func coatingLayer(l Layer) *BSDF {
	n := &BSDF{Type: "coating"}
	if l.Roughness != 0 {
		n.Type = "roughcoating"
		n.add("distribution", l.NDF.String())
		n.add("alpha", l.Roughness)
	}
	n.add("intIOR", l.ExtraParam[0])
	n.add("specularReflectance", albedoOrTexture(l))
	return n
}

func mixture(children []*BSDF) *BSDF {
	weights := make([]string, len(children))
	for i := range weights {
		weights[i] = "1.0"
	}
	n := &BSDF{Type: "mixturebsdf", Children: children}
	n.add("ensureEnergyConservation", false)
	n.add("weights", strings.Join(weights, ", "))
	return n
}

func albedoOrTexture(l Layer) any {
	if l.Texture != "" {
		return TextureParam(l.Texture)
	}
	return [3]float32{l.Albedo[0], l.Albedo[1], l.Albedo[2]}
}
