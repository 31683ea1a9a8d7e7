package material

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/jinzhu/copier"
)

// Desc is the plain-data description of a layered material. It is the form used
// to construct, snapshot and clone materials.
type Desc struct {
	Name        string
	DoubleSided bool
	Layers      []Layer
	Maps        map[MapType]string
	Sampler     string
}

// material is the implementation of the Material interface.
type material struct {
	desc Desc
}

// Material is a named, ordered stack of optical layers plus optional texture maps.
//
// Materials are shared by reference: every mesh bound to a material observes
// changes made through any holder. Use Clone for an independent copy.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// SetName renames the material.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// DoubleSided reports whether back faces are shaded.
	//
	// Returns:
	//   - bool: true if double sided
	DoubleSided() bool

	// SetDoubleSided sets whether back faces are shaded.
	//
	// Parameters:
	//   - doubleSided: true to shade back faces
	SetDoubleSided(doubleSided bool)

	// LayerCount returns the number of layers.
	//
	// Returns:
	//   - int: the layer count
	LayerCount() int

	// Layer returns a copy of the layer at index i. Panics with
	// *common.IndexOutOfRangeError if i is out of range.
	//
	// Parameters:
	//   - i: the layer index
	//
	// Returns:
	//   - Layer: the layer
	Layer(i int) Layer

	// Layers returns a copy of all layers in order.
	//
	// Returns:
	//   - []Layer: the layers
	Layers() []Layer

	// AddLayer appends a layer.
	//
	// Parameters:
	//   - layer: the layer to append
	//
	// Returns:
	//   - int: the index of the new layer
	AddLayer(layer Layer) int

	// SetLayer replaces the layer at index i.
	//
	// Parameters:
	//   - i: the layer index
	//   - layer: the replacement
	SetLayer(i int, layer Layer)

	// RemoveLayer removes the layer at index i, preserving the order of the rest.
	//
	// Parameters:
	//   - i: the layer index
	RemoveLayer(i int)

	// SetLayerAlbedo replaces the albedo of the layer at index i in place.
	//
	// Parameters:
	//   - i: the layer index
	//   - albedo: the new RGBA albedo
	SetLayerAlbedo(i int, albedo [4]float32)

	// FindLayer returns the index of the first layer of the given type, or -1.
	//
	// Parameters:
	//   - t: the layer type to look for
	//
	// Returns:
	//   - int: the layer index or -1
	FindLayer(t LayerType) int

	// Map returns the texture reference bound to the map slot, or "".
	//
	// Parameters:
	//   - t: the map slot
	//
	// Returns:
	//   - string: the texture reference
	Map(t MapType) string

	// SetMap binds a texture reference to the map slot. An empty reference clears it.
	//
	// Parameters:
	//   - t: the map slot
	//   - ref: the texture reference
	SetMap(t MapType, ref string)

	// Sampler returns the sampler key used for every texture of the material.
	//
	// Returns:
	//   - string: the sampler key
	Sampler() string

	// SetSampler sets the sampler key.
	//
	// Parameters:
	//   - sampler: the sampler key
	SetSampler(sampler string)

	// Desc returns a deep copy of the material's description.
	//
	// Returns:
	//   - Desc: the description
	Desc() Desc

	// Clone returns an independent deep copy of the material.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material
}

var _ Material = &material{}

// NewMaterial creates a new Material configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{desc: Desc{Maps: make(map[MapType]string)}}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewMaterialFromDesc creates a Material from a deep copy of d.
//
// Parameters:
//   - d: the description
//
// Returns:
//   - Material: a new Material instance
func NewMaterialFromDesc(d Desc) Material {
	return &material{desc: copyDesc(d)}
}

func (m *material) Name() string {
	return m.desc.Name
}

func (m *material) SetName(name string) {
	m.desc.Name = name
}

func (m *material) DoubleSided() bool {
	return m.desc.DoubleSided
}

func (m *material) SetDoubleSided(doubleSided bool) {
	m.desc.DoubleSided = doubleSided
}

func (m *material) LayerCount() int {
	return len(m.desc.Layers)
}

func (m *material) Layer(i int) Layer {
	common.CheckIndex("material layers", i, len(m.desc.Layers))
	return m.desc.Layers[i]
}

func (m *material) Layers() []Layer {
	out := make([]Layer, len(m.desc.Layers))
	copy(out, m.desc.Layers)
	return out
}

func (m *material) AddLayer(layer Layer) int {
	m.desc.Layers = append(m.desc.Layers, layer)
	return len(m.desc.Layers) - 1
}

func (m *material) SetLayer(i int, layer Layer) {
	common.CheckIndex("material layers", i, len(m.desc.Layers))
	m.desc.Layers[i] = layer
}

func (m *material) RemoveLayer(i int) {
	common.CheckIndex("material layers", i, len(m.desc.Layers))
	m.desc.Layers = append(m.desc.Layers[:i], m.desc.Layers[i+1:]...)
}

func (m *material) SetLayerAlbedo(i int, albedo [4]float32) {
	common.CheckIndex("material layers", i, len(m.desc.Layers))
	m.desc.Layers[i].Albedo = albedo
}

func (m *material) FindLayer(t LayerType) int {
	for i, l := range m.desc.Layers {
		if l.Type == t {
			return i
		}
	}
	return -1
}

func (m *material) Map(t MapType) string {
	return m.desc.Maps[t]
}

func (m *material) SetMap(t MapType, ref string) {
	if m.desc.Maps == nil {
		m.desc.Maps = make(map[MapType]string)
	}
	if ref == "" {
		delete(m.desc.Maps, t)
		return
	}
	m.desc.Maps[t] = ref
}

func (m *material) Sampler() string {
	return m.desc.Sampler
}

func (m *material) SetSampler(sampler string) {
	m.desc.Sampler = sampler
}

func (m *material) Desc() Desc {
	return copyDesc(m.desc)
}

func (m *material) Clone() Material {
	return &material{desc: copyDesc(m.desc)}
}

// copyDesc deep copies d so the result shares no slices or maps with it.
func copyDesc(d Desc) Desc {
	var out Desc
	if err := copier.CopyWithOption(&out, &d, copier.Option{DeepCopy: true}); err != nil {
		slog.Warn("material.copyDesc", "name", d.Name, "err", err)
		out = Desc{Name: d.Name, DoubleSided: d.DoubleSided, Sampler: d.Sampler}
		out.Layers = append([]Layer(nil), d.Layers...)
		out.Maps = make(map[MapType]string, len(d.Maps))
		for k, v := range d.Maps {
			out.Maps[k] = v
		}
	}
	if out.Maps == nil {
		out.Maps = make(map[MapType]string)
	}
	return out
}
