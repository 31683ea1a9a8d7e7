package material

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.desc.Name = name
	}
}

// WithDoubleSided is an option builder that sets whether back faces are shaded.
//
// Parameters:
//   - doubleSided: true to shade back faces
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithDoubleSided(doubleSided bool) MaterialBuilderOption {
	return func(m *material) {
		m.desc.DoubleSided = doubleSided
	}
}

// WithLayer is an option builder that appends a layer. Layers keep the order in
// which the options are applied.
//
// Parameters:
//   - layer: the layer to append
//
// Returns:
//   - MaterialBuilderOption: a function that applies the layer option to a material
func WithLayer(layer Layer) MaterialBuilderOption {
	return func(m *material) {
		m.desc.Layers = append(m.desc.Layers, layer)
	}
}

// WithMap is an option builder that binds a texture reference to a map slot.
//
// Parameters:
//   - t: the map slot
//   - ref: the texture reference
//
// Returns:
//   - MaterialBuilderOption: a function that applies the map option to a material
func WithMap(t MapType, ref string) MaterialBuilderOption {
	return func(m *material) {
		m.desc.Maps[t] = ref
	}
}

// WithSampler is an option builder that sets the sampler key.
//
// Parameters:
//   - sampler: the sampler key
//
// Returns:
//   - MaterialBuilderOption: a function that applies the sampler option to a material
func WithSampler(sampler string) MaterialBuilderOption {
	return func(m *material) {
		m.desc.Sampler = sampler
	}
}
