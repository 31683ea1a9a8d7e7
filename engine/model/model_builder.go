package model

// ModelBuilderOption is a function that configures a model instance during construction.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the model name.
//
// Parameters:
//   - name: the identifier for the model
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that appends a mesh to the model.
//
// Parameters:
//   - ms: the mesh to append
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(ms Mesh) ModelBuilderOption {
	return func(m *model) {
		m.AddMesh(ms)
	}
}
