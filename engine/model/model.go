package model

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/chewxy/math32"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name     string
	data     *geometry.MeshData
	mat      material.Material
	min, max [3]float32
}

// Mesh is a vertex/index buffer pair bound to a material. The geometry is fixed at
// construction; the material binding may change.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Data returns the mesh geometry. Callers must not modify it.
	//
	// Returns:
	//   - *geometry.MeshData: the geometry
	Data() *geometry.MeshData

	// Material returns the bound material, or nil.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// SetMaterial binds a material to the mesh.
	//
	// Parameters:
	//   - m: the material
	SetMaterial(m material.Material)

	// Bounds returns the local-space axis-aligned bounding box.
	//
	// Returns:
	//   - min, max: the box corners
	Bounds() (min, max [3]float32)

	// VertexData returns the mesh vertices marshaled as GPUVertex records.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the index buffer as little-endian uint32 values.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh from geometry and a material.
//
// Parameters:
//   - name: the mesh name
//   - data: the geometry (retained, not copied)
//   - mat: the material, may be nil
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(name string, data *geometry.MeshData, mat material.Material) Mesh {
	if data == nil {
		data = &geometry.MeshData{}
	}
	m := &mesh{name: name, data: data, mat: mat}
	m.min, m.max = data.Bounds()
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Data() *geometry.MeshData {
	return m.data
}

func (m *mesh) Material() material.Material {
	return m.mat
}

func (m *mesh) SetMaterial(mat material.Material) {
	m.mat = mat
}

func (m *mesh) Bounds() (min, max [3]float32) {
	return m.min, m.max
}

func (m *mesh) VertexData() []byte {
	color := [4]float32{1, 1, 1, 1}
	buf := make([]byte, 0, len(m.data.Vertices)*64)
	for _, v := range m.data.Vertices {
		g := GPUVertex{Position: v.Position, Normal: v.Normal, TexCoord: v.TexCoord, Color: color}
		buf = append(buf, g.Marshal()...)
	}
	return buf
}

func (m *mesh) IndexData() []byte {
	return MarshalIndices(m.data.Indices)
}

func (m *mesh) IndexCount() int {
	return len(m.data.Indices)
}

// model is the implementation of the Model interface.
type model struct {
	name           string
	meshes         []Mesh
	min, max       [3]float32
	boundingRadius float32
}

// Model is a named collection of meshes shared by every instance placed in a scene.
// Model identity is pointer identity: two instances reference the same model when
// their Object() values are equal.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// SetName renames the model.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// MeshCount returns the number of meshes.
	//
	// Returns:
	//   - int: the mesh count
	MeshCount() int

	// Mesh returns the mesh at index i. Panics with *common.IndexOutOfRangeError
	// if i is out of range.
	//
	// Parameters:
	//   - i: the mesh index
	//
	// Returns:
	//   - Mesh: the mesh
	Mesh(i int) Mesh

	// Meshes returns a copy of the mesh list.
	//
	// Returns:
	//   - []Mesh: the meshes
	Meshes() []Mesh

	// AddMesh appends a mesh and grows the model bounds.
	//
	// Parameters:
	//   - m: the mesh
	//
	// Returns:
	//   - int: the mesh index
	AddMesh(m Mesh) int

	// Bounds returns the local-space axis-aligned bounding box over all meshes.
	//
	// Returns:
	//   - min, max: the box corners
	Bounds() (min, max [3]float32)

	// BoundingRadius returns the maximum distance of any bounds corner from the
	// local origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model configured with the provided options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions
//
// Returns:
//   - Model: the new model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewModelFromMesh creates a single-mesh Model.
//
// Parameters:
//   - name: the model and mesh name
//   - data: the geometry
//   - mat: the material bound to the mesh
//
// Returns:
//   - Model: the new model
func NewModelFromMesh(name string, data *geometry.MeshData, mat material.Material) Model {
	return NewModel(WithName(name), WithMesh(NewMesh(name, data, mat)))
}

func (m *model) Name() string {
	return m.name
}

func (m *model) SetName(name string) {
	m.name = name
}

func (m *model) MeshCount() int {
	return len(m.meshes)
}

func (m *model) Mesh(i int) Mesh {
	common.CheckIndex("model meshes", i, len(m.meshes))
	return m.meshes[i]
}

func (m *model) Meshes() []Mesh {
	out := make([]Mesh, len(m.meshes))
	copy(out, m.meshes)
	return out
}

func (m *model) AddMesh(ms Mesh) int {
	mn, mx := ms.Bounds()
	if len(m.meshes) == 0 {
		m.min, m.max = mn, mx
	} else {
		for i := 0; i < 3; i++ {
			m.min[i] = math32.Min(m.min[i], mn[i])
			m.max[i] = math32.Max(m.max[i], mx[i])
		}
	}
	m.meshes = append(m.meshes, ms)
	m.boundingRadius = ComputeBoundingRadius(m.min, m.max)
	return len(m.meshes) - 1
}

func (m *model) Bounds() (min, max [3]float32) {
	return m.min, m.max
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
