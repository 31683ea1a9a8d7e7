package light

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/gpu"
	"github.com/Carmen-Shannon/oxy-scene/engine/instance"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/chewxy/math32"
)

// ErrNotEmissive is returned when a mesh light is requested for a mesh whose
// material has no emissive layer.
var ErrNotEmissive = errors.New("light: mesh material has no emissive layer")

type meshAreaLight struct {
	lightBase
	inst      instance.ObjectInstance[model.Model]
	meshIndex int
}

// MeshAreaLight is an area light bound to one mesh of an instance already placed
// in a scene. It references but does not own the geometry; the intensity is the
// emissive layer of the mesh material, which is shared with every other user of
// that material.
type MeshAreaLight interface {
	Light

	// Instance returns the instance the light is bound to.
	//
	// Returns:
	//   - instance.ObjectInstance[model.Model]: the bound instance
	Instance() instance.ObjectInstance[model.Model]

	// MeshIndex returns the index of the emitting mesh within the instance's model.
	//
	// Returns:
	//   - int: the mesh index
	MeshIndex() int

	// Mesh returns the emitting mesh.
	//
	// Returns:
	//   - model.Mesh: the mesh
	Mesh() model.Mesh

	// SurfaceArea returns the world-space area of the emitting mesh.
	//
	// Returns:
	//   - float32: the surface area
	SurfaceArea() float32
}

var _ MeshAreaLight = &meshAreaLight{}

// NewMeshAreaLight binds a light to mesh meshIndex of inst. The light name defaults
// to "<instance>_<mesh>" and the intensity to the emissive layer albedo. Panics with
// *common.IndexOutOfRangeError if meshIndex is out of range.
//
// Parameters:
//   - inst: the instance carrying the emissive mesh
//   - meshIndex: the mesh index within inst.Object()
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - MeshAreaLight: the new light
//   - error: ErrNotEmissive if the mesh material has no emissive layer
func NewMeshAreaLight(inst instance.ObjectInstance[model.Model], meshIndex int, options ...LightBuilderOption) (MeshAreaLight, error) {
	mesh := inst.Object().Mesh(meshIndex)
	radiance, ok := material.EmissiveRadiance(mesh.Material())
	if !ok {
		return nil, fmt.Errorf("mesh %q of instance %q: %w", mesh.Name(), inst.Name(), ErrNotEmissive)
	}

	opts := append([]LightBuilderOption{
		WithName(inst.Name() + "_" + mesh.Name()),
		WithIntensity(radiance[0], radiance[1], radiance[2]),
	}, options...)
	cfg := newLightConfig(opts)

	l := &meshAreaLight{lightBase: cfg.base(LightTypeMeshArea), inst: inst, meshIndex: meshIndex}
	l.provenance = ProvenanceEmissiveMesh
	l.position = inst.Translation()
	return l, nil
}

func (l *meshAreaLight) Instance() instance.ObjectInstance[model.Model] {
	return l.inst
}

func (l *meshAreaLight) MeshIndex() int {
	return l.meshIndex
}

func (l *meshAreaLight) Mesh() model.Mesh {
	return l.inst.Object().Mesh(l.meshIndex)
}

func (l *meshAreaLight) SetName(name string) {
	l.name = name
}

func (l *meshAreaLight) Position() [3]float32 {
	return l.inst.Translation()
}

func (l *meshAreaLight) SetPosition(p [3]float32) {
	l.position = p
	l.inst.SetTranslation(p[0], p[1], p[2])
}

func (l *meshAreaLight) Move(position, target, up [3]float32) {
	l.position = position
	l.inst.Move(position, target, up)
}

// SetIntensity updates the emissive layer of the mesh material in place. The change
// is visible to every mesh sharing the material.
func (l *meshAreaLight) SetIntensity(rgb [3]float32) {
	l.intensity = rgb
	mat := l.Mesh().Material()
	if mat == nil {
		return
	}
	if i := mat.FindLayer(material.LayerTypeEmissive); i >= 0 {
		mat.SetLayerAlbedo(i, [4]float32{rgb[0], rgb[1], rgb[2], 0})
	}
}

func (l *meshAreaLight) SurfaceArea() float32 {
	m := l.inst.TransformMatrix()
	return l.Mesh().Data().SurfaceArea(m[:])
}

func (l *meshAreaLight) Power() float32 {
	return common.Luminance(l.intensity) * math32.Pi * l.SurfaceArea()
}

func (l *meshAreaLight) PrepareGPUData() {
	l.position = l.inst.Translation()
	l.stage(l.SurfaceArea(), l.inst.TransformMatrix())
}

func (l *meshAreaLight) SetIntoConstantBuffer(cb gpu.ConstantBuffer, varName string) error {
	l.PrepareGPUData()
	return l.writeInto(cb, varName)
}
