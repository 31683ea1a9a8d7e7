package light

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/gpu"
	"github.com/chewxy/math32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	LightTypePoint

	// LightTypeSphereArea represents a spherical emitter backed by a generated
	// emissive sphere instance.
	LightTypeSphereArea

	// LightTypePolygonalArea represents a flat convex emitter backed by a generated
	// emissive polygon instance.
	LightTypePolygonalArea

	// LightTypeMeshArea represents an emitter bound to an existing mesh whose
	// material carries an emissive layer.
	LightTypeMeshArea
)

// String returns the lower-case name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSphereArea:
		return "sphere"
	case LightTypePolygonalArea:
		return "polygonal"
	case LightTypeMeshArea:
		return "mesh"
	}
	return "unknown"
}

// Provenance records how a light came to exist in a scene.
type Provenance int

const (
	// ProvenanceAuthored marks lights created explicitly by a caller.
	ProvenanceAuthored Provenance = iota

	// ProvenanceEmissiveMesh marks lights synthesized from emissive mesh materials.
	// Only these are removed by a scene's DeleteAreaLights.
	ProvenanceEmissiveMesh
)

// lightBase holds the state shared by every light variant.
type lightBase struct {
	name        string
	lightType   LightType
	provenance  Provenance
	position    [3]float32
	direction   [3]float32
	intensity   [3]float32
	gpuData     GPULight
	gpuPrepared bool
}

// Light is the capability interface shared by every light variant.
//
// Lights are owned by a scene's light collection. Area light variants additionally
// own or reference an emissive mesh instance inside a scene; see AreaLight and
// MeshAreaLight.
type Light interface {
	// Name returns the light name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetName renames the light. Area lights also rename their emissive instance.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Type returns the variant tag.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Provenance reports whether the light was authored or synthesized from an
	// emissive mesh.
	//
	// Returns:
	//   - Provenance: the provenance tag
	Provenance() Provenance

	// Position returns the world-space position. Meaningless for directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// SetPosition moves the light without changing its orientation.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p [3]float32)

	// Direction returns the normalized emission direction. Only directional lights
	// use it.
	//
	// Returns:
	//   - [3]float32: the direction
	Direction() [3]float32

	// Intensity returns the RGB intensity (radiance for area lights).
	//
	// Returns:
	//   - [3]float32: the intensity
	Intensity() [3]float32

	// SetIntensity sets the RGB intensity. Area lights update their emissive
	// material in place without rebuilding geometry.
	//
	// Parameters:
	//   - rgb: the intensity
	SetIntensity(rgb [3]float32)

	// Power returns the total emitted power derived from the intensity luminance.
	//
	// Returns:
	//   - float32: the power
	Power() float32

	// Move places the light at position facing target.
	//
	// Parameters:
	//   - position: the new position
	//   - target: the point to face
	//   - up: the up vector
	Move(position, target, up [3]float32)

	// PrepareGPUData refreshes the GPU staging record from the current state.
	PrepareGPUData()

	// GPUData returns the staging record filled by the last PrepareGPUData.
	//
	// Returns:
	//   - GPULight: the staging record
	//   - bool: false if the record was never prepared or has been unloaded
	GPUData() (GPULight, bool)

	// SetIntoConstantBuffer prepares the staging record and writes it into the named
	// constant buffer variable.
	//
	// Parameters:
	//   - cb: the destination buffer
	//   - varName: the variable name
	//
	// Returns:
	//   - error: an error if the buffer rejects the write
	SetIntoConstantBuffer(cb gpu.ConstantBuffer, varName string) error

	// UnloadGPUData discards the staging record.
	UnloadGPUData()
}

func (l *lightBase) Name() string {
	return l.name
}

func (l *lightBase) Type() LightType {
	return l.lightType
}

func (l *lightBase) Provenance() Provenance {
	return l.provenance
}

func (l *lightBase) Position() [3]float32 {
	return l.position
}

func (l *lightBase) Direction() [3]float32 {
	return l.direction
}

func (l *lightBase) Intensity() [3]float32 {
	return l.intensity
}

func (l *lightBase) GPUData() (GPULight, bool) {
	return l.gpuData, l.gpuPrepared
}

func (l *lightBase) UnloadGPUData() {
	l.gpuData = GPULight{}
	l.gpuPrepared = false
}

// stage fills the fields of the staging record common to all variants.
func (l *lightBase) stage(surfaceArea float32, transform [16]float32) {
	l.gpuData = GPULight{
		Position:    l.position,
		LightType:   uint32(l.lightType),
		Intensity:   l.intensity,
		SurfaceArea: surfaceArea,
		Direction:   l.direction,
		Transform:   transform,
	}
	l.gpuPrepared = true
}

// writeInto marshals the staging record into cb.
func (l *lightBase) writeInto(cb gpu.ConstantBuffer, varName string) error {
	return cb.SetBlob(varName, l.gpuData.Marshal())
}

// punctualLight is the implementation of the point and directional variants.
type punctualLight struct {
	lightBase
}

var _ Light = &punctualLight{}

// NewPointLight creates a point light. Defaults: position at the origin, white
// intensity.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - Light: the new point light
func NewPointLight(options ...LightBuilderOption) Light {
	cfg := newLightConfig(options)
	return &punctualLight{lightBase: cfg.base(LightTypePoint)}
}

// NewDirectionalLight creates a directional light. Defaults: direction (0, -1, 0),
// white intensity.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - Light: the new directional light
func NewDirectionalLight(options ...LightBuilderOption) Light {
	cfg := newLightConfig(options)
	return &punctualLight{lightBase: cfg.base(LightTypeDirectional)}
}

func (l *punctualLight) SetName(name string) {
	l.name = name
}

func (l *punctualLight) SetPosition(p [3]float32) {
	l.position = p
}

func (l *punctualLight) SetIntensity(rgb [3]float32) {
	l.intensity = rgb
}

// Power returns 4π·luminance for point lights and the luminance itself for
// directional lights, which have no finite emitting area.
func (l *punctualLight) Power() float32 {
	lum := common.Luminance(l.intensity)
	if l.lightType == LightTypePoint {
		return 4 * math32.Pi * lum
	}
	return lum
}

func (l *punctualLight) Move(position, target, up [3]float32) {
	l.position = position
	if dir := common.Sub3(target, position); common.Length3(dir) > 0 {
		l.direction = common.Normalize3(dir)
	}
}

func (l *punctualLight) PrepareGPUData() {
	var transform [16]float32
	common.BuildModelMatrix(transform[:], l.position[0], l.position[1], l.position[2], 0, 0, 0, 1, 1, 1)
	l.stage(0, transform)
}

func (l *punctualLight) SetIntoConstantBuffer(cb gpu.ConstantBuffer, varName string) error {
	l.PrepareGPUData()
	return l.writeInto(cb, varName)
}
