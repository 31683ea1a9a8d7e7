package light

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scene/engine/gpu"
	"github.com/Carmen-Shannon/oxy-scene/engine/instance"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/chewxy/math32"
)

// emissiveSuffix is appended to a light name to name its synthesized model and instance.
const emissiveSuffix = "_Emissive"

// areaShape is implemented by each area light variant to describe its geometry.
type areaShape interface {
	// buildMesh generates the emitter mesh from the current parameters.
	buildMesh(f geometry.MeshFactory) (*geometry.MeshData, error)

	// placeInstance applies the current position and orientation to inst.
	placeInstance(inst instance.ObjectInstance[model.Model])

	// shapeArea returns the emitting surface area for freshly built data.
	shapeArea(data *geometry.MeshData) float32
}

// areaLight holds the state shared by the area light variants that own a
// synthesized emissive instance.
type areaLight struct {
	lightBase
	shape    areaShape
	factory  geometry.MeshFactory
	scene    SceneRef
	emissive material.Material
	inst     instance.ObjectInstance[model.Model]
	surface  float32
}

// AreaLight is a light whose emitter is a synthesized emissive mesh instance.
//
// An area light is Detached until AddToScene is called, after which it holds a weak
// reference to the scene and its instance lives in the scene's model collection.
// Geometry setters remove the old instance, rebuild and reinsert it, so the scene
// always holds exactly one instance attributable to the light.
type AreaLight interface {
	Light

	// AddToScene stores a weak reference to host and inserts the emitter instance.
	// A light attached to another live scene is detached from it first.
	//
	// Parameters:
	//   - host: the scene to join
	//
	// Returns:
	//   - error: an error if geometry had to be rebuilt and the mesh factory failed
	AddToScene(host SceneHost) error

	// Attached reports whether the light references a live scene.
	//
	// Returns:
	//   - bool: true if attached
	Attached() bool

	// AttachedTo reports whether the light is attached to sc.
	//
	// Parameters:
	//   - sc: the scene to compare against
	//
	// Returns:
	//   - bool: true if sc is the live scene the light references
	AttachedTo(sc SceneGraph) bool

	// Detach removes the emitter from the scene and drops the scene reference.
	// The instance is kept and is reinserted by the next AddToScene.
	Detach()

	// Destroy removes the emitter from the scene and releases the instance.
	// Owners call Destroy before dropping the light.
	Destroy()

	// Instance returns the emitter instance, or nil after Destroy.
	//
	// Returns:
	//   - instance.ObjectInstance[model.Model]: the emitter instance
	Instance() instance.ObjectInstance[model.Model]

	// Material returns the emissive material. Layer 0 is always the emissive layer.
	//
	// Returns:
	//   - material.Material: the emissive material
	Material() material.Material

	// SurfaceArea returns the emitting area used for power and GPU staging.
	//
	// Returns:
	//   - float32: the surface area
	SurfaceArea() float32
}

func (a *areaLight) init(cfg *lightConfig, t LightType, shape areaShape) error {
	a.lightBase = cfg.base(t)
	a.shape = shape
	a.factory = cfg.factory
	a.emissive = material.NewEmissiveMaterial(a.name+emissiveSuffix, a.intensity)
	return a.rebuild()
}

func (a *areaLight) SetName(name string) {
	a.name = name
	a.emissive.SetName(name + emissiveSuffix)
	if a.inst != nil {
		a.inst.SetName(name + emissiveSuffix)
		a.inst.Object().SetName(name + emissiveSuffix)
	}
}

func (a *areaLight) SetIntensity(rgb [3]float32) {
	a.intensity = rgb
	a.emissive.SetLayerAlbedo(0, [4]float32{rgb[0], rgb[1], rgb[2], 0})
}

func (a *areaLight) Power() float32 {
	return common.Luminance(a.intensity) * math32.Pi * a.surface
}

func (a *areaLight) SurfaceArea() float32 {
	return a.surface
}

func (a *areaLight) Instance() instance.ObjectInstance[model.Model] {
	return a.inst
}

func (a *areaLight) Material() material.Material {
	return a.emissive
}

func (a *areaLight) AddToScene(host SceneHost) error {
	if sc, ok := a.liveScene(); ok && sc != host {
		a.Detach()
	}
	a.scene = host.WeakRef()
	if a.inst == nil {
		// rebuild inserts the fresh instance into the live scene
		return a.rebuild()
	}
	if findModelSlot(host, a.inst.Object()) < 0 {
		host.AddModelInstance(a.inst)
	}
	return nil
}

func (a *areaLight) Attached() bool {
	_, ok := a.liveScene()
	return ok
}

func (a *areaLight) AttachedTo(sc SceneGraph) bool {
	live, ok := a.liveScene()
	return ok && live == sc
}

func (a *areaLight) Detach() {
	if sc, ok := a.liveScene(); ok && a.inst != nil {
		if id := findModelSlot(sc, a.inst.Object()); id >= 0 {
			sc.DeleteModel(id)
		}
	}
	a.scene = nil
}

func (a *areaLight) Destroy() {
	a.resetGeometry()
	a.scene = nil
	slog.Debug("light.Destroy", "name", a.name, "type", a.lightType)
}

func (a *areaLight) PrepareGPUData() {
	var transform [16]float32
	if a.inst != nil {
		transform = a.inst.TransformMatrix()
	} else {
		common.BuildModelMatrix(transform[:], a.position[0], a.position[1], a.position[2], 0, 0, 0, 1, 1, 1)
	}
	a.stage(a.surface, transform)
}

func (a *areaLight) SetIntoConstantBuffer(cb gpu.ConstantBuffer, varName string) error {
	a.PrepareGPUData()
	return a.writeInto(cb, varName)
}

// liveScene resolves the weak scene reference.
func (a *areaLight) liveScene() (SceneGraph, bool) {
	if a.scene == nil {
		return nil, false
	}
	return a.scene.Resolve()
}

// resetGeometry removes the slot holding the emitter model from the live scene and
// drops the instance.
func (a *areaLight) resetGeometry() {
	if sc, ok := a.liveScene(); ok && a.inst != nil {
		if id := findModelSlot(sc, a.inst.Object()); id >= 0 {
			sc.DeleteModel(id)
		}
	}
	a.inst = nil
}

// rebuild generates geometry from the current parameters and swaps it in. The
// mesh is built before the old instance is touched, so a factory error leaves the
// light and the scene unchanged.
func (a *areaLight) rebuild() error {
	data, err := a.shape.buildMesh(a.factory)
	if err != nil {
		return err
	}
	a.resetGeometry()

	name := a.name + emissiveSuffix
	a.inst = instance.NewObjectInstance(model.NewModelFromMesh(name, data, a.emissive), instance.WithName(name))
	a.shape.placeInstance(a.inst)
	a.surface = a.shape.shapeArea(data)

	sc, ok := a.liveScene()
	if ok {
		sc.AddModelInstance(a.inst)
	}
	slog.Debug("light.rebuild", "name", a.name, "type", a.lightType, "attached", ok)
	return nil
}
