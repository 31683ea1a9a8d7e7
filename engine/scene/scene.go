package scene

import (
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/gpu"
	"github.com/Carmen-Shannon/oxy-scene/engine/instance"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/Carmen-Shannon/oxy-scene/engine/path"
	"golang.org/x/exp/maps"
)

var sceneCount atomic.Uint64

// ModelInstance is a placement of a shared model.
type ModelInstance = instance.ObjectInstance[model.Model]

// modelSlot is one shared model and the ordered list of its instances.
type modelSlot struct {
	model     model.Model
	instances []ModelInstance
}

type scene struct {
	id   uint64
	name string

	models    collection[*modelSlot]
	lights    collection[light.Light]
	materials collection[material.Material]
	cameras   collection[camera.Camera]
	paths     collection[path.ObjectPath]
	userVars  map[string]UserVariable

	activeCamera     int
	ambientIntensity [3]float32
	lightingScale    float32
	cameraSpeed      float32
	version          uint32
	loadFlags        LoadFlags
	materialHistory  *material.History[model.Mesh]

	extentWorkers int
	structure     uint64
	extents       extentsCache
}

// Scene is the aggregate root of a 3D scene: model slots with their placed
// instances, lights, materials, cameras, paths and user variables. Indices into
// every collection are compacted on delete; use the Handle accessors to hold a
// reference across deletes.
//
// A Scene is not safe for concurrent use.
type Scene interface {
	light.SceneHost

	// ID returns the process-unique scene id.
	//
	// Returns:
	//   - uint64: the id
	ID() uint64

	// Name returns the scene name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// SetName sets the scene name.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// AddModel creates an instance of m with the given placement and adds it to the
	// slot of m, creating the slot if m is new to the scene. Transform values are not
	// validated.
	//
	// Parameters:
	//   - m: the shared model
	//   - name: the instance name
	//   - translation: the world position
	//   - rotation: yaw, pitch and roll in radians as (x, y, z) rotations
	//   - scale: the per-axis scale
	//
	// Returns:
	//   - ModelInstance: the new instance
	AddModel(m model.Model, name string, translation, rotation, scale [3]float32) ModelInstance

	// ModelInstanceCount returns the number of instances in model slot modelID.
	ModelInstanceCount(modelID int) int

	// ModelInstance returns instance instanceID of model slot modelID.
	ModelInstance(modelID, instanceID int) ModelInstance

	// DeleteModelInstance removes one instance. The slot stays even when empty.
	//
	// Parameters:
	//   - modelID: the model slot
	//   - instanceID: the instance within the slot
	DeleteModelInstance(modelID, instanceID int)

	// DeleteAllModels removes every model slot.
	DeleteAllModels()

	// ModelHandle returns a stable handle to model slot modelID.
	ModelHandle(modelID int) Handle

	// ResolveModel returns the current index of the slot h was taken from.
	//
	// Parameters:
	//   - h: the handle
	//
	// Returns:
	//   - int: the current model id
	//   - bool: false if the slot has been deleted
	ResolveModel(h Handle) (int, bool)

	// AddLight appends a light. Area lights are not attached by AddLight; call
	// AddToScene on them to insert their geometry.
	//
	// Parameters:
	//   - l: the light
	//
	// Returns:
	//   - int: the light id
	AddLight(l light.Light) int

	// DeleteLight removes light id. An area light attached to this scene is
	// detached, taking its emissive geometry with it.
	DeleteLight(id int)

	// LightCount returns the number of lights.
	LightCount() int

	// Light returns light id.
	Light(id int) light.Light

	// Lights returns a copy of the light list.
	Lights() []light.Light

	// LightHandle returns a stable handle to light id.
	LightHandle(id int) Handle

	// ResolveLight returns the current index of the light h was taken from.
	ResolveLight(h Handle) (int, bool)

	// AddMaterial appends a material and returns its id.
	AddMaterial(m material.Material) int

	// DeleteMaterial removes material id. Meshes referencing it keep their reference.
	DeleteMaterial(id int)

	// MaterialCount returns the number of materials.
	MaterialCount() int

	// Material returns material id.
	Material(id int) material.Material

	// AddCamera appends a camera and returns its id.
	AddCamera(c camera.Camera) int

	// DeleteCamera removes camera id. The active camera index follows the camera it
	// pointed at and is clamped when that camera is the one deleted.
	DeleteCamera(id int)

	// CameraCount returns the number of cameras.
	CameraCount() int

	// Camera returns camera id.
	Camera(id int) camera.Camera

	// ActiveCamera returns the active camera.
	//
	// Returns:
	//   - camera.Camera: the active camera, or nil if the scene has no cameras
	ActiveCamera() camera.Camera

	// ActiveCameraIndex returns the index of the active camera.
	ActiveCameraIndex() int

	// SetActiveCamera selects the active camera. Out of range ids are clamped.
	//
	// Parameters:
	//   - id: the camera index
	SetActiveCamera(id int)

	// AddPath appends a path and returns its id.
	AddPath(p path.ObjectPath) int

	// DeletePath removes path id.
	DeletePath(id int)

	// PathCount returns the number of paths.
	PathCount() int

	// Path returns path id.
	Path(id int) path.ObjectPath

	// AddUserVariable stores v under name, replacing any previous value.
	//
	// Parameters:
	//   - name: the unique variable name
	//   - v: the value
	AddUserVariable(name string, v UserVariable)

	// UserVariable returns the variable stored under name.
	//
	// Parameters:
	//   - name: the variable name
	//
	// Returns:
	//   - UserVariable: the value, or one with Type UserVariableUnknown if absent
	UserVariable(name string) UserVariable

	// UserVariableCount returns the number of user variables.
	UserVariableCount() int

	// UserVariableAt returns the i-th user variable in name order.
	//
	// Parameters:
	//   - i: the index
	//
	// Returns:
	//   - string: the name
	//   - UserVariable: the value
	UserVariableAt(i int) (string, UserVariable)

	// DeleteUserVariable removes the variable stored under name.
	DeleteUserVariable(name string)

	// AmbientIntensity returns the ambient light color.
	AmbientIntensity() [3]float32

	// SetAmbientIntensity sets the ambient light color.
	SetAmbientIntensity(rgb [3]float32)

	// LightingScale returns the global light multiplier.
	LightingScale() float32

	// SetLightingScale sets the global light multiplier.
	SetLightingScale(scale float32)

	// CameraSpeed returns the speed scale pushed to the camera controller on Update.
	CameraSpeed() float32

	// SetCameraSpeed sets the speed scale pushed to the camera controller on Update.
	SetCameraSpeed(speed float32)

	// Version returns the scene format version.
	Version() uint32

	// SetVersion sets the scene format version.
	SetVersion(version uint32)

	// LoadFlags returns the flags the scene was loaded with.
	LoadFlags() LoadFlags

	// SetLoadFlags sets the flags the scene was loaded with.
	SetLoadFlags(flags LoadFlags)

	// Update animates every path at currentTime and advances the active camera
	// through ctrl. ctrl may be nil to keep the camera's own controller.
	//
	// Parameters:
	//   - currentTime: the time in seconds
	//   - ctrl: the controller driving the active camera
	//
	// Returns:
	//   - bool: true if any path or the camera changed
	Update(currentTime float64, ctrl camera.CameraController) bool

	// Merge appends every collection of other to this scene. Instances join the slot
	// of their model, so models shared by both scenes keep one slot. Lights,
	// materials, cameras and paths are concatenated and user variables of other
	// replace those with the same name. Area lights keep the scene reference they
	// had, so those attached to other still report other as their scene. Merging a
	// scene into itself does nothing.
	//
	// Parameters:
	//   - other: the scene to merge
	Merge(other Scene)

	// CreateAreaLights adds a mesh area light for every mesh with an emissive
	// material in every instance that does not already have one. Geometry owned by
	// an area light in this scene's light list is skipped.
	//
	// Returns:
	//   - []light.MeshAreaLight: the created lights
	//   - error: the first error from light construction
	CreateAreaLights() ([]light.MeshAreaLight, error)

	// DeleteAreaLights removes every light created by CreateAreaLights.
	//
	// Returns:
	//   - int: the number of lights removed
	DeleteAreaLights() int

	// Center returns the center of the bounding sphere of every placed instance.
	Center() [3]float32

	// Radius returns the radius of the bounding sphere of every placed instance.
	Radius() float32

	// ExtentScans returns how many times the bounding sphere has been recomputed.
	ExtentScans() int

	// OverrideMeshMaterial replaces the material of one mesh. With
	// LoadFlagsStoreMaterialHistory set, the first replaced material is recorded.
	//
	// Parameters:
	//   - modelID: the model slot
	//   - meshIndex: the mesh within the model
	//   - m: the new material
	OverrideMeshMaterial(modelID, meshIndex int, m material.Material)

	// RevertMeshMaterial restores the recorded material of one mesh.
	//
	// Returns:
	//   - bool: false if nothing was recorded for the mesh
	RevertMeshMaterial(modelID, meshIndex int) bool

	// MaterialHistory returns the recorded pre-override materials.
	MaterialHistory() *material.History[model.Mesh]

	// DeleteMaterialHistory drops every recorded material.
	DeleteMaterialHistory()

	// BindSamplerToMaterials sets the sampler of every material in the material list.
	BindSamplerToMaterials(sampler string)

	// BindSamplerToModels sets the sampler of every mesh material of every model.
	BindSamplerToModels(sampler string)

	// UploadLights writes every light's staging record into cb as varName[i].
	//
	// Parameters:
	//   - cb: the destination buffer
	//   - varName: the array variable name
	//
	// Returns:
	//   - error: the first write error
	UploadLights(cb gpu.ConstantBuffer, varName string) error
}

var _ Scene = &scene{}

// NewScene creates an empty Scene configured with the given options.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		id:              sceneCount.Add(1) - 1,
		models:          newCollection[*modelSlot]("scene.models"),
		lights:          newCollection[light.Light]("scene.lights"),
		materials:       newCollection[material.Material]("scene.materials"),
		cameras:         newCollection[camera.Camera]("scene.cameras"),
		paths:           newCollection[path.ObjectPath]("scene.paths"),
		userVars:        make(map[string]UserVariable),
		lightingScale:   1,
		cameraSpeed:     1,
		materialHistory: material.NewHistory[model.Mesh](),
	}
	s.name = fmt.Sprintf("scene_%d", s.id)
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) ID() uint64 {
	return s.id
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) SetName(name string) {
	s.name = name
}

func (s *scene) WeakRef() light.SceneRef {
	return light.NewWeakSceneRef(s)
}

// Models

func (s *scene) AddModelInstance(inst ModelInstance) {
	if inst == nil {
		panic("scene: AddModelInstance called with nil instance")
	}
	slot := s.slotFor(inst.Object())
	slot.instances = append(slot.instances, inst)
	s.markExtentsDirty()
}

func (s *scene) AddModel(m model.Model, name string, translation, rotation, scale [3]float32) ModelInstance {
	inst := instance.NewObjectInstance(m,
		instance.WithName(name),
		instance.WithTranslation(translation),
		instance.WithRotation(rotation),
		instance.WithScale(scale),
	)
	s.AddModelInstance(inst)
	return inst
}

// slotFor returns the slot of m, appending an empty one if m is new.
func (s *scene) slotFor(m model.Model) *modelSlot {
	if m == nil {
		panic("scene: model instance references a nil model")
	}
	for _, slot := range s.models.items {
		if slot.model == m {
			return slot
		}
	}
	slot := &modelSlot{model: m}
	s.models.add(slot)
	return slot
}

func (s *scene) ModelCount() int {
	return s.models.len()
}

func (s *scene) Model(id int) model.Model {
	return s.models.get(id).model
}

func (s *scene) ModelInstanceCount(modelID int) int {
	return len(s.models.get(modelID).instances)
}

func (s *scene) ModelInstance(modelID, instanceID int) ModelInstance {
	slot := s.models.get(modelID)
	common.CheckIndex("scene.instances", instanceID, len(slot.instances))
	return slot.instances[instanceID]
}

func (s *scene) DeleteModel(id int) {
	s.models.remove(id)
	s.markExtentsDirty()
}

func (s *scene) DeleteModelInstance(modelID, instanceID int) {
	slot := s.models.get(modelID)
	common.CheckIndex("scene.instances", instanceID, len(slot.instances))
	slot.instances = slices.Delete(slot.instances, instanceID, instanceID+1)
	s.markExtentsDirty()
}

func (s *scene) DeleteAllModels() {
	s.models.clear()
	s.markExtentsDirty()
}

func (s *scene) ModelHandle(modelID int) Handle {
	return s.models.handle(modelID)
}

func (s *scene) ResolveModel(h Handle) (int, bool) {
	return s.models.resolve(h)
}

// Lights

func (s *scene) AddLight(l light.Light) int {
	if l == nil {
		panic("scene: AddLight called with nil light")
	}
	return s.lights.add(l)
}

func (s *scene) DeleteLight(id int) {
	l := s.lights.remove(id)
	if al, ok := l.(light.AreaLight); ok && al.AttachedTo(s) {
		al.Detach()
	}
}

func (s *scene) LightCount() int {
	return s.lights.len()
}

func (s *scene) Light(id int) light.Light {
	return s.lights.get(id)
}

func (s *scene) Lights() []light.Light {
	return s.lights.snapshot()
}

func (s *scene) LightHandle(id int) Handle {
	return s.lights.handle(id)
}

func (s *scene) ResolveLight(h Handle) (int, bool) {
	return s.lights.resolve(h)
}

// Materials

func (s *scene) AddMaterial(m material.Material) int {
	if m == nil {
		panic("scene: AddMaterial called with nil material")
	}
	return s.materials.add(m)
}

func (s *scene) DeleteMaterial(id int) {
	s.materials.remove(id)
}

func (s *scene) MaterialCount() int {
	return s.materials.len()
}

func (s *scene) Material(id int) material.Material {
	return s.materials.get(id)
}

// Cameras

func (s *scene) AddCamera(c camera.Camera) int {
	if c == nil {
		panic("scene: AddCamera called with nil camera")
	}
	return s.cameras.add(c)
}

func (s *scene) DeleteCamera(id int) {
	s.cameras.remove(id)
	if id < s.activeCamera {
		s.activeCamera--
	}
	s.activeCamera = s.clampCamera(s.activeCamera)
}

func (s *scene) CameraCount() int {
	return s.cameras.len()
}

func (s *scene) Camera(id int) camera.Camera {
	return s.cameras.get(id)
}

func (s *scene) ActiveCamera() camera.Camera {
	if s.activeCamera < 0 || s.activeCamera >= s.cameras.len() {
		return nil
	}
	return s.cameras.items[s.activeCamera]
}

func (s *scene) ActiveCameraIndex() int {
	return s.activeCamera
}

func (s *scene) SetActiveCamera(id int) {
	clamped := s.clampCamera(id)
	if clamped != id {
		slog.Debug("scene.SetActiveCamera", "scene", s.name, "requested", id, "clamped", clamped)
	}
	s.activeCamera = clamped
}

func (s *scene) clampCamera(id int) int {
	return max(0, min(id, s.cameras.len()-1))
}

// Paths

func (s *scene) AddPath(p path.ObjectPath) int {
	if p == nil {
		panic("scene: AddPath called with nil path")
	}
	return s.paths.add(p)
}

func (s *scene) DeletePath(id int) {
	s.paths.remove(id)
}

func (s *scene) PathCount() int {
	return s.paths.len()
}

func (s *scene) Path(id int) path.ObjectPath {
	return s.paths.get(id)
}

// User variables

func (s *scene) AddUserVariable(name string, v UserVariable) {
	s.userVars[name] = v.clone()
}

func (s *scene) UserVariable(name string) UserVariable {
	v, ok := s.userVars[name]
	if !ok {
		return UserVariable{Type: UserVariableUnknown}
	}
	return v
}

func (s *scene) UserVariableCount() int {
	return len(s.userVars)
}

func (s *scene) UserVariableAt(i int) (string, UserVariable) {
	names := maps.Keys(s.userVars)
	slices.Sort(names)
	common.CheckIndex("scene.userVariables", i, len(names))
	return names[i], s.userVars[names[i]]
}

func (s *scene) DeleteUserVariable(name string) {
	delete(s.userVars, name)
}

// Settings

func (s *scene) AmbientIntensity() [3]float32 {
	return s.ambientIntensity
}

func (s *scene) SetAmbientIntensity(rgb [3]float32) {
	s.ambientIntensity = rgb
}

func (s *scene) LightingScale() float32 {
	return s.lightingScale
}

func (s *scene) SetLightingScale(scale float32) {
	s.lightingScale = scale
}

func (s *scene) CameraSpeed() float32 {
	return s.cameraSpeed
}

func (s *scene) SetCameraSpeed(speed float32) {
	s.cameraSpeed = speed
}

func (s *scene) Version() uint32 {
	return s.version
}

func (s *scene) SetVersion(version uint32) {
	s.version = version
}

func (s *scene) LoadFlags() LoadFlags {
	return s.loadFlags
}

func (s *scene) SetLoadFlags(flags LoadFlags) {
	s.loadFlags = flags
}

func (s *scene) Update(currentTime float64, ctrl camera.CameraController) bool {
	changed := false
	for _, p := range s.paths.items {
		if p.Animate(currentTime) {
			changed = true
		}
	}

	cam := s.ActiveCamera()
	if cam == nil {
		return changed
	}
	if ctrl != nil {
		if cam.Controller() != ctrl {
			cam.SetController(ctrl)
		}
		ctrl.SetSpeedScale(s.cameraSpeed)
	}
	if cam.Update() {
		changed = true
	}
	return changed
}

func (s *scene) Merge(other Scene) {
	if other == nil {
		return
	}
	if o, ok := other.(*scene); ok && o == s {
		return
	}

	// area lights attached to other move here with their emitters, so their
	// emitter slots are not copied
	var rehome []light.AreaLight
	emitters := make(map[model.Model]struct{})
	for id := 0; id < other.LightCount(); id++ {
		if al, ok := other.Light(id).(light.AreaLight); ok && al.AttachedTo(other) {
			rehome = append(rehome, al)
			if inst := al.Instance(); inst != nil {
				emitters[inst.Object()] = struct{}{}
			}
		}
	}

	for id := 0; id < other.ModelCount(); id++ {
		if _, ok := emitters[other.Model(id)]; ok {
			continue
		}
		slot := s.slotFor(other.Model(id))
		for i := 0; i < other.ModelInstanceCount(id); i++ {
			slot.instances = append(slot.instances, other.ModelInstance(id, i))
		}
	}
	for id := 0; id < other.LightCount(); id++ {
		s.lights.add(other.Light(id))
	}
	for id := 0; id < other.MaterialCount(); id++ {
		s.materials.add(other.Material(id))
	}
	for id := 0; id < other.CameraCount(); id++ {
		s.cameras.add(other.Camera(id))
	}
	for id := 0; id < other.PathCount(); id++ {
		s.paths.add(other.Path(id))
	}
	for i := 0; i < other.UserVariableCount(); i++ {
		name, v := other.UserVariableAt(i)
		s.userVars[name] = v.clone()
	}
	for _, al := range rehome {
		if err := al.AddToScene(s); err != nil {
			slog.Error("scene.Merge", "scene", s.name, "light", al.Name(), "err", err)
		}
	}
	s.markExtentsDirty()

	slog.Debug("scene.Merge", "scene", s.name, "other", other.Name(), "models", s.models.len(), "lights", s.lights.len())
}

// Material history

func (s *scene) OverrideMeshMaterial(modelID, meshIndex int, m material.Material) {
	mesh := s.Model(modelID).Mesh(meshIndex)
	if s.loadFlags.Has(LoadFlagsStoreMaterialHistory) {
		s.materialHistory.Record(mesh, mesh.Material())
	}
	mesh.SetMaterial(m)
}

func (s *scene) RevertMeshMaterial(modelID, meshIndex int) bool {
	mesh := s.Model(modelID).Mesh(meshIndex)
	original, ok := s.materialHistory.Forget(mesh)
	if !ok {
		return false
	}
	mesh.SetMaterial(original)
	return true
}

func (s *scene) MaterialHistory() *material.History[model.Mesh] {
	return s.materialHistory
}

func (s *scene) DeleteMaterialHistory() {
	s.materialHistory = material.NewHistory[model.Mesh]()
}

func (s *scene) BindSamplerToMaterials(sampler string) {
	for _, m := range s.materials.items {
		m.SetSampler(sampler)
	}
}

func (s *scene) BindSamplerToModels(sampler string) {
	for _, slot := range s.models.items {
		for _, mesh := range slot.model.Meshes() {
			if mat := mesh.Material(); mat != nil {
				mat.SetSampler(sampler)
			}
		}
	}
}

func (s *scene) UploadLights(cb gpu.ConstantBuffer, varName string) error {
	for i, l := range s.lights.items {
		name := fmt.Sprintf("%s[%d]", varName, i)
		if err := l.SetIntoConstantBuffer(cb, name); err != nil {
			return fmt.Errorf("scene %q: uploading light %q: %w", s.name, l.Name(), err)
		}
	}
	return nil
}
