package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scene/engine/gpu"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/Carmen-Shannon/oxy-scene/engine/path"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitScale = [3]float32{1, 1, 1}

func newBoxModel(t *testing.T, name string, size float32) model.Model {
	t.Helper()
	box, err := geometry.NewMeshFactory().Box([3]float32{size, size, size})
	require.NoError(t, err)
	return model.NewModelFromMesh(name, box, material.NewMaterial(material.WithName(name)))
}

func newTestSphereLight(t *testing.T, radius float32) light.SphereAreaLight {
	t.Helper()
	l, err := light.NewSphereAreaLight(
		light.WithName("lamp"),
		light.WithRadius(radius),
		light.WithMeshFactory(geometry.NewMeshFactory(geometry.WithDefaultTessellation(4))),
	)
	require.NoError(t, err)
	return l
}

func TestSceneIDsAreUnique(t *testing.T) {
	a, b := NewScene(), NewScene()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "custom", NewScene(WithName("custom")).Name())
}

func TestAddModelInstanceGroupsBySharedModel(t *testing.T) {
	s := NewScene()
	crate := newBoxModel(t, "crate", 1)
	barrel := newBoxModel(t, "barrel", 1)

	s.AddModel(crate, "a", [3]float32{}, [3]float32{}, unitScale)
	s.AddModel(crate, "b", [3]float32{1, 0, 0}, [3]float32{}, unitScale)
	s.AddModel(barrel, "c", [3]float32{}, [3]float32{}, unitScale)

	require.Equal(t, 2, s.ModelCount())
	assert.Same(t, crate, s.Model(0))
	assert.Equal(t, 2, s.ModelInstanceCount(0))
	assert.Equal(t, "b", s.ModelInstance(0, 1).Name())
	assert.Equal(t, 1, s.ModelInstanceCount(1))
}

func TestDeleteModelCompactsAndLeavesOthersAlone(t *testing.T) {
	s := NewScene()
	models := []model.Model{newBoxModel(t, "a", 1), newBoxModel(t, "b", 1), newBoxModel(t, "c", 1)}
	for i, m := range models {
		for j := 0; j <= i; j++ {
			s.AddModel(m, m.Name(), [3]float32{}, [3]float32{}, unitScale)
		}
	}

	s.DeleteModel(1)

	require.Equal(t, 2, s.ModelCount())
	assert.Same(t, models[0], s.Model(0))
	assert.Same(t, models[2], s.Model(1))
	assert.Equal(t, 1, s.ModelInstanceCount(0))
	assert.Equal(t, 3, s.ModelInstanceCount(1))

	s.DeleteAllModels()
	assert.Equal(t, 0, s.ModelCount())
}

func TestDeleteModelInstanceKeepsEmptySlot(t *testing.T) {
	s := NewScene()
	s.AddModel(newBoxModel(t, "a", 1), "only", [3]float32{}, [3]float32{}, unitScale)

	s.DeleteModelInstance(0, 0)

	assert.Equal(t, 1, s.ModelCount())
	assert.Equal(t, 0, s.ModelInstanceCount(0))
}

func TestOutOfRangeAccessPanics(t *testing.T) {
	s := NewScene()
	assert.PanicsWithError(t, "scene.models: index 0 out of range [0, 0)", func() { s.Model(0) })
	assert.Panics(t, func() { s.DeleteLight(3) })
	assert.Panics(t, func() { s.AddModelInstance(nil) })

	s.AddModel(newBoxModel(t, "a", 1), "a", [3]float32{}, [3]float32{}, unitScale)
	assert.PanicsWithError(t, "scene.instances: index 1 out of range [0, 1)", func() { s.ModelInstance(0, 1) })
}

func TestModelHandleDetectsDeletion(t *testing.T) {
	s := NewScene()
	a, b := newBoxModel(t, "a", 1), newBoxModel(t, "b", 1)
	s.AddModel(a, "a", [3]float32{}, [3]float32{}, unitScale)
	s.AddModel(b, "b", [3]float32{}, [3]float32{}, unitScale)
	ha, hb := s.ModelHandle(0), s.ModelHandle(1)

	s.DeleteModel(0)

	_, ok := s.ResolveModel(ha)
	assert.False(t, ok)
	id, ok := s.ResolveModel(hb)
	require.True(t, ok)
	assert.Equal(t, 0, id)
	assert.Same(t, b, s.Model(id))

	// a new model at index 0 must not be mistaken for b
	s.DeleteModel(0)
	s.AddModel(a, "a", [3]float32{}, [3]float32{}, unitScale)
	_, ok = s.ResolveModel(hb)
	assert.False(t, ok)
}

func TestDeleteLightShiftsLaterLights(t *testing.T) {
	s := NewScene()
	lights := []light.Light{
		light.NewPointLight(light.WithName("l0")),
		light.NewPointLight(light.WithName("l1")),
		light.NewPointLight(light.WithName("l2")),
	}
	for _, l := range lights {
		s.AddLight(l)
	}
	h := s.LightHandle(2)

	s.DeleteLight(1)

	assert.Equal(t, 2, s.LightCount())
	assert.Same(t, lights[2], s.Light(1))
	id, ok := s.ResolveLight(h)
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Len(t, s.Lights(), 2)
}

func TestDeleteLightDetachesAreaLight(t *testing.T) {
	s := NewScene()
	l := newTestSphereLight(t, 1)
	s.AddLight(l)
	require.NoError(t, l.AddToScene(s))
	require.Equal(t, 1, s.ModelCount())

	s.DeleteLight(0)

	assert.Equal(t, 0, s.ModelCount())
	assert.False(t, l.Attached())
}

func TestCamerasAndActiveSelection(t *testing.T) {
	s := NewScene()
	assert.Nil(t, s.ActiveCamera())

	c0 := camera.NewCamera(camera.WithName("c0"))
	c1 := camera.NewCamera(camera.WithName("c1"))
	c2 := camera.NewCamera(camera.WithName("c2"))
	s.AddCamera(c0)
	s.AddCamera(c1)
	s.AddCamera(c2)
	assert.Same(t, c0, s.ActiveCamera())

	s.SetActiveCamera(7)
	assert.Equal(t, 2, s.ActiveCameraIndex())
	s.SetActiveCamera(-1)
	assert.Equal(t, 0, s.ActiveCameraIndex())

	s.SetActiveCamera(2)
	s.DeleteCamera(0)
	assert.Same(t, c2, s.ActiveCamera())
	s.DeleteCamera(1)
	assert.Same(t, c1, s.ActiveCamera())
	s.DeleteCamera(0)
	assert.Nil(t, s.ActiveCamera())
}

func TestMaterialsAndPaths(t *testing.T) {
	s := NewScene()
	m := material.NewMaterial(material.WithName("m"))
	assert.Equal(t, 0, s.AddMaterial(m))
	assert.Same(t, m, s.Material(0))
	s.DeleteMaterial(0)
	assert.Equal(t, 0, s.MaterialCount())

	p := path.NewObjectPath(path.WithName("p"))
	assert.Equal(t, 0, s.AddPath(p))
	assert.Same(t, p, s.Path(0))
	s.DeletePath(0)
	assert.Equal(t, 0, s.PathCount())
}

func TestUserVariables(t *testing.T) {
	s := NewScene()
	missing := s.UserVariable("nope")
	assert.Equal(t, UserVariableUnknown, missing.Type)
	assert.False(t, missing.Valid())

	vec := []float32{1, 2, 3}
	s.AddUserVariable("weights", NewVectorVariable(vec))
	s.AddUserVariable("exposure", NewDoubleVariable(1.5))
	vec[0] = 99

	assert.Equal(t, 2, s.UserVariableCount())
	assert.Equal(t, []float32{1, 2, 3}, s.UserVariable("weights").Vector)

	name, v := s.UserVariableAt(0)
	assert.Equal(t, "exposure", name)
	assert.Equal(t, UserVariableDouble, v.Type)
	assert.Equal(t, 1.5, v.Double)

	s.DeleteUserVariable("exposure")
	assert.Equal(t, 1, s.UserVariableCount())
	assert.Equal(t, "vec3", NewVec3Variable([3]float32{}).Type.String())
}

func TestRadiusIsCachedUntilMutation(t *testing.T) {
	s := NewScene()
	s.AddModel(newBoxModel(t, "a", 2), "a", [3]float32{}, [3]float32{}, unitScale)

	r1 := s.Radius()
	r2 := s.Radius()
	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, s.ExtentScans())
	assert.InDelta(t, math32.Sqrt(3), r1, 1e-5)

	s.AddModel(newBoxModel(t, "b", 2), "b", [3]float32{10, 0, 0}, [3]float32{}, unitScale)
	center := s.Center()
	assert.InDeltaSlice(t, []float32{5, 0, 0}, center[:], 1e-5)
	assert.Equal(t, 2, s.ExtentScans())
	assert.InDelta(t, math32.Sqrt(36+1+1), s.Radius(), 1e-4)
	assert.Equal(t, 2, s.ExtentScans())
}

func TestRadiusTracksInstanceTransforms(t *testing.T) {
	s := NewScene()
	inst := s.AddModel(newBoxModel(t, "a", 2), "a", [3]float32{}, [3]float32{}, unitScale)
	s.Radius()

	inst.SetScale(2, 2, 2)

	assert.InDelta(t, 2*math32.Sqrt(3), s.Radius(), 1e-5)
	assert.Equal(t, 2, s.ExtentScans())
}

func TestEmptySceneExtents(t *testing.T) {
	s := NewScene()
	assert.Equal(t, [3]float32{}, s.Center())
	assert.Equal(t, float32(0), s.Radius())
}

func TestParallelExtentsMatchSerial(t *testing.T) {
	serial := NewScene()
	parallel := NewScene(WithExtentWorkers(4))
	for i := 0; i < 16; i++ {
		m := newBoxModel(t, "m", float32(i+1))
		pos := [3]float32{float32(i * 3), float32(-i), float32(i % 4)}
		serial.AddModel(m, "i", pos, [3]float32{0, float32(i) * 0.1, 0}, unitScale)
		parallel.AddModel(m, "i", pos, [3]float32{0, float32(i) * 0.1, 0}, unitScale)
	}

	sc, pc := serial.Center(), parallel.Center()
	assert.InDeltaSlice(t, sc[:], pc[:], 1e-5)
	assert.InDelta(t, serial.Radius(), parallel.Radius(), 1e-5)
}

func TestMergeConcatenatesCollections(t *testing.T) {
	a, b := NewScene(), NewScene()
	shared := newBoxModel(t, "shared", 1)

	a.AddModel(shared, "a0", [3]float32{}, [3]float32{}, unitScale)
	a.AddLight(light.NewPointLight())
	a.AddMaterial(material.NewMaterial())
	a.AddCamera(camera.NewCamera())
	a.AddUserVariable("only_a", NewIntVariable(1))
	a.AddUserVariable("both", NewIntVariable(1))

	b.AddModel(shared, "b0", [3]float32{}, [3]float32{}, unitScale)
	b.AddModel(newBoxModel(t, "b", 1), "b1", [3]float32{}, [3]float32{}, unitScale)
	b.AddLight(light.NewPointLight())
	b.AddLight(light.NewDirectionalLight())
	b.AddMaterial(material.NewMaterial())
	b.AddCamera(camera.NewCamera())
	b.AddPath(path.NewObjectPath())
	b.AddUserVariable("both", NewIntVariable(2))
	b.AddUserVariable("only_b", NewVectorVariable([]float32{1}))

	a.Radius()
	a.Merge(b)

	assert.Equal(t, 2, a.ModelCount())
	assert.Equal(t, 2, a.ModelInstanceCount(0))
	assert.Equal(t, 3, a.LightCount())
	assert.Equal(t, 2, a.MaterialCount())
	assert.Equal(t, 2, a.CameraCount())
	assert.Equal(t, 1, a.PathCount())
	assert.Equal(t, 3, a.UserVariableCount())
	assert.Equal(t, int64(2), a.UserVariable("both").Int)

	// merged values do not alias the source scene
	b.UserVariable("only_b").Vector[0] = 42
	assert.Equal(t, []float32{1}, a.UserVariable("only_b").Vector)

	a.Radius()
	assert.Equal(t, 2, a.ExtentScans())
}

func TestMergeIntoSelfIsNoOp(t *testing.T) {
	s := NewScene()
	s.AddLight(light.NewPointLight())
	s.Merge(s)
	assert.Equal(t, 1, s.LightCount())
}

func TestMergeMovesAttachedAreaLights(t *testing.T) {
	a, b := NewScene(), NewScene()
	a.AddModel(newBoxModel(t, "floor", 1), "floor", [3]float32{}, [3]float32{}, unitScale)
	l := newTestSphereLight(t, 1)
	b.AddLight(l)
	require.NoError(t, l.AddToScene(b))

	a.Merge(b)
	assert.True(t, l.AttachedTo(a))
	assert.False(t, l.AttachedTo(b))
	assert.Equal(t, 2, a.ModelCount())
	assert.Equal(t, 0, b.ModelCount())

	require.NoError(t, l.SetRadius(2))
	assert.Equal(t, 2, a.ModelCount())
	assert.Same(t, l.Instance(), a.ModelInstance(1, 0))

	created, err := a.CreateAreaLights()
	require.NoError(t, err)
	assert.Empty(t, created)

	a.DeleteLight(0)
	assert.Equal(t, 1, a.ModelCount())
}

func TestCreateAreaLightsSkipsStaleEmitters(t *testing.T) {
	s, other := NewScene(), NewScene()
	l := newTestSphereLight(t, 1)
	s.AddLight(l)
	require.NoError(t, l.AddToScene(other))
	s.AddModelInstance(l.Instance())

	// rebuilds inside other and leaves the old emitter in s
	require.NoError(t, l.SetRadius(2))
	require.Equal(t, 1, s.ModelCount())
	assert.NotSame(t, l.Instance(), s.ModelInstance(0, 0))

	created, err := s.CreateAreaLights()
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestSphereAreaLightRadiusScenario(t *testing.T) {
	s := NewScene()
	s.AddModel(newBoxModel(t, "floor", 1), "floor", [3]float32{}, [3]float32{}, unitScale)
	l := newTestSphereLight(t, 1)
	require.NoError(t, l.AddToScene(s))
	require.Equal(t, 2, s.ModelCount())
	before := l.Instance()

	require.NoError(t, l.SetRadius(1))
	assert.Equal(t, 2, s.ModelCount())
	assert.Same(t, before, l.Instance())

	require.NoError(t, l.SetRadius(2))
	assert.NotSame(t, before, l.Instance())
	assert.Equal(t, 2, s.ModelCount())

	owned := 0
	for id := 0; id < s.ModelCount(); id++ {
		for i := 0; i < s.ModelInstanceCount(id); i++ {
			if s.ModelInstance(id, i) == l.Instance() {
				owned++
			}
		}
	}
	assert.Equal(t, 1, owned)
	// the sphere box of half-size 2 encloses the floor
	assert.InDelta(t, 2*math32.Sqrt(3), s.Radius(), 1e-4)
}

func TestDestroyAreaLightRestoresModelCount(t *testing.T) {
	s := NewScene()
	s.AddModel(newBoxModel(t, "floor", 1), "floor", [3]float32{}, [3]float32{}, unitScale)
	l := newTestSphereLight(t, 1)

	require.NoError(t, l.AddToScene(s))
	assert.Equal(t, 2, s.ModelCount())
	l.Destroy()
	assert.Equal(t, 1, s.ModelCount())
}

func TestCreateAndDeleteAreaLights(t *testing.T) {
	s := NewScene()
	box, err := geometry.NewMeshFactory().Box([3]float32{1, 1, 1})
	require.NoError(t, err)
	glow := model.NewModelFromMesh("glow", box, material.NewEmissiveMaterial("glow", [3]float32{4, 4, 4}))
	s.AddModel(glow, "g0", [3]float32{}, [3]float32{}, unitScale)
	s.AddModel(glow, "g1", [3]float32{3, 0, 0}, [3]float32{}, unitScale)
	s.AddModel(newBoxModel(t, "dull", 1), "d", [3]float32{}, [3]float32{}, unitScale)

	authored := newTestSphereLight(t, 1)
	s.AddLight(authored)
	require.NoError(t, authored.AddToScene(s))
	s.AddLight(light.NewPointLight())

	created, err := s.CreateAreaLights()
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 4, s.LightCount())
	assert.Equal(t, light.ProvenanceEmissiveMesh, created[0].Provenance())
	assert.Equal(t, "g0_glow", created[0].Name())

	again, err := s.CreateAreaLights()
	require.NoError(t, err)
	assert.Empty(t, again)

	assert.Equal(t, 2, s.DeleteAreaLights())
	assert.Equal(t, 2, s.LightCount())
	assert.Same(t, authored, s.Light(0))
}

func TestApplyLoadFlags(t *testing.T) {
	s := NewScene()
	box, err := geometry.NewMeshFactory().Box([3]float32{1, 1, 1})
	require.NoError(t, err)
	s.AddModel(model.NewModelFromMesh("glow", box, material.NewEmissiveMaterial("glow", [3]float32{1, 1, 1})),
		"g", [3]float32{}, [3]float32{}, unitScale)

	require.NoError(t, ApplyLoadFlags(s, LoadFlagsGenerateAreaLights|LoadFlagsStoreMaterialHistory))
	assert.Equal(t, 1, s.LightCount())
	assert.True(t, s.LoadFlags().Has(LoadFlagsStoreMaterialHistory))
}

func TestParseLoadFlags(t *testing.T) {
	flags, err := ParseLoadFlags("generate_area_lights|store_material_history")
	require.NoError(t, err)
	assert.Equal(t, LoadFlagsGenerateAreaLights|LoadFlagsStoreMaterialHistory, flags)
	assert.Equal(t, "generate_area_lights|store_material_history", flags.String())

	flags, err = ParseLoadFlags("none")
	require.NoError(t, err)
	assert.Equal(t, LoadFlagsNone, flags)

	_, err = ParseLoadFlags("bogus")
	assert.Error(t, err)
}

func TestMaterialHistory(t *testing.T) {
	s := NewScene(WithLoadFlags(LoadFlagsStoreMaterialHistory))
	m := newBoxModel(t, "a", 1)
	original := m.Mesh(0).Material()
	s.AddModel(m, "a", [3]float32{}, [3]float32{}, unitScale)

	s.OverrideMeshMaterial(0, 0, material.NewMaterial(material.WithName("red")))
	s.OverrideMeshMaterial(0, 0, material.NewMaterial(material.WithName("blue")))
	assert.Equal(t, "blue", m.Mesh(0).Material().Name())
	assert.Equal(t, 1, s.MaterialHistory().Len())

	assert.True(t, s.RevertMeshMaterial(0, 0))
	assert.Same(t, original, m.Mesh(0).Material())
	assert.False(t, s.RevertMeshMaterial(0, 0))

	s.OverrideMeshMaterial(0, 0, material.NewMaterial())
	s.DeleteMaterialHistory()
	assert.Equal(t, 0, s.MaterialHistory().Len())
}

func TestMaterialHistoryDisabledByDefault(t *testing.T) {
	s := NewScene()
	s.AddModel(newBoxModel(t, "a", 1), "a", [3]float32{}, [3]float32{}, unitScale)
	s.OverrideMeshMaterial(0, 0, material.NewMaterial())
	assert.Equal(t, 0, s.MaterialHistory().Len())
}

func TestBindSampler(t *testing.T) {
	s := NewScene()
	m := newBoxModel(t, "a", 1)
	s.AddModel(m, "a", [3]float32{}, [3]float32{}, unitScale)
	mat := material.NewMaterial()
	s.AddMaterial(mat)

	s.BindSamplerToMaterials("linear")
	s.BindSamplerToModels("point")

	assert.Equal(t, "linear", mat.Sampler())
	assert.Equal(t, "point", m.Mesh(0).Material().Sampler())
}

func TestUpdateAnimatesPathsAndCamera(t *testing.T) {
	s := NewScene(WithCameraSpeed(3))
	inst := s.AddModel(newBoxModel(t, "a", 1), "a", [3]float32{}, [3]float32{}, unitScale)
	p := path.NewObjectPath(
		path.WithKeyframes(
			path.Keyframe{Time: 0, Position: [3]float32{0, 0, 0}, Target: [3]float32{0, 0, 1}, Up: [3]float32{0, 1, 0}},
			path.Keyframe{Time: 1, Position: [3]float32{2, 0, 0}, Target: [3]float32{2, 0, 1}, Up: [3]float32{0, 1, 0}},
		),
		path.WithObjects(inst),
	)
	s.AddPath(p)
	s.AddCamera(camera.NewCamera())
	ctrl := camera.NewOrbitController()

	assert.True(t, s.Update(0.5, ctrl))
	pos := inst.Translation()
	assert.InDeltaSlice(t, []float32{1, 0, 0}, pos[:], 1e-5)
	assert.Same(t, ctrl, s.ActiveCamera().Controller())
	assert.Equal(t, float32(3), ctrl.SpeedScale())
}

func TestUpdateWithoutCamera(t *testing.T) {
	assert.False(t, NewScene().Update(0, nil))
}

func TestUploadLights(t *testing.T) {
	s := NewScene()
	s.AddLight(light.NewPointLight(light.WithName("a")))
	s.AddLight(light.NewPointLight(light.WithName("b")))
	cb := gpu.NewConstantBuffer(0)

	require.NoError(t, s.UploadLights(cb, "lights"))

	_, ok := cb.Blob("lights[1]")
	assert.True(t, ok)
	assert.Equal(t, uint64(2*(&light.GPULight{}).Size()), cb.Size())
}
