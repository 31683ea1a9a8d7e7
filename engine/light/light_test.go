package light

import (
	"runtime"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/geometry"
	"github.com/Carmen-Shannon/oxy-scene/engine/gpu"
	"github.com/Carmen-Shannon/oxy-scene/engine/instance"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScene is a minimal SceneHost keeping one slot per model.
type fakeScene struct {
	models    []model.Model
	instances [][]instance.ObjectInstance[model.Model]
}

func (s *fakeScene) AddModelInstance(inst instance.ObjectInstance[model.Model]) {
	for i, m := range s.models {
		if m == inst.Object() {
			s.instances[i] = append(s.instances[i], inst)
			return
		}
	}
	s.models = append(s.models, inst.Object())
	s.instances = append(s.instances, []instance.ObjectInstance[model.Model]{inst})
}

func (s *fakeScene) ModelCount() int {
	return len(s.models)
}

func (s *fakeScene) Model(id int) model.Model {
	common.CheckIndex("models", id, len(s.models))
	return s.models[id]
}

func (s *fakeScene) DeleteModel(id int) {
	common.CheckIndex("models", id, len(s.models))
	s.models = append(s.models[:id], s.models[id+1:]...)
	s.instances = append(s.instances[:id], s.instances[id+1:]...)
}

func (s *fakeScene) WeakRef() SceneRef {
	return NewWeakSceneRef(s)
}

func newTestSphere(t *testing.T, options ...LightBuilderOption) SphereAreaLight {
	t.Helper()
	opts := append([]LightBuilderOption{
		WithName("lamp"),
		WithMeshFactory(geometry.NewMeshFactory(geometry.WithDefaultTessellation(4))),
	}, options...)
	l, err := NewSphereAreaLight(opts...)
	require.NoError(t, err)
	return l
}

func TestSphereAreaLightDefaults(t *testing.T) {
	l := newTestSphere(t)

	assert.Equal(t, LightTypeSphereArea, l.Type())
	assert.Equal(t, ProvenanceAuthored, l.Provenance())
	assert.Equal(t, float32(1), l.Radius())
	assert.False(t, l.Attached())
	require.NotNil(t, l.Instance())
	assert.Equal(t, "lamp_Emissive", l.Instance().Name())
	assert.Equal(t, "lamp_Emissive", l.Instance().Object().Name())
	assert.Equal(t, material.LayerTypeEmissive, l.Material().Layer(0).Type)
	assert.Same(t, l.Material(), l.Instance().Object().Mesh(0).Material())

	assert.InDelta(t, 4*math32.Pi, l.SurfaceArea(), 1e-5)
	assert.InDelta(t, math32.Pi*4*math32.Pi, l.Power(), 1e-4)
}

func TestSphereAreaLightGeometryMatchesDiameter(t *testing.T) {
	l := newTestSphere(t, WithRadius(2.5))
	min, max := l.Instance().Object().Bounds()
	assert.InDelta(t, -2.5, min[1], 1e-5)
	assert.InDelta(t, 2.5, max[1], 1e-5)
}

func TestAddToSceneInsertsInstance(t *testing.T) {
	sc := &fakeScene{}
	l := newTestSphere(t)

	require.NoError(t, l.AddToScene(sc))
	assert.True(t, l.Attached())
	require.Equal(t, 1, sc.ModelCount())
	assert.Equal(t, l.Instance(), sc.instances[0][0])

	// joining the same scene again does not duplicate the emitter
	require.NoError(t, l.AddToScene(sc))
	assert.Equal(t, 1, sc.ModelCount())
	assert.Len(t, sc.instances[0], 1)
}

func TestSetRadiusEpsilonEqualIsNoOp(t *testing.T) {
	sc := &fakeScene{}
	l := newTestSphere(t)
	require.NoError(t, l.AddToScene(sc))

	before := l.Instance()
	require.NoError(t, l.SetRadius(1.0))
	require.NoError(t, l.SetRadius(1.0+common.Epsilon/2))

	assert.Same(t, before, l.Instance())
	assert.Equal(t, 1, sc.ModelCount())
}

func TestSetRadiusRebuildsAttachedGeometry(t *testing.T) {
	sc := &fakeScene{}
	other := instance.NewObjectInstance(model.NewModel(model.WithName("other")))
	sc.AddModelInstance(other)

	l := newTestSphere(t)
	require.NoError(t, l.AddToScene(sc))
	before := l.Instance()

	require.NoError(t, l.SetRadius(2))
	assert.NotSame(t, before, l.Instance())
	assert.Equal(t, 2, sc.ModelCount())

	owned := 0
	for i, m := range sc.models {
		if m == l.Instance().Object() {
			owned++
			assert.Equal(t, []instance.ObjectInstance[model.Model]{l.Instance()}, sc.instances[i])
		}
		assert.NotEqual(t, before.Object(), m)
	}
	assert.Equal(t, 1, owned)

	_, max := l.Instance().Object().Bounds()
	assert.InDelta(t, 2, max[0], 1e-5)
	assert.InDelta(t, 16*math32.Pi, l.SurfaceArea(), 1e-4)
}

func TestSetRadiusFactoryErrorKeepsState(t *testing.T) {
	sc := &fakeScene{}
	l := newTestSphere(t, WithTessellation(4))
	require.NoError(t, l.AddToScene(sc))
	before := l.Instance()

	sl := l.(*sphereAreaLight)
	sl.tessellation = 2
	err := l.SetRadius(3)
	assert.ErrorIs(t, err, geometry.ErrTessellationOutOfRange)
	assert.Equal(t, float32(1), l.Radius())
	assert.Same(t, before, l.Instance())
	assert.Equal(t, 1, sc.ModelCount())
}

func TestSetRadiusWhileDetachedLeavesSceneAlone(t *testing.T) {
	sc := &fakeScene{}
	l := newTestSphere(t)
	require.NoError(t, l.AddToScene(sc))
	l.Detach()
	assert.False(t, l.Attached())
	assert.Equal(t, 0, sc.ModelCount())

	require.NoError(t, l.SetRadius(4))
	assert.Equal(t, 0, sc.ModelCount())
	assert.NotNil(t, l.Instance())
}

func TestDestroyRestoresModelCount(t *testing.T) {
	sc := &fakeScene{}
	sc.AddModelInstance(instance.NewObjectInstance(model.NewModel()))
	pre := sc.ModelCount()

	l := newTestSphere(t)
	require.NoError(t, l.AddToScene(sc))
	assert.Equal(t, pre+1, sc.ModelCount())

	l.Destroy()
	assert.Equal(t, pre, sc.ModelCount())
	assert.Nil(t, l.Instance())
	assert.False(t, l.Attached())

	// a destroyed light rebuilds its emitter when it joins a scene again
	require.NoError(t, l.AddToScene(sc))
	assert.NotNil(t, l.Instance())
	assert.Equal(t, pre+1, sc.ModelCount())
}

func TestAddToSceneMovesBetweenScenes(t *testing.T) {
	a, b := &fakeScene{}, &fakeScene{}
	l := newTestSphere(t)
	require.NoError(t, l.AddToScene(a))
	require.NoError(t, l.AddToScene(b))
	assert.Equal(t, 0, a.ModelCount())
	assert.Equal(t, 1, b.ModelCount())
}

func TestSetIntensityUpdatesMaterialInPlace(t *testing.T) {
	l := newTestSphere(t)
	before := l.Instance()

	l.SetIntensity([3]float32{2, 3, 4})
	assert.Same(t, before, l.Instance())
	assert.Equal(t, [4]float32{2, 3, 4, 0}, l.Material().Layer(0).Albedo)
	assert.Equal(t, [3]float32{2, 3, 4}, l.Intensity())
}

func TestSetPositionMovesInstance(t *testing.T) {
	l := newTestSphere(t)
	before := l.Instance()

	l.SetPosition([3]float32{1, 2, 3})
	assert.Same(t, before, l.Instance())
	m := l.Instance().TransformMatrix()
	assert.InDeltaSlice(t, []float32{1, 2, 3}, m[12:15], 1e-6)
	assert.Equal(t, [3]float32{1, 2, 3}, l.Position())

	l.Move([3]float32{5, 0, 0}, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})
	m = l.Instance().TransformMatrix()
	assert.InDeltaSlice(t, []float32{5, 0, 0}, m[12:15], 1e-6)
	assert.InDeltaSlice(t, []float32{1, 0, 0}, m[0:3], 1e-6)
}

func TestSetNameRenamesEmitter(t *testing.T) {
	l := newTestSphere(t)
	l.SetName("bulb")
	assert.Equal(t, "bulb", l.Name())
	assert.Equal(t, "bulb_Emissive", l.Instance().Name())
	assert.Equal(t, "bulb_Emissive", l.Material().Name())
}

// attachToTemporaryScene attaches l to a scene that becomes unreachable on return.
func attachToTemporaryScene(t *testing.T, l AreaLight) {
	sc := &fakeScene{}
	require.NoError(t, l.AddToScene(sc))
	require.True(t, l.Attached())
}

func TestWeakSceneReferenceDoesNotKeepSceneAlive(t *testing.T) {
	l := newTestSphere(t)
	attachToTemporaryScene(t, l)

	runtime.GC()
	assert.False(t, l.Attached())
	require.NoError(t, l.SetRadius(3))
	l.Destroy()
}

func TestSphereGPUData(t *testing.T) {
	l := newTestSphere(t, WithPosition(1, 2, 3), WithIntensity(4, 5, 6))
	_, ok := l.GPUData()
	assert.False(t, ok)

	cb := gpu.NewConstantBuffer(0)
	require.NoError(t, l.SetIntoConstantBuffer(cb, "gLight"))

	g, ok := l.GPUData()
	require.True(t, ok)
	assert.Equal(t, uint32(LightTypeSphereArea), g.LightType)
	assert.Equal(t, [3]float32{4, 5, 6}, g.Intensity)
	assert.InDelta(t, 4*math32.Pi, g.SurfaceArea, 1e-5)
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{g.Transform[12], g.Transform[13], g.Transform[14]})

	blob, ok := cb.Blob("gLight")
	require.True(t, ok)
	assert.Equal(t, g.Marshal(), blob)

	l.UnloadGPUData()
	_, ok = l.GPUData()
	assert.False(t, ok)
}

func TestPolygonalAreaLightDefaults(t *testing.T) {
	l, err := NewPolygonalAreaLight(WithName("panel"))
	require.NoError(t, err)

	assert.Equal(t, LightTypePolygonalArea, l.Type())
	assert.Len(t, l.ControlPoints(), 3)
	assert.Equal(t, [3]float32{0, 0, 90}, l.Rotation())
	assert.InDelta(t, 0.5, l.SurfaceArea(), 1e-5)
	assert.InDelta(t, math32.Pi*0.5, l.Power(), 1e-5)

	r := l.Instance().Rotation()
	assert.InDelta(t, math32.Pi/2, r[2], 1e-6)
	assert.Equal(t, "panel_Emissive", l.Instance().Name())
}

func TestPolygonalAreaLightRejectsTooFewPoints(t *testing.T) {
	_, err := NewPolygonalAreaLight(WithControlPoints(geometry.PolarCoordinate{Radius: 1}))
	assert.ErrorIs(t, err, geometry.ErrTooFewControlPoints)

	l, err := NewPolygonalAreaLight(WithControlPoints(
		geometry.PolarCoordinate{Radius: 1, Angle: 0},
		geometry.PolarCoordinate{Radius: 1, Angle: 1},
	))
	require.NoError(t, err)
	assert.ErrorIs(t, l.RemoveControlPoint(0), geometry.ErrTooFewControlPoints)
	assert.ErrorIs(t, l.SetControlPoints(nil), geometry.ErrTooFewControlPoints)
	assert.Len(t, l.ControlPoints(), 2)
}

func TestPolygonalAreaLightVertexEdits(t *testing.T) {
	sc := &fakeScene{}
	l, err := NewPolygonalAreaLight()
	require.NoError(t, err)
	require.NoError(t, l.AddToScene(sc))
	before := l.Instance()

	same := l.ControlPoints()[1]
	require.NoError(t, l.SetControlPoint(1, same))
	assert.Same(t, before, l.Instance())

	require.NoError(t, l.InsertControlPoint(3, geometry.PolarCoordinate{Radius: 1, Angle: 0}))
	assert.Len(t, l.ControlPoints(), 4)
	assert.NotSame(t, before, l.Instance())
	assert.Equal(t, 1, sc.ModelCount())
	assert.Equal(t, l.Instance().Object(), sc.Model(0))

	require.NoError(t, l.RemoveControlPoint(3))
	assert.Len(t, l.ControlPoints(), 3)
	assert.Equal(t, 1, sc.ModelCount())

	assert.Panics(t, func() { _ = l.SetControlPoint(7, same) })
}

func TestPolygonalAreaLightRotation(t *testing.T) {
	sc := &fakeScene{}
	l, err := NewPolygonalAreaLight()
	require.NoError(t, err)
	require.NoError(t, l.AddToScene(sc))
	before := l.Instance()

	require.NoError(t, l.SetRotation([3]float32{0, 0, 90}))
	assert.Same(t, before, l.Instance())

	require.NoError(t, l.SetRotation([3]float32{90, 0, 0}))
	assert.NotSame(t, before, l.Instance())
	r := l.Instance().Rotation()
	assert.InDelta(t, math32.Pi/2, r[0], 1e-6)
	assert.Equal(t, 1, sc.ModelCount())
}

func TestPolygonalAreaLightMoveSyncsRotation(t *testing.T) {
	l, err := NewPolygonalAreaLight()
	require.NoError(t, err)

	l.Move([3]float32{0, 1, 0}, [3]float32{1, 1, 0}, [3]float32{0, 1, 0})
	assert.Equal(t, [3]float32{0, 1, 0}, l.Position())
	assert.InDelta(t, 90, l.Rotation()[1], 1e-4)
	assert.InDelta(t, 0, l.Rotation()[2], 1e-4)
}

func newEmissiveInstance(t *testing.T, radiance [3]float32) instance.ObjectInstance[model.Model] {
	t.Helper()
	box, err := geometry.NewMeshFactory().Box([3]float32{1, 1, 1})
	require.NoError(t, err)
	m := model.NewModelFromMesh("box", box, material.NewEmissiveMaterial("glow", radiance))
	return instance.NewObjectInstance(m, instance.WithName("crate"), instance.WithScale([3]float32{2, 2, 2}))
}

func TestMeshAreaLight(t *testing.T) {
	inst := newEmissiveInstance(t, [3]float32{1, 1, 1})
	l, err := NewMeshAreaLight(inst, 0)
	require.NoError(t, err)

	assert.Equal(t, ProvenanceEmissiveMesh, l.Provenance())
	assert.Equal(t, "crate_box", l.Name())
	assert.Equal(t, [3]float32{1, 1, 1}, l.Intensity())
	assert.InDelta(t, 24, l.SurfaceArea(), 1e-4)
	assert.InDelta(t, math32.Pi*24, l.Power(), 1e-3)

	l.SetPosition([3]float32{0, 3, 0})
	assert.Equal(t, [3]float32{0, 3, 0}, inst.Translation())

	l.SetIntensity([3]float32{0, 2, 0})
	assert.Equal(t, [4]float32{0, 2, 0, 0}, inst.Object().Mesh(0).Material().Layer(0).Albedo)

	l.PrepareGPUData()
	g, ok := l.GPUData()
	require.True(t, ok)
	assert.Equal(t, uint32(LightTypeMeshArea), g.LightType)
	assert.Equal(t, [3]float32{0, 3, 0}, g.Position)
}

func TestMeshAreaLightRequiresEmission(t *testing.T) {
	m := model.NewModelFromMesh("plain", nil, material.BasicMaterial{DiffuseColor: [3]float32{1, 1, 1}}.ConvertToMaterial())
	_, err := NewMeshAreaLight(instance.NewObjectInstance(m), 0)
	assert.ErrorIs(t, err, ErrNotEmissive)

	assert.Panics(t, func() { _, _ = NewMeshAreaLight(instance.NewObjectInstance(m), 1) })
}

func TestPunctualLights(t *testing.T) {
	p := NewPointLight(WithName("bulb"), WithPosition(1, 2, 3), WithIntensity(1, 1, 1))
	assert.Equal(t, LightTypePoint, p.Type())
	assert.InDelta(t, 4*math32.Pi, p.Power(), 1e-5)

	d := NewDirectionalLight(WithDirection(0, 0, -2))
	assert.Equal(t, [3]float32{0, 0, -1}, d.Direction())
	d.Move([3]float32{0, 0, 0}, [3]float32{3, 0, 0}, [3]float32{0, 1, 0})
	assert.Equal(t, [3]float32{1, 0, 0}, d.Direction())

	cb := gpu.NewConstantBuffer(0)
	require.NoError(t, p.SetIntoConstantBuffer(cb, "p"))
	g, ok := p.GPUData()
	require.True(t, ok)
	assert.Equal(t, [3]float32{1, 2, 3}, g.Position)
	assert.Equal(t, float32(0), g.SurfaceArea)
}

func TestGPULightLayout(t *testing.T) {
	g := GPULight{LightType: 3}
	assert.Equal(t, 112, g.Size())
	assert.Len(t, g.Marshal(), 112)
	assert.Equal(t, byte(3), g.Marshal()[12])
	assert.Equal(t, "polygonal", LightTypePolygonalArea.String())
}
