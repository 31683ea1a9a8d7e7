package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerOrderPreserved(t *testing.T) {
	m := NewMaterial(
		WithName("stack"),
		WithLayer(Layer{Type: LayerTypeLambert}),
		WithLayer(Layer{Type: LayerTypeConductor}),
		WithLayer(Layer{Type: LayerTypeDielectric}),
	)
	require.Equal(t, 3, m.LayerCount())

	m.RemoveLayer(1)
	assert.Equal(t, LayerTypeLambert, m.Layer(0).Type)
	assert.Equal(t, LayerTypeDielectric, m.Layer(1).Type)
	assert.Equal(t, 2, m.AddLayer(Layer{Type: LayerTypeEmissive}))
	assert.Equal(t, 2, m.FindLayer(LayerTypeEmissive))
	assert.Equal(t, -1, m.FindLayer(LayerTypeUser))
}

func TestLayerIndexOutOfRangePanics(t *testing.T) {
	m := NewMaterial()
	assert.PanicsWithError(t, "material layers: index 0 out of range [0, 0)", func() { m.Layer(0) })
}

func TestSetLayerAlbedoIsShared(t *testing.T) {
	m := NewMaterial(WithLayer(Layer{Type: LayerTypeLambert}))
	alias := m
	m.SetLayerAlbedo(0, [4]float32{1, 0, 0, 1})
	assert.Equal(t, [4]float32{1, 0, 0, 1}, alias.Layer(0).Albedo)
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewMaterial(
		WithName("orig"),
		WithLayer(Layer{Type: LayerTypeLambert, Albedo: [4]float32{1, 1, 1, 1}}),
		WithMap(MapNormal, "normal.png"),
	)
	c := m.Clone()
	c.SetLayerAlbedo(0, [4]float32{})
	c.SetMap(MapNormal, "")
	c.SetName("copy")

	assert.Equal(t, "orig", m.Name())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.Layer(0).Albedo)
	assert.Equal(t, "normal.png", m.Map(MapNormal))
	assert.Empty(t, c.Map(MapNormal))
}

func TestBasicMaterialConversion(t *testing.T) {
	m := BasicMaterial{
		Name:          "mixed",
		DiffuseColor:  [3]float32{0.5, 0.5, 0.5},
		SpecularColor: [3]float32{1, 1, 1},
		EmissiveColor: [3]float32{2, 2, 2},
		Shininess:     0,
		IOR:           1.5,
		Opacity:       0.5,
		NormalMap:     "n.png",
	}.ConvertToMaterial()

	require.Equal(t, 4, m.LayerCount())
	assert.Equal(t, LayerTypeEmissive, m.Layer(0).Type)
	assert.Equal(t, LayerTypeLambert, m.Layer(1).Type)
	assert.Equal(t, LayerTypeConductor, m.Layer(2).Type)
	assert.Equal(t, LayerTypeDielectric, m.Layer(3).Type)
	assert.InDelta(t, 1, m.Layer(2).Roughness, 1e-6)
	assert.Equal(t, "n.png", m.Map(MapNormal))
	assert.Equal(t, "mixed", m.Name())
}

func TestNewEmissiveMaterialAlwaysHasLayerZero(t *testing.T) {
	m := NewEmissiveMaterial("dark", [3]float32{})
	require.Equal(t, 1, m.LayerCount())
	assert.Equal(t, LayerTypeEmissive, m.Layer(0).Type)
	assert.True(t, m.DoubleSided())

	m = NewEmissiveMaterial("bright", [3]float32{3, 2, 1})
	r, ok := EmissiveRadiance(m)
	require.True(t, ok)
	assert.Equal(t, [3]float32{3, 2, 1}, r)

	_, ok = EmissiveRadiance(nil)
	assert.False(t, ok)
}

func TestHistoryKeepsFirstOriginal(t *testing.T) {
	a := NewMaterial(WithName("a"))
	b := NewMaterial(WithName("b"))
	h := NewHistory[string]()

	h.Record("mesh0", a)
	h.Record("mesh0", b)
	h.Record("mesh1", b)

	orig, ok := h.Original("mesh0")
	require.True(t, ok)
	assert.Same(t, a, orig)
	assert.Equal(t, []string{"mesh0", "mesh1"}, h.Keys())

	_, ok = h.Forget("mesh0")
	assert.True(t, ok)
	assert.Equal(t, 1, h.Len())
	_, ok = h.Forget("mesh0")
	assert.False(t, ok)
}

func TestSetIntoConstantBuffer(t *testing.T) {
	m := NewEmissiveMaterial("e", [3]float32{1, 2, 3})
	cb := gpu.NewConstantBuffer(0)
	require.NoError(t, SetIntoConstantBuffer(m, cb, "gMaterial"))

	blob, ok := cb.Blob("gMaterial")
	require.True(t, ok)
	assert.Len(t, blob, 16+64*MaxGPULayers)
	assert.Equal(t, byte(1), blob[0])
	assert.Equal(t, byte(1), blob[4])

	g := GPUMaterialLayer{}
	assert.Equal(t, 64, g.Size())
}

func TestGPUMaterialRejectsTooManyLayers(t *testing.T) {
	m := NewMaterial()
	for i := 0; i <= MaxGPULayers; i++ {
		m.AddLayer(Layer{})
	}
	_, err := NewGPUMaterial(m)
	assert.Error(t, err)
}

func TestShininessToRoughness(t *testing.T) {
	assert.InDelta(t, 1, ShininessToRoughness(-5), 1e-6)
	assert.Less(t, ShininessToRoughness(1000), float32(0.1))
	assert.True(t, common.EpsilonEqual(ShininessToRoughness(2), 0.70710677, 1e-6))
}
