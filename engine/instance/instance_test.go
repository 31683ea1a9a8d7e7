package instance

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectInstanceDefaults(t *testing.T) {
	inst := NewObjectInstance("shared")
	assert.Equal(t, "shared", inst.Object())
	assert.True(t, inst.Visible())
	assert.Equal(t, [3]float32{1, 1, 1}, inst.Scale())
	assert.Equal(t, common.IdentityMatrix(), inst.TransformMatrix())
}

func TestInstanceIDsAreUnique(t *testing.T) {
	a := NewObjectInstance(1)
	b := NewObjectInstance(1)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestBuilderOptions(t *testing.T) {
	inst := NewObjectInstance(0,
		WithName("crate"),
		WithTranslation([3]float32{1, 2, 3}),
		WithScale([3]float32{2, 2, 2}),
		WithVisible(false),
	)
	assert.Equal(t, "crate", inst.Name())
	assert.False(t, inst.Visible())

	m := inst.TransformMatrix()
	assert.Equal(t, float32(2), m[0])
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{m[12], m[13], m[14]})
}

func TestTransformRecomputedAfterChange(t *testing.T) {
	inst := NewObjectInstance(0)
	_ = inst.TransformMatrix()

	inst.SetTranslation(4, 5, 6)
	m := inst.TransformMatrix()
	assert.Equal(t, [3]float32{4, 5, 6}, [3]float32{m[12], m[13], m[14]})

	inst.SetScale(3, 3, 3)
	m = inst.TransformMatrix()
	assert.Equal(t, float32(3), m[0])
	assert.Equal(t, float32(4), m[12])
}

func TestSettersBumpTransformEpoch(t *testing.T) {
	inst := NewObjectInstance(0)
	before := TransformEpoch()
	inst.SetRotation(0, 1, 0)
	assert.Greater(t, TransformEpoch(), before)

	before = TransformEpoch()
	inst.SetName("renamed")
	inst.SetVisible(false)
	assert.Equal(t, before, TransformEpoch())
}

func TestMoveFacesTarget(t *testing.T) {
	inst := NewObjectInstance(0)
	inst.Move([3]float32{1, 0, 0}, [3]float32{2, 0, 0}, [3]float32{0, 1, 0})

	assert.Equal(t, [3]float32{1, 0, 0}, inst.Translation())
	r := inst.Rotation()
	assert.InDelta(t, 0, r[0], 1e-6)
	assert.InDelta(t, math32.Pi/2, r[1], 1e-6)

	// local +Z maps to the view direction
	m := inst.TransformMatrix()
	fwd := common.TransformDirection(m[:], [3]float32{0, 0, 1})
	assert.InDeltaSlice(t, []float32{1, 0, 0}, fwd[:], 1e-6)
}

func TestMoveLookingDown(t *testing.T) {
	inst := NewObjectInstance(0)
	inst.Move([3]float32{0, 5, 0}, [3]float32{0, 0, 0}, [3]float32{0, 0, 1})

	m := inst.TransformMatrix()
	fwd := common.TransformDirection(m[:], [3]float32{0, 0, 1})
	require.InDeltaSlice(t, []float32{0, -1, 0}, fwd[:], 1e-6)
}

func TestMoveOntoTargetKeepsRotation(t *testing.T) {
	inst := NewObjectInstance(0, WithRotation([3]float32{0.1, 0.2, 0.3}))
	inst.Move([3]float32{1, 1, 1}, [3]float32{1, 1, 1}, [3]float32{0, 1, 0})
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, inst.Rotation())
	assert.Equal(t, [3]float32{1, 1, 1}, inst.Translation())
}
