package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildModelMatrixTranslatesPoint(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0, 0, 0, 2, 2, 2)

	p := TransformPoint(m[:], [3]float32{1, 1, 1})
	assert.InDeltaSlice(t, []float32{3, 4, 5}, p[:], 1e-6)
}

func TestBuildModelMatrixYaw(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0, math32.Pi/2, 0, 1, 1, 1)

	// yaw of 90 degrees turns +Z into +X
	d := TransformDirection(m[:], [3]float32{0, 0, 1})
	assert.InDeltaSlice(t, []float32{1, 0, 0}, d[:], 1e-6)
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, out [16]float32
	BuildModelMatrix(m[:], 4, -2, 7, 0.3, 1.1, -0.4, 2, 3, 0.5)
	require.True(t, Invert4(inv[:], m[:]))

	Mul4(out[:], m[:], inv[:])
	id := IdentityMatrix()
	assert.InDeltaSlice(t, id[:], out[:], 1e-5)
}

func TestInvert4Singular(t *testing.T) {
	var zero, out [16]float32
	out[0] = 42
	assert.False(t, Invert4(out[:], zero[:]))
	assert.Equal(t, float32(42), out[0])
}

func TestTranspose4InPlace(t *testing.T) {
	m := [16]float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	Transpose4(m[:], m[:])
	assert.Equal(t, float32(4), m[1])
	assert.Equal(t, float32(1), m[4])
	assert.Equal(t, float32(15), m[15])
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 0, 5, 0, 0, 0, 0, 1, 0)

	p := TransformPoint(view[:], [3]float32{0, 0, 5})
	assert.InDeltaSlice(t, []float32{0, 0, 0}, p[:], 1e-6)
}

func TestVectorHelpers(t *testing.T) {
	a := [3]float32{1, 2, 3}
	b := [3]float32{4, 5, 6}

	assert.Equal(t, [3]float32{5, 7, 9}, Add3(a, b))
	assert.Equal(t, [3]float32{3, 3, 3}, Sub3(b, a))
	assert.Equal(t, float32(32), Dot3(a, b))
	assert.Equal(t, [3]float32{0, 0, 1}, Cross3([3]float32{1, 0, 0}, [3]float32{0, 1, 0}))
	assert.InDelta(t, 1.0, Length3(Normalize3(b)), 1e-6)
	assert.Equal(t, [3]float32{}, Normalize3([3]float32{}))
	assert.Equal(t, [3]float32{2.5, 3.5, 4.5}, Lerp3(a, b, 0.5))
}

func TestEpsilonEqual(t *testing.T) {
	assert.True(t, EpsilonEqual(1, 1+Epsilon/2, Epsilon))
	assert.False(t, EpsilonEqual(1, 2, Epsilon))
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 1.0, Luminance([3]float32{1, 1, 1}), 1e-6)
	assert.Zero(t, Luminance([3]float32{}))
}

func TestCheckIndexPanicsWithTypedError(t *testing.T) {
	assert.NotPanics(t, func() { CheckIndex("lights", 0, 1) })

	defer func() {
		r := recover()
		err, ok := r.(*IndexOutOfRangeError)
		require.True(t, ok)
		assert.Equal(t, "lights", err.Collection)
		assert.Equal(t, 3, err.Index)
		assert.Contains(t, err.Error(), "index 3 out of range [0, 2)")
	}()
	CheckIndex("lights", 3, 2)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
