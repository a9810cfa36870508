package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulVec4Identity(t *testing.T) {
	var m [16]float32
	Identity(m[:])

	v := [4]float32{1, 2, 3, 1}
	assert.Equal(t, v, MulVec4(m[:], v))
}

func TestMul4ComposesTranslationAndScale(t *testing.T) {
	var translate, scale, combined [16]float32
	Identity(translate[:])
	translate[12], translate[13], translate[14] = 1, 2, 3
	Identity(scale[:])
	scale[0], scale[5], scale[10] = 2, 2, 2

	// Translate after scaling: p' = T * S * p.
	Mul4(combined[:], translate[:], scale[:])
	p := TransformPoint(combined[:], [3]float32{1, 1, 1})
	assert.Equal(t, [3]float32{3, 4, 5}, p)
}

func TestMul4AliasedOutput(t *testing.T) {
	var a, b, want [16]float32
	BuildModelMatrix(a[:], 1, 2, 3, 0.4, 0.5, 0.6, 1, 1, 1)
	Identity(b[:])
	b[12] = 7

	Mul4(want[:], a[:], b[:])

	// Writing the product into one of the operands must not corrupt it.
	Mul4(a[:], a[:], b[:])
	assert.Equal(t, want, a)
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, product, identity [16]float32
	BuildModelMatrix(m[:], 4, -2, 9, 0.3, 1.1, -0.7, 2, 0.5, 3)

	require.True(t, Invert4(inv[:], m[:]))
	Mul4(product[:], m[:], inv[:])

	Identity(identity[:])
	for i := range product {
		assert.InDelta(t, identity[i], product[i], 1e-5)
	}
}

func TestInvert4Singular(t *testing.T) {
	var singular, out [16]float32
	assert.False(t, Invert4(out[:], singular[:]))
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := float32(0.1), float32(100.0)

	var proj [16]float32
	Perspective(proj[:], 1.0, 1.0, near, far)

	// WebGPU convention: z in [0, 1] after perspective divide.
	atNear := MulVec4(proj[:], [4]float32{0, 0, -near, 1})
	atFar := MulVec4(proj[:], [4]float32{0, 0, -far, 1})
	assert.InDelta(t, 0.0, atNear[2]/atNear[3], 1e-5)
	assert.InDelta(t, 1.0, atFar[2]/atFar[3], 1e-5)

	// Classic GL convention: z in [-1, 1].
	PerspectiveGL(proj[:], 1.0, 1.0, near, far)
	atNear = MulVec4(proj[:], [4]float32{0, 0, -near, 1})
	atFar = MulVec4(proj[:], [4]float32{0, 0, -far, 1})
	assert.InDelta(t, -1.0, atNear[2]/atNear[3], 1e-4)
	assert.InDelta(t, 1.0, atFar[2]/atFar[3], 1e-4)
}

func TestOrthographicDepthRange(t *testing.T) {
	var proj [16]float32
	Orthographic(proj[:], -10, 10, -10, 10, 0, 50)

	atNear := TransformPoint(proj[:], [3]float32{0, 0, 0})
	atFar := TransformPoint(proj[:], [3]float32{0, 0, -50})
	assert.InDelta(t, 0.0, atNear[2], 1e-6)
	assert.InDelta(t, 1.0, atFar[2], 1e-6)

	OrthographicGL(proj[:], -10, 10, -10, 10, 0, 50)
	atNear = TransformPoint(proj[:], [3]float32{0, 0, 0})
	atFar = TransformPoint(proj[:], [3]float32{0, 0, -50})
	assert.InDelta(t, -1.0, atNear[2], 1e-6)
	assert.InDelta(t, 1.0, atFar[2], 1e-6)
}

func TestLookAt(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)

	// The eye lands at the origin and the target lies straight down -z.
	eye := TransformPoint(view[:], [3]float32{0, 0, 10})
	target := TransformPoint(view[:], [3]float32{0, 0, 0})
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.0, eye[i], 1e-5)
	}
	assert.InDelta(t, 0.0, target[0], 1e-5)
	assert.InDelta(t, 0.0, target[1], 1e-5)
	assert.InDelta(t, -10.0, target[2], 1e-5)
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	var model, normal [16]float32
	BuildModelMatrix(model[:], 0, 0, 0, 0, 0, 0, 2, 1, 1)

	require.True(t, NormalMatrix(normal[:], model[:]))

	// Inverse-transpose of diag(2, 1, 1) is diag(0.5, 1, 1); a normal along x
	// shrinks instead of stretching with the geometry.
	n := TransformPoint(normal[:], [3]float32{1, 0, 0})
	assert.InDelta(t, 0.5, n[0], 1e-6)
	assert.InDelta(t, 0.0, n[1], 1e-6)
	assert.InDelta(t, 0.0, n[2], 1e-6)
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, [3]float32{0, 0, 1}, Cross3([3]float32{1, 0, 0}, [3]float32{0, 1, 0}))
	assert.InDelta(t, 32.0, Dot3([3]float32{1, 2, 3}, [3]float32{4, 5, 6}), 1e-6)
	assert.InDelta(t, 5.0, Length3([3]float32{3, 4, 0}), 1e-6)

	n := Normalize3([3]float32{0, 0, -8})
	assert.InDelta(t, -1.0, n[2], 1e-6)

	assert.Equal(t, float32(0.5), Clamp(0.5, 0, 1))
	assert.Equal(t, float32(0), Clamp(-2, 0, 1))
	assert.Equal(t, float32(1), Saturate(3))
	assert.InDelta(t, 2.5, Lerp(2, 3, 0.5), 1e-6)
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1.0}
	b := SliceToBytes(data)
	// float32(1.0) little-endian.
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b)

	assert.Nil(t, SliceToBytes[float32](nil))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestExtractFrustumContainsInteriorPoint(t *testing.T) {
	var view, proj, viewProj [16]float32
	LookAt(view[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)
	Perspective(proj[:], 1.0, 1.0, 0.1, 100)
	Mul4(viewProj[:], proj[:], view[:])

	f := ExtractFrustumFromMatrix(viewProj[:])
	inside := [3]float32{0, 0, 0}
	for i, plane := range f.Planes {
		dist := Dot3(plane.Normal, inside) + plane.Distance
		assert.Greaterf(t, dist, float32(0), "plane %d", i)
	}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	var view, proj, viewProj [16]float32
	LookAt(view[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)
	Perspective(proj[:], 1.0, 1.0, 0.1, 100)
	Mul4(viewProj[:], proj[:], view[:])
	f := ExtractFrustumFromMatrix(viewProj[:])

	// A box at the look-at target overlaps; one behind the camera does not.
	assert.True(t, f.IntersectsAABB([3]float32{-1, -1, -1}, [3]float32{1, 1, 1}))
	assert.False(t, f.IntersectsAABB([3]float32{-1, -1, 30}, [3]float32{1, 1, 32}))

	// A box straddling a side plane still counts as inside.
	assert.True(t, f.IntersectsAABB([3]float32{-50, -1, -1}, [3]float32{0, 1, 1}))
}
