package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunward-gfx/sunward/common"
)

func TestCameraViewMatrixMovesWorldToView(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5), WithTarget(0, 0, 0))

	view := c.ViewMatrix()
	p := common.TransformPoint(view[:], [3]float32{0, 0, 0})
	assert.InDelta(t, 0.0, p[0], 1e-6)
	assert.InDelta(t, 0.0, p[1], 1e-6)
	assert.InDelta(t, -5.0, p[2], 1e-6)
}

func TestCameraOrthographicMapsExtentsToNDC(t *testing.T) {
	c := NewCamera(
		WithPosition(0, 0, 0),
		WithTarget(0, 0, -1),
		WithOrthographic(OrthoExtents{Left: -10, Right: 10, Bottom: -10, Top: 10, Near: 0, Far: 20}),
	)
	require.Equal(t, ProjectionOrthographic, c.Kind())

	vp := c.ViewProjectionMatrix()
	corner := common.MulVec4(vp[:], [4]float32{10, 10, -20, 1})
	assert.InDelta(t, 1.0, corner[0], 1e-5)
	assert.InDelta(t, 1.0, corner[1], 1e-5)
	assert.InDelta(t, 1.0, corner[2], 1e-5)
}

func TestCameraInverseViewProjectionRoundTrip(t *testing.T) {
	c := NewCamera(
		WithPosition(3, 4, 5),
		WithTarget(0, 1, 0),
		WithPerspective(1.0, 1.5, 0.1, 50),
	)

	vp := c.ViewProjectionMatrix()
	inv, ok := c.InverseViewProjectionMatrix()
	require.True(t, ok)

	var identity [16]float32
	common.Mul4(identity[:], vp[:], inv[:])
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		assert.InDelta(t, want, identity[i], 1e-4, "element %d", i)
	}
}

func TestCameraClipSpaceConventions(t *testing.T) {
	ortho := OrthoExtents{Left: -1, Right: 1, Bottom: -1, Top: 1, Near: 0, Far: 10}

	webgpu := NewCamera(WithPosition(0, 0, 0), WithTarget(0, 0, -1), WithOrthographic(ortho))
	gl := NewCamera(WithPosition(0, 0, 0), WithTarget(0, 0, -1), WithOrthographic(ortho), WithClipSpace(ClipSpaceNegOneToOne))

	vpW := webgpu.ViewProjectionMatrix()
	vpG := gl.ViewProjectionMatrix()

	// Midpoint of the depth range: 0.5 under WebGPU, 0.0 under GL.
	mid := [4]float32{0, 0, -5, 1}
	assert.InDelta(t, 0.5, common.MulVec4(vpW[:], mid)[2], 1e-5)
	assert.InDelta(t, 0.0, common.MulVec4(vpG[:], mid)[2], 1e-5)
}

func TestCameraSettersRecompute(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5), WithTarget(0, 0, 0))
	before := c.ViewMatrix()

	c.SetPosition(0, 0, 10)
	after := c.ViewMatrix()
	assert.NotEqual(t, before, after)

	p := common.TransformPoint(after[:], [3]float32{0, 0, 0})
	assert.InDelta(t, -10.0, p[2], 1e-6)
}

func TestCameraSetUp(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	before := c.ViewMatrix()

	// Rolling the camera 90 degrees swaps the x and y rows of the view.
	c.SetUp(1, 0, 0)
	assert.Equal(t, [3]float32{1, 0, 0}, c.Up())
	assert.NotEqual(t, before, c.ViewMatrix())
}
