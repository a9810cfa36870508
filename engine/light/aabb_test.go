package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunward-gfx/sunward/common"
)

func TestAABBExpandToFit(t *testing.T) {
	box := NewAABB()
	require.True(t, box.IsEmpty())

	box.ExpandToFit([][3]float32{
		{1, 2, 3},
		{-1, 5, 0},
		{0, -2, 7},
	})

	assert.False(t, box.IsEmpty())
	assert.Equal(t, [3]float32{-1, -2, 0}, box.Min)
	assert.Equal(t, [3]float32{1, 5, 7}, box.Max)
}

func TestAABBTransformStaysAxisAligned(t *testing.T) {
	box := FromMinMax([3]float32{-1, -1, -1}, [3]float32{1, 1, 1})

	// Rotate 90 degrees about y via a view matrix; the box must be refit from
	// all eight corners, not just the original min/max pair.
	var view [16]float32
	common.LookAt(view[:], 0, 0, 0, -1, 0, 0, 0, 1, 0)
	box.Transform(view[:])

	assert.InDelta(t, -1.0, box.Min[0], 1e-5)
	assert.InDelta(t, 1.0, box.Max[0], 1e-5)
	assert.InDelta(t, -1.0, box.Min[2], 1e-5)
	assert.InDelta(t, 1.0, box.Max[2], 1e-5)
}

func TestAABBExpandZLeavesXYUntouched(t *testing.T) {
	box := FromMinMax([3]float32{-1, -1, -1}, [3]float32{1, 1, 1})
	other := FromMinMax([3]float32{-50, -50, -20}, [3]float32{50, 50, 30})

	box.ExpandZ(other)

	assert.Equal(t, [3]float32{-1, -1, -20}, box.Min)
	assert.Equal(t, [3]float32{1, 1, 30}, box.Max)
}

func TestAABBPosZPlaneMidpoint(t *testing.T) {
	box := FromMinMax([3]float32{-2, -4, -6}, [3]float32{2, 4, 6})
	mid := box.PosZPlaneMidpoint()

	assert.Equal(t, [3]float32{0, 0, 6}, mid)
}
