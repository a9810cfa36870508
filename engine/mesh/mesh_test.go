package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunward-gfx/sunward/engine/shading"
)

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		TexCoord: [3]float32{0.5, 0.25, 0},
		Color:    [3]float32{1, 0.5, 0.125},
	}

	require.Equal(t, 48, v.Size())
	buf := v.Marshal()
	require.Len(t, buf, 48)

	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:32])))
	assert.Equal(t, float32(0.125), math.Float32frombits(binary.LittleEndian.Uint32(buf[44:48])))
}

func TestMeshBuffersAndBounds(t *testing.T) {
	m := NewPlane(4, 2)

	require.Equal(t, 6, m.IndexCount())
	assert.Len(t, m.VertexData(), 4*48)
	assert.Len(t, m.IndexData(), 6*4)

	bounds := m.Bounds()
	assert.Equal(t, [3]float32{-2, 0, -1}, bounds.Min)
	assert.Equal(t, [3]float32{2, 0, 1}, bounds.Max)
}

func TestBoxHasFlatFaceNormals(t *testing.T) {
	m := NewBox(2, 2, 2)
	require.Len(t, m.Vertices(), 24)
	require.Equal(t, 36, m.IndexCount())

	// Every vertex normal points away from the box center through its face.
	for _, v := range m.Vertices() {
		dot := v.Position[0]*v.Normal[0] + v.Position[1]*v.Normal[1] + v.Position[2]*v.Normal[2]
		assert.Greater(t, dot, float32(0))
	}
}

func TestWithUniformColor(t *testing.T) {
	m := NewMesh(
		WithVertices([]GPUVertex{{}, {}, {}}),
		WithIndices([]uint32{0, 1, 2}),
		WithUniformColor(0.2, 0.4, 0.6),
	)
	for _, v := range m.Vertices() {
		assert.Equal(t, [3]float32{0.2, 0.4, 0.6}, v.Color)
	}
}

func TestInstanceModelMatrixAndBounds(t *testing.T) {
	m := NewBox(2, 2, 2)
	inst := NewInstance(m,
		WithPosition(10, 0, -5),
		WithScale(2, 1, 1),
	)

	model := inst.ModelMatrix()
	// Unit corner (1, 1, 1) lands at position + scale * corner.
	x := model[0]*1 + model[4]*1 + model[8]*1 + model[12]
	y := model[1]*1 + model[5]*1 + model[9]*1 + model[13]
	z := model[2]*1 + model[6]*1 + model[10]*1 + model[14]
	assert.InDelta(t, 12.0, x, 1e-5)
	assert.InDelta(t, 1.0, y, 1e-5)
	assert.InDelta(t, -4.0, z, 1e-5)

	bounds := inst.WorldBounds()
	assert.InDelta(t, 8.0, bounds.Min[0], 1e-5)
	assert.InDelta(t, 12.0, bounds.Max[0], 1e-5)
	assert.InDelta(t, -6.0, bounds.Min[2], 1e-5)
	assert.InDelta(t, -4.0, bounds.Max[2], 1e-5)
}

func TestNewInstanceDefaultsAndNilMeshPanics(t *testing.T) {
	inst := NewInstance(NewPlane(1, 1))
	assert.Equal(t, [3]float32{1, 1, 1}, inst.Scale())
	assert.True(t, inst.CastsShadows())
	assert.Equal(t, shading.SolidTexture{1, 1, 1, 1}, inst.Texture())

	assert.Panics(t, func() { NewInstance(nil) })
}
