package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunward-gfx/sunward/common"
)

func identityUniforms() *Uniforms {
	u := &Uniforms{
		Resolution:   [2]float32{800, 600},
		SunDirection: [3]float32{0, 1, 0},
		SunColor:     [3]float32{1, 1, 1},
	}
	common.Identity(u.Model[:])
	common.Identity(u.View[:])
	common.Identity(u.Proj[:])
	common.Identity(u.LightViewProj[:])
	return u
}

func TestTransformVertexAspectCorrection(t *testing.T) {
	cfg := NewConfig()
	in := VertexInput{Position: [3]float32{1, 1, 0}}

	tests := []struct {
		name       string
		resolution [2]float32
		wantX      float32
		wantY      float32
	}{
		{name: "wide viewport compresses x", resolution: [2]float32{800, 600}, wantX: 0.75, wantY: 1},
		{name: "tall viewport compresses y", resolution: [2]float32{600, 800}, wantX: 1, wantY: 0.75},
		{name: "square viewport is a no-op", resolution: [2]float32{512, 512}, wantX: 1, wantY: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := identityUniforms()
			u.Resolution = tt.resolution
			out := TransformVertex(u, &cfg, in)
			assert.InDelta(t, tt.wantX, out.ClipPosition[0], 1e-6)
			assert.InDelta(t, tt.wantY, out.ClipPosition[1], 1e-6)
		})
	}
}

func TestTransformVertexLightClipPosition(t *testing.T) {
	cfg := NewConfig()
	u := identityUniforms()
	common.Orthographic(u.LightViewProj[:], -2, 2, -2, 2, 0, 4)

	out := TransformVertex(u, &cfg, VertexInput{Position: [3]float32{2, 0, -4}})
	assert.InDelta(t, 1.0, out.LightClipPosition[0], 1e-6)
	assert.InDelta(t, 0.0, out.LightClipPosition[1], 1e-6)
	assert.InDelta(t, 1.0, out.LightClipPosition[2], 1e-6)
	assert.InDelta(t, 1.0, out.LightClipPosition[3], 1e-6)
}

func TestTransformVertexReferenceNormalPicksUpTranslation(t *testing.T) {
	// The reference policy pushes normals through the model matrix with w=1,
	// so a translated model matrix skews the normal. The inverse-transpose
	// policy must not.
	u := identityUniforms()
	u.Model[12], u.Model[13], u.Model[14] = 5, 0, 0
	in := VertexInput{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}}

	refCfg := NewConfig()
	refOut := TransformVertex(u, &refCfg, in)
	assert.Equal(t, [3]float32{5, 1, 0}, refOut.Normal)

	itCfg := NewConfig(WithNormalTransform(NormalTransformInverseTranspose))
	itOut := TransformVertex(u, &itCfg, in)
	assert.InDelta(t, 0.0, itOut.Normal[0], 1e-6)
	assert.InDelta(t, 1.0, itOut.Normal[1], 1e-6)
	assert.InDelta(t, 0.0, itOut.Normal[2], 1e-6)
}

func TestTransformVertexSunSpace(t *testing.T) {
	u := identityUniforms()
	u.Model[12] = 3
	u.SunDirection = [3]float32{0, 1, 0}
	in := VertexInput{Normal: [3]float32{0, 0, 1}}

	modelCfg := NewConfig()
	require.True(t, modelCfg.TransformSunDirection)
	modelOut := TransformVertex(u, &modelCfg, in)
	assert.Equal(t, [3]float32{3, 1, 0}, modelOut.LightDirection)

	worldCfg := NewConfig(WithWorldSpaceSun())
	worldOut := TransformVertex(u, &worldCfg, in)
	assert.Equal(t, [3]float32{0, 1, 0}, worldOut.LightDirection)
}

func TestTransformVertexPassThrough(t *testing.T) {
	cfg := NewConfig()
	u := identityUniforms()
	in := VertexInput{
		Position: [3]float32{0, 0, -1},
		TexCoord: [3]float32{0.25, 0.75, 0},
		Color:    [3]float32{1, 0.5, 0.25},
	}
	out := TransformVertex(u, &cfg, in)
	assert.Equal(t, in.TexCoord, out.TexCoord)
	assert.Equal(t, in.Color, out.Color)
	assert.Equal(t, [3]float32{0, 0, 1}, out.EyeDirection)
}
