package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("forward", PipelineTypeForward)

	assert.Equal(t, PipelineTypeForward, p.Type())
	assert.Equal(t, "forward", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Nil(t, p.Pipeline())
}

func TestPipelineBuilderOptions(t *testing.T) {
	p := NewPipeline("shadow", PipelineTypeShadow,
		WithCullMode(wgpu.CullModeFront),
		WithDepthBias(2, 2.0),
		WithBlendEnabled(true),
	)

	assert.Equal(t, PipelineTypeShadow, p.Type())
	assert.Equal(t, wgpu.CullModeFront, p.CullMode())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.Equal(t, float32(2.0), p.DepthBiasSlopeScale())
	assert.True(t, p.BlendEnabled())
}
