package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunward-gfx/sunward/engine/shading"
)

func TestPreProcessorInjectsStructSources(t *testing.T) {
	pp := NewPreProcessor()

	out, err := pp.Process("//sun:include vertex\n//sun:include forward_uniforms", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "struct VertexInput")
	assert.Contains(t, out, "struct ForwardUniforms")
}

func TestPreProcessorErrors(t *testing.T) {
	pp := NewPreProcessor()

	_, err := pp.Process("//sun:include no_such_struct", nil)
	assert.Error(t, err)

	_, err = pp.Process("//sun:shadow_factor", nil)
	assert.Error(t, err)

	_, err = pp.Process("//sun:frobnicate", nil)
	assert.Error(t, err)
}

func TestPreProcessorConstants(t *testing.T) {
	pp := NewPreProcessor()
	cfg := shading.NewConfig()

	out, err := pp.Process("//sun:constants", &cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "const AMBIENT_WEIGHT: f32 = 0.2;")
	assert.Contains(t, out, "const SHADOW_BIAS: f32 = 0.001;")
	assert.Contains(t, out, "const PCF_SPREAD: f32 = 700.0;")
}

func TestAssembleForwardHardShadow(t *testing.T) {
	cfg := shading.NewConfig()

	vs, fs, err := AssembleForward(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Equal(t, "fs_main", fs.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, vs.ShaderType())
	assert.Equal(t, ShaderTypeFragment, fs.ShaderType())

	// The vertex layout mirrors the 48-byte GPUVertex.
	layout := vs.VertexLayout()
	require.Len(t, layout, 1)
	assert.Equal(t, uint64(48), layout[0].ArrayStride)
	require.Len(t, layout[0].Attributes, 4)
	for _, attr := range layout[0].Attributes {
		assert.Equal(t, wgpu.VertexFormatFloat32x3, attr.Format)
	}

	// The hard shadow variant carries the softened single-tap comparison.
	assert.Contains(t, fs.Source(), "SOFT_WIDTH")
	assert.NotContains(t, fs.Source(), "0.111")
}

func TestAssembleForwardVariants(t *testing.T) {
	pcf := shading.NewConfig(shading.WithShadowAlgorithm(shading.ShadowPCF9))
	_, fs, err := AssembleForward(&pcf)
	require.NoError(t, err)
	assert.Contains(t, fs.Source(), "0.111")
	assert.Contains(t, fs.Source(), "array<vec2<f32>, 9>")

	none := shading.NewConfig(shading.WithShadowAlgorithm(shading.ShadowNone))
	_, fs, err = AssembleForward(&none)
	require.NoError(t, err)
	assert.NotContains(t, fs.Source(), "textureSampleLevel")

	falloff := shading.NewConfig(shading.WithFalloff(true))
	_, fs, err = AssembleForward(&falloff)
	require.NoError(t, err)
	assert.Contains(t, fs.Source(), "-10.0 * light.z + 1.0")

	worldSun := shading.NewConfig(shading.WithWorldSpaceSun())
	vs, _, err := AssembleForward(&worldSun)
	require.NoError(t, err)
	assert.Contains(t, vs.Source(), "return uniforms.sun_direction;")
}

func TestAssembleForwardBindGroupLayouts(t *testing.T) {
	cfg := shading.NewConfig()
	vs, fs, err := AssembleForward(&cfg)
	require.NoError(t, err)

	// Group 0: the forward uniform buffer, visible to each declaring stage.
	vsGroup0 := vs.BindGroupLayoutDescriptor(0)
	require.Len(t, vsGroup0.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, vsGroup0.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(304), vsGroup0.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, vsGroup0.Entries[0].Visibility)

	// Group 1: base texture and filtering sampler.
	group1 := fs.BindGroupLayoutDescriptor(1)
	require.Len(t, group1.Entries, 2)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, group1.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, group1.Entries[1].Sampler.Type)

	// Group 2: the depth texture forces its sampler to non-filtering.
	group2 := fs.BindGroupLayoutDescriptor(2)
	require.Len(t, group2.Entries, 2)
	assert.Equal(t, wgpu.TextureSampleTypeDepth, group2.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeNonFiltering, group2.Entries[1].Sampler.Type)

	assert.Equal(t, "uniforms", vs.BindGroupVarName(0, 0))
	assert.Equal(t, "shadow_texture", fs.BindGroupVarName(2, 0))
}

func TestAssembleShadowDepth(t *testing.T) {
	s, err := AssembleShadowDepth()
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.EntryPoint())
	layout := s.VertexLayout()
	require.Len(t, layout, 1)
	assert.Equal(t, uint64(48), layout[0].ArrayStride)

	group0 := s.BindGroupLayoutDescriptor(0)
	require.Len(t, group0.Entries, 1)
	assert.Equal(t, uint64(64), group0.Entries[0].Buffer.MinBindingSize)
}

func TestVariantKeyDistinguishesConfigs(t *testing.T) {
	a := shading.NewConfig()
	b := shading.NewConfig(shading.WithShadowAlgorithm(shading.ShadowPCF9))
	c := shading.NewConfig()

	assert.NotEqual(t, VariantKey(&a), VariantKey(&b))
	assert.Equal(t, VariantKey(&a), VariantKey(&c))
	assert.True(t, strings.HasPrefix(VariantKey(&a), "forward:"))
}
