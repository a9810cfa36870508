package shader

import (
	_ "embed"
	"fmt"

	"github.com/sunward-gfx/sunward/engine/shading"
)

//go:embed assets/forward_vertex.wgsl
var forwardVertexTemplate string

//go:embed assets/forward_fragment.wgsl
var forwardFragmentTemplate string

//go:embed assets/shadow_depth.wgsl
var shadowDepthTemplate string

// VariantKey derives a stable cache key for the shader pair generated from a
// shading configuration. Two configs that expand to identical WGSL produce
// the same key.
//
// Parameters:
//   - cfg: the shading variant configuration
//
// Returns:
//   - string: the cache key
func VariantKey(cfg *shading.Config) string {
	return fmt.Sprintf("forward:alg%d:amb%v*%v:bias%v:soft%v:spread%v:fall%t:nt%d:msun%t",
		cfg.ShadowAlgorithm,
		cfg.AmbientColor, cfg.AmbientWeight,
		cfg.ShadowBias, cfg.SoftWidth, cfg.PCFSpread,
		cfg.FalloffEnabled,
		cfg.NormalTransform,
		cfg.TransformSunDirection,
	)
}

// AssembleForward expands the forward shader templates for a shading
// configuration and returns the vertex and fragment shaders ready for
// pipeline creation.
//
// Parameters:
//   - cfg: the shading variant configuration
//
// Returns:
//   - Shader: the vertex shader
//   - Shader: the fragment shader
//   - error: an error if template expansion fails
func AssembleForward(cfg *shading.Config) (Shader, Shader, error) {
	pp := NewPreProcessor()

	vertexSource, err := pp.Process(forwardVertexTemplate, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("shader: assembling forward vertex shader: %w", err)
	}
	fragmentSource, err := pp.Process(forwardFragmentTemplate, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("shader: assembling forward fragment shader: %w", err)
	}

	key := VariantKey(cfg)
	vs := NewShader(key+":vs", ShaderTypeVertex, vertexSource, pp.StructSize)
	fs := NewShader(key+":fs", ShaderTypeFragment, fragmentSource, pp.StructSize)
	return vs, fs, nil
}

// AssembleShadowDepth expands the depth-only shadow pass vertex shader. The
// shadow pass has no fragment stage; depth writes come from the fixed
// function depth test.
//
// Returns:
//   - Shader: the shadow pass vertex shader
//   - error: an error if template expansion fails
func AssembleShadowDepth() (Shader, error) {
	pp := NewPreProcessor()
	source, err := pp.Process(shadowDepthTemplate, nil)
	if err != nil {
		return nil, fmt.Errorf("shader: assembling shadow depth shader: %w", err)
	}
	return NewShader("shadow_depth:vs", ShaderTypeVertex, source, pp.StructSize), nil
}
