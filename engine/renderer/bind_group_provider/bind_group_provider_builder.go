package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupProviderOption is a functional option applied to a provider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithTextureView pre-populates a texture view at the given binding. Used to
// bind externally created views, such as the shadow map depth view, into a
// provider before InitBindGroup.
//
// Parameters:
//   - binding: the binding index
//   - tv: the texture view to store
//
// Returns:
//   - BindGroupProviderOption: a function that stores the texture view on a provider
func WithTextureView(binding int, tv *wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.textureViews[binding] = tv
	}
}

// WithSampler pre-populates a sampler at the given binding.
//
// Parameters:
//   - binding: the binding index
//   - s: the sampler to store
//
// Returns:
//   - BindGroupProviderOption: a function that stores the sampler on a provider
func WithSampler(binding int, s *wgpu.Sampler) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.samplers[binding] = s
	}
}
