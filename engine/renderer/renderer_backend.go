package renderer

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/sunward-gfx/sunward/common"
	"github.com/sunward-gfx/sunward/engine/renderer/bind_group_provider"
	"github.com/sunward-gfx/sunward/engine/renderer/pipeline"
)

// RendererBackendType identifies the rendering backend implementation to use.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU backend.
	BackendTypeWGPU RendererBackendType = iota
)

// RendererBackend is the low-level GPU interface the Renderer delegates to.
// It owns the device, queue, and offscreen render targets, and encodes the
// shadow and forward passes.
type RendererBackend interface {
	// ConfigureTargets creates or recreates the offscreen color and depth
	// targets at the given size.
	ConfigureTargets(width, height int) error

	// SetClearColor sets the clear color for the forward pass.
	SetClearColor(c wgpu.Color)

	// TargetSize returns the current offscreen target size in pixels.
	TargetSize() (width, height int)

	// RegisterForwardPipeline creates the GPU render pipeline for a forward
	// pipeline object with vertex and fragment shaders.
	RegisterForwardPipeline(p pipeline.Pipeline) error

	// RegisterShadowPipeline creates the depth-only GPU pipeline for a shadow
	// pipeline object.
	RegisterShadowPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data into new GPU buffers on the provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates buffers and the bind group for a layout descriptor on the provider.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error

	// InitTextureView uploads staging pixels into a new texture and stores its view on the provider.
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler from staging configuration and stores it on the provider.
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers flushes staged uniform writes to the GPU queue.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// CreateShadowDepthTexture creates a Depth32Float shadow map texture and view.
	CreateShadowDepthTexture(width, height int) (*wgpu.TextureView, *wgpu.Texture, error)

	// CreateShadowSampler creates the clamped nearest sampler used to read raw shadow map depths.
	CreateShadowSampler() (*wgpu.Sampler, error)

	BeginShadowFrame() error
	BeginShadowPass(depthView *wgpu.TextureView)
	ShadowDrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider)
	EndShadowPass()
	EndShadowFrame()

	BeginFrame() error
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider)
	EndFrame()

	// ReadPixels copies the offscreen color target back to the CPU.
	ReadPixels() (*image.RGBA, error)

	// Device returns the underlying GPU device.
	Device() *wgpu.Device

	// Queue returns the underlying GPU queue.
	Queue() *wgpu.Queue

	// Release frees all GPU resources owned by the backend.
	Release()
}
