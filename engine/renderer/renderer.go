package renderer

import (
	"fmt"
	"image"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/sunward-gfx/sunward/common"
	"github.com/sunward-gfx/sunward/engine/light"
	"github.com/sunward-gfx/sunward/engine/renderer/bind_group_provider"
	"github.com/sunward-gfx/sunward/engine/renderer/pipeline"
	"github.com/sunward-gfx/sunward/engine/renderer/shader"
	"github.com/sunward-gfx/sunward/engine/shading"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingClearColor    *wgpu.Color
	shadowMapSize        int
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a
// streamlined and idiomatic flow. The Renderer manages a cache of pipelines
// keyed by shading variant, renders the shadow depth pass and the forward lit
// pass into offscreen targets, and reads finished frames back to the CPU.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterForwardVariant assembles the forward shader pair for a shading
	// configuration, creates the GPU pipeline, and caches it under the
	// variant's key. Registering an already-cached variant is a no-op.
	//
	// Parameters:
	//   - cfg: the shading variant configuration
	//
	// Returns:
	//   - string: the cache key for the registered pipeline
	//   - error: an error if shader assembly or pipeline creation fails
	RegisterForwardVariant(cfg *shading.Config) (string, error)

	// RegisterShadowVariant assembles the depth-only shadow shader, creates
	// the GPU pipeline with front-face culling and a depth bias, and caches
	// it. Registering twice is a no-op.
	//
	// Returns:
	//   - string: the cache key for the registered shadow pipeline
	//   - error: an error if shader assembly or pipeline creation fails
	RegisterShadowVariant() (string, error)

	// BindGroupLayoutDescriptor returns the layout descriptor for one bind
	// group of a cached pipeline, merged across its vertex and fragment
	// shaders. Bind groups created from this descriptor are group-equivalent
	// to the pipeline's own layouts. Returns an empty descriptor when the
	// pipeline or group is unknown.
	//
	// Parameters:
	//   - pipelineKey: the cached pipeline to inspect
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the merged descriptor for the group
	BindGroupLayoutDescriptor(pipelineKey string, group int) wgpu.BindGroupLayoutDescriptor

	// RegisterPipelines registers one or more pre-built pipelines by creating
	// the corresponding GPU pipeline objects via the backend, then caching
	// them by PipelineKey. Pipelines whose keys are already registered are
	// skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize recreates the offscreen color and depth targets at a new size.
	//
	// Parameters:
	//   - width: the new width of the render target in pixels
	//   - height: the new height of the render target in pixels
	//
	// Returns:
	//   - error: an error if target creation fails
	Resize(width, height int) error

	// ShadowMapSize returns the configured shadow map resolution in texels.
	//
	// Returns:
	//   - int: the shadow map edge length
	ShadowMapSize() int

	// TargetSize returns the current offscreen render target size in pixels.
	//
	// Returns:
	//   - int: the target width
	//   - int: the target height
	TargetSize() (int, int)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the given BindGroupProvider. Textures and samplers must be initialized via InitTextureView
	// and InitSampler before calling this method.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//   - bufferSizeOverrides: custom buffer sizes to use instead of MinBindingSize, keyed by binding index (nil safe)
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error

	// InitTextureView creates a GPU texture from staging data and stores the resulting texture view
	// on the given BindGroupProvider at the specified binding index. Must be called before InitBindGroup
	// for any texture bindings.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created texture view on
	//   - bindingKey: the binding index for this texture
	//   - stagingData: the pixel data and dimensions for the texture
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler from staging data and stores it on the given BindGroupProvider
	// at the specified binding index. Must be called before InitBindGroup for any sampler bindings.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created sampler on
	//   - bindingKey: the binding index for this sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// CreateShadowDepthTexture creates a Depth32Float texture and view for shadow mapping.
	// The texture can be sampled as a depth texture in the lit fragment shader.
	//
	// Parameters:
	//   - width: shadow map width in texels
	//   - height: shadow map height in texels
	//
	// Returns:
	//   - *wgpu.TextureView: the depth texture view for the shadow render pass
	//   - *wgpu.Texture: the underlying texture (caller must release when done)
	//   - error: an error if texture creation fails
	CreateShadowDepthTexture(width, height int) (*wgpu.TextureView, *wgpu.Texture, error)

	// CreateShadowSampler creates the clamped nearest sampler used to read raw
	// shadow map depths in the lit fragment shader.
	//
	// Returns:
	//   - *wgpu.Sampler: the shadow sampler
	//   - error: an error if sampler creation fails
	CreateShadowSampler() (*wgpu.Sampler, error)

	// BeginShadowFrame creates a command encoder for batching shadow depth passes.
	// Must be paired with EndShadowFrame.
	//
	// Returns:
	//   - error: an error if the command encoder could not be created
	BeginShadowFrame() error

	// BeginShadowPass starts a depth-only render pass targeting the given shadow depth view.
	//
	// Parameters:
	//   - depthView: the shadow map depth texture view to render into
	BeginShadowPass(depthView *wgpu.TextureView)

	// ShadowDrawCall encodes a single instanced draw command within the current shadow pass.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached shadow Pipeline
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: bind group providers for the shadow pass
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	ShadowDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndShadowPass ends the current shadow depth render pass.
	EndShadowPass()

	// EndShadowFrame finishes the shadow command encoder and submits to the GPU queue.
	EndShadowFrame()

	// BeginFrame begins the forward render pass into the offscreen color target.
	// Must be paired with EndFrame after all DrawCall invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the pass could not be started
	BeginFrame() error

	// DrawCall encodes a single instanced draw command within the current render pass.
	// Multiple DrawCall invocations can be made between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached forward Pipeline to use
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: a slice of BindGroupProviders whose BindGroups will be set on the render pass
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Must be called after BeginFrame and all DrawCall invocations within a single frame.
	EndFrame()

	// ReadPixels copies the finished offscreen frame back to the CPU.
	//
	// Returns:
	//   - *image.RGBA: the frame contents
	//   - error: an error if the copy or map fails
	ReadPixels() (*image.RGBA, error)

	// Release frees all GPU resources owned by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type
// and offscreen target size.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - width: the offscreen render target width in pixels
//   - height: the offscreen render target height in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the GPU could not be initialized
func NewRenderer(backendType RendererBackendType, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		shadowMapSize: light.ShadowMapResolution,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	var backend RendererBackend
	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err = newWGPURendererBackend(r.forceFallbackAdapter)
	}
	if err != nil {
		return nil, err
	}
	r.backend = backend

	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	if err := r.backend.ConfigureTargets(width, height); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureTargets(width, height)
}

func (r *renderer) ShadowMapSize() int {
	return r.shadowMapSize
}

func (r *renderer) TargetSize() (int, int) {
	return r.backend.TargetSize()
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterForwardVariant(cfg *shading.Config) (string, error) {
	key := shader.VariantKey(cfg)

	r.mu.Lock()
	_, exists := r.pipelineCache[key]
	r.mu.Unlock()
	if exists {
		return key, nil
	}

	vs, fs, err := shader.AssembleForward(cfg)
	if err != nil {
		return "", err
	}

	p := pipeline.NewPipeline(key, pipeline.PipelineTypeForward,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
	if err := r.RegisterPipelines(p); err != nil {
		return "", err
	}
	return key, nil
}

func (r *renderer) RegisterShadowVariant() (string, error) {
	const key = "shadow_depth"

	r.mu.Lock()
	_, exists := r.pipelineCache[key]
	r.mu.Unlock()
	if exists {
		return key, nil
	}

	vs, err := shader.AssembleShadowDepth()
	if err != nil {
		return "", err
	}

	// Front-face culling with a small slope-scaled bias keeps closed meshes
	// from shadowing themselves.
	p := pipeline.NewPipeline(key, pipeline.PipelineTypeShadow,
		pipeline.WithVertexShader(vs),
		pipeline.WithCullMode(wgpu.CullModeFront),
		pipeline.WithDepthBias(2, 2.0),
	)
	if err := r.RegisterPipelines(p); err != nil {
		return "", err
	}
	return key, nil
}

func (r *renderer) BindGroupLayoutDescriptor(pipelineKey string, group int) wgpu.BindGroupLayoutDescriptor {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return wgpu.BindGroupLayoutDescriptor{}
	}

	var vertexDescs, fragmentDescs map[int]wgpu.BindGroupLayoutDescriptor
	if vs := p.Shader(shader.ShaderTypeVertex); vs != nil {
		vertexDescs = vs.BindGroupLayoutDescriptors()
	}
	if fs := p.Shader(shader.ShaderTypeFragment); fs != nil {
		fragmentDescs = fs.BindGroupLayoutDescriptors()
	}
	return mergeBindGroupLayouts(vertexDescs, fragmentDescs)[group]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		switch p.Type() {
		case pipeline.PipelineTypeShadow:
			if err := r.backend.RegisterShadowPipeline(p); err != nil {
				return err
			}
		case pipeline.PipelineTypeForward:
			if err := r.backend.RegisterForwardPipeline(p); err != nil {
				return err
			}
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferSizeOverrides)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) CreateShadowDepthTexture(width, height int) (*wgpu.TextureView, *wgpu.Texture, error) {
	return r.backend.CreateShadowDepthTexture(width, height)
}

func (r *renderer) CreateShadowSampler() (*wgpu.Sampler, error) {
	return r.backend.CreateShadowSampler()
}

func (r *renderer) BeginShadowFrame() error {
	return r.backend.BeginShadowFrame()
}

func (r *renderer) BeginShadowPass(depthView *wgpu.TextureView) {
	r.backend.BeginShadowPass(depthView)
}

func (r *renderer) ShadowDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("shadow pipeline %q not found in cache", pipelineKey)
	}

	r.backend.ShadowDrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndShadowPass() {
	r.backend.EndShadowPass()
}

func (r *renderer) EndShadowFrame() {
	r.backend.EndShadowFrame()
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("forward pipeline %q not found in cache", pipelineKey)
	}

	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) ReadPixels() (*image.RGBA, error) {
	return r.backend.ReadPixels()
}

func (r *renderer) Release() {
	r.backend.Release()
}
