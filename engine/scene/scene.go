package scene

import (
	"fmt"
	"image"
	"sync"

	"github.com/chewxy/math32"

	"github.com/sunward-gfx/sunward/common"
	"github.com/sunward-gfx/sunward/engine/camera"
	"github.com/sunward-gfx/sunward/engine/light"
	"github.com/sunward-gfx/sunward/engine/mesh"
	"github.com/sunward-gfx/sunward/engine/renderer"
	"github.com/sunward-gfx/sunward/engine/renderer/bind_group_provider"
	"github.com/sunward-gfx/sunward/engine/shading"

	"github.com/cogentcore/webgpu/wgpu"
)

// sceneObject holds the GPU resources created for one mesh instance: its
// vertex and index buffers, the per-draw uniform bind group for the forward
// pass, the base texture bind group, and the uniform bind group for the
// depth-only shadow pass.
type sceneObject struct {
	id       uint64
	instance mesh.Instance

	meshBGP    bind_group_provider.BindGroupProvider
	uniformBGP bind_group_provider.BindGroupProvider
	textureBGP bind_group_provider.BindGroupProvider
	shadowBGP  bind_group_provider.BindGroupProvider
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam camera.Camera
	sun light.Sun
	r   renderer.Renderer
	cfg shading.Config

	nextID  uint64
	objects map[uint64]*sceneObject
	order   []uint64

	forwardKey string
	shadowKey  string

	shadowTexture *wgpu.Texture
	shadowView    *wgpu.TextureView
	shadowMapBGP  bind_group_provider.BindGroupProvider

	// writes is reused across frames to stage uniform uploads.
	writes []bind_group_provider.BufferWrite
}

// Scene manages a collection of mesh instances with a Camera, a Sun, and a
// Renderer, and drives the two-pass frame: a depth-only shadow pass from the
// sun's fitted camera followed by the lit forward pass. Scenes can be
// hot-swapped via the Active flag to switch between different views or levels.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Sun returns the scene's directional light.
	Sun() light.Sun

	// SetSun replaces the scene's directional light.
	//
	// Parameters:
	//   - sun: the new sun
	SetSun(sun light.Sun)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// SetRenderer replaces the scene's renderer.
	//
	// Parameters:
	//   - r: the new renderer
	SetRenderer(r renderer.Renderer)

	// Config returns the shading configuration the scene renders with.
	//
	// Returns:
	//   - shading.Config: a copy of the configuration
	Config() shading.Config

	// Count returns the number of instances registered in the scene.
	//
	// Returns:
	//   - int: the instance count
	Count() int

	// Add registers a mesh instance with the scene and creates its GPU
	// resources: vertex and index buffers, the per-draw uniform buffer and
	// bind group, the base texture and sampler, and the shadow pass uniform.
	// The first Add also registers the forward and shadow pipelines for the
	// scene's shading configuration and allocates the shadow map.
	//
	// Panics if the scene has no Renderer attached.
	//
	// Parameters:
	//   - inst: the mesh instance to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	//   - error: an error if GPU resource creation fails
	Add(inst mesh.Instance) (uint64, error)

	// Get retrieves a registered instance by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - mesh.Instance: the instance or nil
	Get(id uint64) mesh.Instance

	// Remove removes an instance from the scene by ID and releases its GPU
	// resources. Removing an unknown ID is a no-op.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all instances from the scene and releases their GPU
	// resources. The shadow map and pipelines stay registered.
	Clear()

	// RenderFrame renders one complete frame and reads it back to the CPU.
	// When the shading configuration enables shadows and the sun casts them,
	// the shadow camera is fitted to the viewer frustum and the scene bounds,
	// the shadow depth pass runs, and the forward pass samples its result.
	// Instances farther from the camera than their render distance are
	// skipped.
	//
	// Returns:
	//   - *image.RGBA: the rendered frame
	//   - error: an error if the scene has no renderer or camera, the shadow
	//     camera fit fails, or a GPU operation fails
	RenderFrame() (*image.RGBA, error)

	// Release frees all GPU resources owned by the scene. The renderer itself
	// is not released.
	Release()
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given name. A default sun is attached;
// the camera and renderer are set via options or their setters before the
// first Add.
//
// Parameters:
//   - name: the scene's identifier
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: a new Scene instance
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:      &sync.RWMutex{},
		name:    name,
		active:  true,
		sun:     light.NewSun(),
		cfg:     shading.NewConfig(),
		objects: make(map[uint64]*sceneObject),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Sun() light.Sun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sun
}

func (s *scene) SetSun(sun light.Sun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sun = sun
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Config() shading.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Add(inst mesh.Instance) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		panic(fmt.Sprintf("scene %q has no renderer attached", s.name))
	}
	if err := s.ensurePipelines(); err != nil {
		return 0, err
	}

	s.nextID++
	id := s.nextID
	m := inst.Mesh()
	label := fmt.Sprintf("%s:%s:%d", s.name, m.Name(), id)

	obj := &sceneObject{id: id, instance: inst}
	cleanup := func() {
		releaseObject(obj)
	}

	obj.meshBGP = bind_group_provider.NewBindGroupProvider(label + ":mesh")
	if err := s.r.InitMeshBuffers(obj.meshBGP, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		cleanup()
		return 0, fmt.Errorf("scene %q: mesh buffers for %q: %w", s.name, m.Name(), err)
	}

	obj.uniformBGP = bind_group_provider.NewBindGroupProvider(label + ":uniforms")
	if err := s.r.InitBindGroup(obj.uniformBGP, s.r.BindGroupLayoutDescriptor(s.forwardKey, 0), nil); err != nil {
		cleanup()
		return 0, fmt.Errorf("scene %q: uniform bind group for %q: %w", s.name, m.Name(), err)
	}

	obj.textureBGP = bind_group_provider.NewBindGroupProvider(label + ":texture")
	if err := s.r.InitTextureView(obj.textureBGP, 0, textureStaging(inst.Texture())); err != nil {
		cleanup()
		return 0, fmt.Errorf("scene %q: base texture for %q: %w", s.name, m.Name(), err)
	}
	if err := s.r.InitSampler(obj.textureBGP, 1, common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeRepeat,
		AddressModeW: wgpu.AddressModeRepeat,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	}); err != nil {
		cleanup()
		return 0, fmt.Errorf("scene %q: base sampler for %q: %w", s.name, m.Name(), err)
	}
	if err := s.r.InitBindGroup(obj.textureBGP, s.r.BindGroupLayoutDescriptor(s.forwardKey, 1), nil); err != nil {
		cleanup()
		return 0, fmt.Errorf("scene %q: texture bind group for %q: %w", s.name, m.Name(), err)
	}

	obj.shadowBGP = bind_group_provider.NewBindGroupProvider(label + ":shadow")
	if err := s.r.InitBindGroup(obj.shadowBGP, s.r.BindGroupLayoutDescriptor(s.shadowKey, 0), nil); err != nil {
		cleanup()
		return 0, fmt.Errorf("scene %q: shadow bind group for %q: %w", s.name, m.Name(), err)
	}

	s.objects[id] = obj
	s.order = append(s.order, id)
	return id, nil
}

func (s *scene) Get(id uint64) mesh.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if obj, ok := s.objects[id]; ok {
		return obj.instance
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok {
		return
	}
	releaseObject(obj)
	delete(s.objects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range s.objects {
		releaseObject(obj)
	}
	s.objects = make(map[uint64]*sceneObject)
	s.order = s.order[:0]
}

func (s *scene) RenderFrame() (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r == nil {
		return nil, fmt.Errorf("scene %q has no renderer attached", s.name)
	}
	if s.cam == nil {
		return nil, fmt.Errorf("scene %q has no camera attached", s.name)
	}

	width, height := s.r.TargetSize()
	view := s.cam.ViewMatrix()
	proj := s.cam.ProjectionMatrix()
	dir := s.sun.Direction()

	var lightVP [16]float32
	shadowed := s.cfg.ShadowAlgorithm != shading.ShadowNone && s.sun.CastsShadows() && s.shadowView != nil
	if shadowed {
		worldBounds := light.NewAABB()
		casters := 0
		for _, id := range s.order {
			inst := s.objects[id].instance
			if !inst.CastsShadows() {
				continue
			}
			wb := inst.WorldBounds()
			worldBounds.ExpandToFit([][3]float32{wb.Min, wb.Max})
			casters++
		}
		if casters == 0 {
			shadowed = false
		} else {
			shadowCam := newShadowCamera()
			if err := light.FitShadowCamera(shadowCam, s.cam, s.sun, worldBounds); err != nil {
				return nil, fmt.Errorf("scene %q: fitting shadow camera: %w", s.name, err)
			}
			lightVP = shadowCam.ViewProjectionMatrix()
		}
	}

	s.writes = s.writes[:0]
	for _, id := range s.order {
		obj := s.objects[id]
		u := shading.Uniforms{
			Resolution: [2]float32{float32(width), float32(height)},
			Model:      obj.instance.ModelMatrix(),
			View:       view,
			Proj:       proj,
			// The shading stages expect the direction toward the sun, the
			// reverse of the direction the light travels.
			SunDirection: [3]float32{-dir[0], -dir[1], -dir[2]},
			SunColor:     s.sun.Color(),
		}

		var mvp [16]float32
		if shadowed {
			model := u.Model
			common.Mul4(mvp[:], lightVP[:], model[:])
			u.LightViewProj = mvp
		}

		gpu := shading.ToGPUForwardUniforms(&u)
		s.writes = append(s.writes, bind_group_provider.BufferWrite{
			Provider: obj.uniformBGP,
			Binding:  0,
			Data:     gpu.Marshal(),
		})

		if shadowed && obj.instance.CastsShadows() {
			su := light.GPUShadowUniform{LightVP: mvp}
			s.writes = append(s.writes, bind_group_provider.BufferWrite{
				Provider: obj.shadowBGP,
				Binding:  0,
				Data:     su.Marshal(),
			})
		}
	}
	s.r.WriteBuffers(s.writes)

	if shadowed {
		if err := s.r.BeginShadowFrame(); err != nil {
			return nil, fmt.Errorf("scene %q: begin shadow frame: %w", s.name, err)
		}
		s.r.BeginShadowPass(s.shadowView)
		for _, id := range s.order {
			obj := s.objects[id]
			if !obj.instance.CastsShadows() {
				continue
			}
			if err := s.r.ShadowDrawCall(s.shadowKey, obj.meshBGP, 1, []bind_group_provider.BindGroupProvider{obj.shadowBGP}); err != nil {
				s.r.EndShadowPass()
				s.r.EndShadowFrame()
				return nil, fmt.Errorf("scene %q: shadow draw call: %w", s.name, err)
			}
		}
		s.r.EndShadowPass()
		s.r.EndShadowFrame()
	}

	if err := s.r.BeginFrame(); err != nil {
		return nil, fmt.Errorf("scene %q: begin frame: %w", s.name, err)
	}
	camPos := s.cam.Position()
	frustum := forwardFrustum(s.cam.ViewProjectionMatrix())
	for _, id := range s.order {
		obj := s.objects[id]
		if culledByDistance(camPos, obj.instance) {
			continue
		}
		wb := obj.instance.WorldBounds()
		if !frustum.IntersectsAABB(wb.Min, wb.Max) {
			continue
		}
		bindGroups := []bind_group_provider.BindGroupProvider{obj.uniformBGP, obj.textureBGP, s.shadowMapBGP}
		if err := s.r.DrawCall(s.forwardKey, obj.meshBGP, 1, bindGroups); err != nil {
			s.r.EndFrame()
			return nil, fmt.Errorf("scene %q: draw call: %w", s.name, err)
		}
	}
	s.r.EndFrame()

	return s.r.ReadPixels()
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range s.objects {
		releaseObject(obj)
	}
	s.objects = make(map[uint64]*sceneObject)
	s.order = s.order[:0]

	if s.shadowMapBGP != nil {
		s.shadowMapBGP.Release()
		s.shadowMapBGP = nil
	}
	if s.shadowView != nil {
		s.shadowView.Release()
		s.shadowView = nil
	}
	if s.shadowTexture != nil {
		s.shadowTexture.Release()
		s.shadowTexture = nil
	}
}

// ensurePipelines registers the forward and shadow pipelines for the scene's
// shading configuration and allocates the shadow map resources. Called with
// the write lock held; safe to call more than once.
func (s *scene) ensurePipelines() error {
	if s.forwardKey != "" {
		return nil
	}

	cfg := s.cfg
	forwardKey, err := s.r.RegisterForwardVariant(&cfg)
	if err != nil {
		return fmt.Errorf("scene %q: registering forward pipeline: %w", s.name, err)
	}
	shadowKey, err := s.r.RegisterShadowVariant()
	if err != nil {
		return fmt.Errorf("scene %q: registering shadow pipeline: %w", s.name, err)
	}

	size := s.r.ShadowMapSize()
	view, tex, err := s.r.CreateShadowDepthTexture(size, size)
	if err != nil {
		return fmt.Errorf("scene %q: creating shadow map: %w", s.name, err)
	}
	sampler, err := s.r.CreateShadowSampler()
	if err != nil {
		tex.Release()
		return fmt.Errorf("scene %q: creating shadow sampler: %w", s.name, err)
	}

	// The shadow map bind group is shared by every forward draw call.
	bgp := bind_group_provider.NewBindGroupProvider(s.name+":shadow_map",
		bind_group_provider.WithTextureView(0, view),
		bind_group_provider.WithSampler(1, sampler),
	)
	if err := s.r.InitBindGroup(bgp, s.r.BindGroupLayoutDescriptor(forwardKey, 2), nil); err != nil {
		tex.Release()
		return fmt.Errorf("scene %q: shadow map bind group: %w", s.name, err)
	}

	s.forwardKey = forwardKey
	s.shadowKey = shadowKey
	s.shadowTexture = tex
	s.shadowView = view
	s.shadowMapBGP = bgp
	return nil
}

// newShadowCamera returns the orthographic camera the shadow pass renders
// with. The hardware clips NDC z outside [0, 1] and the generated shadow
// lookup compares stored depth unremapped, so the camera must keep the
// default zero-to-one clip convention; the extents are placeholders until the
// per-frame fit installs real ones.
func newShadowCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithOrthographic(camera.OrthoExtents{
			Left: -1, Right: 1, Bottom: -1, Top: 1,
			Near: 0, Far: light.DefaultShadowFar,
		}),
	)
}

// releaseObject frees the GPU resources of one scene object. Nil providers
// are skipped so partially constructed objects release cleanly.
func releaseObject(obj *sceneObject) {
	if obj.meshBGP != nil {
		obj.meshBGP.Release()
	}
	if obj.uniformBGP != nil {
		obj.uniformBGP.Release()
	}
	if obj.textureBGP != nil {
		obj.textureBGP.Release()
	}
	if obj.shadowBGP != nil {
		obj.shadowBGP.Release()
	}
}

// forwardFrustum extracts the forward pass culling frustum from the viewer's
// combined matrix. Clip x is relaxed to the +-2 band the vertex stage's
// aspect correction can leave occupied, so objects near the long edge of a
// wide target are not culled while still on screen.
func forwardFrustum(viewProj [16]float32) common.Frustum {
	relaxed := viewProj
	relaxed[0] *= 0.5
	relaxed[4] *= 0.5
	relaxed[8] *= 0.5
	relaxed[12] *= 0.5
	return common.ExtractFrustumFromMatrix(relaxed[:])
}

// culledByDistance reports whether the instance lies farther from the camera
// than its render distance. A render distance of zero or less disables the
// cull.
func culledByDistance(camPos [3]float32, inst mesh.Instance) bool {
	maxDist := inst.RenderDistance()
	if maxDist <= 0 {
		return false
	}
	pos := inst.Position()
	dx := pos[0] - camPos[0]
	dy := pos[1] - camPos[1]
	dz := pos[2] - camPos[2]
	return math32.Sqrt(dx*dx+dy*dy+dz*dz) > maxDist
}

// textureStaging converts a CPU texture into RGBA staging data for GPU
// upload. Image textures upload their full pixel data; anything else becomes
// a single texel of the texture's center color.
func textureStaging(tex shading.Texture) common.TextureStagingData {
	if it, ok := tex.(*shading.ImageTexture); ok && it.Image != nil {
		b := it.Image.Bounds()
		return common.TextureStagingData{
			Pixels: it.Image.Pix,
			Width:  uint32(b.Dx()),
			Height: uint32(b.Dy()),
		}
	}

	c := [4]float32{1, 1, 1, 1}
	if tex != nil {
		c = tex.Sample(0.5, 0.5)
	}
	px := make([]byte, 4)
	for i := 0; i < 4; i++ {
		px[i] = uint8(common.Saturate(c[i])*255 + 0.5)
	}
	return common.TextureStagingData{Pixels: px, Width: 1, Height: 1}
}
