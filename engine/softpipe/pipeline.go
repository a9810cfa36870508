// package softpipe renders scenes on the CPU with the same shading semantics
// as the GPU forward pipeline: a depth-only shadow pass from the sun's fitted
// orthographic camera followed by a lit forward pass. It exists as the
// reference implementation for the shading stages and as a renderer for
// headless environments without a GPU.
package softpipe

import (
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/sunward-gfx/sunward/common"
	"github.com/sunward-gfx/sunward/engine/camera"
	"github.com/sunward-gfx/sunward/engine/light"
	"github.com/sunward-gfx/sunward/engine/mesh"
	"github.com/sunward-gfx/sunward/engine/shading"
)

// pipelineImpl is the implementation of the Pipeline interface.
type pipelineImpl struct {
	mu *sync.Mutex

	width, height int
	cfg           shading.Config
	clearColor    [4]float32
	shadowMapSize int

	// pool manages a bounded set of reusable goroutines for the parallel
	// rasterization bands. Workers persist across frames, avoiding per-frame
	// goroutine spawn/teardown overhead.
	pool    worker.DynamicWorkerPool
	workers int

	shadowMap *shading.DepthBuffer
	taskID    int
}

// Pipeline renders mesh instances into an RGBA image on the CPU.
type Pipeline interface {
	// Render draws the instances from the viewer's point of view under the
	// given sun. When the configuration enables shadows and the sun casts
	// them, a shadow depth pass from the sun's fitted camera runs first and
	// the forward pass samples its result.
	//
	// The viewer camera should use the NegOneToOne clip space convention so
	// its depths line up with the shadow remap.
	//
	// Parameters:
	//   - viewer: the scene camera
	//   - sun: the directional light
	//   - instances: the mesh instances to draw
	//
	// Returns:
	//   - *image.RGBA: the rendered frame
	//   - error: an error if the shadow camera fit fails
	Render(viewer camera.Camera, sun light.Sun, instances []mesh.Instance) (*image.RGBA, error)

	// ShadowMap returns the depth buffer rendered by the most recent shadow
	// pass, or nil if no shadow pass has run.
	//
	// Returns:
	//   - *shading.DepthBuffer: the last shadow map
	ShadowMap() *shading.DepthBuffer

	// Config returns the shading configuration the pipeline renders with.
	//
	// Returns:
	//   - shading.Config: a copy of the configuration
	Config() shading.Config
}

var _ Pipeline = &pipelineImpl{}

// NewPipeline creates a CPU render pipeline with the given target size and
// shading configuration. Panics if width or height is not positive.
//
// Parameters:
//   - width, height: render target size in pixels
//   - cfg: the shading variant configuration
//   - options: variadic list of PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(width, height int, cfg shading.Config, options ...PipelineBuilderOption) Pipeline {
	if width <= 0 || height <= 0 {
		panic("softpipe: render target size must be positive")
	}

	p := &pipelineImpl{
		mu:            &sync.Mutex{},
		width:         width,
		height:        height,
		cfg:           cfg,
		clearColor:    [4]float32{0.1, 0.1, 0.1, 1},
		shadowMapSize: light.ShadowMapResolution,
		workers:       max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range options {
		opt(p)
	}

	// Queue size of 256 accommodates the band tasks of both passes with headroom.
	p.pool = worker.NewDynamicWorkerPool(p.workers, 256, 1*time.Second)
	return p
}

func (p *pipelineImpl) Config() shading.Config {
	return p.cfg
}

func (p *pipelineImpl) ShadowMap() *shading.DepthBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shadowMap
}

func (p *pipelineImpl) Render(viewer camera.Camera, sun light.Sun, instances []mesh.Instance) (*image.RGBA, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lightVP [16]float32
	shadowed := p.cfg.ShadowAlgorithm != shading.ShadowNone && sun.CastsShadows()
	if shadowed {
		worldBounds := light.NewAABB()
		for _, inst := range instances {
			if !inst.CastsShadows() {
				continue
			}
			wb := inst.WorldBounds()
			worldBounds.ExpandToFit([][3]float32{wb.Min, wb.Max})
		}

		shadowCam := camera.NewCamera(
			camera.WithOrthographic(camera.OrthoExtents{
				Left: -1, Right: 1, Bottom: -1, Top: 1,
				Near: 0, Far: light.DefaultShadowFar,
			}),
			camera.WithClipSpace(camera.ClipSpaceNegOneToOne),
		)
		if err := light.FitShadowCamera(shadowCam, viewer, sun, worldBounds); err != nil {
			return nil, err
		}
		lightVP = shadowCam.ViewProjectionMatrix()

		p.shadowMap = shading.NewDepthBuffer(p.shadowMapSize, p.shadowMapSize)
		p.renderShadowPass(lightVP, instances)
	}

	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	fillClear(img, p.clearColor)
	depth := shading.NewDepthBuffer(p.width, p.height)

	view := viewer.ViewMatrix()
	proj := viewer.ProjectionMatrix()
	dir := sun.Direction()

	for _, inst := range instances {
		u := shading.Uniforms{
			Resolution: [2]float32{float32(p.width), float32(p.height)},
			Model:      inst.ModelMatrix(),
			View:       view,
			Proj:       proj,
			// The shading stages expect the direction toward the sun, the
			// reverse of the direction the light travels.
			SunDirection: [3]float32{-dir[0], -dir[1], -dir[2]},
			SunColor:     sun.Color(),
		}
		if shadowed {
			model := u.Model
			common.Mul4(u.LightViewProj[:], lightVP[:], model[:])
		}

		var depthMap shading.DepthMap
		if shadowed {
			depthMap = p.shadowMap
		}
		p.renderForwardPass(&u, inst, img, depth, depthMap)
	}

	return img, nil
}

// renderShadowPass rasterizes every shadow-casting instance into the shadow
// map through the light's view-projection, storing depths remapped to [0, 1].
func (p *pipelineImpl) renderShadowPass(lightVP [16]float32, instances []mesh.Instance) {
	var tris []depthTriangle
	for _, inst := range instances {
		if !inst.CastsShadows() {
			continue
		}
		model := inst.ModelMatrix()
		var mvp [16]float32
		common.Mul4(mvp[:], lightVP[:], model[:])
		tris = appendDepthTriangles(tris, mvp, inst.Mesh(), p.shadowMapSize, p.shadowMapSize)
	}

	sm := p.shadowMap
	p.parallelBands(sm.Height(), func(y0, y1 int) {
		for i := range tris {
			rasterizeDepthTriangle(sm, &tris[i], y0, y1)
		}
	})
}

// renderForwardPass runs the vertex stage for one instance and rasterizes the
// lit triangles into the image with depth testing.
func (p *pipelineImpl) renderForwardPass(u *shading.Uniforms, inst mesh.Instance, img *image.RGBA, depth *shading.DepthBuffer, shadowMap shading.DepthMap) {
	tris := assembleLitTriangles(u, &p.cfg, inst.Mesh())
	tex := inst.Texture()

	p.parallelBands(p.height, func(y0, y1 int) {
		for i := range tris {
			p.shadeTriangle(u, &tris[i], tex, shadowMap, img, depth, y0, y1)
		}
	})
}

// parallelBands splits rows [0, height) into one band per worker and runs fn
// on the pool for each band. Bands own disjoint rows, so no locking is needed
// inside fn.
func (p *pipelineImpl) parallelBands(height int, fn func(y0, y1 int)) {
	bands := p.workers
	if bands > height {
		bands = height
	}
	if bands <= 1 {
		fn(0, height)
		return
	}

	var wg sync.WaitGroup
	rowsPerBand := (height + bands - 1) / bands
	for b := 0; b < bands; b++ {
		y0 := b * rowsPerBand
		y1 := min(y0+rowsPerBand, height)
		if y0 >= y1 {
			break
		}

		wg.Add(1)
		p.taskID++
		p.pool.SubmitTask(worker.Task{
			ID: p.taskID,
			Do: func() (any, error) {
				defer wg.Done()
				fn(y0, y1)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// fillClear floods the image with the clear color.
func fillClear(img *image.RGBA, c [4]float32) {
	r := colorByte(c[0])
	g := colorByte(c[1])
	b := colorByte(c[2])
	a := colorByte(c[3])
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
}

// colorByte converts a [0, 1] channel to an 8-bit value with clamping. The
// composite can exceed 1.0; this conversion is what bounds the final output.
func colorByte(v float32) uint8 {
	v = common.Saturate(v) * 255
	return uint8(v + 0.5)
}
