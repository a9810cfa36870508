package engine

import (
	"fmt"
	"image"
	"sort"
	"sync"

	"github.com/sunward-gfx/sunward/engine/profiler"
	"github.com/sunward-gfx/sunward/engine/scene"
)

// engine implements the Engine interface.
// Drives fixed-step ticks and renders registered scenes in z-index order.
type engine struct {
	mu sync.Mutex

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate      float64
	frameIndex    int
	tickCallback  func(deltaTime float32)
	frameCallback func(frame int, img *image.RGBA)

	scenes map[int]scene.Scene
}

// Engine is the main entry point for offline rendering. It owns a set of
// scenes keyed by z-index and renders them frame by frame: each frame advances
// the tick callback by a fixed step, renders every active scene in ascending
// key order, and hands the finished image to the frame callback. There is no
// realtime loop; hosts pull frames as fast as the GPU produces them.
type Engine interface {
	// EnableProfiler enables frame statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// SetTickRate sets the simulated tick rate in ticks per second. The tick
	// callback receives a fixed delta of 1/rate each frame, so rendered
	// sequences are deterministic regardless of wall-clock speed.
	//
	// Parameters:
	//   - tps: ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers the function called before each frame renders.
	// Use this to advance object transforms, the camera, and the sun.
	//
	// Parameters:
	//   - callback: function receiving the fixed delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetFrameCallback registers the function called with each finished frame.
	// Use this to encode or store rendered images.
	//
	// Parameters:
	//   - callback: function receiving the frame index and the rendered image
	SetFrameCallback(callback func(frame int, img *image.RGBA))

	// AddScene registers a scene at the given z-index key.
	// Scenes render in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// RenderFrame advances one tick and renders every active scene in
	// ascending z-index order.
	//
	// Returns:
	//   - *image.RGBA: the last active scene's rendered frame
	//   - error: an error if no scene is active or a scene fails to render
	RenderFrame() (*image.RGBA, error)

	// RenderSequence renders a run of frames, delivering each to the frame
	// callback. Rendering stops at the first error.
	//
	// Parameters:
	//   - frames: the number of frames to render
	//
	// Returns:
	//   - error: the first render error, or nil
	RenderSequence(frames int) error
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, scenes)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
		tickRate: 60,
		scenes:   make(map[int]scene.Scene),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(tps float64) {
	if tps <= 0 {
		tps = 60
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickRate = tps
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetFrameCallback(callback func(frame int, img *image.RGBA)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func (e *engine) RenderFrame() (*image.RGBA, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderFrameLocked()
}

func (e *engine) RenderSequence(frames int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i < frames; i++ {
		if _, err := e.renderFrameLocked(); err != nil {
			return err
		}
	}
	return nil
}

// renderFrameLocked runs one tick and one frame. Called with the mutex held.
func (e *engine) renderFrameLocked() (*image.RGBA, error) {
	if e.tickCallback != nil {
		e.tickCallback(float32(1 / e.tickRate))
	}

	// Draw all active scenes in ascending z-index order. Each scene owns its
	// renderer and produces a complete frame; the last one is returned.
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var img *image.RGBA
	rendered := 0
	for _, k := range keys {
		s := e.scenes[k]
		if !s.Active() {
			continue
		}
		frame, err := s.RenderFrame()
		if err != nil {
			return nil, fmt.Errorf("rendering scene %q: %w", s.Name(), err)
		}
		img = frame
		rendered++
	}
	if rendered == 0 {
		return nil, fmt.Errorf("no active scene to render")
	}

	if e.frameCallback != nil {
		e.frameCallback(e.frameIndex, img)
	}
	e.frameIndex++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return img, nil
}
