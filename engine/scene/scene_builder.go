package scene

import (
	"github.com/sunward-gfx/sunward/engine/camera"
	"github.com/sunward-gfx/sunward/engine/light"
	"github.com/sunward-gfx/sunward/engine/renderer"
	"github.com/sunward-gfx/sunward/engine/shading"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera attaches the scene's camera.
//
// Parameters:
//   - cam: the camera to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithSun attaches the scene's directional light, replacing the default sun.
//
// Parameters:
//   - sun: the sun to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSun(sun light.Sun) SceneBuilderOption {
	return func(s *scene) {
		s.sun = sun
	}
}

// WithRenderer attaches the scene's renderer. A renderer must be attached
// before the first Add.
//
// Parameters:
//   - r: the renderer to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.r = r
	}
}

// WithConfig sets the shading configuration the scene renders with. The
// forward pipeline variant is derived from it on the first Add, so the
// configuration must be set before instances are added.
//
// Parameters:
//   - cfg: the shading variant configuration
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithConfig(cfg shading.Config) SceneBuilderOption {
	return func(s *scene) {
		s.cfg = cfg
	}
}
