// Package light models the directional sun that drives the forward shading
// pipeline, and the per-frame fitting of its orthographic shadow camera to
// the viewer's frustum.
package light

import "github.com/sunward-gfx/sunward/common"

// sunImpl is the implementation of the Sun interface.
type sunImpl struct {
	direction    [3]float32
	color        [3]float32
	ambientColor [3]float32
	ambientWeight float32
	castsShadows bool
}

// Sun defines the interface for the scene's directional light. The sun has no
// position, only a direction; it affects all fragments uniformly with no
// distance attenuation, and optionally casts shadows via a depth map rendered
// from its own orthographic camera.
type Sun interface {
	// Direction returns the normalized direction the sunlight travels.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the sunlight.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// AmbientColor returns the RGB color of the ambient term contributed by
	// sky bounce light.
	//
	// Returns:
	//   - [3]float32: ambient color as (r, g, b)
	AmbientColor() [3]float32

	// AmbientWeight returns the scalar weight of the ambient term.
	//
	// Returns:
	//   - float32: the ambient weight
	AmbientWeight() float32

	// CastsShadows returns whether a shadow depth pass is rendered for this sun.
	//
	// Returns:
	//   - bool: true if the sun casts shadows
	CastsShadows() bool

	// SetDirection sets the direction of the sunlight and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the RGB color of the sunlight.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetAmbient sets the ambient color and weight.
	//
	// Parameters:
	//   - r, g, b: ambient color components
	//   - weight: scalar ambient weight
	SetAmbient(r, g, b, weight float32)

	// SetCastsShadows enables or disables the shadow depth pass.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)
}

var _ Sun = &sunImpl{}

// NewSun creates a new Sun with late-morning defaults and any provided
// options applied. The default direction is slanted so the shadow camera's
// default up vector is never parallel to it.
//
// Parameters:
//   - opts: variadic list of SunBuilderOption functions to configure the sun
//
// Returns:
//   - Sun: a new Sun instance
func NewSun(opts ...SunBuilderOption) Sun {
	s := &sunImpl{
		direction:     common.Normalize3([3]float32{-0.3, -1, -0.2}),
		color:         [3]float32{1, 1, 1},
		ambientColor:  [3]float32{1, 1, 1},
		ambientWeight: 0.2,
		castsShadows:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sunImpl) Direction() [3]float32 {
	return s.direction
}

func (s *sunImpl) Color() [3]float32 {
	return s.color
}

func (s *sunImpl) AmbientColor() [3]float32 {
	return s.ambientColor
}

func (s *sunImpl) AmbientWeight() float32 {
	return s.ambientWeight
}

func (s *sunImpl) CastsShadows() bool {
	return s.castsShadows
}

func (s *sunImpl) SetDirection(x, y, z float32) {
	s.direction = common.Normalize3([3]float32{x, y, z})
}

func (s *sunImpl) SetColor(r, g, b float32) {
	s.color = [3]float32{r, g, b}
}

func (s *sunImpl) SetAmbient(r, g, b, weight float32) {
	s.ambientColor = [3]float32{r, g, b}
	s.ambientWeight = weight
}

func (s *sunImpl) SetCastsShadows(castsShadows bool) {
	s.castsShadows = castsShadows
}
