package light

import "github.com/sunward-gfx/sunward/common"

// SunBuilderOption is a function that configures a Sun instance during construction.
type SunBuilderOption func(*sunImpl)

// WithDirection is an option builder that sets the direction of the sunlight.
// The direction is normalized before storing.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - SunBuilderOption: a function that applies the direction option to a sunImpl
func WithDirection(x, y, z float32) SunBuilderOption {
	return func(s *sunImpl) {
		s.direction = common.Normalize3([3]float32{x, y, z})
	}
}

// WithColor is an option builder that sets the RGB color of the sunlight.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - SunBuilderOption: a function that applies the color option to a sunImpl
func WithColor(r, g, b float32) SunBuilderOption {
	return func(s *sunImpl) {
		s.color = [3]float32{r, g, b}
	}
}

// WithAmbient is an option builder that sets the ambient color and weight.
//
// Parameters:
//   - r: the red ambient component
//   - g: the green ambient component
//   - b: the blue ambient component
//   - weight: the scalar ambient weight
//
// Returns:
//   - SunBuilderOption: a function that applies the ambient option to a sunImpl
func WithAmbient(r, g, b, weight float32) SunBuilderOption {
	return func(s *sunImpl) {
		s.ambientColor = [3]float32{r, g, b}
		s.ambientWeight = weight
	}
}

// WithCastsShadows is an option builder that sets whether the sun renders a
// shadow depth pass.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - SunBuilderOption: a function that applies the shadow casting option to a sunImpl
func WithCastsShadows(castsShadows bool) SunBuilderOption {
	return func(s *sunImpl) {
		s.castsShadows = castsShadows
	}
}
