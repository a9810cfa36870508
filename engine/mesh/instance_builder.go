package mesh

import "github.com/sunward-gfx/sunward/engine/shading"

// InstanceBuilderOption is a function that configures an Instance during construction.
type InstanceBuilderOption func(*instanceImpl)

// WithPosition is an option builder that sets the instance's world position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - InstanceBuilderOption: a function that applies the position option to an instanceImpl
func WithPosition(x, y, z float32) InstanceBuilderOption {
	return func(i *instanceImpl) {
		i.position = [3]float32{x, y, z}
	}
}

// WithRotation is an option builder that sets the instance's Euler rotation
// in radians.
//
// Parameters:
//   - x, y, z: rotation about each axis in radians
//
// Returns:
//   - InstanceBuilderOption: a function that applies the rotation option to an instanceImpl
func WithRotation(x, y, z float32) InstanceBuilderOption {
	return func(i *instanceImpl) {
		i.rotation = [3]float32{x, y, z}
	}
}

// WithScale is an option builder that sets the instance's per-axis scale.
//
// Parameters:
//   - x, y, z: scale components
//
// Returns:
//   - InstanceBuilderOption: a function that applies the scale option to an instanceImpl
func WithScale(x, y, z float32) InstanceBuilderOption {
	return func(i *instanceImpl) {
		i.scale = [3]float32{x, y, z}
	}
}

// WithTexture is an option builder that sets the instance's base color texture.
//
// Parameters:
//   - texture: the texture to sample in the fragment stage
//
// Returns:
//   - InstanceBuilderOption: a function that applies the texture option to an instanceImpl
func WithTexture(texture shading.Texture) InstanceBuilderOption {
	return func(i *instanceImpl) {
		i.texture = texture
	}
}

// WithShadowCasting is an option builder that sets whether the instance is
// drawn into the shadow depth pass.
//
// Parameters:
//   - castsShadows: true to cast shadows
//
// Returns:
//   - InstanceBuilderOption: a function that applies the shadow option to an instanceImpl
func WithShadowCasting(castsShadows bool) InstanceBuilderOption {
	return func(i *instanceImpl) {
		i.castsShadows = castsShadows
	}
}

// WithRenderDistance is an option builder that limits how far from the viewer
// the instance is drawn. Zero means unlimited.
//
// Parameters:
//   - distance: the maximum render distance in world units
//
// Returns:
//   - InstanceBuilderOption: a function that applies the distance option to an instanceImpl
func WithRenderDistance(distance float32) InstanceBuilderOption {
	return func(i *instanceImpl) {
		i.renderDistance = distance
	}
}
