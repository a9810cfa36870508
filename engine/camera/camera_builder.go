package camera

// CameraBuilderOption is a function that configures a Camera instance during construction.
type CameraBuilderOption func(*cameraImpl)

// WithPosition is an option builder that sets the camera's world-space position.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - CameraBuilderOption: a function that applies the position option to a cameraImpl
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithTarget is an option builder that sets the world-space point the camera looks at.
//
// Parameters:
//   - x: the x target component
//   - y: the y target component
//   - z: the z target component
//
// Returns:
//   - CameraBuilderOption: a function that applies the target option to a cameraImpl
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithUp is an option builder that sets the camera's up vector.
//
// Parameters:
//   - x: the x up component
//   - y: the y up component
//   - z: the z up component
//
// Returns:
//   - CameraBuilderOption: a function that applies the up option to a cameraImpl
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithPerspective is an option builder that configures a perspective projection.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the perspective option to a cameraImpl
func WithPerspective(fov, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.kind = ProjectionPerspective
		c.fov = fov
		c.aspect = aspect
		c.near = near
		c.far = far
	}
}

// WithOrthographic is an option builder that configures an orthographic projection.
//
// Parameters:
//   - extents: the view volume bounds
//
// Returns:
//   - CameraBuilderOption: a function that applies the orthographic option to a cameraImpl
func WithOrthographic(extents OrthoExtents) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.kind = ProjectionOrthographic
		c.ortho = extents
	}
}

// WithClipSpace is an option builder that selects the normalized device depth
// convention for the projection matrices.
//
// Parameters:
//   - cs: the clip space convention
//
// Returns:
//   - CameraBuilderOption: a function that applies the clip space option to a cameraImpl
func WithClipSpace(cs ClipSpace) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.clipSpace = cs
	}
}
