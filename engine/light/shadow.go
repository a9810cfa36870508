package light

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture.
const ShadowMapResolution = 1024

// DefaultShadowFar is the far plane distance of the fitted orthographic
// shadow projection. The fit derives the near plane and the x/y extents from
// the view frustum each frame but pins the far plane at this constant so
// distant casters behind the camera still reach the map.
const DefaultShadowFar float32 = 800.0

// FrustumFitNear and FrustumFitFar bound the slice of the viewer's depth
// range that the shadow camera is fitted to, in normalized device depth.
// Stopping short of 1.0 keeps the far plane's unbounded corners from blowing
// up the fitted extents.
const (
	FrustumFitNear float32 = 0.0
	FrustumFitFar  float32 = 0.999
)
