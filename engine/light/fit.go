package light

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/sunward-gfx/sunward/common"
	"github.com/sunward-gfx/sunward/engine/camera"
)

// frustumCorners returns the eight corners of the viewer's frustum slice in
// normalized device coordinates. The x band runs to +-2 rather than +-1
// because the vertex stage scales clip x down by the viewport aspect ratio,
// so the visible region extends past the unit cube on that axis.
//
// Parameters:
//   - near: the near bound in normalized device depth
//   - far: the far bound in normalized device depth
//
// Returns:
//   - [8][3]float32: the corner positions
func frustumCorners(near, far float32) [8][3]float32 {
	return [8][3]float32{
		{-2, -1, near},
		{2, -1, near},
		{2, 1, near},
		{-2, 1, near},
		{-2, -1, far},
		{2, -1, far},
		{2, 1, far},
		{-2, 1, far},
	}
}

// transformCorners maps each corner through a matrix with a perspective
// divide.
//
// Parameters:
//   - m: the transform matrix (16 elements, column-major)
//   - corners: the corners to transform, modified in place
func transformCorners(m []float32, corners *[8][3]float32) {
	for i, c := range corners {
		v := common.MulVec4(m, [4]float32{c[0], c[1], c[2], 1})
		corners[i] = [3]float32{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
	}
}

// FitShadowCamera repositions the sun's orthographic shadow camera so its
// view volume tightly encloses the slice of the viewer's frustum between
// FrustumFitNear and FrustumFitFar, stretched in depth to cover worldBounds
// so casters behind the viewer still reach the depth map.
//
// The fit runs in two passes. The first places the shadow camera at the
// origin looking along the light direction, bounds the frustum corners in
// that light space, and derives a world-space position for the camera from
// the midpoint of the box's sun-facing face. The second re-bounds the corners from
// the repositioned camera and installs the resulting extents as the camera's
// orthographic projection, with the far plane pinned at DefaultShadowFar.
//
// Parameters:
//   - shadowCam: the light's camera, switched to an orthographic projection by the fit
//   - viewer: the scene camera whose frustum the shadow volume must cover
//   - sun: the directional light
//   - worldBounds: a world-space box around everything that can cast a shadow; pass an empty box to skip the depth stretch
//
// Returns:
//   - error: an error if the viewer's view-projection matrix is singular
func FitShadowCamera(shadowCam camera.Camera, viewer camera.Camera, sun Sun, worldBounds AABB) error {
	invVP, ok := viewer.InverseViewProjectionMatrix()
	if !ok {
		return fmt.Errorf("light: viewer view-projection matrix is singular")
	}

	worldCorners := frustumCorners(FrustumFitNear, FrustumFitFar)
	transformCorners(invVP[:], &worldCorners)

	dir := sun.Direction()

	// A near-vertical sun runs parallel to the default up axis, which would
	// collapse the look-at basis into a singular view. Swap to a z up there.
	up := [3]float32{0, 1, 0}
	if math32.Abs(common.Normalize3(dir)[1]) > 0.999 {
		up = [3]float32{0, 0, -1}
	}
	shadowCam.SetUp(up[0], up[1], up[2])

	// First pass: bound the frustum in light space from the origin, looking
	// along the travel direction so +z in light space points back at the sun.
	shadowCam.SetPosition(0, 0, 0)
	shadowCam.SetTarget(dir[0], dir[1], dir[2])
	lightView := shadowCam.ViewMatrix()

	lightCorners := worldCorners
	transformCorners(lightView[:], &lightCorners)

	bounds := NewAABB()
	bounds.ExpandToFit(lightCorners[:])

	if !worldBounds.IsEmpty() {
		worldLight := worldBounds
		worldLight.Transform(lightView[:])
		bounds.ExpandZ(worldLight)
	}

	var invView [16]float32
	if !common.Invert4(invView[:], lightView[:]) {
		return fmt.Errorf("light: light view matrix is singular")
	}
	lightPos := common.TransformPoint(invView[:], bounds.PosZPlaneMidpoint())

	// Second pass: re-bound from the camera's real position. The +z face of
	// the first-pass bounds is the one nearest the sun, so the camera sits
	// upstream of everything it must record.
	shadowCam.SetPosition(lightPos[0], lightPos[1], lightPos[2])
	shadowCam.SetTarget(lightPos[0]+dir[0], lightPos[1]+dir[1], lightPos[2]+dir[2])
	lightView = shadowCam.ViewMatrix()

	lightCorners = worldCorners
	transformCorners(lightView[:], &lightCorners)

	bounds = NewAABB()
	bounds.ExpandToFit(lightCorners[:])

	shadowCam.SetOrthoExtents(camera.OrthoExtents{
		Left:   bounds.Min[0],
		Right:  bounds.Max[0],
		Bottom: bounds.Min[1],
		Top:    bounds.Max[1],
		Near:   bounds.Min[2],
		Far:    DefaultShadowFar,
	})
	return nil
}
