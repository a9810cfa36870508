package light

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunward-gfx/sunward/common"
	"github.com/sunward-gfx/sunward/engine/camera"
)

func glViewer() camera.Camera {
	return camera.NewCamera(
		camera.WithPosition(0, 5, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithPerspective(1.0, 1.0, 0.1, 50),
		camera.WithClipSpace(camera.ClipSpaceNegOneToOne),
	)
}

func TestFitShadowCameraEnclosesViewedRegion(t *testing.T) {
	viewer := glViewer()
	sun := NewSun()
	shadowCam := camera.NewCamera(camera.WithClipSpace(camera.ClipSpaceNegOneToOne))

	require.NoError(t, FitShadowCamera(shadowCam, viewer, sun, NewAABB()))
	assert.Equal(t, camera.ProjectionOrthographic, shadowCam.Kind())

	// Points well inside the viewer's frustum must land inside the shadow
	// camera's clip volume.
	vp := shadowCam.ViewProjectionMatrix()
	for _, p := range [][3]float32{
		{0, 0, 0},
		{1, 1, 2},
		{-2, 0, 5},
	} {
		ndc := common.MulVec4(vp[:], [4]float32{p[0], p[1], p[2], 1})
		assert.GreaterOrEqual(t, ndc[0], float32(-1), "x of %v", p)
		assert.LessOrEqual(t, ndc[0], float32(1), "x of %v", p)
		assert.GreaterOrEqual(t, ndc[1], float32(-1), "y of %v", p)
		assert.LessOrEqual(t, ndc[1], float32(1), "y of %v", p)
		assert.GreaterOrEqual(t, ndc[2], float32(-1), "z of %v", p)
		assert.LessOrEqual(t, ndc[2], float32(1), "z of %v", p)
	}
}

func TestFitShadowCameraSitsUpstreamOfScene(t *testing.T) {
	viewer := glViewer()
	sun := NewSun(WithDirection(-0.3, -1, -0.2))
	shadowCam := camera.NewCamera(camera.WithClipSpace(camera.ClipSpaceNegOneToOne))

	require.NoError(t, FitShadowCamera(shadowCam, viewer, sun, NewAABB()))

	// The light travels from the shadow camera toward the viewed region, so
	// the vector from the camera to the region center points along the sun
	// direction.
	pos := shadowCam.Position()
	toScene := common.Sub3([3]float32{0, 0, 0}, pos)
	assert.Greater(t, common.Dot3(common.Normalize3(toScene), sun.Direction()), float32(0))

	// With a mostly downward sun the camera ends up above the scene.
	assert.Greater(t, pos[1], float32(0))
}

func TestFitShadowCameraUsesWorldBoundsDepth(t *testing.T) {
	viewer := glViewer()
	sun := NewSun()
	world := FromMinMax([3]float32{-100, -100, -100}, [3]float32{100, 100, 100})

	fitted := camera.NewCamera(camera.WithClipSpace(camera.ClipSpaceNegOneToOne))
	require.NoError(t, FitShadowCamera(fitted, viewer, sun, world))

	bare := camera.NewCamera(camera.WithClipSpace(camera.ClipSpaceNegOneToOne))
	require.NoError(t, FitShadowCamera(bare, viewer, sun, NewAABB()))

	// Stretching the first-pass depth to the world bounds moves the camera
	// further up the light direction.
	fittedPos := fitted.Position()
	barePos := bare.Position()
	dir := sun.Direction()
	assert.Less(t,
		common.Dot3(fittedPos, dir),
		common.Dot3(barePos, dir)+1e-3)
}

func TestFitShadowCameraVerticalSun(t *testing.T) {
	// A straight-overhead sun is parallel to the default camera up vector;
	// the fit must swap axes rather than fail on a collapsed view basis.
	viewer := glViewer()
	sun := NewSun(WithDirection(0, -1, 0))
	shadowCam := camera.NewCamera(camera.WithClipSpace(camera.ClipSpaceNegOneToOne))

	require.NoError(t, FitShadowCamera(shadowCam, viewer, sun, NewAABB()))
	assert.Greater(t, shadowCam.Position()[1], float32(0))
}

func TestFitShadowCameraSingularViewer(t *testing.T) {
	// A viewer whose position equals its target produces a singular view
	// matrix, which the fit must report rather than propagate as NaN extents.
	viewer := camera.NewCamera(
		camera.WithPosition(0, 0, 0),
		camera.WithTarget(0, 0, 0),
		camera.WithClipSpace(camera.ClipSpaceNegOneToOne),
	)
	sun := NewSun()
	shadowCam := camera.NewCamera(camera.WithClipSpace(camera.ClipSpaceNegOneToOne))

	assert.Error(t, FitShadowCamera(shadowCam, viewer, sun, NewAABB()))
}

func TestGPUShadowUniformMarshal(t *testing.T) {
	shadowCam := camera.NewCamera(
		camera.WithPosition(0, 10, 0),
		camera.WithTarget(0, 0, 0),
		camera.WithUp(0, 0, -1),
		camera.WithOrthographic(camera.OrthoExtents{Left: -5, Right: 5, Bottom: -5, Top: 5, Near: 0.1, Far: 100}),
	)

	u := ToGPUShadowUniform(shadowCam)
	assert.Equal(t, shadowCam.ViewProjectionMatrix(), u.LightVP)

	buf := u.Marshal()
	require.Len(t, buf, u.Size())
	assert.Equal(t, 64, u.Size())
}
