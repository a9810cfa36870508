package scene

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunward-gfx/sunward/common"
	"github.com/sunward-gfx/sunward/engine/camera"
	"github.com/sunward-gfx/sunward/engine/light"
	"github.com/sunward-gfx/sunward/engine/mesh"
	"github.com/sunward-gfx/sunward/engine/shading"
)

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene("main")

	assert.Equal(t, "main", s.Name())
	assert.True(t, s.Active())
	assert.Nil(t, s.Camera())
	assert.Nil(t, s.Renderer())
	require.NotNil(t, s.Sun())
	assert.Equal(t, 0, s.Count())
}

func TestSceneSetters(t *testing.T) {
	s := NewScene("main", WithActive(false))
	assert.False(t, s.Active())

	s.SetName("overhead")
	assert.Equal(t, "overhead", s.Name())

	cam := camera.NewCamera(
		camera.WithPosition(0, 5, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithPerspective(1.0, 1.0, 0.1, 100),
	)
	s.SetCamera(cam)
	assert.Equal(t, cam, s.Camera())

	sun := light.NewSun(light.WithCastsShadows(false))
	s.SetSun(sun)
	assert.False(t, s.Sun().CastsShadows())

	s.SetActive(true)
	assert.True(t, s.Active())
}

func TestSceneConfigOption(t *testing.T) {
	cfg := shading.NewConfig(shading.WithShadowAlgorithm(shading.ShadowNone))
	s := NewScene("main", WithConfig(cfg))
	assert.Equal(t, shading.ShadowNone, s.Config().ShadowAlgorithm)
}

func TestAddPanicsWithoutRenderer(t *testing.T) {
	s := NewScene("main")
	box := mesh.NewInstance(mesh.NewBox(1, 1, 1))

	assert.Panics(t, func() {
		_, _ = s.Add(box)
	})
}

func TestGetUnknownIDReturnsNil(t *testing.T) {
	s := NewScene("main")
	assert.Nil(t, s.Get(42))

	// Removing an unknown ID is a no-op.
	s.Remove(42)
	assert.Equal(t, 0, s.Count())
}

func TestRenderFrameWithoutRendererFails(t *testing.T) {
	s := NewScene("main")
	_, err := s.RenderFrame()
	assert.Error(t, err)
}

func TestShadowCameraDepthStaysInHardwareRange(t *testing.T) {
	// The depth pass keeps only NDC z inside [0, 1]; a fitted shadow camera
	// using the GL convention would project every caster to negative z and
	// clip the whole scene out of the map.
	viewer := camera.NewCamera(
		camera.WithPosition(0, 5, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithPerspective(1.0, 1.0, 0.1, 50),
	)
	sun := light.NewSun()
	shadowCam := newShadowCamera()

	require.NoError(t, light.FitShadowCamera(shadowCam, viewer, sun, light.NewAABB()))

	vp := shadowCam.ViewProjectionMatrix()
	for _, p := range [][3]float32{
		{0, 0, 0},
		{1, 1, 2},
		{-2, 0, 5},
	} {
		ndc := common.MulVec4(vp[:], [4]float32{p[0], p[1], p[2], 1})
		z := ndc[2] / ndc[3]
		assert.GreaterOrEqual(t, z, float32(0), "z of %v", p)
		assert.LessOrEqual(t, z, float32(1), "z of %v", p)
	}
}

func TestForwardFrustumCulling(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithPosition(0, 0, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithPerspective(1.0, 1.0, 0.1, 100),
	)
	frustum := forwardFrustum(cam.ViewProjectionMatrix())

	inView := mesh.NewInstance(mesh.NewBox(1, 1, 1))
	behind := mesh.NewInstance(mesh.NewBox(1, 1, 1), mesh.WithPosition(0, 0, 40))

	wb := inView.WorldBounds()
	assert.True(t, frustum.IntersectsAABB(wb.Min, wb.Max))

	wb = behind.WorldBounds()
	assert.False(t, frustum.IntersectsAABB(wb.Min, wb.Max))
}

func TestCulledByDistance(t *testing.T) {
	camPos := [3]float32{0, 0, 0}

	near := mesh.NewInstance(mesh.NewBox(1, 1, 1),
		mesh.WithPosition(0, 0, -5),
		mesh.WithRenderDistance(10),
	)
	far := mesh.NewInstance(mesh.NewBox(1, 1, 1),
		mesh.WithPosition(0, 0, -50),
		mesh.WithRenderDistance(10),
	)
	unlimited := mesh.NewInstance(mesh.NewBox(1, 1, 1),
		mesh.WithPosition(0, 0, -50),
	)

	assert.False(t, culledByDistance(camPos, near))
	assert.True(t, culledByDistance(camPos, far))
	assert.False(t, culledByDistance(camPos, unlimited))
}

func TestTextureStagingSolid(t *testing.T) {
	staging := textureStaging(shading.SolidTexture{1, 0.5, 0, 1})

	assert.Equal(t, uint32(1), staging.Width)
	assert.Equal(t, uint32(1), staging.Height)
	require.Len(t, staging.Pixels, 4)
	assert.Equal(t, uint8(255), staging.Pixels[0])
	assert.Equal(t, uint8(128), staging.Pixels[1])
	assert.Equal(t, uint8(0), staging.Pixels[2])
	assert.Equal(t, uint8(255), staging.Pixels[3])
}

func TestTextureStagingImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	staging := textureStaging(&shading.ImageTexture{Image: img})

	assert.Equal(t, uint32(4), staging.Width)
	assert.Equal(t, uint32(2), staging.Height)
	assert.Len(t, staging.Pixels, 4*2*4)
}

func TestTextureStagingNil(t *testing.T) {
	staging := textureStaging(nil)
	assert.Equal(t, uint32(1), staging.Width)
	assert.Equal(t, []byte{255, 255, 255, 255}, staging.Pixels)
}
