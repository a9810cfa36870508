package softpipe

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunward-gfx/sunward/engine/camera"
	"github.com/sunward-gfx/sunward/engine/light"
	"github.com/sunward-gfx/sunward/engine/mesh"
	"github.com/sunward-gfx/sunward/engine/shading"
)

func testScene() (camera.Camera, light.Sun, []mesh.Instance) {
	viewer := camera.NewCamera(
		camera.WithPosition(0, 5, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithPerspective(1.0, 1.0, 0.1, 100),
		camera.WithClipSpace(camera.ClipSpaceNegOneToOne),
	)
	sun := light.NewSun()

	ground := mesh.NewInstance(mesh.NewPlane(20, 20),
		mesh.WithShadowCasting(false),
	)
	box := mesh.NewInstance(mesh.NewBox(2, 2, 2),
		mesh.WithPosition(0, 1, 0),
	)
	return viewer, sun, []mesh.Instance{ground, box}
}

func TestRenderProducesImage(t *testing.T) {
	viewer, sun, instances := testScene()
	p := NewPipeline(96, 96, shading.NewConfig(), WithWorkers(2))

	img, err := p.Render(viewer, sun, instances)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 96, 96), img.Bounds())

	// Something other than the clear color was drawn.
	background := img.RGBAAt(0, 0)
	drawn := 0
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			if img.RGBAAt(x, y) != background {
				drawn++
			}
		}
	}
	assert.Greater(t, drawn, 100)
}

func TestRenderShadowPassPopulatesMap(t *testing.T) {
	viewer, sun, instances := testScene()
	p := NewPipeline(64, 64, shading.NewConfig(), WithWorkers(2), WithShadowMapSize(256))

	_, err := p.Render(viewer, sun, instances)
	require.NoError(t, err)

	sm := p.ShadowMap()
	require.NotNil(t, sm)
	assert.Equal(t, 256, sm.Width())

	// The box must have written depths closer than the cleared far plane.
	written := 0
	for y := 0; y < sm.Height(); y++ {
		for x := 0; x < sm.Width(); x++ {
			if sm.At(x, y) < 1 {
				written++
			}
		}
	}
	assert.Greater(t, written, 0)
}

func TestRenderWithoutShadowsSkipsShadowPass(t *testing.T) {
	viewer, sun, instances := testScene()
	p := NewPipeline(64, 64, shading.NewConfig(shading.WithShadowAlgorithm(shading.ShadowNone)), WithWorkers(1))

	_, err := p.Render(viewer, sun, instances)
	require.NoError(t, err)
	assert.Nil(t, p.ShadowMap())
}

func TestShadowsOnlyDarken(t *testing.T) {
	viewer, sun, instances := testScene()

	shadowed := NewPipeline(64, 64, shading.NewConfig(), WithWorkers(1))
	unshadowed := NewPipeline(64, 64, shading.NewConfig(shading.WithShadowAlgorithm(shading.ShadowNone)), WithWorkers(1))

	a, err := shadowed.Render(viewer, sun, instances)
	require.NoError(t, err)
	b, err := unshadowed.Render(viewer, sun, instances)
	require.NoError(t, err)

	// Shadow visibility only scales the diffuse term down, so the shadowed
	// frame can never be brighter in total.
	var sumA, sumB int
	for i := 0; i < len(a.Pix); i += 4 {
		sumA += int(a.Pix[i]) + int(a.Pix[i+1]) + int(a.Pix[i+2])
		sumB += int(b.Pix[i]) + int(b.Pix[i+1]) + int(b.Pix[i+2])
	}
	assert.LessOrEqual(t, sumA, sumB)
}

func TestRenderSingularViewerFails(t *testing.T) {
	viewer := camera.NewCamera(
		camera.WithPosition(0, 0, 0),
		camera.WithTarget(0, 0, 0),
		camera.WithPerspective(1.0, 1.0, 0.1, 100),
		camera.WithClipSpace(camera.ClipSpaceNegOneToOne),
	)
	sun := light.NewSun()
	box := mesh.NewInstance(mesh.NewBox(1, 1, 1))

	p := NewPipeline(32, 32, shading.NewConfig(), WithWorkers(1))
	_, err := p.Render(viewer, sun, []mesh.Instance{box})
	assert.Error(t, err)
}

func TestBarycentricInsideOutside(t *testing.T) {
	sx := [3]float32{0, 10, 0}
	sy := [3]float32{0, 0, 10}
	area := edgeFunction(sx[0], sy[0], sx[1], sy[1], sx[2], sy[2])
	require.NotZero(t, area)

	l0, l1, l2, inside := barycentric(sx, sy, area, 2, 2)
	assert.True(t, inside)
	assert.InDelta(t, 1.0, l0+l1+l2, 1e-5)

	_, _, _, inside = barycentric(sx, sy, area, 9, 9)
	assert.False(t, inside)

	// Reversed winding is accepted too.
	rsx := [3]float32{0, 0, 10}
	rsy := [3]float32{0, 10, 0}
	rarea := edgeFunction(rsx[0], rsy[0], rsx[1], rsy[1], rsx[2], rsy[2])
	_, _, _, inside = barycentric(rsx, rsy, rarea, 2, 2)
	assert.True(t, inside)
}

func TestRasterizeDepthTriangleWrites(t *testing.T) {
	buf := shading.NewDepthBuffer(16, 16)
	tri := depthTriangle{
		sx: [3]float32{0, 16, 0},
		sy: [3]float32{0, 0, 16},
		z:  [3]float32{0.25, 0.25, 0.25},
	}

	rasterizeDepthTriangle(buf, &tri, 0, 16)
	assert.InDelta(t, 0.25, float64(buf.At(2, 2)), 1e-5)
	assert.Equal(t, float32(1), buf.At(15, 15))

	// A farther triangle does not overwrite.
	far := tri
	far.z = [3]float32{0.75, 0.75, 0.75}
	rasterizeDepthTriangle(buf, &far, 0, 16)
	assert.InDelta(t, 0.25, float64(buf.At(2, 2)), 1e-5)
}

func TestColorByteClamps(t *testing.T) {
	assert.Equal(t, uint8(0), colorByte(-0.5))
	assert.Equal(t, uint8(255), colorByte(1.5))
	assert.Equal(t, uint8(128), colorByte(0.5))
}

func TestNewPipelinePanicsOnBadSize(t *testing.T) {
	assert.Panics(t, func() {
		NewPipeline(0, 32, shading.NewConfig())
	})
}
