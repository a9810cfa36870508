package shading

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

// checkerImage builds a 2x2 image with black and white texels on the
// diagonal.
func checkerImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestImageTextureNearest(t *testing.T) {
	tex := &ImageTexture{Image: checkerImage()}

	assert.Equal(t, float32(1), tex.Sample(0.25, 0.25)[0])
	assert.Equal(t, float32(0), tex.Sample(0.75, 0.25)[0])

	// Repeat addressing wraps past the edges.
	assert.Equal(t, float32(1), tex.Sample(1.25, 1.25)[0])
}

func TestImageTextureBilinear(t *testing.T) {
	tex := &ImageTexture{Image: checkerImage(), Bilinear: true}

	// The image center is equidistant from two white and two black texels.
	c := tex.Sample(0.5, 0.5)
	assert.InDelta(t, 0.5, c[0], 1e-5)
	assert.InDelta(t, 0.5, c[1], 1e-5)
	assert.InDelta(t, 1.0, c[3], 1e-5)

	// A texel center samples that texel exactly.
	assert.InDelta(t, 1.0, tex.Sample(0.25, 0.25)[0], 1e-5)
}
