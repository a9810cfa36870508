package shading

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/sunward-gfx/sunward/common"
)

// DepthBuffer is a CPU-side float32 depth texture with clamp-to-edge
// addressing. It implements DepthMap for shadow sampling and is the render
// target of the CPU reference pipeline's depth-only pass.
type DepthBuffer struct {
	width  int
	height int
	pix    []float32
}

// NewDepthBuffer allocates a depth buffer of the given size with every texel
// cleared to 1.0 (the far plane).
//
// Parameters:
//   - width, height: buffer dimensions in texels
//
// Returns:
//   - *DepthBuffer: the cleared buffer
func NewDepthBuffer(width, height int) *DepthBuffer {
	b := &DepthBuffer{
		width:  width,
		height: height,
		pix:    make([]float32, width*height),
	}
	b.Clear()
	return b
}

// Width returns the buffer width in texels.
//
// Returns:
//   - int: the width
func (b *DepthBuffer) Width() int { return b.width }

// Height returns the buffer height in texels.
//
// Returns:
//   - int: the height
func (b *DepthBuffer) Height() int { return b.height }

// Clear resets every texel to 1.0.
func (b *DepthBuffer) Clear() {
	for i := range b.pix {
		b.pix[i] = 1
	}
}

// At returns the stored depth at integer texel coordinates, clamped to the
// buffer edges.
//
// Parameters:
//   - x, y: texel coordinates
//
// Returns:
//   - float32: the stored depth
func (b *DepthBuffer) At(x, y int) float32 {
	x = clampInt(x, 0, b.width-1)
	y = clampInt(y, 0, b.height-1)
	return b.pix[y*b.width+x]
}

// Set writes a depth value at integer texel coordinates. Out-of-bounds
// writes are dropped.
//
// Parameters:
//   - x, y: texel coordinates
//   - depth: the depth value to store
func (b *DepthBuffer) Set(x, y int, depth float32) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = depth
}

// Sample returns the stored depth at normalized coordinates with
// nearest-texel filtering and clamp-to-edge addressing.
//
// Parameters:
//   - u, v: normalized texture coordinates
//
// Returns:
//   - float32: the stored normalized depth
func (b *DepthBuffer) Sample(u, v float32) float32 {
	x := int(math32.Floor(u * float32(b.width)))
	y := int(math32.Floor(v * float32(b.height)))
	return b.At(x, y)
}

var _ DepthMap = (*DepthBuffer)(nil)

// SolidTexture is a Texture that returns a single color everywhere. Used for
// untextured materials and in tests.
type SolidTexture [4]float32

// Sample returns the solid color regardless of coordinates.
//
// Parameters:
//   - u, v: ignored
//
// Returns:
//   - [4]float32: the solid RGBA color
func (t SolidTexture) Sample(u, v float32) [4]float32 {
	return [4]float32(t)
}

var _ Texture = SolidTexture{}

// ImageTexture samples an image.RGBA with repeat addressing. Filtering is
// bilinear when Bilinear is true, nearest otherwise; hosts configure bilinear
// for base color textures.
type ImageTexture struct {
	// Image is the backing pixel data.
	Image *image.RGBA

	// Bilinear enables bilinear filtering between the four nearest texels.
	Bilinear bool
}

// Sample returns the image color at normalized coordinates with repeat
// addressing, converted to [0, 1] floats.
//
// Parameters:
//   - u, v: normalized texture coordinates
//
// Returns:
//   - [4]float32: the sampled RGBA color
func (t *ImageTexture) Sample(u, v float32) [4]float32 {
	w := t.Image.Rect.Dx()
	h := t.Image.Rect.Dy()
	if w == 0 || h == 0 {
		return [4]float32{0, 0, 0, 1}
	}

	if !t.Bilinear {
		x := wrapInt(int(math32.Floor(u*float32(w))), w)
		y := wrapInt(int(math32.Floor(v*float32(h))), h)
		return t.texel(x, y)
	}

	// Texel centers sit at half-texel offsets.
	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := t.texel(wrapInt(x0, w), wrapInt(y0, h))
	c10 := t.texel(wrapInt(x0+1, w), wrapInt(y0, h))
	c01 := t.texel(wrapInt(x0, w), wrapInt(y0+1, h))
	c11 := t.texel(wrapInt(x0+1, w), wrapInt(y0+1, h))

	var out [4]float32
	for i := 0; i < 4; i++ {
		top := common.Lerp(c00[i], c10[i], tx)
		bot := common.Lerp(c01[i], c11[i], tx)
		out[i] = common.Lerp(top, bot, ty)
	}
	return out
}

// texel reads one pixel as [0, 1] floats.
func (t *ImageTexture) texel(x, y int) [4]float32 {
	i := t.Image.PixOffset(t.Image.Rect.Min.X+x, t.Image.Rect.Min.Y+y)
	p := t.Image.Pix[i : i+4 : i+4]
	return [4]float32{
		float32(p[0]) / 255.0,
		float32(p[1]) / 255.0,
		float32(p[2]) / 255.0,
		float32(p[3]) / 255.0,
	}
}

var _ Texture = (*ImageTexture)(nil)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrapInt(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
