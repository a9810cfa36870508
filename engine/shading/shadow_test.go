package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constantDepth fills a buffer with a single stored depth everywhere.
func constantDepth(w, h int, depth float32) *DepthBuffer {
	b := NewDepthBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, depth)
		}
	}
	return b
}

func TestShadowFactorMatchingDepthIsLit(t *testing.T) {
	// Stored depth exactly equal to the fragment depth must not self-shadow
	// with the default bias terms.
	cfg := NewConfig()
	depth := constantDepth(4, 4, 0.5)

	// Clip position (0,0,0,1) remaps to (0.5, 0.5, 0.5).
	factor := ShadowFactor(&cfg, [4]float32{0, 0, 0, 1}, depth)
	assert.Equal(t, float32(1.0), factor)
}

func TestShadowFactorHardOccluded(t *testing.T) {
	cfg := NewConfig()
	depth := constantDepth(4, 4, 0.1)

	factor := ShadowFactor(&cfg, [4]float32{0, 0, 0, 1}, depth)
	assert.Equal(t, float32(0.0), factor)
}

func TestShadowFactorSoftWidthRamp(t *testing.T) {
	// Halfway through the softening window the factor is 0.5.
	cfg := NewConfig(WithShadowBias(0.001, 0.01))
	depth := constantDepth(4, 4, 0.5+0.004) // (stored+bias)-z = 0.005

	factor := ShadowFactor(&cfg, [4]float32{0, 0, 0, 1}, depth)
	assert.InDelta(t, 0.5, factor, 1e-5)
}

func TestShadowFactorNone(t *testing.T) {
	cfg := NewConfig(WithShadowAlgorithm(ShadowNone))
	assert.Equal(t, float32(1.0), ShadowFactor(&cfg, [4]float32{0, 0, 0.9, 1}, constantDepth(2, 2, 0)))
}

func TestShadowFactorPCFMonotonicInOccludedTaps(t *testing.T) {
	// A 3x3 depth buffer with a kernel spread of 3 lands each of the nine
	// taps in its own texel, so the occluded tap count can be controlled
	// exactly. Visibility must be non-increasing as taps are occluded, with
	// 0 taps fully lit and 9 taps at the 0.001 rounding residue of 9 x 0.111.
	cfg := NewConfig(WithShadowAlgorithm(ShadowPCF9), WithPCFSpread(3))

	prev := float32(1.0)
	for occluded := 0; occluded <= 9; occluded++ {
		depth := constantDepth(3, 3, 1.0)
		for i := 0; i < occluded; i++ {
			depth.Set(i%3, i/3, 0.0)
		}

		factor := ShadowFactor(&cfg, [4]float32{0, 0, 0, 1}, depth)
		require.LessOrEqual(t, factor, prev, "visibility increased at %d occluded taps", occluded)
		assert.InDelta(t, 1.0-0.111*float32(occluded), factor, 1e-5, "%d occluded taps", occluded)
		prev = factor
	}
}

func TestShadowFactorPCFClamped(t *testing.T) {
	cfg := NewConfig(WithShadowAlgorithm(ShadowPCF9), WithPCFSpread(3))
	depth := constantDepth(3, 3, 0.0)

	factor := ShadowFactor(&cfg, [4]float32{0, 0, 0.5, 1}, depth)
	assert.GreaterOrEqual(t, factor, float32(0.0))
	assert.LessOrEqual(t, factor, float32(1.0))
}

func TestShadowFactorDegenerateWDoesNotPanic(t *testing.T) {
	// Fragments behind the light produce undefined coordinates; the result is
	// an accepted artifact but the evaluation must not fault on the CPU.
	depth := constantDepth(8, 8, 0.5)
	for _, alg := range []ShadowAlgorithm{ShadowHard, ShadowPCF9} {
		cfg := NewConfig(WithShadowAlgorithm(alg))
		assert.NotPanics(t, func() {
			ShadowFactor(&cfg, [4]float32{0.3, -0.2, 0.1, 0}, depth)
			ShadowFactor(&cfg, [4]float32{0.3, -0.2, 0.1, -2}, depth)
		})
	}
}

func TestNDCRemapRoundTrip(t *testing.T) {
	// The [-1,1] to [0,1] remap used before shadow sampling must invert
	// exactly back through 2v-1.
	for _, v := range []float32{-1, -0.730, -0.125, 0, 0.5, 0.999, 1} {
		remapped := 0.5*v + 0.5
		assert.InDelta(t, v, 2*remapped-1, 1e-6)
	}
}

func TestDepthBufferClampToEdge(t *testing.T) {
	b := NewDepthBuffer(2, 2)
	b.Set(0, 0, 0.25)
	b.Set(1, 1, 0.75)

	assert.Equal(t, float32(0.25), b.Sample(-3, -3))
	assert.Equal(t, float32(0.75), b.Sample(4, 4))
}
