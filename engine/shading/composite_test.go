package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// diffuseOnly builds a config and uniforms that reduce ShadeFragment's RGB
// output to the diffuse cosine: white material, white sun, no ambient, no
// shadow test.
func diffuseOnly() (Config, *Uniforms) {
	cfg := NewConfig(WithAmbient(0, 0, 0, 0), WithShadowAlgorithm(ShadowNone))
	return cfg, identityUniforms()
}

func TestShadeFragmentCosThetaRange(t *testing.T) {
	cfg, u := diffuseOnly()
	white := SolidTexture{1, 1, 1, 1}

	tests := []struct {
		name   string
		normal [3]float32
		light  [3]float32
		want   float32
	}{
		{name: "aligned unit vectors", normal: [3]float32{0, 1, 0}, light: [3]float32{0, 1, 0}, want: 1},
		{name: "denormalized inputs renormalize", normal: [3]float32{0, 7, 0}, light: [3]float32{0, 0.002, 0}, want: 1},
		{name: "orthogonal", normal: [3]float32{1, 0, 0}, light: [3]float32{0, 1, 0}, want: 0},
		{name: "back-facing clamps to zero", normal: [3]float32{0, -3, 0}, light: [3]float32{0, 5, 0}, want: 0},
		{name: "45 degrees", normal: [3]float32{0, 2, 0}, light: [3]float32{0, 3, 3}, want: 0.70710678},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ShadeFragment(&cfg, u, FragmentInput{
				Color:          [3]float32{1, 1, 1},
				Normal:         tt.normal,
				LightDirection: tt.light,
			}, white, nil)
			for i := 0; i < 3; i++ {
				assert.GreaterOrEqual(t, out[i], float32(0.0))
				assert.LessOrEqual(t, out[i], float32(1.0))
				assert.InDelta(t, tt.want, out[i], 1e-5)
			}
		})
	}
}

func TestShadeFragmentCompositeUnclamped(t *testing.T) {
	// White texture, white tint, ambient 0.2, full visibility, cosTheta 1:
	// the ambient and diffuse terms sum past 1.0 and are passed through
	// unclamped; bounding happens at render target conversion, not here.
	cfg := NewConfig(WithShadowAlgorithm(ShadowNone))
	u := identityUniforms()

	out := ShadeFragment(&cfg, u, FragmentInput{
		Color:          [3]float32{1, 1, 1},
		Normal:         [3]float32{0, 1, 0},
		LightDirection: [3]float32{0, 1, 0},
	}, SolidTexture{1, 1, 1, 1}, nil)

	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.2, out[i], 1e-5)
	}
	assert.Equal(t, float32(1.0), out[3])
}

func TestShadeFragmentTintAndAlphaPassThrough(t *testing.T) {
	cfg, u := diffuseOnly()
	tex := SolidTexture{0.8, 0.5, 0.25, 0.5}

	out := ShadeFragment(&cfg, u, FragmentInput{
		Color:          [3]float32{0.5, 1, 0},
		Normal:         [3]float32{0, 1, 0},
		LightDirection: [3]float32{0, 1, 0},
	}, tex, nil)

	assert.InDelta(t, 0.4, out[0], 1e-5)
	assert.InDelta(t, 0.5, out[1], 1e-5)
	assert.InDelta(t, 0.0, out[2], 1e-5)
	assert.Equal(t, float32(0.5), out[3])
}

func TestShadeFragmentFalloff(t *testing.T) {
	// With the light pointing up from below (negative z in view convention)
	// and falloff enabled, the sun color is attenuated by 1/(-10z+1).
	u := identityUniforms()
	frag := FragmentInput{
		Color:          [3]float32{1, 1, 1},
		Normal:         [3]float32{0, 0, -1},
		LightDirection: [3]float32{0, 0, -1},
	}
	white := SolidTexture{1, 1, 1, 1}

	off := NewConfig(WithAmbient(0, 0, 0, 0), WithShadowAlgorithm(ShadowNone))
	offOut := ShadeFragment(&off, u, frag, white, nil)
	assert.InDelta(t, 1.0, offOut[0], 1e-5)

	on := NewConfig(WithAmbient(0, 0, 0, 0), WithShadowAlgorithm(ShadowNone), WithFalloff(true))
	onOut := ShadeFragment(&on, u, frag, white, nil)
	assert.InDelta(t, 1.0/11.0, onOut[0], 1e-5)

	// Light from above is unaffected by the toggle.
	frag.Normal = [3]float32{0, 0, 1}
	frag.LightDirection = [3]float32{0, 0, 1}
	aboveOut := ShadeFragment(&on, u, frag, white, nil)
	assert.InDelta(t, 1.0, aboveOut[0], 1e-5)
}

func TestShadeFragmentShadowed(t *testing.T) {
	// A fully occluded fragment falls back to the ambient floor.
	cfg := NewConfig(WithAmbient(1, 1, 1, 0.1))
	u := identityUniforms()
	depth := constantDepth(4, 4, 0.0)

	out := ShadeFragment(&cfg, u, FragmentInput{
		Color:             [3]float32{1, 1, 1},
		Normal:            [3]float32{0, 1, 0},
		LightDirection:    [3]float32{0, 1, 0},
		LightClipPosition: [4]float32{0, 0, 0.5, 1},
	}, SolidTexture{1, 1, 1, 1}, depth)

	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.1, out[i], 1e-5)
	}
}
