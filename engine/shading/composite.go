package shading

import "github.com/sunward-gfx/sunward/common"

// Texture is a read-only view of a sampled 2D color texture. Returned colors
// are RGBA with components in [0, 1].
type Texture interface {
	// Sample returns the texture color at normalized coordinates (u, v).
	// Addressing outside [0, 1] is implementation defined.
	//
	// Parameters:
	//   - u, v: normalized texture coordinates
	//
	// Returns:
	//   - [4]float32: the sampled RGBA color
	Sample(u, v float32) [4]float32
}

// FragmentInput is the rasterizer-interpolated input to a single fragment
// invocation. Vector fields arrive denormalized by interpolation.
type FragmentInput struct {
	TexCoord          [3]float32
	Color             [3]float32
	Normal            [3]float32
	LightDirection    [3]float32
	LightClipPosition [4]float32
}

// ShadeFragment runs the fragment stage for one fragment: samples and tints
// the base color, computes the shadow visibility factor, and composites the
// ambient and Lambertian diffuse terms.
//
// The diffuse cosine is clamped to [0, 1] so back-facing fragments go to the
// ambient floor instead of subtracting light. The ambient and diffuse sums
// are not clamped; the composite can exceed 1.0 and it is the render target
// conversion that bounds the final value.
//
// Parameters:
//   - cfg: the shading variant configuration
//   - u: the per-draw-call uniforms
//   - frag: the interpolated fragment inputs
//   - tex: the base color texture
//   - depth: the shadow depth map (may be nil when shadows are disabled)
//
// Returns:
//   - [4]float32: the fragment's RGBA output color
func ShadeFragment(cfg *Config, u *Uniforms, frag FragmentInput, tex Texture, depth DepthMap) [4]float32 {
	base := tex.Sample(frag.TexCoord[0], frag.TexCoord[1])
	material := [3]float32{
		base[0] * frag.Color[0],
		base[1] * frag.Color[1],
		base[2] * frag.Color[2],
	}
	alpha := base[3]

	// Interpolation denormalizes these; renormalize before any dot product.
	normal := common.Normalize3(frag.Normal)
	light := common.Normalize3(frag.LightDirection)

	cosTheta := common.Saturate(common.Dot3(normal, light))

	sunColor := u.SunColor
	if cfg.FalloffEnabled && light[2] < 0 {
		falloff := 1.0 / (-10.0*light[2] + 1.0)
		sunColor = common.Scale3(sunColor, falloff)
	}

	visibility := ShadowFactor(cfg, frag.LightClipPosition, depth)

	return [4]float32{
		cfg.AmbientWeight*cfg.AmbientColor[0]*material[0] + visibility*material[0]*sunColor[0]*cosTheta,
		cfg.AmbientWeight*cfg.AmbientColor[1]*material[1] + visibility*material[1]*sunColor[1]*cosTheta,
		cfg.AmbientWeight*cfg.AmbientColor[2]*material[2] + visibility*material[2]*sunColor[2]*cosTheta,
		alpha,
	}
}
