package shading

import "github.com/sunward-gfx/sunward/common"

// DepthMap is a read-only view of a shadow depth texture rendered from the
// light's point of view. Stored values are normalized device depths in [0, 1].
type DepthMap interface {
	// Sample returns the stored depth at normalized texture coordinates
	// (u, v) in [0, 1]. Coordinates outside that range are clamped to the
	// edge texel.
	//
	// Parameters:
	//   - u, v: normalized texture coordinates
	//
	// Returns:
	//   - float32: the stored normalized depth
	Sample(u, v float32) float32
}

// pcfKernel is the fixed 3x3 tap pattern used by the 9-tap PCF filter, in
// kernel units before division by the configured spread.
var pcfKernel = [9][2]float32{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {0, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// ShadowFactor computes the shadow visibility scalar for a fragment: 1 is
// fully lit, 0 fully shadowed. The light-space clip position is perspective
// divided and remapped from [-1, 1] normalized device coordinates to [0, 1]
// texture/depth space on all three axes before comparing against the stored
// depth map.
//
// A clip position with w <= 0 (fragment behind the light, or a degenerate
// projection) yields garbage coordinates; the edge-clamped sampler keeps the
// lookup in bounds so the result is a harmless visual artifact at the shadow
// frustum boundary rather than a fault. No guard is applied.
//
// Parameters:
//   - cfg: the shading variant configuration
//   - lightClip: the interpolated light-space clip position (homogeneous)
//   - depth: the shadow depth map
//
// Returns:
//   - float32: visibility in [0, 1]
func ShadowFactor(cfg *Config, lightClip [4]float32, depth DepthMap) float32 {
	if cfg.ShadowAlgorithm == ShadowNone || depth == nil {
		return 1
	}

	invW := 1.0 / lightClip[3]
	px := 0.5*(lightClip[0]*invW) + 0.5
	py := 0.5*(lightClip[1]*invW) + 0.5
	pz := 0.5*(lightClip[2]*invW) + 0.5

	switch cfg.ShadowAlgorithm {
	case ShadowPCF9:
		visibility := float32(1.0)
		for _, tap := range pcfKernel {
			stored := depth.Sample(px+tap[0]/cfg.PCFSpread, py+tap[1]/cfg.PCFSpread)
			if stored+cfg.ShadowBias < pz {
				visibility -= pcfTapPenalty
			}
		}
		return common.Saturate(visibility)
	default:
		stored := depth.Sample(px, py)
		// Evaluated as bias - (z - stored) so a stored depth exactly equal to
		// the fragment depth yields bias/SoftWidth, fully lit with the default
		// terms. Summing stored+bias first rounds that case just below 1.
		return common.Clamp((cfg.ShadowBias-(pz-stored))/cfg.SoftWidth, 0, 1)
	}
}
