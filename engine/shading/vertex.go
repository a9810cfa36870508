package shading

import (
	"github.com/sunward-gfx/sunward/common"
)

// Uniforms is the read-only per-draw-call state shared by every vertex and
// fragment invocation of that call. It mirrors the uniform block the host
// uploads once per draw: transform matrices, viewport resolution, and the sun.
type Uniforms struct {
	// Resolution is the viewport size in pixels. Both components must be
	// positive and nonzero; that is a host contract, not checked here.
	Resolution [2]float32

	// Model is the object-to-world matrix (16 floats, column-major).
	Model [16]float32

	// View is the world-to-camera matrix.
	View [16]float32

	// Proj is the camera projection matrix.
	Proj [16]float32

	// LightViewProj is the combined view-projection matrix of the light
	// camera that rendered the shadow map.
	LightViewProj [16]float32

	// SunDirection is the direction the sunlight travels, in world (or
	// object) space depending on the variant.
	SunDirection [3]float32

	// SunColor is the RGB color of the sunlight.
	SunColor [3]float32
}

// VertexInput is one vertex's attributes as supplied by the host per draw
// call: object-space position and normal, texture coordinate (only xy used),
// and a per-vertex color tint.
type VertexInput struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [3]float32
	Color    [3]float32
}

// VertexOutput is the vertex stage's result: the clip-space position consumed
// by the rasterizer plus the interpolants forwarded to the fragment stage.
// The rasterizer interpolates these linearly and does not renormalize the
// vector outputs; the fragment stage must renormalize before use.
type VertexOutput struct {
	// ClipPosition is the aspect-corrected clip-space position (homogeneous).
	ClipPosition [4]float32

	// LightClipPosition is the vertex position projected through the light
	// camera, used for the shadow-map lookup after perspective division.
	LightClipPosition [4]float32

	// Normal is the camera-space surface normal (not unit length after
	// interpolation).
	Normal [3]float32

	// LightDirection is the camera-space sunlight direction (not unit length
	// after interpolation).
	LightDirection [3]float32

	// EyeDirection is the direction from the vertex toward the camera in view
	// space (the negated view-space position).
	EyeDirection [3]float32

	// TexCoord is the pass-through texture coordinate.
	TexCoord [3]float32

	// Color is the pass-through per-vertex tint.
	Color [3]float32
}

// TransformVertex runs the vertex stage for a single vertex: model/view/
// projection transform, the clip-space aspect correction, and interpolant
// setup for the fragment stage.
//
// The aspect correction deliberately scales the clip-space position instead
// of folding the aspect ratio into the projection matrix. The legacy
// shaders did it this way, and the two approaches are not interchangeable
// once the projection matrix also carries an aspect term, so the policy is
// preserved exactly: the longer viewport axis is compressed by the ratio of
// the shorter to the longer. A square viewport takes the y branch, which is
// a no-op at equality.
//
// Parameters:
//   - u: the per-draw-call uniforms
//   - cfg: the shading variant configuration
//   - in: the vertex attributes
//
// Returns:
//   - VertexOutput: clip position and fragment-stage interpolants
func TransformVertex(u *Uniforms, cfg *Config, in VertexInput) VertexOutput {
	var out VertexOutput

	viewPos := common.MulVec4(u.View[:], common.MulVec4(u.Model[:], [4]float32{in.Position[0], in.Position[1], in.Position[2], 1}))
	clipPos := common.MulVec4(u.Proj[:], viewPos)

	if u.Resolution[0] > u.Resolution[1] {
		clipPos[0] *= u.Resolution[1] / u.Resolution[0]
	} else {
		clipPos[1] *= u.Resolution[0] / u.Resolution[1]
	}
	out.ClipPosition = clipPos

	out.LightClipPosition = common.MulVec4(u.LightViewProj[:], [4]float32{in.Position[0], in.Position[1], in.Position[2], 1})

	out.Normal = transformDirection(u, cfg, in.Normal)
	if cfg.TransformSunDirection {
		out.LightDirection = transformDirection(u, cfg, u.SunDirection)
	} else {
		out.LightDirection = u.SunDirection
	}
	out.EyeDirection = [3]float32{-viewPos[0], -viewPos[1], -viewPos[2]}

	out.TexCoord = in.TexCoord
	out.Color = in.Color
	return out
}

// transformDirection applies the configured normal-transform policy to a
// direction vector. The reference policy pushes the vector through the model
// matrix with w=1, translation and all; the inverse-transpose policy is the
// conventional correct one.
func transformDirection(u *Uniforms, cfg *Config, v [3]float32) [3]float32 {
	switch cfg.NormalTransform {
	case NormalTransformInverseTranspose:
		var nm [16]float32
		if !common.NormalMatrix(nm[:], u.Model[:]) {
			return v
		}
		r := common.MulVec4(nm[:], [4]float32{v[0], v[1], v[2], 0})
		return [3]float32{r[0], r[1], r[2]}
	default:
		r := common.MulVec4(u.Model[:], [4]float32{v[0], v[1], v[2], 1})
		return [3]float32{r[0], r[1], r[2]}
	}
}
