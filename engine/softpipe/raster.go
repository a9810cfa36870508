package softpipe

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/sunward-gfx/sunward/common"
	"github.com/sunward-gfx/sunward/engine/mesh"
	"github.com/sunward-gfx/sunward/engine/shading"
)

// depthTriangle is a screen-space triangle for the depth-only shadow pass.
type depthTriangle struct {
	// sx, sy are pixel coordinates per vertex.
	sx, sy [3]float32
	// z is the stored depth per vertex, already remapped to [0, 1].
	z [3]float32
}

// litTriangle is a screen-space triangle carrying the vertex stage outputs for
// the forward pass.
type litTriangle struct {
	sx, sy [3]float32
	// z is the normalized device depth used for the depth test.
	z [3]float32
	// invW is 1/w per vertex for perspective-correct attribute interpolation.
	invW [3]float32
	out  [3]shading.VertexOutput
}

// appendDepthTriangles transforms a mesh through the light's model-view-
// projection and appends the surviving screen-space triangles. Triangles with
// any vertex at or behind the light's projection plane are dropped rather than
// clipped; the fitted shadow camera keeps casters in front of it.
//
// Shadow map texture coordinates are not y-flipped, matching the [0, 1]
// remap the shadow factor applies at lookup time.
func appendDepthTriangles(tris []depthTriangle, mvp [16]float32, m mesh.Mesh, width, height int) []depthTriangle {
	verts := m.Vertices()
	indices := m.Indices()

	for i := 0; i+2 < len(indices); i += 3 {
		var tri depthTriangle
		ok := true
		for j := 0; j < 3; j++ {
			pos := verts[indices[i+j]].Position
			clip := common.MulVec4(mvp[:], [4]float32{pos[0], pos[1], pos[2], 1})
			if clip[3] <= 0 {
				ok = false
				break
			}
			invW := 1 / clip[3]
			tri.sx[j] = (0.5*clip[0]*invW + 0.5) * float32(width)
			tri.sy[j] = (0.5*clip[1]*invW + 0.5) * float32(height)
			tri.z[j] = 0.5*clip[2]*invW + 0.5
		}
		if ok {
			tris = append(tris, tri)
		}
	}
	return tris
}

// rasterizeDepthTriangle writes the triangle's depths into rows [y0, y1) of
// the buffer with a less-than depth test. Both windings rasterize; the shadow
// pass does not cull.
func rasterizeDepthTriangle(buf *shading.DepthBuffer, tri *depthTriangle, y0, y1 int) {
	area := edgeFunction(tri.sx[0], tri.sy[0], tri.sx[1], tri.sy[1], tri.sx[2], tri.sy[2])
	if area == 0 {
		return
	}

	minX, minY, maxX, maxY := triangleBounds(tri.sx, tri.sy, buf.Width(), y0, y1)
	for y := minY; y < maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5
			l0, l1, l2, inside := barycentric(tri.sx, tri.sy, area, px, py)
			if !inside {
				continue
			}
			z := l0*tri.z[0] + l1*tri.z[1] + l2*tri.z[2]
			if z < buf.At(x, y) {
				buf.Set(x, y, z)
			}
		}
	}
}

// assembleLitTriangles runs the vertex stage for every triangle of a mesh and
// returns the surviving screen-space triangles. The y axis flips so +y in
// normalized device coordinates is up in the image.
func assembleLitTriangles(u *shading.Uniforms, cfg *shading.Config, m mesh.Mesh) []litTriangle {
	verts := m.Vertices()
	indices := m.Indices()
	width := u.Resolution[0]
	height := u.Resolution[1]

	tris := make([]litTriangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		var tri litTriangle
		ok := true
		for j := 0; j < 3; j++ {
			v := verts[indices[i+j]]
			out := shading.TransformVertex(u, cfg, shading.VertexInput{
				Position: v.Position,
				Normal:   v.Normal,
				TexCoord: v.TexCoord,
				Color:    v.Color,
			})
			if out.ClipPosition[3] <= 0 {
				ok = false
				break
			}
			invW := 1 / out.ClipPosition[3]
			tri.sx[j] = (0.5*out.ClipPosition[0]*invW + 0.5) * width
			tri.sy[j] = (0.5 - 0.5*out.ClipPosition[1]*invW) * height
			tri.z[j] = out.ClipPosition[2] * invW
			tri.invW[j] = invW
			tri.out[j] = out
		}
		if ok {
			tris = append(tris, tri)
		}
	}
	return tris
}

// shadeTriangle rasterizes one lit triangle into rows [y0, y1) of the image,
// depth testing against the viewer depth buffer and shading each covered
// fragment. Attributes interpolate perspective-correct; the fragment stage
// renormalizes its vectors.
func (p *pipelineImpl) shadeTriangle(u *shading.Uniforms, tri *litTriangle, tex shading.Texture, shadowMap shading.DepthMap, img *image.RGBA, depth *shading.DepthBuffer, y0, y1 int) {
	area := edgeFunction(tri.sx[0], tri.sy[0], tri.sx[1], tri.sy[1], tri.sx[2], tri.sy[2])
	if area == 0 {
		return
	}

	minX, minY, maxX, maxY := triangleBounds(tri.sx, tri.sy, p.width, y0, y1)
	for y := minY; y < maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5
			l0, l1, l2, inside := barycentric(tri.sx, tri.sy, area, px, py)
			if !inside {
				continue
			}

			z := l0*tri.z[0] + l1*tri.z[1] + l2*tri.z[2]
			if z >= depth.At(x, y) {
				continue
			}
			depth.Set(x, y, z)

			// Perspective-correct weights.
			w0 := l0 * tri.invW[0]
			w1 := l1 * tri.invW[1]
			w2 := l2 * tri.invW[2]
			wSum := w0 + w1 + w2
			w0 /= wSum
			w1 /= wSum
			w2 /= wSum

			var frag shading.FragmentInput
			for k := 0; k < 3; k++ {
				frag.TexCoord[k] = w0*tri.out[0].TexCoord[k] + w1*tri.out[1].TexCoord[k] + w2*tri.out[2].TexCoord[k]
				frag.Color[k] = w0*tri.out[0].Color[k] + w1*tri.out[1].Color[k] + w2*tri.out[2].Color[k]
				frag.Normal[k] = w0*tri.out[0].Normal[k] + w1*tri.out[1].Normal[k] + w2*tri.out[2].Normal[k]
				frag.LightDirection[k] = w0*tri.out[0].LightDirection[k] + w1*tri.out[1].LightDirection[k] + w2*tri.out[2].LightDirection[k]
			}
			for k := 0; k < 4; k++ {
				frag.LightClipPosition[k] = w0*tri.out[0].LightClipPosition[k] + w1*tri.out[1].LightClipPosition[k] + w2*tri.out[2].LightClipPosition[k]
			}

			c := shading.ShadeFragment(&p.cfg, u, frag, tex, shadowMap)
			o := img.PixOffset(x, y)
			img.Pix[o] = colorByte(c[0])
			img.Pix[o+1] = colorByte(c[1])
			img.Pix[o+2] = colorByte(c[2])
			img.Pix[o+3] = colorByte(c[3])
		}
	}
}

// edgeFunction returns twice the signed area of triangle (a, b, c). The sign
// encodes the winding.
func edgeFunction(ax, ay, bx, by, cx, cy float32) float32 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// barycentric evaluates the barycentric weights of point (px, py). Both
// windings are accepted; inside is false when the point lies outside the
// triangle.
func barycentric(sx, sy [3]float32, area, px, py float32) (l0, l1, l2 float32, inside bool) {
	e0 := edgeFunction(sx[1], sy[1], sx[2], sy[2], px, py)
	e1 := edgeFunction(sx[2], sy[2], sx[0], sy[0], px, py)
	e2 := edgeFunction(sx[0], sy[0], sx[1], sy[1], px, py)

	if area > 0 {
		if e0 < 0 || e1 < 0 || e2 < 0 {
			return 0, 0, 0, false
		}
	} else {
		if e0 > 0 || e1 > 0 || e2 > 0 {
			return 0, 0, 0, false
		}
	}
	return e0 / area, e1 / area, e2 / area, true
}

// triangleBounds returns the pixel bounding box of a triangle clipped to the
// target width and the row band [y0, y1).
func triangleBounds(sx, sy [3]float32, width, y0, y1 int) (minX, minY, maxX, maxY int) {
	fMinX := math32.Min(sx[0], math32.Min(sx[1], sx[2]))
	fMaxX := math32.Max(sx[0], math32.Max(sx[1], sx[2]))
	fMinY := math32.Min(sy[0], math32.Min(sy[1], sy[2]))
	fMaxY := math32.Max(sy[0], math32.Max(sy[1], sy[2]))

	minX = clampInt(int(math32.Floor(fMinX)), 0, width)
	maxX = clampInt(int(math32.Ceil(fMaxX))+1, 0, width)
	minY = clampInt(int(math32.Floor(fMinY)), y0, y1)
	maxY = clampInt(int(math32.Ceil(fMaxY))+1, y0, y1)
	return minX, minY, maxX, maxY
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
