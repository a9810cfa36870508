package light

import (
	"math"

	"github.com/sunward-gfx/sunward/common"
)

// AABB is an axis-aligned bounding box. A freshly constructed box is inverted
// (min at +inf, max at -inf) so that the first ExpandToFit sets both bounds.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// NewAABB creates an empty (inverted) bounding box.
//
// Returns:
//   - AABB: the inverted box
func NewAABB() AABB {
	return AABB{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// FromMinMax creates a bounding box from explicit bounds.
//
// Parameters:
//   - min: the minimum corner
//   - max: the maximum corner
//
// Returns:
//   - AABB: the box
func FromMinMax(min, max [3]float32) AABB {
	return AABB{Min: min, Max: max}
}

// ExpandToFit grows the box to contain every given point.
//
// Parameters:
//   - points: the points to enclose
func (a *AABB) ExpandToFit(points [][3]float32) {
	for _, p := range points {
		for i := 0; i < 3; i++ {
			if p[i] < a.Min[i] {
				a.Min[i] = p[i]
			}
			if p[i] > a.Max[i] {
				a.Max[i] = p[i]
			}
		}
	}
}

// Transform maps all eight corners of the box through a matrix and resets the
// box to the axis-aligned bounds of the result.
//
// Parameters:
//   - m: the transform matrix (16 elements, column-major)
func (a *AABB) Transform(m []float32) {
	corners := [][3]float32{
		{a.Min[0], a.Min[1], a.Min[2]},
		{a.Max[0], a.Min[1], a.Min[2]},
		{a.Min[0], a.Max[1], a.Min[2]},
		{a.Max[0], a.Max[1], a.Min[2]},
		{a.Min[0], a.Min[1], a.Max[2]},
		{a.Max[0], a.Min[1], a.Max[2]},
		{a.Min[0], a.Max[1], a.Max[2]},
		{a.Max[0], a.Max[1], a.Max[2]},
	}
	*a = NewAABB()
	for i := range corners {
		corners[i] = common.TransformPoint(m, corners[i])
	}
	a.ExpandToFit(corners)
}

// ExpandZ widens this box's z range to include the other box's z range,
// leaving x and y untouched. The shadow fit uses this to stretch the light
// frustum's depth so casters outside the view frustum still land in the map.
//
// Parameters:
//   - other: the box whose z range to include
func (a *AABB) ExpandZ(other AABB) {
	if other.Min[2] < a.Min[2] {
		a.Min[2] = other.Min[2]
	}
	if other.Max[2] > a.Max[2] {
		a.Max[2] = other.Max[2]
	}
}

// PosZPlaneMidpoint returns the center of the box's +z face.
//
// Returns:
//   - [3]float32: the midpoint of the max-z plane
func (a AABB) PosZPlaneMidpoint() [3]float32 {
	return [3]float32{
		0.5 * (a.Min[0] + a.Max[0]),
		0.5 * (a.Min[1] + a.Max[1]),
		a.Max[2],
	}
}

// IsEmpty reports whether the box is still inverted, meaning nothing has been
// fitted into it yet.
//
// Returns:
//   - bool: true if the box contains no points
func (a AABB) IsEmpty() bool {
	return a.Min[0] > a.Max[0] || a.Min[1] > a.Max[1] || a.Min[2] > a.Max[2]
}
