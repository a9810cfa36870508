package common

import "github.com/chewxy/math32"

// Dot3 computes the dot product of two 3-component vectors.
//
// Parameters:
//   - a: first vector
//   - b: second vector
//
// Returns:
//   - float32: the dot product a · b
func Dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 computes the cross product of two 3-component vectors.
//
// Parameters:
//   - a: first vector
//   - b: second vector
//
// Returns:
//   - [3]float32: the cross product a × b
func Cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 computes the Euclidean length of a 3-component vector.
//
// Parameters:
//   - v: the vector
//
// Returns:
//   - float32: the length of v
func Length3(v [3]float32) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns a unit-length copy of a 3-component vector.
// Returns a zero vector if the input has zero length.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - [3]float32: the normalized vector
func Normalize3(v [3]float32) [3]float32 {
	length := Length3(v)
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	inv := 1.0 / length
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Sub3 subtracts b from a component-wise.
//
// Parameters:
//   - a: first vector
//   - b: second vector
//
// Returns:
//   - [3]float32: a - b
func Sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 multiplies a vector by a scalar.
//
// Parameters:
//   - v: the vector
//   - s: the scalar
//
// Returns:
//   - [3]float32: v * s
func Scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

// Clamp constrains a value to the range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate constrains a value to the range [0, 1].
//
// Parameters:
//   - v: the value to clamp
//
// Returns:
//   - float32: the clamped value
func Saturate(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates between a and b by t.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - t: interpolation factor (unclamped)
//
// Returns:
//   - float32: a + (b-a)*t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
