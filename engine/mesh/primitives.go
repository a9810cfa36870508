package mesh

// NewPlane creates a flat rectangular mesh in the xz plane centered at the
// origin with its normal pointing up +y. Texture coordinates span [0, 1]
// across the surface and the vertex color defaults to white.
//
// Parameters:
//   - width: extent along x
//   - depth: extent along z
//
// Returns:
//   - Mesh: the plane mesh (4 vertices, 2 triangles)
func NewPlane(width, depth float32) Mesh {
	hw := width * 0.5
	hd := depth * 0.5
	vertices := []GPUVertex{
		{Position: [3]float32{-hw, 0, -hd}, Normal: [3]float32{0, 1, 0}, TexCoord: [3]float32{0, 0, 0}, Color: [3]float32{1, 1, 1}},
		{Position: [3]float32{hw, 0, -hd}, Normal: [3]float32{0, 1, 0}, TexCoord: [3]float32{1, 0, 0}, Color: [3]float32{1, 1, 1}},
		{Position: [3]float32{hw, 0, hd}, Normal: [3]float32{0, 1, 0}, TexCoord: [3]float32{1, 1, 0}, Color: [3]float32{1, 1, 1}},
		{Position: [3]float32{-hw, 0, hd}, Normal: [3]float32{0, 1, 0}, TexCoord: [3]float32{0, 1, 0}, Color: [3]float32{1, 1, 1}},
	}
	indices := []uint32{0, 2, 1, 0, 3, 2}
	return NewMesh(WithName("plane"), WithVertices(vertices), WithIndices(indices))
}

// NewBox creates a box mesh centered at the origin with per-face normals.
// Each face has its own four vertices so normals stay flat across the face.
//
// Parameters:
//   - width: extent along x
//   - height: extent along y
//   - depth: extent along z
//
// Returns:
//   - Mesh: the box mesh (24 vertices, 12 triangles)
func NewBox(width, height, depth float32) Mesh {
	hw := width * 0.5
	hh := height * 0.5
	hd := depth * 0.5

	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{normal: [3]float32{0, 0, 1}, corners: [4][3]float32{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}}},
		{normal: [3]float32{0, 0, -1}, corners: [4][3]float32{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}}},
		{normal: [3]float32{1, 0, 0}, corners: [4][3]float32{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}}},
		{normal: [3]float32{-1, 0, 0}, corners: [4][3]float32{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}}},
		{normal: [3]float32{0, 1, 0}, corners: [4][3]float32{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}}},
		{normal: [3]float32{0, -1, 0}, corners: [4][3]float32{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}}},
	}

	uv := [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for c := 0; c < 4; c++ {
			vertices = append(vertices, GPUVertex{
				Position: f.corners[c],
				Normal:   f.normal,
				TexCoord: uv[c],
				Color:    [3]float32{1, 1, 1},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewMesh(WithName("box"), WithVertices(vertices), WithIndices(indices))
}
