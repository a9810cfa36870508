// Package mesh holds CPU-side geometry containers and the GPU-aligned vertex
// format shared by the hardware and software render paths.
package mesh

import (
	"github.com/sunward-gfx/sunward/engine/light"
)

// meshImpl is the implementation of the Mesh interface.
type meshImpl struct {
	name     string
	vertices []GPUVertex
	indices  []uint32
	bounds   light.AABB
}

// Mesh defines the interface for an indexed triangle mesh. A Mesh owns its
// vertex and index data and exposes them both as typed slices for the
// software rasterizer and as marshaled byte buffers for GPU upload.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Vertices retrieves the vertex slice. Callers must not modify it.
	//
	// Returns:
	//   - []GPUVertex: the vertices
	Vertices() []GPUVertex

	// Indices retrieves the triangle index slice. Callers must not modify it.
	//
	// Returns:
	//   - []uint32: the indices, three per triangle
	Indices() []uint32

	// IndexCount returns the number of indices in the mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Bounds returns the mesh's model-space axis-aligned bounding box.
	//
	// Returns:
	//   - light.AABB: the bounding box
	Bounds() light.AABB

	// VertexData returns the marshaled vertex buffer for GPU upload.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the marshaled index buffer for GPU upload.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte
}

var _ Mesh = &meshImpl{}

// NewMesh creates a new Mesh with the specified options applied. The bounding
// box is computed from the final vertex slice.
//
// Parameters:
//   - options: a variadic list of MeshBuilderOption functions to configure the Mesh
//
// Returns:
//   - Mesh: a new instance of Mesh configured with the provided options
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &meshImpl{}
	for _, opt := range options {
		opt(m)
	}
	m.bounds = ComputeBounds(m.vertices)
	return m
}

func (m *meshImpl) Name() string {
	return m.name
}

func (m *meshImpl) Vertices() []GPUVertex {
	return m.vertices
}

func (m *meshImpl) Indices() []uint32 {
	return m.indices
}

func (m *meshImpl) IndexCount() int {
	return len(m.indices)
}

func (m *meshImpl) Bounds() light.AABB {
	return m.bounds
}

func (m *meshImpl) VertexData() []byte {
	return MarshalVertexBuffer(m.vertices)
}

func (m *meshImpl) IndexData() []byte {
	return MarshalIndexBuffer(m.indices)
}
