package mesh

// MeshBuilderOption is a function that configures a Mesh instance during construction.
type MeshBuilderOption func(*meshImpl)

// WithName is an option builder that sets the mesh identifier.
//
// Parameters:
//   - name: the mesh name
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a meshImpl
func WithName(name string) MeshBuilderOption {
	return func(m *meshImpl) {
		m.name = name
	}
}

// WithVertices is an option builder that sets the vertex slice.
//
// Parameters:
//   - vertices: the vertices to store
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertex option to a meshImpl
func WithVertices(vertices []GPUVertex) MeshBuilderOption {
	return func(m *meshImpl) {
		m.vertices = vertices
	}
}

// WithIndices is an option builder that sets the triangle index slice.
//
// Parameters:
//   - indices: the indices to store, three per triangle
//
// Returns:
//   - MeshBuilderOption: a function that applies the index option to a meshImpl
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.indices = indices
	}
}

// WithUniformColor is an option builder that overwrites every vertex color
// with a single RGB value. Apply after WithVertices.
//
// Parameters:
//   - r, g, b: the color components
//
// Returns:
//   - MeshBuilderOption: a function that applies the color option to a meshImpl
func WithUniformColor(r, g, b float32) MeshBuilderOption {
	return func(m *meshImpl) {
		for i := range m.vertices {
			m.vertices[i].Color = [3]float32{r, g, b}
		}
	}
}
