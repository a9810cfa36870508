package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# a unit quad facing +z
v -0.5 -0.5 0
v  0.5 -0.5 0
v  0.5  0.5 0
v -0.5  0.5 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestLoadMeshFromReaderQuad(t *testing.T) {
	l := NewLoader(BackendTypeOBJ)

	m, err := l.LoadMeshFromReader("quad", strings.NewReader(quadOBJ))
	require.NoError(t, err)

	assert.Equal(t, "quad", m.Name())
	assert.Len(t, m.Vertices(), 4)
	// The quad fan-triangulates into two triangles.
	require.Equal(t, 6, m.IndexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices())

	v := m.Vertices()[2]
	assert.Equal(t, [3]float32{0.5, 0.5, 0}, v.Position)
	assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
	assert.Equal(t, [3]float32{1, 1, 0}, v.TexCoord)
	assert.Equal(t, [3]float32{1, 1, 1}, v.Color)

	bounds := m.Bounds()
	assert.Equal(t, [3]float32{-0.5, -0.5, 0}, bounds.Min)
	assert.Equal(t, [3]float32{0.5, 0.5, 0}, bounds.Max)
}

func TestLoadMeshCaches(t *testing.T) {
	l := NewLoader(BackendTypeOBJ)

	first, err := l.LoadMeshFromReader("quad", strings.NewReader(quadOBJ))
	require.NoError(t, err)

	// The second load never touches the (empty) reader.
	second, err := l.LoadMeshFromReader("quad", strings.NewReader(""))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Same(t, first, l.Cached("quad"))

	l.Evict("quad")
	assert.Nil(t, l.Cached("quad"))
}

func TestParseComputesMissingNormals(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	l := NewLoader(BackendTypeOBJ)
	m, err := l.LoadMeshFromReader("tri", strings.NewReader(src))
	require.NoError(t, err)

	for _, v := range m.Vertices() {
		assert.Equal(t, [3]float32{0, 0, 1}, v.Normal)
	}
}

func TestParseNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	l := NewLoader(BackendTypeOBJ)
	m, err := l.LoadMeshFromReader("tri", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices())
}

func TestParseRejectsBadInput(t *testing.T) {
	l := NewLoader(BackendTypeOBJ)

	cases := map[string]string{
		"out of range index": "v 0 0 0\nf 1 2 3\n",
		"malformed corner":   "v 0 0 0\nf 1/a 1 1\n",
		"short face":         "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"no faces":           "v 0 0 0\n",
	}
	for name, src := range cases {
		_, err := l.LoadMeshFromReader(name, strings.NewReader(src))
		assert.Error(t, err, name)
	}
}

func TestLoadMeshRejectsUnknownExtension(t *testing.T) {
	l := NewLoader(BackendTypeOBJ)
	_, err := l.LoadMesh("model.gltf")
	assert.Error(t, err)
}

func TestWithDefaultColor(t *testing.T) {
	l := NewLoader(BackendTypeOBJ, WithDefaultColor(0.2, 0.4, 0.6))

	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	m, err := l.LoadMeshFromReader("tri", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0.2, 0.4, 0.6}, m.Vertices()[0].Color)
}
