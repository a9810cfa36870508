package mesh

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/sunward-gfx/sunward/engine/light"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches GPUVertex layout exactly (48 bytes, std430 aligned).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 48 bytes (std430 aligned, no padding required).
//
// The texture coordinate carries three components so meshes imported from OBJ
// files keep the format's full uvw coordinate; most meshes leave w at zero.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [3]float32 // offset 24: UVW texture coordinate (12 bytes)
	Color    [3]float32 // offset 36: per-vertex RGB color (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 48)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.TexCoord[1]))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.TexCoord[2]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.Color[2]))
	return buf
}

// MarshalVertexBuffer serializes a vertex slice into a contiguous byte buffer
// suitable for GPU upload.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: the marshaled buffer, len(vertices) * 48 bytes
func MarshalVertexBuffer(vertices []GPUVertex) []byte {
	stride := (&GPUVertex{}).Size()
	buf := make([]byte, len(vertices)*stride)
	for i := range vertices {
		copy(buf[i*stride:(i+1)*stride], vertices[i].Marshal())
	}
	return buf
}

// MarshalIndexBuffer serializes an index slice into a little-endian byte
// buffer suitable for GPU upload as a Uint32 index buffer.
//
// Parameters:
//   - indices: the indices to serialize
//
// Returns:
//   - []byte: the marshaled buffer, len(indices) * 4 bytes
func MarshalIndexBuffer(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], idx)
	}
	return buf
}

// ComputeBounds returns the axis-aligned bounding box of a vertex slice in
// model space.
//
// Parameters:
//   - vertices: the vertices to bound
//
// Returns:
//   - light.AABB: the bounding box, empty if the slice is empty
func ComputeBounds(vertices []GPUVertex) light.AABB {
	bounds := light.NewAABB()
	points := make([][3]float32, len(vertices))
	for i, v := range vertices {
		points[i] = v.Position
	}
	bounds.ExpandToFit(points)
	return bounds
}
