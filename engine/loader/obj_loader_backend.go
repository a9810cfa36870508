package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/sunward-gfx/sunward/engine/mesh"
)

// objLoaderBackend parses Wavefront OBJ files into indexed triangle meshes.
// Supported statements are v, vn, vt, and f; grouping, material, and smoothing
// statements are ignored. Polygon faces are fan-triangulated. When the file
// carries no normals they are computed from the face geometry.
type objLoaderBackend struct {
	defaultColor [3]float32
}

var _ loaderBackend = &objLoaderBackend{}

func newOBJLoaderBackend() *objLoaderBackend {
	return &objLoaderBackend{defaultColor: [3]float32{1, 1, 1}}
}

func (b *objLoaderBackend) SupportsExtension(ext string) bool {
	return ext == ".obj"
}

// faceRef is a parsed OBJ face corner, holding zero-based attribute indices.
// texCoord and normal are -1 when the corner does not reference them.
type faceRef struct {
	position int
	texCoord int
	normal   int
}

func (b *objLoaderBackend) Parse(name string, r io.Reader) (mesh.Mesh, error) {
	var positions, normals [][3]float32
	var texCoords [][2]float32
	var vertices []mesh.GPUVertex
	var indices []uint32

	// Deduplicate identical v/vt/vn corner references.
	corners := make(map[faceRef]uint32)
	hasNormals := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex position: %w", lineNo, err)
			}
			positions = append(positions, p)
		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texture coordinate needs at least 2 components", lineNo)
			}
			u, err := parseFloat(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			v, err := parseFloat(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			texCoords = append(texCoords, [2]float32{u, v})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNo)
			}
			face := make([]uint32, 0, len(fields)-1)
			for _, field := range fields[1:] {
				ref, err := parseFaceRef(field, len(positions), len(texCoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx, ok := corners[ref]
				if !ok {
					v := mesh.GPUVertex{
						Position: positions[ref.position],
						Color:    b.defaultColor,
					}
					if ref.texCoord >= 0 {
						tc := texCoords[ref.texCoord]
						v.TexCoord = [3]float32{tc[0], tc[1], 0}
					}
					if ref.normal >= 0 {
						v.Normal = normals[ref.normal]
						hasNormals = true
					}
					idx = uint32(len(vertices))
					vertices = append(vertices, v)
					corners[ref] = idx
				}
				face = append(face, idx)
			}
			// Fan triangulation around the first corner.
			for i := 2; i < len(face); i++ {
				indices = append(indices, face[0], face[i-1], face[i])
			}
		default:
			// o, g, s, mtllib, usemtl and friends carry no geometry.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj data: %w", err)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no faces found")
	}

	if !hasNormals {
		computeNormals(vertices, indices)
	}

	return mesh.NewMesh(
		mesh.WithName(name),
		mesh.WithVertices(vertices),
		mesh.WithIndices(indices),
	), nil
}

// parseFaceRef parses one face corner of the form "v", "v/vt", "v//vn", or
// "v/vt/vn" into zero-based indices. OBJ indices are one-based; negative
// indices count back from the end of the respective attribute list.
func parseFaceRef(field string, numPositions, numTexCoords, numNormals int) (faceRef, error) {
	ref := faceRef{texCoord: -1, normal: -1}
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return ref, fmt.Errorf("malformed face corner %q", field)
	}

	resolve := func(s string, count int) (int, error) {
		raw, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("malformed face corner %q", field)
		}
		idx := raw - 1
		if raw < 0 {
			idx = count + raw
		}
		if idx < 0 || idx >= count {
			return 0, fmt.Errorf("face corner %q references index out of range", field)
		}
		return idx, nil
	}

	var err error
	if ref.position, err = resolve(parts[0], numPositions); err != nil {
		return ref, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if ref.texCoord, err = resolve(parts[1], numTexCoords); err != nil {
			return ref, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if ref.normal, err = resolve(parts[2], numNormals); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// computeNormals fills vertex normals from area-weighted face normals.
func computeNormals(vertices []mesh.GPUVertex, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		a := vertices[indices[i]].Position
		b := vertices[indices[i+1]].Position
		c := vertices[indices[i+2]].Position

		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}

		for _, vi := range indices[i : i+3] {
			for k := 0; k < 3; k++ {
				vertices[vi].Normal[k] += n[k]
			}
		}
	}

	for i := range vertices {
		n := vertices[i].Normal
		length := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if length > 0 {
			vertices[i].Normal = [3]float32{n[0] / length, n[1] / length, n[2] / length}
		}
	}
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}
