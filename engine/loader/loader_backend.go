package loader

import (
	"io"

	"github.com/sunward-gfx/sunward/engine/mesh"
)

// LoaderBackendType identifies the mesh file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ loader backend.
	BackendTypeOBJ LoaderBackendType = iota
)

// loaderBackend is the format-specific parser behind the Loader facade.
type loaderBackend interface {
	// SupportsExtension reports whether the backend parses files with the
	// given lowercase extension (including the leading dot).
	SupportsExtension(ext string) bool

	// Parse reads one mesh from r. The name becomes the mesh's identifier.
	Parse(name string, r io.Reader) (mesh.Mesh, error)
}
