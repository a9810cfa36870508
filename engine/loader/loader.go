package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sunward-gfx/sunward/engine/mesh"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	meshCache map[string]mesh.Mesh

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching meshes.
// It abstracts the file format behind a generic backend and deduplicates
// loads by path, so the same asset on disk parses once.
type Loader interface {
	// LoadMesh loads a mesh from the given file path. Repeated loads of the
	// same path return the cached mesh.
	//
	// Parameters:
	//   - path: the mesh file path; the extension must match the backend
	//
	// Returns:
	//   - mesh.Mesh: the loaded mesh
	//   - error: an error if the file cannot be opened or parsed
	LoadMesh(path string) (mesh.Mesh, error)

	// LoadMeshFromReader parses a mesh from a reader and caches it under the
	// given name. Use this for embedded or generated assets.
	//
	// Parameters:
	//   - name: the cache key and mesh name
	//   - r: the mesh data
	//
	// Returns:
	//   - mesh.Mesh: the parsed mesh
	//   - error: an error if parsing fails
	LoadMeshFromReader(name string, r io.Reader) (mesh.Mesh, error)

	// Cached retrieves a previously loaded mesh by its cache key.
	// Returns nil if not present.
	//
	// Parameters:
	//   - name: the cache key (the path for LoadMesh, the name for LoadMeshFromReader)
	//
	// Returns:
	//   - mesh.Mesh: the cached mesh or nil
	Cached(name string) mesh.Mesh

	// Evict removes a mesh from the cache. Evicting an unknown key is a no-op.
	//
	// Parameters:
	//   - name: the cache key to remove
	Evict(name string)

	// Clear empties the mesh cache.
	Clear()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the specified backend.
//
// Parameters:
//   - backendType: the mesh file format backend to use (e.g. OBJ)
//   - options: variadic list of LoaderBuilderOption functions
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		meshCache: make(map[string]mesh.Mesh),
	}

	var backend loaderBackend
	switch backendType {
	case BackendTypeOBJ:
		fallthrough
	default:
		backend = newOBJLoaderBackend()
	}
	l.backend = backend

	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *loader) LoadMesh(path string) (mesh.Mesh, error) {
	l.mu.RLock()
	if m, ok := l.meshCache[path]; ok {
		l.mu.RUnlock()
		return m, nil
	}
	l.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	if !l.backend.SupportsExtension(ext) {
		return nil, fmt.Errorf("loader: unsupported mesh format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening %s: %w", path, err)
	}
	defer f.Close()

	return l.parseAndCache(path, f)
}

func (l *loader) LoadMeshFromReader(name string, r io.Reader) (mesh.Mesh, error) {
	l.mu.RLock()
	if m, ok := l.meshCache[name]; ok {
		l.mu.RUnlock()
		return m, nil
	}
	l.mu.RUnlock()

	return l.parseAndCache(name, r)
}

func (l *loader) Cached(name string) mesh.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[name]
}

func (l *loader) Evict(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.meshCache, name)
}

func (l *loader) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.meshCache = make(map[string]mesh.Mesh)
}

// parseAndCache runs the backend parser and stores the result. A concurrent
// load of the same key may race past the read-locked cache check; the second
// parse wins the map write, which is harmless for immutable meshes.
func (l *loader) parseAndCache(name string, r io.Reader) (mesh.Mesh, error) {
	m, err := l.backend.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("loader: parsing %s: %w", name, err)
	}

	l.mu.Lock()
	l.meshCache[name] = m
	l.mu.Unlock()
	return m, nil
}
