package loader

// LoaderBuilderOption is a functional option for configuring a Loader.
// Use the With* functions to create options.
type LoaderBuilderOption func(*loader)

// WithDefaultColor sets the vertex color assigned to meshes whose format
// carries none. OBJ files have no per-vertex color, so every loaded vertex
// receives this value. Defaults to white.
//
// Parameters:
//   - r, g, b: the vertex color components in [0, 1]
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithDefaultColor(r, g, b float32) LoaderBuilderOption {
	return func(l *loader) {
		if obj, ok := l.backend.(*objLoaderBackend); ok {
			obj.defaultColor = [3]float32{r, g, b}
		}
	}
}
