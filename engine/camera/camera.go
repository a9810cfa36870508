package camera

import (
	"sync"

	"github.com/sunward-gfx/sunward/common"
)

// ProjectionKind identifies the projection model a camera uses.
type ProjectionKind int

const (
	// ProjectionPerspective is a standard perspective projection defined by a
	// vertical field of view. Used by the scene's viewer camera.
	ProjectionPerspective ProjectionKind = iota

	// ProjectionOrthographic is a box projection defined by explicit extents.
	// Used by the directional light's shadow camera.
	ProjectionOrthographic
)

// ClipSpace identifies the normalized device depth convention of the
// projection matrices a camera produces.
type ClipSpace int

const (
	// ClipSpaceZeroToOne maps depth to [0, 1], the WebGPU convention. This is
	// the default and what the GPU pipelines require.
	ClipSpaceZeroToOne ClipSpace = iota

	// ClipSpaceNegOneToOne maps depth to [-1, 1], the classic OpenGL
	// convention. The CPU reference pipeline uses this so its stored shadow
	// depths line up with the [-1, 1] to [0, 1] remap in the shading core.
	ClipSpaceNegOneToOne
)

// OrthoExtents are the explicit view volume bounds of an orthographic projection.
type OrthoExtents struct {
	Left, Right  float32
	Bottom, Top  float32
	Near, Far    float32
}

type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32

	kind      ProjectionKind
	clipSpace ClipSpace

	fov    float32
	aspect float32
	near   float32
	far    float32
	ortho  OrthoExtents

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera defines the interface for a view/projection matrix supplier. Both
// the scene's viewer camera and the directional light's shadow camera are
// Cameras; the latter is orthographic and repositioned every frame by the
// shadow fitting pass.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Target returns the world-space point the camera looks at.
	//
	// Returns:
	//   - [3]float32: target as (x, y, z)
	Target() [3]float32

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - [3]float32: up vector as (x, y, z)
	Up() [3]float32

	// Kind returns the camera's projection kind.
	//
	// Returns:
	//   - ProjectionKind: perspective or orthographic
	Kind() ProjectionKind

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined projection * view matrix.
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// InverseViewProjectionMatrix computes the inverse of the combined
	// view-projection matrix. Used by the shadow fitting pass to unproject
	// the view frustum corners into world space.
	//
	// Returns:
	//   - [16]float32: the inverse view-projection matrix
	//   - bool: false if the combined matrix is singular
	InverseViewProjectionMatrix() ([16]float32, bool)

	// SetPosition moves the camera and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetTarget repoints the camera and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetUp replaces the camera's up vector and recomputes matrices.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Only meaningful for perspective cameras.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetOrthoExtents switches the camera to an orthographic projection with
	// the given extents and recomputes matrices.
	//
	// Parameters:
	//   - extents: the view volume bounds
	SetOrthoExtents(extents OrthoExtents)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings and any
// provided options applied.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:        &sync.Mutex{},
		position:  [3]float32{0, 0, 5},
		target:    [3]float32{0, 0, 0},
		up:        [3]float32{0, 1, 0},
		kind:      ProjectionPerspective,
		clipSpace: ClipSpaceZeroToOne,
		fov:       45.0 * (3.14159265 / 180.0),
		aspect:    1.0,
		near:      0.1,
		far:       100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Kind() ProjectionKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseViewProjectionMatrix() ([16]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var inv [16]float32
	ok := common.Invert4(inv[:], c.viewProjectionMatrix[:])
	return inv, ok
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetOrthoExtents(extents OrthoExtents) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kind = ProjectionOrthographic
	c.ortho = extents
	c.updateMatrices()
}

// updateMatrices recomputes view, projection, and combined matrices. Callers
// must hold the mutex (or be in the constructor).
func (c *cameraImpl) updateMatrices() {
	common.LookAt(c.viewMatrix[:],
		c.position[0], c.position[1], c.position[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2],
	)

	switch c.kind {
	case ProjectionOrthographic:
		if c.clipSpace == ClipSpaceNegOneToOne {
			common.OrthographicGL(c.projectionMatrix[:], c.ortho.Left, c.ortho.Right, c.ortho.Bottom, c.ortho.Top, c.ortho.Near, c.ortho.Far)
		} else {
			common.Orthographic(c.projectionMatrix[:], c.ortho.Left, c.ortho.Right, c.ortho.Bottom, c.ortho.Top, c.ortho.Near, c.ortho.Far)
		}
	default:
		if c.clipSpace == ClipSpaceNegOneToOne {
			common.PerspectiveGL(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
		} else {
			common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
		}
	}

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
