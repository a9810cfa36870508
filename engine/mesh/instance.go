package mesh

import (
	"github.com/sunward-gfx/sunward/common"
	"github.com/sunward-gfx/sunward/engine/light"
	"github.com/sunward-gfx/sunward/engine/shading"
)

// instanceImpl is the implementation of the Instance interface.
type instanceImpl struct {
	mesh           Mesh
	position       [3]float32
	rotation       [3]float32
	scale          [3]float32
	texture        shading.Texture
	castsShadows   bool
	renderDistance float32
}

// Instance defines the interface for a single placed copy of a Mesh in the
// scene. It pairs the geometry with a world transform, a base color texture,
// and per-instance render flags.
type Instance interface {
	// Mesh retrieves the geometry this instance renders.
	//
	// Returns:
	//   - Mesh: the mesh
	Mesh() Mesh

	// Position returns the instance's world-space position.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Scale returns the instance's per-axis scale.
	//
	// Returns:
	//   - [3]float32: scale as (x, y, z)
	Scale() [3]float32

	// Texture returns the base color texture sampled by the fragment stage.
	//
	// Returns:
	//   - shading.Texture: the texture
	Texture() shading.Texture

	// CastsShadows reports whether this instance is drawn into the shadow
	// depth pass.
	//
	// Returns:
	//   - bool: true if the instance casts shadows
	CastsShadows() bool

	// RenderDistance returns the maximum distance from the viewer at which
	// this instance is drawn. Zero means unlimited.
	//
	// Returns:
	//   - float32: the render distance, or 0
	RenderDistance() float32

	// ModelMatrix builds the instance's model-to-world matrix from its
	// position, rotation, and scale.
	//
	// Returns:
	//   - [16]float32: the model matrix (column-major)
	ModelMatrix() [16]float32

	// WorldBounds returns the mesh bounds transformed into world space.
	//
	// Returns:
	//   - light.AABB: the world-space bounding box
	WorldBounds() light.AABB

	// SetPosition moves the instance.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - x, y, z: scale components
	SetScale(x, y, z float32)
}

var _ Instance = &instanceImpl{}

// NewInstance creates a new Instance of the given mesh with the specified
// options applied. Panics if mesh is nil.
//
// Parameters:
//   - m: the mesh to instance
//   - options: a variadic list of InstanceBuilderOption functions to configure the Instance
//
// Returns:
//   - Instance: a new instance of Instance configured with the provided options
func NewInstance(m Mesh, options ...InstanceBuilderOption) Instance {
	if m == nil {
		panic("mesh: NewInstance requires a non-nil mesh")
	}
	inst := &instanceImpl{
		mesh:         m,
		scale:        [3]float32{1, 1, 1},
		texture:      shading.SolidTexture{1, 1, 1, 1},
		castsShadows: true,
	}
	for _, opt := range options {
		opt(inst)
	}
	return inst
}

func (i *instanceImpl) Mesh() Mesh {
	return i.mesh
}

func (i *instanceImpl) Position() [3]float32 {
	return i.position
}

func (i *instanceImpl) Scale() [3]float32 {
	return i.scale
}

func (i *instanceImpl) Texture() shading.Texture {
	return i.texture
}

func (i *instanceImpl) CastsShadows() bool {
	return i.castsShadows
}

func (i *instanceImpl) RenderDistance() float32 {
	return i.renderDistance
}

func (i *instanceImpl) ModelMatrix() [16]float32 {
	var out [16]float32
	common.BuildModelMatrix(out[:],
		i.position[0], i.position[1], i.position[2],
		i.rotation[0], i.rotation[1], i.rotation[2],
		i.scale[0], i.scale[1], i.scale[2],
	)
	return out
}

func (i *instanceImpl) WorldBounds() light.AABB {
	bounds := i.mesh.Bounds()
	m := i.ModelMatrix()
	bounds.Transform(m[:])
	return bounds
}

func (i *instanceImpl) SetPosition(x, y, z float32) {
	i.position = [3]float32{x, y, z}
}

func (i *instanceImpl) SetScale(x, y, z float32) {
	i.scale = [3]float32{x, y, z}
}
