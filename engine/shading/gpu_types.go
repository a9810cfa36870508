package shading

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUForwardUniformsSource is the canonical WGSL definition of the
// ForwardUniforms struct. Matches GPUForwardUniforms layout exactly
// (304 bytes, WGSL uniform aligned).
//
//go:embed assets/forward_uniforms.wgsl
var GPUForwardUniformsSource string

// GPUForwardUniforms is the GPU-aligned representation of the per-draw-call
// uniforms read by both forward shader stages.
// Matches the WGSL ForwardUniforms struct layout exactly (see GPUForwardUniformsSource).
// Size: 304 bytes (WGSL uniform aligned).
//
// Layout:
//
//	mat4x4<f32> model          ( 64 bytes, offset   0)
//	mat4x4<f32> view           ( 64 bytes, offset  64)
//	mat4x4<f32> proj           ( 64 bytes, offset 128)
//	mat4x4<f32> light_vp       ( 64 bytes, offset 192)
//	vec3<f32>   sun_direction  ( 12 bytes, offset 256, 4 bytes pad)
//	vec3<f32>   sun_color      ( 12 bytes, offset 272, 4 bytes pad)
//	vec2<f32>   resolution     (  8 bytes, offset 288, 8 bytes pad)
type GPUForwardUniforms struct {
	Model        [16]float32
	View         [16]float32
	Proj         [16]float32
	LightVP      [16]float32
	SunDirection [3]float32
	_pad0        uint32
	SunColor     [3]float32
	_pad1        uint32
	Resolution   [2]float32
	_pad2        [2]uint32
}

// Size returns the size of the GPUForwardUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (304)
func (u *GPUForwardUniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPUForwardUniforms struct into a byte buffer
// suitable for GPU uniform upload.
//
// Returns:
//   - []byte: 304-byte buffer ready for GPU upload
func (u *GPUForwardUniforms) Marshal() []byte {
	buf := make([]byte, 304)
	off := 0
	putMat := func(m [16]float32) {
		for i := 0; i < 16; i++ {
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(m[i]))
			off += 4
		}
	}
	putMat(u.Model)
	putMat(u.View)
	putMat(u.Proj)
	putMat(u.LightVP)
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(u.SunDirection[i]))
		off += 4
	}
	off += 4 // pad
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(u.SunColor[i]))
		off += 4
	}
	off += 4 // pad
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(u.Resolution[0]))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(u.Resolution[1]))
	return buf
}

// ToGPUForwardUniforms converts CPU-side Uniforms into the GPU-aligned
// representation.
//
// Parameters:
//   - u: the uniforms to convert
//
// Returns:
//   - GPUForwardUniforms: the GPU-aligned representation
func ToGPUForwardUniforms(u *Uniforms) GPUForwardUniforms {
	return GPUForwardUniforms{
		Model:        u.Model,
		View:         u.View,
		Proj:         u.Proj,
		LightVP:      u.LightViewProj,
		SunDirection: u.SunDirection,
		SunColor:     u.SunColor,
		Resolution:   u.Resolution,
	}
}
