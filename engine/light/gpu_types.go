package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/sunward-gfx/sunward/engine/camera"
)

// GPUShadowUniformSource is the canonical WGSL definition of the ShadowUniform struct.
// Matches GPUShadowUniform layout exactly (64 bytes).
//
//go:embed assets/shadow_uniform.wgsl
var GPUShadowUniformSource string

// GPUShadowUniform is the GPU-aligned uniform for the depth-only shadow pass
// vertex stage. It carries the fitted orthographic view-projection from the
// sun's perspective.
// Matches the WGSL ShadowUniform struct layout exactly (see GPUShadowUniformSource).
// Size: 64 bytes (mat4x4<f32>).
type GPUShadowUniform struct {
	LightVP [16]float32 // orthographic view-projection from the sun's perspective
}

// Size returns the size of the GPUShadowUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (u *GPUShadowUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPUShadowUniform struct into a byte buffer suitable
// for GPU uniform upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (u *GPUShadowUniform) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(u.LightVP[i]))
	}
	return buf
}

// ToGPUShadowUniform captures a fitted shadow camera's view-projection matrix
// into the GPU-aligned uniform struct.
//
// Parameters:
//   - shadowCam: the sun's fitted shadow camera
//
// Returns:
//   - GPUShadowUniform: the GPU-aligned representation
func ToGPUShadowUniform(shadowCam camera.Camera) GPUShadowUniform {
	return GPUShadowUniform{LightVP: shadowCam.ViewProjectionMatrix()}
}
