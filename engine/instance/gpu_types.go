package instance

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUInstanceSource is the canonical WGSL definition of the Instance struct.
// Matches GPUInstance layout exactly (144 bytes, std430 aligned).
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// GPUInstance is the GPU-aligned representation of one instance table record.
// Matches the WGSL Instance struct layout exactly (see GPUInstanceSource).
// Size: 144 bytes (std430 / WGSL aligned, no padding required).
//
// Layout:
//
//	mat4x4<f32> transform         (64 bytes, offset   0)
//	mat4x4<f32> normal_transform  (64 bytes, offset  64)
//	vec4<f32>   colour            (16 bytes, offset 128)
//
// NormalTransform must be the transpose of the inverse of Transform's upper
// 3x3 submatrix whenever Transform carries non-uniform scale; otherwise
// shading normals come out skewed. Use the Instance type's SetTransform to
// keep the two in sync.
type GPUInstance struct {
	Transform       [16]float32 // offset   0: object-space -> world-space transform
	NormalTransform [16]float32 // offset  64: normal correction transform (inverse-transpose)
	Colour          [4]float32  // offset 128: flat RGBA tint for the whole surface
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for
// GPU storage buffer upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 144)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Transform[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.NormalTransform[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.Colour[i]))
	}
	return buf
}
