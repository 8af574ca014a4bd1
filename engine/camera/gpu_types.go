package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUViewUniformSource is the canonical WGSL definition of the ViewUniform
// struct. Matches GPUViewUniform layout exactly (64 bytes).
//
//go:embed assets/view_uniform.wgsl
var GPUViewUniformSource string

// GPUViewUniform is the GPU-aligned per-frame view uniform: the combined
// view-projection matrix bound to the geometry pass. Matches the WGSL
// ViewUniform struct layout exactly (see GPUViewUniformSource).
// Size: 64 bytes.
type GPUViewUniform struct {
	ViewProj [16]float32 // offset 0: projection * view, column-major
}

// Size returns the size of the GPUViewUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUViewUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUViewUniform struct into a byte buffer suitable
// for GPU uniform buffer upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUViewUniform) Marshal() []byte {
	buf := make([]byte, 64)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	return buf
}
