package mesh

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct
// consumed by the geometry pass vertex shaders.
// Matches GPUVertex layout exactly (28 bytes, tightly packed vertex attributes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single vertex in the
// flattened frame vertex stream. Matches the vertex buffer layout declared by
// the geometry pipeline exactly (see GPUVertexSource):
//
//	float32x3 position        (12 bytes, offset  0)
//	float32x3 normal          (12 bytes, offset 12)
//	uint32    instance_index  ( 4 bytes, offset 24)
//
// Size: 28 bytes. Vertex buffers are tightly packed; std430 rules do not
// apply to vertex attributes.
type GPUVertex struct {
	Position      [3]float32 // offset  0: vertex position in object space
	Normal        [3]float32 // offset 12: vertex normal in object space
	InstanceIndex uint32     // offset 24: index into the frame's instance table
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (28)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 28-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 28)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], g.InstanceIndex)
	return buf
}

// MarshalVertexBuffer serializes a slice of GPUVertex values into a contiguous
// byte buffer in declaration order, ready for vertex buffer upload.
//
// Parameters:
//   - vertices: the vertex stream to marshal
//
// Returns:
//   - []byte: the marshaled buffer (28 bytes per vertex)
func MarshalVertexBuffer(vertices []GPUVertex) []byte {
	stride := (&GPUVertex{}).Size()
	buf := make([]byte, len(vertices)*stride)
	for i := range vertices {
		copy(buf[i*stride:(i+1)*stride], vertices[i].Marshal())
	}
	return buf
}

// ComputeBoundingRadius calculates the bounding sphere radius from a slice of
// vertex positions. The radius is the maximum distance from the origin across
// all vertices in the slice.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []Vertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
