package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/erebus-go/common"
	"github.com/Carmen-Shannon/erebus-go/engine/instance"
	"github.com/Carmen-Shannon/erebus-go/engine/mesh"
)

// Frame is one flattened snapshot of a scene, ready for upload: a single
// vertex stream with instance indices stamped in, a single index stream
// with per-mesh offsets applied, and the instance table those indices
// address. A Frame is immutable once built and valid for one render.
type Frame struct {
	Vertices []mesh.GPUVertex
	Indices  []uint32
	Table    *instance.Table
}

// VertexData returns the packed vertex buffer contents.
//
// Returns:
//   - []byte: 28 bytes per vertex, upload-ready
func (f *Frame) VertexData() []byte {
	return mesh.MarshalVertexBuffer(f.Vertices)
}

// IndexData returns the packed index buffer contents.
//
// Returns:
//   - []byte: 4 bytes per index, upload-ready
func (f *Frame) IndexData() []byte {
	return common.SliceToBytes(f.Indices)
}

// IndexCount returns the number of indices to draw.
//
// Returns:
//   - int: the index count
func (f *Frame) IndexCount() int {
	return len(f.Indices)
}

// Validate checks the frame's internal contract before upload: every index
// addresses a vertex and every vertex's instance index addresses a table
// record. The GPU checks neither.
//
// Returns:
//   - error: the first violation found, or nil
func (f *Frame) Validate() error {
	for i, idx := range f.Indices {
		if int(idx) >= len(f.Vertices) {
			return fmt.Errorf("index %d references vertex %d, frame holds %d vertices", i, idx, len(f.Vertices))
		}
	}
	instanceIndices := make([]uint32, len(f.Vertices))
	for i, v := range f.Vertices {
		instanceIndices[i] = v.InstanceIndex
	}
	return f.Table.ValidateIndices(instanceIndices)
}
