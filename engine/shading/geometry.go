package shading

import (
	"github.com/Carmen-Shannon/erebus-go/common"
	"github.com/Carmen-Shannon/erebus-go/engine/gbuffer"
	"github.com/Carmen-Shannon/erebus-go/engine/instance"
	"github.com/Carmen-Shannon/erebus-go/engine/mesh"
)

// VertexOutput mirrors the geometry shader's per-vertex output: clip-space
// position, the (possibly non-unit) transformed normal, and the instance
// colour. The debug variant leaves Colour at its zero value.
type VertexOutput struct {
	ClipPosition [4]float32
	Normal       [3]float32
	Colour       [4]float32
}

// ResolveVertex is the CPU reference for the standard geometry vertex
// stage. It fetches the vertex's instance record, transforms position into
// clip space and the normal by the instance's normal transform, and carries
// the instance colour through.
//
// The table lookup is bounds-checked here because this is the integration
// boundary; the GPU shader performs the same read unchecked.
//
// Parameters:
//   - v: the vertex record
//   - table: the frame's instance table
//   - viewProj: the frame's view-projection matrix (column-major)
//
// Returns:
//   - VertexOutput: the resolved vertex
//   - error: an error if the vertex's instance index is out of range
func ResolveVertex(v mesh.GPUVertex, table *instance.Table, viewProj [16]float32) (VertexOutput, error) {
	rec, err := table.At(v.InstanceIndex)
	if err != nil {
		return VertexOutput{}, err
	}

	world := common.Mul4Vec4(rec.Transform[:], [4]float32{v.Position[0], v.Position[1], v.Position[2], 1})
	clip := common.Mul4Vec4(viewProj[:], world)
	n := common.Mul4Vec4(rec.NormalTransform[:], [4]float32{v.Normal[0], v.Normal[1], v.Normal[2], 0})

	return VertexOutput{
		ClipPosition: clip,
		Normal:       [3]float32{n[0], n[1], n[2]},
		Colour:       rec.Colour,
	}, nil
}

// ResolveVertexDebug is the CPU reference for the debug geometry vertex
// stage: same position path as ResolveVertex, but the normal passes through
// untransformed and no colour is emitted.
//
// Parameters:
//   - v: the vertex record
//   - table: the frame's instance table
//   - viewProj: the frame's view-projection matrix (column-major)
//
// Returns:
//   - VertexOutput: the resolved vertex (Colour is zero)
//   - error: an error if the vertex's instance index is out of range
func ResolveVertexDebug(v mesh.GPUVertex, table *instance.Table, viewProj [16]float32) (VertexOutput, error) {
	rec, err := table.At(v.InstanceIndex)
	if err != nil {
		return VertexOutput{}, err
	}

	world := common.Mul4Vec4(rec.Transform[:], [4]float32{v.Position[0], v.Position[1], v.Position[2], 1})
	return VertexOutput{
		ClipPosition: common.Mul4Vec4(viewProj[:], world),
		Normal:       v.Normal,
	}, nil
}

// FragmentStandard is the CPU reference for the standard geometry fragment
// stage: it packs a resolved vertex into a G-buffer fragment. Depth comes
// from the clip position after perspective divide, the value the rasterizer
// would have written.
//
// Parameters:
//   - out: a resolved vertex
//
// Returns:
//   - gbuffer.Fragment: the fragment to depth-test into the G-buffer
func FragmentStandard(out VertexOutput) gbuffer.Fragment {
	return gbuffer.Fragment{
		Colour: out.Colour,
		Normal: [4]float32{out.Normal[0], out.Normal[1], out.Normal[2], 1},
		Depth:  out.ClipPosition[2] / out.ClipPosition[3],
	}
}

// FragmentDebug is the CPU reference for the debug geometry fragment stage:
// a red tint scaled by the raw, unnormalized dot of the normal with the
// all-ones vector. Interpolation shrinks unit normals, so the intensity
// doubles as a magnitude probe.
//
// Parameters:
//   - normal: the interpolated normal, not normalized
//
// Returns:
//   - [4]float32: (d, 0, 0, d) where d = normal . (1, 1, 1)
func FragmentDebug(normal [3]float32) [4]float32 {
	d := common.Dot3(normal, [3]float32{1, 1, 1})
	return [4]float32{d, 0, 0, d}
}
