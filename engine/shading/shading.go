package shading

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/erebus-go/common"
)

// GeometrySource is the WGSL for the standard geometry pass: writes flat
// colour and the normal-transformed world-space normal into the G-buffer.
//
//go:embed assets/geometry.wgsl
var GeometrySource string

// GeometryDebugSource is the WGSL for the normal-visualization geometry
// pass: writes a red intensity tint instead of material data.
//
//go:embed assets/geometry_debug.wgsl
var GeometryDebugSource string

// LightingSource is the WGSL for the plain full-screen lighting pass.
//
//go:embed assets/lighting.wgsl
var LightingSource string

// LightingEdgeSource is the WGSL for the edge-highlighted lighting pass:
// plain lighting plus depth-discontinuity darkening.
//
//go:embed assets/lighting_edge.wgsl
var LightingEdgeSource string

// Shading constants shared by the WGSL sources and the CPU reference
// resolvers. The two must stay in lockstep; the reference tests pin the
// values the shaders hard-code.
const (
	// Ambient is the constant ambient light term.
	Ambient float32 = 0.3
	// EdgeDepthThreshold is the depth Laplacian value at or above which a
	// pixel counts as sitting on a discontinuity.
	EdgeDepthThreshold float32 = 0.005
	// EdgeDarkenAmount is how far an edge pixel's colour is pulled toward
	// black.
	EdgeDarkenAmount float32 = 0.7
)

// LightDirection is the single fixed directional light, unit length.
var LightDirection = common.Normalize3([3]float32{0.3, 0.6, 0.9})

// GeometryVariant selects which geometry pass behaviour a pipeline is built
// with. Variants are distinct shader programs, not a runtime branch.
type GeometryVariant int

const (
	// GeometryStandard writes colour and world-space normal.
	GeometryStandard GeometryVariant = iota
	// GeometryDebugNormals writes a red normal-intensity tint only.
	GeometryDebugNormals
)

// String returns the variant name used in config files and pipeline labels.
func (v GeometryVariant) String() string {
	switch v {
	case GeometryStandard:
		return "standard"
	case GeometryDebugNormals:
		return "debug_normals"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// Source returns the variant's WGSL source.
func (v GeometryVariant) Source() string {
	if v == GeometryDebugNormals {
		return GeometryDebugSource
	}
	return GeometrySource
}

// ParseGeometryVariant parses a config-file variant name.
//
// Parameters:
//   - s: the variant name ("standard" or "debug_normals")
//
// Returns:
//   - GeometryVariant: the parsed variant
//   - error: an error if the name is not recognised
func ParseGeometryVariant(s string) (GeometryVariant, error) {
	switch s {
	case "standard":
		return GeometryStandard, nil
	case "debug_normals":
		return GeometryDebugNormals, nil
	default:
		return GeometryStandard, fmt.Errorf("unknown geometry variant %q", s)
	}
}

// LightingVariant selects which lighting pass behaviour a pipeline is built
// with.
type LightingVariant int

const (
	// LightingPlain applies the Lambertian-plus-ambient model with no
	// upper clamp on the light term.
	LightingPlain LightingVariant = iota
	// LightingEdgeHighlighted darkens depth-discontinuity pixels and
	// clamps the light term to 1.
	LightingEdgeHighlighted
)

// String returns the variant name used in config files and pipeline labels.
func (v LightingVariant) String() string {
	switch v {
	case LightingPlain:
		return "plain"
	case LightingEdgeHighlighted:
		return "edge_highlighted"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// Source returns the variant's WGSL source.
func (v LightingVariant) Source() string {
	if v == LightingEdgeHighlighted {
		return LightingEdgeSource
	}
	return LightingSource
}

// ParseLightingVariant parses a config-file variant name.
//
// Parameters:
//   - s: the variant name ("plain" or "edge_highlighted")
//
// Returns:
//   - LightingVariant: the parsed variant
//   - error: an error if the name is not recognised
func ParseLightingVariant(s string) (LightingVariant, error) {
	switch s {
	case "plain":
		return LightingPlain, nil
	case "edge_highlighted":
		return LightingEdgeHighlighted, nil
	default:
		return LightingPlain, fmt.Errorf("unknown lighting variant %q", s)
	}
}
