package shading

import (
	"github.com/Carmen-Shannon/erebus-go/common"
	"github.com/Carmen-Shannon/erebus-go/engine/gbuffer"
)

// FullscreenVertex is the CPU reference for the lighting pass vertex stage:
// a full-screen triangle derived from the vertex index alone. Indices 0, 1
// and 2 produce clip positions (-1, 1), (3, 1) and (-1, -3); the triangle's
// excess hangs outside the viewport and is clipped away.
//
// Parameters:
//   - index: the vertex index, expected in {0, 1, 2}
//
// Returns:
//   - [4]float32: the clip-space position
func FullscreenVertex(index uint32) [4]float32 {
	u := float32((index << 1) & 2)
	v := float32(index & 2)
	return [4]float32{u*2 - 1, v*-2 + 1, 0, 1}
}

// EdgeDarkenFactor computes the darkening applied to a pixel from five
// depth samples: the pixel itself and its four axis neighbours one texel
// away. The neighbour sum minus four times the center is a discrete
// Laplacian; at or above EdgeDepthThreshold the pixel counts as an edge.
//
// Parameters:
//   - center: depth at the pixel
//   - top, bottom, left, right: depths one texel away along each axis
//
// Returns:
//   - float32: EdgeDarkenAmount on an edge, 0 elsewhere
func EdgeDarkenFactor(center, top, bottom, left, right float32) float32 {
	depthDiff := (top + bottom + left + right) - 4*center
	if depthDiff >= EdgeDepthThreshold {
		return EdgeDarkenAmount
	}
	return 0
}

// ShadePlain is the CPU reference for the plain lighting fragment stage:
// Lambertian diffuse from the fixed light plus the ambient term. The light
// term is deliberately not clamped, so bright normals can push the result
// past the input colour; the output format or tone mapping absorbs that
// downstream.
//
// Parameters:
//   - colour: the sampled G-buffer colour
//   - normal: the sampled G-buffer normal, normalized here before use
//
// Returns:
//   - [4]float32: the lit colour, alpha forced to 1
func ShadePlain(colour [4]float32, normal [3]float32) [4]float32 {
	diffuse := max(common.Dot3(common.Normalize3(normal), LightDirection), 0)
	light := diffuse + Ambient
	return [4]float32{colour[0] * light, colour[1] * light, colour[2] * light, 1}
}

// ShadeEdgeHighlighted is the CPU reference for the edge-highlighted
// lighting fragment stage. A positive darken factor first pulls the colour
// toward opaque black, then lighting is applied with the light term clamped
// to 1. The clamp is a real behavioural difference from ShadePlain, kept
// because the two variants are meant to look different, not just outlined.
//
// Parameters:
//   - colour: the sampled G-buffer colour
//   - normal: the sampled G-buffer normal, normalized here before use
//   - darken: the edge factor from EdgeDarkenFactor
//
// Returns:
//   - [4]float32: the lit colour, alpha forced to 1
func ShadeEdgeHighlighted(colour [4]float32, normal [3]float32, darken float32) [4]float32 {
	if darken > 0 {
		for i := range 3 {
			colour[i] += (0 - colour[i]) * darken
		}
		colour[3] += (1 - colour[3]) * darken
	}

	diffuse := max(common.Dot3(common.Normalize3(normal), LightDirection), 0)
	light := min(diffuse+Ambient, 1)
	return [4]float32{colour[0] * light, colour[1] * light, colour[2] * light, 1}
}

// ResolvePixel runs the full lighting stage for one pixel of a CPU
// G-buffer: sample the planes, detect edges when the variant asks for them,
// and shade. Neighbour samples clamp at the target edge exactly like the
// GPU sampler.
//
// Parameters:
//   - target: the CPU G-buffer written by a geometry pass
//   - x, y: the pixel coordinate
//   - variant: which lighting behaviour to apply
//
// Returns:
//   - [4]float32: the final pixel colour
func ResolvePixel(target *gbuffer.SoftwareTarget, x, y int, variant LightingVariant) [4]float32 {
	texel := target.TexelAt(x, y)
	normal := [3]float32{texel.Normal[0], texel.Normal[1], texel.Normal[2]}

	if variant == LightingEdgeHighlighted {
		darken := EdgeDarkenFactor(
			texel.Depth,
			target.TexelAt(x, y-1).Depth,
			target.TexelAt(x, y+1).Depth,
			target.TexelAt(x-1, y).Depth,
			target.TexelAt(x+1, y).Depth,
		)
		return ShadeEdgeHighlighted(texel.Colour, normal, darken)
	}
	return ShadePlain(texel.Colour, normal)
}
