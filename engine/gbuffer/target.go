package gbuffer

import "fmt"

// Texel is one G-buffer sample: the three planes read at a single
// coordinate.
type Texel struct {
	Colour [4]float32
	Normal [4]float32
	Depth  float32
}

// Fragment is a shaded geometry-pass output destined for one texel. Depth
// is in the WebGPU [0, 1] clip range.
type Fragment struct {
	Colour [4]float32
	Normal [4]float32
	Depth  float32
}

// SoftwareTarget is a CPU-side G-buffer: three planes with the same
// semantics as the GPU attachments, written through a depth test exactly
// like the geometry pass's. It backs the reference lighting resolver and
// lets shading behaviour be exercised without a device.
type SoftwareTarget struct {
	width  int
	height int
	colour [][4]float32
	normal [][4]float32
	depth  []float32
}

// NewSoftwareTarget creates a cleared CPU G-buffer. Colour and normal
// planes start at zero; the depth plane starts at 1, the far plane, so any
// in-range fragment passes the first test.
//
// Parameters:
//   - width, height: target dimensions in texels (must be positive)
//
// Returns:
//   - *SoftwareTarget: the cleared target
//   - error: an error if either dimension is not positive
func NewSoftwareTarget(width, height int) (*SoftwareTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("software target dimensions must be positive, got %dx%d", width, height)
	}
	t := &SoftwareTarget{
		width:  width,
		height: height,
		colour: make([][4]float32, width*height),
		normal: make([][4]float32, width*height),
		depth:  make([]float32, width*height),
	}
	for i := range t.depth {
		t.depth[i] = 1
	}
	return t, nil
}

// Width returns the target width in texels.
func (t *SoftwareTarget) Width() int { return t.width }

// Height returns the target height in texels.
func (t *SoftwareTarget) Height() int { return t.height }

// Write stores a fragment at (x, y) if it passes the depth test: strictly
// nearer fragments win, matching CompareFunctionLess on the GPU. Fragments
// outside the target or the [0, 1] depth range are discarded, which is what
// clipping would have done.
//
// Parameters:
//   - x, y: texel coordinates
//   - frag: the fragment to write
//
// Returns:
//   - bool: true if the fragment was stored
func (t *SoftwareTarget) Write(x, y int, frag Fragment) bool {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return false
	}
	if frag.Depth < 0 || frag.Depth > 1 {
		return false
	}
	i := y*t.width + x
	if frag.Depth >= t.depth[i] {
		return false
	}
	t.colour[i] = frag.Colour
	t.normal[i] = frag.Normal
	t.depth[i] = frag.Depth
	return true
}

// TexelAt reads the three planes at (x, y). Coordinates are clamped to the
// target edge, matching clamp-to-edge sampling on the GPU.
//
// Parameters:
//   - x, y: texel coordinates
//
// Returns:
//   - Texel: the sample at the clamped coordinate
func (t *SoftwareTarget) TexelAt(x, y int) Texel {
	x = clamp(x, 0, t.width-1)
	y = clamp(y, 0, t.height-1)
	i := y*t.width + x
	return Texel{
		Colour: t.colour[i],
		Normal: t.normal[i],
		Depth:  t.depth[i],
	}
}

// SampleUV reads the target at a UV coordinate with nearest filtering, the
// same addressing the lighting pass uses on the G-buffer views. UVs map
// (0,0) to the top-left texel and (1,1) to the bottom-right.
//
// Parameters:
//   - u, v: normalized coordinates
//
// Returns:
//   - Texel: the nearest sample, clamped to the edge
func (t *SoftwareTarget) SampleUV(u, v float32) Texel {
	x := int(u * float32(t.width))
	y := int(v * float32(t.height))
	return t.TexelAt(x, y)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
