package gbuffer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// G-buffer attachment formats. The geometry pass renders into all three;
// the lighting pass binds the views read-only and resolves them to the
// swapchain.
const (
	// ColourFormat holds the surface's flat RGBA colour.
	ColourFormat = wgpu.TextureFormatRGBA8Unorm
	// NormalFormat holds world-space normals. Components can be negative,
	// so a float format is required; 16 bits per channel keeps edge
	// detection stable without paying for full RGBA32Float.
	NormalFormat = wgpu.TextureFormatRGBA16Float
	// DepthFormat is both the geometry pass depth test target and the
	// depth input the edge-darkening pass samples.
	DepthFormat = wgpu.TextureFormatDepth32Float
)

// Descriptor describes the dimensions of a G-buffer. All three attachments
// share the same extent; the lighting pass assumes texel-aligned sampling.
type Descriptor struct {
	Width  uint32
	Height uint32
}

// Validate checks that the descriptor describes a usable G-buffer.
//
// Returns:
//   - error: an error if either dimension is zero
func (d Descriptor) Validate() error {
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("g-buffer dimensions must be non-zero, got %dx%d", d.Width, d.Height)
	}
	return nil
}

// TexelSize returns the size of one texel in UV space, used by the lighting
// shader to step to neighbouring depth samples.
//
// Returns:
//   - [2]float32: (1/width, 1/height)
func (d Descriptor) TexelSize() [2]float32 {
	return [2]float32{1 / float32(d.Width), 1 / float32(d.Height)}
}

// Attachments holds the GPU textures and views of one G-buffer. Views are
// created once per (re)size and shared by the geometry render pass (as
// attachments) and the lighting bind group (as sampled inputs).
type Attachments struct {
	Colour     *wgpu.Texture
	Normal     *wgpu.Texture
	Depth      *wgpu.Texture
	ColourView *wgpu.TextureView
	NormalView *wgpu.TextureView
	DepthView  *wgpu.TextureView
}

// CreateAttachments allocates the three G-buffer textures and their views
// on the given device. Colour and normal get render-attachment plus
// texture-binding usage; depth additionally feeds the edge-darkening pass,
// so it carries texture-binding usage too.
//
// Parameters:
//   - device: the WebGPU device
//   - desc: the G-buffer dimensions
//
// Returns:
//   - *Attachments: the allocated textures and views
//   - error: an error if validation or any allocation fails
func CreateAttachments(device *wgpu.Device, desc Descriptor) (*Attachments, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	size := wgpu.Extent3D{
		Width:              desc.Width,
		Height:             desc.Height,
		DepthOrArrayLayers: 1,
	}
	usage := wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding

	a := &Attachments{}
	for _, plane := range []struct {
		label  string
		format wgpu.TextureFormat
		tex    **wgpu.Texture
		view   **wgpu.TextureView
	}{
		{"GBuffer Colour", ColourFormat, &a.Colour, &a.ColourView},
		{"GBuffer Normal", NormalFormat, &a.Normal, &a.NormalView},
		{"GBuffer Depth", DepthFormat, &a.Depth, &a.DepthView},
	} {
		tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         plane.label,
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     wgpu.TextureDimension2D,
			Format:        plane.format,
			Usage:         usage,
		})
		if err != nil {
			a.Release()
			return nil, fmt.Errorf("failed to create %s texture: %w", plane.label, err)
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			a.Release()
			return nil, fmt.Errorf("failed to create %s view: %w", plane.label, err)
		}
		*plane.tex = tex
		*plane.view = view
	}
	return a, nil
}

// Release frees all textures and views. Safe to call on a partially
// constructed Attachments.
func (a *Attachments) Release() {
	for _, view := range []*wgpu.TextureView{a.ColourView, a.NormalView, a.DepthView} {
		if view != nil {
			view.Release()
		}
	}
	for _, tex := range []*wgpu.Texture{a.Colour, a.Normal, a.Depth} {
		if tex != nil {
			tex.Release()
		}
	}
	a.Colour, a.Normal, a.Depth = nil, nil, nil
	a.ColourView, a.NormalView, a.DepthView = nil, nil, nil
}
