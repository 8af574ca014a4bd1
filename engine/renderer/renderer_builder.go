package renderer

import (
	"github.com/Carmen-Shannon/erebus-go/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
)

type rendererBuilder struct {
	surfaceDescriptor    *wgpu.SurfaceDescriptor
	width                int
	height               int
	geometryVariant      shading.GeometryVariant
	lightingVariant      shading.LightingVariant
	clearColour          wgpu.Color
	forceFallbackAdapter bool
}

// RendererBuilderOption configures a Renderer during creation.
type RendererBuilderOption func(*rendererBuilder)

// WithSurfaceDescriptor sets the window surface the renderer presents to.
// Required.
//
// Parameters:
//   - sd: the surface descriptor from the windowing layer
//
// Returns:
//   - RendererBuilderOption: the builder option
func WithSurfaceDescriptor(sd *wgpu.SurfaceDescriptor) RendererBuilderOption {
	return func(b *rendererBuilder) {
		b.surfaceDescriptor = sd
	}
}

// WithSize sets the initial surface size in pixels.
//
// Parameters:
//   - width, height: the surface size
//
// Returns:
//   - RendererBuilderOption: the builder option
func WithSize(width, height int) RendererBuilderOption {
	return func(b *rendererBuilder) {
		b.width = width
		b.height = height
	}
}

// WithGeometryVariant selects the geometry pass behaviour.
//
// Parameters:
//   - v: the variant
//
// Returns:
//   - RendererBuilderOption: the builder option
func WithGeometryVariant(v shading.GeometryVariant) RendererBuilderOption {
	return func(b *rendererBuilder) {
		b.geometryVariant = v
	}
}

// WithLightingVariant selects the lighting pass behaviour.
//
// Parameters:
//   - v: the variant
//
// Returns:
//   - RendererBuilderOption: the builder option
func WithLightingVariant(v shading.LightingVariant) RendererBuilderOption {
	return func(b *rendererBuilder) {
		b.lightingVariant = v
	}
}

// WithClearColour sets the surface clear colour for the lighting pass.
//
// Parameters:
//   - r, g, b, a: the clear colour components
//
// Returns:
//   - RendererBuilderOption: the builder option
func WithClearColour(r, g, bl, a float64) RendererBuilderOption {
	return func(b *rendererBuilder) {
		b.clearColour = wgpu.Color{R: r, G: g, B: bl, A: a}
	}
}

// WithForceFallbackAdapter forces the software adapter, mainly for CI.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: the builder option
func WithForceFallbackAdapter(force bool) RendererBuilderOption {
	return func(b *rendererBuilder) {
		b.forceFallbackAdapter = force
	}
}

// NewRenderer creates a deferred Renderer with the provided options
// applied. Panics if no surface descriptor is supplied; initializes the
// device, configures the surface and G-buffer, and builds both pipeline
// sets before returning.
//
// Parameters:
//   - opts: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the ready renderer
//   - error: an error if surface or pipeline setup fails
func NewRenderer(opts ...RendererBuilderOption) (Renderer, error) {
	b := &rendererBuilder{
		width:           800,
		height:          600,
		clearColour:     wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		geometryVariant: shading.GeometryStandard,
		lightingVariant: shading.LightingPlain,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.surfaceDescriptor == nil {
		panic("surface descriptor must be set to create a renderer")
	}

	backend := newWGPURendererBackend(b.surfaceDescriptor, b.forceFallbackAdapter, b.geometryVariant, b.lightingVariant, b.clearColour)
	r := &rendererImpl{
		backend:         backend,
		geometryVariant: b.geometryVariant,
		lightingVariant: b.lightingVariant,
		width:           b.width,
		height:          b.height,
	}
	if err := backend.ConfigureSurface(b.width, b.height); err != nil {
		backend.Release()
		return nil, err
	}
	if err := backend.RegisterPipelines(); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}
