package renderer

import (
	"github.com/Carmen-Shannon/erebus-go/engine/camera"
	"github.com/Carmen-Shannon/erebus-go/engine/instance"
	"github.com/Carmen-Shannon/erebus-go/engine/shading"
)

// rendererImpl is the implementation of the Renderer interface.
type rendererImpl struct {
	backend         wgpuRendererBackend
	geometryVariant shading.GeometryVariant
	lightingVariant shading.LightingVariant
	width           int
	height          int
}

// Renderer defines the interface for the deferred renderer: a geometry pass
// that rasterizes the frame's flattened vertex stream into the G-buffer,
// followed by a full-screen lighting pass that resolves it to the surface.
// Variant selection is fixed at construction; each variant pair is its own
// pipeline set, never a runtime branch inside a pass.
type Renderer interface {
	// Resize reconfigures the surface and G-buffer to a new size.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	//
	// Returns:
	//   - error: an error if reconfiguration fails
	Resize(width, height int) error

	// UploadGeometry uploads the frame-flattened vertex and index streams.
	// Instance indices inside the vertex data must be validated against
	// the table before upload; the shader reads them unchecked.
	//
	// Parameters:
	//   - vertexData: packed 28-byte vertex records
	//   - indexData: packed uint32 indices
	//   - indexCount: number of indices to draw
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadGeometry(vertexData, indexData []byte, indexCount int) error

	// SubmitFrame uploads the per-frame shared state and renders: the view
	// uniform, the instance table, then both passes.
	//
	// Parameters:
	//   - view: the camera's view uniform for this frame
	//   - table: the frame's instance table
	//
	// Returns:
	//   - error: an error if upload or rendering fails
	SubmitFrame(view camera.GPUViewUniform, table *instance.Table) error

	// GeometryVariant returns the geometry behaviour this renderer was
	// built with.
	//
	// Returns:
	//   - shading.GeometryVariant: the variant
	GeometryVariant() shading.GeometryVariant

	// LightingVariant returns the lighting behaviour this renderer was
	// built with.
	//
	// Returns:
	//   - shading.LightingVariant: the variant
	LightingVariant() shading.LightingVariant

	// AspectRatio returns the current surface aspect ratio.
	//
	// Returns:
	//   - float32: width divided by height
	AspectRatio() float32

	// Release frees every GPU resource the renderer holds.
	Release()
}

var _ Renderer = &rendererImpl{}

func (r *rendererImpl) Resize(width, height int) error {
	r.width, r.height = width, height
	return r.backend.ConfigureSurface(width, height)
}

func (r *rendererImpl) UploadGeometry(vertexData, indexData []byte, indexCount int) error {
	return r.backend.UploadGeometry(vertexData, indexData, indexCount)
}

func (r *rendererImpl) SubmitFrame(view camera.GPUViewUniform, table *instance.Table) error {
	r.backend.WriteView(view.Marshal())
	if err := r.backend.WriteInstances(table.Marshal()); err != nil {
		return err
	}
	return r.backend.RenderFrame()
}

func (r *rendererImpl) GeometryVariant() shading.GeometryVariant {
	return r.geometryVariant
}

func (r *rendererImpl) LightingVariant() shading.LightingVariant {
	return r.lightingVariant
}

func (r *rendererImpl) AspectRatio() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

func (r *rendererImpl) Release() {
	r.backend.Release()
}
