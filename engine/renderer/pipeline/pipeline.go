package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/erebus-go/engine/gbuffer"
	"github.com/Carmen-Shannon/erebus-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/erebus-go/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexStride is the byte stride of one vertex record in the geometry
// pass vertex buffer: position (12) + normal (12) + instance index (4).
const GPUVertexStride = 28

// pipelineImpl is the implementation of the Pipeline interface.
type pipelineImpl struct {
	key            string
	shader         shader.Shader
	vertexLayouts  []wgpu.VertexBufferLayout
	bindGroupDesc  wgpu.BindGroupLayoutDescriptor
	colourTargets  []wgpu.ColorTargetState
	depthStencil   *wgpu.DepthStencilState
	renderPipeline *wgpu.RenderPipeline
}

// Pipeline defines the interface for one render pass configuration: a
// validated shader plus everything the device needs to build the concrete
// render pipeline. Pipelines are declarative until a backend registers
// them; the GPU object is attached afterwards via SetRenderPipeline.
type Pipeline interface {
	// Key returns the pipeline's identifier, used for labels and caching.
	//
	// Returns:
	//   - string: the pipeline key
	Key() string

	// Shader returns the pipeline's validated shader.
	//
	// Returns:
	//   - shader.Shader: the shader
	Shader() shader.Shader

	// VertexLayouts returns the vertex buffer layouts the vertex stage
	// consumes. Empty for full-screen passes.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, buffer slot order
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor returns the layout of bind group 0, the
	// only group either pass uses.
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
	BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor

	// ColourTargets returns the colour attachment states in location order.
	//
	// Returns:
	//   - []wgpu.ColorTargetState: the colour targets
	ColourTargets() []wgpu.ColorTargetState

	// DepthStencil returns the depth state, or nil for passes without a
	// depth attachment.
	//
	// Returns:
	//   - *wgpu.DepthStencilState: the depth state
	DepthStencil() *wgpu.DepthStencilState

	// RenderPipeline returns the registered GPU pipeline, or nil before
	// registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline attaches the GPU pipeline created by a backend.
	//
	// Parameters:
	//   - p: the created GPU pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipelineImpl{}

// geometryVertexLayout describes the packed vertex record the geometry
// shaders consume: Float32x3 position, Float32x3 normal, Uint32 instance
// index, 28-byte stride.
func geometryVertexLayout() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: GPUVertexStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatUint32, Offset: 24, ShaderLocation: 2},
			},
		},
	}
}

// NewGeometryPipeline builds the geometry pass pipeline for the given
// variant. The standard variant renders into the colour and normal
// G-buffer attachments; the debug variant renders its tint into the colour
// attachment only. Both depth-test against the G-buffer depth plane with
// nearer-wins semantics.
//
// Parameters:
//   - variant: which geometry behaviour to build
//
// Returns:
//   - Pipeline: the declarative pipeline
//   - error: an error if the variant's shader fails validation
func NewGeometryPipeline(variant shading.GeometryVariant) (Pipeline, error) {
	s, err := shader.NewShader("geometry_"+variant.String(), variant.Source())
	if err != nil {
		return nil, err
	}

	targets := []wgpu.ColorTargetState{
		{Format: gbuffer.ColourFormat, WriteMask: wgpu.ColorWriteMaskAll},
	}
	if variant == shading.GeometryStandard {
		targets = append(targets, wgpu.ColorTargetState{
			Format:    gbuffer.NormalFormat,
			WriteMask: wgpu.ColorWriteMaskAll,
		})
	}

	return &pipelineImpl{
		key:           "geometry_" + variant.String(),
		shader:        s,
		vertexLayouts: geometryVertexLayout(),
		bindGroupDesc: wgpu.BindGroupLayoutDescriptor{
			Label: "Geometry Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex,
					Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageVertex,
					Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
				},
			},
		},
		colourTargets: targets,
		depthStencil: &wgpu.DepthStencilState{
			Format:            gbuffer.DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	}, nil
}

// NewLightingPipeline builds the full-screen lighting pass pipeline for the
// given variant. No vertex buffers are bound; the shader derives the
// covering triangle from the vertex index. The edge-highlighted variant
// additionally binds the G-buffer depth plane.
//
// Parameters:
//   - variant: which lighting behaviour to build
//   - surfaceFormat: the swapchain format the pass renders into
//
// Returns:
//   - Pipeline: the declarative pipeline
//   - error: an error if the variant's shader fails validation
func NewLightingPipeline(variant shading.LightingVariant, surfaceFormat wgpu.TextureFormat) (Pipeline, error) {
	s, err := shader.NewShader("lighting_"+variant.String(), variant.Source())
	if err != nil {
		return nil, err
	}

	entries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
	}
	samplerBinding := uint32(2)
	if variant == shading.LightingEdgeHighlighted {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    2,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeDepth,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		})
		samplerBinding = 3
	}
	entries = append(entries, wgpu.BindGroupLayoutEntry{
		Binding:    samplerBinding,
		Visibility: wgpu.ShaderStageFragment,
		Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeNonFiltering},
	})

	return &pipelineImpl{
		key:    "lighting_" + variant.String(),
		shader: s,
		bindGroupDesc: wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("Lighting %s Bind Group Layout", variant),
			Entries: entries,
		},
		colourTargets: []wgpu.ColorTargetState{
			{Format: surfaceFormat, WriteMask: wgpu.ColorWriteMaskAll},
		},
	}, nil
}

func (p *pipelineImpl) Key() string {
	return p.key
}

func (p *pipelineImpl) Shader() shader.Shader {
	return p.shader
}

func (p *pipelineImpl) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipelineImpl) BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return p.bindGroupDesc
}

func (p *pipelineImpl) ColourTargets() []wgpu.ColorTargetState {
	return p.colourTargets
}

func (p *pipelineImpl) DepthStencil() *wgpu.DepthStencilState {
	return p.depthStencil
}

func (p *pipelineImpl) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipelineImpl) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
