package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/erebus-go/engine/gbuffer"
	"github.com/Carmen-Shannon/erebus-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/erebus-go/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuRendererBackendImpl is the implementation of the wgpuRendererBackend interface.
type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	gbufferDesc   gbuffer.Descriptor
	attachments   *gbuffer.Attachments
	sampler       *wgpu.Sampler

	geometryVariant shading.GeometryVariant
	lightingVariant shading.LightingVariant

	geometryPipeline pipeline.Pipeline
	lightingPipeline pipeline.Pipeline
	geometryLayout   *wgpu.BindGroupLayout
	lightingLayout   *wgpu.BindGroupLayout
	geometryGroup    *wgpu.BindGroup
	lightingGroup    *wgpu.BindGroup

	viewBuffer       *wgpu.Buffer
	instanceBuffer   *wgpu.Buffer
	instanceCapacity uint64
	vertexBuffer     *wgpu.Buffer
	indexBuffer      *wgpu.Buffer
	indexCount       uint32

	clearColour wgpu.Color
}

// wgpuRendererBackend is the device-facing half of the renderer: surface
// and G-buffer lifecycle, buffer uploads, and the two-pass frame encoding.
type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and rebuilds the
	// G-buffer attachments at the given size. Must run before the first
	// frame and after every resize.
	//
	// Parameters:
	//   - width, height: the surface size in pixels
	//
	// Returns:
	//   - error: an error if attachment creation fails
	ConfigureSurface(width, height int) error

	// RegisterPipelines builds the geometry and lighting GPU pipelines for
	// the backend's variants. Requires a configured surface.
	//
	// Returns:
	//   - error: an error if shader validation or pipeline creation fails
	RegisterPipelines() error

	// UploadGeometry uploads the frame-flattened vertex and index streams.
	//
	// Parameters:
	//   - vertexData: packed 28-byte vertex records
	//   - indexData: packed uint32 indices
	//   - indexCount: number of indices to draw
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadGeometry(vertexData, indexData []byte, indexCount int) error

	// WriteView writes the 64-byte view uniform for this frame.
	//
	// Parameters:
	//   - data: the marshaled view uniform
	WriteView(data []byte)

	// WriteInstances writes the frame's instance table, growing the
	// storage buffer when the table does.
	//
	// Parameters:
	//   - data: the marshaled instance records, 144 bytes each
	//
	// Returns:
	//   - error: an error if buffer creation fails
	WriteInstances(data []byte) error

	// RenderFrame encodes the geometry pass into the G-buffer, the
	// lighting pass onto the swapchain, submits both, and presents.
	//
	// Returns:
	//   - error: an error if the swapchain texture cannot be acquired
	RenderFrame() error

	// Release frees every GPU resource the backend holds.
	Release()
}

var _ wgpuRendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, geometryVariant shading.GeometryVariant, lightingVariant shading.LightingVariant, clearColour wgpu.Color) wgpuRendererBackend {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:              &sync.Mutex{},
		instance:        wgpu.CreateInstance(nil),
		geometryVariant: geometryVariant,
		lightingVariant: lightingVariant,
		clearColour:     clearColour,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	// All three G-buffer planes share the surface extent; the lighting
	// pass depends on texel-aligned sampling between them.
	if b.attachments != nil {
		b.attachments.Release()
	}
	b.gbufferDesc = gbuffer.Descriptor{Width: uint32(width), Height: uint32(height)}
	attachments, err := gbuffer.CreateAttachments(b.device, b.gbufferDesc)
	if err != nil {
		return err
	}
	b.attachments = attachments

	// The lighting bind group references the old views; rebuild it.
	if b.lightingLayout != nil {
		return b.createLightingBindGroup()
	}
	return nil
}

func (b *wgpuRendererBackendImpl) RegisterPipelines() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return fmt.Errorf("surface must be configured before registering pipelines")
	}

	geometry, err := pipeline.NewGeometryPipeline(b.geometryVariant)
	if err != nil {
		return err
	}
	lighting, err := pipeline.NewLightingPipeline(b.lightingVariant, *b.surfaceFormat)
	if err != nil {
		return err
	}

	b.geometryLayout, err = b.registerPipeline(geometry)
	if err != nil {
		return err
	}
	b.lightingLayout, err = b.registerPipeline(lighting)
	if err != nil {
		return err
	}
	b.geometryPipeline = geometry
	b.lightingPipeline = lighting

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "GBuffer Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return err
	}
	b.sampler = samp

	return b.createLightingBindGroup()
}

// registerPipeline turns a declarative pipeline into a GPU render pipeline
// and returns its bind group layout for later bind group creation.
func (b *wgpuRendererBackendImpl) registerPipeline(p pipeline.Pipeline) (*wgpu.BindGroupLayout, error) {
	s := p.Shader()
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: s.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.Source(),
		},
	})
	if err != nil {
		return nil, err
	}
	defer module.Release()

	desc := p.BindGroupLayoutDescriptor()
	layout, err := b.device.CreateBindGroupLayout(&desc)
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.Key() + " Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return nil, err
	}
	defer pipelineLayout.Release()

	var fragment *wgpu.FragmentState
	if targets := p.ColourTargets(); len(targets) > 0 {
		fragment = &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.FragmentEntryPoint(),
			Targets:    targets,
		}
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.Key() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.VertexEntryPoint(),
			Buffers:    p.VertexLayouts(),
		},
		Fragment: fragment,
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: p.DepthStencil(),
	})
	if err != nil {
		return nil, err
	}

	p.SetRenderPipeline(created)
	return layout, nil
}

func (b *wgpuRendererBackendImpl) UploadGeometry(vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.vertexBuffer != nil {
		b.vertexBuffer.Release()
		b.vertexBuffer = nil
	}
	if b.indexBuffer != nil {
		b.indexBuffer.Release()
		b.indexBuffer = nil
	}

	if len(vertexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Frame Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, vertexData)
		b.vertexBuffer = buf
	}

	if len(indexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Frame Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		b.indexBuffer = buf
	}

	b.indexCount = uint32(indexCount)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteView(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.viewBuffer == nil {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "View Uniform Buffer",
			Size:  uint64(len(data)),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			panic(err)
		}
		b.viewBuffer = buf
		if err := b.createGeometryBindGroup(); err != nil {
			panic(err)
		}
	}
	b.queue.WriteBuffer(b.viewBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) WriteInstances(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	needed := uint64(len(data))
	if b.instanceBuffer == nil || needed > b.instanceCapacity {
		if b.instanceBuffer != nil {
			b.instanceBuffer.Release()
		}
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Instance Table Buffer",
			Size:  needed,
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.instanceBuffer = buf
		b.instanceCapacity = needed

		// The storage binding changed identity; rebuild the bind group.
		if err := b.createGeometryBindGroup(); err != nil {
			return err
		}
	}
	b.queue.WriteBuffer(b.instanceBuffer, 0, data)
	return nil
}

// createGeometryBindGroup binds the view uniform and instance table for the
// geometry pass. Requires both buffers to exist.
func (b *wgpuRendererBackendImpl) createGeometryBindGroup() error {
	if b.viewBuffer == nil || b.instanceBuffer == nil || b.geometryLayout == nil {
		return nil
	}
	if b.geometryGroup != nil {
		b.geometryGroup.Release()
	}
	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Geometry Bind Group",
		Layout: b.geometryLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.viewBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.instanceBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}
	b.geometryGroup = group
	return nil
}

// createLightingBindGroup binds the G-buffer views and sampler for the
// lighting pass. The edge-highlighted variant adds the depth view.
func (b *wgpuRendererBackendImpl) createLightingBindGroup() error {
	if b.lightingLayout == nil || b.attachments == nil || b.sampler == nil {
		return nil
	}
	if b.lightingGroup != nil {
		b.lightingGroup.Release()
	}

	entries := []wgpu.BindGroupEntry{
		{Binding: 0, TextureView: b.attachments.ColourView},
		{Binding: 1, TextureView: b.attachments.NormalView},
	}
	samplerBinding := uint32(2)
	if b.lightingVariant == shading.LightingEdgeHighlighted {
		entries = append(entries, wgpu.BindGroupEntry{Binding: 2, TextureView: b.attachments.DepthView})
		samplerBinding = 3
	}
	entries = append(entries, wgpu.BindGroupEntry{Binding: samplerBinding, Sampler: b.sampler})

	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Lighting Bind Group",
		Layout:  b.lightingLayout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	b.lightingGroup = group
	return nil
}

func (b *wgpuRendererBackendImpl) RenderFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.geometryGroup == nil || b.lightingGroup == nil {
		return fmt.Errorf("frame data not uploaded before rendering")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	surfaceView, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	defer func() {
		surfaceView.Release()
		surfaceTexture.Release()
	}()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	// Geometry pass: rasterize the frame's vertex stream into the
	// G-buffer. The debug variant writes a single attachment.
	colorAttachments := []wgpu.RenderPassColorAttachment{
		{
			View:       b.attachments.ColourView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{},
		},
	}
	if b.geometryVariant == shading.GeometryStandard {
		colorAttachments = append(colorAttachments, wgpu.RenderPassColorAttachment{
			View:       b.attachments.NormalView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{},
		})
	}
	geometryPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            "Geometry Pass",
		ColorAttachments: colorAttachments,
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.attachments.DepthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	if b.indexCount > 0 && b.vertexBuffer != nil && b.indexBuffer != nil {
		geometryPass.SetPipeline(b.geometryPipeline.RenderPipeline())
		geometryPass.SetBindGroup(0, b.geometryGroup, nil)
		geometryPass.SetVertexBuffer(0, b.vertexBuffer, 0, wgpu.WholeSize)
		geometryPass.SetIndexBuffer(b.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		geometryPass.DrawIndexed(b.indexCount, 1, 0, 0, 0)
	}
	geometryPass.End()

	// Lighting pass: resolve the G-buffer to the swapchain with a single
	// full-screen triangle. The pass-to-pass ordering is the barrier the
	// G-buffer reads rely on.
	lightingPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Lighting Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       surfaceView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: b.clearColour,
			},
		},
	})
	lightingPass.SetPipeline(b.lightingPipeline.RenderPipeline())
	lightingPass.SetBindGroup(0, b.lightingGroup, nil)
	lightingPass.Draw(3, 1, 0, 0)
	lightingPass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, group := range []*wgpu.BindGroup{b.geometryGroup, b.lightingGroup} {
		if group != nil {
			group.Release()
		}
	}
	for _, buf := range []*wgpu.Buffer{b.viewBuffer, b.instanceBuffer, b.vertexBuffer, b.indexBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	if b.sampler != nil {
		b.sampler.Release()
	}
	if b.attachments != nil {
		b.attachments.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
}
