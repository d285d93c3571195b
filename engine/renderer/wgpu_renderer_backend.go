package renderer

import (
	_ "embed"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/common"
	"github.com/Carmen-Shannon/oxy-museum/engine/light"
	"github.com/Carmen-Shannon/oxy-museum/engine/frame"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/mesh.wgsl
var meshShaderSource string

//go:embed assets/overlay.wgsl
var overlayShaderSource string

// gpuMesh holds the buffers of one uploaded mesh.
type gpuMesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

// gpuTexture holds one overlay texture and the bind group that samples it.
type gpuTexture struct {
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup
	width     uint32
	height    uint32
}

// uniformSlot is a small uniform buffer with its own bind group. Slots are reused
// frame to frame; one slot backs one draw.
type uniformSlot struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor
	width                int
	height               int

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	// Layouts and shared resources, created once.
	frameLayout    *wgpu.BindGroupLayout
	objectLayout   *wgpu.BindGroupLayout
	overlayLayout  *wgpu.BindGroupLayout
	textureLayout  *wgpu.BindGroupLayout
	frameBuffer    *wgpu.Buffer
	lightBuffer    *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup
	sampler        *wgpu.Sampler

	// Pipelines depend on the surface format and are built on first configure.
	meshPipeline    *wgpu.RenderPipeline
	overlayPipeline *wgpu.RenderPipeline

	meshes       map[string]*gpuMesh
	textures     map[string]*gpuTexture
	objectSlots  []uniformSlot
	overlaySlots []uniformSlot
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) RendererBackend {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		meshes:      make(map[string]*gpuMesh),
		textures:    make(map[string]*gpuTexture),
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
		Label: "Museum Device",
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.initSharedResources(); err != nil {
		panic(fmt.Sprintf("failed to create renderer resources: %v", err))
	}
	return b
}

// initSharedResources creates the bind group layouts, the per-frame buffers and the overlay sampler.
func (b *wgpuRendererBackendImpl) initSharedResources() error {
	var err error
	b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: frameUniformSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: uint64(light.LightBufferSize()),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("frame layout: %w", err)
	}

	b.objectLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Object Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: objectUniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("object layout: %w", err)
	}

	b.overlayLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Overlay Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: overlayUniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("overlay layout: %w", err)
	}

	b.textureLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Overlay Texture Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
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
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("texture layout: %w", err)
	}

	b.frameBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  frameUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("frame buffer: %w", err)
	}
	b.lightBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Light Storage Buffer",
		Size:  uint64(light.LightBufferSize()),
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("light buffer: %w", err)
	}
	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.frameBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.lightBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("frame bind group: %w", err)
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Overlay Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("overlay sampler: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if b.surfaceFormat == nil {
		b.surfaceFormat = &capabilities.Formats[0]
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.width, b.height = width, height

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// Create the MSAA texture that the render pass draws into; the resolved
		// result is written to the swapchain view as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is
	// set per-frame to the swapchain view. When disabled, View is set
	// per-frame to the swapchain view and ResolveTarget remains nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1.0},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if b.meshPipeline == nil {
		if err := b.createPipelines(); err != nil {
			panic(fmt.Sprintf("failed to create pipelines: %v", err))
		}
	}
}

// releaseAttachments frees the size-dependent textures. Caller must hold b.mu.
func (b *wgpuRendererBackendImpl) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

// createPipelines builds the lit mesh pipeline and the overlay pipeline. Caller must hold b.mu.
func (b *wgpuRendererBackendImpl) createPipelines() error {
	meshModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "mesh.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: meshShaderSource},
	})
	if err != nil {
		return fmt.Errorf("mesh shader: %w", err)
	}
	overlayModule, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "overlay.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: overlayShaderSource},
	})
	if err != nil {
		return fmt.Errorf("overlay shader: %w", err)
	}

	meshLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Mesh Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.objectLayout},
	})
	if err != nil {
		return err
	}
	overlayLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Overlay Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.overlayLayout, b.textureLayout},
	})
	if err != nil {
		return err
	}

	multisample := wgpu.MultisampleState{
		Count: uint32(b.sampleCount),
		Mask:  0xFFFFFFFF,
	}

	b.meshPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Mesh Render Pipeline",
		Layout: meshLayout,
		Vertex: wgpu.VertexState{
			Module:     meshModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: model.VertexStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     meshModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: *b.surfaceFormat, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone, // walls and exhibits are seen from both sides
		},
		Multisample: multisample,
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return fmt.Errorf("mesh pipeline: %w", err)
	}

	// Overlay textures hold premultiplied alpha, so the source factor is One.
	blend := wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
	b.overlayPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Overlay Render Pipeline",
		Layout: overlayLayout,
		Vertex: wgpu.VertexState{
			Module:     overlayModule,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     overlayModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: *b.surfaceFormat, Blend: &blend, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: multisample,
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: false,
			DepthCompare:      wgpu.CompareFunctionAlways,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return fmt.Errorf("overlay pipeline: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) UploadMesh(key string, mesh *model.Mesh) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexData := model.MarshalVertices(mesh.Vertices)
	indexData := model.MarshalIndices(mesh.Indices)
	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("mesh %q has no geometry", key)
	}

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: key + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("vertex buffer for %q: %w", key, err)
	}
	b.queue.WriteBuffer(vb, 0, vertexData)

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: key + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return fmt.Errorf("index buffer for %q: %w", key, err)
	}
	b.queue.WriteBuffer(ib, 0, indexData)

	if old, ok := b.meshes[key]; ok {
		old.vertexBuffer.Release()
		old.indexBuffer.Release()
	}
	b.meshes[key] = &gpuMesh{
		vertexBuffer: vb,
		indexBuffer:  ib,
		indexCount:   uint32(len(mesh.Indices)),
	}
	return nil
}

func (b *wgpuRendererBackendImpl) UploadTexture(key string, data common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.textures[key]
	if !ok || t.width != data.Width || t.height != data.Height {
		if ok {
			releaseTexture(t)
		}
		created, err := b.createTexture(key, data.Width, data.Height)
		if err != nil {
			delete(b.textures, key)
			return err
		}
		t = created
		b.textures[key] = t
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&wgpu.Extent3D{
			Width:              data.Width,
			Height:             data.Height,
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

// createTexture allocates a sampled RGBA texture and its bind group. Caller must hold b.mu.
func (b *wgpuRendererBackendImpl) createTexture(key string, width, height uint32) (*gpuTexture, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     key + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", key, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("texture view %q: %w", key, err)
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  key + " Bind Group",
		Layout: b.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: b.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, fmt.Errorf("texture bind group %q: %w", key, err)
	}
	return &gpuTexture{texture: tex, view: view, bindGroup: bg, width: width, height: height}, nil
}

func releaseTexture(t *gpuTexture) {
	t.bindGroup.Release()
	t.view.Release()
	t.texture.Release()
}

// slot returns the i-th uniform slot from pool, growing it as needed. Caller must hold b.mu.
func (b *wgpuRendererBackendImpl) slot(pool *[]uniformSlot, i int, size uint64, layout *wgpu.BindGroupLayout, label string) (uniformSlot, error) {
	for len(*pool) <= i {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("%s Uniform %d", label, len(*pool)),
			Size:  size,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return uniformSlot{}, err
		}
		bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   fmt.Sprintf("%s Bind Group %d", label, len(*pool)),
			Layout:  layout,
			Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize}},
		})
		if err != nil {
			buf.Release()
			return uniformSlot{}, err
		}
		*pool = append(*pool, uniformSlot{buffer: buf, bindGroup: bg})
	}
	return (*pool)[i], nil
}

func (b *wgpuRendererBackendImpl) RenderFrame(f *frame.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return fmt.Errorf("surface not configured")
	}

	// Stage every uniform before encoding; queue writes land before the submit below.
	frameUniform := GPUFrameUniform{ViewProjection: f.ViewProjection, CameraPosition: f.CameraPosition}
	b.queue.WriteBuffer(b.frameBuffer, 0, frameUniform.Marshal())
	if len(f.Lights) > 0 {
		b.queue.WriteBuffer(b.lightBuffer, 0, f.Lights)
	}

	type meshDraw struct {
		mesh *gpuMesh
		slot uniformSlot
	}
	draws := make([]meshDraw, 0, len(f.Draws))
	for _, d := range f.Draws {
		m, ok := b.meshes[d.MeshKey]
		if !ok {
			continue
		}
		s, err := b.slot(&b.objectSlots, len(draws), objectUniformSize, b.objectLayout, "Object")
		if err != nil {
			return fmt.Errorf("object uniform: %w", err)
		}
		u := NewGPUObjectUniform(d.Model, d.Material)
		b.queue.WriteBuffer(s.buffer, 0, u.Marshal())
		draws = append(draws, meshDraw{mesh: m, slot: s})
	}

	type overlayDraw struct {
		texture *gpuTexture
		slot    uniformSlot
	}
	overlays := make([]overlayDraw, 0, len(f.Overlays))
	for _, o := range f.Overlays {
		t, ok := b.textures[o.TextureKey]
		if !ok || o.Opacity <= 0 {
			continue
		}
		s, err := b.slot(&b.overlaySlots, len(overlays), overlayUniformSize, b.overlayLayout, "Overlay")
		if err != nil {
			return fmt.Errorf("overlay uniform: %w", err)
		}
		u := NewGPUOverlayUniform(o, b.width, b.height)
		b.queue.WriteBuffer(s.buffer, 0, u.Marshal())
		overlays = append(overlays, overlayDraw{texture: t, slot: s})
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	b.renderPassDescriptor.ColorAttachments[0].ClearValue = wgpu.Color{
		R: float64(f.Clear[0]), G: float64(f.Clear[1]), B: float64(f.Clear[2]), A: 1.0,
	}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	if len(draws) > 0 {
		pass.SetPipeline(b.meshPipeline)
		pass.SetBindGroup(0, b.frameBindGroup, nil)
		for _, d := range draws {
			pass.SetBindGroup(1, d.slot.bindGroup, nil)
			pass.SetVertexBuffer(0, d.mesh.vertexBuffer, 0, wgpu.WholeSize)
			pass.SetIndexBuffer(d.mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(d.mesh.indexCount, 1, 0, 0, 0)
		}
	}

	if len(overlays) > 0 {
		pass.SetPipeline(b.overlayPipeline)
		for _, o := range overlays {
			pass.SetBindGroup(0, o.slot.bindGroup, nil)
			pass.SetBindGroup(1, o.texture.bindGroup, nil)
			pass.Draw(6, 1, 0, 0)
		}
	}

	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, m := range b.meshes {
		m.vertexBuffer.Release()
		m.indexBuffer.Release()
		delete(b.meshes, key)
	}
	for key, t := range b.textures {
		releaseTexture(t)
		delete(b.textures, key)
	}
	for _, s := range append(b.objectSlots, b.overlaySlots...) {
		s.bindGroup.Release()
		s.buffer.Release()
	}
	b.objectSlots, b.overlaySlots = nil, nil

	b.releaseAttachments()

	if b.meshPipeline != nil {
		b.meshPipeline.Release()
		b.meshPipeline = nil
	}
	if b.overlayPipeline != nil {
		b.overlayPipeline.Release()
		b.overlayPipeline = nil
	}
	b.frameBindGroup.Release()
	b.frameBuffer.Release()
	b.lightBuffer.Release()
	b.sampler.Release()
	for _, l := range []*wgpu.BindGroupLayout{b.frameLayout, b.objectLayout, b.overlayLayout, b.textureLayout} {
		l.Release()
	}

	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
	log.Printf("[renderer] released GPU resources")
}
