package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-museum/common"
	"github.com/Carmen-Shannon/oxy-museum/engine/frame"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is anything that can hand the renderer a surface to draw into.
// window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width  int
	height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// The Renderer keeps GPU resources keyed by name: meshes are uploaded once and
// referenced by frame.DrawItem.MeshKey, textures are uploaded (and re-uploaded whenever
// their pixels change) and referenced by frame.OverlayQuad.TextureKey. Each call to
// Render draws one complete frame.Frame.
type Renderer interface {
	// UploadMesh creates GPU buffers for a mesh under key, replacing any previous upload.
	//
	// Parameters:
	//   - key: the mesh key
	//   - mesh: the mesh to upload
	//
	// Returns:
	//   - error: an error if the mesh is nil or buffer creation fails
	UploadMesh(key string, mesh *model.Mesh) error

	// UploadTexture creates or updates an RGBA texture under key.
	//
	// Parameters:
	//   - key: the texture key
	//   - data: tightly packed RGBA pixels
	//
	// Returns:
	//   - error: an error if the data is empty or texture creation fails
	UploadTexture(key string, data common.TextureStagingData) error

	// Render draws one frame. Draws referencing unknown meshes and overlays referencing
	// unknown textures are skipped.
	//
	// Parameters:
	//   - f: the frame to draw
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or presented
	Render(f *frame.Frame) error

	// Resize configures the underlying backend to handle a new surface size.
	// Zero-sized surfaces (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Release frees every GPU resource.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into the surface provided by src.
// Panics if the GPU adapter or device cannot be acquired.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - src: the window or other surface provider
//   - options: functional options for present mode, MSAA and adapter selection
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(backendType RendererBackendType, src SurfaceSource, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		width:       src.Width(),
		height:      src.Height(),
	}

	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(src.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(r.width, r.height)
	return r
}

func (r *renderer) UploadMesh(key string, mesh *model.Mesh) error {
	if mesh == nil {
		return fmt.Errorf("mesh %q is nil", key)
	}
	return r.backend.UploadMesh(key, mesh)
}

func (r *renderer) UploadTexture(key string, data common.TextureStagingData) error {
	if data.Width == 0 || data.Height == 0 || len(data.Pixels) < int(data.Width*data.Height*4) {
		return fmt.Errorf("texture %q has no pixel data", key)
	}
	return r.backend.UploadTexture(key, data)
}

func (r *renderer) Render(f *frame.Frame) error {
	r.mu.Lock()
	w, h := r.width, r.height
	r.mu.Unlock()
	if w == 0 || h == 0 {
		return nil
	}
	return r.backend.RenderFrame(f)
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		r.mu.Lock()
		r.width, r.height = 0, 0
		r.mu.Unlock()
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Release() {
	r.backend.Release()
}
