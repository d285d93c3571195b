package renderer

import (
	"github.com/Carmen-Shannon/oxy-museum/common"
	"github.com/Carmen-Shannon/oxy-museum/engine/frame"
	"github.com/Carmen-Shannon/oxy-museum/engine/model"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the contract a GPU API implementation fulfils for the Renderer.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and size-dependent attachments.
	//
	// Parameters:
	//   - width, height: surface size in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets how frames are delivered to the display. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// UploadMesh creates vertex and index buffers for a mesh under the given key,
	// replacing any previous mesh with that key.
	//
	// Parameters:
	//   - key: the mesh key
	//   - mesh: the mesh to upload
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadMesh(key string, mesh *model.Mesh) error

	// UploadTexture creates or updates an RGBA texture under the given key.
	// The texture is recreated when the size changes and rewritten in place otherwise.
	//
	// Parameters:
	//   - key: the texture key
	//   - data: tightly packed RGBA pixels
	//
	// Returns:
	//   - error: an error if texture creation fails
	UploadTexture(key string, data common.TextureStagingData) error

	// RenderFrame encodes, submits and presents one frame.
	//
	// Parameters:
	//   - f: the frame to draw
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	RenderFrame(f *frame.Frame) error

	// Release frees every GPU resource held by the backend.
	Release()
}
