// Package gpu pushes flushed viewport frames to a WebGPU surface.
package gpu

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewport/engine/light"
	"github.com/Carmen-Shannon/oxy-viewport/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// Default reference grid: lines every 5 units out to 50 units from the origin.
const (
	DefaultGridExtent = 50
	DefaultGridStep   = 5
)

// Backend is a renderer.RendererBackend that writes each frame's matrices into a uniform
// buffer, clears the surface and draws a reference grid through that uniform. Callers
// drawing their own geometry bind ViewBuffer and LightBuffer into their pipelines.
type Backend struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	presentMode   wgpu.PresentMode
	width         int
	height        int
	configured    bool

	viewBuffer  *wgpu.Buffer
	lightBuffer *wgpu.Buffer
	grid        *gridPipeline
	gridExtent  float32
	gridStep    float32

	lights               []light.Light
	clearColor           wgpu.Color
	forceFallbackAdapter bool
	logger               *log.Logger
}

var _ renderer.RendererBackend = &Backend{}

// NewBackend creates a WebGPU backend drawing into the surface described by desc.
// The calling goroutine is locked to its OS thread; it must be the thread that owns the window.
//
// Parameters:
//   - desc: the platform surface descriptor, usually window.SurfaceDescriptor()
//   - options: functional options to configure the backend
//
// Returns:
//   - *Backend: the new backend
//   - error: error if no adapter, device or buffer could be created
func NewBackend(desc *wgpu.SurfaceDescriptor, options ...BackendBuilderOption) (*Backend, error) {
	if desc == nil {
		return nil, fmt.Errorf("gpu: nil surface descriptor")
	}
	runtime.LockOSThread()

	b := &Backend{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		lights:      []light.Light{light.NewHeadlight()},
		gridExtent:  DefaultGridExtent,
		gridStep:    DefaultGridStep,
		logger:      log.Default(),
	}
	for _, opt := range options {
		opt(b)
	}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(desc)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("gpu: request adapter: %w", err)
	}
	b.adapter = a

	limits := wgpu.DefaultLimits()
	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Viewport Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		b.Release()
		return nil, fmt.Errorf("gpu: surface reports no formats")
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.alphaMode = capabilities.AlphaModes[0]

	uniform := GPUViewUniform{}
	if b.viewBuffer, err = b.createUniform("View Uniform", uint64(uniform.Size())); err != nil {
		b.Release()
		return nil, err
	}
	lightSize := (&light.GPULightHeader{}).Size() + light.MaxGPULights*(&light.GPULight{}).Size()
	if b.lightBuffer, err = b.createUniform("Light Uniform", uint64(lightSize)); err != nil {
		b.Release()
		return nil, err
	}

	if b.grid, err = newGridPipeline(b.device, b.queue, b.surfaceFormat, b.viewBuffer, GridVertices(b.gridExtent, b.gridStep)); err != nil {
		b.Release()
		return nil, err
	}

	b.logger.Printf("[GPU] backend ready, surface format %v", b.surfaceFormat)
	return b, nil
}

func (b *Backend) createUniform(label string, size uint64) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	return buf, nil
}

// Submit writes the frame into the view uniform and presents a cleared surface image.
// The surface is reconfigured whenever the frame's viewport size changes; frames with an
// empty viewport are written but not presented.
//
// Parameters:
//   - f: the flushed frame
//
// Returns:
//   - error: error if the surface image could not be acquired or encoded
func (b *Backend) Submit(f renderer.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device == nil {
		return fmt.Errorf("gpu: backend released")
	}

	uniform := ToViewUniform(f, b.headlightDirection(), b.ambientFloor())
	b.queue.WriteBuffer(b.viewBuffer, 0, uniform.Marshal())
	b.queue.WriteBuffer(b.lightBuffer, 0, light.MarshalLightBuffer(b.lights))

	width, height := f.Viewport[2], f.Viewport[3]
	if width <= 0 || height <= 0 {
		return nil
	}
	if !b.configured || width != b.width || height != b.height {
		b.configure(width, height)
	}
	return b.present()
}

func (b *Backend) configure(width, height int) {
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})
	b.width, b.height = width, height
	b.configured = true
}

func (b *Backend) present() error {
	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("gpu: acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("gpu: create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: b.clearColor,
			},
		},
	})
	b.grid.draw(pass)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("gpu: finish command buffer: %w", err)
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

// headlightDirection returns the direction of the first enabled directional light,
// falling back to looking down -Z.
func (b *Backend) headlightDirection() [3]float32 {
	for _, l := range b.lights {
		if l.Enabled() && l.Type() == light.LightTypeDirectional {
			return l.Direction()
		}
	}
	return [3]float32{0, 0, -1}
}

// ambientFloor returns the brightest enabled ambient intensity.
func (b *Backend) ambientFloor() float32 {
	var floor float32
	for _, l := range b.lights {
		if l.Enabled() && l.Type() == light.LightTypeAmbient && l.Intensity() > floor {
			floor = l.Intensity()
		}
	}
	return floor
}

// ViewBuffer returns the uniform buffer holding the latest GPUViewUniform.
//
// Returns:
//   - *wgpu.Buffer: the view uniform buffer
func (b *Backend) ViewBuffer() *wgpu.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewBuffer
}

// LightBuffer returns the uniform buffer holding the marshaled light list.
//
// Returns:
//   - *wgpu.Buffer: the light uniform buffer
func (b *Backend) LightBuffer() *wgpu.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lightBuffer
}

// Device returns the WebGPU device.
//
// Returns:
//   - *wgpu.Device: the device, nil after Release
func (b *Backend) Device() *wgpu.Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.device
}

func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.grid != nil {
		b.grid.release()
		b.grid = nil
	}
	if b.viewBuffer != nil {
		b.viewBuffer.Release()
		b.viewBuffer = nil
	}
	if b.lightBuffer != nil {
		b.lightBuffer.Release()
		b.lightBuffer = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
	b.configured = false
}
