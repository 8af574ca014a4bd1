package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/erebus-go/engine/camera"
	"github.com/Carmen-Shannon/erebus-go/engine/profiler"
	"github.com/Carmen-Shannon/erebus-go/engine/renderer"
	"github.com/Carmen-Shannon/erebus-go/engine/scene"
	"github.com/Carmen-Shannon/erebus-go/engine/window"
)

// engineImpl implements the Engine interface.
// Owns the frame loop: poll events, update, flatten, upload, submit.
type engineImpl struct {
	window   window.Window
	renderer renderer.Renderer
	camera   camera.Camera
	scene    scene.Scene

	updateCallback  func(deltaTime float32)
	dynamicGeometry bool

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameLimit time.Duration // minimum frame duration; 0 = uncapped

	quitChannel chan struct{}
	quitOnce    sync.Once
}

var _ Engine = &engineImpl{}

// Engine orchestrates a window, a scene, a camera, and a deferred renderer
// into a single frame loop. Construct one with NewEngine and call Run on
// the main goroutine; GLFW event polling is bound to the calling thread.
type Engine interface {
	// Window returns the host window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the deferred renderer.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Camera returns the orbit camera driving the view uniform.
	//
	// Returns:
	//   - camera.Camera: the camera instance
	Camera() camera.Camera

	// Scene returns the scene flattened each frame (or once, when the
	// geometry is static).
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// SetUpdateCallback registers the function called once per frame before
	// the scene is flattened. Use it to animate node transforms.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetUpdateCallback(callback func(deltaTime float32))

	// EnableProfiler enables frame rate and memory stats in the log.
	EnableProfiler()

	// DisableProfiler disables profiling output.
	DisableProfiler()

	// Run drives the frame loop until the window closes or Quit is called.
	// Blocks the calling goroutine.
	//
	// Returns:
	//   - error: the first frame error, or nil on a clean shutdown
	Run() error

	// Quit signals the frame loop to stop. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine from the provided options. A window,
// renderer, camera, and scene are all required; NewEngine panics when any
// of them is missing.
//
// Resize events are wired through automatically: the renderer surface and
// G-buffer are rebuilt and the camera aspect ratio follows the framebuffer.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engineImpl{
		profiler:    profiler.NewProfiler(),
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		panic("engine requires a window")
	}
	if e.renderer == nil {
		panic("engine requires a renderer")
	}
	if e.camera == nil {
		panic("engine requires a camera")
	}
	if e.scene == nil {
		panic("engine requires a scene")
	}

	e.window.SetResizeCallback(func(width, height int) {
		if width == 0 || height == 0 {
			return
		}
		if err := e.renderer.Resize(width, height); err != nil {
			return
		}
		e.camera.SetAspect(float32(width) / float32(height))
	})

	return e
}

func (e *engineImpl) Window() window.Window {
	return e.window
}

func (e *engineImpl) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engineImpl) Camera() camera.Camera {
	return e.camera
}

func (e *engineImpl) Scene() scene.Scene {
	return e.scene
}

func (e *engineImpl) SetUpdateCallback(callback func(deltaTime float32)) {
	e.updateCallback = callback
}

func (e *engineImpl) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engineImpl) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engineImpl) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engineImpl) Run() error {
	frame, err := e.buildAndUpload()
	if err != nil {
		return err
	}

	lastFrame := time.Now()
	for e.window.IsRunning() {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}

		e.window.PollEvents()

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		if e.updateCallback != nil {
			e.updateCallback(dt)
		}

		// Static scenes keep the geometry buffers from the first flatten;
		// only the instance table and view uniform are rewritten per frame.
		if e.dynamicGeometry {
			frame, err = e.buildAndUpload()
			if err != nil {
				return err
			}
		} else {
			if frame, err = e.scene.BuildFrame(); err != nil {
				return fmt.Errorf("failed to flatten scene: %w", err)
			}
		}

		if err := e.renderer.SubmitFrame(e.camera.GPU(), frame.Table); err != nil {
			return fmt.Errorf("failed to submit frame: %w", err)
		}

		if e.profilingEnabled && e.profiler != nil {
			e.profiler.Tick()
		}

		if e.frameLimit > 0 {
			if remaining := e.frameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	return nil
}

// buildAndUpload flattens the scene and pushes the vertex and index
// buffers to the GPU.
func (e *engineImpl) buildAndUpload() (*scene.Frame, error) {
	frame, err := e.scene.BuildFrame()
	if err != nil {
		return nil, fmt.Errorf("failed to flatten scene: %w", err)
	}
	if err := frame.Validate(); err != nil {
		return nil, fmt.Errorf("frame validation failed: %w", err)
	}
	if err := e.renderer.UploadGeometry(frame.VertexData(), frame.IndexData(), frame.IndexCount()); err != nil {
		return nil, fmt.Errorf("failed to upload geometry: %w", err)
	}
	return frame, nil
}
