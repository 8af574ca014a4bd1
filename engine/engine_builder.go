package engine

import (
	"time"

	"github.com/Carmen-Shannon/erebus-go/engine/camera"
	"github.com/Carmen-Shannon/erebus-go/engine/renderer"
	"github.com/Carmen-Shannon/erebus-go/engine/scene"
	"github.com/Carmen-Shannon/erebus-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to
// the engine instance.
type EngineBuilderOption func(*engineImpl)

// WithWindow sets the host window. Required.
//
// Parameters:
//   - w: a configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engineImpl) {
		e.window = w
	}
}

// WithRenderer sets the deferred renderer. Required.
//
// Parameters:
//   - r: a configured Renderer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engineImpl) {
		e.renderer = r
	}
}

// WithCamera sets the orbit camera. Required.
//
// Parameters:
//   - c: a configured Camera instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engineImpl) {
		e.camera = c
	}
}

// WithScene sets the scene flattened each frame. Required.
//
// Parameters:
//   - s: a configured Scene instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engineImpl) {
		e.scene = s
	}
}

// WithDynamicGeometry marks the scene geometry as changing per frame.
// When enabled the vertex and index buffers are rebuilt and re-uploaded
// every iteration; the default uploads them once and rewrites only the
// instance table.
//
// Parameters:
//   - enabled: true when nodes are added, removed, or re-meshed at runtime
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDynamicGeometry(enabled bool) EngineBuilderOption {
	return func(e *engineImpl) {
		e.dynamicGeometry = enabled
	}
}

// WithProfiling enables performance profiling output.
//
// Parameters:
//   - enabled: if true, logs frame rate and memory stats
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engineImpl) {
		e.profilingEnabled = enabled
	}
}

// WithFrameLimit caps the frame loop at the given rate in frames per
// second. Pass 0 to uncap (the default); presentation still waits on the
// surface present mode.
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engineImpl) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Second / time.Duration(fps)
	}
}

// WithOrbitControls installs left-drag orbit and scroll zoom handlers on
// the window, driving the engine camera. Apply after WithWindow and
// WithCamera; options run in order.
//
// Parameters:
//   - rotateSpeed: radians per pixel of cursor movement
//   - zoomSpeed: distance units per scroll step
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithOrbitControls(rotateSpeed, zoomSpeed float32) EngineBuilderOption {
	return func(e *engineImpl) {
		if e.window == nil || e.camera == nil {
			return
		}
		e.window.SetMouseDragCallback(func(dx, dy float32) {
			e.camera.Orbit(dx*rotateSpeed, dy*rotateSpeed)
		})
		e.window.SetScrollCallback(func(delta float32) {
			e.camera.Zoom(-delta * zoomSpeed)
		})
	}
}
