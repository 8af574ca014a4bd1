package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// windowImpl is the GLFW implementation of the Window interface.
type windowImpl struct {
	window *glfw.Window
	title  string
	width  int
	height int

	onResize    func(width, height int)
	onScroll    func(delta float32)
	onMouseDrag func(dx, dy float32)

	dragging   bool
	lastCursor [2]float64
}

// Window provides the platform surface the renderer presents to, plus the
// small set of input events the orbit camera needs.
type Window interface {
	// SurfaceDescriptor returns a platform-appropriate descriptor for
	// creating the WebGPU surface, via the wgpuglfw bridge.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Size returns the current framebuffer size in pixels.
	//
	// Returns:
	//   - int, int: width and height
	Size() (int, int)

	// SetResizeCallback sets the function called on framebuffer resize.
	//
	// Parameters:
	//   - callback: function receiving the new pixel size
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the scroll delta
	SetScrollCallback(callback func(delta float32))

	// SetMouseDragCallback sets the callback for cursor movement while the
	// left button is held, in pixels since the previous event.
	//
	// Parameters:
	//   - callback: function receiving the drag delta
	SetMouseDragCallback(callback func(dx, dy float32))

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: false once the user closes the window
	IsRunning() bool

	// PollEvents pumps the platform event loop. Call once per frame from
	// the main goroutine.
	PollEvents()

	// Close destroys the window and shuts GLFW down.
	Close()
}

var _ Window = &windowImpl{}

// WindowBuilderOption configures a Window during creation.
type WindowBuilderOption func(*windowImpl)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title text
//
// Returns:
//   - WindowBuilderOption: the builder option
func WithTitle(title string) WindowBuilderOption {
	return func(w *windowImpl) {
		w.title = title
	}
}

// WithSize sets the requested window size. The actual framebuffer size may
// differ on high-DPI displays; read it back with Size.
//
// Parameters:
//   - width, height: the requested size
//
// Returns:
//   - WindowBuilderOption: the builder option
func WithSize(width, height int) WindowBuilderOption {
	return func(w *windowImpl) {
		w.width = width
		w.height = height
	}
}

// NewWindow creates a GLFW window without an OpenGL context; WebGPU brings
// its own graphics API. Must be called from the main goroutine.
//
// Parameters:
//   - opts: a variadic list of WindowBuilderOption functions
//
// Returns:
//   - Window: the open window
//   - error: an error if GLFW init or window creation fails
func NewWindow(opts ...WindowBuilderOption) (Window, error) {
	runtime.LockOSThread()

	w := &windowImpl{
		title:  "erebus",
		width:  800,
		height: 600,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}
	w.window = win

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			w.dragging = true
			x, y := win.GetCursorPos()
			w.lastCursor = [2]float64{x, y}
		case glfw.Release:
			w.dragging = false
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if !w.dragging {
			return
		}
		dx := xpos - w.lastCursor[0]
		dy := ypos - w.lastCursor[1]
		w.lastCursor = [2]float64{xpos, ypos}
		if w.onMouseDrag != nil {
			w.onMouseDrag(float32(dx), float32(dy))
		}
	})

	// Pixel-accurate resize events; on high-DPI displays the framebuffer
	// size differs from the window size and the surface needs pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return w, nil
}

func (w *windowImpl) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.window)
}

func (w *windowImpl) Size() (int, int) {
	return w.width, w.height
}

func (w *windowImpl) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *windowImpl) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *windowImpl) SetMouseDragCallback(callback func(dx, dy float32)) {
	w.onMouseDrag = callback
}

func (w *windowImpl) IsRunning() bool {
	return !w.window.ShouldClose()
}

func (w *windowImpl) PollEvents() {
	glfw.PollEvents()
}

func (w *windowImpl) Close() {
	w.window.Destroy()
	glfw.Terminate()
}
