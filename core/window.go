package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GL calls must stay on the thread that created the context.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	resize func(width, height int)
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "PBR Viewer",
		Resizable: true,
		VSync:     true,
	}
}

// NewWindow opens a window with a current OpenGL 4.1 core context.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
		if window.resize != nil {
			window.resize(width, height)
		}
	})

	return window, nil
}

// OnResize registers the framebuffer resize handler.
func (w *Window) OnResize(fn func(width, height int)) {
	w.resize = fn
}

// OnKey registers a handler called once per key press.
func (w *Window) OnKey(fn func(key int)) {
	w.Handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			fn(int(key))
		}
	})
}

// OnScroll registers the mouse wheel handler.
func (w *Window) OnScroll(fn func(xoff, yoff float64)) {
	w.Handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		fn(xoff, yoff)
	})
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) Close() {
	w.Handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) IsMouseButtonPressed(button int) bool {
	return w.Handle.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

// Time returns seconds since GLFW was initialized.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

const (
	KeySpace       = int(glfw.KeySpace)
	KeyA           = int(glfw.KeyA)
	KeyD           = int(glfw.KeyD)
	KeyS           = int(glfw.KeyS)
	KeyW           = int(glfw.KeyW)
	KeyY           = int(glfw.KeyY)
	KeyZ           = int(glfw.KeyZ)
	KeyEscape      = int(glfw.KeyEscape)
	KeyRight       = int(glfw.KeyRight)
	KeyLeft        = int(glfw.KeyLeft)
	KeyDown        = int(glfw.KeyDown)
	KeyUp          = int(glfw.KeyUp)
	KeyF1          = int(glfw.KeyF1)
	KeyF2          = int(glfw.KeyF2)
	KeyF3          = int(glfw.KeyF3)
	KeyF5          = int(glfw.KeyF5)
	KeyF6          = int(glfw.KeyF6)
	KeyLeftShift   = int(glfw.KeyLeftShift)
	KeyLeftControl = int(glfw.KeyLeftControl)
)

const (
	MouseButtonLeft   = int(glfw.MouseButtonLeft)
	MouseButtonMiddle = int(glfw.MouseButtonMiddle)
)
