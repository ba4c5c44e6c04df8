package editor

import (
	"log/slog"

	"pbr-viewer/core"
	"pbr-viewer/math"
	"pbr-viewer/scene"
)

const (
	orbitSpeed   = 1.5  // radians per second, arrow keys
	mouseOrbit   = 0.01 // radians per pixel
	scrollStep   = 1.0
	boostFactor  = 3.0
	defaultSpeed = 10.0
)

// Editor turns one frame of input into camera motion, renderer toggles and
// history steps.
type Editor struct {
	Camera   *scene.Camera
	Renderer *scene.Renderer
	History  *History
	Input    *InputManager
	Logger   *slog.Logger

	// Speed is the camera translation speed in units per second.
	Speed float32

	// Reload and Save run on F5 and F6. Either may be nil.
	Reload func() error
	Save   func() error

	StatusText string
}

func New(cam *scene.Camera, r *scene.Renderer, input *InputManager, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		Camera:     cam,
		Renderer:   r,
		History:    NewHistory(100),
		Input:      input,
		Logger:     logger,
		Speed:      defaultSpeed,
		StatusText: "Ready",
	}
}

// Update processes one frame of input. dt is the frame time in seconds.
func (e *Editor) Update(dt float32) {
	e.Input.Update()

	e.handleShortcuts()
	e.handleCameraControls(dt)

	e.Input.EndFrame()
}

func (e *Editor) handleShortcuts() {
	in := e.Input
	switch {
	case in.IsShortcut(core.KeyZ):
		e.step("Undo", e.History.Undo)
	case in.IsShortcut(core.KeyY):
		e.step("Redo", e.History.Redo)
	}

	if in.IsKeyPressed(core.KeyF1) {
		e.Renderer.Debug = !e.Renderer.Debug
		e.Logger.Info("debug grid", "enabled", e.Renderer.Debug)
	}
	if in.IsKeyPressed(core.KeyF2) {
		e.Renderer.Overlay = !e.Renderer.Overlay
		e.Logger.Info("wireframe overlay", "enabled", e.Renderer.Overlay)
	}
	if in.IsKeyPressed(core.KeyF5) {
		e.run("Reload shaders", e.Reload)
	}
	if in.IsKeyPressed(core.KeyF6) {
		e.run("Save", e.Save)
	}
}

func (e *Editor) step(label string, fn func() (bool, error)) {
	ok, err := fn()
	switch {
	case err != nil:
		e.Logger.Warn(label+" failed", "err", err)
		e.StatusText = label + " failed"
	case ok:
		e.StatusText = label
	}
}

func (e *Editor) run(label string, fn func() error) {
	if fn == nil {
		return
	}
	if err := fn(); err != nil {
		e.Logger.Warn(label+" failed", "err", err)
		e.StatusText = label + " failed"
		return
	}
	e.StatusText = label
}

func (e *Editor) handleCameraControls(dt float32) {
	in := e.Input
	step := e.Speed * dt
	if in.IsKeyDown(core.KeyLeftShift) {
		step *= boostFactor
	}

	// Ctrl is reserved for shortcuts while Z or Y is held.
	var move math.Vec3
	if in.IsKeyDown(core.KeyW) {
		move.Z += step
	}
	if in.IsKeyDown(core.KeyS) {
		move.Z -= step
	}
	if in.IsKeyDown(core.KeyA) {
		move.X += step
	}
	if in.IsKeyDown(core.KeyD) {
		move.X -= step
	}
	if in.IsKeyDown(core.KeySpace) {
		move.Y -= step
	}
	if in.IsKeyDown(core.KeyLeftControl) && !in.IsKeyDown(core.KeyZ) && !in.IsKeyDown(core.KeyY) {
		move.Y += step
	}
	if move != math.Vec3Zero {
		e.Camera.Move(move)
	}

	var yaw, pitch float32
	if in.IsKeyDown(core.KeyLeft) {
		yaw -= orbitSpeed * dt
	}
	if in.IsKeyDown(core.KeyRight) {
		yaw += orbitSpeed * dt
	}
	if in.IsKeyDown(core.KeyUp) {
		pitch -= orbitSpeed * dt
	}
	if in.IsKeyDown(core.KeyDown) {
		pitch += orbitSpeed * dt
	}
	if in.IsMouseDown(core.MouseButtonLeft) {
		yaw -= float32(in.MouseDeltaX) * mouseOrbit
		pitch -= float32(in.MouseDeltaY) * mouseOrbit
	}
	if yaw != 0 || pitch != 0 {
		e.Camera.Orbit(yaw, pitch)
	}

	if in.ScrollDelta != 0 {
		e.Camera.ChangeDistance(float32(in.ScrollDelta) * scrollStep)
	}
}
