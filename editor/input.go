package editor

import "pbr-viewer/core"

// InputSource is the polling surface of a window.
type InputSource interface {
	IsKeyPressed(key int) bool
	IsMouseButtonPressed(button int) bool
	GetCursorPos() (float64, float64)
	OnScroll(fn func(xoff, yoff float64))
}

// trackedKeys are the keys the viewer polls each frame.
var trackedKeys = []int{
	core.KeyW, core.KeyA, core.KeyS, core.KeyD,
	core.KeyUp, core.KeyDown, core.KeyLeft, core.KeyRight,
	core.KeySpace, core.KeyLeftControl, core.KeyLeftShift,
	core.KeyZ, core.KeyY,
	core.KeyF1, core.KeyF2, core.KeyF5, core.KeyF6,
}

// InputManager turns polled window state into per-frame deltas.
type InputManager struct {
	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	ScrollDelta              float64

	lastMouseX, lastMouseY float64
	mouseButtons           [3]bool
	mouseButtonsPrev       [3]bool
	keys                   map[int]bool
	keysPrev               map[int]bool

	src        InputSource
	firstFrame bool
}

func NewInputManager(src InputSource) *InputManager {
	im := &InputManager{
		src:        src,
		keys:       make(map[int]bool, len(trackedKeys)),
		keysPrev:   make(map[int]bool, len(trackedKeys)),
		firstFrame: true,
	}
	src.OnScroll(func(_, yoff float64) {
		im.ScrollDelta += yoff
	})
	return im
}

// Update polls the source. Call once per frame before reading state.
func (im *InputManager) Update() {
	x, y := im.src.GetCursorPos()
	if im.firstFrame {
		im.lastMouseX, im.lastMouseY = x, y
		im.firstFrame = false
	}
	im.MouseDeltaX = x - im.lastMouseX
	im.MouseDeltaY = y - im.lastMouseY
	im.lastMouseX, im.lastMouseY = x, y
	im.MouseX, im.MouseY = x, y

	im.mouseButtonsPrev = im.mouseButtons
	for b := range im.mouseButtons {
		im.mouseButtons[b] = im.src.IsMouseButtonPressed(b)
	}
	for _, k := range trackedKeys {
		im.keysPrev[k] = im.keys[k]
		im.keys[k] = im.src.IsKeyPressed(k)
	}
}

// EndFrame clears per-frame accumulators.
func (im *InputManager) EndFrame() {
	im.ScrollDelta = 0
}

func (im *InputManager) IsMouseDown(button int) bool {
	if button < 0 || button >= len(im.mouseButtons) {
		return false
	}
	return im.mouseButtons[button]
}

func (im *InputManager) IsMousePressed(button int) bool {
	if button < 0 || button >= len(im.mouseButtons) {
		return false
	}
	return im.mouseButtons[button] && !im.mouseButtonsPrev[button]
}

// IsKeyDown reports a tracked key; untracked keys are always up.
func (im *InputManager) IsKeyDown(key int) bool {
	return im.keys[key]
}

// IsKeyPressed reports a key that went down this frame.
func (im *InputManager) IsKeyPressed(key int) bool {
	return im.keys[key] && !im.keysPrev[key]
}

// IsShortcut reports Ctrl plus a newly pressed key.
func (im *InputManager) IsShortcut(key int) bool {
	return im.keys[core.KeyLeftControl] && im.IsKeyPressed(key)
}
