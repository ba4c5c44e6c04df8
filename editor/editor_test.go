package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-viewer/core"
	"pbr-viewer/gfx/gfxtest"
	"pbr-viewer/material"
	"pbr-viewer/math"
	"pbr-viewer/scene"
)

func newScene(t *testing.T) (*scene.Scene, *scene.Node, *material.Phong) {
	t.Helper()
	res := gfxtest.NewResources(nil)
	phong, err := material.NewPhong(res)
	require.NoError(t, err)

	var names scene.Names
	s := scene.New()
	ball := scene.NewMeshNode(&names, "", &gfxtest.Mesh{Name: "sphere"}, phong)
	require.NoError(t, s.Add(ball))
	require.NoError(t, s.Add(scene.NewLight(&names, "Sun")))
	return s, ball, phong
}

func TestSetPropertyUndoRedo(t *testing.T) {
	s, ball, phong := newScene(t)
	sheet := SceneSheet(s)
	h := NewHistory(10)

	cmd, err := NewSetPropertyCommand(sheet, "Node0/Material/Shininess", 30)
	require.NoError(t, err)
	require.NoError(t, h.Do(cmd))
	assert.Equal(t, float32(30), phong.Shininess)

	ok, err := h.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float32(6), phong.Shininess)

	ok, err = h.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float32(30), phong.Shininess)

	require.NoError(t, Apply(h, sheet, map[string]any{
		"Node0/Model/Position": []any{1, 2, 3},
		"Sun/Intensity":        2.5,
	}))
	assert.Equal(t, math.NewVec3(1, 2, 3), ball.Transform.Translation())
	assert.Equal(t, float32(2.5), s.Find("Sun").Light.Intensity)

	for h.CanUndo() {
		_, err := h.Undo()
		require.NoError(t, err)
	}
	assert.Equal(t, math.Vec3Zero, ball.Transform.Translation())
	assert.Equal(t, float32(6), phong.Shininess)
	assert.True(t, h.CanRedo())
}

func TestApplyUnknownPath(t *testing.T) {
	s, _, _ := newScene(t)
	h := NewHistory(10)
	err := Apply(h, SceneSheet(s), map[string]any{"Nope/Field": 1})
	assert.Error(t, err)
	assert.False(t, h.CanUndo())
}

type failing struct{ err error }

func (f failing) Execute() error      { return f.err }
func (f failing) Undo() error         { return nil }
func (f failing) Description() string { return "fail" }

func TestHistoryDropsFailedAndOldCommands(t *testing.T) {
	h := NewHistory(2)
	boom := errors.New("boom")
	assert.ErrorIs(t, h.Do(failing{boom}), boom)
	assert.False(t, h.CanUndo())

	for i := 0; i < 3; i++ {
		require.NoError(t, h.Do(failing{}))
	}
	assert.Len(t, h.undoStack, 2)

	h.Clear()
	ok, err := h.Undo()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestAddRemoveNodeCommands(t *testing.T) {
	s, ball, _ := newScene(t)
	h := NewHistory(10)

	require.NoError(t, h.Do(&RemoveNodeCommand{Scene: s, Node: ball}))
	assert.Empty(t, s.Nodes())
	_, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, []*scene.Node{ball}, s.Nodes())

	var names scene.Names
	extra := scene.NewMeshNode(&names, "Extra", nil, nil)
	require.NoError(t, h.Do(&AddNodeCommand{Scene: s, Node: extra}))
	assert.Len(t, s.Nodes(), 2)
	_, err = h.Undo()
	require.NoError(t, err)
	assert.Len(t, s.Nodes(), 1)
}

func TestSnapshotRoundTrips(t *testing.T) {
	s, _, phong := newScene(t)
	sheet := SceneSheet(s)
	snap := Snapshot(sheet)
	assert.Equal(t, float64(6), snap["Node0/Material/Shininess"])
	assert.Equal(t, []float64{10, 10, 10}, snap["Sun/Position"])

	phong.Shininess = 40
	require.NoError(t, Apply(NewHistory(100), sheet, snap))
	assert.Equal(t, float32(6), phong.Shininess)
}

type fakeInput struct {
	x, y    float64
	keys    map[int]bool
	buttons map[int]bool
	scroll  func(xoff, yoff float64)
}

func (f *fakeInput) IsKeyPressed(k int) bool              { return f.keys[k] }
func (f *fakeInput) IsMouseButtonPressed(b int) bool      { return f.buttons[b] }
func (f *fakeInput) GetCursorPos() (float64, float64)     { return f.x, f.y }
func (f *fakeInput) OnScroll(fn func(xoff, yoff float64)) { f.scroll = fn }

func TestInputManagerDeltas(t *testing.T) {
	src := &fakeInput{x: 10, y: 10, keys: map[int]bool{}, buttons: map[int]bool{}}
	im := NewInputManager(src)

	im.Update()
	assert.Zero(t, im.MouseDeltaX, "first frame has no delta")

	src.x, src.y = 15, 7
	src.buttons[0] = true
	src.keys[trackedKeys[0]] = true
	src.scroll(0, 2)
	im.Update()

	assert.Equal(t, 5.0, im.MouseDeltaX)
	assert.Equal(t, -3.0, im.MouseDeltaY)
	assert.True(t, im.IsMousePressed(0))
	assert.True(t, im.IsKeyDown(trackedKeys[0]))
	assert.Equal(t, 2.0, im.ScrollDelta)

	im.EndFrame()
	im.Update()
	assert.Zero(t, im.ScrollDelta)
	assert.False(t, im.IsMousePressed(0), "held, not newly pressed")
	assert.True(t, im.IsMouseDown(0))
}

type counter struct{ undone int }

func (c *counter) Execute() error      { return nil }
func (c *counter) Undo() error         { c.undone++; return nil }
func (c *counter) Description() string { return "count" }

func newEditor(t *testing.T) (*Editor, *fakeInput) {
	t.Helper()
	res := gfxtest.NewResources(nil)
	r, err := scene.NewRenderer(gfxtest.NewDevice(nil), res, nil)
	require.NoError(t, err)
	src := &fakeInput{keys: map[int]bool{}, buttons: map[int]bool{}}
	return New(scene.NewCamera(), r, NewInputManager(src), nil), src
}

func TestEditorToggles(t *testing.T) {
	e, src := newEditor(t)
	reloads := 0
	e.Reload = func() error { reloads++; return nil }
	e.Save = func() error { return errors.New("disk full") }

	src.keys[core.KeyF1] = true
	src.keys[core.KeyF2] = true
	src.keys[core.KeyF5] = true
	e.Update(0.016)
	assert.True(t, e.Renderer.Debug)
	assert.True(t, e.Renderer.Overlay)
	assert.Equal(t, 1, reloads)

	// Held keys do not repeat.
	e.Update(0.016)
	assert.True(t, e.Renderer.Debug)
	assert.Equal(t, 1, reloads)

	src.keys = map[int]bool{core.KeyF6: true}
	e.Update(0.016)
	assert.Equal(t, "Save failed", e.StatusText)
}

func TestEditorUndoShortcut(t *testing.T) {
	e, src := newEditor(t)
	c := &counter{}
	require.NoError(t, e.History.Do(c))

	src.keys[core.KeyLeftControl] = true
	src.keys[core.KeyZ] = true
	eye := e.Camera.Eye()
	e.Update(0.016)

	assert.Equal(t, 1, c.undone)
	assert.Equal(t, "Undo", e.StatusText)
	assert.Equal(t, eye, e.Camera.Eye(), "ctrl held for a shortcut does not move the camera")
}

func TestEditorCameraControls(t *testing.T) {
	e, src := newEditor(t)
	start := e.Camera.Eye().Sub(e.Camera.Center()).Length()

	src.keys[core.KeyW] = true
	e.Update(0.1)
	assert.InDelta(t, 4, e.Camera.Eye().Z, 1e-4, "W moves toward the view direction")
	assert.InDelta(t, -1, e.Camera.Center().Z, 1e-4)

	src.keys = map[int]bool{}
	e.Update(0.1)
	src.scroll(0, 2)
	e.Update(0.1)
	dist := e.Camera.Eye().Sub(e.Camera.Center()).Length()
	assert.InDelta(t, start-2, dist, 1e-4)

	src.buttons[core.MouseButtonLeft] = true
	src.x = 50
	e.Update(0.1)
	assert.InDelta(t, dist, e.Camera.Eye().Sub(e.Camera.Center()).Length(), 1e-3, "orbit keeps the distance")
	assert.NotEqual(t, float32(0), e.Camera.Eye().X)
}
