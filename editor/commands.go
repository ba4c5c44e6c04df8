// Package editor keeps an undoable history of scene edits and tracks the
// input state used to drive the camera.
package editor

import (
	"fmt"

	"pbr-viewer/inspect"
	"pbr-viewer/scene"
)

// Command is an undoable editor action.
type Command interface {
	Execute() error
	Undo() error
	Description() string
}

// History manages the undo and redo stacks. The oldest entries fall off
// once maxDepth is reached.
type History struct {
	undoStack []Command
	redoStack []Command
	maxDepth  int
}

func NewHistory(maxDepth int) *History {
	maxDepth = max(maxDepth, 1)
	return &History{
		undoStack: make([]Command, 0, maxDepth),
		maxDepth:  maxDepth,
	}
}

// Do executes cmd and records it. A failing command is not recorded.
func (h *History) Do(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Description(), err)
	}
	h.undoStack = append(h.undoStack, cmd)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[1:]
	}
	h.redoStack = h.redoStack[:0]
	return nil
}

// Undo reverts the last action. It reports false when there is nothing to
// undo.
func (h *History) Undo() (bool, error) {
	if len(h.undoStack) == 0 {
		return false, nil
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	if err := cmd.Undo(); err != nil {
		return false, fmt.Errorf("undo %s: %w", cmd.Description(), err)
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, cmd)
	return true, nil
}

// Redo reapplies the last undone action.
func (h *History) Redo() (bool, error) {
	if len(h.redoStack) == 0 {
		return false, nil
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	if err := cmd.Execute(); err != nil {
		return false, fmt.Errorf("redo %s: %w", cmd.Description(), err)
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, cmd)
	return true, nil
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (h *History) Clear() {
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
}

// SetPropertyCommand writes one inspector property. The previous value is
// captured when the command is built.
type SetPropertyCommand struct {
	Sheet *inspect.Sheet
	Path  string
	Old   any
	New   any
}

func NewSetPropertyCommand(sheet *inspect.Sheet, path string, value any) (*SetPropertyCommand, error) {
	old, err := sheet.Get(path)
	if err != nil {
		return nil, err
	}
	return &SetPropertyCommand{Sheet: sheet, Path: path, Old: old, New: value}, nil
}

func (c *SetPropertyCommand) Execute() error      { return c.Sheet.Set(c.Path, c.New) }
func (c *SetPropertyCommand) Undo() error         { return c.Sheet.Set(c.Path, c.Old) }
func (c *SetPropertyCommand) Description() string { return "Set " + c.Path }

// AddNodeCommand adds a node to the scene.
type AddNodeCommand struct {
	Scene *scene.Scene
	Node  *scene.Node
}

func (c *AddNodeCommand) Execute() error { return c.Scene.Add(c.Node) }

func (c *AddNodeCommand) Undo() error {
	if !c.Scene.Remove(c.Node) {
		return fmt.Errorf("node %q is not in the scene", c.Node.Name)
	}
	return nil
}

func (c *AddNodeCommand) Description() string { return "Add " + c.Node.Name }

// RemoveNodeCommand removes a node from the scene. Undo appends it back at
// the end of its list.
type RemoveNodeCommand struct {
	Scene *scene.Scene
	Node  *scene.Node
}

func (c *RemoveNodeCommand) Execute() error {
	if !c.Scene.Remove(c.Node) {
		return fmt.Errorf("node %q is not in the scene", c.Node.Name)
	}
	return nil
}

func (c *RemoveNodeCommand) Undo() error         { return c.Scene.Add(c.Node) }
func (c *RemoveNodeCommand) Description() string { return "Remove " + c.Node.Name }
