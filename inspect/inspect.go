// Package inspect describes editable fields of materials and scene nodes.
//
// Types expose their tunable state by calling the Inspector methods with
// pointers to the fields they bind as uniforms. An immediate-mode UI can
// implement Inspector directly; Sheet is a retained implementation used for
// config overrides, undoable edits and tests.
package inspect

import (
	"pbr-viewer/core"
	"pbr-viewer/math"
)

type Inspector interface {
	// Section groups the fields registered by body under label.
	Section(label string, body func())
	// Color edits the RGB channels of c; alpha is left alone.
	Color(label string, c *core.Color)
	// ColorVec edits a Vec3 holding an RGB triple.
	ColorVec(label string, v *math.Vec3)
	// Slider edits v within [min, max].
	Slider(label string, v *float32, min, max float32)
	// Drag edits v; when min < max the value is clamped to that range.
	Drag(label string, v *float32, speed, min, max float32)
	DragVec3(label string, v *math.Vec3, speed float32)
	Checkbox(label string, v *bool)
	// Transform edits a model matrix through its position, rotation (in
	// degrees) and scale components.
	Transform(label string, m *math.Mat4)
}

// Describer is implemented by everything that can be inspected.
type Describer interface {
	Describe(ins Inspector)
}
