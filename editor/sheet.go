package editor

import (
	"maps"
	"slices"

	"pbr-viewer/core"
	"pbr-viewer/inspect"
	"pbr-viewer/math"
	"pbr-viewer/scene"
)

// SceneSheet registers every node and light of s on a fresh sheet, each
// under its own name, so paths read "Node0/Material/Roughness".
func SceneSheet(s *scene.Scene) *inspect.Sheet {
	sheet := inspect.NewSheet()
	for _, n := range s.Nodes() {
		sheet.Describe(n.Name, n)
	}
	for _, n := range s.Lights() {
		sheet.Describe(n.Name, n)
	}
	return sheet
}

// Apply writes every override through the history so each one can be
// undone. It stops at the first failure.
func Apply(h *History, sheet *inspect.Sheet, overrides map[string]any) error {
	for _, path := range slices.Sorted(maps.Keys(overrides)) {
		cmd, err := NewSetPropertyCommand(sheet, path, overrides[path])
		if err != nil {
			return err
		}
		if err := h.Do(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot reads every property back, for saving edits.
func Snapshot(sheet *inspect.Sheet) map[string]any {
	out := make(map[string]any)
	for _, p := range sheet.Properties() {
		out[p.Path] = exportValue(p.Value())
	}
	return out
}

// exportValue turns sheet values into plain config types.
func exportValue(v any) any {
	switch t := v.(type) {
	case float32:
		return float64(t)
	case math.Vec3:
		return []float64{float64(t.X), float64(t.Y), float64(t.Z)}
	case core.Color:
		return []float64{float64(t.R), float64(t.G), float64(t.B)}
	}
	return v
}
