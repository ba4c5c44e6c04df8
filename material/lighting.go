package material

import (
	"pbr-viewer/core"
	"pbr-viewer/math"
)

// Light is the per-light data materials bind.
type Light struct {
	Position  math.Vec3
	Color     core.Color
	Intensity float32
}

// LightingContext is the scene's light list as seen by materials for one
// frame. Reads past the end report !ok instead of panicking.
type LightingContext struct {
	lights []Light
}

func NewLightingContext(lights ...Light) LightingContext {
	return LightingContext{lights: lights}
}

func (lc LightingContext) Len() int { return len(lc.lights) }

// Light returns the i-th light in scene order.
func (lc LightingContext) Light(i int) (Light, bool) {
	if i < 0 || i >= len(lc.lights) {
		return Light{}, false
	}
	return lc.lights[i], true
}
