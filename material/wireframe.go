package material

import (
	"fmt"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/math"
)

// Wireframe draws a mesh's edges with the flat program.
type Wireframe struct {
	Flat
}

func NewWireframe(shaders gfx.ShaderSource) (*Wireframe, error) {
	p, err := shaders.Program(VertexBasic, FragmentFlat)
	if err != nil {
		return nil, fmt.Errorf("wireframe material: %w", err)
	}
	return &Wireframe{Flat{Base: Base{Program: p, Color: core.ColorWhite}}}, nil
}

// Draw renders in line mode. Fill mode is restored on every exit path,
// including a panicking draw call.
func (w *Wireframe) Draw(ctx *RenderContext, mesh gfx.Mesh, model math.Mat4) error {
	if mesh == nil || w.Program == nil {
		return nil
	}
	ctx.Device.SetPolygonMode(gfx.Line)
	defer ctx.Device.SetPolygonMode(gfx.Fill)
	return draw(ctx, w, mesh, model)
}
