package material

import (
	"fmt"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/math"
)

// Reflective mirrors an environment cubemap set as its texture.
type Reflective struct {
	Flat
}

func NewReflective(shaders gfx.ShaderSource, env gfx.Texture) (*Reflective, error) {
	p, err := shaders.Program(VertexBasic, FragmentReflective)
	if err != nil {
		return nil, fmt.Errorf("reflective material: %w", err)
	}
	return &Reflective{Flat{Base: Base{Program: p, Color: core.ColorWhite}, Texture: env}}, nil
}

func (r *Reflective) Draw(ctx *RenderContext, mesh gfx.Mesh, model math.Mat4) error {
	return draw(ctx, r, mesh, model)
}
