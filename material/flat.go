package material

import (
	"fmt"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/inspect"
	"pbr-viewer/math"
)

// Flat shades with a constant color, optionally modulated by a texture.
type Flat struct {
	Base
	Texture gfx.Texture // bound on SlotTexture when set
}

// NewFlat returns a white flat material on (basic.vs, flat.fs).
func NewFlat(shaders gfx.ShaderSource) (*Flat, error) {
	return newFlat(shaders, FragmentFlat, nil)
}

// NewCubemap returns the material the skybox draws with: a flat material on
// the cubemap program sampling tex.
func NewCubemap(shaders gfx.ShaderSource, tex gfx.Texture) (*Flat, error) {
	return newFlat(shaders, FragmentCubemap, tex)
}

func newFlat(shaders gfx.ShaderSource, fragment string, tex gfx.Texture) (*Flat, error) {
	p, err := shaders.Program(VertexBasic, fragment)
	if err != nil {
		return nil, fmt.Errorf("flat material: %w", err)
	}
	return &Flat{Base: Base{Program: p, Color: core.ColorWhite}, Texture: tex}, nil
}

func (f *Flat) BindUniforms(ctx *RenderContext, model math.Mat4) {
	f.bindCamera(ctx, model)
	if f.Texture != nil {
		f.Program.SetTexture(UniformTexture, f.Texture, SlotTexture)
	}
}

func (f *Flat) Draw(ctx *RenderContext, mesh gfx.Mesh, model math.Mat4) error {
	return draw(ctx, f, mesh, model)
}

func (f *Flat) Describe(ins inspect.Inspector) {
	describeBase(ins, &f.Base)
}
