// Package material implements the shading strategies nodes draw with.
//
// A Material writes its uniforms to a gfx.Program and issues the draw call
// for a mesh. The set of variants is closed: Flat, Wireframe, Reflective,
// Phong and PBR.
package material

import (
	"fmt"
	"log/slog"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/inspect"
	"pbr-viewer/math"
)

// Camera is the view state materials read.
type Camera interface {
	ViewProjection() math.Mat4
	Eye() math.Vec3
}

// RenderContext is everything a material needs for one draw. It is built once
// per frame and passed down to every node.
type RenderContext struct {
	Device  gfx.Device
	Shaders gfx.ShaderSource
	Camera  Camera
	Lights  LightingContext
	Logger  *slog.Logger
}

func (ctx *RenderContext) logger() *slog.Logger {
	if ctx.Logger != nil {
		return ctx.Logger
	}
	return slog.Default()
}

// Material is a shading strategy. BindUniforms assumes its program is
// already enabled; Draw enables it, binds, draws and disables it again.
// Any pipeline toggle a Draw changes is back at its entry value when Draw
// returns.
type Material interface {
	BindUniforms(ctx *RenderContext, model math.Mat4)
	Draw(ctx *RenderContext, mesh gfx.Mesh, model math.Mat4) error
	inspect.Describer

	base() *Base
}

// Base is the state every variant carries.
type Base struct {
	Program gfx.Program // nil makes Draw a no-op
	Color   core.Color
}

func (b *Base) base() *Base { return b }

// ProgramOf returns the program m draws with.
func ProgramOf(m Material) gfx.Program { return m.base().Program }

// bindCamera writes the uniforms shared by the whole family.
func (b *Base) bindCamera(ctx *RenderContext, model math.Mat4) {
	p := b.Program
	p.SetMat4(UniformViewProjection, ctx.Camera.ViewProjection())
	p.SetVec3(UniformCameraPosition, ctx.Camera.Eye())
	p.SetMat4(UniformModel, model)
	p.SetColor(UniformColor, b.Color)
}

// draw is the shared body of every Draw: enable, bind, render, disable.
func draw(ctx *RenderContext, m Material, mesh gfx.Mesh, model math.Mat4) error {
	p := m.base().Program
	if mesh == nil || p == nil {
		return nil
	}
	p.Enable()
	defer p.Disable()

	m.BindUniforms(ctx, model)
	if err := mesh.Render(gfx.Triangles); err != nil {
		return fmt.Errorf("draw %s: %w", Name(m), err)
	}
	return nil
}

// Name is a short label for logs and editor headers.
func Name(m Material) string {
	switch m.(type) {
	case *Flat:
		return "flat"
	case *Wireframe:
		return "wireframe"
	case *Reflective:
		return "reflective"
	case *Phong:
		return "phong"
	case *PBR:
		return "pbr"
	}
	return fmt.Sprintf("%T", m)
}

func describeBase(ins inspect.Inspector, b *Base) {
	ins.Color("Color", &b.Color)
}
