package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
)

// Device is the GL pipeline state of the current context.
type Device struct {
	mode gfx.PolygonMode
}

func NewDevice() *Device {
	return &Device{mode: gfx.Fill}
}

func capability(c gfx.Capability) uint32 {
	switch c {
	case gfx.Blend:
		return gl.BLEND
	case gfx.CullFace:
		return gl.CULL_FACE
	default:
		return gl.DEPTH_TEST
	}
}

func blendFactor(f gfx.BlendFactor) uint32 {
	switch f {
	case gfx.One:
		return gl.ONE
	case gfx.SrcAlpha:
		return gl.SRC_ALPHA
	case gfx.OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.ZERO
	}
}

func (d *Device) Enable(c gfx.Capability)  { gl.Enable(capability(c)) }
func (d *Device) Disable(c gfx.Capability) { gl.Disable(capability(c)) }

func (d *Device) IsEnabled(c gfx.Capability) bool {
	return gl.IsEnabled(capability(c))
}

func (d *Device) BlendFunc(src, dst gfx.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func (d *Device) SetPolygonMode(m gfx.PolygonMode) {
	mode := uint32(gl.FILL)
	if m == gfx.Line {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	d.mode = m
}

func (d *Device) PolygonMode() gfx.PolygonMode { return d.mode }

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(color core.Color) {
	gl.ClearColor(color.R, color.G, color.B, color.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
