package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/math"
)

// Program is a linked GL program. Uniform locations are looked up once per
// link and cached; unknown names resolve to -1, which GL ignores.
type Program struct {
	Vertex, Fragment string

	id        uint32
	locations map[string]int32
}

func (p *Program) Enable()  { gl.UseProgram(p.id) }
func (p *Program) Disable() { gl.UseProgram(0) }

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0][0])
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	gl.Uniform3f(p.location(name), v.X, v.Y, v.Z)
}

func (p *Program) SetColor(name string, c core.Color) {
	gl.Uniform4f(p.location(name), c.R, c.G, c.B, c.A)
}

func (p *Program) SetFloat(name string, f float32) {
	gl.Uniform1f(p.location(name), f)
}

func (p *Program) SetBool(name string, b bool) {
	var v int32
	if b {
		v = 1
	}
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetTexture(name string, tex gfx.Texture, slot int) {
	gl.Uniform1i(p.location(name), int32(slot))
	t, ok := tex.(*Texture)
	if !ok || t == nil {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
	gl.BindTexture(t.target, t.id)
}

// replace swaps in a freshly linked program and drops the old one.
func (p *Program) replace(id uint32) {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
	}
	p.id = id
	p.locations = make(map[string]int32)
}

func (p *Program) Release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vert)
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
