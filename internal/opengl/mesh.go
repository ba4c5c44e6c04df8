package opengl

import (
	"errors"
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
)

var errReleased = errors.New("mesh released")

// Mesh holds the buffer objects of an uploaded mesh.
type Mesh struct {
	Name string

	vao, vbo, ebo uint32
	count         int32
	indexed       bool
	mode          core.DrawMode
}

// NewMesh uploads data with the interleaved core.Vertex layout.
func NewMesh(data *core.MeshData) (*Mesh, error) {
	if len(data.Vertices) == 0 {
		return nil, fmt.Errorf("mesh %q has no vertices", data.Name)
	}
	stride := int32(unsafe.Sizeof(core.Vertex{}))

	m := &Mesh{
		Name:    data.Name,
		indexed: len(data.Indices) > 0,
		mode:    data.DrawMode,
		count:   int32(len(data.Vertices)),
	}
	if m.indexed {
		m.count = int32(len(data.Indices))
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*int(stride), gl.Ptr(data.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{2, unsafe.Offsetof(v.UV)},
		{4, unsafe.Offsetof(v.Color)},
		{3, unsafe.Offsetof(v.Tangent)},
		{3, unsafe.Offsetof(v.Bitangent)},
	}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, gl.FLOAT, false, stride, a.offset)
	}

	if m.indexed {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return m, nil
}

// primitive picks the GL topology. A mesh built as lines or points draws
// that way whatever the material asks for.
func (m *Mesh) primitive(p gfx.Primitive) uint32 {
	switch {
	case m.mode == core.DrawLines || (m.mode == core.DrawDefault && p == gfx.Lines):
		return gl.LINES
	case m.mode == core.DrawPoints || (m.mode == core.DrawDefault && p == gfx.Points):
		return gl.POINTS
	}
	return gl.TRIANGLES
}

func (m *Mesh) Render(p gfx.Primitive) error {
	if m.vao == 0 {
		return fmt.Errorf("%s: %w", m.Name, errReleased)
	}
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(m.primitive(p), m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(m.primitive(p), 0, m.count)
	}
	gl.BindVertexArray(0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", m.Name, code)
	}
	return nil
}

func (m *Mesh) Release() {
	if m.vao == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
