// Package gfx is the boundary between the shading core and the graphics
// API. Materials and scene nodes only talk to these interfaces; the OpenGL
// backend lives in internal/opengl and the recording fakes in gfx/gfxtest.
package gfx

import (
	"errors"
	"image"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

// ErrNoProgram is returned by a ShaderSource that cannot produce a program
// for the requested stage pair.
var ErrNoProgram = errors.New("gfx: no such program")

// Capability is a pipeline toggle.
type Capability int

const (
	Blend Capability = iota
	CullFace
	DepthTest
)

func (c Capability) String() string {
	switch c {
	case Blend:
		return "blend"
	case CullFace:
		return "cull-face"
	case DepthTest:
		return "depth-test"
	}
	return "unknown"
}

// PolygonMode is the rasterizer fill mode.
type PolygonMode int

const (
	Fill PolygonMode = iota
	Line
)

type BlendFactor int

const (
	Zero BlendFactor = iota
	One
	SrcAlpha
	OneMinusSrcAlpha
)

// Primitive is the topology a mesh is drawn with.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

// Device is the process-wide pipeline state. Every material that changes a
// toggle restores it before returning.
type Device interface {
	Enable(Capability)
	Disable(Capability)
	IsEnabled(Capability) bool
	BlendFunc(src, dst BlendFactor)
	SetPolygonMode(PolygonMode)
	PolygonMode() PolygonMode
	Viewport(width, height int)
	// Clear clears the color and depth buffers.
	Clear(color core.Color)
}

// Texture is an opaque 2D or cubemap handle.
type Texture interface {
	Cubemap() bool
}

// Mesh is an uploaded geometry handle.
type Mesh interface {
	Render(Primitive) error
}

// Program is a linked shader program. Setting a uniform the program does
// not declare is silently ignored.
type Program interface {
	Enable()
	Disable()
	SetMat4(name string, m math.Mat4)
	SetVec3(name string, v math.Vec3)
	SetColor(name string, c core.Color)
	SetFloat(name string, f float32)
	SetBool(name string, b bool)
	// SetTexture binds tex to the texture unit slot and points the sampler
	// uniform at it. Slots are a fixed contract per uniform name; a nil tex
	// still points the sampler at its slot.
	SetTexture(name string, tex Texture, slot int)
}

// ShaderSource hands out programs cached by their stage source pair.
type ShaderSource interface {
	Program(vertexPath, fragmentPath string) (Program, error)
}

// TextureFactory creates GPU textures.
type TextureFactory interface {
	NewTexture2D(img *image.RGBA) (Texture, error)
	// NewCubemap builds a cubemap from six RGBA8 faces in +X,-X,+Y,-Y,+Z,-Z order.
	NewCubemap(width, height int, faces [6][]byte) (Texture, error)
}

// MeshFactory uploads CPU geometry.
type MeshFactory interface {
	NewMesh(data *core.MeshData) (Mesh, error)
}

// Resources is everything a scene needs to build its GPU-side objects.
type Resources interface {
	ShaderSource
	TextureFactory
	MeshFactory
}
