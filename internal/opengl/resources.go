// Package opengl is the OpenGL 4.1 core backend of the gfx interfaces.
// Every call must run on the thread that owns the GL context.
package opengl

import (
	"image"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/shaders"
)

// Init loads the GL function pointers for the current context.
func Init() error {
	return gl.Init()
}

// Version reports the driver's GL version string.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Resources implements gfx.Resources and keeps every object it creates so
// they can be released together.
type Resources struct {
	*ProgramCache

	textures []*Texture
	meshes   []*Mesh
}

var _ gfx.Resources = (*Resources)(nil)

func NewResources(src shaders.Source, logger *slog.Logger) *Resources {
	return &Resources{ProgramCache: NewProgramCache(src, logger)}
}

func (r *Resources) NewTexture2D(img *image.RGBA) (gfx.Texture, error) {
	t, err := NewTexture2D(img)
	if err != nil {
		return nil, err
	}
	r.textures = append(r.textures, t)
	return t, nil
}

func (r *Resources) NewCubemap(width, height int, faces [6][]byte) (gfx.Texture, error) {
	t, err := NewCubemap(width, height, faces)
	if err != nil {
		return nil, err
	}
	r.textures = append(r.textures, t)
	return t, nil
}

func (r *Resources) NewMesh(data *core.MeshData) (gfx.Mesh, error) {
	m, err := NewMesh(data)
	if err != nil {
		return nil, err
	}
	r.meshes = append(r.meshes, m)
	return m, nil
}

// Release frees every GPU object created through r.
func (r *Resources) Release() {
	for _, m := range r.meshes {
		m.Release()
	}
	for _, t := range r.textures {
		t.Release()
	}
	r.ProgramCache.Release()
	r.meshes, r.textures = nil, nil
}
