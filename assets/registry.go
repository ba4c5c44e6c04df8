// Package assets loads meshes, textures and environments from disk and
// caches the uploaded handles so every node referring to the same file
// shares one GPU object.
package assets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pbr-viewer/core"
	"pbr-viewer/envmap"
	"pbr-viewer/gfx"
	"pbr-viewer/scene"
)

// PrimitivePrefix selects a built-in shape instead of a file, e.g.
// "primitive:sphere".
const PrimitivePrefix = "primitive:"

type Registry struct {
	res    gfx.Resources
	root   string
	logger *slog.Logger

	meshes   map[string]gfx.Mesh
	textures map[string]gfx.Texture
	envs     map[string]envmap.Environment
}

// NewRegistry resolves relative paths against root.
func NewRegistry(res gfx.Resources, root string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		res:      res,
		root:     root,
		logger:   logger,
		meshes:   make(map[string]gfx.Mesh),
		textures: make(map[string]gfx.Texture),
		envs:     make(map[string]envmap.Environment),
	}
}

func (r *Registry) resolve(path string) string {
	if filepath.IsAbs(path) || r.root == "" {
		return path
	}
	return filepath.Join(r.root, path)
}

// LoadMesh reads CPU geometry for ref without uploading it.
func (r *Registry) LoadMesh(ref string) (*core.MeshData, error) {
	if name, ok := strings.CutPrefix(ref, PrimitivePrefix); ok {
		data, ok := scene.Primitive(name)
		if !ok {
			return nil, fmt.Errorf("unknown primitive %q", name)
		}
		return data, nil
	}

	path := r.resolve(ref)
	var (
		data *core.MeshData
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		data, err = LoadGLTF(path)
	case ".obj":
		var f *os.File
		if f, err = os.Open(path); err != nil {
			return nil, fmt.Errorf("open mesh %q: %w", path, err)
		}
		defer f.Close()
		data, err = ParseOBJ(ref, f)
	default:
		return nil, fmt.Errorf("mesh %q: unsupported format %q", ref, ext)
	}
	if err != nil {
		return nil, err
	}
	scene.ComputeTangents(data)
	return data, nil
}

// Mesh returns the shared handle for ref, loading and uploading it on first
// use.
func (r *Registry) Mesh(ref string) (gfx.Mesh, error) {
	if m, ok := r.meshes[ref]; ok {
		return m, nil
	}
	data, err := r.LoadMesh(ref)
	if err != nil {
		return nil, err
	}
	m, err := r.res.NewMesh(data)
	if err != nil {
		return nil, fmt.Errorf("upload mesh %q: %w", ref, err)
	}
	r.meshes[ref] = m
	r.logger.Debug("mesh loaded", "path", ref, "vertices", len(data.Vertices))
	return m, nil
}

// Texture returns the shared 2D texture for path.
func (r *Registry) Texture(path string) (gfx.Texture, error) {
	if t, ok := r.textures[path]; ok {
		return t, nil
	}
	img, err := LoadImage(r.resolve(path))
	if err != nil {
		return nil, err
	}
	t, err := r.res.NewTexture2D(img)
	if err != nil {
		return nil, fmt.Errorf("upload texture %q: %w", path, err)
	}
	r.textures[path] = t
	r.logger.Debug("texture loaded", "path", path, "width", img.Rect.Dx(), "height", img.Rect.Dy())
	return t, nil
}

// Environment returns the prefiltered chain built from the six faces in
// dir. An empty dir yields a neutral gray environment.
func (r *Registry) Environment(dir string) (envmap.Environment, error) {
	if env, ok := r.envs[dir]; ok {
		return env, nil
	}
	var env envmap.Environment
	if dir == "" {
		env = envmap.Solid(64, 128, 128, 128, 255)
	} else {
		faces, err := LoadFaces(r.resolve(dir))
		if err != nil {
			return nil, err
		}
		chain, err := envmap.Build(faces)
		if err != nil {
			return nil, fmt.Errorf("environment %q: %w", dir, err)
		}
		env = chain
	}
	r.envs[dir] = env
	return env, nil
}
