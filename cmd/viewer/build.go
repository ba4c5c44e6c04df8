package main

import (
	"fmt"

	"pbr-viewer/assets"
	"pbr-viewer/config"
	"pbr-viewer/core"
	"pbr-viewer/envmap"
	"pbr-viewer/gfx"
	"pbr-viewer/inspect"
	"pbr-viewer/material"
	"pbr-viewer/math"
	"pbr-viewer/scene"
)

var featureKeys = map[string]material.Feature{
	"punctual_light": material.PunctualLight,
	"ibl":            material.IBL,
	"albedo_map":     material.AlbedoMap,
	"roughness_map":  material.RoughnessMap,
	"metallic_map":   material.MetallicMap,
	"normal_map":     material.NormalMap,
	"opacity_map":    material.OpacityMap,
	"emission_map":   material.EmissionMap,
	"occlusion_map":  material.OcclusionMap,
	"height_map":     material.HeightMap,
}

var mapSetters = map[string]func(*material.PBR, gfx.Texture){
	"albedo":    func(m *material.PBR, t gfx.Texture) { m.Maps.Albedo = t },
	"roughness": func(m *material.PBR, t gfx.Texture) { m.Maps.Roughness = t },
	"metallic":  func(m *material.PBR, t gfx.Texture) { m.Maps.Metallic = t },
	"normal":    func(m *material.PBR, t gfx.Texture) { m.Maps.Normal = t },
	"opacity":   func(m *material.PBR, t gfx.Texture) { m.Maps.Opacity = t },
	"emission":  func(m *material.PBR, t gfx.Texture) { m.Maps.Emission = t },
	"occlusion": func(m *material.PBR, t gfx.Texture) { m.Maps.Occlusion = t },
	"height":    func(m *material.PBR, t gfx.Texture) { m.Maps.Height = t },
	"brdf":      func(m *material.PBR, t gfx.Texture) { m.BRDF = t },
}

// builder assembles a scene from a validated config.
type builder struct {
	res   gfx.Resources
	reg   *assets.Registry
	names *scene.Names

	env     envmap.Environment
	envCube gfx.Texture
	brdf    gfx.Texture
}

// brdfSize is the edge of the generated split-sum lookup table.
const brdfSize = 64

func buildScene(cfg config.Config, res gfx.Resources, reg *assets.Registry, names *scene.Names) (*scene.Scene, error) {
	env, err := reg.Environment(cfg.Environment)
	if err != nil {
		return nil, err
	}
	b := &builder{res: res, reg: reg, names: names, env: env}
	s := scene.New()

	if cfg.Render.Skybox {
		cube, err := b.cubemap()
		if err != nil {
			return nil, err
		}
		sky, err := scene.NewSkybox(res, cube)
		if err != nil {
			return nil, err
		}
		if err := s.Add(sky); err != nil {
			return nil, err
		}
	}

	for _, l := range cfg.Lights {
		n := scene.NewLight(names, l.Name)
		n.Light = material.Light{
			Position:  vec3(l.Position),
			Color:     core.ColorFromRGB(vec3(l.Color)),
			Intensity: l.Intensity,
		}
		if err := s.Add(n); err != nil {
			return nil, err
		}
	}

	for i, nc := range cfg.Nodes {
		n, err := b.node(nc)
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", i, nc.Mesh, err)
		}
		if err := s.Add(n); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// cubemap uploads environment level 0 once and shares it between the
// skybox and reflective materials.
func (b *builder) cubemap() (gfx.Texture, error) {
	if b.envCube != nil {
		return b.envCube, nil
	}
	lvl, err := b.env.Level(0)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	tex, err := b.res.NewCubemap(lvl.Width, lvl.Height, lvl.Faces)
	if err != nil {
		return nil, fmt.Errorf("environment cubemap: %w", err)
	}
	b.envCube = tex
	return tex, nil
}

func (b *builder) node(nc config.Node) (*scene.Node, error) {
	mesh, err := b.reg.Mesh(nc.Mesh)
	if err != nil {
		return nil, err
	}
	mat, err := b.material(nc)
	if err != nil {
		return nil, err
	}
	n := scene.NewMeshNode(b.names, nc.Name, mesh, mat)
	n.Transform = inspect.Recompose(inspect.Components{
		Position: vec3(nc.Position),
		Rotation: vec3(nc.Rotation),
		Scale:    vec3(nc.Scale),
	})
	return n, nil
}

func (b *builder) material(nc config.Node) (material.Material, error) {
	color := core.Color{R: nc.Color[0], G: nc.Color[1], B: nc.Color[2], A: nc.Color[3]}

	switch nc.Material {
	case config.MaterialWireframe:
		m, err := material.NewWireframe(b.res)
		if err != nil {
			return nil, err
		}
		m.Color = color
		return m, nil

	case config.MaterialReflective:
		cube, err := b.cubemap()
		if err != nil {
			return nil, err
		}
		m, err := material.NewReflective(b.res, cube)
		if err != nil {
			return nil, err
		}
		m.Color = color
		return m, nil

	case config.MaterialPhong:
		m, err := material.NewPhong(b.res)
		if err != nil {
			return nil, err
		}
		m.Color = color
		return m, nil

	case config.MaterialPBR:
		return b.pbr(nc, color)

	default:
		m, err := material.NewFlat(b.res)
		if err != nil {
			return nil, err
		}
		m.Color = color
		if nc.Texture != "" {
			if m.Texture, err = b.reg.Texture(nc.Texture); err != nil {
				return nil, err
			}
		}
		return m, nil
	}
}

func (b *builder) pbr(nc config.Node, color core.Color) (*material.PBR, error) {
	m, err := material.NewPBR(b.res, b.env)
	if err != nil {
		return nil, err
	}
	m.Color = color
	for _, key := range nc.Features {
		f, ok := featureKeys[key]
		if !ok {
			return nil, fmt.Errorf("%w: feature %q", config.ErrInvalid, key)
		}
		m.Features[f] = true
	}
	for key, path := range nc.Maps {
		set, ok := mapSetters[key]
		if !ok {
			return nil, fmt.Errorf("%w: map %q", config.ErrInvalid, key)
		}
		tex, err := b.reg.Texture(path)
		if err != nil {
			return nil, fmt.Errorf("%s map: %w", key, err)
		}
		set(m, tex)
	}
	if m.Features[material.IBL] && m.BRDF == nil {
		if m.BRDF, err = b.brdfLUT(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// brdfLUT generates the split-sum table once for every PBR node that turns
// on IBL without a configured brdf map.
func (b *builder) brdfLUT() (gfx.Texture, error) {
	if b.brdf != nil {
		return b.brdf, nil
	}
	tex, err := b.res.NewTexture2D(envmap.BRDFLUT(brdfSize))
	if err != nil {
		return nil, fmt.Errorf("brdf lut: %w", err)
	}
	b.brdf = tex
	return tex, nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
