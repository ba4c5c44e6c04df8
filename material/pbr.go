package material

import (
	"fmt"

	"pbr-viewer/core"
	"pbr-viewer/envmap"
	"pbr-viewer/gfx"
	"pbr-viewer/inspect"
	"pbr-viewer/math"
)

// EnvLevels is the number of environment cubemaps a PBR material samples.
const EnvLevels = envmap.Levels

// Feature is one switch of the PBR shader.
type Feature int

const (
	PunctualLight Feature = iota
	IBL
	AlbedoMap
	RoughnessMap
	MetallicMap
	NormalMap
	OpacityMap
	EmissionMap
	OcclusionMap
	HeightMap

	numFeatures
)

var featureInfo = [numFeatures]struct {
	uniform string
	label   string
}{
	PunctualLight: {"u_use_punctual_light", "Punctual Light"},
	IBL:           {"u_use_ibl", "IBL"},
	AlbedoMap:     {"u_use_albedo", "Albedo Map"},
	RoughnessMap:  {"u_use_rough_map", "Roughness Map"},
	MetallicMap:   {"u_use_metal_map", "Metalness Map"},
	NormalMap:     {"u_use_normal_map", "Normal Map"},
	OpacityMap:    {"u_use_opacity_map", "Opacity Map"},
	EmissionMap:   {"u_use_emission_map", "Emission Map"},
	OcclusionMap:  {"u_use_occlusion_map", "Occlusion Map"},
	HeightMap:     {"u_use_height_map", "Height Map"},
}

func (f Feature) String() string {
	if f < 0 || f >= numFeatures {
		return fmt.Sprintf("Feature(%d)", int(f))
	}
	return featureInfo[f].label
}

// Uniform returns the boolean uniform the feature drives.
func (f Feature) Uniform() string { return featureInfo[f].uniform }

// Features is the full toggle set, indexed by Feature.
type Features [numFeatures]bool

// Maps are the optional PBR textures. A nil map leaves its unit unbound but
// its sampler still points at its slot.
type Maps struct {
	Albedo    gfx.Texture
	Roughness gfx.Texture
	Metallic  gfx.Texture
	Normal    gfx.Texture
	Opacity   gfx.Texture
	Emission  gfx.Texture
	Occlusion gfx.Texture
	Height    gfx.Texture
}

type mapBinding struct {
	uniform string
	slot    int
	feature Feature
	tex     func(*Maps) gfx.Texture
}

var mapBindings = [...]mapBinding{
	{"u_albedo_map", SlotAlbedo, AlbedoMap, func(m *Maps) gfx.Texture { return m.Albedo }},
	{"u_roughness_map", SlotRoughness, RoughnessMap, func(m *Maps) gfx.Texture { return m.Roughness }},
	{"u_metal_map", SlotMetallic, MetallicMap, func(m *Maps) gfx.Texture { return m.Metallic }},
	{"u_normal_map", SlotNormal, NormalMap, func(m *Maps) gfx.Texture { return m.Normal }},
	{"u_opacity_map", SlotOpacity, OpacityMap, func(m *Maps) gfx.Texture { return m.Opacity }},
	{"u_emission_map", SlotEmission, EmissionMap, func(m *Maps) gfx.Texture { return m.Emission }},
	{"u_occlusion_map", SlotOcclusion, OcclusionMap, func(m *Maps) gfx.Texture { return m.Occlusion }},
	{"u_height_map", SlotHeight, HeightMap, func(m *Maps) gfx.Texture { return m.Height }},
}

// PBR is a metallic-roughness material lit by a punctual light and image
// based lighting from a prefiltered environment.
type PBR struct {
	Base
	Features  Features
	Roughness float32
	Metallic  float32
	Emission  float32
	Occlusion float32
	Maps      Maps
	BRDF      gfx.Texture // split-sum lookup table, slot SlotBRDF

	env []gfx.Texture
}

// NewPBR builds the material and uploads one cubemap per environment level,
// in level order.
func NewPBR(res gfx.Resources, env envmap.Environment) (*PBR, error) {
	p, err := res.Program(VertexBasic, FragmentPBR)
	if err != nil {
		return nil, fmt.Errorf("pbr material: %w", err)
	}
	m := &PBR{
		Base:      Base{Program: p, Color: core.ColorWhite},
		Roughness: 0.29,
		Metallic:  0.1,
		Emission:  0.1,
		Occlusion: 1,
		env:       make([]gfx.Texture, 0, EnvLevels),
	}
	for i := 0; i < EnvLevels; i++ {
		lvl, err := env.Level(i)
		if err != nil {
			return nil, fmt.Errorf("pbr material: environment level %d: %w", i, err)
		}
		tex, err := res.NewCubemap(lvl.Width, lvl.Height, lvl.Faces)
		if err != nil {
			return nil, fmt.Errorf("pbr material: environment level %d: %w", i, err)
		}
		m.env = append(m.env, tex)
	}
	return m, nil
}

// EnvironmentLevels returns the environment cubemaps in level order.
func (m *PBR) EnvironmentLevels() []gfx.Texture {
	out := make([]gfx.Texture, len(m.env))
	copy(out, m.env)
	return out
}

func (m *PBR) EnvironmentLevel(i int) (gfx.Texture, bool) {
	if i < 0 || i >= len(m.env) {
		return nil, false
	}
	return m.env[i], true
}

// BindUniforms also sets the blend and cull state the shader expects. Draw
// restores both afterwards; callers binding by hand own that restore.
func (m *PBR) BindUniforms(ctx *RenderContext, model math.Mat4) {
	ctx.Device.Enable(gfx.Blend)
	ctx.Device.BlendFunc(gfx.SrcAlpha, gfx.OneMinusSrcAlpha)
	ctx.Device.Disable(gfx.CullFace)

	m.bindCamera(ctx, model)

	p := m.Program
	for i, tex := range m.env {
		p.SetTexture(envUniforms[i], tex, SlotEnvFirst+i)
	}
	// Every sampler gets its slot even without a texture: two samplers of
	// different types left on unit 0 make the draw invalid.
	p.SetTexture("u_brdf_lut", m.BRDF, SlotBRDF)

	log := ctx.logger()
	for _, b := range mapBindings {
		tex := b.tex(&m.Maps)
		if tex == nil && m.Features[b.feature] {
			log.Debug("feature enabled without a map", "material", "pbr", "uniform", b.uniform)
		}
		p.SetTexture(b.uniform, tex, b.slot)
	}
	if m.Features[IBL] && m.BRDF == nil {
		log.Debug("feature enabled without a map", "material", "pbr", "uniform", "u_brdf_lut")
	}

	p.SetFloat("u_roughness", m.Roughness)
	p.SetFloat("u_metallic_fact", m.Metallic)
	p.SetFloat("u_emission_fact", m.Emission)
	p.SetFloat("u_occlusion_factor", m.Occlusion)

	if l, ok := ctx.Lights.Light(0); ok {
		p.SetVec3(UniformLight1, l.Position)
	} else {
		log.Debug("light missing, uniform skipped", "material", "pbr", "uniform", UniformLight1, "index", 0)
	}

	for f := Feature(0); f < numFeatures; f++ {
		p.SetBool(f.Uniform(), m.Features[f])
	}
}

func (m *PBR) Draw(ctx *RenderContext, mesh gfx.Mesh, model math.Mat4) error {
	if mesh == nil || m.Program == nil {
		return nil
	}
	restore := gfx.Preserve(ctx.Device, gfx.Blend, gfx.CullFace)
	defer restore()
	return draw(ctx, m, mesh, model)
}

func (m *PBR) Describe(ins inspect.Inspector) {
	ins.Checkbox(PunctualLight.String(), &m.Features[PunctualLight])
	ins.Checkbox(IBL.String(), &m.Features[IBL])

	ins.Slider("Roughness", &m.Roughness, 0.01, 0.99)
	ins.Slider("Metallic Factor", &m.Metallic, 0.01, 0.99)
	ins.Slider("Occlusion Factor", &m.Occlusion, 0.01, 0.99)
	ins.Slider("Emission Factor", &m.Emission, 0.01, 0.99)
	describeBase(ins, &m.Base)

	for f := AlbedoMap; f < numFeatures; f++ {
		ins.Checkbox(f.String(), &m.Features[f])
	}
}
