package material

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-viewer/core"
	"pbr-viewer/envmap"
	"pbr-viewer/gfx"
	"pbr-viewer/gfx/gfxtest"
	"pbr-viewer/inspect"
	"pbr-viewer/math"
)

type fixedCamera struct {
	vp  math.Mat4
	eye math.Vec3
}

func (c fixedCamera) ViewProjection() math.Mat4 { return c.vp }
func (c fixedCamera) Eye() math.Vec3            { return c.eye }

type harness struct {
	log *gfxtest.Recorder
	dev *gfxtest.Device
	res *gfxtest.Resources
	ctx *RenderContext
}

func newHarness(lights ...Light) *harness {
	log := &gfxtest.Recorder{}
	h := &harness{
		log: log,
		dev: gfxtest.NewDevice(log),
		res: gfxtest.NewResources(log),
	}
	h.ctx = &RenderContext{
		Device:  h.dev,
		Shaders: h.res,
		Camera: fixedCamera{
			vp:  math.Mat4LookAt(math.NewVec3(0, 0, 5), math.Vec3Zero, math.Vec3Up),
			eye: math.NewVec3(0, 0, 5),
		},
		Lights: NewLightingContext(lights...),
	}
	return h
}

func (h *harness) mesh(name string) *gfxtest.Mesh {
	return &gfxtest.Mesh{Log: h.log, Name: name}
}

func (h *harness) pbr(t *testing.T) *PBR {
	t.Helper()
	m, err := NewPBR(h.res, envmap.Solid(32, 128, 128, 128, 255))
	require.NoError(t, err)
	return m
}

func (h *harness) all(t *testing.T) map[string]Material {
	t.Helper()
	flat, err := NewFlat(h.res)
	require.NoError(t, err)
	wire, err := NewWireframe(h.res)
	require.NoError(t, err)
	refl, err := NewReflective(h.res, &gfxtest.Texture{Name: "env", Cube: true})
	require.NoError(t, err)
	phong, err := NewPhong(h.res)
	require.NoError(t, err)
	return map[string]Material{
		"flat":       flat,
		"wireframe":  wire,
		"reflective": refl,
		"phong":      phong,
		"pbr":        h.pbr(t),
	}
}

func TestDrawWithoutMeshIsNoop(t *testing.T) {
	h := newHarness()
	for name, m := range h.all(t) {
		t.Run(name, func(t *testing.T) {
			h.log.Reset()
			require.NoError(t, m.Draw(h.ctx, nil, math.Mat4Identity()))
			assert.Empty(t, h.log.Calls)
		})
	}
}

func TestDrawWithoutProgramIsNoop(t *testing.T) {
	h := newHarness()
	for name, m := range h.all(t) {
		t.Run(name, func(t *testing.T) {
			m.base().Program = nil
			mesh := h.mesh("cube")
			h.log.Reset()
			require.NoError(t, m.Draw(h.ctx, mesh, math.Mat4Identity()))
			assert.Empty(t, h.log.Calls)
			assert.Empty(t, mesh.Draws)
		})
	}
}

func TestDrawEnablesBindsDrawsDisables(t *testing.T) {
	h := newHarness()
	for name, m := range h.all(t) {
		t.Run(name, func(t *testing.T) {
			mesh := h.mesh("cube")
			h.log.Reset()
			require.NoError(t, m.Draw(h.ctx, mesh, math.Mat4Identity()))

			ops := h.log.Ops()
			require.NotEmpty(t, ops)
			first, draw, last := -1, -1, -1
			for i, op := range ops {
				switch op {
				case "use-program":
					first = i
				case "draw":
					draw = i
				case "unuse-program":
					last = i
				}
			}
			assert.True(t, first >= 0 && first < draw && draw < last, "ops %v", ops)
			assert.Equal(t, []gfx.Primitive{gfx.Triangles}, mesh.Draws)
			assert.Equal(t, 1, h.log.Count("draw"))
		})
	}
}

func TestDrawErrorIsWrapped(t *testing.T) {
	h := newHarness()
	boom := errors.New("boom")
	for name, m := range h.all(t) {
		t.Run(name, func(t *testing.T) {
			mesh := h.mesh("cube")
			mesh.Err = boom
			err := m.Draw(h.ctx, mesh, math.Mat4Identity())
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), Name(m))
			assert.Empty(t, mesh.Draws)
		})
	}
}

func TestWireframeRestoresFill(t *testing.T) {
	h := newHarness()
	w, err := NewWireframe(h.res)
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		mesh := h.mesh("cube")
		var during gfx.PolygonMode
		mesh.OnRender = func() { during = h.dev.PolygonMode() }
		require.NoError(t, w.Draw(h.ctx, mesh, math.Mat4Identity()))
		assert.Equal(t, gfx.Line, during)
		assert.Equal(t, gfx.Fill, h.dev.PolygonMode())
	})

	t.Run("failing draw", func(t *testing.T) {
		mesh := h.mesh("cube")
		mesh.Err = errors.New("lost context")
		assert.Error(t, w.Draw(h.ctx, mesh, math.Mat4Identity()))
		assert.Equal(t, gfx.Fill, h.dev.PolygonMode())
	})

	t.Run("panicking draw", func(t *testing.T) {
		mesh := h.mesh("cube")
		mesh.Panic = "driver crash"
		assert.Panics(t, func() { _ = w.Draw(h.ctx, mesh, math.Mat4Identity()) })
		assert.Equal(t, gfx.Fill, h.dev.PolygonMode())
	})
}

func TestFlatEndToEnd(t *testing.T) {
	h := newHarness()
	flat, err := NewFlat(h.res)
	require.NoError(t, err)
	require.Equal(t, core.Color{R: 1, G: 1, B: 1, A: 1}, flat.Color)
	require.Nil(t, flat.Texture)

	cube := h.mesh("cube")
	h.log.Reset()
	require.NoError(t, flat.Draw(h.ctx, cube, math.Mat4Identity()))

	prog := h.res.Fake(VertexBasic, FragmentFlat)
	require.NotNil(t, prog)
	assert.Equal(t, 1, h.log.Count("draw"))
	assert.Equal(t, 4, h.log.Count("uniform"))
	assert.Equal(t, 0, h.log.Count("texture"))
	assert.Equal(t, map[string]any{
		UniformViewProjection: h.ctx.Camera.ViewProjection(),
		UniformCameraPosition: math.NewVec3(0, 0, 5),
		UniformModel:          math.Mat4Identity(),
		UniformColor:          core.ColorWhite,
	}, prog.Snapshot())
	assert.False(t, prog.Active)
}

func TestFlatBindsTextureOnSlotZero(t *testing.T) {
	h := newHarness()
	flat, err := NewFlat(h.res)
	require.NoError(t, err)
	flat.Texture = &gfxtest.Texture{Name: "albedo"}

	require.NoError(t, flat.Draw(h.ctx, h.mesh("quad"), math.Mat4Identity()))
	prog := h.res.Fake(VertexBasic, FragmentFlat)
	assert.Equal(t, flat.Texture, prog.Uniforms[UniformTexture])
	assert.Equal(t, SlotTexture, prog.Slots[UniformTexture])
}

func TestCubemapMaterialUsesCubemapProgram(t *testing.T) {
	h := newHarness()
	sky := &gfxtest.Texture{Name: "sky", Cube: true}
	m, err := NewCubemap(h.res, sky)
	require.NoError(t, err)
	assert.Same(t, h.res.Fake(VertexBasic, FragmentCubemap), ProgramOf(m))
	assert.Equal(t, sky, m.Texture)
}

func TestMissingProgram(t *testing.T) {
	h := newHarness()
	h.res.Missing[FragmentPhong] = true
	_, err := NewPhong(h.res)
	assert.ErrorIs(t, err, gfx.ErrNoProgram)
}

func TestPhongLightFallback(t *testing.T) {
	a := Light{Position: math.NewVec3(-15, 5, -15)}
	b := Light{Position: math.NewVec3(15, 15, 0)}
	c := Light{Position: math.NewVec3(0, 99, 0)}

	tests := []struct {
		name   string
		lights []Light
		want   map[string]math.Vec3
	}{
		{"none", nil, map[string]math.Vec3{}},
		{"one", []Light{a}, map[string]math.Vec3{UniformLight1: a.Position}},
		{"two", []Light{a, b}, map[string]math.Vec3{UniformLight1: a.Position, UniformLight2: b.Position}},
		{"three", []Light{a, b, c}, map[string]math.Vec3{UniformLight1: a.Position, UniformLight2: b.Position}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.lights...)
			phong, err := NewPhong(h.res)
			require.NoError(t, err)
			require.NoError(t, phong.Draw(h.ctx, h.mesh("sphere"), math.Mat4Identity()))

			prog := h.res.Fake(VertexBasic, FragmentPhong)
			got := map[string]math.Vec3{}
			for _, name := range []string{UniformLight1, UniformLight2} {
				if v, ok := prog.Uniform(name); ok {
					got[name] = v.(math.Vec3)
				}
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, float32(6), prog.Uniforms["u_shininess"])
			assert.Equal(t, math.NewVec3(1, 0, 0), prog.Uniforms["u_ka"])
		})
	}
}

func TestPBRBuildsSixCubemapsInOrder(t *testing.T) {
	h := newHarness()
	env := envmap.Solid(64, 0, 0, 0, 255)
	m, err := NewPBR(h.res, env)
	require.NoError(t, err)

	require.Len(t, h.res.Cubemaps, EnvLevels)
	levels := m.EnvironmentLevels()
	require.Len(t, levels, EnvLevels)
	for i := 0; i < EnvLevels; i++ {
		lvl, _ := env.Level(i)
		tex := levels[i].(*gfxtest.Texture)
		assert.Same(t, h.res.Cubemaps[i], tex)
		assert.Equal(t, lvl.Width, tex.Width, "level %d", i)

		got, ok := m.EnvironmentLevel(i)
		assert.True(t, ok)
		assert.Same(t, tex, got)
	}
	_, ok := m.EnvironmentLevel(EnvLevels)
	assert.False(t, ok)
}

func TestPBRConstructionErrors(t *testing.T) {
	t.Run("short environment", func(t *testing.T) {
		h := newHarness()
		env := envmap.Solid(8, 0, 0, 0, 255)[:3]
		_, err := NewPBR(h.res, env)
		assert.ErrorIs(t, err, envmap.ErrLevelRange)
		assert.Contains(t, err.Error(), "level 3")
	})
	t.Run("upload failure", func(t *testing.T) {
		h := newHarness()
		h.res.FailCubemap = 5
		_, err := NewPBR(h.res, envmap.Solid(8, 0, 0, 0, 255))
		assert.ErrorContains(t, err, "level 4")
	})
}

func TestPBRSlots(t *testing.T) {
	h := newHarness(Light{Position: math.NewVec3(1, 2, 3)})
	m := h.pbr(t)
	m.BRDF = &gfxtest.Texture{Name: "brdf"}
	m.Maps.Albedo = &gfxtest.Texture{Name: "albedo"}
	m.Maps.Height = &gfxtest.Texture{Name: "height"}

	require.NoError(t, m.Draw(h.ctx, h.mesh("sphere"), math.Mat4Identity()))
	prog := h.res.Fake(VertexBasic, FragmentPBR)

	assert.Equal(t, map[string]int{
		"u_texture":        0,
		"u_texture_prem_0": 1,
		"u_texture_prem_1": 2,
		"u_texture_prem_2": 3,
		"u_texture_prem_3": 4,
		"u_texture_prem_4": 5,
		"u_brdf_lut":       6,
		"u_albedo_map":     7,
		"u_roughness_map":  8,
		"u_metal_map":      9,
		"u_normal_map":     10,
		"u_opacity_map":    11,
		"u_emission_map":   12,
		"u_occlusion_map":  13,
		"u_height_map":     14,
	}, prog.Slots)
	assert.Same(t, m.Maps.Albedo, prog.Uniforms["u_albedo_map"])
	assert.Nil(t, prog.Uniforms["u_normal_map"])
	assert.Equal(t, math.NewVec3(1, 2, 3), prog.Uniforms[UniformLight1])
	assert.NotContains(t, prog.Uniforms, UniformLight2)
	assert.Equal(t, float32(0.29), prog.Uniforms["u_roughness"])
	assert.Equal(t, float32(1), prog.Uniforms["u_occlusion_factor"])
}

func TestPBRGivesUnboundSamplersTheirOwnUnits(t *testing.T) {
	h := newHarness()
	m := h.pbr(t)
	m.Features[IBL] = true
	require.NoError(t, m.Draw(h.ctx, h.mesh("sphere"), math.Mat4Identity()))
	prog := h.res.Fake(VertexBasic, FragmentPBR)

	assert.Len(t, prog.Slots, EnvLevels+1+len(mapBindings))
	units := make(map[int]string)
	for name, slot := range prog.Slots {
		other, dup := units[slot]
		assert.False(t, dup, "%s shares unit %d with %s", name, slot, other)
		units[slot] = name
	}
	assert.Equal(t, SlotBRDF, prog.Slots["u_brdf_lut"])
	assert.Equal(t, SlotHeight, prog.Slots["u_height_map"])
}

func TestPBRRestoresPipelineState(t *testing.T) {
	h := newHarness()
	m := h.pbr(t)
	h.dev.Disable(gfx.Blend)
	h.dev.Enable(gfx.CullFace)

	mesh := h.mesh("sphere")
	var blend, cull bool
	mesh.OnRender = func() {
		blend = h.dev.IsEnabled(gfx.Blend)
		cull = h.dev.IsEnabled(gfx.CullFace)
	}
	require.NoError(t, m.Draw(h.ctx, mesh, math.Mat4Identity()))

	assert.True(t, blend)
	assert.False(t, cull)
	assert.Equal(t, gfx.SrcAlpha, h.dev.Src)
	assert.Equal(t, gfx.OneMinusSrcAlpha, h.dev.Dst)
	assert.False(t, h.dev.IsEnabled(gfx.Blend))
	assert.True(t, h.dev.IsEnabled(gfx.CullFace))

	mesh.Err = errors.New("boom")
	assert.Error(t, m.Draw(h.ctx, mesh, math.Mat4Identity()))
	assert.False(t, h.dev.IsEnabled(gfx.Blend))
	assert.True(t, h.dev.IsEnabled(gfx.CullFace))
}

func TestPBRFeatureToggleOnlyChangesItsFlag(t *testing.T) {
	for f := Feature(0); f < numFeatures; f++ {
		t.Run(f.String(), func(t *testing.T) {
			h := newHarness(Light{Position: math.NewVec3(4, 4, 4)})
			m := h.pbr(t)
			prog := h.res.Fake(VertexBasic, FragmentPBR)

			m.Features[f] = true
			m.BindUniforms(h.ctx, math.Mat4Identity())
			on := prog.Snapshot()

			m.Features[f] = false
			prog.Reset()
			m.BindUniforms(h.ctx, math.Mat4Identity())
			off := prog.Snapshot()

			assert.Equal(t, true, on[f.Uniform()])
			assert.Equal(t, false, off[f.Uniform()])
			delete(on, f.Uniform())
			delete(off, f.Uniform())
			assert.Equal(t, on, off)
		})
	}
}

func TestPBRBindsEveryFeatureFlag(t *testing.T) {
	h := newHarness()
	m := h.pbr(t)
	m.BindUniforms(h.ctx, math.Mat4Identity())
	prog := h.res.Fake(VertexBasic, FragmentPBR)

	for _, name := range []string{
		"u_use_punctual_light", "u_use_ibl", "u_use_albedo", "u_use_rough_map",
		"u_use_metal_map", "u_use_normal_map", "u_use_opacity_map",
		"u_use_emission_map", "u_use_occlusion_map", "u_use_height_map",
	} {
		assert.Equal(t, false, prog.Uniforms[name], name)
	}
}

func TestDescribeMatchesBoundFields(t *testing.T) {
	h := newHarness()
	phong, err := NewPhong(h.res)
	require.NoError(t, err)

	s := inspect.NewSheet()
	s.Describe("", phong)
	assert.Equal(t, []string{"Ia", "Id", "Is", "Ka", "Kd", "Ks", "Shininess"}, s.Paths())

	require.NoError(t, s.Set("Shininess", 500))
	assert.Equal(t, float32(MaxShininess), phong.Shininess)

	m := h.pbr(t)
	s = inspect.NewSheet()
	s.Describe("", m)
	require.NoError(t, s.Set("IBL", true))
	require.NoError(t, s.Set("Height Map", true))
	assert.True(t, m.Features[IBL])
	assert.True(t, m.Features[HeightMap])
	assert.Len(t, s.Properties(), int(numFeatures)+5)
}
