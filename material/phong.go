package material

import (
	"fmt"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/inspect"
	"pbr-viewer/math"
)

// Phong parameter ranges exposed to the editor.
const (
	MinShininess = 1
	MaxShininess = 50
)

// Phong is the classic ambient + diffuse + specular model lit by the first
// two scene lights.
type Phong struct {
	Base
	Ka, Kd, Ks math.Vec3 // material reflectance
	Ia, Id, Is math.Vec3 // light intensities
	Shininess  float32
}

func NewPhong(shaders gfx.ShaderSource) (*Phong, error) {
	p, err := shaders.Program(VertexBasic, FragmentPhong)
	if err != nil {
		return nil, fmt.Errorf("phong material: %w", err)
	}
	return &Phong{
		Base:      Base{Program: p, Color: core.ColorWhite},
		Ka:        math.NewVec3(1, 0, 0),
		Kd:        math.NewVec3(0.5, 0, 0),
		Ks:        math.NewVec3(1, 1, 1),
		Ia:        math.Splat(0.05),
		Id:        math.Splat(0.5),
		Is:        math.Splat(0.5),
		Shininess: 6,
	}, nil
}

// phongLights pairs each light index with its uniform.
var phongLights = [...]string{UniformLight1, UniformLight2}

func (m *Phong) BindUniforms(ctx *RenderContext, model math.Mat4) {
	m.bindCamera(ctx, model)

	p := m.Program
	p.SetVec3("u_ka", m.Ka)
	p.SetVec3("u_kd", m.Kd)
	p.SetVec3("u_ks", m.Ks)
	p.SetVec3("u_ia", m.Ia)
	p.SetVec3("u_id", m.Id)
	p.SetVec3("u_is", m.Is)
	p.SetFloat("u_shininess", m.Shininess)

	for i, name := range phongLights {
		l, ok := ctx.Lights.Light(i)
		if !ok {
			ctx.logger().Debug("light missing, uniform skipped",
				"material", "phong", "uniform", name, "index", i)
			continue
		}
		p.SetVec3(name, l.Position)
	}
}

func (m *Phong) Draw(ctx *RenderContext, mesh gfx.Mesh, model math.Mat4) error {
	return draw(ctx, m, mesh, model)
}

func (m *Phong) Describe(ins inspect.Inspector) {
	ins.Slider("Shininess", &m.Shininess, MinShininess, MaxShininess)
	ins.ColorVec("Ka", &m.Ka)
	ins.ColorVec("Kd", &m.Kd)
	ins.ColorVec("Ks", &m.Ks)
	ins.ColorVec("Ia", &m.Ia)
	ins.ColorVec("Id", &m.Id)
	ins.ColorVec("Is", &m.Is)
}
