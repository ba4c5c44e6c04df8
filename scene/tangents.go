package scene

import (
	"pbr-viewer/core"
	"pbr-viewer/math"
)

// ComputeTangents fills per-vertex tangent frames for normal mapping.
// Triangles with a degenerate UV area contribute nothing. Line meshes are
// left alone.
func ComputeTangents(m *core.MeshData) {
	if m.DrawMode != core.DrawDefault {
		return
	}
	for i := range m.Vertices {
		m.Vertices[i].Tangent = math.Vec3{}
		m.Vertices[i].Bitangent = math.Vec3{}
	}

	accum := func(i0, i1, i2 uint32) {
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]
		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		du1, dv1 := v1.UV.X-v0.UV.X, v1.UV.Y-v0.UV.Y
		du2, dv2 := v2.UV.X-v0.UV.X, v2.UV.Y-v0.UV.Y

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			return
		}
		r := 1 / denom
		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))
		for _, i := range [3]uint32{i0, i1, i2} {
			m.Vertices[i].Tangent = m.Vertices[i].Tangent.Add(t)
			m.Vertices[i].Bitangent = m.Vertices[i].Bitangent.Add(b)
		}
	}

	if len(m.Indices) > 0 {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			accum(m.Indices[i], m.Indices[i+1], m.Indices[i+2])
		}
	} else {
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			accum(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	// Gram-Schmidt against the normal.
	for i := range m.Vertices {
		v := &m.Vertices[i]
		n := v.Normal
		t := v.Tangent.Sub(n.Mul(n.Dot(v.Tangent)))
		if t.Dot(t) < 1e-8 {
			if abs32(n.X) < 0.9 {
				t = math.Vec3{X: 1}.Sub(n.Mul(n.X))
			} else {
				t = math.Vec3{Y: 1}.Sub(n.Mul(n.Y))
			}
		}
		v.Tangent = t.Normalize()

		b := v.Bitangent
		if b.Dot(b) < 1e-8 {
			b = n.Cross(v.Tangent)
		}
		v.Bitangent = b.Normalize()
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
