package scene

import (
	stdmath "math"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

// cubeFaces lists each face by its normal and the two axes spanning it.
var cubeFaces = [6]struct{ n, u, v math.Vec3 }{
	{math.NewVec3(0, 0, 1), math.NewVec3(1, 0, 0), math.NewVec3(0, 1, 0)},
	{math.NewVec3(0, 0, -1), math.NewVec3(-1, 0, 0), math.NewVec3(0, 1, 0)},
	{math.NewVec3(0, 1, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, 0, -1)},
	{math.NewVec3(0, -1, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, 0, 1)},
	{math.NewVec3(1, 0, 0), math.NewVec3(0, 0, -1), math.NewVec3(0, 1, 0)},
	{math.NewVec3(-1, 0, 0), math.NewVec3(0, 0, 1), math.NewVec3(0, 1, 0)},
}

// Cube builds an axis-aligned cube centred on the origin with outward
// normals and per-face UVs.
func Cube(size float32) *core.MeshData {
	s := size / 2
	data := &core.MeshData{Name: "Cube"}
	corners := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for _, f := range cubeFaces {
		base := uint32(len(data.Vertices))
		for _, uv := range corners {
			p := f.n.Add(f.u.Mul(uv.X*2 - 1)).Add(f.v.Mul(uv.Y*2 - 1)).Mul(s)
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: p,
				Normal:   f.n,
				UV:       uv,
				Color:    core.ColorWhite,
			})
		}
		data.Indices = append(data.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	ComputeTangents(data)
	return data
}

// Sphere builds a UV sphere.
func Sphere(radius float32, segments, rings int) *core.MeshData {
	segments = max(segments, 3)
	rings = max(rings, 2)

	data := &core.MeshData{Name: "Sphere"}
	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi, cosPhi := float32(stdmath.Sin(phi)), float32(stdmath.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2 * stdmath.Pi / float64(segments)
			sinTheta, cosTheta := float32(stdmath.Sin(theta)), float32(stdmath.Cos(theta))

			normal := math.Vec3{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       math.Vec2{X: float32(seg) / float32(segments), Y: float32(ring) / float32(rings)},
				Color:    core.ColorWhite,
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)
			data.Indices = append(data.Indices,
				current, next, current+1,
				current+1, next, next+1,
			)
		}
	}
	ComputeTangents(data)
	return data
}

// Plane builds a subdivided XZ plane facing +Y.
func Plane(width, depth float32, subdivisions int) *core.MeshData {
	subdivisions = max(subdivisions, 1)
	data := &core.MeshData{Name: "Plane"}
	n := subdivisions + 1
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			data.Vertices = append(data.Vertices, core.Vertex{
				Position: math.Vec3{X: (u - 0.5) * width, Z: (v - 0.5) * depth},
				Normal:   math.Vec3Up,
				UV:       math.Vec2{X: u, Y: v},
				Color:    core.ColorWhite,
			})
		}
	}
	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			i := uint32(z*n + x)
			data.Indices = append(data.Indices, i, i+uint32(n), i+1, i+1, i+uint32(n), i+uint32(n)+1)
		}
	}
	ComputeTangents(data)
	return data
}

// Primitive builds a named built-in shape. Unknown names report false.
func Primitive(name string) (*core.MeshData, bool) {
	switch name {
	case "cube":
		return Cube(1), true
	case "sphere":
		return Sphere(1, 48, 32), true
	case "plane":
		return Plane(1, 1, 1), true
	}
	return nil, false
}
