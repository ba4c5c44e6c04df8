package scene

import (
	"pbr-viewer/core"
	"pbr-viewer/math"
)

// Grid builds a flat XZ grid drawn as line pairs, spanning -size/2 to
// size/2 with divisions cells per axis. The centre line parallel to X is
// red and the one parallel to Z is blue.
func Grid(size float32, divisions int) *core.MeshData {
	divisions = max(divisions, 1)
	half := size / 2
	step := size / float32(divisions)

	gray := core.Color{R: 0.35, G: 0.35, B: 0.35, A: 1}
	red := core.Color{R: 0.8, G: 0.15, B: 0.15, A: 1}
	blue := core.Color{R: 0.15, G: 0.35, B: 0.9, A: 1}

	data := &core.MeshData{Name: "Grid", DrawMode: core.DrawLines}
	line := func(a, b math.Vec3, c core.Color) {
		base := uint32(len(data.Vertices))
		data.Vertices = append(data.Vertices,
			core.Vertex{Position: a, Normal: math.Vec3Up, Color: c},
			core.Vertex{Position: b, Normal: math.Vec3Up, Color: c},
		)
		data.Indices = append(data.Indices, base, base+1)
	}

	for i := 0; i <= divisions; i++ {
		d := -half + float32(i)*step
		cz, cx := gray, gray
		if i == divisions/2 {
			cz, cx = blue, red
		}
		line(math.Vec3{X: d, Z: -half}, math.Vec3{X: d, Z: half}, cz)
		line(math.Vec3{X: -half, Z: d}, math.Vec3{X: half, Z: d}, cx)
	}
	return data
}
