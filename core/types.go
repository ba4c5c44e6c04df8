package core

import (
	"pbr-viewer/math"
)

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// RGB returns the color channels as a vector, dropping alpha.
func (c Color) RGB() math.Vec3 {
	return math.Vec3{X: c.R, Y: c.G, Z: c.B}
}

// ColorFromRGB builds an opaque color from a vector.
func ColorFromRGB(v math.Vec3) Color {
	return Color{R: v.X, G: v.Y, B: v.Z, A: 1}
}

// Vertex is the interleaved layout uploaded to the GPU.
type Vertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	UV        math.Vec2
	Color     Color
	Tangent   math.Vec3
	Bitangent math.Vec3
}

// DrawMode forces a primitive topology for a mesh regardless of what the
// material requests. Line grids use DrawLines.
type DrawMode int

const (
	DrawDefault DrawMode = iota
	DrawLines
	DrawPoints
)

// MeshData is CPU-side geometry ready for upload.
type MeshData struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	DrawMode DrawMode
}
