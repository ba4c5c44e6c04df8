package inspect

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"pbr-viewer/math"
)

// Components is a model matrix split the way an editor shows it.
type Components struct {
	Position math.Vec3
	Rotation math.Vec3 // degrees, composed Rx*Ry*Rz so Z applies first
	Scale    math.Vec3
}

// toMGL reinterprets a row-vector matrix as the column-vector matrix with
// the same memory layout.
func toMGL(m math.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i*4+j] = m[i][j]
		}
	}
	return out
}

func fromMGL(m mgl32.Mat4) math.Mat4 {
	var out math.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[i*4+j]
		}
	}
	return out
}

// Decompose splits m into translation, XYZ euler rotation and scale.
// Shear is discarded.
func Decompose(m math.Mat4) Components {
	g := toMGL(m)
	sx, sy, sz := mgl32.Extract3DScale(g)

	var r mgl32.Mat3
	for col, s := range [3]float32{sx, sy, sz} {
		c := g.Col(col).Vec3()
		if s != 0 {
			c = c.Mul(1 / s)
		}
		r.SetCol(col, c)
	}

	var ax, ay, az float64
	sinY := float64(r.At(0, 2))
	if sinY > 1 {
		sinY = 1
	} else if sinY < -1 {
		sinY = -1
	}
	ay = stdmath.Asin(sinY)
	if stdmath.Abs(sinY) < 0.99999 {
		ax = stdmath.Atan2(float64(-r.At(1, 2)), float64(r.At(2, 2)))
		az = stdmath.Atan2(float64(-r.At(0, 1)), float64(r.At(0, 0)))
	} else {
		// Gimbal lock: fold the Z rotation into X.
		ax = stdmath.Atan2(float64(r.At(2, 1)), float64(r.At(1, 1)))
	}

	t := g.Col(3)
	return Components{
		Position: math.Vec3{X: t.X(), Y: t.Y(), Z: t.Z()},
		Rotation: math.Vec3{
			X: mgl32.RadToDeg(float32(ax)),
			Y: mgl32.RadToDeg(float32(ay)),
			Z: mgl32.RadToDeg(float32(az)),
		},
		Scale: math.Vec3{X: sx, Y: sy, Z: sz},
	}
}

// Recompose is the inverse of Decompose.
func Recompose(c Components) math.Mat4 {
	g := mgl32.Translate3D(c.Position.X, c.Position.Y, c.Position.Z).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.Rotation.X))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.Rotation.Y))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.Rotation.Z))).
		Mul4(mgl32.Scale3D(c.Scale.X, c.Scale.Y, c.Scale.Z))
	return fromMGL(g)
}
