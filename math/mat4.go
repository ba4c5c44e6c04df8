package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix used with row vectors (v' = v * M). Its memory layout
// matches OpenGL's column-major expectation, so it uploads without transpose.
// Translation lives in m[3][0..2]; a.Mul(b) applies a first, then b.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// MulPoint transforms a position (w = 1) and divides by w.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return v.ToVec4(1).MulMat(m).ToVec3DivW()
}

// Translation returns the translation row.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m[3][0], Y: m[3][1], Z: m[3][2]}
}

// WithTranslation returns a copy of m whose translation row is t. The
// rotation and scale part is left untouched.
func (m Mat4) WithTranslation(t Vec3) Mat4 {
	m[3][0], m[3][1], m[3][2] = t.X, t.Y, t.Z
	return m
}

// ApproxEqual compares every element within eps.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math32.Abs(m[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

func Mat4Translation(translation Vec3) Mat4 {
	return Mat4Identity().WithTranslation(translation)
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

// Mat4TRS builds scale, then rotation, then translation.
func Mat4TRS(translation Vec3, rotation Quaternion, scale Vec3) Mat4 {
	return Mat4Scale(scale).Mul(rotation.ToMat4()).Mul(Mat4Translation(translation))
}

func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	tanHalfFovy := math32.Tan(fovY / 2)

	var m Mat4
	m[0][0] = 1 / (aspect * tanHalfFovy)
	m[1][1] = 1 / tanHalfFovy
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}
