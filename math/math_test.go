package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-4

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, float32(32), v1.Dot(v2))

	// Right x Up = Front in a right-handed system
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(3, 0, 0).Normalize()
	assert.Equal(t, NewVec3(1, 0, 0), n)
	assert.InDelta(t, 1, n.Length(), eps)

	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize())
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			assert.Equal(t, want, m[i][j], "[%d][%d]", i, j)
		}
	}
	assert.Equal(t, m, m.Mul(Mat4Identity()))
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	assert.Equal(t, translation, m.Translation())
	assert.Equal(t, translation, m.MulPoint(Vec3Zero))
}

func TestMat4WithTranslationKeepsLinearPart(t *testing.T) {
	rot := QuaternionFromAxisAngle(Vec3Up, 0.7)
	m := Mat4TRS(NewVec3(4, 5, 6), rot, NewVec3(2, 2, 2))

	moved := m.WithTranslation(NewVec3(-1, 0, 9))

	assert.Equal(t, NewVec3(-1, 0, 9), moved.Translation())
	for i := 0; i < 3; i++ {
		assert.Equal(t, m[i], moved[i], "row %d", i)
	}
}

func TestMat4TRSOrder(t *testing.T) {
	// Scale first, then rotate 90° about Y, then translate.
	m := Mat4TRS(NewVec3(10, 0, 0), QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2)), Splat(2))

	got := m.MulPoint(Vec3Right)
	assert.True(t, got.ApproxEqual(NewVec3(10, 0, -2), eps), "got %v", got)
}

func TestQuaternionRotation(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))

	result := q.RotateVector(Vec3Right)
	assert.True(t, result.ApproxEqual(NewVec3(0, 0, -1), 0.001), "got %v", result)

	viaMatrix := q.ToMat4().MulPoint(Vec3Right)
	assert.True(t, viaMatrix.ApproxEqual(result, 0.001), "matrix %v vs quaternion %v", viaMatrix, result)
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(float32(math.Pi/4), 16.0/9.0, 0.1, 100)

	assert.NotZero(t, m[0][0])
	assert.NotZero(t, m[1][1])
	assert.Equal(t, float32(-1), m[2][3])
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	// The view matrix moves the eye to the origin.
	assert.True(t, m.MulPoint(eye).ApproxEqual(Vec3Zero, 0.001))
	// The target ends up straight ahead on -Z.
	assert.True(t, m.MulPoint(Vec3Zero).ApproxEqual(NewVec3(0, 0, -5), 0.001))
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	v := Vec4{X: 2, Y: 4, Z: 6, W: 2}
	assert.Equal(t, NewVec3(1, 2, 3), v.ToVec3DivW())
	assert.Equal(t, NewVec3(2, 4, 6), Vec4{X: 2, Y: 4, Z: 6}.ToVec3DivW())

	moved := NewVec3(1, 2, 3).ToVec4(1).MulMat(Mat4Translation(NewVec3(1, 1, 1)))
	assert.Equal(t, Vec4{X: 2, Y: 3, Z: 4, W: 1}, moved)
}

func TestQuaternionNormalize(t *testing.T) {
	q := Quaternion{X: 0, Y: 2, Z: 0, W: 0}.Normalize()
	assert.Equal(t, Quaternion{Y: 1}, q)
	assert.Equal(t, Quaternion{}, Quaternion{}.Normalize())
}
