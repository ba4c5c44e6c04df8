package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pbr-viewer/math"
)

func distance(c *Camera) float32 { return c.Eye().Sub(c.Center()).Length() }

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, math.NewVec3(0, 0, 5), c.Eye())
	assert.Equal(t, float32(45), c.FOV())

	// The origin lands in the middle of the screen.
	clip := math.Vec3Zero.ToVec4(1).MulMat(c.ViewProjection())
	ndc := clip.ToVec3DivW()
	assert.InDelta(t, 0, ndc.X, 1e-5)
	assert.InDelta(t, 0, ndc.Y, 1e-5)
	assert.Greater(t, ndc.Z, float32(-1))
	assert.Less(t, ndc.Z, float32(1))
}

func TestCameraMatricesRefresh(t *testing.T) {
	c := NewCamera()
	vp := c.ViewProjection()
	c.SetAspect(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect(), 1e-5)
	assert.NotEqual(t, vp, c.ViewProjection())

	c.SetAspect(1920, 0)
	assert.InDelta(t, 1920.0/1080.0, c.Aspect(), 1e-5, "minimised window keeps the aspect")

	assert.Equal(t, c.View().Mul(c.Projection()), c.ViewProjection())
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	c := NewCamera()
	c.Orbit(0.7, 0.3)
	assert.InDelta(t, 5, distance(c), 1e-4)
	assert.Equal(t, math.Vec3Zero, c.Center())

	// Pitching straight over the pole is refused.
	c.LookAt(math.NewVec3(0, 0, 5), math.Vec3Zero, math.Vec3Up)
	c.Orbit(0, 1.5707964)
	assert.InDelta(t, 5, c.Eye().Z, 1e-4)
}

func TestCameraMove(t *testing.T) {
	c := NewCamera()
	c.Move(math.NewVec3(0, 0, 1))
	assert.InDelta(t, 4, c.Eye().Z, 1e-5)
	assert.InDelta(t, -1, c.Center().Z, 1e-5)

	c.MoveGlobal(math.NewVec3(1, 0, 0))
	assert.InDelta(t, -1, c.Eye().X, 1e-5)
	assert.InDelta(t, 5, distance(c), 1e-5)
}

func TestCameraChangeDistance(t *testing.T) {
	c := NewCamera()
	c.ChangeDistance(2)
	assert.InDelta(t, 3, distance(c), 1e-5)

	c.ChangeDistance(100)
	assert.InDelta(t, 0.001, distance(c), 1e-6)
	assert.Less(t, c.Center().Z, c.Eye().Z, "eye stays on the same side")
}
