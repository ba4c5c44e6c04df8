package scene

import (
	"github.com/chewxy/math32"

	"pbr-viewer/math"
)

// Camera is a perspective look-at camera. Matrices are rebuilt lazily after
// any change.
type Camera struct {
	eye, center, up math.Vec3

	fov    float32 // vertical, degrees
	aspect float32
	near   float32
	far    float32

	view           math.Mat4
	projection     math.Mat4
	viewProjection math.Mat4
	dirty          bool
}

func NewCamera() *Camera {
	c := &Camera{}
	c.LookAt(math.NewVec3(0, 0, 5), math.Vec3Zero, math.Vec3Up)
	c.SetPerspective(45, 1, 0.1, 10000)
	return c
}

func (c *Camera) LookAt(eye, center, up math.Vec3) {
	c.eye, c.center, c.up = eye, center, up.Normalize()
	c.dirty = true
}

// SetPerspective takes the vertical field of view in degrees.
func (c *Camera) SetPerspective(fov, aspect, near, far float32) {
	c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	c.dirty = true
}

// SetAspect updates the aspect ratio from a framebuffer size. Zero heights
// (minimised windows) are ignored.
func (c *Camera) SetAspect(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
	c.dirty = true
}

func (c *Camera) Eye() math.Vec3    { return c.eye }
func (c *Camera) Center() math.Vec3 { return c.center }
func (c *Camera) Up() math.Vec3     { return c.up }
func (c *Camera) FOV() float32      { return c.fov }
func (c *Camera) Aspect() float32   { return c.aspect }

func (c *Camera) View() math.Mat4 {
	c.update()
	return c.view
}

func (c *Camera) Projection() math.Mat4 {
	c.update()
	return c.projection
}

func (c *Camera) ViewProjection() math.Mat4 {
	c.update()
	return c.viewProjection
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.view = math.Mat4LookAt(c.eye, c.center, c.up)
	c.projection = math.Mat4Perspective(c.fov*math32.Pi/180, c.aspect, c.near, c.far)
	c.viewProjection = c.view.Mul(c.projection)
	c.dirty = false
}

// axes returns the camera's right, up and back vectors in world space.
func (c *Camera) axes() (right, up, back math.Vec3) {
	return c.axesFrom(c.eye.Sub(c.center))
}

// Orbit rotates the eye around the center: yaw around the world up axis,
// then pitch around the camera's right axis. Pitch stops short of the poles.
func (c *Camera) Orbit(yaw, pitch float32) {
	offset := c.eye.Sub(c.center)
	dist := offset.Length()
	if dist == 0 {
		return
	}
	offset = math.QuaternionFromAxisAngle(c.up, yaw).RotateVector(offset)

	right, _, _ := c.axesFrom(offset)
	rotated := math.QuaternionFromAxisAngle(right, pitch).RotateVector(offset)
	const limit = 0.999
	if cos := rotated.Normalize().Dot(c.up); cos < limit && cos > -limit {
		offset = rotated
	}
	c.eye = c.center.Add(offset.Normalize().Mul(dist))
	c.dirty = true
}

func (c *Camera) axesFrom(offset math.Vec3) (right, up, back math.Vec3) {
	back = offset.Normalize()
	right = c.up.Cross(back).Normalize()
	up = back.Cross(right)
	return
}

// Move translates eye and center by delta expressed in camera space: +X
// strafes left, +Z moves forward, +Y moves down.
func (c *Camera) Move(delta math.Vec3) {
	right, up, back := c.axes()
	local := right.Mul(delta.X).Add(up.Mul(delta.Y)).Add(back.Mul(delta.Z))
	c.MoveGlobal(local)
}

// MoveGlobal translates eye and center by -delta in world space.
func (c *Camera) MoveGlobal(delta math.Vec3) {
	c.eye = c.eye.Sub(delta)
	c.center = c.center.Sub(delta)
	c.dirty = true
}

// ChangeDistance moves the eye toward the center by d, never closer than
// a millimetre.
func (c *Camera) ChangeDistance(d float32) {
	front := c.center.Sub(c.eye)
	length := math32.Max(front.Length()-d, 0.001)
	c.eye = c.center.Sub(front.Normalize().Mul(length))
	c.dirty = true
}
