// Package camera provides the perspective camera and orbit controls used by
// the blob scene.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective holds projection parameters.
type Perspective struct {
	FOV    float32 // vertical field of view, degrees
	Near   float32
	Far    float32
	Aspect float32
}

// Projection returns the projection matrix.
func (p Perspective) Projection() mgl32.Mat4 {
	aspect := p.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), aspect, p.Near, p.Far)
}

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Perspective

	Target mgl32.Vec3

	// Spherical coordinates around Target
	Distance float32
	Polar    float32 // angle from +Y, radians
	Azimuth  float32 // angle around Y from +Z, radians

	// Constraints
	MinPolar    float32
	MaxPolar    float32
	MinDistance float32
	MaxDistance float32

	// Controls
	EnableRotate bool
	EnableZoom   bool
	EnablePan    bool
	RotateSpeed  float32
	ZoomSpeed    float32
}

// NewOrbitCamera creates a camera at position looking at the origin.
func NewOrbitCamera(position mgl32.Vec3, fov float32) *OrbitCamera {
	c := &OrbitCamera{
		Perspective: Perspective{FOV: fov, Near: 0.1, Far: 1000, Aspect: 1},
		MinPolar:    0,
		MaxPolar:    math.Pi,
		MinDistance: 0.5,
		MaxDistance: 100,
		RotateSpeed: 1,
		ZoomSpeed:   0.1,
	}
	c.SetPosition(position)
	return c
}

// SetPosition places the camera, deriving spherical coordinates from the
// offset to Target.
func (c *OrbitCamera) SetPosition(p mgl32.Vec3) {
	off := p.Sub(c.Target)
	c.Distance = off.Len()
	if c.Distance == 0 {
		c.Polar, c.Azimuth = math.Pi/2, 0
		return
	}
	c.Polar = float32(math.Acos(float64(mgl32.Clamp(off[1]/c.Distance, -1, 1))))
	c.Azimuth = float32(math.Atan2(float64(off[0]), float64(off[2])))
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	sinP, cosP := math.Sincos(float64(c.Polar))
	sinA, cosA := math.Sincos(float64(c.Azimuth))
	return c.Target.Add(mgl32.Vec3{
		c.Distance * float32(sinP*sinA),
		c.Distance * float32(cosP),
		c.Distance * float32(sinP*cosA),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.ViewMatrix())
}

// HandleDrag rotates the camera by a pointer drag of (dx, dy) pixels. A drag
// across the full viewport height turns one full revolution at RotateSpeed 1.
func (c *OrbitCamera) HandleDrag(dx, dy, viewportHeight float32) {
	if !c.EnableRotate || viewportHeight <= 0 {
		return
	}
	k := 2 * math.Pi / viewportHeight * c.RotateSpeed
	c.Azimuth -= dx * k
	c.Polar -= dy * k
	c.clamp()
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	if !c.EnableZoom {
		return
	}
	c.Distance -= delta * c.Distance * c.ZoomSpeed
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandlePan moves the target in the camera's screen plane.
func (c *OrbitCamera) HandlePan(right, up float32) {
	if !c.EnablePan {
		return
	}
	view := c.ViewMatrix()
	r := mgl32.Vec3{view[0], view[4], view[8]}
	u := mgl32.Vec3{view[1], view[5], view[9]}
	speed := c.Distance * 0.001
	c.Target = c.Target.Add(r.Mul(right * speed)).Add(u.Mul(up * speed))
}

func (c *OrbitCamera) clamp() {
	c.Polar = mgl32.Clamp(c.Polar, c.MinPolar, c.MaxPolar)
}
