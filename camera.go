package ekq

import (
	"math"
)

const (
	DefaultFarPlane = 1000.0
	// fov limits in degrees; tan(fov/2) is undefined at 0 and 180.
	minFOV = 0.1
	maxFOV = 179.9
)

// CameraFlag changes how the 2D helpers move the camera.
type CameraFlag int

const (
	CameraNoPan CameraFlag = 1 << iota
	CameraNoTrack
	CameraNoLockin
	CameraLock
	// CameraTrackLock snaps to the tracked position instead of easing towards it.
	CameraTrackLock
)

// Frustum holds the near plane extents of the current perspective projection.
type Frustum struct {
	Left, Top, Near    float64
	Right, Bottom, Far float64
}

type Camera struct {
	position Vec3d
	look     Vec3d
	up       Vec3d
	speed    Vec3d
	torque   Rot3d
	alpha    float64
	theta    float64
	fov      float64
	w, h     float64
	far      float64
	flags    CameraFlag

	view         Transform
	perspective  Transform
	orthographic Transform
	frustum      Frustum

	panners []Panner
	lockins []Lockin
	tracked Tracker
}

// NewCamera creates a camera at position looking along look, with a viewport
// of w by h pixels and a field of view of fov degrees.
func NewCamera(position, look Vec3d, w, h int, fov float64) *Camera {
	c := &Camera{
		position: position,
		look:     look,
		up:       Vec3d{0, 1, 0},
		w:        float64(w),
		h:        float64(h),
		far:      DefaultFarPlane,
	}
	c.SetFOV(fov)
	c.Update(0)
	return c
}

// Update rebuilds the three transforms from the current state, then moves
// the camera by speed*dt. dt is used as given.
func (c *Camera) Update(dt float64) {
	c.rebuild()
	c.position = c.position.Add(c.speed.Mul(dt))
}

func (c *Camera) rebuild() {
	c.orthographic = Identity().Orthographic(0, 0, -1, c.w, c.h, c.far)

	f := math.Tan(c.fov / 2)
	aspect := 1.0
	if c.h != 0 {
		aspect = c.w / c.h
	}
	c.frustum = Frustum{
		Left: -f * aspect, Top: f, Near: 1,
		Right: f * aspect, Bottom: -f, Far: c.far,
	}
	fr := c.frustum
	c.perspective = Identity().
		Translate(0, 0, -1).
		Perspective(fr.Left, fr.Top, fr.Near, fr.Right, fr.Bottom, fr.Far)

	c.view = Identity().
		TranslateVec(c.position).
		Rotate(Vec3d{0, -1, 0}, c.alpha).
		Rotate(Vec3d{-1, 0, 0}, c.theta)
}

// ApplyView installs the view transform as the current transform.
func (c *Camera) ApplyView(b Backend) {
	b.UseTransform(c.view)
}

func (c *Camera) ApplyPerspective(b Backend) {
	b.UseProjectionTransform(c.perspective)
}

// ApplyOrthographic installs the 2D projection used for overlays. Callers
// also need an identity view before drawing in screen coordinates.
func (c *Camera) ApplyOrthographic(b Backend) {
	b.UseProjectionTransform(c.orthographic)
}

func (c *Camera) View() Transform { return c.view }
func (c *Camera) Perspective() Transform { return c.perspective }
func (c *Camera) Orthographic() Transform { return c.orthographic }
func (c *Camera) Frustum() Frustum { return c.frustum }

func (c *Camera) Position() Vec3d { return c.position }
func (c *Camera) SetPosition(p Vec3d) { c.position = p }
func (c *Camera) X() float64 { return c.position.X }
func (c *Camera) Y() float64 { return c.position.Y }
func (c *Camera) Z() float64 { return c.position.Z }
func (c *Camera) SetX(x float64) { c.position.X = x }
func (c *Camera) SetY(y float64) { c.position.Y = y }
func (c *Camera) SetZ(z float64) { c.position.Z = z }
func (c *Camera) Look() Vec3d { return c.look }
func (c *Camera) SetLook(look Vec3d) { c.look = look }
func (c *Camera) Up() Vec3d { return c.up }
func (c *Camera) Speed() Vec3d { return c.speed }
func (c *Camera) SetSpeed(s Vec3d) { c.speed = s }
func (c *Camera) AddSpeed(d Vec3d) { c.speed = c.speed.Add(d) }
func (c *Camera) Torque() Rot3d { return c.torque }
func (c *Camera) SetTorque(r Rot3d) { c.torque = r }
func (c *Camera) Width() float64 { return c.w }
func (c *Camera) Height() float64 { return c.h }
func (c *Camera) FarPlane() float64 { return c.far }
func (c *Camera) Flags() CameraFlag { return c.flags }
func (c *Camera) SetFlags(f CameraFlag) { c.flags = f }
func (c *Camera) HasFlag(f CameraFlag) bool { return c.flags&f == f }

func (c *Camera) SetSize(w, h int) {
	c.w, c.h = float64(w), float64(h)
}

// SetFarPlane ignores planes at or in front of the near plane.
func (c *Camera) SetFarPlane(far float64) {
	if far > 1 {
		c.far = far
	}
}

// Alpha returns the yaw in degrees.
func (c *Camera) Alpha() float64 { return RadToDeg(c.alpha) }

func (c *Camera) SetAlpha(degrees float64) { c.alpha = DegToRad(degrees) }

// Theta returns the pitch in degrees.
func (c *Camera) Theta() float64 { return RadToDeg(c.theta) }

func (c *Camera) SetTheta(degrees float64) { c.theta = DegToRad(degrees) }

// FOV returns the field of view in degrees.
func (c *Camera) FOV() float64 { return RadToDeg(c.fov) }

// SetFOV clamps degrees into the open range (0, 180) and returns the value
// actually stored.
func (c *Camera) SetFOV(degrees float64) float64 {
	if math.IsNaN(degrees) || degrees < minFOV {
		degrees = minFOV
	} else if degrees > maxFOV {
		degrees = maxFOV
	}
	c.fov = DegToRad(degrees)
	return degrees
}
