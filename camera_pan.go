package ekq

import "math"

const (
	// CameraPanners is the most panners or lockins a camera holds at once.
	CameraPanners = 32
	// trackRate is the fraction of the distance to a tracked position
	// covered per second when tracking is not locked.
	trackRate = 4.0
)

// Panner moves the camera's center towards Goal at Speed pixels per second.
type Panner struct {
	Goal      Vec3d
	Speed     float64
	Immediate bool
	Active    bool
	serial    int
}

// Lockin keeps the camera's view inside a rectangle.
type Lockin struct {
	X, Y, W, H float64
	Active     bool
}

// Tracker is anything the camera can follow.
type Tracker interface {
	Position() Vec3d
}

// NewPanner adds a panner on top of the others and returns its slot, or -1
// when all slots are in use. Inactive slots are reused.
func (c *Camera) NewPanner(goal Vec3d, speed float64, immediate bool) int {
	p := Panner{Goal: goal, Speed: speed, Immediate: immediate, Active: true}
	top := c.topPanner()
	if top >= 0 {
		p.serial = c.panners[top].serial + 1
	}
	for i := range c.panners {
		if !c.panners[i].Active {
			c.panners[i] = p
			return i
		}
	}
	if len(c.panners) >= CameraPanners {
		return -1
	}
	c.panners = append(c.panners, p)
	return len(c.panners) - 1
}

// Panner returns the panner in slot i, or nil.
func (c *Camera) Panner(i int) *Panner {
	if i < 0 || i >= len(c.panners) {
		return nil
	}
	return &c.panners[i]
}

func (c *Camera) topPanner() int {
	top := -1
	for i, p := range c.panners {
		if p.Active && (top < 0 || p.serial > c.panners[top].serial) {
			top = i
		}
	}
	return top
}

// FreeTopPanner drops the most recently added active panner.
func (c *Camera) FreeTopPanner() {
	if top := c.topPanner(); top >= 0 {
		c.panners[top].Active = false
	}
}

func (c *Camera) FreePanners() {
	c.panners = c.panners[:0]
}

// NewLockin adds a lockin region and returns its slot, or -1 when full.
func (c *Camera) NewLockin(x, y, w, h float64) int {
	l := Lockin{X: x, Y: y, W: w, H: h, Active: true}
	for i := range c.lockins {
		if !c.lockins[i].Active {
			c.lockins[i] = l
			return i
		}
	}
	if len(c.lockins) >= CameraPanners {
		return -1
	}
	c.lockins = append(c.lockins, l)
	return len(c.lockins) - 1
}

func (c *Camera) Lockin(i int) *Lockin {
	if i < 0 || i >= len(c.lockins) {
		return nil
	}
	return &c.lockins[i]
}

func (c *Camera) FreeLockins() {
	c.lockins = c.lockins[:0]
}

// Track makes the camera follow t. Passing nil stops tracking.
func (c *Camera) Track(t Tracker) {
	c.tracked = t
}

func (c *Camera) Panning() bool {
	return !c.HasFlag(CameraNoPan) && c.topPanner() >= 0
}

func (c *Camera) Tracking() bool {
	return !c.HasFlag(CameraNoTrack) && c.tracked != nil
}

func (c *Camera) LockedIn() bool {
	if c.HasFlag(CameraNoLockin) {
		return false
	}
	for _, l := range c.lockins {
		if l.Active {
			return true
		}
	}
	return false
}

// Center is the middle of the camera's view in 2D world coordinates.
func (c *Camera) Center() Vec3d {
	return Vec3d{c.position.X + c.w/2, c.position.Y + c.h/2, c.position.Z}
}

func (c *Camera) SetCenter(center Vec3d) {
	c.position.X = center.X - c.w/2
	c.position.Y = center.Y - c.h/2
}

// Steer applies panning, or tracking when nothing is panning, and then the
// lockins. It does nothing to a locked camera.
func (c *Camera) Steer(dt float64) {
	if c.HasFlag(CameraLock) {
		return
	}
	if c.Panning() {
		c.applyPanner(dt)
	} else if c.Tracking() {
		c.applyTracking(dt)
	}
	if c.LockedIn() {
		c.applyLockins()
	}
}

func (c *Camera) applyPanner(dt float64) {
	top := c.topPanner()
	p := &c.panners[top]
	center := c.Center()
	delta := Vec3d{p.Goal.X - center.X, p.Goal.Y - center.Y, 0}
	dist := delta.Length()
	step := p.Speed * dt
	if p.Immediate || dist <= step {
		c.SetCenter(Vec3d{p.Goal.X, p.Goal.Y, center.Z})
		p.Active = false
		return
	}
	c.SetCenter(center.Add(delta.Mul(step / dist)))
}

func (c *Camera) applyTracking(dt float64) {
	target := c.tracked.Position()
	target.Z = c.position.Z
	if c.HasFlag(CameraTrackLock) {
		c.SetCenter(target)
		return
	}
	c.SetCenter(c.Center().Lerp(target, math.Min(1, dt*trackRate)))
}

// applyLockins keeps the view inside the first active lockin. A view larger
// than the lockin is centered on it.
func (c *Camera) applyLockins() {
	for _, l := range c.lockins {
		if !l.Active {
			continue
		}
		c.position.X = lockAxis(c.position.X, c.w, l.X, l.W)
		c.position.Y = lockAxis(c.position.Y, c.h, l.Y, l.H)
		return
	}
}

func lockAxis(at, size, min, span float64) float64 {
	if size >= span {
		return min + (span-size)/2
	}
	if at < min {
		return min
	}
	if at+size > min+span {
		return min + span - size
	}
	return at
}

// WorldToScreen converts 2D world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	return x - c.position.X, y - c.position.Y
}

func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	return x + c.position.X, y + c.position.Y
}

// CanSee reports whether the rectangle overlaps the camera's view.
func (c *Camera) CanSee(x, y, w, h float64) bool {
	if x+w < c.position.X || y+h < c.position.Y {
		return false
	}
	if x > c.position.X+c.w || y > c.position.Y+c.h {
		return false
	}
	return true
}
