package ekq

import "math"

type Vec3d struct {
	X float64
	Y float64
	Z float64
}

func V3(x, y, z float64) Vec3d {
	return Vec3d{X: x, Y: y, Z: z}
}

func (v Vec3d) Add(o Vec3d) Vec3d {
	return Vec3d{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3d) Sub(o Vec3d) Vec3d {
	return Vec3d{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3d) Mul(f float64) Vec3d {
	return Vec3d{v.X * f, v.Y * f, v.Z * f}
}

// Div returns the zero vector when f is 0.
func (v Vec3d) Div(f float64) Vec3d {
	if f == 0 {
		return Vec3d{}
	}
	return Vec3d{v.X / f, v.Y / f, v.Z / f}
}

func (v Vec3d) Neg() Vec3d {
	return Vec3d{-v.X, -v.Y, -v.Z}
}

func (v Vec3d) Dot(o Vec3d) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3d) Cross(o Vec3d) Vec3d {
	return Vec3d{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3d) Length() float64 {
	return math.Sqrt(math.Abs(v.Dot(v)))
}

// Normalize returns v scaled to length 1, or v unchanged if it has no length.
func (v Vec3d) Normalize() Vec3d {
	length := v.Length()
	if length == 0 {
		return v
	}
	return v.Div(length)
}

// Project returns the projection of v onto o.
func (v Vec3d) Project(o Vec3d) Vec3d {
	d := o.Dot(o)
	if d == 0 {
		return Vec3d{}
	}
	return o.Mul(v.Dot(o) / d)
}

func (v Vec3d) Lerp(o Vec3d, t float64) Vec3d {
	return v.Add(o.Sub(v).Mul(t))
}

func (v Vec3d) Distance(o Vec3d) float64 {
	return v.Sub(o).Length()
}

// Angle returns the angle between v and o in radians.
func (v Vec3d) Angle(o Vec3d) float64 {
	l := v.Length() * o.Length()
	if l == 0 {
		return 0
	}
	c := v.Dot(o) / l
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// Rot3d holds one Euler angle per axis, in radians.
type Rot3d struct {
	RX float64
	RY float64
	RZ float64
}

func (r Rot3d) Add(o Rot3d) Rot3d {
	return Rot3d{r.RX + o.RX, r.RY + o.RY, r.RZ + o.RZ}
}

func (r Rot3d) Mul(f float64) Rot3d {
	return Rot3d{r.RX * f, r.RY * f, r.RZ * f}
}

// Rot3dDegrees builds a rotation from angles given in degrees.
func Rot3dDegrees(x, y, z float64) Rot3d {
	return Rot3d{DegToRad(x), DegToRad(y), DegToRad(z)}
}

func (r Rot3d) Degrees() (x, y, z float64) {
	return RadToDeg(r.RX), RadToDeg(r.RY), RadToDeg(r.RZ)
}

func DegToRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

func RadToDeg(radians float64) float64 {
	return radians * (180 / math.Pi)
}
