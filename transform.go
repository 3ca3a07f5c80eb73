package ekq

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an immutable 4x4 transformation. Every builder method returns
// a new Transform whose operation is applied after the ones already in it,
// so Identity().Translate(p).RotateY(a) first moves a point by p, then
// rotates it around the Y axis.
type Transform struct {
	m mgl64.Mat4
}

func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// TransformFromMat wraps a raw column-major matrix.
func TransformFromMat(m mgl64.Mat4) Transform {
	return Transform{m: m}
}

func (t Transform) Mat4() mgl64.Mat4 {
	return t.m
}

func (t Transform) then(op mgl64.Mat4) Transform {
	return Transform{m: op.Mul4(t.m)}
}

func (t Transform) Translate(x, y, z float64) Transform {
	return t.then(mgl64.Translate3D(x, y, z))
}

func (t Transform) TranslateVec(v Vec3d) Transform {
	return t.Translate(v.X, v.Y, v.Z)
}

func (t Transform) Scale(x, y, z float64) Transform {
	return t.then(mgl64.Scale3D(x, y, z))
}

// Rotate rotates by angle radians around axis. A zero axis is a no-op.
func (t Transform) Rotate(axis Vec3d, angle float64) Transform {
	if axis.Length() == 0 {
		return t
	}
	n := axis.Normalize()
	return t.then(mgl64.HomogRotate3D(angle, mgl64.Vec3{n.X, n.Y, n.Z}))
}

func (t Transform) RotateX(angle float64) Transform {
	return t.then(mgl64.HomogRotate3DX(angle))
}

func (t Transform) RotateY(angle float64) Transform {
	return t.then(mgl64.HomogRotate3DY(angle))
}

func (t Transform) RotateZ(angle float64) Transform {
	return t.then(mgl64.HomogRotate3DZ(angle))
}

// RotateEuler applies r around X, then Y, then Z.
func (t Transform) RotateEuler(r Rot3d) Transform {
	return t.RotateX(r.RX).RotateY(r.RY).RotateZ(r.RZ)
}

// Orthographic maps the box left..right, top..bottom, near..far onto clip
// space. With top < bottom the y axis points down, as on screen.
func (t Transform) Orthographic(left, top, near, right, bottom, far float64) Transform {
	return t.then(mgl64.Ortho(left, right, bottom, top, near, far))
}

// Perspective applies a viewing frustum with the given near plane extents.
func (t Transform) Perspective(left, top, near, right, bottom, far float64) Transform {
	return t.then(mgl64.Frustum(left, right, bottom, top, near, far))
}

// Compose applies other after t.
func (t Transform) Compose(other Transform) Transform {
	return t.then(other.m)
}

func (t Transform) Invert() Transform {
	return Transform{m: t.m.Inv()}
}

// Apply transforms a point, including the perspective divide.
func (t Transform) Apply(p Vec3d) Vec3d {
	v := t.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	if v[3] != 0 && v[3] != 1 {
		return Vec3d{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
	}
	return Vec3d{v[0], v[1], v[2]}
}

// ApplyW transforms a point and returns the homogeneous result.
func (t Transform) ApplyW(p Vec3d) (x, y, z, w float64) {
	v := t.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return v[0], v[1], v[2], v[3]
}

func (t Transform) At(row, col int) float64 {
	return t.m.At(row, col)
}

func (t Transform) Equal(o Transform) bool {
	return t.m == o.m
}

func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	return t.m.ApproxEqualThreshold(o.m, eps)
}

func (t Transform) String() string {
	var sb strings.Builder
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sb.WriteString(fmt.Sprintf("%10.4f", t.m.At(r, c)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
