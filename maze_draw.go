package ekq

import (
	"image/color"
	"math"
)

// mazeWallPlacement turns the unit wall quad, which lies in the XY plane
// facing +Z and is centered on the origin, into one wall slot of a unit cell.
type mazeWallPlacement struct {
	rotation Rot3d
	offset   Vec3d
}

// A cell spans [0,1] on every axis: X is east, Y is up and Z is south.
// Walls face into the cell.
var mazeWallPlacements = [MazeDirections]mazeWallPlacement{
	MazeDown:  {Rot3d{RX: -math.Pi / 2}, Vec3d{0.5, 0, 0.5}},
	MazeNorth: {Rot3d{}, Vec3d{0.5, 0.5, 0}},
	MazeEast:  {Rot3d{RY: -math.Pi / 2}, Vec3d{1, 0.5, 0.5}},
	MazeSouth: {Rot3d{RY: math.Pi}, Vec3d{0.5, 0.5, 1}},
	MazeWest:  {Rot3d{RY: math.Pi / 2}, Vec3d{0, 0.5, 0.5}},
	MazeUp:    {Rot3d{RX: math.Pi / 2}, Vec3d{0.5, 1, 0.5}},
	MazeRampN: {Rot3d{RX: -math.Pi / 4}, Vec3d{0.5, 0.5, 0.5}},
	MazeRampE: {Rot3d{RX: -math.Pi / 4, RY: -math.Pi / 2}, Vec3d{0.5, 0.5, 0.5}},
	MazeRampS: {Rot3d{RX: -math.Pi / 4, RY: math.Pi}, Vec3d{0.5, 0.5, 0.5}},
	MazeRampW: {Rot3d{RX: -math.Pi / 4, RY: math.Pi / 2}, Vec3d{0.5, 0.5, 0.5}},
}

var wallQuad = [4]Vec3d{
	{-0.5, 0.5, 0},
	{0.5, 0.5, 0},
	{0.5, -0.5, 0},
	{-0.5, -0.5, 0},
}

func wallIndices(kind MazeWallType) []int {
	switch kind {
	case MazeWallTriangleUL:
		return []int{0, 1, 3}
	case MazeWallTriangleUR:
		return []int{0, 1, 2}
	case MazeWallTriangleDL:
		return []int{0, 2, 3}
	case MazeWallTriangleDR:
		return []int{1, 2, 3}
	}
	return quadIndices
}

// WallTransform places the wall quad of slot dir of cell x, y on floor z,
// for cells size units wide. The quad is scaled to the cell first.
func WallTransform(z, x, y int, dir MazeDirection, size float64) Transform {
	p := mazeWallPlacements[dir]
	cell := Vec3d{float64(x), float64(z), float64(y)}
	return Identity().
		Scale(size, size, size).
		RotateEuler(p.rotation).
		TranslateVec(cell.Mul(size)).
		TranslateVec(p.offset.Mul(size))
}

func wallVertices() []Vertex {
	uv := [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	vs := make([]Vertex, 4)
	for i, q := range wallQuad {
		vs[i] = Vertex{X: q.X, Y: q.Y, Z: q.Z, U: uv[i][0], V: uv[i][1], Color: color.RGBA{255, 255, 255, 255}}
	}
	return vs
}

// Draw draws every used wall with a texture, floor by floor, row by row and
// in slot order. Cells without walls are skipped. The transform current on
// entry is treated as the camera and is current again on return.
func (m *Maze) Draw(b Backend, size float64) {
	camera := b.CurrentTransform()
	m.eachCell(func(c *MazeCell) {
		if !c.visible {
			return
		}
		for d := range c.Walls {
			w := &c.Walls[d]
			if !w.Used || w.bmp == nil {
				continue
			}
			model := WallTransform(c.Z, c.X, c.Y, MazeDirection(d), size)
			b.UseTransform(model.Compose(camera))
			b.DrawIndexedPrim(wallVertices(), w.bmp, wallIndices(w.Type))
			b.UseTransform(camera)
		}
	})
}
