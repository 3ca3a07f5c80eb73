package ekq

import "testing"

func wallCorners(z, x, y int, dir MazeDirection, size float64) []Vec3d {
	tr := WallTransform(z, x, y, dir, size)
	var out []Vec3d
	for _, q := range wallQuad {
		out = append(out, tr.Apply(q))
	}
	return out
}

func TestWallTransformPlacement(t *testing.T) {
	testCases := []struct {
		name  string
		dir   MazeDirection
		z     int
		x, y  int
		size  float64
		axis  func(Vec3d) float64
		plane float64
	}{
		{"down", MazeDown, 0, 0, 0, 1, func(v Vec3d) float64 { return v.Y }, 0},
		{"up", MazeUp, 0, 0, 0, 1, func(v Vec3d) float64 { return v.Y }, 1},
		{"north", MazeNorth, 1, 2, 3, 2, func(v Vec3d) float64 { return v.Z }, 6},
		{"south", MazeSouth, 0, 0, 0, 1, func(v Vec3d) float64 { return v.Z }, 1},
		{"east", MazeEast, 0, 0, 0, 1, func(v Vec3d) float64 { return v.X }, 1},
		{"west", MazeWest, 0, 4, 0, 1, func(v Vec3d) float64 { return v.X }, 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, c := range wallCorners(tc.z, tc.x, tc.y, tc.dir, tc.size) {
				if !almostEqual(tc.axis(c), tc.plane) {
					t.Errorf("corner %v is off the plane at %v", c, tc.plane)
				}
			}
		})
	}
}

func TestWallTransformSpansCell(t *testing.T) {
	corners := wallCorners(0, 0, 0, MazeDown, 1)
	minX, maxX, minZ, maxZ := 9.0, -9.0, 9.0, -9.0
	for _, c := range corners {
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minZ, maxZ = min(minZ, c.Z), max(maxZ, c.Z)
	}
	if !almostEqual(minX, 0) || !almostEqual(maxX, 1) || !almostEqual(minZ, 0) || !almostEqual(maxZ, 1) {
		t.Errorf("floor spans x %v..%v z %v..%v", minX, maxX, minZ, maxZ)
	}

	ramp := wallCorners(0, 0, 0, MazeRampN, 1)
	if almostEqual(ramp[0].Y, ramp[2].Y) {
		t.Errorf("ramp is level: %v", ramp)
	}
}

func TestWallIndices(t *testing.T) {
	testCases := []struct {
		kind  MazeWallType
		count int
	}{
		{MazeWallRectangle, 6},
		{MazeWallTriangleUL, 3},
		{MazeWallTriangleUR, 3},
		{MazeWallTriangleDL, 3},
		{MazeWallTriangleDR, 3},
		{0, 6},
	}
	for _, tc := range testCases {
		if got := len(wallIndices(tc.kind)); got != tc.count {
			t.Errorf("wallIndices(%d) has %d indices, want %d", tc.kind, got, tc.count)
		}
	}
}

func TestMazeDraw(t *testing.T) {
	tex := newMockBitmap("wall", 32, 32)
	m := newTestMaze(t, 1, mapStore{1: tex})
	if _, err := m.AddFloor(0, 2, 2); err != nil {
		t.Fatal(err)
	}
	m.AddWall(0, 0, 0, MazeDown, MazeWallRectangle, 1)
	m.AddWall(0, 1, 0, MazeNorth, MazeWallTriangleUL, 1)
	m.AddWall(0, 1, 1, MazeEast, MazeWallRectangle, 99)
	m.AddEmptyCell(0, 0, 1)

	b := newMockBackend()
	camera := Identity().Translate(0, 0, -5)
	b.UseTransform(camera)
	b.reset()
	m.Draw(b, 2)

	prims := b.filter("prim")
	if len(prims) != 2 {
		t.Fatalf("%d walls drawn, want 2", len(prims))
	}
	want := WallTransform(0, 0, 0, MazeDown, 2).Compose(camera)
	if !prims[0].transform.ApproxEqual(want, float64EqualityThreshold) {
		t.Errorf("first wall drawn with\n%v\nwant\n%v", prims[0].transform, want)
	}
	if len(prims[1].indices) != 3 || prims[1].bmp != tex {
		t.Errorf("triangle wall drawn with %d indices", len(prims[1].indices))
	}
	if !b.CurrentTransform().Equal(camera) {
		t.Errorf("camera transform not restored")
	}
	for _, v := range prims[0].vertices {
		if v.U < 0 || v.U > 1 || v.V < 0 || v.V > 1 {
			t.Errorf("vertex uv %v,%v outside 0..1", v.U, v.V)
		}
	}
}
