package ekq

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func buildRoundTripMaze(t *testing.T) *Maze {
	t.Helper()
	m := newTestMaze(t, 3, nil)
	for z := 0; z < 3; z += 2 {
		if _, err := m.AddFloor(z, 3, 2); err != nil {
			t.Fatal(err)
		}
	}
	m.AddWall(0, 0, 0, MazeDown, MazeWallRectangle, 4)
	m.AddWall(0, 0, 0, MazeNorth, MazeWallTriangleDR, 5)
	m.AddWall(0, 2, 1, MazeRampW, MazeWallRectangle, 6)
	m.SetWallItem(0, 2, 1, MazeRampW, 11, 12)
	m.AddCellItem(2, 1, 1, 20, 21, 22)
	m.AddWall(2, 1, 1, MazeUp, MazeWallTriangleUL, 7)
	m.SetPillar(2, 1, 1, 2, 8)
	return m
}

func TestMazeRoundTrip(t *testing.T) {
	m := buildRoundTripMaze(t)
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := LoadMaze(&buf, nil)
	if err != nil {
		t.Fatalf("LoadMaze() error = %v", err)
	}
	if got.Height() != 3 {
		t.Fatalf("Height() = %d, want 3", got.Height())
	}
	if got.Floor(1) != nil {
		t.Errorf("absent floor 1 loaded")
	}
	for z := 0; z < 3; z++ {
		f := m.Floor(z)
		if f == nil {
			continue
		}
		gf := got.Floor(z)
		if gf == nil || gf.Width != f.Width || gf.Depth != f.Depth {
			t.Fatalf("floor %d = %+v", z, gf)
		}
		for y := 0; y < f.Depth; y++ {
			for x := 0; x < f.Width; x++ {
				want, have := m.Cell(z, x, y), got.Cell(z, x, y)
				if (want == nil) != (have == nil) {
					t.Errorf("cell %d %d %d present %v, want %v", z, x, y, have != nil, want != nil)
					continue
				}
				if want == nil {
					continue
				}
				if have.Item != want.Item || have.Visible() != want.Visible() {
					t.Errorf("cell %d %d %d = %+v, want %+v", z, x, y, have.Item, want.Item)
				}
				for d := range want.Walls {
					ww, hw := want.Walls[d], have.Walls[d]
					if ww.Used != hw.Used || ww.Texture() != hw.Texture() || ww.Type != hw.Type || ww.Item != hw.Item {
						t.Errorf("wall %d of cell %d %d %d = %+v, want %+v", d, z, x, y, hw, ww)
					}
				}
				for i := range want.Pillars {
					if want.Pillars[i].Used != have.Pillars[i].Used || want.Pillars[i].Texture() != have.Pillars[i].Texture() {
						t.Errorf("pillar %d of cell %d %d %d differs", i, z, x, y)
					}
				}
			}
		}
	}
}

func TestLoadMazeResolvesTextures(t *testing.T) {
	m := buildRoundTripMaze(t)
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatal(err)
	}
	tex := newMockBitmap("t4", 32, 32)
	got, err := LoadMaze(&buf, mapStore{4: tex})
	if err != nil {
		t.Fatal(err)
	}
	if got.Wall(0, 0, 0, MazeDown).Bitmap() != tex {
		t.Errorf("texture 4 not resolved on load")
	}
	if got.Wall(0, 0, 0, MazeNorth).Bitmap() != nil {
		t.Errorf("unknown texture resolved")
	}
}

const mismatchMaze = `
[maze]
height = 1

[maze floor 0]
z = 0
width = 2
depth = 1

[maze cell 0 0 0]
z = 0
x = 0
y = 0

[maze wall 0 0 0 1]
direction = 3
used = true
texture = 1
type = 1

[maze cell 0 1 0]
z = 0
x = 1
y = 0

[maze wall 0 1 0 2]
direction = 2
used = true
texture = 1
type = 1
`

func TestLoadMazeDirectionMismatch(t *testing.T) {
	m, err := LoadMaze(strings.NewReader(mismatchMaze), nil)
	if err != nil {
		t.Fatalf("LoadMaze() error = %v", err)
	}
	if m.Cell(0, 0, 0) != nil {
		t.Errorf("cell with a mismatched wall direction was loaded")
	}
	c := m.Cell(0, 1, 0)
	if c == nil || !c.Wall(MazeEast).Used {
		t.Errorf("valid cell next to the bad one was not loaded")
	}
}

func TestLoadMazeErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"no maze section", "[other]\nkey = 1\n"},
		{"zero height", "[maze]\nheight = 0\n"},
		{"huge height", "[maze]\nheight = 10001\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadMaze(strings.NewReader(tc.data), nil); err == nil {
				t.Errorf("LoadMaze() succeeded")
			}
		})
	}
}

func TestLoadMazeMisplacedCell(t *testing.T) {
	data := "[maze]\nheight = 1\n[maze floor 0]\nz = 0\nwidth = 1\ndepth = 1\n[maze cell 0 0 0]\nz = 0\nx = 5\ny = 0\n"
	m, err := LoadMaze(strings.NewReader(data), nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Cell(0, 0, 0) != nil {
		t.Errorf("cell recorded at another position was loaded")
	}
}

func TestLoadMazeLargeSparseFloor(t *testing.T) {
	data := "[maze]\nheight = 1\n" +
		"[maze floor 0]\nz = 0\nwidth = 10000\ndepth = 10000\n" +
		"[maze cell 0 9999 9998]\nz = 0\nx = 9999\ny = 9998\n" +
		"[maze wall 0 9999 9998 0]\ndirection = 0\nused = true\ntexture = 3\n" +
		"[maze cell 0 5 0]\nz = 0\nx = 5\ny = 0\n"
	m, err := LoadMaze(strings.NewReader(data), nil)
	if err != nil {
		t.Fatalf("LoadMaze() error = %v", err)
	}
	f := m.Floor(0)
	if f == nil || f.Width != 10000 || f.Depth != 10000 {
		t.Fatalf("floor = %+v", f)
	}
	if f.cells.Len() != 2 {
		t.Errorf("%d cells stored, want 2", f.cells.Len())
	}
	if c := m.Cell(0, 9999, 9998); c == nil || !c.Wall(MazeDown).Used {
		t.Errorf("far corner cell not loaded: %+v", c)
	}
	var visited [][2]int
	m.eachCell(func(c *MazeCell) { visited = append(visited, [2]int{c.X, c.Y}) })
	if len(visited) != 2 || visited[0] != [2]int{5, 0} || visited[1] != [2]int{9999, 9998} {
		t.Errorf("cells visited as %v, want row order", visited)
	}
}

func TestLoadMazeCellOutsideFloor(t *testing.T) {
	testCases := []struct {
		name    string
		section string
	}{
		{"past the width", "[maze cell 0 2 0]\nz = 0\nx = 2\ny = 0\n"},
		{"negative", "[maze cell 0 -1 0]\nz = 0\nx = -1\ny = 0\n"},
		{"missing floor", "[maze cell 1 0 0]\nz = 1\nx = 0\ny = 0\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := "[maze]\nheight = 2\n[maze floor 0]\nz = 0\nwidth = 2\ndepth = 2\n" + tc.section
			m, err := LoadMaze(strings.NewReader(data), nil)
			if err != nil {
				t.Fatalf("LoadMaze() error = %v", err)
			}
			n := 0
			m.eachCell(func(*MazeCell) { n++ })
			if n != 0 {
				t.Errorf("%d cells loaded, want 0", n)
			}
		})
	}
}

func TestParseCellSection(t *testing.T) {
	testCases := []struct {
		name    string
		z, x, y int
		ok      bool
	}{
		{"maze cell 1 2 3", 1, 2, 3, true},
		{"maze wall 1 2 3 0", 0, 0, 0, false},
		{"maze cell 1 2", 0, 0, 0, false},
		{"maze cell a 2 3", 0, 0, 0, false},
		{"maze", 0, 0, 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			z, x, y, ok := parseCellSection(tc.name)
			if ok != tc.ok || z != tc.z || x != tc.x || y != tc.y {
				t.Errorf("parseCellSection() = %d %d %d %v", z, x, y, ok)
			}
		})
	}
}

func TestMazeFiles(t *testing.T) {
	m := buildRoundTripMaze(t)
	path := filepath.Join(t.TempDir(), "level.maze")
	if err := m.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if _, err := LoadMazeFile(path, nil); err != nil {
		t.Errorf("LoadMazeFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{"mazes/level.maze": {Data: data}}
	got, err := LoadMazeFS(fsys, "mazes/level.maze", nil)
	if err != nil {
		t.Fatalf("LoadMazeFS() error = %v", err)
	}
	if got.Wall(2, 1, 1, MazeUp) == nil || !got.Wall(2, 1, 1, MazeUp).Used {
		t.Errorf("wall missing after file round trip")
	}
	if _, err := LoadMazeFS(fsys, "missing.maze", nil); err == nil {
		t.Errorf("LoadMazeFS() of a missing file succeeded")
	}
}
