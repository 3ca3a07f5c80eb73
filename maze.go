package ekq

import (
	"errors"
	"fmt"
)

// MazeDirection is a wall slot of a maze cell.
type MazeDirection int

const (
	MazeDown MazeDirection = iota
	MazeNorth
	MazeEast
	MazeSouth
	MazeWest
	MazeUp
	MazeRampN
	MazeRampE
	MazeRampS
	MazeRampW
	MazeDirections

	MazeFloorSlot   = MazeDown
	MazeCeilingSlot = MazeUp
)

func (d MazeDirection) Valid() bool {
	return d >= 0 && d < MazeDirections
}

// MazeWallType selects the shape of a wall.
type MazeWallType int

const (
	MazeWallRectangle  MazeWallType = 1
	MazeWallTriangleUL MazeWallType = 2
	MazeWallTriangleUR MazeWallType = 4
	MazeWallTriangleDL MazeWallType = 8
	MazeWallTriangleDR MazeWallType = 16
)

const (
	MazePillars = 4
	// MazeMaxSize bounds the height, width and depth of a maze.
	MazeMaxSize = 10000
)

var (
	ErrBadDimension      = errors.New("maze: dimension out of range")
	ErrOutOfRange        = errors.New("maze: position out of range")
	ErrDirectionMismatch = errors.New("maze: wall direction does not match its slot")
)

type MazeItem struct {
	ID     int
	Type   int
	Visual int
}

type MazeWall struct {
	Used      bool
	Direction MazeDirection
	Type      MazeWallType
	Item      MazeItem
	texture   int
	bmp       Bitmap
}

func (w *MazeWall) Texture() int { return w.texture }

// Bitmap is the texture resolved when the texture id was last set, or nil.
func (w *MazeWall) Bitmap() Bitmap { return w.bmp }

func (w *MazeWall) setTexture(id int, store Store) {
	w.texture = id
	w.bmp = nil
	if store != nil {
		w.bmp = store.Bitmap(id)
	}
}

type MazePillar struct {
	Used    bool
	texture int
	bmp     Bitmap
}

func (p *MazePillar) Texture() int { return p.texture }
func (p *MazePillar) Bitmap() Bitmap { return p.bmp }

type MazeCell struct {
	Z, X, Y int
	Item    MazeItem
	Walls   [MazeDirections]MazeWall
	Pillars [MazePillars]MazePillar
	visible bool
}

// Visible reports whether any wall of the cell is in use.
func (c *MazeCell) Visible() bool {
	return c != nil && c.visible
}

func (c *MazeCell) updateVisible() {
	c.visible = false
	for _, w := range c.Walls {
		if w.Used {
			c.visible = true
			return
		}
	}
}

// Wall returns the wall in slot dir, used or not, or nil for a bad slot.
func (c *MazeCell) Wall(dir MazeDirection) *MazeWall {
	if c == nil || !dir.Valid() {
		return nil
	}
	return &c.Walls[dir]
}

type MazeFloor struct {
	Z     int
	Width int
	Depth int
	cells sparseGrid[*MazeCell]
}

func (f *MazeFloor) Cell(x, y int) *MazeCell {
	if f == nil {
		return nil
	}
	return f.cells.At(x, y)
}

// Maze is a stack of floors of cells. Floors and cells are made on demand;
// missing ones are nil.
type Maze struct {
	floors []*MazeFloor
	store  Store
}

func validDimension(n int) bool {
	return n >= 1 && n <= MazeMaxSize
}

// NewMaze makes a maze with room for height floors. Wall textures are looked
// up in store, which may be nil.
func NewMaze(height int, store Store) (*Maze, error) {
	if !validDimension(height) {
		return nil, fmt.Errorf("%w: height %d", ErrBadDimension, height)
	}
	return &Maze{floors: make([]*MazeFloor, height), store: store}, nil
}

func (m *Maze) Height() int { return len(m.floors) }

func (m *Maze) Store() Store { return m.store }

// SetStore changes the store and looks every texture up again.
func (m *Maze) SetStore(store Store) {
	m.store = store
	m.eachCell(func(c *MazeCell) {
		for i := range c.Walls {
			c.Walls[i].setTexture(c.Walls[i].texture, store)
		}
		for i := range c.Pillars {
			p := &c.Pillars[i]
			p.bmp = nil
			if store != nil {
				p.bmp = store.Bitmap(p.texture)
			}
		}
	})
}

// AddFloor makes an empty floor at z, replacing any floor already there.
func (m *Maze) AddFloor(z, width, depth int) (*MazeFloor, error) {
	if z < 0 || z >= len(m.floors) {
		return nil, fmt.Errorf("%w: floor %d", ErrOutOfRange, z)
	}
	if !validDimension(width) || !validDimension(depth) {
		return nil, fmt.Errorf("%w: floor %d is %dx%d", ErrBadDimension, z, width, depth)
	}
	f := &MazeFloor{Z: z, Width: width, Depth: depth, cells: newSparseGrid[*MazeCell](width, depth)}
	m.floors[z] = f
	return f, nil
}

func (m *Maze) Floor(z int) *MazeFloor {
	if z < 0 || z >= len(m.floors) {
		return nil
	}
	return m.floors[z]
}

func (m *Maze) Cell(z, x, y int) *MazeCell {
	return m.Floor(z).Cell(x, y)
}

func (m *Maze) Wall(z, x, y int, dir MazeDirection) *MazeWall {
	return m.Cell(z, x, y).Wall(dir)
}

// AddEmptyCell returns the cell at z, x, y, making it if needed. It returns
// nil if there is no floor z or x, y is outside it.
func (m *Maze) AddEmptyCell(z, x, y int) *MazeCell {
	f := m.Floor(z)
	if f == nil {
		return nil
	}
	if c := f.cells.At(x, y); c != nil {
		return c
	}
	c := &MazeCell{Z: z, X: x, Y: y}
	for i := range c.Walls {
		c.Walls[i].Direction = MazeDirection(i)
	}
	if !f.cells.Put(x, y, c) {
		return nil
	}
	return c
}

func (m *Maze) AddCellItem(z, x, y, id, kind, visual int) *MazeCell {
	c := m.AddEmptyCell(z, x, y)
	if c == nil {
		return nil
	}
	c.Item = MazeItem{ID: id, Type: kind, Visual: visual}
	return c
}

// AddWall puts a wall in slot dir of the cell at z, x, y, making the cell
// if needed.
func (m *Maze) AddWall(z, x, y int, dir MazeDirection, kind MazeWallType, texture int) *MazeWall {
	if !dir.Valid() {
		return nil
	}
	c := m.AddEmptyCell(z, x, y)
	if c == nil {
		return nil
	}
	w := &c.Walls[dir]
	w.Used = true
	w.Direction = dir
	w.Type = kind
	w.setTexture(texture, m.store)
	c.visible = true
	return w
}

// RemoveWall clears slot dir and returns it, or nil if there was no wall.
func (m *Maze) RemoveWall(z, x, y int, dir MazeDirection) *MazeWall {
	c := m.Cell(z, x, y)
	w := c.Wall(dir)
	if w == nil || !w.Used {
		return nil
	}
	*w = MazeWall{Direction: dir}
	c.updateVisible()
	return w
}

func (m *Maze) usedWall(z, x, y int, dir MazeDirection) *MazeWall {
	w := m.Wall(z, x, y, dir)
	if w == nil || !w.Used {
		return nil
	}
	return w
}

func (m *Maze) SetWallTexture(z, x, y int, dir MazeDirection, texture int) *MazeWall {
	w := m.usedWall(z, x, y, dir)
	if w != nil {
		w.setTexture(texture, m.store)
	}
	return w
}

func (m *Maze) SetWallItem(z, x, y int, dir MazeDirection, id, visual int) *MazeWall {
	w := m.usedWall(z, x, y, dir)
	if w != nil {
		w.Item.ID = id
		w.Item.Visual = visual
	}
	return w
}

func (m *Maze) SetWallType(z, x, y int, dir MazeDirection, kind MazeWallType) *MazeWall {
	w := m.usedWall(z, x, y, dir)
	if w != nil {
		w.Type = kind
	}
	return w
}

// SetPillar puts a pillar with texture in corner 0 to 3 of a cell.
func (m *Maze) SetPillar(z, x, y, corner, texture int) *MazePillar {
	if corner < 0 || corner >= MazePillars {
		return nil
	}
	c := m.AddEmptyCell(z, x, y)
	if c == nil {
		return nil
	}
	p := &c.Pillars[corner]
	p.Used = true
	p.texture = texture
	p.bmp = nil
	if m.store != nil {
		p.bmp = m.store.Bitmap(texture)
	}
	return p
}

// eachCell visits the present cells floor by floor, row by row.
func (m *Maze) eachCell(fn func(c *MazeCell)) {
	for _, f := range m.floors {
		if f == nil {
			continue
		}
		f.cells.Each(func(_, _ int, c *MazeCell) {
			if c != nil {
				fn(c)
			}
		})
	}
}
