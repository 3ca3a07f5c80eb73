package ekq

import (
	"errors"
	"image"
)

const (
	TileW = 32
	TileH = 32
	// DefaultTileWait is how long a tile frame is shown, in seconds.
	DefaultTileWait = 0.250
)

var ErrNoSheet = errors.New("tileset: sheet missing or smaller than one tile")

// TileFlag holds walkability and terrain bits.
type TileFlag int

const (
	TileWall TileFlag = 1 << iota
	TileWater
	TileLedge
	TileStair
	TilePush
	TileNorth
	TileSouth
	TileEast
	TileWest
)

var tileFlagNames = map[string]TileFlag{
	"wall":  TileWall,
	"water": TileWater,
	"ledge": TileLedge,
	"stair": TileStair,
	"push":  TilePush,
	"north": TileNorth,
	"south": TileSouth,
	"east":  TileEast,
	"west":  TileWest,
}

// Tile is one cell of a tileset. A tile may be animated: every wait seconds
// the displayed frame moves by the anim offset of the frame being shown.
type Tile struct {
	set    *Tileset
	index  int
	flags  TileFlag
	kind   int
	anim   int
	active int
	blend  int
	wait   float64
	time   float64
	now    image.Point
}

func (t *Tile) init(set *Tileset, index int) {
	*t = Tile{
		set:    set,
		index:  index,
		active: index,
		wait:   DefaultTileWait,
	}
	t.recalculate()
}

// recalculate finds the active frame's position in the sheet.
func (t *Tile) recalculate() {
	if t.set == nil {
		return
	}
	cols := t.set.w / TileW
	if cols <= 0 {
		return
	}
	t.now = image.Point{
		X: (t.active % cols) * TileW,
		Y: (t.active / cols) * TileH,
	}
}

// Index returns the tile's place in its tileset, or -1 for a nil tile.
func (t *Tile) Index() int {
	if t == nil {
		return -1
	}
	return t.index
}

func (t *Tile) Active() int {
	if t == nil {
		return -1
	}
	return t.active
}

// SetActive shows frame index, if the tileset has it.
func (t *Tile) SetActive(index int) bool {
	if t.set.Get(index) == nil {
		return false
	}
	t.active = index
	t.recalculate()
	return true
}

// SheetRect is the area of the sheet showing the active frame.
func (t *Tile) SheetRect() image.Rectangle {
	return image.Rect(t.now.X, t.now.Y, t.now.X+TileW, t.now.Y+TileH)
}

func (t *Tile) Anim() int {
	if t == nil {
		return 0
	}
	return t.anim
}

func (t *Tile) SetAnim(anim int) { t.anim = anim }

// Wait returns the frame time in milliseconds, or -1 for a nil tile.
func (t *Tile) Wait() int {
	if t == nil {
		return -1
	}
	return int(t.wait * 1000)
}

func (t *Tile) SetWait(ms int) { t.wait = float64(ms) / 1000 }

func (t *Tile) Kind() int {
	if t == nil {
		return -1
	}
	return t.kind
}

func (t *Tile) SetKind(kind int) { t.kind = kind }

// Blend is the tile's blend priority. Tiles with a higher priority are drawn
// over the edges of neighbours with a lower one; 0 never blends.
func (t *Tile) Blend() int {
	if t == nil {
		return 0
	}
	return t.blend
}

func (t *Tile) SetBlend(priority int) {
	if priority < 0 {
		priority = 0
	}
	t.blend = priority
}

func (t *Tile) Flags() TileFlag {
	if t == nil {
		return 0
	}
	return t.flags
}

func (t *Tile) SetFlags(f TileFlag) { t.flags = f }
func (t *Tile) SetFlag(f TileFlag) { t.flags |= f }
func (t *Tile) Unflag(f TileFlag) { t.flags &^= f }
func (t *Tile) IsFlag(f TileFlag) bool { return t != nil && t.flags&f == f }
func (t *Tile) IsWall() bool { return t.IsFlag(TileWall) }
func (t *Tile) IsWater() bool { return t.IsFlag(TileWater) }

// SetProperty sets the flag with the given name, such as "wall" or "east".
// It reports whether the name is known.
func (t *Tile) SetProperty(name string) bool {
	f, ok := tileFlagNames[name]
	if !ok {
		return false
	}
	t.SetFlag(f)
	return true
}

// Rewind goes back to the tile's own frame.
func (t *Tile) Rewind() {
	t.active = t.index
	t.time = 0
	t.recalculate()
}

// Update advances the animation by dt seconds.
func (t *Tile) Update(dt float64) {
	shown := t.set.Get(t.active)
	if shown == nil {
		return
	}
	t.time += dt
	if t.time < t.wait {
		return
	}
	t.time = 0
	next := t.active + shown.anim
	if t.set.Get(next) == nil {
		return
	}
	t.active = next
	t.recalculate()
}

func (t *Tile) Draw(b Backend, x, y float64) {
	b.DrawBitmapRegion(t.set.sheet, t.SheetRect(), x, y)
}

// DrawMasked draws the tile at x, y only where mask is opaque.
func (t *Tile) DrawMasked(b Backend, x, y float64, mask Bitmap, flip Flip) {
	b.DrawBitmapRegionMasked(t.set.sheet, t.SheetRect(), x, y, mask, flip)
}

// Tileset cuts a sheet into TileW by TileH tiles, left to right and top to
// bottom.
type Tileset struct {
	tiles []Tile
	sheet Bitmap
	w, h  int
}

func NewTileset(sheet Bitmap) (*Tileset, error) {
	if sheet == nil {
		return nil, ErrNoSheet
	}
	b := sheet.Bounds()
	size := (b.Dx() / TileW) * (b.Dy() / TileH)
	if size <= 0 {
		return nil, ErrNoSheet
	}
	set := &Tileset{
		tiles: make([]Tile, size),
		sheet: sheet,
		w:     b.Dx(),
		h:     b.Dy(),
	}
	for i := range set.tiles {
		set.tiles[i].init(set, i)
	}
	return set, nil
}

// Get returns tile index, or nil if there is none.
func (s *Tileset) Get(index int) *Tile {
	if s == nil || index < 0 || index >= len(s.tiles) {
		return nil
	}
	return &s.tiles[index]
}

func (s *Tileset) Size() int {
	if s == nil {
		return 0
	}
	return len(s.tiles)
}

func (s *Tileset) Sheet() Bitmap { return s.sheet }

func (s *Tileset) Update(dt float64) {
	if s == nil {
		return
	}
	for i := range s.tiles {
		s.tiles[i].Update(dt)
	}
}
