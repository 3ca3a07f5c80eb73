package ekq

import (
	"image"
	"math"
)

// Tilepane is one layer of a tile map: a grid of tiles from one tileset,
// plus the blend records that say which neighbours are drawn over each cell.
// The pane does not own the tileset or the tiles.
type Tilepane struct {
	set       *Tileset
	gridW     int
	gridH     int
	tiles     grid[*Tile]
	blends    grid[*Tileblend]
	masks     *MaskCache
	blendType BlendType
}

// NewTilepane makes an empty gridW by gridH pane that uses the shared mask
// cache.
func NewTilepane(set *Tileset, gridW, gridH int) *Tilepane {
	if gridW < 0 {
		gridW = 0
	}
	if gridH < 0 {
		gridH = 0
	}
	return &Tilepane{
		set:    set,
		gridW:  gridW,
		gridH:  gridH,
		tiles:  newGrid[*Tile](gridW, gridH),
		blends: newGrid[*Tileblend](gridW, gridH),
		masks:  SharedMasks(),
	}
}

func (p *Tilepane) Tileset() *Tileset { return p.set }
func (p *Tilepane) SetTileset(set *Tileset) { p.set = set }
func (p *Tilepane) GridW() int { return p.gridW }
func (p *Tilepane) GridH() int { return p.gridH }
func (p *Tilepane) TileW() int { return TileW }
func (p *Tilepane) TileH() int { return TileH }

// Width is the pane's width in pixels.
func (p *Tilepane) Width() int { return p.gridW * TileW }
func (p *Tilepane) Height() int { return p.gridH * TileH }

func (p *Tilepane) Masks() *MaskCache { return p.masks }
// SetMasks installs the mask cache to blend with. Nil restores the shared
// cache.
func (p *Tilepane) SetMasks(m *MaskCache) {
	if m == nil {
		m = SharedMasks()
	}
	p.masks = m
}
func (p *Tilepane) BlendType() BlendType { return p.blendType }
func (p *Tilepane) SetBlendType(t BlendType) { p.blendType = t }

func (p *Tilepane) OutsideGrid(x, y int) bool {
	return x < 0 || y < 0 || x >= p.gridW || y >= p.gridH
}

// Set puts tile, which may be nil, at x, y. It returns the tile, or nil if
// x, y is outside the grid.
func (p *Tilepane) Set(x, y int, tile *Tile) *Tile {
	if !p.tiles.Put(x, y, tile) {
		return nil
	}
	return tile
}

// Get returns the tile at x, y, or nil if the cell is empty or outside.
func (p *Tilepane) Get(x, y int) *Tile {
	return p.tiles.At(x, y)
}

// GetIndex returns the tileset index of the tile at x, y, or -1.
func (p *Tilepane) GetIndex(x, y int) int {
	return p.Get(x, y).Index()
}

// Rect sets every cell of the w by h rectangle at x, y to tile. Cells
// outside the grid are skipped.
func (p *Tilepane) Rect(x, y, w, h int, tile *Tile) *Tile {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			p.Set(i, j, tile)
		}
	}
	return tile
}

func (p *Tilepane) Fill(tile *Tile) *Tile {
	return p.Rect(0, 0, p.gridW, p.gridH, tile)
}

// FromSet returns tile index of the pane's tileset, nil if there is none.
func (p *Tilepane) FromSet(index int) *Tile {
	return p.set.Get(index)
}

// SetIndex sets x, y to tile index of the tileset. A negative index clears
// the cell.
func (p *Tilepane) SetIndex(x, y, index int) *Tile {
	return p.Set(x, y, p.FromSet(index))
}

func (p *Tilepane) RectIndex(x, y, w, h, index int) *Tile {
	return p.Rect(x, y, w, h, p.FromSet(index))
}

func (p *Tilepane) FillIndex(index int) *Tile {
	return p.Fill(p.FromSet(index))
}

// Window returns the cells [x0,x1) by [y0,y1) that overlap the camera's
// view. ok is false when the view lies entirely past the grid.
func (p *Tilepane) Window(cam *Camera) (win image.Rectangle, ok bool) {
	x := int(math.Floor(cam.X()))
	y := int(math.Floor(cam.Y()))
	x0 := floorDiv(x, TileW)
	y0 := floorDiv(y, TileH)
	if x0 >= p.gridW || y0 >= p.gridH {
		return image.Rectangle{}, false
	}
	x1 := x0 + int(cam.Width())/TileW + 1
	y1 := y0 + int(cam.Height())/TileH + 1
	x0 = clamp(x0, 0, p.gridW)
	y0 = clamp(y0, 0, p.gridH)
	x1 = clamp(x1, 0, p.gridW)
	y1 = clamp(y1, 0, p.gridH)
	return image.Rect(x0, y0, x1, y1), true
}

// Draw draws the visible tiles with the camera's position as the top left
// corner of the screen, then draws the blends over them.
func (p *Tilepane) Draw(b Backend, cam *Camera) {
	win, ok := p.Window(cam)
	if !ok {
		return
	}
	camX := math.Floor(cam.X())
	camY := math.Floor(cam.Y())

	// every base tile comes from the same sheet
	b.HoldBitmapDrawing(true)
	for ty := win.Min.Y; ty < win.Max.Y; ty++ {
		dy := -camY + float64(ty*TileH)
		for tx := win.Min.X; tx < win.Max.X; tx++ {
			if tile := p.tiles.At(tx, ty); tile != nil {
				tile.Draw(b, -camX+float64(tx*TileW), dy)
			}
		}
	}
	b.HoldBitmapDrawing(false)

	for ty := win.Min.Y; ty < win.Max.Y; ty++ {
		dy := -camY + float64(ty*TileH)
		for tx := win.Min.X; tx < win.Max.X; tx++ {
			if p.tiles.At(tx, ty) == nil {
				continue
			}
			if blend := p.blends.At(tx, ty); blend != nil {
				p.drawTileBlend(b, blend, -camX+float64(tx*TileW), dy)
			}
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
