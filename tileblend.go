package ekq

import "image"

// BlendDirection names the neighbour a blend comes from.
type BlendDirection int

const (
	BlendNorthWest BlendDirection = iota
	BlendNorth
	BlendNorthEast
	BlendWest
	BlendEast
	BlendSouthWest
	BlendSouth
	BlendSouthEast
	BlendDirections
)

// BlendShape selects one of the two canonical masks.
type BlendShape int

const (
	BlendCorner BlendShape = iota
	BlendSide
	blendShapes
)

// BlendType selects how soft the mask edges are.
type BlendType int

const (
	BlendSharp BlendType = iota
	BlendGradual
	BlendFuzzy
	BlendFuzzyGradual
	blendTypes
)

var blendOffsets = [BlendDirections]image.Point{
	BlendNorthWest: {-1, -1},
	BlendNorth:     {0, -1},
	BlendNorthEast: {1, -1},
	BlendWest:      {-1, 0},
	BlendEast:      {1, 0},
	BlendSouthWest: {-1, 1},
	BlendSouth:     {0, 1},
	BlendSouthEast: {1, 1},
}

var blendShapesByDirection = [BlendDirections]BlendShape{
	BlendNorthWest: BlendCorner,
	BlendNorth:     BlendSide,
	BlendNorthEast: BlendCorner,
	BlendWest:      BlendSide,
	BlendEast:      BlendSide,
	BlendSouthWest: BlendCorner,
	BlendSouth:     BlendSide,
	BlendSouthEast: BlendCorner,
}

// The corner mask covers the top left corner and the side mask the top
// edge; these flips turn them towards each direction.
var blendFlips = [BlendDirections]Flip{
	BlendNorthWest: 0,
	BlendNorth:     0,
	BlendNorthEast: FlipHorizontal,
	BlendWest:      FlipDiagonal,
	BlendEast:      FlipDiagonal | FlipHorizontal,
	BlendSouthWest: FlipVertical,
	BlendSouth:     FlipVertical,
	BlendSouthEast: FlipHorizontal | FlipVertical,
}

func (d BlendDirection) Offset() image.Point { return blendOffsets[d] }
func (d BlendDirection) Shape() BlendShape { return blendShapesByDirection[d] }
func (d BlendDirection) Flip() Flip { return blendFlips[d] }

func (d BlendDirection) String() string {
	switch d {
	case BlendNorthWest:
		return "northwest"
	case BlendNorth:
		return "north"
	case BlendNorthEast:
		return "northeast"
	case BlendWest:
		return "west"
	case BlendEast:
		return "east"
	case BlendSouthWest:
		return "southwest"
	case BlendSouth:
		return "south"
	case BlendSouthEast:
		return "southeast"
	}
	return "unknown"
}

// Tileblend lists, per direction, the neighbour tile drawn blended over a
// cell. A nil entry means nothing blends from that side.
type Tileblend struct {
	Blends [BlendDirections]*Tile
}

// Count returns how many neighbours blend over the cell.
func (b *Tileblend) Count() int {
	n := 0
	for _, t := range b.Blends {
		if t != nil {
			n++
		}
	}
	return n
}

func (p *Tilepane) computeBlend(x, y int, tile *Tile) *Tileblend {
	blend := &Tileblend{}
	prio := tile.Blend()
	for d := BlendDirection(0); d < BlendDirections; d++ {
		off := blendOffsets[d]
		other := p.Get(x+off.X, y+off.Y)
		if other == nil || other.Blend() <= prio {
			continue
		}
		blend.Blends[d] = other
	}
	return blend
}

// InitBlend works out which neighbours blend over each cell and prepares
// the masks. Call it after the grid is filled and again after any change.
func (p *Tilepane) InitBlend() error {
	p.blends = newGrid[*Tileblend](p.gridW, p.gridH)
	for y := 0; y < p.gridH; y++ {
		for x := 0; x < p.gridW; x++ {
			tile := p.Get(x, y)
			if tile.Blend() == 0 {
				continue
			}
			p.blends.Put(x, y, p.computeBlend(x, y, tile))
		}
	}
	return p.masks.Init()
}

// BlendAt returns the blend record of a cell, or nil when it has none.
func (p *Tilepane) BlendAt(x, y int) *Tileblend {
	return p.blends.At(x, y)
}

func (p *Tilepane) drawTileBlend(b Backend, blend *Tileblend, dx, dy float64) {
	for d, other := range blend.Blends {
		if other == nil {
			continue
		}
		dir := BlendDirection(d)
		mask := p.masks.Bitmap(b, p.blendType, dir.Shape())
		if mask == nil {
			return
		}
		other.DrawMasked(b, dx, dy, mask, dir.Flip())
	}
}
