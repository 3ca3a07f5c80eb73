package ekq

import (
	"image"
	"image/color"
)

// Bitmap is a drawable image owned by a Backend.
type Bitmap interface {
	Bounds() image.Rectangle
}

// Flip orients a mask before it is applied.
type Flip int

const (
	FlipHorizontal Flip = 1 << iota
	FlipVertical
	// FlipDiagonal swaps the x and y axes. It is applied before the other
	// two flips.
	FlipDiagonal
)

// Vertex is one corner of a textured primitive. U and V run from 0 to 1 across the texture.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
	Color   color.RGBA
}

// Backend is the display layer. The engine only installs transforms and
// issues primitive draws through it.
type Backend interface {
	NewBitmap(img image.Image) (Bitmap, error)

	UseTransform(t Transform)
	UseProjectionTransform(t Transform)
	CurrentTransform() Transform

	Clear(c color.Color)
	ClearDepthBuffer(z float64)
	SetDepthTest(on bool)

	// HoldBitmapDrawing batches bitmap draws until it is called with false.
	HoldBitmapDrawing(hold bool)
	DrawBitmapRegion(bmp Bitmap, src image.Rectangle, dx, dy float64)
	// DrawBitmapRegionMasked draws src through the alpha of mask, oriented
	// by flip, over what is already drawn.
	DrawBitmapRegionMasked(bmp Bitmap, src image.Rectangle, dx, dy float64, mask Bitmap, flip Flip)
	// DrawIndexedPrim draws triangles. A nil texture draws flat colour.
	DrawIndexedPrim(vertices []Vertex, texture Bitmap, indices []int)
}

// Store resolves resource ids to bitmaps. Unknown ids give nil.
type Store interface {
	Bitmap(id int) Bitmap
}
