package ebiten

import (
	"errors"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/beoran/ekq"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

var errNotEbiten = errors.New("ebiten: bitmap was not made by this backend")

// Image is a Bitmap backed by an ebiten image.
type Image struct {
	img *ebiten.Image
}

func (i *Image) Bounds() image.Rectangle { return i.img.Bounds() }

func (i *Image) Ebiten() *ebiten.Image { return i.img }

// triangle is a projected triangle waiting for the depth sort.
type triangle struct {
	vs    [3]ebiten.Vertex
	img   *ebiten.Image
	depth float64
}

// Backend draws on an ebiten screen. Vertices are projected on the CPU.
// Ebiten has no depth buffer, so while depth testing is on triangles are
// collected and drawn back to front when it is switched off, the depth
// buffer is cleared or the frame ends.
type Backend struct {
	screen     *ebiten.Image
	view       ekq.Transform
	projection ekq.Transform
	depthTest  bool
	held       bool
	queue      []triangle
	scratch    *ebiten.Image
}

func NewBackend() *Backend {
	return &Backend{
		view:       ekq.Identity(),
		projection: ekq.Identity(),
	}
}

// Begin targets screen for the coming frame.
func (b *Backend) Begin(screen *ebiten.Image) {
	b.screen = screen
	b.queue = b.queue[:0]
}

// End draws whatever is still waiting for the depth sort.
func (b *Backend) End() {
	b.flush()
	b.screen = nil
}

func (b *Backend) Held() bool { return b.held }

func (b *Backend) NewBitmap(img image.Image) (ekq.Bitmap, error) {
	if img == nil {
		return nil, errors.New("ebiten: nil image")
	}
	return &Image{img: ebiten.NewImageFromImage(img)}, nil
}

func (b *Backend) UseTransform(t ekq.Transform) { b.view = t }
func (b *Backend) UseProjectionTransform(t ekq.Transform) { b.projection = t }
func (b *Backend) CurrentTransform() ekq.Transform { return b.view }

func (b *Backend) Clear(c color.Color) {
	b.queue = b.queue[:0]
	if b.screen != nil {
		b.screen.Fill(c)
	}
}

func (b *Backend) ClearDepthBuffer(z float64) {
	b.flush()
}

func (b *Backend) SetDepthTest(on bool) {
	if b.depthTest && !on {
		b.flush()
	}
	b.depthTest = on
}

// HoldBitmapDrawing only records the hold; ebiten batches draws from the
// same source image by itself.
func (b *Backend) HoldBitmapDrawing(hold bool) {
	b.held = hold
}

func unwrap(bmp ekq.Bitmap) (*ebiten.Image, error) {
	i, ok := bmp.(*Image)
	if !ok || i == nil {
		return nil, errNotEbiten
	}
	return i.img, nil
}

func (b *Backend) DrawBitmapRegion(bmp ekq.Bitmap, src image.Rectangle, dx, dy float64) {
	img, err := unwrap(bmp)
	if err != nil {
		return
	}
	b.drawRegion(img.SubImage(src).(*ebiten.Image), dx, dy)
}

func (b *Backend) drawRegion(img *ebiten.Image, dx, dy float64) {
	r := img.Bounds()
	w, h := float64(r.Dx()), float64(r.Dy())
	vs := []ekq.Vertex{
		{X: dx, Y: dy, U: 0, V: 0},
		{X: dx + w, Y: dy, U: 1, V: 0},
		{X: dx + w, Y: dy + h, U: 1, V: 1},
		{X: dx, Y: dy + h, U: 0, V: 1},
	}
	for i := range vs {
		vs[i].Color = color.RGBA{255, 255, 255, 255}
	}
	b.drawPrim(vs, img, []int{0, 1, 2, 0, 2, 3})
}

// maskGeoM orients a w by h mask: first the diagonal flip, then the
// horizontal and vertical ones.
func maskGeoM(flip ekq.Flip, w, h float64) ebiten.GeoM {
	var g ebiten.GeoM
	if flip&ekq.FlipDiagonal != 0 {
		g.SetElement(0, 0, 0)
		g.SetElement(0, 1, 1)
		g.SetElement(1, 0, 1)
		g.SetElement(1, 1, 0)
		w, h = h, w
	}
	if flip&ekq.FlipHorizontal != 0 {
		g.Scale(-1, 1)
		g.Translate(w, 0)
	}
	if flip&ekq.FlipVertical != 0 {
		g.Scale(1, -1)
		g.Translate(0, h)
	}
	return g
}

func (b *Backend) DrawBitmapRegionMasked(bmp ekq.Bitmap, src image.Rectangle, dx, dy float64, mask ekq.Bitmap, flip ekq.Flip) {
	img, err := unwrap(bmp)
	if err != nil {
		return
	}
	m, err := unwrap(mask)
	if err != nil {
		return
	}
	w, h := src.Dx(), src.Dy()
	if b.scratch == nil || b.scratch.Bounds().Dx() < w || b.scratch.Bounds().Dy() < h {
		b.scratch = ebiten.NewImage(w, h)
	}
	tmp := b.scratch.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
	tmp.Clear()

	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendCopy}
	tmp.DrawImage(img.SubImage(src).(*ebiten.Image), op)

	mb := m.Bounds()
	op = &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationIn}
	op.GeoM = maskGeoM(flip, float64(mb.Dx()), float64(mb.Dy()))
	tmp.DrawImage(m, op)

	b.drawRegion(tmp, dx, dy)
}

func (b *Backend) DrawIndexedPrim(vertices []ekq.Vertex, texture ekq.Bitmap, indices []int) {
	img := whiteSub
	if texture != nil {
		t, err := unwrap(texture)
		if err != nil {
			return
		}
		img = t
	}
	b.drawPrim(vertices, img, indices)
}

func (b *Backend) toClip(mvp ekq.Transform, v ekq.Vertex) clipVertex {
	x, y, z, w := mvp.ApplyW(ekq.V3(v.X, v.Y, v.Z))
	return clipVertex{
		x: x, y: y, z: z, w: w,
		u: v.U, v: v.V,
		r: float64(v.Color.R) / 255,
		g: float64(v.Color.G) / 255,
		b: float64(v.Color.B) / 255,
		a: float64(v.Color.A) / 255,
	}
}

// toScreen does the perspective divide and maps the result to pixels of the
// screen and texels of img.
func (b *Backend) toScreen(c clipVertex, img *ebiten.Image) (ebiten.Vertex, float64) {
	sw, sh := 640.0, 480.0
	if b.screen != nil {
		r := b.screen.Bounds()
		sw, sh = float64(r.Dx()), float64(r.Dy())
	}
	r := img.Bounds()
	return ebiten.Vertex{
		DstX:   float32((c.x/c.w + 1) / 2 * sw),
		DstY:   float32((1 - c.y/c.w) / 2 * sh),
		SrcX:   float32(float64(r.Min.X) + c.u*float64(r.Dx())),
		SrcY:   float32(float64(r.Min.Y) + c.v*float64(r.Dy())),
		ColorR: float32(c.r),
		ColorG: float32(c.g),
		ColorB: float32(c.b),
		ColorA: float32(c.a),
	}, c.z / c.w
}

// drawPrim projects each triangle, cuts off what lies behind the camera and
// draws the rest as a fan.
func (b *Backend) drawPrim(vertices []ekq.Vertex, img *ebiten.Image, indices []int) {
	mvp := b.view.Compose(b.projection)
	var poly [3]clipVertex
	for i := 0; i+2 < len(indices); i += 3 {
		valid := true
		for k := 0; k < 3; k++ {
			n := indices[i+k]
			if n < 0 || n >= len(vertices) {
				valid = false
				break
			}
			poly[k] = b.toClip(mvp, vertices[n])
		}
		if !valid {
			continue
		}
		clipped := clipNear(poly[:], nil)
		if len(clipped) < 3 {
			continue
		}
		first, d0 := b.toScreen(clipped[0], img)
		for k := 2; k < len(clipped); k++ {
			second, d1 := b.toScreen(clipped[k-1], img)
			third, d2 := b.toScreen(clipped[k], img)
			t := triangle{vs: [3]ebiten.Vertex{first, second, third}, img: img, depth: (d0 + d1 + d2) / 3}
			if b.depthTest {
				b.queue = append(b.queue, t)
				continue
			}
			b.drawTriangle(t)
		}
	}
}

func (b *Backend) drawTriangle(t triangle) {
	if b.screen == nil {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	b.screen.DrawTriangles(t.vs[:], []uint16{0, 1, 2}, t.img, op)
}

// flush draws the queued triangles, farthest first.
func (b *Backend) flush() {
	sort.SliceStable(b.queue, func(i, j int) bool {
		return b.queue[i].depth > b.queue[j].depth
	})
	for _, t := range b.queue {
		b.drawTriangle(t)
	}
	b.queue = b.queue[:0]
}
