package ekq

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// MaskCache holds the blend masks: one corner and one side mask per blend
// type, each a tile sized alpha image. Masks are built once and then only
// read. The sharp masks are built by Init; the others are derived from them
// the first time they are asked for.
type MaskCache struct {
	tileW, tileH int
	// inset is the fraction of the tile the masks reach into.
	inset float64

	masks   [blendTypes][blendShapes]*image.Alpha
	bitmaps [blendTypes][blendShapes]Bitmap
	maker   BitmapMaker
}

var sharedMasks = NewMaskCache(TileW, TileH)

// SharedMasks returns the cache used by tile panes unless they are given
// another one.
func SharedMasks() *MaskCache {
	return sharedMasks
}

func NewMaskCache(tileW, tileH int) *MaskCache {
	return &MaskCache{tileW: tileW, tileH: tileH, inset: 0.5}
}

// Ready reports whether Init has built the sharp masks.
func (c *MaskCache) Ready() bool {
	return c.masks[BlendSharp][BlendCorner] != nil
}

// Init builds the sharp masks. Calling it again does nothing.
func (c *MaskCache) Init() error {
	if c.Ready() {
		return nil
	}
	if c.tileW <= 0 || c.tileH <= 0 {
		err := fmt.Errorf("masks: invalid tile size %dx%d", c.tileW, c.tileH)
		log.Println(err)
		return err
	}
	c.masks[BlendSharp][BlendCorner] = c.rasterCorner()
	c.masks[BlendSharp][BlendSide] = c.rasterSide()
	return nil
}

// Invalidate drops every mask so the next Init builds them again.
func (c *MaskCache) Invalidate() {
	c.masks = [blendTypes][blendShapes]*image.Alpha{}
	c.bitmaps = [blendTypes][blendShapes]Bitmap{}
	c.maker = nil
}

// Mask returns the alpha image for a type and shape, or nil before Init.
func (c *MaskCache) Mask(kind BlendType, shape BlendShape) *image.Alpha {
	if kind < 0 || kind >= blendTypes || shape < 0 || shape >= blendShapes {
		return nil
	}
	if !c.Ready() {
		return nil
	}
	if c.masks[kind][shape] == nil {
		c.masks[kind][shape] = c.derive(kind, shape)
	}
	return c.masks[kind][shape]
}

// Bitmap returns the mask uploaded to maker, uploading it on first use.
// Masks uploaded to another maker before are dropped.
func (c *MaskCache) Bitmap(maker BitmapMaker, kind BlendType, shape BlendShape) Bitmap {
	mask := c.Mask(kind, shape)
	if mask == nil {
		return nil
	}
	if c.maker != maker {
		c.bitmaps = [blendTypes][blendShapes]Bitmap{}
		c.maker = maker
	}
	if c.bitmaps[kind][shape] == nil {
		bmp, err := maker.NewBitmap(mask)
		if err != nil {
			log.Printf("masks: upload %d/%d: %v", kind, shape, err)
			return nil
		}
		c.bitmaps[kind][shape] = bmp
	}
	return c.bitmaps[kind][shape]
}

func (c *MaskCache) newRaster() (*vector.Rasterizer, *image.Alpha) {
	z := vector.NewRasterizer(c.tileW, c.tileH)
	z.DrawOp = draw.Src
	return z, image.NewAlpha(image.Rect(0, 0, c.tileW, c.tileH))
}

func triangle(z *vector.Rasterizer, x1, y1, x2, y2, x3, y3 float32) {
	z.MoveTo(x1, y1)
	z.LineTo(x2, y2)
	z.LineTo(x3, y3)
	z.ClosePath()
}

// rasterCorner fills the top left corner: / shaped.
func (c *MaskCache) rasterCorner() *image.Alpha {
	z, dst := c.newRaster()
	cw := float32(float64(c.tileW) * c.inset)
	ch := float32(float64(c.tileH) * c.inset)
	triangle(z, 0, 0, cw, 0, 0, ch)
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// rasterSide fills along the top edge: \_/ shaped.
func (c *MaskCache) rasterSide() *image.Alpha {
	z, dst := c.newRaster()
	w := float32(c.tileW)
	sw := float32(float64(c.tileW) * c.inset)
	sh := float32(float64(c.tileH) * c.inset)
	triangle(z, 0, 0, sw, 0, sw, sh)
	triangle(z, w-sw, 0, w, 0, w-sw, sh)
	if w-2*sw > 0 {
		z.MoveTo(sw, 0)
		z.LineTo(w-sw, 0)
		z.LineTo(w-sw, sh)
		z.LineTo(sw, sh)
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// derive softens the sharp mask: gradual types fade out away from the
// edge the mask starts at, fuzzy types halve every third pixel.
func (c *MaskCache) derive(kind BlendType, shape BlendShape) *image.Alpha {
	sharp := c.masks[BlendSharp][shape]
	dst := image.NewAlpha(sharp.Bounds())
	gradual := kind == BlendGradual || kind == BlendFuzzyGradual
	fuzzy := kind == BlendFuzzy || kind == BlendFuzzyGradual
	depth := float64(c.tileH) * c.inset
	for y := 0; y < c.tileH; y++ {
		for x := 0; x < c.tileW; x++ {
			a := float64(sharp.AlphaAt(x, y).A)
			if gradual {
				d := float64(y)
				if shape == BlendCorner {
					d = float64(x+y) / 2
				}
				a *= clampFloat(1-d/depth, 0, 1)
			}
			if fuzzy && (x*7+y*13)%3 == 0 {
				a /= 2
			}
			dst.SetAlpha(x, y, color.Alpha{A: uint8(a)})
		}
	}
	return dst
}

// WriteWebP saves every built mask into dir as white images with the mask
// as alpha, named mask_<type>_<shape>.webp.
func (c *MaskCache) WriteWebP(dir string) error {
	if err := c.Init(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("masks: %w", err)
	}
	for kind := BlendType(0); kind < blendTypes; kind++ {
		for shape := BlendShape(0); shape < blendShapes; shape++ {
			mask := c.Mask(kind, shape)
			name := filepath.Join(dir, fmt.Sprintf("mask_%d_%d.webp", kind, shape))
			if err := writeMaskWebP(name, mask); err != nil {
				log.Printf("masks: %v", err)
				return err
			}
		}
	}
	return nil
}

func writeMaskWebP(name string, mask *image.Alpha) error {
	img := image.NewNRGBA(mask.Bounds())
	for i, a := range mask.Pix {
		img.Pix[i*4+0] = 255
		img.Pix[i*4+1] = 255
		img.Pix[i*4+2] = 255
		img.Pix[i*4+3] = a
	}
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
