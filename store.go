package ekq

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// BitmapMaker uploads decoded images. Every Backend is one.
type BitmapMaker interface {
	NewBitmap(img image.Image) (Bitmap, error)
}

// ResourceStore keeps bitmaps by numeric id. Paths are virtual: they are
// resolved inside the store's file system.
type ResourceStore struct {
	fsys    fs.FS
	maker   BitmapMaker
	bitmaps map[int]Bitmap
}

func NewResourceStore(fsys fs.FS, maker BitmapMaker) *ResourceStore {
	return &ResourceStore{
		fsys:    fsys,
		maker:   maker,
		bitmaps: make(map[int]Bitmap),
	}
}

func (s *ResourceStore) Bitmap(id int) Bitmap {
	if s == nil {
		return nil
	}
	return s.bitmaps[id]
}

func (s *ResourceStore) SetBitmap(id int, bmp Bitmap) {
	if bmp == nil {
		delete(s.bitmaps, id)
		return
	}
	s.bitmaps[id] = bmp
}

// decoderFor picks the decoder by extension. The tga package registers an
// empty magic string, so image.Decode cannot be trusted to sniff formats.
func decoderFor(vpath string) (func(io.Reader) (image.Image, error), error) {
	ext := strings.ToLower(path.Ext(vpath))
	switch ext {
	case ".png":
		return png.Decode, nil
	case ".jpg", ".jpeg":
		return jpeg.Decode, nil
	case ".tga":
		return tga.Decode, nil
	default:
		return nil, fmt.Errorf("store: unknown extension %q: %s", ext, vpath)
	}
}

// DecodeImage reads a PNG, JPEG or TGA image from the store's file system
// and converts it to NRGBA.
func (s *ResourceStore) DecodeImage(vpath string) (*image.NRGBA, error) {
	decode, err := decoderFor(vpath)
	if err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(path.Clean(vpath))
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", vpath, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", vpath, err)
	}
	return toNRGBA(img), nil
}

// LoadBitmap decodes vpath, uploads it and registers it under id.
func (s *ResourceStore) LoadBitmap(id int, vpath string) (Bitmap, error) {
	img, err := s.DecodeImage(vpath)
	if err != nil {
		return nil, err
	}
	bmp, err := s.maker.NewBitmap(img)
	if err != nil {
		return nil, fmt.Errorf("store: upload %s: %w", vpath, err)
	}
	s.bitmaps[id] = bmp
	return bmp, nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
