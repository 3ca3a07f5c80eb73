package ekq

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/ftrvxmtrx/tga"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func tgaBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	if err := tga.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestResourceStoreDecodeFormats(t *testing.T) {
	fsys := fstest.MapFS{
		"gfx/tiles.png": {Data: pngBytes(t, 64, 32)},
		"gfx/TILES.PNG": {Data: pngBytes(t, 64, 32)},
		"gfx/wall.tga":  {Data: tgaBytes(t, 32, 16)},
		"gfx/wall.bmp":  {Data: []byte("BM")},
	}
	s := NewResourceStore(fsys, newMockBackend())

	testCases := []struct {
		name    string
		path    string
		wantW   int
		wantH   int
		wantErr bool
	}{
		{name: "png", path: "gfx/tiles.png", wantW: 64, wantH: 32},
		{name: "upper case extension", path: "gfx/TILES.PNG", wantW: 64, wantH: 32},
		{name: "tga", path: "gfx/wall.tga", wantW: 32, wantH: 16},
		{name: "unknown extension", path: "gfx/wall.bmp", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img, err := s.DecodeImage(tc.path)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("DecodeImage(%q) succeeded", tc.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeImage(%q) error = %v", tc.path, err)
			}
			if img.Bounds().Dx() != tc.wantW || img.Bounds().Dy() != tc.wantH {
				t.Errorf("size = %v, want %dx%d", img.Bounds(), tc.wantW, tc.wantH)
			}
			if got := img.NRGBAAt(1, 1); got != (color.NRGBA{10, 20, 30, 255}) {
				t.Errorf("pixel (1,1) = %v", got)
			}
		})
	}
}

func TestResourceStoreLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"gfx/tiles.png": {Data: pngBytes(t, 64, 32)},
		"gfx/bad.png":   {Data: []byte("not an image")},
	}
	b := newMockBackend()
	s := NewResourceStore(fsys, b)

	img, err := s.DecodeImage("gfx/./tiles.png")
	if err != nil {
		t.Fatalf("DecodeImage() error = %v", err)
	}
	if img.Bounds().Dx() != 64 || img.NRGBAAt(1, 1) != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("decoded image wrong: %v %v", img.Bounds(), img.NRGBAAt(1, 1))
	}

	bmp, err := s.LoadBitmap(4, "gfx/tiles.png")
	if err != nil {
		t.Fatalf("LoadBitmap() error = %v", err)
	}
	if s.Bitmap(4) != bmp || bmp.Bounds().Dx() != 64 || b.uploads != 1 {
		t.Errorf("bitmap not registered")
	}

	if _, err := s.LoadBitmap(5, "gfx/bad.png"); err == nil {
		t.Errorf("LoadBitmap() of a bad file succeeded")
	}
	if _, err := s.LoadBitmap(5, "gfx/missing.png"); err == nil {
		t.Errorf("LoadBitmap() of a missing file succeeded")
	}
	if s.Bitmap(5) != nil {
		t.Errorf("failed load registered a bitmap")
	}
}

func TestResourceStoreSet(t *testing.T) {
	s := NewResourceStore(fstest.MapFS{}, newMockBackend())
	bmp := newMockBitmap("x", 1, 1)
	s.SetBitmap(1, bmp)
	if s.Bitmap(1) != bmp {
		t.Errorf("SetBitmap() not stored")
	}
	s.SetBitmap(1, nil)
	if s.Bitmap(1) != nil {
		t.Errorf("SetBitmap(nil) did not remove")
	}
	var none *ResourceStore
	if none.Bitmap(1) != nil {
		t.Errorf("nil store returned a bitmap")
	}
}

func TestResourceStoreUploadFailure(t *testing.T) {
	b := newMockBackend()
	b.failUpload = true
	s := NewResourceStore(fstest.MapFS{"a.png": {Data: pngBytes(t, 8, 8)}}, b)
	if _, err := s.LoadBitmap(1, "a.png"); err == nil {
		t.Errorf("LoadBitmap() with a failing backend succeeded")
	}
}
