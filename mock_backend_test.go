package ekq

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// mockBitmap is a bitmap of a given size with a name for test output.
type mockBitmap struct {
	name string
	rect image.Rectangle
}

func (m *mockBitmap) Bounds() image.Rectangle { return m.rect }

func newMockBitmap(name string, w, h int) *mockBitmap {
	return &mockBitmap{name: name, rect: image.Rect(0, 0, w, h)}
}

// drawCall records one backend call.
type drawCall struct {
	op        string
	bmp       Bitmap
	src       image.Rectangle
	dx, dy    float64
	mask      Bitmap
	flip      Flip
	vertices  []Vertex
	indices   []int
	transform Transform
	on        bool
}

// mockBackend records every call it gets.
type mockBackend struct {
	calls      []drawCall
	view       Transform
	projection Transform
	uploads    int
	failUpload bool
}

func newMockBackend() *mockBackend {
	return &mockBackend{view: Identity(), projection: Identity()}
}

func (b *mockBackend) record(c drawCall) { b.calls = append(b.calls, c) }

func (b *mockBackend) NewBitmap(img image.Image) (Bitmap, error) {
	if b.failUpload {
		return nil, errors.New("upload refused")
	}
	b.uploads++
	r := img.Bounds()
	return &mockBitmap{name: fmt.Sprintf("upload%d", b.uploads), rect: r}, nil
}

func (b *mockBackend) UseTransform(t Transform) {
	b.view = t
	b.record(drawCall{op: "transform", transform: t})
}

func (b *mockBackend) UseProjectionTransform(t Transform) {
	b.projection = t
	b.record(drawCall{op: "projection", transform: t})
}

func (b *mockBackend) CurrentTransform() Transform { return b.view }

func (b *mockBackend) Clear(c color.Color) { b.record(drawCall{op: "clear"}) }

func (b *mockBackend) ClearDepthBuffer(z float64) { b.record(drawCall{op: "cleardepth"}) }

func (b *mockBackend) SetDepthTest(on bool) { b.record(drawCall{op: "depth", on: on}) }

func (b *mockBackend) HoldBitmapDrawing(hold bool) { b.record(drawCall{op: "hold", on: hold}) }

func (b *mockBackend) DrawBitmapRegion(bmp Bitmap, src image.Rectangle, dx, dy float64) {
	b.record(drawCall{op: "region", bmp: bmp, src: src, dx: dx, dy: dy})
}

func (b *mockBackend) DrawBitmapRegionMasked(bmp Bitmap, src image.Rectangle, dx, dy float64, mask Bitmap, flip Flip) {
	b.record(drawCall{op: "masked", bmp: bmp, src: src, dx: dx, dy: dy, mask: mask, flip: flip})
}

func (b *mockBackend) DrawIndexedPrim(vertices []Vertex, texture Bitmap, indices []int) {
	b.record(drawCall{
		op:        "prim",
		bmp:       texture,
		vertices:  append([]Vertex(nil), vertices...),
		indices:   append([]int(nil), indices...),
		transform: b.view,
	})
}

// ops returns the op names of the recorded calls, optionally filtered.
func (b *mockBackend) ops(keep ...string) []string {
	var out []string
	for _, c := range b.calls {
		if len(keep) == 0 {
			out = append(out, c.op)
			continue
		}
		for _, k := range keep {
			if c.op == k {
				out = append(out, c.op)
				break
			}
		}
	}
	return out
}

func (b *mockBackend) filter(op string) []drawCall {
	var out []drawCall
	for _, c := range b.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (b *mockBackend) reset() { b.calls = nil }

// mapStore is a Store over a plain map.
type mapStore map[int]Bitmap

func (s mapStore) Bitmap(id int) Bitmap { return s[id] }
