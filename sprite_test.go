package ekq

import (
	"image"
	"testing"
)

func TestSpriteListSlots(t *testing.T) {
	var l SpriteList
	a := l.New(Sprite{Visible: true})
	b := l.New(Sprite{Visible: true})
	if a != 0 || b != 1 || l.Len() != 2 {
		t.Fatalf("ids %d %d, Len() %d", a, b, l.Len())
	}
	if !l.Delete(a) || l.Delete(a) || l.Get(a) != nil {
		t.Errorf("Delete() did not free the slot once")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d after delete", l.Len())
	}
	if c := l.New(Sprite{}); c != a {
		t.Errorf("New() did not reuse slot %d, got %d", a, c)
	}
	if l.Get(-1) != nil || l.Get(7) != nil {
		t.Errorf("Get() outside the list returned a sprite")
	}
	var ids []int
	l.Each(func(id int, _ *Sprite) { ids = append(ids, id) })
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
		t.Errorf("Each() visited %v", ids)
	}
}

func TestSpriteListDraw(t *testing.T) {
	bmp := newMockBitmap("sprites", 64, 64)
	region := image.Rect(0, 0, 16, 16)
	var l SpriteList
	l.New(Sprite{Position: V3(110, 60, 0), Bitmap: bmp, Region: region, Visible: true})
	l.New(Sprite{Position: V3(120, 60, 0), Bitmap: bmp, Region: region})
	l.New(Sprite{Position: V3(5000, 60, 0), Bitmap: bmp, Region: region, Visible: true})
	l.New(Sprite{Position: V3(130, 60, 0), Region: region, Visible: true})

	cam := NewCamera(V3(100, 50, 0), V3(0, 0, 1), 640, 480, 45)
	b := newMockBackend()
	l.Draw(b, cam)
	regions := b.filter("region")
	if len(regions) != 1 {
		t.Fatalf("%d sprites drawn, want 1", len(regions))
	}
	if regions[0].dx != 10 || regions[0].dy != 10 || regions[0].src != region {
		t.Errorf("sprite drawn at %v,%v", regions[0].dx, regions[0].dy)
	}
}
