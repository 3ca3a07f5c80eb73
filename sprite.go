package ekq

import "image"

// Sprite is a region of a bitmap drawn at a 2D world position.
type Sprite struct {
	Position Vec3d
	Bitmap   Bitmap
	Region   image.Rectangle
	Visible  bool
}

// SpriteList stores sprites in slots. Deleted slots are reused, so an id
// stays valid until its sprite is deleted.
type SpriteList struct {
	sprites []Sprite
	used    []bool
	free    []int
}

// New stores s and returns its id.
func (l *SpriteList) New(s Sprite) int {
	if n := len(l.free); n > 0 {
		id := l.free[n-1]
		l.free = l.free[:n-1]
		l.sprites[id] = s
		l.used[id] = true
		return id
	}
	l.sprites = append(l.sprites, s)
	l.used = append(l.used, true)
	return len(l.sprites) - 1
}

// Get returns the sprite with id, or nil.
func (l *SpriteList) Get(id int) *Sprite {
	if id < 0 || id >= len(l.sprites) || !l.used[id] {
		return nil
	}
	return &l.sprites[id]
}

func (l *SpriteList) Delete(id int) bool {
	if l.Get(id) == nil {
		return false
	}
	l.sprites[id] = Sprite{}
	l.used[id] = false
	l.free = append(l.free, id)
	return true
}

func (l *SpriteList) Len() int {
	return len(l.sprites) - len(l.free)
}

// Each calls fn for every sprite in id order.
func (l *SpriteList) Each(fn func(id int, s *Sprite)) {
	for id := range l.sprites {
		if l.used[id] {
			fn(id, &l.sprites[id])
		}
	}
}

// Draw draws the visible sprites the camera can see, in id order.
func (l *SpriteList) Draw(b Backend, cam *Camera) {
	l.Each(func(_ int, s *Sprite) {
		if !s.Visible || s.Bitmap == nil {
			return
		}
		w, h := float64(s.Region.Dx()), float64(s.Region.Dy())
		if !cam.CanSee(s.Position.X, s.Position.Y, w, h) {
			return
		}
		x, y := cam.WorldToScreen(s.Position.X, s.Position.Y)
		b.DrawBitmapRegion(s.Bitmap, s.Region, x, y)
	})
}
