package ekq

import (
	"errors"
	"image/color"
)

type SkyDirection int

const (
	SkyNorth SkyDirection = iota
	SkyEast
	SkySouth
	SkyWest
	SkyUp
	SkyDown
	skyDirections
)

// SkyboxExtent is the half size of the skybox cube.
const SkyboxExtent = 500.0

var (
	ErrSkyDirection = errors.New("skybox: no such direction")
	ErrSkyCorner    = errors.New("skybox: corner must be 0 to 3")
	ErrSkyTexture   = errors.New("skybox: texture not found")
)

// Skybox is a box of six coloured, optionally textured, faces drawn around
// the world. Corners 0 and 1 of a face are its top edge.
type Skybox struct {
	textures [skyDirections]Bitmap
	colors   [skyDirections][4]color.RGBA
}

// NewSkybox returns an untextured skybox: blue walls that lighten towards
// the horizon, a pale sky and a dark red floor.
func NewSkybox() *Skybox {
	s := &Skybox{}
	c4 := color.RGBA{100, 100, 250, 255}
	c5 := color.RGBA{150, 150, 200, 255}
	cb := color.RGBA{100, 30, 30, 255}
	for d := SkyNorth; d < SkyUp; d++ {
		s.colors[d] = [4]color.RGBA{c4, c4, c5, c5}
	}
	s.colors[SkyUp] = [4]color.RGBA{c5, c5, c5, c5}
	s.colors[SkyDown] = [4]color.RGBA{cb, cb, cb, cb}
	return s
}

// SetTexture looks texture up in store. A negative id removes the texture.
func (s *Skybox) SetTexture(store Store, dir SkyDirection, texture int) error {
	if dir < 0 || dir >= skyDirections {
		return ErrSkyDirection
	}
	if texture < 0 {
		s.textures[dir] = nil
		return nil
	}
	var bmp Bitmap
	if store != nil {
		bmp = store.Bitmap(texture)
	}
	if bmp == nil {
		return ErrSkyTexture
	}
	s.textures[dir] = bmp
	return nil
}

func (s *Skybox) Texture(dir SkyDirection) Bitmap {
	if dir < 0 || dir >= skyDirections {
		return nil
	}
	return s.textures[dir]
}

// SetColor sets one corner of a face. The alpha is always opaque.
func (s *Skybox) SetColor(dir SkyDirection, corner int, c color.RGBA) error {
	if dir < 0 || dir >= skyDirections {
		return ErrSkyDirection
	}
	if corner < 0 || corner > 3 {
		return ErrSkyCorner
	}
	c.A = 255
	s.colors[dir][corner] = c
	return nil
}

func (s *Skybox) SetColors(dir SkyDirection, colors [4]color.RGBA) error {
	for i, c := range colors {
		if err := s.SetColor(dir, i, c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Skybox) Color(dir SkyDirection, corner int) color.RGBA {
	if dir < 0 || dir >= skyDirections || corner < 0 || corner > 3 {
		return color.RGBA{}
	}
	return s.colors[dir][corner]
}

// skyFaces lists the corners of each face, top edge first.
var skyFaces = func() [skyDirections][4]Vec3d {
	const e = SkyboxExtent
	const floor = -0.1
	return [skyDirections][4]Vec3d{
		SkyNorth: {{-e, e, -e}, {e, e, -e}, {e, -e, -e}, {-e, -e, -e}},
		SkyEast:  {{e, e, -e}, {e, e, e}, {e, -e, e}, {e, -e, -e}},
		SkySouth: {{e, e, e}, {-e, e, e}, {-e, -e, e}, {e, -e, e}},
		SkyWest:  {{-e, e, e}, {-e, e, -e}, {-e, -e, -e}, {-e, -e, e}},
		SkyUp:    {{-e, e, -e}, {e, e, -e}, {e, e, e}, {-e, e, e}},
		SkyDown:  {{-e, floor, -e}, {e, floor, -e}, {e, floor, e}, {-e, floor, e}},
	}
}()

var skyUV = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
var quadIndices = []int{0, 1, 2, 0, 2, 3}

// Draw draws the floor, the four walls and then the ceiling with the
// current transform.
func (s *Skybox) Draw(b Backend) {
	order := [skyDirections]SkyDirection{SkyDown, SkyNorth, SkySouth, SkyWest, SkyEast, SkyUp}
	for _, d := range order {
		vs := make([]Vertex, 4)
		for i, p := range skyFaces[d] {
			vs[i] = Vertex{X: p.X, Y: p.Y, Z: p.Z, U: skyUV[i][0], V: skyUV[i][1], Color: s.colors[d][i]}
		}
		b.DrawIndexedPrim(vs, s.textures[d], quadIndices)
	}
}
