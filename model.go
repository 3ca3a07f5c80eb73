package ekq

import (
	"image/color"
)

// modelGrowth is the first capacity of the vertex and index arrays. Each
// later growth doubles it.
const modelGrowth = 1024

// Model is an indexed triangle mesh with one texture. Its transform is
// rebuilt whenever position, rotation or scale change.
type Model struct {
	vertices  []Vertex
	indices   []int
	texture   Bitmap
	textureID int

	position Vec3d
	scale    Vec3d
	speed    Vec3d
	rotation Rot3d
	torque   Rot3d

	transform Transform
}

func NewModel() *Model {
	m := &Model{
		scale:     Vec3d{1, 1, 1},
		textureID: -1,
	}
	m.rebuild()
	return m
}

func (m *Model) rebuild() {
	m.transform = Identity().
		Scale(m.scale.X, m.scale.Y, m.scale.Z).
		RotateEuler(m.rotation).
		TranslateVec(m.position)
}

// grow makes room for n more elements.
func grow[T any](s []T, n int) []T {
	if len(s)+n <= cap(s) {
		return s
	}
	size := max(2*cap(s), modelGrowth)
	for size < len(s)+n {
		size *= 2
	}
	out := make([]T, len(s), size)
	copy(out, s)
	return out
}

// AddVertex adds a white vertex and returns its index.
func (m *Model) AddVertex(x, y, z float64) int {
	m.vertices = grow(m.vertices, 1)
	m.vertices = append(m.vertices, Vertex{X: x, Y: y, Z: z, Color: color.RGBA{255, 255, 255, 255}})
	return len(m.vertices) - 1
}

// AddTriangle adds a triangle of three existing vertices and returns its
// index, or -1 if a vertex does not exist.
func (m *Model) AddTriangle(a, b, c int) int {
	for _, v := range [3]int{a, b, c} {
		if v < 0 || v >= len(m.vertices) {
			return -1
		}
	}
	m.indices = grow(m.indices, 3)
	m.indices = append(m.indices, a, b, c)
	return len(m.indices)/3 - 1
}

// AddUV adds a vertex with texture coordinates and returns its index.
func (m *Model) AddUV(x, y, z, u, v float64) int {
	i := m.AddVertex(x, y, z)
	m.vertices[i].U, m.vertices[i].V = u, v
	return i
}

func (m *Model) SetUV(i int, u, v float64) bool {
	if i < 0 || i >= len(m.vertices) {
		return false
	}
	m.vertices[i].U, m.vertices[i].V = u, v
	return true
}

func (m *Model) SetRGBA(i int, c color.RGBA) bool {
	if i < 0 || i >= len(m.vertices) {
		return false
	}
	m.vertices[i].Color = c
	return true
}

func (m *Model) Vertex(i int) (Vertex, bool) {
	if i < 0 || i >= len(m.vertices) {
		return Vertex{}, false
	}
	return m.vertices[i], true
}

func (m *Model) VertexCount() int { return len(m.vertices) }
func (m *Model) TriangleCount() int { return len(m.indices) / 3 }

// Triangle returns the vertex indices of triangle i.
func (m *Model) Triangle(i int) (a, b, c int, ok bool) {
	if i < 0 || i >= m.TriangleCount() {
		return 0, 0, 0, false
	}
	return m.indices[i*3], m.indices[i*3+1], m.indices[i*3+2], true
}

// SetTexture looks id up in store. An unknown id leaves the model untextured.
func (m *Model) SetTexture(store Store, id int) Bitmap {
	m.textureID = id
	m.texture = nil
	if store != nil {
		m.texture = store.Bitmap(id)
	}
	return m.texture
}

func (m *Model) Texture() Bitmap { return m.texture }
func (m *Model) TextureID() int { return m.textureID }

func (m *Model) Position() Vec3d { return m.position }
func (m *Model) Scale() Vec3d { return m.scale }
func (m *Model) Rotation() Rot3d { return m.rotation }
func (m *Model) Speed() Vec3d { return m.speed }
func (m *Model) Torque() Rot3d { return m.torque }

func (m *Model) SetPosition(p Vec3d) {
	m.position = p
	m.rebuild()
}

func (m *Model) SetScale(s Vec3d) {
	m.scale = s
	m.rebuild()
}

func (m *Model) SetRotation(r Rot3d) {
	m.rotation = r
	m.rebuild()
}

func (m *Model) SetSpeed(s Vec3d) { m.speed = s }
func (m *Model) SetTorque(r Rot3d) { m.torque = r }

func (m *Model) Transform() Transform { return m.transform }

// Update moves and turns the model by dt seconds of speed and torque.
func (m *Model) Update(dt float64) {
	m.position = m.position.Add(m.speed.Mul(dt))
	m.rotation = m.rotation.Add(m.torque.Mul(dt))
	m.rebuild()
}

// Draw draws the model through its transform and then restores the
// transform that was current.
func (m *Model) Draw(b Backend) {
	if len(m.indices) == 0 {
		return
	}
	camera := b.CurrentTransform()
	b.UseTransform(m.transform.Compose(camera))
	b.DrawIndexedPrim(m.vertices, m.texture, m.indices)
	b.UseTransform(camera)
}
