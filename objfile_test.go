package ekq

import (
	"strings"
	"testing"
)

const quadOBJ = `# a textured quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl none
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestLoadOBJQuad(t *testing.T) {
	m, err := LoadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("LoadOBJ() error = %v", err)
	}
	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Fatalf("%d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}
	a, b, c, _ := m.Triangle(1)
	if a != 0 || b != 2 || c != 3 {
		t.Errorf("fan triangle = %d %d %d", a, b, c)
	}
	v, _ := m.Vertex(0)
	if v.U != 0 || v.V != 1 {
		t.Errorf("v not flipped: uv %v,%v", v.U, v.V)
	}
}

func TestLoadOBJShared(t *testing.T) {
	data := `v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
f -3 -1 -2
`
	m, err := LoadOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadOBJ() error = %v", err)
	}
	if m.VertexCount() != 4 {
		t.Errorf("shared corners duplicated: %d vertices", m.VertexCount())
	}
	a, b, c, _ := m.Triangle(1)
	if a != 1 || b != 3 || c != 2 {
		t.Errorf("negative indices gave %d %d %d", a, b, c)
	}
}

func TestLoadOBJErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"bad float", "v 0 x 0\n"},
		{"short vertex", "v 1 2\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"bad uv index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/5 2 3\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadOBJ(strings.NewReader(tc.data)); err == nil {
				t.Errorf("LoadOBJ() succeeded")
			}
		})
	}
}
