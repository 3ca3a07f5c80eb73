package ekq

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// objCorner is a position and texture coordinate pair from an OBJ face.
type objCorner struct {
	pos, uv int
}

type objReader struct {
	positions []Vec3d
	uvs       [][2]float64
	model     *Model
	index     map[objCorner]int
}

// LoadOBJ reads the geometry of a Wavefront OBJ file: v, vt and f
// statements. Faces with more than three corners are split into a fan of
// triangles. Everything else, including normals and materials, is skipped.
func LoadOBJ(r io.Reader) (*Model, error) {
	o := &objReader{model: NewModel(), index: make(map[objCorner]int)}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		var err error
		switch fields[0] {
		case "v":
			err = o.vertex(fields[1:])
		case "vt":
			err = o.texcoord(fields[1:])
		case "f":
			err = o.face(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("obj: line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	return o.model, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("need %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse float value '%s': %w", fields[i], err)
		}
		out[i] = v
	}
	return out, nil
}

func (o *objReader) vertex(fields []string) error {
	v, err := parseFloats(fields, 3)
	if err != nil {
		return err
	}
	o.positions = append(o.positions, Vec3d{v[0], v[1], v[2]})
	return nil
}

// texcoord flips v: OBJ puts v=0 at the bottom of the image.
func (o *objReader) texcoord(fields []string) error {
	v, err := parseFloats(fields, 2)
	if err != nil {
		return err
	}
	o.uvs = append(o.uvs, [2]float64{v[0], 1 - v[1]})
	return nil
}

// resolve turns a 1 based, possibly negative, OBJ index into a 0 based one.
func resolve(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index '%s': %w", s, err)
	}
	if i < 0 {
		i += count
	} else {
		i--
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range", s)
	}
	return i, nil
}

func (o *objReader) corner(field string) (int, error) {
	parts := strings.Split(field, "/")
	pos, err := resolve(parts[0], len(o.positions))
	if err != nil {
		return 0, err
	}
	key := objCorner{pos: pos, uv: -1}
	if len(parts) > 1 && parts[1] != "" {
		if key.uv, err = resolve(parts[1], len(o.uvs)); err != nil {
			return 0, err
		}
	}
	if index, found := o.index[key]; found {
		return index, nil
	}
	p := o.positions[pos]
	var index int
	if key.uv >= 0 {
		uv := o.uvs[key.uv]
		index = o.model.AddUV(p.X, p.Y, p.Z, uv[0], uv[1])
	} else {
		index = o.model.AddVertex(p.X, p.Y, p.Z)
	}
	o.index[key] = index
	return index, nil
}

func (o *objReader) face(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs 3 corners, got %d", len(fields))
	}
	corners := make([]int, len(fields))
	for i, f := range fields {
		c, err := o.corner(f)
		if err != nil {
			return err
		}
		corners[i] = c
	}
	for i := 2; i < len(corners); i++ {
		o.model.AddTriangle(corners[0], corners[i-1], corners[i])
	}
	return nil
}
