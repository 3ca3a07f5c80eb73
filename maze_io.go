package ekq

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Maze files are INI files. Every entity has its own section:
//
//	[maze]                      height
//	[maze floor z]              z, width, depth
//	[maze cell z x y]           z, x, y, item_id, item_type, item_visual
//	[maze wall z x y dir]       direction, used, texture, type, item_*
//	[maze pillar z x y corner]  corner, used, texture
//
// Only present floors and cells, and used walls and pillars, are written.

func floorSection(z int) string { return fmt.Sprintf("maze floor %d", z) }
func cellSection(z, x, y int) string { return fmt.Sprintf("maze cell %d %d %d", z, x, y) }
func wallSection(z, x, y int, dir MazeDirection) string {
	return fmt.Sprintf("maze wall %d %d %d %d", z, x, y, dir)
}
func pillarSection(z, x, y, corner int) string {
	return fmt.Sprintf("maze pillar %d %d %d %d", z, x, y, corner)
}

func setInt(sec *ini.Section, key string, v int) {
	sec.Key(key).SetValue(strconv.Itoa(v))
}

func setItem(sec *ini.Section, item MazeItem) {
	setInt(sec, "item_id", item.ID)
	setInt(sec, "item_type", item.Type)
	setInt(sec, "item_visual", item.Visual)
}

func getItem(sec *ini.Section) MazeItem {
	return MazeItem{
		ID:     sec.Key("item_id").MustInt(0),
		Type:   sec.Key("item_type").MustInt(0),
		Visual: sec.Key("item_visual").MustInt(0),
	}
}

func (m *Maze) toINI() *ini.File {
	cfg := ini.Empty()
	setInt(cfg.Section("maze"), "height", m.Height())
	for _, f := range m.floors {
		if f == nil {
			continue
		}
		sec := cfg.Section(floorSection(f.Z))
		setInt(sec, "z", f.Z)
		setInt(sec, "width", f.Width)
		setInt(sec, "depth", f.Depth)
	}
	m.eachCell(func(c *MazeCell) {
		sec := cfg.Section(cellSection(c.Z, c.X, c.Y))
		setInt(sec, "z", c.Z)
		setInt(sec, "x", c.X)
		setInt(sec, "y", c.Y)
		setItem(sec, c.Item)
		for d, w := range c.Walls {
			if !w.Used {
				continue
			}
			ws := cfg.Section(wallSection(c.Z, c.X, c.Y, MazeDirection(d)))
			setInt(ws, "direction", int(w.Direction))
			ws.Key("used").SetValue(strconv.FormatBool(w.Used))
			setInt(ws, "texture", w.texture)
			setInt(ws, "type", int(w.Type))
			setItem(ws, w.Item)
		}
		for i, p := range c.Pillars {
			if !p.Used {
				continue
			}
			ps := cfg.Section(pillarSection(c.Z, c.X, c.Y, i))
			setInt(ps, "corner", i)
			ps.Key("used").SetValue(strconv.FormatBool(p.Used))
			setInt(ps, "texture", p.texture)
		}
	})
	return cfg
}

// Save writes the maze to w.
func (m *Maze) Save(w io.Writer) error {
	if _, err := m.toINI().WriteTo(w); err != nil {
		log.Printf("maze: save: %v", err)
		return fmt.Errorf("maze: save: %w", err)
	}
	return nil
}

func (m *Maze) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("maze: save %s: %v", path, err)
		return fmt.Errorf("maze: save %s: %w", path, err)
	}
	if err := m.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadMaze reads a maze written by Save and resolves its textures in store.
// A floor or cell whose recorded position or directions disagree with its
// section is left out and logged; the rest of the maze still loads.
func LoadMaze(r io.Reader, store Store) (*Maze, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		log.Printf("maze: load: %v", err)
		return nil, fmt.Errorf("maze: load: %w", err)
	}
	cfg, err := ini.Load(data)
	if err != nil {
		log.Printf("maze: load: %v", err)
		return nil, fmt.Errorf("maze: load: %w", err)
	}
	head, err := cfg.GetSection("maze")
	if err != nil {
		log.Printf("maze: load: no maze section")
		return nil, fmt.Errorf("maze: load: %w", err)
	}
	m, err := NewMaze(head.Key("height").MustInt(0), store)
	if err != nil {
		log.Printf("maze: load: %v", err)
		return nil, err
	}
	for z := range m.floors {
		if err := m.loadFloor(cfg, z); err != nil {
			log.Printf("maze: load floor %d: %v", z, err)
		}
	}
	m.loadCells(cfg)
	return m, nil
}

// LoadMazeFS loads the maze at vpath inside fsys.
func LoadMazeFS(fsys fs.FS, vpath string, store Store) (*Maze, error) {
	f, err := fsys.Open(vpath)
	if err != nil {
		log.Printf("maze: load %s: %v", vpath, err)
		return nil, fmt.Errorf("maze: load %s: %w", vpath, err)
	}
	defer f.Close()
	return LoadMaze(f, store)
}

func LoadMazeFile(path string, store Store) (*Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("maze: load %s: %v", path, err)
		return nil, fmt.Errorf("maze: load %s: %w", path, err)
	}
	defer f.Close()
	return LoadMaze(f, store)
}

func (m *Maze) loadFloor(cfg *ini.File, z int) error {
	sec, err := cfg.GetSection(floorSection(z))
	if err != nil {
		// absent floors are normal
		return nil
	}
	if got := sec.Key("z").MustInt(-1); got != z {
		return fmt.Errorf("%w: recorded z %d", ErrOutOfRange, got)
	}
	_, err = m.AddFloor(z, sec.Key("width").MustInt(0), sec.Key("depth").MustInt(0))
	return err
}

// parseCellSection reads z, x and y back from a cell section name.
func parseCellSection(name string) (z, x, y int, ok bool) {
	f := strings.Fields(name)
	if len(f) != 5 || f[0] != "maze" || f[1] != "cell" {
		return 0, 0, 0, false
	}
	var n [3]int
	for i := range n {
		v, err := strconv.Atoi(f[i+2])
		if err != nil {
			return 0, 0, 0, false
		}
		n[i] = v
	}
	return n[0], n[1], n[2], true
}

// loadCells places the cells the file holds. Only sections that exist are
// visited, so a large floor with few cells loads quickly.
func (m *Maze) loadCells(cfg *ini.File) {
	for _, sec := range cfg.Sections() {
		z, x, y, ok := parseCellSection(sec.Name())
		if !ok {
			continue
		}
		f := m.Floor(z)
		if f == nil || !f.cells.inside(x, y) {
			log.Printf("maze: load cell %d %d %d: %v", z, x, y, ErrOutOfRange)
			continue
		}
		c, err := m.loadCell(cfg, sec, z, x, y)
		if err != nil {
			log.Printf("maze: load cell %d %d %d: %v", z, x, y, err)
			continue
		}
		f.cells.Put(x, y, c)
	}
}

func (m *Maze) loadCell(cfg *ini.File, sec *ini.Section, z, x, y int) (*MazeCell, error) {
	gz, gx, gy := sec.Key("z").MustInt(-1), sec.Key("x").MustInt(-1), sec.Key("y").MustInt(-1)
	if gz != z || gx != x || gy != y {
		return nil, fmt.Errorf("%w: recorded as %d %d %d", ErrOutOfRange, gz, gx, gy)
	}
	c := &MazeCell{Z: z, X: x, Y: y, Item: getItem(sec)}
	for d := MazeDirection(0); d < MazeDirections; d++ {
		w := &c.Walls[d]
		w.Direction = d
		ws, err := cfg.GetSection(wallSection(z, x, y, d))
		if err != nil {
			continue
		}
		if got := ws.Key("direction").MustInt(-1); got != int(d) {
			return nil, fmt.Errorf("%w: slot %d holds direction %d", ErrDirectionMismatch, d, got)
		}
		w.Used = ws.Key("used").MustBool(false)
		w.Type = MazeWallType(ws.Key("type").MustInt(int(MazeWallRectangle)))
		w.Item = getItem(ws)
		w.setTexture(ws.Key("texture").MustInt(0), m.store)
	}
	for i := range c.Pillars {
		ps, err := cfg.GetSection(pillarSection(z, x, y, i))
		if err != nil {
			continue
		}
		p := &c.Pillars[i]
		p.Used = ps.Key("used").MustBool(false)
		p.texture = ps.Key("texture").MustInt(0)
		if m.store != nil {
			p.bmp = m.store.Bitmap(p.texture)
		}
	}
	c.updateVisible()
	return c, nil
}
