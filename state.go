package ekq

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
)

// ScriptHost is the scripting layer. OnUpdate runs once per update, after
// the camera has moved.
type ScriptHost interface {
	OnUpdate(s *State, dt float64) error
}

// Overlay is a 2D element drawn in screen coordinates when the graph is
// shown.
type Overlay interface {
	Draw(b Backend)
}

// State ties the engine together. It owns the camera and the scene, and
// runs the per frame update and draw sequence against a Backend.
type State struct {
	backend Backend
	store   Store
	camera  *Camera
	now     func() float64

	maze     *Maze
	cellSize float64
	skybox   *Skybox
	layers   []*Tilepane
	models   []*Model
	sprites  SpriteList
	overlays []Overlay
	script   ScriptHost

	background   color.RGBA
	maxFrameTime float64

	ShowFPS   bool
	ShowGraph bool
	ShowArea  bool

	fps     float64
	fpstime float64
	frames  int
}

// NewState builds a state from cfg. now reports the time in seconds and is
// used to measure the frame rate.
func NewState(cfg Config, b Backend, store Store, now func() float64) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	if b == nil {
		return nil, errors.New("state: no backend")
	}
	s := &State{
		backend:      b,
		store:        store,
		camera:       cfg.NewCamera(),
		now:          now,
		cellSize:     cfg.CellSize,
		background:   cfg.BackgroundColor(),
		maxFrameTime: cfg.MaxFrameTime,
		ShowFPS:      cfg.Show.FPS,
		ShowGraph:    cfg.Show.Graph,
		ShowArea:     cfg.Show.Area,
		// assume 60 fps until measured
		fps:    60,
		frames: 60,
	}
	s.fpstime = now()
	return s, nil
}

func (s *State) Backend() Backend { return s.backend }
func (s *State) Store() Store { return s.store }
func (s *State) Camera() *Camera { return s.camera }
func (s *State) Maze() *Maze { return s.maze }
func (s *State) SetMaze(m *Maze) { s.maze = m }
func (s *State) CellSize() float64 { return s.cellSize }
func (s *State) Skybox() *Skybox { return s.skybox }
func (s *State) SetSkybox(sky *Skybox) { s.skybox = sky }
func (s *State) Sprites() *SpriteList { return &s.sprites }
func (s *State) SetScript(h ScriptHost) { s.script = h }
func (s *State) Background() color.RGBA { return s.background }

func (s *State) SetBackground(c color.RGBA) { s.background = c }

// AddLayer adds a tile pane drawn over the earlier ones and returns its
// index.
func (s *State) AddLayer(p *Tilepane) int {
	s.layers = append(s.layers, p)
	return len(s.layers) - 1
}

func (s *State) Layer(i int) *Tilepane {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

func (s *State) Layers() int { return len(s.layers) }

func (s *State) AddModel(m *Model) { s.models = append(s.models, m) }

func (s *State) AddOverlay(o Overlay) { s.overlays = append(s.overlays, o) }

func (s *State) FPS() float64 { return s.fps }

func (s *State) Frames() int { return s.frames }

// FrameTime is the time step of an update: one frame at the measured rate,
// but never more than the configured maximum.
func (s *State) FrameTime() float64 {
	if s.fps <= 0 || 1/s.fps > s.maxFrameTime {
		return s.maxFrameTime
	}
	return 1 / s.fps
}

// FramesUpdate counts a presented frame. About once a second the rate is
// measured again over the last second, keeping half of the history.
func (s *State) FramesUpdate() {
	now := s.now()
	s.frames++
	if now-s.fpstime > 1.0 {
		s.fps = math.Floor(float64(s.frames)/(now-s.fpstime) + 0.5)
		s.frames /= 2
		s.fpstime = now - 0.5
	}
}

// Update advances the scene by one frame time.
func (s *State) Update() {
	dt := s.FrameTime()
	s.camera.Steer(dt)
	s.camera.Update(dt)

	seen := make(map[*Tileset]bool)
	for _, p := range s.layers {
		if set := p.Tileset(); set != nil && !seen[set] {
			seen[set] = true
			set.Update(dt)
		}
	}
	for _, m := range s.models {
		m.Update(dt)
	}
	if s.script != nil {
		if err := s.script.OnUpdate(s, dt); err != nil {
			log.Printf("state: script update: %v", err)
		}
	}
}

// Draw renders one frame: the 3D scene through the perspective projection
// with depth testing, then the 2D layers, sprites and overlays in screen
// coordinates.
func (s *State) Draw() {
	b := s.backend
	s.camera.ApplyPerspective(b)
	b.Clear(s.background)
	b.SetDepthTest(true)
	b.ClearDepthBuffer(1)
	s.camera.ApplyView(b)

	if s.skybox != nil {
		s.skybox.Draw(b)
	}
	if s.maze != nil {
		s.maze.Draw(b, s.cellSize)
	}
	for _, m := range s.models {
		m.Draw(b)
	}

	b.SetDepthTest(false)
	s.camera.ApplyOrthographic(b)
	b.UseTransform(Identity())

	for _, p := range s.layers {
		p.Draw(b, s.camera)
	}
	s.sprites.Draw(b, s.camera)
	if s.ShowGraph {
		for _, o := range s.overlays {
			o.Draw(b)
		}
	}
}
