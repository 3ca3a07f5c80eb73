package ekq

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Look     [3]float64 `yaml:"look"`
	FOV      float64    `yaml:"fov"`
	Far      float64    `yaml:"far"`
}

type ShowConfig struct {
	FPS   bool `yaml:"fps"`
	Graph bool `yaml:"graph"`
	Area  bool `yaml:"area"`
}

// Config is the engine configuration, normally read from a YAML file.
type Config struct {
	Screen     ScreenConfig `yaml:"screen"`
	Camera     CameraConfig `yaml:"camera"`
	Show       ShowConfig   `yaml:"show"`
	DataDir    string       `yaml:"data_dir"`
	Background [3]uint8     `yaml:"background"`
	// MaxFrameTime caps the seconds one update may advance.
	MaxFrameTime float64 `yaml:"max_frame_time"`
	// CellSize is the edge length of a maze cell in world units.
	CellSize float64 `yaml:"cell_size"`
}

func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{Width: 640, Height: 480},
		Camera: CameraConfig{
			Position: [3]float64{0, 0, -1},
			Look:     [3]float64{0, 0, 1},
			FOV:      45,
			Far:      DefaultFarPlane,
		},
		Show:         ShowConfig{Graph: true},
		DataDir:      "data",
		Background:   [3]uint8{64, 128, 64},
		MaxFrameTime: 1.0 / 20,
		CellSize:     1,
	}
}

// ParseConfig reads YAML over the defaults and checks the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: screen size %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("config: camera fov %g must be between 0 and 180", c.Camera.FOV))
	}
	if c.Camera.Far <= 1 {
		errs = append(errs, fmt.Errorf("config: camera far plane %g must be beyond 1", c.Camera.Far))
	}
	if c.MaxFrameTime <= 0 {
		errs = append(errs, fmt.Errorf("config: max_frame_time %g must be positive", c.MaxFrameTime))
	}
	if c.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("config: cell_size %g must be positive", c.CellSize))
	}
	return errors.Join(errs...)
}

func (c Config) BackgroundColor() color.RGBA {
	return color.RGBA{c.Background[0], c.Background[1], c.Background[2], 255}
}

// NewCamera builds the camera the configuration describes.
func (c Config) NewCamera() *Camera {
	p, l := c.Camera.Position, c.Camera.Look
	cam := NewCamera(V3(p[0], p[1], p[2]), V3(l[0], l[1], l[2]), c.Screen.Width, c.Screen.Height, c.Camera.FOV)
	cam.SetFarPlane(c.Camera.Far)
	cam.Update(0)
	return cam
}
