package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"earth-explorer/internal/logger"
	"earth-explorer/internal/orbit"
	"earth-explorer/internal/scene"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/explorer.yaml"

// DefaultEarthTexture is the Earth color map shipped with the explorer.
const DefaultEarthTexture = "assets/3d/texture_earth.jpg"

// Window holds window and frame pacing settings.
type Window struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
	MSAA      bool   `yaml:"msaa"`
}

// Textures holds where textures come from and how they are fetched.
type Textures struct {
	Earth   string        `yaml:"earth"` // URL, file:// URI or path
	MaxSize int           `yaml:"max_size"`
	Timeout time.Duration `yaml:"timeout"`
}

// Overlays are the on-screen panels. Persisted across runs.
type Overlays struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowHint     bool `yaml:"show_hint"`
	ShowInfo     bool `yaml:"show_info"`
	// Font is matched against font files under assets/fonts; empty takes the first one found.
	Font string `yaml:"font"`
}

// Config is the whole explorer configuration.
type Config struct {
	Window   Window        `yaml:"window"`
	Textures Textures      `yaml:"textures"`
	Scene    scene.Options `yaml:"scene"`
	Overlays Overlays      `yaml:"overlays"`
	LogPath  string        `yaml:"log_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Earth Explorer",
			TargetFPS: 60,
			MSAA:      true,
		},
		Textures: Textures{
			Earth:   DefaultEarthTexture,
			MaxSize: 4096,
			Timeout: 60 * time.Second,
		},
		Scene:    scene.DefaultOptions(),
		Overlays: Overlays{ShowHint: true},
		LogPath:  logger.DefaultPath,
	}
}

// Load reads the config at path on top of Default(), so a file only needs the keys it
// changes. A missing file returns Default() and no error. A file that does not parse
// returns Default() and the parse error. Validate is not called.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem in c, joined.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS < 0 {
		add("window: target_fps %d is negative", c.Window.TargetFPS)
	}
	if c.Textures.Earth == "" {
		add("textures: earth is empty")
	}
	if c.Textures.MaxSize < 0 {
		add("textures: max_size %d is negative", c.Textures.MaxSize)
	}

	s := c.Scene
	cam := s.Camera
	if cam.MinDistance <= 0 || cam.MaxDistance < cam.MinDistance {
		add("camera: distance range [%g, %g] is invalid", cam.MinDistance, cam.MaxDistance)
	}
	if cam.EnableDamping && (cam.DampingFactor <= 0 || cam.DampingFactor > 1) {
		add("camera: damping_factor %g not in (0, 1]", cam.DampingFactor)
	}
	if cam.Fovy <= 0 || cam.Fovy >= 180 {
		add("camera: fovy %g not in (0, 180)", cam.Fovy)
	}
	if !orbit.Opposed(s.Sun.Orbit, s.Moon.Orbit) {
		add("bodies: sun and moon orbits must share angular_speed and differ in phase by pi")
	}
	if s.Earth.Radius <= 0 {
		add("bodies: earth radius %g must be positive", s.Earth.Radius)
	}
	if s.Atmosphere.Opacity < 0 || s.Atmosphere.Opacity > 1 {
		add("bodies: atmosphere opacity %g not in [0, 1]", s.Atmosphere.Opacity)
	}
	if s.Stars.Count < 0 {
		add("stars: count %d is negative", s.Stars.Count)
	}
	return errors.Join(errs...)
}

// Environment variables that override the config file.
const (
	EnvEarthTexture = "EXPLORER_EARTH_TEXTURE"
	EnvMaxSize      = "EXPLORER_MAX_TEXTURE_SIZE"
	EnvLogPath      = "EXPLORER_LOG_PATH"
)

// ApplyEnv overrides c from the environment through lookup (see env.Lookup).
func (c *Config) ApplyEnv(lookup func(key string) (string, bool)) error {
	if v, ok := lookup(EnvEarthTexture); ok && v != "" {
		c.Textures.Earth = v
	}
	if v, ok := lookup(EnvLogPath); ok && v != "" {
		c.LogPath = v
	}
	if v, ok := lookup(EnvMaxSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvMaxSize, err)
		}
		c.Textures.MaxSize = n
	}
	return nil
}
