package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer configuration values. It is immutable for the
// lifetime of a level/session; render-scale changes go through the renderer,
// which rebuilds its buffers without touching this struct.
type Config struct {
	Display  DisplayConfig                `yaml:"display"`
	Camera   CameraConfig                 `yaml:"camera"`
	Graphics GraphicsConfig               `yaml:"graphics"`
	Levels   []LevelConfig                `yaml:"levels"`
	Enemies  map[string]EnemyVisualConfig `yaml:"enemies"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	RenderScale  int    `yaml:"render_scale"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"` // radians
	ZoomFactor  float64 `yaml:"zoom_factor"`   // FOV multiplier while zoomed, < 1
	MaxDepth    float64 `yaml:"max_depth"`     // view distance in grid cells
	FogStart    float64 `yaml:"fog_start"`     // fraction of max depth where fog begins
}

type GraphicsConfig struct {
	Textured      bool    `yaml:"textured"`
	FogColor      [3]int  `yaml:"fog_color"`
	BrightnessMin float64 `yaml:"brightness_min"`
}

// LevelConfig describes the per-level visual tables: the sky/floor theme and
// the wall palette keyed by wall-type code.
type LevelConfig struct {
	Theme      ThemeConfig    `yaml:"theme"`
	WallColors map[int][3]int `yaml:"wall_colors"`
}

type ThemeConfig struct {
	SkyTop      [3]int `yaml:"sky_top"`
	SkyBottom   [3]int `yaml:"sky_bottom"`
	FloorTop    [3]int `yaml:"floor_top"`
	FloorBottom [3]int `yaml:"floor_bottom"`
}

// EnemyVisualConfig is the per-enemy-type visual metadata record. Missing
// fields are resolved once at load time, never per frame.
type EnemyVisualConfig struct {
	Color [3]int  `yaml:"color"`
	Style string  `yaml:"style"`
	Scale float64 `yaml:"scale"`
	Item  bool    `yaml:"item"`
}

// neutralGray is the fallback for any wall code missing from a palette.
var neutralGray = color.RGBA{128, 128, 128, 255}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad loads the file at path, falling back to the built-in defaults if
// the file does not exist. Any other failure panics.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default()
		}
		panic(err)
	}
	return cfg
}

// Default returns the built-in configuration used by tests and by the demo
// when no config.yaml is present.
func Default() *Config {
	cfg := &Config{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 600,
			WindowTitle:  "gridfire",
			RenderScale:  1,
		},
		Camera: CameraConfig{
			FieldOfView: math.Pi / 3,
			ZoomFactor:  0.5,
			MaxDepth:    20,
			FogStart:    0.6,
		},
		Graphics: GraphicsConfig{
			Textured:      true,
			FogColor:      [3]int{18, 18, 28},
			BrightnessMin: 0.2,
		},
		Levels: []LevelConfig{
			{
				Theme: ThemeConfig{
					SkyTop:      [3]int{10, 10, 40},
					SkyBottom:   [3]int{60, 40, 90},
					FloorTop:    [3]int{70, 60, 50},
					FloorBottom: [3]int{25, 20, 18},
				},
				WallColors: map[int][3]int{
					1: {110, 100, 95},
					2: {80, 110, 70},
					3: {120, 70, 60},
					4: {70, 80, 120},
				},
			},
			{
				Theme: ThemeConfig{
					SkyTop:      [3]int{30, 5, 5},
					SkyBottom:   [3]int{90, 40, 20},
					FloorTop:    [3]int{60, 45, 40},
					FloorBottom: [3]int{20, 12, 10},
				},
				WallColors: map[int][3]int{
					1: {100, 70, 60},
					2: {120, 90, 50},
					3: {90, 60, 80},
					4: {60, 60, 60},
				},
			},
		},
		Enemies: map[string]EnemyVisualConfig{
			"grunt":   {Color: [3]int{180, 60, 60}, Style: "brute", Scale: 1.0},
			"floater": {Color: [3]int{90, 160, 220}, Style: "orb", Scale: 0.8},
			"wraith":  {Color: [3]int{170, 150, 230}, Style: "wisp", Scale: 1.1},
			"urchin":  {Color: [3]int{120, 190, 90}, Style: "spiker", Scale: 0.7},
			"medkit":  {Color: [3]int{230, 230, 230}, Style: "orb", Scale: 0.4, Item: true},
		},
	}
	if err := cfg.normalize(); err != nil {
		panic(err)
	}
	return cfg
}

// normalize resolves defaults and rejects configurations the renderer cannot
// work with. Runs once at load time.
func (c *Config) normalize() error {
	if c.Display.ScreenWidth <= 0 {
		c.Display.ScreenWidth = 800
	}
	if c.Display.ScreenHeight <= 0 {
		c.Display.ScreenHeight = 600
	}
	if c.Display.RenderScale < 1 {
		c.Display.RenderScale = 1
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= math.Pi {
		c.Camera.FieldOfView = math.Pi / 3
	}
	if c.Camera.ZoomFactor <= 0 || c.Camera.ZoomFactor > 1 {
		c.Camera.ZoomFactor = 0.5
	}
	if c.Camera.MaxDepth <= 0 {
		c.Camera.MaxDepth = 20
	}
	if c.Camera.FogStart < 0 {
		c.Camera.FogStart = 0
	}
	if c.Camera.FogStart >= 1 {
		c.Camera.FogStart = 0.99
	}
	if c.Graphics.BrightnessMin <= 0 {
		c.Graphics.BrightnessMin = 0.2
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("config: at least one level theme is required")
	}
	for kind, e := range c.Enemies {
		if e.Scale <= 0 {
			e.Scale = 1.0
		}
		if e.Style == "" {
			e.Style = "orb"
		}
		c.Enemies[kind] = e
	}
	return nil
}

// Level returns the level table for the given index, wrapping out-of-range
// indexes so a level change can never leave the renderer without a palette.
func (c *Config) Level(idx int) *LevelConfig {
	if idx < 0 {
		idx = 0
	}
	return &c.Levels[idx%len(c.Levels)]
}

// WallColor resolves the palette color for a wall-type code on a level,
// defaulting to neutral gray for unknown codes.
func (c *Config) WallColor(level, code int) color.RGBA {
	if rgb, ok := c.Level(level).WallColors[code]; ok {
		return color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), 255}
	}
	return neutralGray
}

// EnemyVisual resolves the visual metadata for an enemy kind. Unknown kinds
// get a gray orb so a misconfigured entity still draws something.
func (c *Config) EnemyVisual(kind string) EnemyVisualConfig {
	if e, ok := c.Enemies[kind]; ok {
		return e
	}
	return EnemyVisualConfig{Color: [3]int{128, 128, 128}, Style: "orb", Scale: 1.0}
}

// FogRGBA returns the fog color as RGBA.
func (c *Config) FogRGBA() color.RGBA {
	f := c.Graphics.FogColor
	return color.RGBA{uint8(f[0]), uint8(f[1]), uint8(f[2]), 255}
}

// NumColumns returns the off-screen column count for a render scale.
func (c *Config) NumColumns(scale int) int {
	if scale < 1 {
		scale = 1
	}
	n := c.Display.ScreenWidth / scale
	if n < 1 {
		n = 1
	}
	return n
}
