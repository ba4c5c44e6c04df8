// Package config describes a viewer session: window, camera, render
// switches, lights and the nodes to load. Files are TOML or YAML, picked by
// extension.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	AssetRoot   string `toml:"asset_root" yaml:"asset_root"`
	Environment string `toml:"environment" yaml:"environment"` // directory of six cubemap faces; empty is neutral gray

	Window Window  `toml:"window" yaml:"window"`
	Camera Camera  `toml:"camera" yaml:"camera"`
	Render Render  `toml:"render" yaml:"render"`
	Lights []Light `toml:"lights" yaml:"lights"`
	Nodes  []Node  `toml:"nodes" yaml:"nodes"`

	// Properties are editor overrides applied after the scene is built,
	// keyed "Node/Section/Field", e.g. "Node0/Material/Roughness".
	Properties map[string]any `toml:"properties" yaml:"properties"`
}

type Window struct {
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Title     string `toml:"title" yaml:"title"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
	VSync     bool   `toml:"vsync" yaml:"vsync"`
}

type Camera struct {
	Eye    [3]float32 `toml:"eye" yaml:"eye"`
	Center [3]float32 `toml:"center" yaml:"center"`
	Up     [3]float32 `toml:"up" yaml:"up"`
	FOV    float32    `toml:"fov" yaml:"fov"` // vertical, degrees
	Near   float32    `toml:"near" yaml:"near"`
	Far    float32    `toml:"far" yaml:"far"`
	Speed  float32    `toml:"speed" yaml:"speed"` // units per second
}

type Render struct {
	Shaders    string     `toml:"shaders" yaml:"shaders"` // directory overriding the embedded sources
	Watch      bool       `toml:"watch" yaml:"watch"`     // reload shaders when files change
	Debug      bool       `toml:"debug" yaml:"debug"`     // ground grid
	Wireframe  bool       `toml:"wireframe" yaml:"wireframe"`
	Skybox     bool       `toml:"skybox" yaml:"skybox"`
	ClearColor [4]float32 `toml:"clear_color" yaml:"clear_color"`
}

type Light struct {
	Name      string     `toml:"name" yaml:"name"`
	Position  [3]float32 `toml:"position" yaml:"position"`
	Color     [3]float32 `toml:"color" yaml:"color"`
	Intensity float32    `toml:"intensity" yaml:"intensity"`
}

// Material kinds a node can use.
const (
	MaterialFlat       = "flat"
	MaterialWireframe  = "wireframe"
	MaterialReflective = "reflective"
	MaterialPhong      = "phong"
	MaterialPBR        = "pbr"
)

type Node struct {
	Name     string     `toml:"name" yaml:"name"`
	Mesh     string     `toml:"mesh" yaml:"mesh"` // file path or "primitive:<name>"
	Material string     `toml:"material" yaml:"material"`
	Texture  string     `toml:"texture" yaml:"texture"` // flat only
	Color    [4]float32 `toml:"color" yaml:"color"`
	Position [3]float32 `toml:"position" yaml:"position"`
	Rotation [3]float32 `toml:"rotation" yaml:"rotation"` // degrees
	Scale    [3]float32 `toml:"scale" yaml:"scale"`

	// PBR only: map name (albedo, roughness, metallic, normal, opacity,
	// emission, occlusion, height, brdf) to image path, and the features
	// switched on at load.
	Maps     map[string]string `toml:"maps" yaml:"maps"`
	Features []string          `toml:"features" yaml:"features"`
}

// Default mirrors the stock scene: two lights, one PBR sphere and a camera
// looking at the origin from (15, 15, 25).
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "pbr-viewer",
			Resizable: true,
			VSync:     true,
		},
		Camera: Camera{
			Eye:    [3]float32{15, 15, 25},
			Center: [3]float32{0, 0, 0},
			Up:     [3]float32{0, 1, 0},
			FOV:    45,
			Near:   0.1,
			Far:    10000,
			Speed:  10,
		},
		Render: Render{
			Skybox:     true,
			ClearColor: [4]float32{0.1, 0.1, 0.1, 1},
		},
		Lights: []Light{
			{Position: [3]float32{-15, 5, -15}, Color: [3]float32{1, 1, 1}, Intensity: 1},
			{Position: [3]float32{15, 15, 0}, Color: [3]float32{1, 1, 1}, Intensity: 1},
		},
		Nodes: []Node{{
			Mesh:     "primitive:sphere",
			Material: MaterialPBR,
			Color:    [4]float32{1, 1, 1, 1},
			Scale:    [3]float32{2, 2, 2},
			Features: []string{"punctual_light", "ibl"},
		}},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	// Lists in the file replace the default lists instead of extending them.
	defaults := cfg
	cfg.Lights, cfg.Nodes = nil, nil
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(raw, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cfg)
	default:
		return cfg, fmt.Errorf("config %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Lights == nil {
		cfg.Lights = defaults.Lights
	}
	if cfg.Nodes == nil {
		cfg.Nodes = defaults.Nodes
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate fills zero values that have a sensible default, clamps soft
// limits and rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		bad("log_level %q", c.LogLevel)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		bad("camera fov %v outside (0, 180)", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		bad("camera near/far %v/%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Up == [3]float32{} {
		c.Camera.Up = [3]float32{0, 1, 0}
	}
	if c.Camera.Eye == c.Camera.Center {
		bad("camera eye equals center")
	}
	if c.Camera.Speed <= 0 {
		c.Camera.Speed = 10
	}

	for i := range c.Lights {
		l := &c.Lights[i]
		if l.Color == [3]float32{} {
			l.Color = [3]float32{1, 1, 1}
		}
		l.Intensity = clamp(l.Intensity, 0, 10)
	}

	for i := range c.Nodes {
		n := &c.Nodes[i]
		switch n.Material {
		case "":
			n.Material = MaterialFlat
		case MaterialFlat, MaterialWireframe, MaterialReflective, MaterialPhong, MaterialPBR:
		default:
			bad("node %d: unknown material %q", i, n.Material)
		}
		if n.Mesh == "" {
			bad("node %d: no mesh", i)
		}
		if n.Scale == [3]float32{} {
			n.Scale = [3]float32{1, 1, 1}
		}
		if n.Color == [4]float32{} {
			n.Color = [4]float32{1, 1, 1, 1}
		}
		for _, f := range n.Features {
			if _, ok := Features[f]; !ok {
				bad("node %d: unknown feature %q", i, f)
			}
		}
		for k := range n.Maps {
			if _, ok := MapNames[k]; !ok {
				bad("node %d: unknown map %q", i, k)
			}
		}
	}
	return errors.Join(errs...)
}

// Features lists the PBR feature keys accepted in Node.Features.
var Features = map[string]struct{}{
	"punctual_light": {}, "ibl": {}, "albedo_map": {}, "roughness_map": {},
	"metallic_map": {}, "normal_map": {}, "opacity_map": {}, "emission_map": {},
	"occlusion_map": {}, "height_map": {},
}

// MapNames lists the keys accepted in Node.Maps.
var MapNames = map[string]struct{}{
	"albedo": {}, "roughness": {}, "metallic": {}, "normal": {}, "opacity": {},
	"emission": {}, "occlusion": {}, "height": {}, "brdf": {},
}

// ParseLevel maps a log level name to slog. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(s))
	return l, err
}

func clamp(f, lo, hi float32) float32 {
	return max(lo, min(f, hi))
}

// Save writes c to path in the format its extension names.
func Save(path string, c Config) error {
	var (
		raw []byte
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		raw, err = toml.Marshal(c)
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("config %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("encode config %q: %w", path, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
