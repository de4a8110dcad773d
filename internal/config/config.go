package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"shadowfov/internal/gamemap"
	"shadowfov/internal/generate"
	"shadowfov/internal/render"

	"gopkg.in/yaml.v3"
)

// Config holds everything the demo and the SSH server read at startup.
type Config struct {
	Map    MapConfig    `yaml:"map"`
	View   ViewConfig   `yaml:"view"`
	Server ServerConfig `yaml:"server"`
}

// MapConfig describes the generated map.
type MapConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Style   string `yaml:"style"`   // scatter | bsp
	Walls   int    `yaml:"walls"`   // scatter toggles
	Seed    int64  `yaml:"seed"`    // 0 = seed from the clock
	Outside string `yaml:"outside"` // opaque | transparent
}

// ViewConfig bounds the field-of-view radius and picks the glyph theme.
type ViewConfig struct {
	Range    int    `yaml:"range"`
	MinRange int    `yaml:"min_range"`
	MaxRange int    `yaml:"max_range"`
	Theme    string `yaml:"theme"` // ascii | emoji
}

// ServerConfig holds SSH listener parameters.
type ServerConfig struct {
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Map: MapConfig{
			Width:   30,
			Height:  30,
			Style:   "scatter",
			Walls:   100,
			Outside: "opaque",
		},
		View: ViewConfig{
			Range:    5,
			MinRange: 0,
			MaxRange: 30,
			Theme:    "ascii",
		},
		Server: ServerConfig{
			Port:    2222,
			HostKey: "server_host_key",
		},
	}
}

// Load reads a YAML file over the defaults.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field, joined.
func (c Config) Validate() error {
	var errs []error
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		errs = append(errs, fmt.Errorf("map size %dx%d must be positive", c.Map.Width, c.Map.Height))
	}
	if c.Map.Walls < 0 {
		errs = append(errs, fmt.Errorf("map walls %d must not be negative", c.Map.Walls))
	}
	if _, err := generate.ParseStyle(c.Map.Style); err != nil {
		errs = append(errs, err)
	}
	if _, err := gamemap.ParseOutside(c.Map.Outside); err != nil {
		errs = append(errs, err)
	}
	if c.View.MinRange < 0 || c.View.MaxRange < c.View.MinRange {
		errs = append(errs, fmt.Errorf("view range bounds [%d, %d] are invalid", c.View.MinRange, c.View.MaxRange))
	}
	if c.View.Range < c.View.MinRange || c.View.Range > c.View.MaxRange {
		errs = append(errs, fmt.Errorf("view range %d outside [%d, %d]", c.View.Range, c.View.MinRange, c.View.MaxRange))
	}
	if _, err := render.LookupTheme(c.View.Theme); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	return errors.Join(errs...)
}

// NewRand returns a generator seeded from Seed, or from now when Seed is 0.
func (m MapConfig) NewRand(now int64) *rand.Rand {
	seed := m.Seed
	if seed == 0 {
		seed = now
	}
	return rand.New(rand.NewSource(seed))
}

// Generator builds the generate.Config for this map.
func (m MapConfig) Generator(rng *rand.Rand) (*generate.Config, error) {
	style, err := generate.ParseStyle(m.Style)
	if err != nil {
		return nil, err
	}
	cfg := generate.DefaultConfig(m.Width, m.Height, rng)
	cfg.Style = style
	cfg.Walls = m.Walls
	return cfg, nil
}
