package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/physics"
)

const (
	DefaultSystem        = "solar"
	DefaultTimeStep      = physics.HourSeconds
	DefaultStepIncrement = physics.HourSeconds
	DefaultFPS           = 60
	DefaultPixelsPerAU   = 350.0
	DefaultWidth         = 1920
	DefaultHeight        = 1080
)

type Config struct {
	System        string       `yaml:"system"`
	TimeStep      float64      `yaml:"time_step"`
	StepIncrement int          `yaml:"step_increment"`
	TrailCapacity int          `yaml:"trail_capacity"`
	FPS           int          `yaml:"fps"`
	PixelsPerAU   float64      `yaml:"pixels_per_au"`
	Window        WindowConfig `yaml:"window"`
	AutoOrbit     bool         `yaml:"auto_orbit"`
	Bodies        []BodyConfig `yaml:"bodies,omitempty"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BodyConfig describes one body of a custom system. Positions are given in
// AU, velocities in m/s and masses in kg.
type BodyConfig struct {
	Name   string  `yaml:"name"`
	Anchor bool    `yaml:"anchor,omitempty"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx,omitempty"`
	VY     float64 `yaml:"vy,omitempty"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius,omitempty"`
	Color  string  `yaml:"color,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		System:        DefaultSystem,
		TimeStep:      DefaultTimeStep,
		StepIncrement: DefaultStepIncrement,
		FPS:           DefaultFPS,
		PixelsPerAU:   DefaultPixelsPerAU,
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings that the registry does not check itself.
func (c *Config) Validate() error {
	switch {
	case c.TrailCapacity < 0:
		return fmt.Errorf("%w: trail_capacity must not be negative, got %d", dynamo.ErrInvalidConfig, c.TrailCapacity)
	case c.StepIncrement <= 0:
		return fmt.Errorf("%w: step_increment must be positive, got %d", dynamo.ErrInvalidConfig, c.StepIncrement)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrInvalidConfig, c.FPS)
	case c.PixelsPerAU <= 0:
		return fmt.Errorf("%w: pixels_per_au must be positive, got %g", dynamo.ErrInvalidConfig, c.PixelsPerAU)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", dynamo.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}

	if len(c.Bodies) == 0 {
		if _, ok := Presets[c.System]; !ok {
			return fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, c.System)
		}
		return nil
	}
	for i, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", dynamo.ErrInvalidConfig, i)
		}
	}
	return nil
}

// Build creates the registry described by the config. Custom bodies take
// precedence over the named system.
func (c *Config) Build() (*physics.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var bodies []*physics.Body
	if len(c.Bodies) > 0 {
		bodies = make([]*physics.Body, 0, len(c.Bodies))
		for _, bc := range c.Bodies {
			bodies = append(bodies, bc.body())
		}
	} else {
		var err error
		if bodies, err = GetPreset(c.System); err != nil {
			return nil, err
		}
	}

	if c.AutoOrbit {
		circularize(bodies)
	}

	return physics.NewRegistry(c.TimeStep, c.TrailCapacity, bodies...)
}

func (bc BodyConfig) body() *physics.Body {
	pos := dynamo.Vec2{X: bc.X * physics.AU, Y: bc.Y * physics.AU}
	look := physics.Appearance{Radius: bc.Radius, Color: bc.Color}
	if look.Color == "" {
		look.Color = physics.ColorWhite
	}
	if look.Radius == 0 {
		look.Radius = 10
	}
	if bc.Anchor {
		return physics.NewAnchor(bc.Name, pos, bc.Mass, look)
	}
	return physics.NewPlanet(bc.Name, pos, dynamo.Vec2{X: bc.VX, Y: bc.VY}, bc.Mass, look)
}

// circularize gives every resting mover a circular orbit around the first
// anchor.
func circularize(bodies []*physics.Body) {
	var primary *physics.Body
	for _, b := range bodies {
		if b.IsAnchor() {
			primary = b
			break
		}
	}
	if primary == nil {
		return
	}
	for _, b := range bodies {
		if !b.IsAnchor() && b.Vel == (dynamo.Vec2{}) {
			b.Vel = physics.CircularVelocity(primary, b.Pos)
		}
	}
}
