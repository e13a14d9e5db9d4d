package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.System != "solar" {
		t.Errorf("expected system solar, got %s", cfg.System)
	}
	if cfg.TimeStep != 3600 {
		t.Errorf("expected time step 3600, got %v", cfg.TimeStep)
	}
	if cfg.StepIncrement != 3600 {
		t.Errorf("expected step increment 3600, got %d", cfg.StepIncrement)
	}
	if cfg.FPS != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.FPS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	bodies, err := GetPreset("solar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 5 {
		t.Errorf("expected 5 bodies, got %d", len(bodies))
	}
	if !bodies[0].IsAnchor() || bodies[0].Name != "sun" {
		t.Errorf("expected sun anchor first, got %s", bodies[0].Name)
	}
}

func TestGetPresetFresh(t *testing.T) {
	a, _ := GetPreset("sun-earth")
	b, _ := GetPreset("sun-earth")
	a[1].Pos.X = 0
	if b[1].Pos.X == 0 {
		t.Error("presets must not share bodies")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"negative trail", func(c *Config) { c.TrailCapacity = -1 }, dynamo.ErrInvalidConfig},
		{"zero increment", func(c *Config) { c.StepIncrement = 0 }, dynamo.ErrInvalidConfig},
		{"zero fps", func(c *Config) { c.FPS = 0 }, dynamo.ErrInvalidConfig},
		{"zero scale", func(c *Config) { c.PixelsPerAU = 0 }, dynamo.ErrInvalidConfig},
		{"empty window", func(c *Config) { c.Window.Height = 0 }, dynamo.ErrInvalidConfig},
		{"unknown system", func(c *Config) { c.System = "nope" }, dynamo.ErrUnknownPreset},
		{"unnamed body", func(c *Config) { c.Bodies = []BodyConfig{{Mass: 1}} }, dynamo.ErrInvalidConfig},
		{"zero time step", func(c *Config) { c.TimeStep = 0 }, nil},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(cfg)
		err := cfg.Validate()
		if tt.want == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestBuildPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrailCapacity = 50

	reg, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if reg.Len() != 5 || len(reg.Anchors()) != 1 {
		t.Errorf("expected 5 bodies with one anchor, got %d/%d", reg.Len(), len(reg.Anchors()))
	}
	if reg.TimeStep() != 3600 {
		t.Errorf("expected time step 3600, got %v", reg.TimeStep())
	}
	if reg.MustBody("earth").Trail.Cap() != 50 {
		t.Errorf("expected trail capacity 50")
	}
}

func TestBuildCustomBodies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoOrbit = true
	cfg.Bodies = []BodyConfig{
		{Name: "star", Anchor: true, Mass: physics.SunMass},
		{Name: "rock", X: 2, Mass: 1e20},
		{Name: "comet", X: -3, VY: 5000, Mass: 1e12},
	}

	reg, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	rock := reg.MustBody("rock")
	if rock.Pos.X != 2*physics.AU {
		t.Errorf("expected rock at 2 AU, got %v", rock.Pos.X)
	}
	want := math.Sqrt(physics.G * physics.SunMass / (2 * physics.AU))
	if math.Abs(rock.Speed()-want) > want*1e-12 {
		t.Errorf("expected circular speed %v, got %v", want, rock.Speed())
	}
	if rock.Vel.Y >= 0 {
		t.Errorf("body on +x should move towards -y, got %v", rock.Vel)
	}

	comet := reg.MustBody("comet")
	if comet.Vel != (dynamo.Vec2{Y: 5000}) {
		t.Errorf("explicit velocity must be kept, got %v", comet.Vel)
	}
}

func TestBuildRejectsBadMass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []BodyConfig{{Name: "ghost", Mass: 0}}

	_, err := cfg.Build()
	var be *dynamo.BodyError
	if !errors.As(err, &be) || be.Body != "ghost" {
		t.Fatalf("expected body error for ghost, got %v", err)
	}
	if !errors.Is(err, dynamo.ErrNonPositiveMass) {
		t.Errorf("expected ErrNonPositiveMass, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planetarium.yaml")

	cfg := DefaultConfig()
	cfg.System = "sun-earth"
	cfg.TrailCapacity = 200
	cfg.Bodies = []BodyConfig{{Name: "sun", Anchor: true, Mass: physics.SunMass}}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.System != "sun-earth" || loaded.TrailCapacity != 200 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.Bodies) != 1 || !loaded.Bodies[0].Anchor {
		t.Errorf("round trip lost bodies: %+v", loaded.Bodies)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := writeFile(path, "system: sun-earth\n"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FPS != DefaultFPS || cfg.PixelsPerAU != DefaultPixelsPerAU {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
