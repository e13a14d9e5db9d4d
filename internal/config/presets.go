package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/physics"
)

type Preset struct {
	Description string
	Bodies      func() []*physics.Body
}

var Presets = map[string]Preset{
	"solar": {
		Description: "sun with mercury, venus, earth and mars",
		Bodies:      physics.InnerSolarSystem,
	},
	"sun-earth": {
		Description: "single planet reference orbit",
		Bodies:      physics.SunEarth,
	},
	"twin-suns": {
		Description: "earth circling a pair of fixed suns",
		Bodies:      twinSuns,
	},
}

// GetPreset returns fresh bodies for the named system.
func GetPreset(name string) ([]*physics.Body, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	return p.Bodies(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func twinSuns() []*physics.Body {
	sunLook := physics.Appearance{Radius: 22, Color: physics.ColorYellow}
	a := physics.NewAnchor("sun-a", dynamo.Vec2{X: -0.2 * physics.AU}, physics.SunMass/2, sunLook)
	b := physics.NewAnchor("sun-b", dynamo.Vec2{X: 0.2 * physics.AU}, physics.SunMass/2, sunLook)

	pos := dynamo.Vec2{X: -1.5 * physics.AU}
	center := physics.NewAnchor("", dynamo.Vec2{}, physics.SunMass, physics.Appearance{})
	earth := physics.NewPlanet("earth", pos, physics.CircularVelocity(center, pos),
		physics.EarthMass, physics.Appearance{Radius: 16, Color: physics.ColorBlue})

	return []*physics.Body{a, b, earth}
}
