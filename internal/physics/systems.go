package physics

import (
	"math"

	"github.com/san-kum/planetarium/internal/dynamo"
)

const (
	AU          = 149.6e6 * 1000 // metres
	G           = 6.67428e-11
	HourSeconds = 3600
)

// Body colours of the sample system.
const (
	ColorYellow   = "#ffff00"
	ColorBlue     = "#6495ed"
	ColorRed      = "#bc2732"
	ColorDarkGrey = "#504751"
	ColorWhite    = "#ffffff"
)

const (
	SunMass     = 1.98892e30
	EarthMass   = 5.9742e24
	MarsMass    = 6.39e23
	MercuryMass = 3.30e23
	VenusMass   = 4.8685e24
)

// InnerSolarSystem returns the sun and the four inner planets, each starting
// on the x axis with its mean orbital speed.
func InnerSolarSystem() []*Body {
	return []*Body{
		NewAnchor("sun", dynamo.Vec2{}, SunMass, Appearance{Radius: 30, Color: ColorYellow}),
		NewPlanet("earth", dynamo.Vec2{X: -1 * AU}, dynamo.Vec2{Y: 29.783 * 1000},
			EarthMass, Appearance{Radius: 16, Color: ColorBlue}),
		NewPlanet("mars", dynamo.Vec2{X: -1.524 * AU}, dynamo.Vec2{Y: 24.077 * 1000},
			MarsMass, Appearance{Radius: 12, Color: ColorRed}),
		NewPlanet("mercury", dynamo.Vec2{X: 0.387 * AU}, dynamo.Vec2{Y: -47.4 * 1000},
			MercuryMass, Appearance{Radius: 8, Color: ColorDarkGrey}),
		NewPlanet("venus", dynamo.Vec2{X: 0.723 * AU}, dynamo.Vec2{Y: -35.02 * 1000},
			VenusMass, Appearance{Radius: 14, Color: ColorWhite}),
	}
}

// SunEarth returns the two-body reference scenario.
func SunEarth() []*Body {
	return []*Body{
		NewAnchor("sun", dynamo.Vec2{}, SunMass, Appearance{Radius: 30, Color: ColorYellow}),
		NewPlanet("earth", dynamo.Vec2{X: -1.496e11}, dynamo.Vec2{Y: 29783},
			EarthMass, Appearance{Radius: 16, Color: ColorBlue}),
	}
}

// CircularVelocity is the velocity of a circular orbit around anchor
// through pos, sqrt(GM/r) perpendicular to the radius. The sense matches
// the sample system: a body on the negative x axis moves towards +y.
func CircularVelocity(anchor *Body, pos dynamo.Vec2) dynamo.Vec2 {
	d := pos.Sub(anchor.Pos)
	r := d.Norm()
	if r == 0 {
		return dynamo.Vec2{}
	}
	v := math.Sqrt(G * anchor.Mass / r)
	return dynamo.Vec2{X: d.Y / r * v, Y: -d.X / r * v}
}
