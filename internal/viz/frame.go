package viz

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/planetarium/internal/physics"
)

// minTrailPoints is the trail length below which no orbit line is drawn.
const minTrailPoints = 3

// Sprite is everything a renderer needs to draw one body.
type Sprite struct {
	Name       string
	X, Y       float64
	Radius     float64
	Color      string
	TrailColor string
	Trail      [][2]float64
}

// BuildFrame projects every body in registry order. Later sprites are
// drawn on top of earlier ones.
func BuildFrame(reg *physics.Registry, proj Projection) []Sprite {
	bodies := reg.Bodies()
	sprites := make([]Sprite, 0, len(bodies))

	for _, b := range bodies {
		x, y := proj.ToScreen(b.Pos)
		s := Sprite{
			Name:       b.Name,
			X:          x,
			Y:          y,
			Radius:     b.Appearance.Radius,
			Color:      b.Appearance.Color,
			TrailColor: Dim(b.Appearance.Color, 3),
		}

		if n := b.Trail.Len(); n >= minTrailPoints {
			s.Trail = make([][2]float64, n)
			for i := 0; i < n; i++ {
				tx, ty := proj.ToScreen(b.Trail.At(i))
				s.Trail[i] = [2]float64{tx, ty}
			}
		}
		sprites = append(sprites, s)
	}
	return sprites
}

// Dim divides each channel of a "#rrggbb" colour by factor. Unparseable
// colours come back dimmed from white.
func Dim(hex string, factor float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	return colorful.Color{R: c.R / factor, G: c.G / factor, B: c.B / factor}.Clamped().Hex()
}

// RGBA parses a "#rrggbb" colour into 8-bit channels, falling back to white.
func RGBA(hex string) (r, g, b, a uint8) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 255, 255, 255, 255
	}
	r, g, b = c.RGB255()
	return r, g, b, 255
}
