package viz

import (
	"math"

	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/physics"
)

// Projection maps simulation metres onto a drawing surface. Screen y grows
// downwards and is not flipped, so +y in the simulation is down on screen.
type Projection struct {
	PixelsPerMeter float64
	CenterX        float64
	CenterY        float64
}

// NewProjection centres the origin on a w×h surface.
func NewProjection(pixelsPerAU float64, w, h int) Projection {
	return Projection{
		PixelsPerMeter: pixelsPerAU / physics.AU,
		CenterX:        float64(w) / 2,
		CenterY:        float64(h) / 2,
	}
}

// FitProjection scales the system so the body farthest from the origin
// sits at 90% of the shorter half-extent of the surface.
func FitProjection(reg *physics.Registry, w, h int) Projection {
	var maxR float64
	for _, b := range reg.Bodies() {
		maxR = math.Max(maxR, b.Pos.Norm())
	}

	half := math.Min(float64(w), float64(h)) / 2
	p := Projection{CenterX: float64(w) / 2, CenterY: float64(h) / 2, PixelsPerMeter: 1}
	if maxR > 0 {
		p.PixelsPerMeter = 0.9 * half / maxR
	}
	return p
}

func (p Projection) ToScreen(v dynamo.Vec2) (x, y float64) {
	return v.X*p.PixelsPerMeter + p.CenterX, v.Y*p.PixelsPerMeter + p.CenterY
}

// PixelsPerAU is the scale shown to users.
func (p Projection) PixelsPerAU() float64 { return p.PixelsPerMeter * physics.AU }
