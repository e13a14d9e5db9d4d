package physics

import "github.com/san-kum/planetarium/internal/dynamo"

// Kind separates bodies that move from fixed gravity sources.
type Kind uint8

const (
	Movable Kind = iota
	Anchor
)

func (k Kind) String() string {
	if k == Anchor {
		return "anchor"
	}
	return "movable"
}

// Appearance carries rendering hints. Radius is in pixels, Color is "#rrggbb".
type Appearance struct {
	Radius float64
	Color  string
}

// Body is one celestial object.
type Body struct {
	Name string
	Pos  dynamo.Vec2
	Vel  dynamo.Vec2
	Mass float64

	// Separation is the distance to the primary anchor at the last tick.
	Separation float64

	Appearance Appearance
	Trail      *Trail

	kind Kind
}

// NewAnchor creates an immovable body. Anchors attract movers but are never integrated.
//
// Constructors give every body an unbounded trail so a body outside a
// registry is still usable; NewRegistry swaps in one of the registry's
// capacity.
func NewAnchor(name string, pos dynamo.Vec2, mass float64, look Appearance) *Body {
	return &Body{
		Name:       name,
		Pos:        pos,
		Mass:       mass,
		Appearance: look,
		Trail:      NewTrail(0),
		kind:       Anchor,
	}
}

// NewPlanet creates a body that responds to anchor gravity.
func NewPlanet(name string, pos, vel dynamo.Vec2, mass float64, look Appearance) *Body {
	return &Body{
		Name:       name,
		Pos:        pos,
		Vel:        vel,
		Mass:       mass,
		Appearance: look,
		Trail:      NewTrail(0),
		kind:       Movable,
	}
}

func (b *Body) Kind() Kind     { return b.kind }
func (b *Body) IsAnchor() bool { return b.kind == Anchor }

// Speed is |Vel| in m/s.
func (b *Body) Speed() float64 { return b.Vel.Norm() }
