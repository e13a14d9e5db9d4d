package integrators

import (
	"math"

	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/physics"
)

// SemiImplicitEuler advances movers under anchor gravity. Velocity is
// updated from the current position first, then position from the new
// velocity.
//
// A step is all-or-nothing: every mover's next state is computed into
// scratch space and committed only when no separation was degenerate and
// every new position and velocity is finite.
type SemiImplicitEuler struct {
	next []pending
}

type pending struct {
	pos, vel   dynamo.Vec2
	separation float64
}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

// Force returns the pull of anchor a on b and the distance between them.
func Force(b, a *physics.Body) (dynamo.Vec2, float64, error) {
	d := a.Pos.Sub(b.Pos)
	r := d.Norm()
	if r == 0 {
		return dynamo.Vec2{}, 0, &dynamo.SeparationError{Body: b.Name, Anchor: a.Name}
	}

	f := physics.G * b.Mass * a.Mass / (r * r)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return dynamo.Vec2{}, r, &dynamo.SeparationError{Body: b.Name, Anchor: a.Name}
	}
	theta := math.Atan2(d.Y, d.X)
	return dynamo.Vec2{X: math.Cos(theta) * f, Y: math.Sin(theta) * f}, r, nil
}

// NetForce sums the pull of every anchor on b.
func NetForce(reg *physics.Registry, b *physics.Body) (dynamo.Vec2, error) {
	var net dynamo.Vec2
	for _, a := range reg.Anchors() {
		if a == b {
			continue
		}
		f, _, err := Force(b, a)
		if err != nil {
			return dynamo.Vec2{}, err
		}
		net = net.Add(f)
	}
	return net, nil
}

func (e *SemiImplicitEuler) Step(reg *physics.Registry, dt float64) error {
	movers := reg.Movers()
	primary := reg.Primary()

	if cap(e.next) < len(movers) {
		e.next = make([]pending, len(movers))
	}
	next := e.next[:len(movers)]

	for i, b := range movers {
		var net dynamo.Vec2
		sep := b.Separation

		for _, a := range reg.Anchors() {
			f, r, err := Force(b, a)
			if err != nil {
				return err
			}
			net = net.Add(f)
			if a == primary {
				sep = r
			}
		}

		vel := dynamo.Vec2{
			X: b.Vel.X + net.X/b.Mass*dt,
			Y: b.Vel.Y + net.Y/b.Mass*dt,
		}
		pos := b.Pos.Add(vel.Scale(dt))
		if !vel.IsValid() || !pos.IsValid() {
			return &dynamo.BodyError{Body: b.Name, Wrapped: dynamo.ErrNonFiniteState}
		}
		next[i] = pending{pos: pos, vel: vel, separation: sep}
	}

	for i, b := range movers {
		b.Vel = next[i].vel
		b.Pos = next[i].pos
		b.Separation = next[i].separation
		b.Trail.Append(b.Pos)
	}

	return nil
}
