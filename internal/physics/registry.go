package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/planetarium/internal/dynamo"
)

// Registry owns the bodies of one simulation and the time step they share.
//
// Bodies keep construction order; renderers draw in that order so later
// bodies land on top. The anchor and mover partitions are resolved once
// here so the integrator never re-tests body kinds.
//
// A Registry is not safe for concurrent use. Time-step changes coming from
// input collaborators go through sim.Simulator, which applies them between
// ticks.
type Registry struct {
	bodies   []*Body
	anchors  []*Body
	movers   []*Body
	byName   map[string]*Body
	timeStep float64
}

// NewRegistry validates the bodies and gives each a trail of the given
// capacity (0 keeps the full history).
func NewRegistry(timeStep float64, trailCapacity int, bodies ...*Body) (*Registry, error) {
	r := &Registry{
		bodies:   make([]*Body, 0, len(bodies)),
		byName:   make(map[string]*Body, len(bodies)),
		timeStep: timeStep,
	}

	for _, b := range bodies {
		if !(b.Mass > 0) || math.IsInf(b.Mass, 1) {
			return nil, &dynamo.BodyError{Body: b.Name, Wrapped: dynamo.ErrNonPositiveMass}
		}
		if _, dup := r.byName[b.Name]; dup {
			return nil, &dynamo.BodyError{Body: b.Name, Wrapped: dynamo.ErrDuplicateBody}
		}

		b.Trail = NewTrail(trailCapacity)
		r.bodies = append(r.bodies, b)
		r.byName[b.Name] = b
		if b.IsAnchor() {
			r.anchors = append(r.anchors, b)
		} else {
			r.movers = append(r.movers, b)
		}
	}

	return r, nil
}

// Bodies returns every body in construction order.
func (r *Registry) Bodies() []*Body { return r.bodies }

func (r *Registry) Anchors() []*Body { return r.anchors }
func (r *Registry) Movers() []*Body  { return r.movers }
func (r *Registry) Len() int         { return len(r.bodies) }

func (r *Registry) Body(name string) (*Body, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// MustBody is Body for callers that already validated the name.
func (r *Registry) MustBody(name string) *Body {
	b, ok := r.byName[name]
	if !ok {
		panic(fmt.Sprintf("%v: %s", dynamo.ErrUnknownBody, name))
	}
	return b
}

// Primary is the first anchor, or nil when the system has none.
func (r *Registry) Primary() *Body {
	if len(r.anchors) == 0 {
		return nil
	}
	return r.anchors[0]
}

func (r *Registry) TimeStep() float64 { return r.timeStep }

// SetGlobalTimeStep shifts the shared step by delta seconds. Zero and
// negative steps are legal: they freeze or reverse the simulation.
func (r *Registry) SetGlobalTimeStep(delta int) {
	r.timeStep += float64(delta)
}

func (r *Registry) SetTimeStep(seconds float64) {
	r.timeStep = seconds
}
