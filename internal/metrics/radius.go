package metrics

import (
	"math"

	"github.com/san-kum/planetarium/internal/physics"
)

// RadiusDrift tracks how far each mover strays from its initial distance
// to the primary anchor, as the largest relative deviation over all movers.
type RadiusDrift struct {
	name     string
	initial  map[string]float64
	maxDrift float64
}

func NewRadiusDrift() *RadiusDrift {
	return &RadiusDrift{
		name:    "radius_drift",
		initial: make(map[string]float64),
	}
}

func (r *RadiusDrift) Name() string { return r.name }

func (r *RadiusDrift) Observe(bodies []*physics.Body, t float64) {
	primary := primaryAnchor(bodies)
	if primary == nil {
		return
	}

	for _, b := range bodies {
		if b.IsAnchor() {
			continue
		}
		dist := b.Pos.Sub(primary.Pos).Norm()
		r0, seen := r.initial[b.Name]
		if !seen {
			r.initial[b.Name] = dist
			continue
		}
		if r0 > 0 {
			r.maxDrift = math.Max(r.maxDrift, math.Abs(dist-r0)/r0)
		}
	}
}

func (r *RadiusDrift) Value() float64 { return r.maxDrift }

func (r *RadiusDrift) Reset() {
	r.initial = make(map[string]float64)
	r.maxDrift = 0
}

func primaryAnchor(bodies []*physics.Body) *physics.Body {
	for _, b := range bodies {
		if b.IsAnchor() {
			return b
		}
	}
	return nil
}
