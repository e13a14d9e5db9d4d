package metrics

import (
	"math"

	"github.com/san-kum/planetarium/internal/physics"
	"github.com/san-kum/planetarium/internal/sim"
)

// AngularMomentum sums m (r × v) of the movers about the primary anchor.
func AngularMomentum(bodies []*physics.Body) float64 {
	primary := primaryAnchor(bodies)
	if primary == nil {
		return 0
	}

	L := 0.0
	for _, b := range bodies {
		if b.IsAnchor() {
			continue
		}
		L += b.Mass * b.Pos.Sub(primary.Pos).Cross(b.Vel)
	}
	return L
}

type AngularMomentumDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{name: "momentum_drift"}
}

func (a *AngularMomentumDrift) Name() string { return a.name }

func (a *AngularMomentumDrift) Observe(bodies []*physics.Body, t float64) {
	L := AngularMomentum(bodies)
	if a.samples == 0 {
		a.initial = L
	}
	a.samples++

	if a.initial != 0 {
		a.maxDrift = math.Max(a.maxDrift, math.Abs(L-a.initial)/math.Abs(a.initial))
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.initial = 0
	a.maxDrift = 0
	a.samples = 0
}

// Default returns the metrics attached to every run.
func Default() []sim.Metric {
	return []sim.Metric{NewEnergyDrift(), NewRadiusDrift(), NewAngularMomentumDrift()}
}
