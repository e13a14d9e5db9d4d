package metrics

import (
	"math"

	"github.com/san-kum/planetarium/internal/physics"
)

// TotalEnergy is the kinetic energy of the movers plus their potential
// energy in the anchor field. Anchors carry no kinetic energy and their
// mutual potential is constant, so both are left out.
func TotalEnergy(bodies []*physics.Body) float64 {
	ke, pe := 0.0, 0.0
	for _, b := range bodies {
		if b.IsAnchor() {
			continue
		}
		ke += 0.5 * b.Mass * (b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y)

		for _, a := range bodies {
			if !a.IsAnchor() {
				continue
			}
			r := a.Pos.Sub(b.Pos).Norm()
			if r > 0 {
				pe -= physics.G * b.Mass * a.Mass / r
			}
		}
	}
	return ke + pe
}

// EnergyDrift is the largest relative deviation of total energy from the
// first observation.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []*physics.Body, t float64) {
	energy := TotalEnergy(bodies)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
