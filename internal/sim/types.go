package sim

import "github.com/san-kum/planetarium/internal/physics"

// Integrator advances every mover in reg by one tick of dt seconds.
type Integrator interface {
	Step(reg *physics.Registry, dt float64) error
}

type Metric interface {
	Name() string
	Observe(bodies []*physics.Body, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(tick int, t float64, bodies []*physics.Body)
}

type Result struct {
	Ticks   int
	Elapsed float64
	Metrics map[string]float64
}
