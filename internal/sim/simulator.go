package sim

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/physics"
)

// Simulator drives a registry tick by tick. Time-scale changes requested
// through AdjustTimeStep are queued and land at the start of the next
// tick, so a step never sees the time step change under it.
type Simulator struct {
	reg        *physics.Registry
	integrator Integrator
	metrics    []Metric
	observers  []Observer

	mu      sync.Mutex
	pending int

	ticks   int
	elapsed float64
}

func New(reg *physics.Registry, integrator Integrator) *Simulator {
	return &Simulator{
		reg:        reg,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Registry() *physics.Registry { return s.reg }

// AdjustTimeStep queues a shift of the shared time step by delta seconds.
// It may be called from any goroutine.
func (s *Simulator) AdjustTimeStep(delta int) {
	s.mu.Lock()
	s.pending += delta
	s.mu.Unlock()
}

func (s *Simulator) takePending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	delta := s.pending
	s.pending = 0
	return delta
}

// requeue returns a delta taken by a failed tick, ahead of anything queued
// since.
func (s *Simulator) requeue(delta int) {
	s.mu.Lock()
	s.pending += delta
	s.mu.Unlock()
}

// Tick advances the simulation by one step, first folding in any queued
// time-step delta. A failed step leaves the registry, the time step, the
// tick counter and the elapsed time untouched; its delta stays queued.
func (s *Simulator) Tick() error {
	delta := s.takePending()

	dt := s.reg.TimeStep() + float64(delta)
	if err := s.integrator.Step(s.reg, dt); err != nil {
		s.requeue(delta)
		log.Printf("tick %d failed: %v", s.ticks, err)
		return &dynamo.SimulationError{Tick: s.ticks, Elapsed: s.elapsed, Wrapped: err}
	}

	if delta != 0 {
		s.reg.SetGlobalTimeStep(delta)
		log.Printf("time step now %.0fs (%d hour(s))", s.reg.TimeStep(), s.Hours())
	}

	s.ticks++
	s.elapsed += dt

	bodies := s.reg.Bodies()
	for _, m := range s.metrics {
		m.Observe(bodies, s.elapsed)
	}
	for _, obs := range s.observers {
		obs.OnTick(s.ticks, s.elapsed, bodies)
	}
	return nil
}

// Run performs a headless run of the given number of ticks. Cancellation
// is honoured between ticks.
func (s *Simulator) Run(ctx context.Context, ticks int) (*Result, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("%w: ticks must be positive, got %d", dynamo.ErrInvalidConfig, ticks)
	}

	result := &Result{Metrics: make(map[string]float64)}

	s.ResetMetrics()
	start := s.ticks

	log.Printf("run started: %d ticks at %.0fs", ticks, s.reg.TimeStep())
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			s.collect(result, start)
			return result, ctx.Err()
		default:
		}

		if err := s.Tick(); err != nil {
			s.collect(result, start)
			return result, err
		}
	}
	s.collect(result, start)
	log.Printf("run finished after %d ticks, %.0fs simulated", result.Ticks, s.elapsed)

	return result, nil
}

// ResetMetrics clears every metric and seeds it with the current state.
func (s *Simulator) ResetMetrics() {
	bodies := s.reg.Bodies()
	for _, m := range s.metrics {
		m.Reset()
		m.Observe(bodies, s.elapsed)
	}
}

func (s *Simulator) collect(result *Result, start int) {
	result.Ticks = s.ticks - start
	result.Elapsed = s.elapsed
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// RunWithCallback ticks until fn returns false, ctx is done, or the tick
// budget is spent. A budget of 0 runs until stopped.
func (s *Simulator) RunWithCallback(ctx context.Context, ticks int, fn func(*physics.Registry) bool) error {
	for i := 0; ticks <= 0 || i < ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.Tick(); err != nil {
			return err
		}
		if !fn(s.reg) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) Ticks() int { return s.ticks }

// Elapsed is the simulated time in seconds.
func (s *Simulator) Elapsed() float64 { return s.elapsed }

func (s *Simulator) TimeStep() float64 { return s.reg.TimeStep() }

// Hours is the time scale shown to users: simulated hours per tick.
func (s *Simulator) Hours() int {
	return int(math.Round(s.reg.TimeStep() / physics.HourSeconds))
}

// Paused reports a zero time step. Ticks still run but nothing moves.
func (s *Simulator) Paused() bool { return s.reg.TimeStep() == 0 }
