package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/planetarium/internal/config"
	"github.com/san-kum/planetarium/internal/integrators"
	"github.com/san-kum/planetarium/internal/metrics"
	"github.com/san-kum/planetarium/internal/physics"
	"github.com/san-kum/planetarium/internal/sim"
	"github.com/san-kum/planetarium/internal/storage"
)

// Change shifts the time step by Delta seconds once Tick ticks have run.
type Change struct {
	Tick  int `yaml:"tick"`
	Delta int `yaml:"delta"`
}

// Experiment is one headless, recorded run of a configured system.
type Experiment struct {
	cfg       *config.Config
	ticks     int
	every     int
	schedule  []Change
	simulator *sim.Simulator
	recorder  *storage.Recorder
}

// Outcome is what a finished experiment leaves behind.
type Outcome struct {
	Result   *sim.Result
	Metadata storage.RunMetadata
	Samples  []storage.Sample
}

func New(cfg *config.Config, ticks, every int) *Experiment {
	return &Experiment{cfg: cfg, ticks: ticks, every: every}
}

// WithSchedule queues time-step changes applied while the run progresses.
func (e *Experiment) WithSchedule(changes []Change) *Experiment {
	e.schedule = append(e.schedule, changes...)
	sort.SliceStable(e.schedule, func(i, j int) bool { return e.schedule[i].Tick < e.schedule[j].Tick })
	return e
}

func (e *Experiment) Setup() error {
	reg, err := e.cfg.Build()
	if err != nil {
		return err
	}

	e.simulator = sim.New(reg, integrators.NewSemiImplicitEuler())
	for _, m := range metrics.Default() {
		e.simulator.AddMetric(m)
	}

	e.recorder = storage.NewRecorder(e.every)
	e.recorder.Capture(0, 0, reg.Bodies())
	e.simulator.AddObserver(e.recorder)
	if len(e.schedule) > 0 {
		e.simulator.AddObserver(&scheduler{sim: e.simulator, changes: e.schedule})
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	result, err := e.simulator.Run(ctx, e.ticks)
	out := &Outcome{Result: result, Samples: e.recorder.Samples()}
	if result != nil {
		out.Metadata = e.metadata(result)
	}
	return out, err
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) metadata(result *sim.Result) storage.RunMetadata {
	reg := e.simulator.Registry()
	meta := storage.RunMetadata{
		System:        e.cfg.System,
		TimeStep:      e.cfg.TimeStep,
		TrailCapacity: e.cfg.TrailCapacity,
		Ticks:         result.Ticks,
		Elapsed:       result.Elapsed,
		Every:         e.recorder.Every(),
		Colors:        make(map[string]string, reg.Len()),
		Metrics:       result.Metrics,
	}
	if len(e.cfg.Bodies) > 0 {
		meta.System = "custom"
	}
	for _, b := range reg.Bodies() {
		meta.Bodies = append(meta.Bodies, b.Name)
		meta.Colors[b.Name] = b.Appearance.Color
	}
	return meta
}

// scheduler feeds queued changes into the simulator. They land at the start
// of the tick after the one that triggered them.
type scheduler struct {
	sim     *sim.Simulator
	changes []Change
	next    int
}

func (s *scheduler) OnTick(tick int, _ float64, _ []*physics.Body) {
	for s.next < len(s.changes) && s.changes[s.next].Tick <= tick {
		s.sim.AdjustTimeStep(s.changes[s.next].Delta)
		s.next++
	}
}
