package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/planetarium/internal/config"
	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/experiment"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. Zero fields inherit from
// the base config.
type ScenarioStep struct {
	System        string              `yaml:"system"`
	Ticks         int                 `yaml:"ticks"`
	Every         int                 `yaml:"every"`
	TimeStep      float64             `yaml:"time_step"`
	TrailCapacity int                 `yaml:"trail_capacity"`
	AutoOrbit     bool                `yaml:"auto_orbit"`
	Schedule      []experiment.Change `yaml:"schedule"`
	SaveAs        string              `yaml:"save_as"`
}

type StepResult struct {
	Step    ScenarioStep
	Outcome *experiment.Outcome
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", dynamo.ErrInvalidConfig, scenario.Name)
	}
	return &scenario, nil
}

func (st ScenarioStep) apply(base *config.Config) *config.Config {
	cfg := *base
	if st.System != "" {
		cfg.System = st.System
		cfg.Bodies = nil
	}
	if st.TimeStep != 0 {
		cfg.TimeStep = st.TimeStep
	}
	if st.TrailCapacity != 0 {
		cfg.TrailCapacity = st.TrailCapacity
	}
	if st.AutoOrbit {
		cfg.AutoOrbit = true
	}
	return &cfg
}

// RunScenario executes all steps in a scenario, reporting progress to out.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg := step.apply(base)
		fmt.Fprintf(out, "Running step %d/%d: %s for %d ticks\n", i+1, len(scenario.Steps), cfg.System, step.Ticks)

		exp := experiment.New(cfg, step.Ticks, step.Every).WithSchedule(step.Schedule)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		outcome, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Outcome: outcome})
	}

	return results, nil
}

// TimeStepSweep reruns one system over a range of time steps, every run
// covering the same simulated span.
type TimeStepSweep struct {
	From, To float64
	NumSteps int
	Span     float64 // seconds
}

// SweepResult holds results from a time-step sweep
type SweepResult struct {
	TimeStep float64
	Ticks    int
	Metrics  map[string]float64
}

// RunSweep executes a time-step sweep
func RunSweep(ctx context.Context, sweep *TimeStepSweep, base *config.Config, out io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 2 || sweep.From <= 0 || sweep.To <= 0 || sweep.Span <= 0 {
		return nil, fmt.Errorf("%w: sweep needs two or more positive time steps and a positive span", dynamo.ErrInvalidConfig)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	stepSize := (sweep.To - sweep.From) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		cfg := *base
		cfg.TimeStep = sweep.From + float64(i)*stepSize
		ticks := int(math.Max(1, math.Round(sweep.Span/cfg.TimeStep)))

		exp := experiment.New(&cfg, ticks, ticks)
		if err := exp.Setup(); err != nil {
			return nil, err
		}
		outcome, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			TimeStep: cfg.TimeStep,
			Ticks:    ticks,
			Metrics:  outcome.Result.Metrics,
		})
		fmt.Fprintf(out, "Sweep %d/%d: time_step=%.0fs\n", i+1, sweep.NumSteps, cfg.TimeStep)
	}

	return results, nil
}
