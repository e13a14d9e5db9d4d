package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/integrators"
	"github.com/san-kum/planetarium/internal/physics"
	"github.com/san-kum/planetarium/internal/sim"
)

func newLiveModel(t *testing.T, bodies ...*physics.Body) (Model, *sim.Simulator) {
	t.Helper()
	if len(bodies) == 0 {
		bodies = physics.InnerSolarSystem()
	}
	reg, err := physics.NewRegistry(physics.HourSeconds, 0, bodies...)
	if err != nil {
		t.Fatal(err)
	}
	s := sim.New(reg, integrators.NewSemiImplicitEuler())
	return NewModel(s, Options{FPS: 60, StepIncrement: physics.HourSeconds}), s
}

func press(m Model, key tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: key})
	return next.(Model)
}

func TestLiveTimeScaleKeys(t *testing.T) {
	m, s := newLiveModel(t)

	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyLeft)
	if s.TimeStep() != physics.HourSeconds {
		t.Errorf("keys must not touch the step before the next tick, got %v", s.TimeStep())
	}

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next frame")
	}
	if s.TimeStep() != 2*physics.HourSeconds || s.Hours() != 2 {
		t.Errorf("expected 2 hour step, got %v", s.TimeStep())
	}
	if !strings.Contains(m.View(), "Time scale: 2 hour(s)") {
		t.Error("view should show the time scale")
	}
}

func TestLiveFocusAndHistory(t *testing.T) {
	m, _ := newLiveModel(t)

	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	if len(m.history) != 3 {
		t.Fatalf("expected 3 history points, got %d", len(m.history))
	}
	if m.focused().Name != "earth" {
		t.Errorf("expected earth focused first, got %s", m.focused().Name)
	}

	m = press(m, tea.KeyTab)
	if m.focused().Name != "mars" || len(m.history) != 0 {
		t.Errorf("tab should move focus and reset history, got %s/%d", m.focused().Name, len(m.history))
	}
}

func TestLiveQuit(t *testing.T) {
	m, _ := newLiveModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message")
	}
}

func TestLiveStopsOnDegenerateTick(t *testing.T) {
	sun := physics.NewAnchor("sun", dynamo.Vec2{}, physics.SunMass, physics.Appearance{})
	probe := physics.NewPlanet("probe", dynamo.Vec2{}, dynamo.Vec2{}, 1, physics.Appearance{})
	m, s := newLiveModel(t, sun, probe)

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if !errors.Is(m.Err(), dynamo.ErrDegenerateSeparation) {
		t.Errorf("expected degenerate separation, got %v", m.Err())
	}
	if cmd == nil {
		t.Fatal("failed tick should quit")
	}
	if s.Ticks() != 0 {
		t.Errorf("failed tick must not count, got %d", s.Ticks())
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		step float64
		want string
	}{
		{3600, "RUNNING"},
		{0, "PAUSED"},
		{-3600, "REVERSED"},
	}
	for _, tt := range tests {
		if got := Status(tt.step); !strings.Contains(got, tt.want) {
			t.Errorf("Status(%v): expected %s, got %q", tt.step, tt.want, got)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := FormatElapsed(26 * 3600); got != "1d 02h" {
		t.Errorf("expected 1d 02h, got %s", got)
	}
	if got := FormatElapsed(-3 * 3600); got != "-0d 03h" {
		t.Errorf("expected -0d 03h, got %s", got)
	}
}
