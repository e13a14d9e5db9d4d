package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/planetarium/internal/physics"
	"github.com/san-kum/planetarium/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Options configure the live terminal view.
type Options struct {
	FPS           int
	StepIncrement int
	// Width and Height are the canvas size in terminal cells.
	Width, Height int
}

// Model is the Bubble Tea program that drives a simulator one tick per frame.
type Model struct {
	sim       *sim.Simulator
	proj      Projection
	canvas    *Canvas
	fps       int
	increment int
	focus     int
	history   []float64
	showHelp  bool
	err       error
}

func NewModel(s *sim.Simulator, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = width
	}
	if opts.Height <= 0 {
		opts.Height = height
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.StepIncrement == 0 {
		opts.StepIncrement = physics.HourSeconds
	}

	canvas := NewCanvas(opts.Width, opts.Height)
	return Model{
		sim:       s,
		proj:      FitProjection(s.Registry(), canvas.SubWidth(), canvas.SubHeight()),
		canvas:    canvas,
		fps:       opts.FPS,
		increment: opts.StepIncrement,
		history:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Err is the tick failure that stopped the program, if any.
func (m Model) Err() error { return m.err }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.sim.AdjustTimeStep(-m.increment)
		case "right", "l":
			m.sim.AdjustTimeStep(m.increment)
		case "tab":
			m.cycleFocus()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if err := m.sim.Tick(); err != nil {
			log.Printf("live view stopped: %v", err)
			m.err = err
			return m, tea.Quit
		}
		m.record()
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) focused() *physics.Body {
	movers := m.sim.Registry().Movers()
	if len(movers) == 0 {
		return nil
	}
	return movers[m.focus%len(movers)]
}

func (m *Model) cycleFocus() {
	if n := len(m.sim.Registry().Movers()); n > 0 {
		m.focus = (m.focus + 1) % n
	}
	m.history = m.history[:0]
}

func (m *Model) record() {
	b := m.focused()
	if b == nil {
		return
	}
	m.history = append(m.history, b.Separation/physics.AU)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

// draw paints trails first and bodies on top, in registry order.
func (m *Model) draw() {
	m.canvas.Clear()
	frame := BuildFrame(m.sim.Registry(), m.proj)

	for _, s := range frame {
		for i := 1; i < len(s.Trail); i++ {
			p, q := s.Trail[i-1], s.Trail[i]
			m.canvas.Line(int(p[0]), int(p[1]), int(q[0]), int(q[1]), s.TrailColor)
		}
	}
	for _, s := range frame {
		m.canvas.Disc(int(s.X), int(s.Y), dotRadius(s.Radius), s.Color)
	}
}

// dotRadius shrinks window radii to Braille sub-pixels.
func dotRadius(r float64) int {
	return int(math.Round(r / 10))
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("PLANETARIUM") + "\n")
	s.WriteString(Status(m.sim.TimeStep()) + "\n\n")
	s.WriteString(valueStyle.Render(TimeScaleText(m.sim.Hours())) + "\n")
	s.WriteString(labelStyle.Render("Elapsed") + valueStyle.Render(FormatElapsed(m.sim.Elapsed())) + "\n")
	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Ticks())) + "\n\n")

	focus := m.focused()
	for _, b := range m.sim.Registry().Movers() {
		line := fmt.Sprintf("%-10s %7.3f AU  %6.2f km/s", b.Name, b.Separation/physics.AU, b.Speed()/1000)
		if b == focus {
			s.WriteString(focusStyle.Render("> "+line) + "\n")
			continue
		}
		s.WriteString("  " + Swatch(line, b.Appearance.Color) + "\n")
	}

	if len(m.history) > 1 && focus != nil {
		chart := asciigraph.Plot(m.history, asciigraph.Height(5), asciigraph.Width(30),
			asciigraph.Caption(focus.Name+" distance (AU)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render(Separator(21) + "\n←/→:Time scale  Tab:Focus\n?:Help  Q:Quit"))

	canvasView := canvasStyle.Render(m.canvas.Render())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Left/H   - Slow down (one step)     ║
║  Right/L  - Speed up (one step)      ║
║  Tab      - Cycle focused planet     ║
║  Q/Esc    - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive runs the terminal view until the user quits or a tick fails.
func RunLive(s *sim.Simulator, opts Options) error {
	final, err := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
