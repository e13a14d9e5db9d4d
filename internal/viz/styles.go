package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/planetarium/internal/physics"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusReversed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff"))
)

// Status names the run state implied by the time step.
func Status(timeStep float64) string {
	switch {
	case timeStep == 0:
		return StatusPaused.Render("PAUSED")
	case timeStep < 0:
		return StatusReversed.Render("REVERSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

// TimeScaleText is the overlay line for a time scale in hours.
func TimeScaleText(hours int) string {
	return fmt.Sprintf("Time scale: %d hour(s)", hours)
}

// FormatElapsed renders simulated seconds as days and hours.
func FormatElapsed(seconds float64) string {
	hours := int(seconds / physics.HourSeconds)
	sign := ""
	if hours < 0 {
		sign, hours = "-", -hours
	}
	return fmt.Sprintf("%s%dd %02dh", sign, hours/24, hours%24)
}

// Swatch renders a body name in its own colour.
func Swatch(name, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(name)
}

// Separator draws a muted rule.
func Separator(width int) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(strings.Repeat("─", width))
}
