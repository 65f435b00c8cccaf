package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, trimmed to the colours the dashboard uses.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error = lipgloss.NewStyle().Foreground(Red)

	// Clock renders the running timer.
	Clock = lipgloss.NewStyle().Foreground(Green).Bold(true).Padding(0, 1)
)

// WorkloadColor maps a workload value to a traffic-light colour.
func WorkloadColor(value string) lipgloss.Color {
	switch value {
	case "light":
		return Green
	case "steady":
		return Sapphire
	case "busy":
		return Yellow
	case "swamped":
		return Red
	default:
		return Subtext0
	}
}
