package tui

import "github.com/charmbracelet/lipgloss"

// Styles bundles the lipgloss styles for one theme. The palette
// switch mirrors the app's dark/light toggle.
type Styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Pending  lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Help     lipgloss.Style
	Flash    lipgloss.Style
	Overdue  lipgloss.Style

	PrioHigh   lipgloss.Style
	PrioMedium lipgloss.Style
	PrioLow    lipgloss.Style

	Border lipgloss.Style

	BoxChecked   string
	BoxUnchecked string
}

func NewStyles(theme string) Styles {
	s := Styles{
		Title:        lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:         lipgloss.NewStyle().Faint(true),
		Flash:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Overdue:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		PrioHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		PrioMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		PrioLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		BoxChecked:   "☑",
		BoxUnchecked: "☐",
	}
	switch theme {
	case "light":
		s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		s.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("27"))
		s.Border = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Padding(0, 1)
	default: // dark
		s.Muted = lipgloss.NewStyle().Faint(true)
		s.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		s.Border = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	}
	return s
}
