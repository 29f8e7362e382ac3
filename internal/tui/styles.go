package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Title     lipgloss.Color
	Done      lipgloss.Color
	Open      lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow
	Title:     lipgloss.Color("#DFE6E9"), // Light gray
	Done:      lipgloss.Color("#00B894"), // Green
	Open:      lipgloss.Color("#74B9FF"), // Light blue
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	HeaderDate lipgloss.Style
	Section    lipgloss.Style
	TaskDone   lipgloss.Style
	TaskOpen   lipgloss.Style
	TaskTime   lipgloss.Style
	Issue      lipgloss.Style
	Commit     lipgloss.Style
	Totals     lipgloss.Style
	Note       lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	DialogHint  lipgloss.Style

	// Success banner
	Banner lipgloss.Style

	Status   lipgloss.Style
	ErrorMsg lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		HeaderDate: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Title).
			MarginTop(1),

		TaskDone: lipgloss.NewStyle().
			Foreground(Colors.Done),

		TaskOpen: lipgloss.NewStyle().
			Foreground(Colors.Open),

		TaskTime: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Issue: lipgloss.NewStyle().
			Foreground(Colors.Warning),

		Commit: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Totals: lipgloss.NewStyle().
			Bold(true),

		Note: lipgloss.NewStyle().
			Italic(true).
			Foreground(Colors.Secondary),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(1, 2),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogHint: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Success).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Colors.Success).
			Padding(0, 2),

		Status: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error),

		Help: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),
	}
}
