package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Summary
	Finish    key.Binding // Close the day
	Export    key.Binding // Show the task summary dialog
	TimeSheet key.Binding // Show the time sheet dialog
	Note      key.Binding // Edit tomorrow's note
	Refresh   key.Binding // Reload the summary

	// Dialogs
	Format  key.Binding // Cycle the export format
	Confirm key.Binding // Confirm input or send the time sheet
	Escape  key.Binding // Close dialog / cancel input

	// Planner
	Back key.Binding // Back to the summary

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Finish: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finish day"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export summary"),
		),
		TimeSheet: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "time sheet"),
		),
		Note: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "tomorrow's note"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Format: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "format"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "back to summary"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Finish, k.Export, k.TimeSheet, k.Note, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Finish, k.Export, k.TimeSheet, k.Note, k.Refresh},
		{k.Format, k.Confirm, k.Escape},
		{k.Back, k.Help, k.Quit},
	}
}
