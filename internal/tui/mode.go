// Package tui provides the day summary terminal user interface.
package tui

// State represents the current state of the day-close workflow.
type State int

const (
	StateIdle              State = iota // Summary shown, waiting for input
	StateExportShown                    // Export dialog open
	StateClosing                        // Archiving done tasks
	StateAnimating                      // Day closed, success animation running
	StateNavigating                     // Planner view shown after the day was closed
	StateShutdownRequested              // Desktop host was asked to shut down
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExportShown:
		return "export_shown"
	case StateClosing:
		return "closing"
	case StateAnimating:
		return "animating"
	case StateNavigating:
		return "navigating"
	case StateShutdownRequested:
		return "shutdown_requested"
	default:
		return "unknown"
	}
}

// Dialog identifies the open export dialog.
type Dialog int

const (
	DialogNone      Dialog = iota
	DialogSummary          // Simple task summary
	DialogTimeSheet        // Time sheet export
)
