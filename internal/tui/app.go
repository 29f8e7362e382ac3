package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/usecase"
)

// Delays of the two timers started once the day is closed.
const (
	completeDelay  = 500 * time.Millisecond
	animationDelay = 10 * time.Second
)

// Model is the bubbletea model for the day summary.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	summary   *domain.DaySummary
	err       error

	// State (slices)
	planner     []*domain.Task
	archivedIDs []int

	// Components
	keys      KeyMap
	styles    Styles
	help      help.Model
	spinner   spinner.Model
	noteInput textinput.Model

	status string
	format string
	host   domain.HostMode

	// Numeric state (smaller types last)
	state            State
	dialog           Dialog
	width            int
	height           int
	lastTimerID      int
	completeTimerID  int // 0 = no pending timer
	animationTimerID int // 0 = no pending timer
	animationVisible bool
	editingNote      bool
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	ni := textinput.New()
	ni.Placeholder = "Note for tomorrow"
	ni.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	format := usecase.FormatText
	host := domain.HostWeb
	if c.AppConfig != nil {
		if c.AppConfig.Summary.Format != "" {
			format = c.AppConfig.Summary.Format
		}
		if c.AppConfig.Host.Mode != "" {
			host = c.AppConfig.Host.Mode
		}
	}

	return &Model{
		container: c,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		spinner:   sp,
		noteInput: ni,
		format:    format,
		host:      host,
		state:     StateIdle,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadSummary()
}

// State returns the current workflow state.
func (m *Model) State() State {
	return m.state
}

// ShutdownRequested returns true if the day was closed on a desktop host.
func (m *Model) ShutdownRequested() bool {
	return m.state == StateShutdownRequested
}

// ArchivedIDs returns the IDs archived by the last finished day.
func (m *Model) ArchivedIDs() []int {
	return m.archivedIDs
}

// loadSummary returns a command that loads the day summary.
func (m *Model) loadSummary() tea.Cmd {
	uc := m.container.DaySummaryUseCase()
	return func() tea.Msg {
		summary, err := uc.Execute(context.Background(), usecase.DaySummaryInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgSummaryLoaded{Summary: summary}
	}
}

// loadPlanner returns a command that loads the open tasks for the planner view.
func (m *Model) loadPlanner() tea.Cmd {
	uc := m.container.ListTasksUseCase()
	return func() tea.Msg {
		open := false
		out, err := uc.Execute(context.Background(), usecase.ListTasksInput{IsDone: &open})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgPlannerLoaded{Tasks: out.Tasks}
	}
}

// finishDay returns a command that archives the done tasks.
func (m *Model) finishDay() tea.Cmd {
	uc := m.container.FinishDayUseCase()
	note := m.noteInput.Value()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.FinishDayInput{TomorrowsNote: note})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgDayFinished{ArchivedIDs: out.ArchivedIDs}
	}
}

// exportTimeSheet returns a command that sends the time sheet.
func (m *Model) exportTimeSheet() tea.Cmd {
	uc := m.container.ExportTimeSheetUseCase()
	dayStart := ""
	if m.container.AppConfig != nil {
		dayStart = m.container.AppConfig.Google.DayStart
	}
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ExportTimeSheetInput{DayStart: dayStart})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTimeSheetExported{Rows: out.Rows}
	}
}

// timer returns a command delivering msg after d.
func timer(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

func (m *Model) newTimerID() int {
	m.lastTimerID++
	return m.lastTimerID
}

// startTimers starts the completion and animation timers of a closed day.
func (m *Model) startTimers() tea.Cmd {
	m.completeTimerID = m.newTimerID()
	m.animationTimerID = m.newTimerID()
	return tea.Batch(
		timer(completeDelay, MsgCompleteTimer{ID: m.completeTimerID}),
		timer(animationDelay, MsgAnimationTimer{ID: m.animationTimerID}),
	)
}

// cancelTimers drops the pending timers. Their messages are ignored on arrival.
func (m *Model) cancelTimers() {
	m.completeTimerID = 0
	m.animationTimerID = 0
}
