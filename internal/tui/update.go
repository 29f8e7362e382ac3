package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/usecase"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgSummaryLoaded:
		m.summary = msg.Summary
		m.err = nil
		return m, nil

	case MsgPlannerLoaded:
		m.planner = msg.Tasks
		return m, nil

	case MsgDayFinished:
		m.archivedIDs = msg.ArchivedIDs
		m.noteInput.Reset()
		m.state = StateAnimating
		m.animationVisible = true
		return m, m.startTimers()

	case MsgCompleteTimer:
		return m.handleCompleteTimer(msg)

	case MsgAnimationTimer:
		if msg.ID == 0 || msg.ID != m.animationTimerID {
			return m, nil
		}
		m.animationTimerID = 0
		m.animationVisible = false
		return m, nil

	case MsgTimeSheetExported:
		m.state = StateIdle
		m.dialog = DialogNone
		m.status = fmt.Sprintf("Exported %d time sheet entries", len(msg.Rows))
		return m, nil

	case MsgStoreChanged:
		switch m.state {
		case StateIdle, StateExportShown:
			return m, m.loadSummary()
		case StateNavigating:
			return m, m.loadPlanner()
		case StateClosing, StateAnimating, StateShutdownRequested:
		}
		return m, nil

	case MsgError:
		m.err = msg.Err
		if m.state == StateClosing {
			m.state = StateIdle
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != StateClosing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.editingNote {
		var cmd tea.Cmd
		m.noteInput, cmd = m.noteInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleCompleteTimer runs the completion once the short delay elapsed:
// a desktop host is asked to shut down, otherwise the planner view is shown.
func (m *Model) handleCompleteTimer(msg MsgCompleteTimer) (tea.Model, tea.Cmd) {
	if msg.ID == 0 || msg.ID != m.completeTimerID {
		return m, nil
	}
	m.completeTimerID = 0

	if m.host.IsDesktop() {
		m.state = StateShutdownRequested
		m.cancelTimers()
		return m, tea.Quit
	}
	m.state = StateNavigating
	return m, m.loadPlanner()
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingNote {
		return m.handleNoteKey(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		m.cancelTimers()
		return m, tea.Quit
	}

	switch m.state {
	case StateIdle:
		return m.handleIdleKey(msg)
	case StateExportShown:
		return m.handleDialogKey(msg)
	case StateAnimating, StateNavigating:
		return m.handlePlannerKey(msg)
	case StateClosing, StateShutdownRequested:
	}
	return m, nil
}

func (m *Model) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Finish):
		m.err = nil
		m.status = ""
		m.cancelTimers()
		m.state = StateClosing
		return m, tea.Batch(m.spinner.Tick, m.finishDay())

	case key.Matches(msg, m.keys.Export):
		if m.summary == nil {
			return m, nil
		}
		m.state = StateExportShown
		m.dialog = DialogSummary
		return m, nil

	case key.Matches(msg, m.keys.TimeSheet):
		if m.container.TimeSheet == nil {
			m.err = domain.ErrExporterDisabled
			return m, nil
		}
		m.state = StateExportShown
		m.dialog = DialogTimeSheet
		return m, nil

	case key.Matches(msg, m.keys.Note):
		m.editingNote = true
		return m, m.noteInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadSummary()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.state = StateIdle
		m.dialog = DialogNone
		return m, nil

	case key.Matches(msg, m.keys.Format) && m.dialog == DialogSummary:
		m.format = nextFormat(m.format)
		return m, nil

	case key.Matches(msg, m.keys.Confirm) && m.dialog == DialogTimeSheet:
		return m, m.exportTimeSheet()
	}
	return m, nil
}

func (m *Model) handlePlannerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		// Leaving the planner starts a new cycle; the running timers no longer apply.
		m.cancelTimers()
		m.animationVisible = false
		m.state = StateIdle
		return m, m.loadSummary()

	case key.Matches(msg, m.keys.Refresh) && m.state == StateNavigating:
		return m, m.loadPlanner()
	}
	return m, nil
}

func (m *Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.noteInput.Reset()
		m.noteInput.Blur()
		m.editingNote = false
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.noteInput.Blur()
		m.editingNote = false
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// nextFormat returns the export format following current.
func nextFormat(current string) string {
	formats := usecase.ExportFormats()
	for i, f := range formats {
		if f == current {
			return formats[(i+1)%len(formats)]
		}
	}
	return formats[0]
}
