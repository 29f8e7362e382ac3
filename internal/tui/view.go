package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/usecase"
)

const maxTitleWidth = 60

// View renders the TUI.
func (m *Model) View() string {
	var content string
	switch m.state {
	case StateExportShown:
		content = m.viewDialog()
	case StateAnimating, StateNavigating, StateShutdownRequested:
		content = m.viewPlanner()
	case StateIdle, StateClosing:
		content = m.viewSummary()
	}
	return m.styles.App.Render(content)
}

// viewSummary renders the day summary.
func (m *Model) viewSummary() string {
	if m.summary == nil {
		if m.err != nil {
			return m.styles.ErrorMsg.Render("Error: " + m.err.Error())
		}
		return "Loading..."
	}
	s := m.summary
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Day summary") + " ")
	b.WriteString(m.styles.HeaderDate.Render(s.Date.Format("Monday, 2 Jan 2006")) + "\n")

	if s.TomorrowsNote != "" {
		b.WriteString(m.styles.Note.Render("Note: "+s.TomorrowsNote) + "\n")
	}

	b.WriteString(m.styles.Section.Render(fmt.Sprintf("Tasks (%d done / %d)", len(s.DoneTasks), len(s.TodaysTasks))) + "\n")
	if len(s.TodaysTasks) == 0 {
		b.WriteString(m.styles.TaskTime.Render("  No tasks") + "\n")
	}
	for _, t := range s.TodaysTasks {
		b.WriteString(m.renderTask(t, s.Day) + "\n")
	}

	if len(s.CommitLog) > 0 {
		b.WriteString(m.styles.Section.Render("Commits") + "\n")
		for _, line := range s.CommitLog {
			b.WriteString(m.styles.Commit.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Totals.Render(fmt.Sprintf("Worked today: %s   Total on these tasks: %s",
		usecase.FormatDuration(s.WorkingToday), usecase.FormatDuration(s.TotalTimeSpent))) + "\n")

	if m.editingNote || m.noteInput.Value() != "" {
		b.WriteString(m.styles.Section.Render("Tomorrow") + "\n")
		b.WriteString("  " + m.noteInput.View() + "\n")
	}

	if m.state == StateClosing {
		b.WriteString("\n" + m.spinner.View() + " Archiving done tasks...\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.Status.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTask renders a single summary line.
func (m *Model) renderTask(t *domain.Task, day string) string {
	check := m.styles.TaskOpen.Render("[ ]")
	if t.IsDone {
		check = m.styles.TaskDone.Render("[x]")
	}
	line := fmt.Sprintf("  %s #%d %s", check, t.ID, domain.Truncate(t.Title, maxTitleWidth))
	if t.IssueWasUpdated {
		line += " " + m.styles.Issue.Render("(updated)")
	}
	spent := fmt.Sprintf("  %s / %s",
		usecase.FormatDuration(t.TimeSpentOn(day)), usecase.FormatDuration(t.TotalTimeSpent()))
	return line + m.styles.TaskTime.Render(spent)
}

// viewDialog renders the open export dialog.
func (m *Model) viewDialog() string {
	var title, body, hint string
	switch m.dialog {
	case DialogSummary:
		title = "Task summary (" + m.format + ")"
		body = m.renderExport()
		hint = "tab format · esc close"
	case DialogTimeSheet:
		title = "Time sheet"
		body = m.renderTimeSheet()
		hint = "enter send · esc close"
	case DialogNone:
	}

	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render(title) + "\n\n")
	b.WriteString(strings.TrimRight(body, "\n") + "\n\n")
	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString(m.styles.DialogHint.Render(hint))
	return m.styles.Dialog.Render(b.String())
}

// renderExport renders the summary in the selected format.
func (m *Model) renderExport() string {
	var buf bytes.Buffer
	err := usecase.NewExportSummary(&buf).Execute(context.Background(), usecase.ExportSummaryInput{
		Summary:    m.summary,
		Format:     m.format,
		WithTotals: true,
	})
	if err != nil {
		return m.styles.ErrorMsg.Render(err.Error())
	}
	return buf.String()
}

// renderTimeSheet lists the entries the time sheet export will create.
func (m *Model) renderTimeSheet() string {
	if m.summary == nil {
		return ""
	}
	var lines []string
	for _, t := range m.summary.TodaysTasks {
		d := t.TimeSpentOn(m.summary.Day)
		if d <= 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%8s  %s", usecase.FormatDuration(d), domain.Truncate(t.Title, maxTitleWidth)))
	}
	if len(lines) == 0 {
		return m.styles.DialogHint.Render("No time tracked today")
	}
	return strings.Join(lines, "\n")
}

// viewPlanner renders the view shown after the day was closed.
func (m *Model) viewPlanner() string {
	var b strings.Builder

	if m.animationVisible {
		banner := fmt.Sprintf("Day finished! %d task(s) archived", len(m.archivedIDs))
		b.WriteString(m.styles.Banner.Render(banner) + "\n")
	}
	if m.state == StateShutdownRequested {
		b.WriteString(m.styles.Status.Render("Shutting down...") + "\n")
		return b.String()
	}

	b.WriteString(m.styles.Header.Render("Planner") + "\n")
	if m.state == StateAnimating {
		b.WriteString(m.styles.TaskTime.Render("  ...") + "\n")
	}
	for _, t := range m.planner {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			"  ", m.styles.TaskOpen.Render(fmt.Sprintf("#%d", t.ID)), " ", domain.Truncate(t.Title, maxTitleWidth)) + "\n")
	}
	if m.state == StateNavigating && len(m.planner) == 0 {
		b.WriteString(m.styles.TaskTime.Render("  Nothing planned") + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString(m.styles.Help.Render("b back to summary · q quit"))
	return b.String()
}
