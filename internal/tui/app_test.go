package tui

import (
	"log/slog"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 14, 18, 0, 0, 0, time.Local)

type fixture struct {
	repo    *testutil.MockTaskRepository
	archive *testutil.MockTaskArchive
	c       *app.Container
	m       *Model
}

func newFixture(t *testing.T, host domain.HostMode) *fixture {
	t.Helper()
	repo := testutil.NewMockTaskRepository()
	day := domain.TodayStr(testNow)
	done := &domain.Task{ID: 1, Title: "Write report", IsDone: true}
	done.AddTimeSpent(day, time.Hour)
	open := &domain.Task{ID: 2, Title: "Plan sprint"}
	open.AddTimeSpent(day, 30*time.Minute)
	repo.Tasks[1] = done
	repo.Tasks[2] = open

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	c := app.NewWithDeps(app.Config{}, repo, &testutil.MockStoreInitializer{}, &testutil.MockClock{NowTime: testNow}, logger)
	archive := &testutil.MockTaskArchive{}
	c.Archive = archive
	c.AppConfig.Host.Mode = host

	m := New(c)
	msg := m.Init()()
	_, _ = m.Update(msg)
	require.NotNil(t, m.summary)

	return &fixture{repo: repo, archive: archive, c: c, m: m}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// findMsg runs the commands of a batch that deliver immediately and returns
// the first message of type T. Timer commands are never passed here.
func findMsg[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	require.NotNil(t, cmd)
	var zero T
	msg := cmd()
	if found, ok := msg.(T); ok {
		return found
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if found, ok := c().(T); ok {
				return found
			}
		}
	}
	t.Fatalf("no %T message in command output", zero)
	return zero
}

// finish presses the finish key and feeds the archive result back.
func (f *fixture) finish(t *testing.T) {
	t.Helper()
	_, cmd := f.m.Update(runeKey('f'))
	assert.Equal(t, StateClosing, f.m.State())
	finished := findMsg[MsgDayFinished](t, cmd)
	_, cmd = f.m.Update(finished)
	assert.NotNil(t, cmd, "timers must be started")
}

func TestModel_Init_LoadsSummary(t *testing.T) {
	f := newFixture(t, domain.HostWeb)

	assert.Equal(t, StateIdle, f.m.State())
	assert.Len(t, f.m.summary.TodaysTasks, 2)
	assert.Len(t, f.m.summary.DoneTasks, 1)
	assert.Equal(t, 90*time.Minute, f.m.summary.WorkingToday)
	assert.Contains(t, f.m.View(), "Write report")
}

func TestUpdate_FinishDay_WebHostNavigates(t *testing.T) {
	f := newFixture(t, domain.HostWeb)

	f.finish(t)

	assert.Equal(t, StateAnimating, f.m.State())
	assert.True(t, f.m.animationVisible)
	assert.Equal(t, []int{1}, f.m.ArchivedIDs())
	require.Len(t, f.archive.Archived, 1)
	assert.Equal(t, 1, f.archive.Archived[0].Task.ID)
	assert.NotContains(t, f.repo.Tasks, 1)
	assert.Contains(t, f.m.View(), "Day finished! 1 task(s) archived")

	// Short timer completes: planner view, animation still visible
	_, cmd := f.m.Update(MsgCompleteTimer{ID: f.m.completeTimerID})
	assert.Equal(t, StateNavigating, f.m.State())
	assert.True(t, f.m.animationVisible)
	planner := findMsg[MsgPlannerLoaded](t, cmd)
	_, _ = f.m.Update(planner)
	require.Len(t, f.m.planner, 1)
	assert.Equal(t, 2, f.m.planner[0].ID)

	// Long timer clears the animation
	_, _ = f.m.Update(MsgAnimationTimer{ID: f.m.animationTimerID})
	assert.False(t, f.m.animationVisible)
	assert.Equal(t, StateNavigating, f.m.State())
	assert.False(t, f.m.ShutdownRequested())
}

func TestUpdate_FinishDay_AnimationTimerRunsBeforeCompletion(t *testing.T) {
	f := newFixture(t, domain.HostWeb)
	f.finish(t)

	_, _ = f.m.Update(MsgAnimationTimer{ID: f.m.animationTimerID})
	assert.False(t, f.m.animationVisible)

	_, _ = f.m.Update(MsgCompleteTimer{ID: f.m.completeTimerID})
	assert.Equal(t, StateNavigating, f.m.State())
}

func TestUpdate_FinishDay_DesktopHostRequestsShutdown(t *testing.T) {
	f := newFixture(t, domain.HostDesktop)
	f.finish(t)
	animationID := f.m.animationTimerID

	_, cmd := f.m.Update(MsgCompleteTimer{ID: f.m.completeTimerID})

	assert.Equal(t, StateShutdownRequested, f.m.State())
	assert.True(t, f.m.ShutdownRequested())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// Teardown cancelled the animation timer
	assert.Equal(t, 0, f.m.animationTimerID)
	_, _ = f.m.Update(MsgAnimationTimer{ID: animationID})
	assert.True(t, f.m.animationVisible, "stale timer must be ignored")
}

func TestUpdate_QuitCancelsTimers(t *testing.T) {
	f := newFixture(t, domain.HostWeb)
	f.finish(t)
	completeID := f.m.completeTimerID

	_, cmd := f.m.Update(runeKey('q'))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, f.m.completeTimerID)
	assert.Equal(t, 0, f.m.animationTimerID)

	_, cmd = f.m.Update(MsgCompleteTimer{ID: completeID})
	assert.Nil(t, cmd)
	assert.Equal(t, StateAnimating, f.m.State())
}

func TestUpdate_BackStartsNewCycle(t *testing.T) {
	f := newFixture(t, domain.HostWeb)
	f.finish(t)
	oldComplete, oldAnimation := f.m.completeTimerID, f.m.animationTimerID

	_, cmd := f.m.Update(runeKey('b'))
	assert.Equal(t, StateIdle, f.m.State())
	assert.False(t, f.m.animationVisible)
	findMsg[MsgSummaryLoaded](t, cmd)

	// Second cycle gets fresh timer IDs; the first cycle's timers are stale
	f.finish(t)
	assert.NotEqual(t, oldComplete, f.m.completeTimerID)
	assert.NotEqual(t, oldAnimation, f.m.animationTimerID)

	_, _ = f.m.Update(MsgCompleteTimer{ID: oldComplete})
	assert.Equal(t, StateAnimating, f.m.State())
	_, _ = f.m.Update(MsgAnimationTimer{ID: oldAnimation})
	assert.True(t, f.m.animationVisible)
}

func TestUpdate_FinishDay_ArchiveError(t *testing.T) {
	f := newFixture(t, domain.HostWeb)
	f.archive.ArchiveErr = assert.AnError

	_, cmd := f.m.Update(runeKey('f'))
	msg := findMsg[MsgError](t, cmd)
	_, _ = f.m.Update(msg)

	assert.Equal(t, StateIdle, f.m.State())
	assert.ErrorIs(t, f.m.err, assert.AnError)
	assert.Contains(t, f.repo.Tasks, 1)
	assert.Equal(t, 0, f.m.completeTimerID)
}

func TestUpdate_ExportDialog(t *testing.T) {
	f := newFixture(t, domain.HostWeb)

	_, _ = f.m.Update(runeKey('e'))
	assert.Equal(t, StateExportShown, f.m.State())
	assert.Equal(t, DialogSummary, f.m.dialog)
	assert.Contains(t, f.m.View(), "Task summary (text)")

	_, _ = f.m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "markdown", f.m.format)
	assert.Contains(t, f.m.View(), "Plan sprint")

	_, _ = f.m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateIdle, f.m.State())
	assert.Equal(t, DialogNone, f.m.dialog)
}

func TestUpdate_TimeSheet_NotConfigured(t *testing.T) {
	f := newFixture(t, domain.HostWeb)

	_, _ = f.m.Update(runeKey('t'))

	assert.Equal(t, StateIdle, f.m.State())
	assert.ErrorIs(t, f.m.err, domain.ErrExporterDisabled)
}

func TestUpdate_TimeSheet_Export(t *testing.T) {
	f := newFixture(t, domain.HostWeb)
	exporter := &testutil.MockTimeSheetExporter{}
	f.c.TimeSheet = exporter

	_, _ = f.m.Update(runeKey('t'))
	assert.Equal(t, DialogTimeSheet, f.m.dialog)
	assert.Contains(t, f.m.View(), "Time sheet")

	_, cmd := f.m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	exported := findMsg[MsgTimeSheetExported](t, cmd)
	_, _ = f.m.Update(exported)

	assert.Equal(t, StateIdle, f.m.State())
	assert.Len(t, exporter.Rows, 2)
	assert.Equal(t, "Exported 2 time sheet entries", f.m.status)
}

func TestUpdate_NoteIsSavedForTomorrow(t *testing.T) {
	f := newFixture(t, domain.HostWeb)

	_, _ = f.m.Update(runeKey('n'))
	require.True(t, f.m.editingNote)
	for _, r := range "qa" {
		_, _ = f.m.Update(runeKey(r))
	}
	_, _ = f.m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, f.m.editingNote)
	assert.Equal(t, StateIdle, f.m.State(), "q inside the note must not quit")

	f.finish(t)

	tomorrow := domain.TodayStr(testNow.AddDate(0, 0, 1))
	assert.Equal(t, "qa", f.repo.Notes[tomorrow])
}

func TestUpdate_StoreChanged(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		wantCmd bool
	}{
		{"idle reloads", StateIdle, true},
		{"export dialog reloads", StateExportShown, true},
		{"navigating reloads planner", StateNavigating, true},
		{"closing ignores", StateClosing, false},
		{"animating ignores", StateAnimating, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.HostWeb)
			f.m.state = tt.state

			_, cmd := f.m.Update(MsgStoreChanged{})

			assert.Equal(t, tt.wantCmd, cmd != nil)
		})
	}
}

func TestNextFormat(t *testing.T) {
	assert.Equal(t, "markdown", nextFormat("text"))
	assert.Equal(t, "text", nextFormat("yaml"))
	assert.Equal(t, "text", nextFormat("bogus"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "shutdown_requested", StateShutdownRequested.String())
	assert.Equal(t, "unknown", State(99).String())
}
