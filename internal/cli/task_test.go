package cli

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(repo *testutil.MockTaskRepository) *app.Container {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	container := app.NewWithDeps(
		app.Config{DataDir: "/tmp/daytrack-test"},
		repo,
		&testutil.MockStoreInitializer{},
		&testutil.MockClock{NowTime: time.Now()},
		logger,
	)
	projects := testutil.NewMockProjectStore()
	projects.Projects["p1"] = &domain.Project{
		ID:     "p1",
		Github: &domain.GithubConfig{Repo: "owner/repo", IsSearchIssuesFromGithub: true},
	}
	container.Projects = projects
	container.Issues = testutil.NewMockIssueAPI()
	container.Archive = &testutil.MockTaskArchive{}
	container.Tokens = testutil.NewMockTokenStore()
	container.ConfigLoader = testutil.NewMockConfigLoader()
	container.ConfigManager = &testutil.MockConfigManager{}
	return container
}

// =============================================================================
// New Command Tests
// =============================================================================

func TestNewNewCommand_CreateTask(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	container := newTestContainer(repo)

	// Create command
	cmd := newNewCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--title", "Test task", "--project", "p1", "--notes", "details"})

	// Execute
	err := cmd.Execute()

	// Assert
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Created task #1")

	task := repo.Tasks[1]
	require.NotNil(t, task)
	assert.Equal(t, "Test task", task.Title)
	assert.Equal(t, "p1", task.ProjectID)
	assert.Equal(t, "details", task.Notes)
	assert.False(t, task.IsDone)
}

func TestNewNewCommand_MissingTitle(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskRepository())

	cmd := newNewCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestNewNewCommand_UnknownProject(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskRepository())

	cmd := newNewCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--title", "Test", "--project", "nope"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

// =============================================================================
// List Command Tests
// =============================================================================

func TestNewListCommand_PrintsTable(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	today := domain.TodayStr(time.Now())
	done := &domain.Task{ID: 1, Title: "Done task", ProjectID: "p1", IsDone: true}
	done.AddTimeSpent(today, 90*time.Minute)
	repo.Tasks[1] = done
	repo.Tasks[2] = &domain.Task{ID: 2, Title: "Updated task", IssueWasUpdated: true}
	container := newTestContainer(repo)

	cmd := newListCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "done")
	assert.Contains(t, lines[1], "1h 30m")
	assert.Contains(t, lines[1], "p1")
	assert.Contains(t, lines[2], "open")
	assert.Contains(t, lines[2], "* Updated task")
}

func TestNewListCommand_FilterOpen(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Done task", IsDone: true}
	repo.Tasks[2] = &domain.Task{ID: 2, Title: "Open task"}
	container := newTestContainer(repo)

	cmd := newListCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--open"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Open task")
	assert.NotContains(t, buf.String(), "Done task")
}

func TestNewListCommand_DoneAndOpenConflict(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskRepository())

	cmd := newListCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--done", "--open"})

	err := cmd.Execute()

	assert.Error(t, err)
}

// =============================================================================
// Done / Undo Command Tests
// =============================================================================

func TestNewDoneCommand(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Task"}
	container := newTestContainer(repo)

	// Execute
	cmd := newDoneCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"#1"})
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Completed task #1: Task")
	assert.True(t, repo.Tasks[1].IsDone)
	assert.False(t, repo.Tasks[1].DoneOn.IsZero())
}

func TestNewUndoCommand(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Task", IsDone: true, DoneOn: time.Now()}
	container := newTestContainer(repo)

	cmd := newUndoCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1"})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Reopened task #1")
	assert.False(t, repo.Tasks[1].IsDone)
}

func TestNewDoneCommand_TaskNotFound(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskRepository())

	cmd := newDoneCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"99"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

// =============================================================================
// Track Command Tests
// =============================================================================

func TestNewTrackCommand(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Task"}
	container := newTestContainer(repo)

	// Execute
	cmd := newTrackCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1", "45m", "--day", "2026-10-13"})
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Tracked 45m on task #1 (45m on 2026-10-13)\n", buf.String())
	assert.Equal(t, 45*time.Minute, repo.Tasks[1].TimeSpentOn("2026-10-13"))
}

func TestNewTrackCommand_InvalidDuration(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Task"}
	container := newTestContainer(repo)

	cmd := newTrackCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"1", "soon"})

	err := cmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

// =============================================================================
// Link / Rm / Import Command Tests
// =============================================================================

func TestNewLinkCommand(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Task", ProjectID: "p1"}
	container := newTestContainer(repo)

	cmd := newLinkCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1", "#42"})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Linked task #1 to issue #42")
	assert.Equal(t, "42", repo.Tasks[1].IssueID)
	assert.Equal(t, int64(0), repo.Tasks[1].IssueLastUpdated)
}

func TestNewLinkCommand_AlreadyLinked(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Task", ProjectID: "p1", IssueID: "7"}
	container := newTestContainer(repo)

	cmd := newLinkCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"1", "42"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrAlreadyLinked)
	assert.Equal(t, "7", repo.Tasks[1].IssueID)
}

func TestNewRmCommand(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Tasks[1] = &domain.Task{ID: 1, Title: "Task"}
	container := newTestContainer(repo)

	cmd := newRmCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"1"})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted task #1")
	assert.NotContains(t, repo.Tasks, 1)
}

func TestNewImportCommand_FromStdin(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	container := newTestContainer(repo)

	cmd := newImportCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetIn(strings.NewReader("- title: First\n- title: Second\n  project: p1\n"))
	cmd.SetArgs([]string{"-"})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "Imported 2 tasks: #1, #2\n", buf.String())
	assert.Equal(t, "First", repo.Tasks[1].Title)
	assert.Equal(t, "p1", repo.Tasks[2].ProjectID)
}

func TestNewImportCommand_MissingFile(t *testing.T) {
	container := newTestContainer(testutil.NewMockTaskRepository())

	cmd := newImportCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/tasks.yaml"})

	err := cmd.Execute()

	assert.Error(t, err)
}

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"#12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseTaskID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
