package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/daytrack/internal/domain"
	"github.com/runoshun/daytrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFreshFixture(filter string) (*testutil.MockProjectStore, *testutil.MockIssueAPI, *testutil.MockNotifier, *GetFreshDataForIssue) {
	projects := testutil.NewMockProjectStore()
	projects.Projects["p1"] = &domain.Project{
		ID:     "p1",
		Github: &domain.GithubConfig{Repo: "owner/repo", FilterUsername: filter},
	}
	issues := testutil.NewMockIssueAPI()
	notifier := &testutil.MockNotifier{}
	return projects, issues, notifier, NewGetFreshDataForIssue(projects, issues, notifier, nil)
}

func comment(login string, ms int64) domain.IssueComment {
	return domain.IssueComment{User: domain.IssueUser{Login: login}, CreatedAt: time.UnixMilli(ms)}
}

func TestGetFreshDataForIssue_Execute_Updated(t *testing.T) {
	// Setup
	_, issues, notifier, uc := newFreshFixture("")
	issues.Issues[42] = &domain.Issue{
		Number:    42,
		Title:     "Fix bug",
		State:     "open",
		UpdatedAt: time.UnixMilli(500),
		Comments:  []domain.IssueComment{comment("bob", 2000)},
	}
	task := &domain.Task{ID: 1, ProjectID: "p1", IssueID: "42", IssueLastUpdated: 1000}

	// Execute
	out, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{Task: task, NotifySuccess: true})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, out)
	changes := out.TaskChanges
	assert.Equal(t, "#42 Fix bug", *changes.Title)
	assert.True(t, *changes.IssueWasUpdated)
	assert.Equal(t, int64(2000), *changes.IssueLastUpdated)
	assert.False(t, *changes.IsDone)
	assert.Same(t, issues.Issues[42], out.Issue)
	assert.Equal(t, "#42 Fix bug", out.IssueTitle)
	assert.Len(t, notifier.Messages, 1)

	// Task itself is not mutated
	assert.Equal(t, int64(1000), task.IssueLastUpdated)
}

func TestGetFreshDataForIssue_Execute_ClosedIssueMarksDone(t *testing.T) {
	_, issues, _, uc := newFreshFixture("")
	issues.Issues[7] = &domain.Issue{
		Number:   7,
		Title:    "Old",
		State:    "closed",
		Comments: []domain.IssueComment{comment("bob", 10)},
	}

	out, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
		Task: &domain.Task{ProjectID: "p1", IssueID: "7"},
	})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, *out.TaskChanges.IsDone)
}

func TestGetFreshDataForIssue_Execute_UnsetLastUpdatedActsAsEpoch(t *testing.T) {
	_, issues, _, uc := newFreshFixture("")
	issues.Issues[1] = &domain.Issue{Number: 1, Comments: []domain.IssueComment{comment("bob", 1)}}

	out, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
		Task: &domain.Task{ProjectID: "p1", IssueID: "1"},
	})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, int64(1), *out.TaskChanges.IssueLastUpdated)
}

func TestGetFreshDataForIssue_Execute_EqualTimestampIsNotUpdate(t *testing.T) {
	_, issues, notifier, uc := newFreshFixture("")
	issues.Issues[1] = &domain.Issue{
		Number:   1,
		Comments: []domain.IssueComment{comment("bob", 3000), comment("carol", 1000)},
	}

	out, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
		Task:           &domain.Task{ProjectID: "p1", IssueID: "1", IssueLastUpdated: 3000},
		NotifyNoUpdate: true,
	})

	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Len(t, notifier.Messages, 1)
}

func TestGetFreshDataForIssue_Execute_IssueUpdatedAtIsIgnored(t *testing.T) {
	// Only comments count; a newer issue body edit is not detected.
	_, issues, _, uc := newFreshFixture("")
	issues.Issues[1] = &domain.Issue{
		Number:    1,
		UpdatedAt: time.UnixMilli(9000),
		Comments:  []domain.IssueComment{comment("bob", 1000)},
	}

	out, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
		Task: &domain.Task{ProjectID: "p1", IssueID: "1", IssueLastUpdated: 1000},
	})

	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestGetFreshDataForIssue_Execute_NoComments(t *testing.T) {
	_, issues, _, uc := newFreshFixture("")
	issues.Issues[1] = &domain.Issue{Number: 1, UpdatedAt: time.UnixMilli(9000)}

	out, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
		Task: &domain.Task{ProjectID: "p1", IssueID: "1"},
	})

	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestGetFreshDataForIssue_Execute_FilterUsername(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		wantLast int64
	}{
		{"filter excludes own newer comment", "alice", 2000},
		{"filter is case-insensitive", "ALICE", 2000},
		{"one-character filter disabled", "a", 5000},
		{"empty filter disabled", "", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, issues, _, uc := newFreshFixture(tt.filter)
			issues.Issues[3] = &domain.Issue{
				Number:   3,
				Comments: []domain.IssueComment{comment("Alice", 5000), comment("bob", 2000)},
			}

			out, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
				Task: &domain.Task{ProjectID: "p1", IssueID: "3", IssueLastUpdated: 1500},
			})

			require.NoError(t, err)
			require.NotNil(t, out)
			assert.Equal(t, tt.wantLast, *out.TaskChanges.IssueLastUpdated)
		})
	}
}

func TestGetFreshDataForIssue_Execute_OnlyOwnCommentsIsNotUpdate(t *testing.T) {
	_, issues, _, uc := newFreshFixture("alice")
	issues.Issues[3] = &domain.Issue{
		Number:   3,
		Comments: []domain.IssueComment{comment("alice", 5000)},
	}

	out, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
		Task: &domain.Task{ProjectID: "p1", IssueID: "3"},
	})

	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestGetFreshDataForIssue_Execute_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		task    *domain.Task
		wantErr error
	}{
		{"nil task", nil, domain.ErrTaskNotFound},
		{"no project", &domain.Task{IssueID: "1"}, domain.ErrNoProjectID},
		{"no issue", &domain.Task{ProjectID: "p1"}, domain.ErrNoIssueID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects, issues, _, uc := newFreshFixture("")
			_, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{Task: tt.task})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, projects.Calls, "config must not be read")
			assert.Equal(t, 0, issues.GetCalls)
		})
	}
}

func TestGetFreshDataForIssue_Execute_ConfigError(t *testing.T) {
	projects, issues, _, uc := newFreshFixture("")
	projects.Err = assert.AnError

	_, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
		Task: &domain.Task{ProjectID: "p1", IssueID: "1"},
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "get github config")
	assert.Equal(t, 0, issues.GetCalls)
}

func TestGetFreshDataForIssue_Execute_NoTrackerConfig(t *testing.T) {
	projects, _, _, uc := newFreshFixture("")
	projects.Projects["p2"] = &domain.Project{ID: "p2"}

	_, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
		Task: &domain.Task{ProjectID: "p2", IssueID: "1"},
	})

	assert.ErrorIs(t, err, domain.ErrNoTrackerConfig)
}

func TestGetFreshDataForIssue_Execute_FetchErrorPropagates(t *testing.T) {
	_, issues, _, uc := newFreshFixture("")
	issues.GetErr = assert.AnError

	_, err := uc.Execute(context.Background(), GetFreshDataForIssueInput{
		Task: &domain.Task{ProjectID: "p1", IssueID: "1"},
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, issues.GetCalls, "no retry")
}

func TestCommentTimestamps_SortedAscending(t *testing.T) {
	got := commentTimestamps([]domain.IssueComment{comment("a", 30), comment("b", 10), comment("c", 20)}, "")
	assert.Equal(t, []int64{10, 20, 30}, got)
}
