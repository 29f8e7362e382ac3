package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/runoshun/daytrack/internal/domain"
)

// LinkIssueInput contains the parameters for linking a task to an issue.
type LinkIssueInput struct {
	ProjectID string // Overrides the task's project when set
	TaskID    int
	Number    int
	Force     bool // Replace an existing link
}

// LinkIssueOutput contains the linked task.
type LinkIssueOutput struct {
	Task *domain.Task
}

// LinkIssue attaches a remote issue to an existing task.
// The link starts with an unknown last update, so the next refresh pulls the issue data.
type LinkIssue struct {
	tasks    domain.TaskRepository
	projects domain.ProjectStore
}

// NewLinkIssue creates a new LinkIssue use case.
func NewLinkIssue(tasks domain.TaskRepository, projects domain.ProjectStore) *LinkIssue {
	return &LinkIssue{tasks: tasks, projects: projects}
}

// Execute links the task.
func (uc *LinkIssue) Execute(_ context.Context, in LinkIssueInput) (*LinkIssueOutput, error) {
	if in.Number <= 0 {
		return nil, domain.ErrNoIssueID
	}
	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	if task.HasIssue() && !in.Force {
		return nil, fmt.Errorf("#%d: %w", task.ID, domain.ErrAlreadyLinked)
	}

	projectID := task.ProjectID
	if in.ProjectID != "" {
		projectID = in.ProjectID
	}
	if projectID == "" {
		return nil, domain.ErrNoProjectID
	}
	cfg, err := uc.projects.GithubConfig(projectID)
	if err != nil {
		return nil, fmt.Errorf("get github config: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNoTrackerConfig)
	}

	task.ProjectID = projectID
	task.IssueID = strconv.Itoa(in.Number)
	task.IssueType = domain.IssueTypeGithub
	task.IssueLastUpdated = 0
	task.IssueWasUpdated = false

	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	return &LinkIssueOutput{Task: task}, nil
}
