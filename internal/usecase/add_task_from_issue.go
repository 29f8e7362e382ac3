package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/runoshun/daytrack/internal/domain"
)

// AddTaskFromIssueInput contains the parameters for importing an issue as a task.
type AddTaskFromIssueInput struct {
	ProjectID string
	Number    int
}

// AddTaskFromIssueOutput contains the created task.
type AddTaskFromIssueOutput struct {
	Task *domain.Task
}

// AddTaskFromIssue creates a task linked to a remote issue.
type AddTaskFromIssue struct {
	tasks    domain.TaskRepository
	projects domain.ProjectStore
	issues   domain.IssueAPI
	clock    domain.Clock
}

// NewAddTaskFromIssue creates a new AddTaskFromIssue use case.
func NewAddTaskFromIssue(tasks domain.TaskRepository, projects domain.ProjectStore, issues domain.IssueAPI, clock domain.Clock) *AddTaskFromIssue {
	return &AddTaskFromIssue{tasks: tasks, projects: projects, issues: issues, clock: clock}
}

// Execute fetches the issue and stores a new task for it.
func (uc *AddTaskFromIssue) Execute(ctx context.Context, in AddTaskFromIssueInput) (*AddTaskFromIssueOutput, error) {
	if in.ProjectID == "" {
		return nil, domain.ErrNoProjectID
	}
	if in.Number <= 0 {
		return nil, domain.ErrNoIssueID
	}

	cfg, err := uc.projects.GithubConfig(in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get github config: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("project %s: %w", in.ProjectID, domain.ErrNoTrackerConfig)
	}

	issue, err := uc.issues.GetByID(ctx, in.Number, cfg)
	if err != nil {
		return nil, fmt.Errorf("get issue #%d: %w", in.Number, err)
	}

	id, err := uc.tasks.NextID()
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	now := uc.clock.Now()
	task := &domain.Task{
		ID:        id,
		ProjectID: in.ProjectID,
		Created:   now,
		IssueID:   strconv.Itoa(issue.Number),
		IssueType: domain.IssueTypeGithub,
	}
	domain.AddTaskData(issue).Apply(task, now)

	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	return &AddTaskFromIssueOutput{Task: task}, nil
}
