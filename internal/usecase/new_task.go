package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/daytrack/internal/domain"
)

// NewTaskInput contains the parameters for creating a new task.
type NewTaskInput struct {
	Title     string // Task title (required)
	ProjectID string // Project (optional)
	Notes     string // Notes (optional)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	TaskID int // The ID of the created task
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	tasks    domain.TaskRepository
	projects domain.ProjectStore
	clock    domain.Clock
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskRepository, projects domain.ProjectStore, clock domain.Clock) *NewTask {
	return &NewTask{
		tasks:    tasks,
		projects: projects,
		clock:    clock,
	}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(_ context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	if in.ProjectID != "" {
		project, err := uc.projects.GetProject(in.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("get project: %w", err)
		}
		if project == nil {
			return nil, fmt.Errorf("%s: %w", in.ProjectID, domain.ErrProjectNotFound)
		}
	}

	id, err := uc.tasks.NextID()
	if err != nil {
		return nil, fmt.Errorf("generate task ID: %w", err)
	}

	task := &domain.Task{
		ID:        id,
		Title:     title,
		ProjectID: in.ProjectID,
		Notes:     in.Notes,
		Created:   uc.clock.Now(),
	}
	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	return &NewTaskOutput{TaskID: id}, nil
}
