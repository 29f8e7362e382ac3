package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/daytrack/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	IsDone    *bool  // nil = all
	ProjectID string // empty = all projects
}

// ListTasksOutput contains the listed tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task
}

// ListTasks lists active tasks.
type ListTasks struct {
	tasks domain.TaskRepository
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

// Execute returns the tasks matching the input.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.tasks.List(domain.TaskFilter{IsDone: in.IsDone, ProjectID: in.ProjectID})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return &ListTasksOutput{Tasks: tasks}, nil
}
