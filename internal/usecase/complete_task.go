package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/daytrack/internal/domain"
)

// CompleteTaskInput contains the parameters for marking a task done or undone.
type CompleteTaskInput struct {
	TaskID int
	Undo   bool // Reopen instead of completing
}

// CompleteTaskOutput contains the updated task.
type CompleteTaskOutput struct {
	Task *domain.Task
}

// CompleteTask toggles the done flag of a task.
type CompleteTask struct {
	tasks domain.TaskRepository
	clock domain.Clock
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskRepository, clock domain.Clock) *CompleteTask {
	return &CompleteTask{tasks: tasks, clock: clock}
}

// Execute marks the task as done (or undone).
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	task, err := getTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	done := !in.Undo
	domain.TaskChanges{IsDone: &done}.Apply(task, uc.clock.Now())

	if err := uc.tasks.Save(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	return &CompleteTaskOutput{Task: task}, nil
}

// getTask loads a task and maps a missing task to ErrTaskNotFound.
func getTask(tasks domain.TaskRepository, id int) (*domain.Task, error) {
	task, err := tasks.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("#%d: %w", id, domain.ErrTaskNotFound)
	}
	return task, nil
}
