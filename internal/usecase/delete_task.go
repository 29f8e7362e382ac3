package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/daytrack/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID int
}

// DeleteTask removes a task from the active store without archiving it.
type DeleteTask struct {
	tasks domain.TaskRepository
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

// Execute deletes the task.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) error {
	if _, err := getTask(uc.tasks, in.TaskID); err != nil {
		return err
	}
	if err := uc.tasks.Delete(in.TaskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
