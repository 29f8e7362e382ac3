package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runoshun/daytrack/internal/domain"
)

// RefreshIssuesInput contains the parameters for refreshing linked tasks.
type RefreshIssuesInput struct {
	ProjectID      string // empty = all projects
	NotifyNoUpdate bool
}

// RefreshIssuesOutput summarizes a refresh run.
type RefreshIssuesOutput struct {
	Errors  map[int]error // Task ID -> failure
	Updated []*domain.Task
	Checked int
}

// RefreshIssues reconciles every issue-linked task and saves the changes.
type RefreshIssues struct {
	tasks  domain.TaskRepository
	fresh  *GetFreshDataForIssue
	clock  domain.Clock
	logger *slog.Logger
}

// NewRefreshIssues creates a new RefreshIssues use case.
func NewRefreshIssues(tasks domain.TaskRepository, fresh *GetFreshDataForIssue, clock domain.Clock, logger *slog.Logger) *RefreshIssues {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RefreshIssues{tasks: tasks, fresh: fresh, clock: clock, logger: logger}
}

// Execute checks each linked task once. A failing task does not stop the run.
func (uc *RefreshIssues) Execute(ctx context.Context, in RefreshIssuesInput) (*RefreshIssuesOutput, error) {
	tasks, err := uc.tasks.List(domain.TaskFilter{ProjectID: in.ProjectID, OnlyIssue: true})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := &RefreshIssuesOutput{Errors: make(map[int]error)}
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out.Checked++

		data, err := uc.fresh.Execute(ctx, GetFreshDataForIssueInput{
			Task:           task,
			NotifySuccess:  true,
			NotifyNoUpdate: in.NotifyNoUpdate,
		})
		if err != nil {
			uc.logger.Warn("refresh failed", "task", task.ID, "error", err)
			out.Errors[task.ID] = err
			continue
		}
		if data == nil {
			continue
		}

		data.TaskChanges.Apply(task, uc.clock.Now())
		if err := uc.tasks.Save(task); err != nil {
			out.Errors[task.ID] = fmt.Errorf("save task: %w", err)
			continue
		}
		out.Updated = append(out.Updated, task)
	}
	return out, nil
}
