package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runoshun/daytrack/internal/domain"
)

// FinishDayInput contains the parameters for closing the day.
type FinishDayInput struct {
	TomorrowsNote string // Stored for the next day when set
}

// FinishDayOutput contains the result of closing the day.
type FinishDayOutput struct {
	ArchivedIDs []int
}

// FinishDay moves all done tasks into the archive.
type FinishDay struct {
	tasks   domain.TaskRepository
	archive domain.TaskArchive
	clock   domain.Clock
	logger  *slog.Logger
}

// NewFinishDay creates a new FinishDay use case.
func NewFinishDay(tasks domain.TaskRepository, archive domain.TaskArchive, clock domain.Clock, logger *slog.Logger) *FinishDay {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FinishDay{tasks: tasks, archive: archive, clock: clock, logger: logger}
}

// Execute archives the done tasks and removes them from the active store.
// Tasks are written to the archive before they are deleted, so a failure leaves
// at worst a task in both stores.
func (uc *FinishDay) Execute(ctx context.Context, in FinishDayInput) (*FinishDayOutput, error) {
	done := true
	tasks, err := uc.tasks.List(domain.TaskFilter{IsDone: &done})
	if err != nil {
		return nil, fmt.Errorf("list done tasks: %w", err)
	}

	now := uc.clock.Now()
	out := &FinishDayOutput{ArchivedIDs: make([]int, 0, len(tasks))}

	if len(tasks) > 0 {
		if err := uc.archive.Archive(ctx, tasks, now); err != nil {
			return nil, fmt.Errorf("archive tasks: %w", err)
		}
		for _, t := range tasks {
			if err := uc.tasks.Delete(t.ID); err != nil {
				return out, fmt.Errorf("delete archived task #%d: %w", t.ID, err)
			}
			out.ArchivedIDs = append(out.ArchivedIDs, t.ID)
		}
	}

	if in.TomorrowsNote != "" {
		tomorrow := domain.TodayStr(now.AddDate(0, 0, 1))
		if err := uc.tasks.SaveNote(tomorrow, in.TomorrowsNote); err != nil {
			return out, fmt.Errorf("save note: %w", err)
		}
	}

	uc.logger.Info("day finished", "archived", len(out.ArchivedIDs))
	return out, nil
}
