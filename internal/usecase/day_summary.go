package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/runoshun/daytrack/internal/domain"
)

// DaySummaryInput contains the parameters for building a day summary.
type DaySummaryInput struct {
	Day time.Time // zero = today
}

// DaySummary collects the end-of-day overview.
type DaySummary struct {
	tasks   domain.TaskRepository
	commits domain.CommitLog // optional
	clock   domain.Clock
	logger  *slog.Logger
}

// NewDaySummary creates a new DaySummary use case. commits may be nil.
func NewDaySummary(tasks domain.TaskRepository, commits domain.CommitLog, clock domain.Clock, logger *slog.Logger) *DaySummary {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DaySummary{tasks: tasks, commits: commits, clock: clock, logger: logger}
}

// Execute builds the summary. Today's tasks are all active tasks.
func (uc *DaySummary) Execute(_ context.Context, in DaySummaryInput) (*domain.DaySummary, error) {
	date := in.Day
	if date.IsZero() {
		date = uc.clock.Now()
	}
	day := domain.TodayStr(date)

	tasks, err := uc.tasks.List(domain.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	summary := &domain.DaySummary{
		Date:        date,
		Day:         day,
		TodaysTasks: tasks,
		DoneTasks:   []*domain.Task{},
	}
	for _, t := range tasks {
		if t.IsDone {
			summary.DoneTasks = append(summary.DoneTasks, t)
		}
		summary.TotalTimeSpent += t.TotalTimeSpent()
		summary.WorkingToday += t.TimeSpentOn(day)
	}

	note, err := uc.tasks.GetNote(day)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	summary.TomorrowsNote = note

	if uc.commits != nil {
		commits, err := uc.commits.CommitsOn(date)
		if err != nil {
			uc.logger.Warn("read commit log", "error", err)
		} else {
			summary.CommitLog = commits
		}
	}

	return summary, nil
}
